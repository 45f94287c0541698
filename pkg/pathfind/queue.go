package pathfind

import "container/heap"

// item is a queued candidate. The same node may be queued several times with
// decreasing keys; stale copies are skipped when popped.
type item struct {
	id   int
	key  float64
	rank int
}

// frontier is a min-heap on (key, rank). Ranking by insertion order makes
// the heap pick the same node a linear scan over the node list would.
type frontier []item

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].key != f[j].key {
		return f[i].key < f[j].key
	}
	return f[i].rank < f[j].rank
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(item)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	it := old[n-1]
	*f = old[:n-1]
	return it
}

func (f *frontier) push(it item) { heap.Push(f, it) }

func (f *frontier) pop() item { return heap.Pop(f).(item) }
