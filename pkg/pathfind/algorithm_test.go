package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"dijkstra", AlgorithmDijkstra, false},
		{"", AlgorithmDijkstra, false},
		{"AStar", AlgorithmAStar, false},
		{"a*", AlgorithmAStar, false},
		{" astar ", AlgorithmAStar, false},
		{"bfs", AlgorithmDijkstra, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownAlgorithm)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAlgorithmText(t *testing.T) {
	b, err := AlgorithmAStar.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "astar", string(b))

	var a Algorithm
	require.NoError(t, a.UnmarshalText([]byte("astar")))
	assert.Equal(t, AlgorithmAStar, a)

	_, err = Algorithm(9).MarshalText()
	assert.Error(t, err)
}

func TestOutcomeText(t *testing.T) {
	for _, o := range []Outcome{Pending, Solved, Unreachable} {
		b, err := o.MarshalText()
		require.NoError(t, err)
		var got Outcome
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, o, got)
	}
}
