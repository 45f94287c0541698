package graph

import (
	"errors"
	"math"
	"testing"

	"github.com/matzehuels/pathfinder/pkg/geom"
)

func ptr(v int) *int { return &v }

func TestSnapshotRoundTrip(t *testing.T) {
	g, a, b, c := triangle(t)
	mustLink(t, g, c, a, Unidirectional, WithUserDistance(2.5))
	if err := g.SetLinkDistance(b, c, Blocking, 0); err != nil {
		t.Fatal(err)
	}
	g.SetStart(a)
	g.SetEnd(c)

	s := g.Snapshot()
	if len(s.Nodes) != 3 || len(s.Links) != 3 {
		t.Fatalf("snapshot has %d nodes, %d links", len(s.Nodes), len(s.Links))
	}
	if s.Start == nil || *s.Start != a || s.End == nil || *s.End != c {
		t.Fatalf("markers = %v, %v", s.Start, s.End)
	}

	back, report, err := FromSnapshot(s, PolicyReject)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	if len(report.DroppedLinks) != 0 {
		t.Errorf("dropped %v", report.DroppedLinks)
	}
	if back.Start() != a || back.End() != c {
		t.Errorf("markers = %d, %d", back.Start(), back.End())
	}
	for _, l := range g.Links() {
		got, ok := back.Link(l.Start, l.End)
		if !ok || got != l {
			t.Errorf("link %d->%d = %+v, want %+v", l.Start, l.End, got, l)
		}
	}
	if id := back.AddNode(geom.Pt(1, 1)); id != 3 {
		t.Errorf("next id after load = %d, want 3", id)
	}
}

func TestFromSnapshotLargestIDStillGrows(t *testing.T) {
	g, _, err := FromSnapshot(Snapshot{Nodes: []NodeRecord{{ID: MaxID - 1}}}, PolicyReject)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	prev := MaxID - 1
	for range 3 {
		id := g.AddNode(geom.Pt(0, 0))
		if id <= prev {
			t.Fatalf("AddNode = %d after %d, want a larger id", id, prev)
		}
		prev = id
	}
}

func TestFromSnapshotKeepsSparseIDs(t *testing.T) {
	s := Snapshot{
		Nodes: []NodeRecord{{ID: 4, X: 0, Y: 0}, {ID: 10, X: 3, Y: 4}},
		Links: []LinkRecord{{Start: 4, End: 10, Distance: 99}},
	}
	g, _, err := FromSnapshot(s, PolicyReject)
	if err != nil {
		t.Fatal(err)
	}
	l, ok := g.Link(4, 10)
	if !ok {
		t.Fatal("link missing")
	}
	if !approx(l.Distance, 5) {
		t.Errorf("auto distance not recomputed: %v", l.Distance)
	}
	if id := g.AddNode(geom.Pt(0, 0)); id != 11 {
		t.Errorf("next id = %d, want 11", id)
	}
}

func TestFromSnapshotIntegrity(t *testing.T) {
	nodes := []NodeRecord{{ID: 0}, {ID: 1, X: 1}}
	tests := []struct {
		name        string
		snap        Snapshot
		policy      Policy
		wantErr     bool
		wantDropped int
		wantMarkers int
	}{
		{
			name:    "dangling link rejected",
			snap:    Snapshot{Nodes: nodes, Links: []LinkRecord{{Start: 0, End: 5}}},
			policy:  PolicyReject,
			wantErr: true,
		},
		{
			name:        "dangling link dropped",
			snap:        Snapshot{Nodes: nodes, Links: []LinkRecord{{Start: 0, End: 1}, {Start: 7, End: 1}}},
			policy:      PolicyDrop,
			wantDropped: 1,
		},
		{
			name:    "duplicate node id",
			snap:    Snapshot{Nodes: []NodeRecord{{ID: 1}, {ID: 1}}},
			policy:  PolicyDrop,
			wantErr: true,
		},
		{
			name:    "negative node id",
			snap:    Snapshot{Nodes: []NodeRecord{{ID: -2}}},
			policy:  PolicyDrop,
			wantErr: true,
		},
		{
			name:    "id at the top of the int range",
			snap:    Snapshot{Nodes: []NodeRecord{{ID: math.MaxInt}}},
			policy:  PolicyDrop,
			wantErr: true,
		},
		{
			name:    "id out of range",
			snap:    Snapshot{Nodes: []NodeRecord{{ID: 0}, {ID: MaxID}}},
			policy:  PolicyReject,
			wantErr: true,
		},
		{
			name:    "missing marker rejected",
			snap:    Snapshot{Nodes: nodes, Start: ptr(3)},
			policy:  PolicyReject,
			wantErr: true,
		},
		{
			name:        "missing marker dropped",
			snap:        Snapshot{Nodes: nodes, Start: ptr(0), End: ptr(3)},
			policy:      PolicyDrop,
			wantMarkers: 1,
		},
		{
			name:    "invalid user distance",
			snap:    Snapshot{Nodes: nodes, Links: []LinkRecord{{Start: 0, End: 1, DistanceType: UserDefined, Distance: -1}}},
			policy:  PolicyDrop,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, report, err := FromSnapshot(tt.snap, tt.policy)
			if tt.wantErr {
				if !errors.Is(err, ErrDataIntegrity) {
					t.Fatalf("err = %v, want ErrDataIntegrity", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(report.DroppedLinks) != tt.wantDropped {
				t.Errorf("dropped links = %d, want %d", len(report.DroppedLinks), tt.wantDropped)
			}
			if report.DroppedMarkers != tt.wantMarkers {
				t.Errorf("dropped markers = %d, want %d", report.DroppedMarkers, tt.wantMarkers)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicyReject, false},
		{"reject", PolicyReject, false},
		{"drop", PolicyDrop, false},
		{"ignore", PolicyReject, true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePolicy(%q) = %v, %v", tt.in, got, err)
		}
	}
	if PolicyDrop.String() != "drop" || PolicyReject.String() != "reject" {
		t.Error("Policy.String mismatch")
	}
}

func TestSnapshotValidate(t *testing.T) {
	s := Snapshot{Nodes: []NodeRecord{{ID: 0}}, Links: []LinkRecord{{Start: 0, End: 1}}}
	if err := s.Validate(); !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("Validate = %v, want ErrDataIntegrity", err)
	}
}
