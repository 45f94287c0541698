package geom

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"same point", Pt(1, 1), Pt(1, 1), 0},
		{"3-4-5", Pt(0, 0), Pt(3, 4), 5},
		{"negative coords", Pt(-3, -4), Pt(0, 0), 5},
		{"horizontal", Pt(0, 0), Pt(1, 0), 1},
		{"fractional", Pt(0.5, 0.5), Pt(1.5, 0.5), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if back := Distance(tt.b, tt.a); math.Abs(back-got) > 1e-12 {
				t.Errorf("Distance not symmetric: %v vs %v", got, back)
			}
		})
	}
}

func TestPointString(t *testing.T) {
	if got := Pt(3, 4.5).String(); got != "(3, 4.5)" {
		t.Errorf("String() = %q", got)
	}
}

func TestAdd(t *testing.T) {
	if got := Pt(1, 2).Add(Pt(3, -1)); got != Pt(4, 1) {
		t.Errorf("Add = %v", got)
	}
}
