package geom

import (
	"math"
	"testing"
)

func TestLinspace(t *testing.T) {
	cases := []struct {
		start, stop float64
		n           int
		want        []float64
	}{
		{0, 10, 3, []float64{0, 5, 10}},
		{2, 2, 2, []float64{2, 2}},
		{1, 4, 1, []float64{1}},
		{0, 1, 0, nil},
		{5, 1, 3, []float64{5, 3, 1}},
	}
	for _, tc := range cases {
		got := Linspace(tc.start, tc.stop, tc.n)
		if len(got) != len(tc.want) {
			t.Fatalf("Linspace(%v,%v,%d): got %v", tc.start, tc.stop, tc.n, got)
		}
		for i := range got {
			if math.Abs(got[i]-tc.want[i]) > 1e-9 {
				t.Errorf("Linspace(%v,%v,%d)[%d] = %v, want %v", tc.start, tc.stop, tc.n, i, got[i], tc.want[i])
			}
		}
	}
}

func TestLinspaceEndpointsExact(t *testing.T) {
	got := Linspace(17.320508075688775, 82.67949192431122, 7)
	if got[0] != 17.320508075688775 || got[6] != 82.67949192431122 {
		t.Errorf("endpoints must be exact, got %v and %v", got[0], got[6])
	}
}

func TestGroupMergeKeepsOrder(t *testing.T) {
	a := NewGroup()
	s1 := NewSphere(Point{}, 1)
	s2 := NewSphere(Point{X: 1}, 1)
	a.Add(s1)

	b := NewGroup()
	b.Add(s2)

	a.Merge(b)
	if len(a.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(a.Children))
	}
	if a.Children[0] != Solid(s1) || a.Children[1] != Solid(s2) {
		t.Error("merge must append the other group's children in order")
	}
}
