package scia

import "testing"

func TestNodeIdentityIsNameKeyed(t *testing.T) {
	m := NewModel()

	a := m.Node("n1", 1, 2, 3)
	b := m.Node("n1", 9, 9, 9)
	if a != b {
		t.Fatal("same name must return the same node")
	}
	if b.X != 1 || b.Y != 2 || b.Z != 3 {
		t.Error("a reused name must not move the node")
	}

	// Coincident coordinates under different names stay distinct.
	c := m.Node("n2", 1, 2, 3)
	if c == a {
		t.Error("different names must be distinct nodes")
	}
	if len(m.Nodes) != 2 {
		t.Errorf("expected 2 nodes, got %d", len(m.Nodes))
	}
}

func TestBeamsWithRole(t *testing.T) {
	m := NewModel()
	mat := Material{Name: "C30/37"}
	cs := m.NewCircularSection("cs", mat, 1)

	b1 := m.NewBeam("b1", m.Node("a", 0, 0, 0), m.Node("b", 0, 0, 1), cs, RoleVerticalSupport)
	b2 := m.NewBeam("b2", m.Node("c", 1, 0, 0), m.Node("d", 1, 0, 1), cs, RoleFoundationPile)
	b3 := m.NewBeam("b3", m.Node("e", 2, 0, 0), m.Node("f", 2, 0, 1), cs, RoleFoundationPile)

	piles := m.BeamsWithRole(RoleFoundationPile)
	if len(piles) != 2 || piles[0] != b2 || piles[1] != b3 {
		t.Errorf("unexpected foundation piles: %v", piles)
	}
	if got := m.BeamsWithRole(RoleVerticalSupport); len(got) != 1 || got[0] != b1 {
		t.Errorf("unexpected vertical supports: %v", got)
	}
	if got := m.BeamsWithRole(RoleAbutmentPile); len(got) != 0 {
		t.Errorf("expected no abutment piles, got %d", len(got))
	}
}

func TestPlaneRingCloses(t *testing.T) {
	m := NewModel()
	corners := []*Node{
		m.Node("p0", 0, 0, 0),
		m.Node("p1", 1, 0, 0),
		m.Node("p2", 1, 1, 0),
		m.Node("p3", 0, 1, 0),
	}
	plane := m.NewPlane("plane", corners, 0.2, Material{Name: "concrete_slab"})

	ring := plane.Ring()
	if len(ring) != 5 {
		t.Fatalf("expected ring of 5, got %d", len(ring))
	}
	if ring[0] != ring[4] {
		t.Error("ring must close on its first node")
	}
	if len(plane.Corners) != 4 {
		t.Error("Ring must not mutate the corner list")
	}
}
