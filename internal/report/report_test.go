package report

import (
	"bytes"
	"testing"

	"Trestle/internal/params"
	"Trestle/internal/scia"
)

func TestBuildProducesPDF(t *testing.T) {
	m := scia.NewModel()
	lg := m.NewLoadGroup("LG1", "variable", "standard", "cat_g")
	lc := m.NewVariableLoadCase("LC1", "first load case", lg, "static", "standard", "short")
	plane := m.NewPlane("deck_plane", []*scia.Node{
		m.Node("n0", 0, 0, 10),
		m.Node("n1", 0, 20, 10),
		m.Node("n2", 100, 20, 10),
		m.Node("n3", 100, 0, 10),
	}, 2, scia.Material{Name: "concrete_slab"})
	m.NewSurfaceLoad("SF:1", lc, plane, "Z", "force", -1e5, "length")

	out, err := Build(params.Defaults(), m)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("expected a PDF document")
	}
}
