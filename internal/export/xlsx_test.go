package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"Trestle/internal/scia"
)

func TestWorkbookSheets(t *testing.T) {
	m := scia.NewModel()
	mat := scia.Material{Name: "concrete_slab"}
	cs := m.NewCircularSection("cs", scia.Material{Name: "C30/37"}, 1)
	m.NewPlane("deck_plane", []*scia.Node{
		m.Node("n0", 0, 0, 10),
		m.Node("n1", 0, 20, 10),
		m.Node("n2", 100, 20, 10),
		m.Node("n3", 100, 0, 10),
	}, 2, mat)
	m.NewBeam("b0", m.Node("a", 0, 0, 0), m.Node("b", 0, 0, 10), cs, scia.RoleVerticalSupport)

	out, err := Workbook(m)
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Nodes", "Beams", "Planes"} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Errorf("missing sheet %q", sheet)
		}
	}

	rows, err := f.GetRows("Nodes")
	if err != nil {
		t.Fatalf("read nodes: %v", err)
	}
	// Header plus the 4 deck corners and 2 beam ends.
	if len(rows) != 7 {
		t.Errorf("expected 7 node rows, got %d", len(rows))
	}
	if rows[1][0] != "n0" {
		t.Errorf("first node row %v", rows[1])
	}

	rows, err = f.GetRows("Beams")
	if err != nil {
		t.Fatalf("read beams: %v", err)
	}
	if len(rows) != 2 || rows[1][4] != "vertical_support" {
		t.Errorf("unexpected beam rows %v", rows)
	}
}
