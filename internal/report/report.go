package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"Trestle/internal/params"
	"Trestle/internal/scia"
)

// Build renders the design summary PDF: the input parameters, the entity
// counts of the generated structural model, and the load setup. It is a
// local summary, not the engine's engineering report.
func Build(p params.Params, m *scia.Model) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Bridge design summary")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Parameters")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	rows := []struct {
		label string
		value string
	}{
		{"Width", fmt.Sprintf("%.2f m", p.WidthM)},
		{"Length", fmt.Sprintf("%.2f m", p.LengthM)},
		{"Height", fmt.Sprintf("%.2f m", p.HeightM)},
		{"Deck thickness", fmt.Sprintf("%.2f m", p.DeckThicknessM)},
		{"Crossing angle", fmt.Sprintf("%.1f deg", p.CrossingAngleDeg)},
		{"Intermediate supports", fmt.Sprintf("%d", p.SupportAmount)},
		{"Piles per support", fmt.Sprintf("%d", p.SupportPiles)},
		{"Pile length", fmt.Sprintf("%.2f m", p.PileLengthM)},
		{"Pile angle", fmt.Sprintf("%.1f deg", p.PileAngleDeg)},
		{"Pile thickness", fmt.Sprintf("%.0f mm", p.PileThicknessMM)},
		{"Soil stiffness", fmt.Sprintf("%.0f MN/m", p.SoilStiffnessMN)},
		{"Deck load", fmt.Sprintf("%.0f kN/m2", p.DeckLoadKNM2)},
	}
	for _, row := range rows {
		pdf.Cell(60, 6, row.label)
		pdf.Cell(0, 6, row.value)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Structural model")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	counts := []struct {
		label string
		n     int
	}{
		{"Nodes", len(m.Nodes)},
		{"Beams", len(m.Beams)},
		{"Vertical supports", len(m.BeamsWithRole(scia.RoleVerticalSupport))},
		{"Foundation piles", len(m.BeamsWithRole(scia.RoleFoundationPile))},
		{"Abutment piles", len(m.BeamsWithRole(scia.RoleAbutmentPile))},
		{"Planes", len(m.Planes)},
		{"Surface supports", len(m.SurfaceSupports)},
		{"Line supports", len(m.LineSupports)},
		{"Point supports", len(m.PointSupports)},
	}
	for _, c := range counts {
		pdf.Cell(60, 6, c.label)
		pdf.Cell(0, 6, fmt.Sprintf("%d", c.n))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Loads")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, lc := range m.LoadCases {
		pdf.Cell(0, 6, fmt.Sprintf("Load case %s (%s, %s)", lc.Name, lc.VariableType, lc.Duration))
		pdf.Ln(6)
	}
	for _, c := range m.LoadCombinations {
		pdf.Cell(0, 6, fmt.Sprintf("Combination %s (%s)", c.Name, c.Kind))
		pdf.Ln(6)
	}
	for _, sl := range m.SurfaceLoads {
		pdf.Cell(0, 6, fmt.Sprintf("Surface load %s on %s: %.0f N/m2 (%s)", sl.Name, sl.Plane.Name, sl.Value, sl.Direction))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}
