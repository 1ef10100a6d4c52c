package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"Trestle/internal/scia"
)

// Workbook writes the structural model as a bill-of-materials spreadsheet
// with one sheet per entity kind.
func Workbook(m *scia.Model) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const nodesSheet = "Nodes"
	f.SetSheetName(f.GetSheetName(0), nodesSheet)
	writeRow(f, nodesSheet, 1, "Name", "X [m]", "Y [m]", "Z [m]")
	for i, n := range m.Nodes {
		writeRow(f, nodesSheet, i+2, n.Name, n.X, n.Y, n.Z)
	}

	const beamsSheet = "Beams"
	if _, err := f.NewSheet(beamsSheet); err != nil {
		return nil, err
	}
	writeRow(f, beamsSheet, 1, "Name", "Begin node", "End node", "Cross-section", "Role")
	for i, b := range m.Beams {
		writeRow(f, beamsSheet, i+2, b.Name, b.BeginNode.Name, b.EndNode.Name, b.CrossSection.Name, string(b.Role))
	}

	const planesSheet = "Planes"
	if _, err := f.NewSheet(planesSheet); err != nil {
		return nil, err
	}
	writeRow(f, planesSheet, 1, "Name", "Corners", "Thickness [m]", "Material")
	for i, p := range m.Planes {
		corners := ""
		for j, n := range p.Corners {
			if j > 0 {
				corners += "; "
			}
			corners += n.Name
		}
		writeRow(f, planesSheet, i+2, p.Name, corners, p.ThicknessM, p.Material.Name)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			continue
		}
		f.SetCellValue(sheet, cell, v)
	}
}
