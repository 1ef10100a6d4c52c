package scia

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Exchange-format serialization. The engine consumes a data document plus a
// companion definition document describing the tables. Both are generated
// from one table description so they cannot drift apart. Output is fully
// ordered, so identical models serialize to identical bytes.

const defFileName = "viktor.xml.def"

type xmlProject struct {
	XMLName    xml.Name       `xml:"project"`
	Xmlns      string         `xml:"xmlns,attr"`
	Def        xmlDefRef      `xml:"def"`
	Containers []xmlContainer `xml:"container"`
}

type xmlDefRef struct {
	URI string `xml:"uri,attr"`
}

type xmlContainer struct {
	ID    string   `xml:"id,attr"`
	T     string   `xml:"t,attr"`
	Table xmlTable `xml:"table"`
}

type xmlTable struct {
	ID     string    `xml:"id,attr"`
	T      string    `xml:"t,attr"`
	Name   string    `xml:"name,attr"`
	Header xmlHeader `xml:"h"`
	Rows   []xmlObj  `xml:"obj"`
}

type xmlHeader struct {
	Cols []xmlCol
}

// xmlCol and xmlParam carry their element name (h0, h1, ... / p0, p1, ...)
// in XMLName.
type xmlCol struct {
	XMLName xml.Name
	T       string `xml:"t,attr"`
}

type xmlObj struct {
	Nr   int    `xml:"nr,attr"`
	Name string `xml:"name,attr"`
	Ps   []xmlParam
}

type xmlParam struct {
	XMLName xml.Name
	V       string `xml:"v,attr"`
}

type xmlDefProject struct {
	XMLName    xml.Name          `xml:"def_project"`
	Xmlns      string            `xml:"xmlns,attr"`
	Containers []xmlContainerDef `xml:"container_def"`
}

type xmlContainerDef struct {
	ID   string `xml:"id,attr"`
	T    string `xml:"t,attr"`
	Cols []xmlCol
}

const sciaNamespace = "http://www.scia.cz"

// tableSpec is one exported entity table: its engine type id, the column
// names, and the data rows.
type tableSpec struct {
	t       string
	name    string
	columns []string
	rows    []row
}

type row struct {
	name   string
	values []string
}

// containerID derives a stable id from the table type, so re-exported
// models are byte-identical.
func containerID(t string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(t)).String()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// tableDefs lists every exported table with its columns, in fixed order.
// The definition document is exactly this list without rows, which is why
// the def artifact of an empty model is the canonical companion file.
func (m *Model) tableSpecs() []tableSpec {
	specs := []tableSpec{
		{
			t:       "EP_Material.EP_Material.1",
			name:    "Materials",
			columns: []string{"Name"},
		},
		{
			t:       "EP_DSG_Elements.EP_StructNode.1",
			name:    "Nodes",
			columns: []string{"Name", "XCoord", "YCoord", "ZCoord"},
		},
		{
			t:       "EP_CrossSection.EP_CrossSection.1",
			name:    "Cross-sections",
			columns: []string{"Name", "Material", "Shape", "Param1", "Param2"},
		},
		{
			t:       "EP_DSG_Elements.EP_Beam.1",
			name:    "Beams",
			columns: []string{"Name", "BeginNode", "EndNode", "CrossSection"},
		},
		{
			t:       "EP_DSG_Elements.EP_Plane.1",
			name:    "Planes",
			columns: []string{"Name", "Thickness", "Material", "Nodes"},
		},
		{
			t:       "EP_Subsoil.EP_Subsoil.1",
			name:    "Subsoils",
			columns: []string{"Name", "Stiffness"},
		},
		{
			t:       "EP_Model.EP_SurfaceSupportSurface.1",
			name:    "Surface supports",
			columns: []string{"Plane", "Subsoil"},
		},
		{
			t:       "EP_Model.EP_LineSupportLine.1",
			name:    "Line supports",
			columns: []string{"Name", "Beam", "X", "Y", "Z", "Rx", "Ry", "Rz", "StiffnessX", "StiffnessY", "StiffnessZ", "StiffnessRx", "StiffnessRy", "StiffnessRz"},
		},
		{
			t:       "EP_Model.EP_PointSupportPoint.1",
			name:    "Point supports",
			columns: []string{"Name", "Node", "X", "Y", "Z", "Rx", "Ry", "Rz", "StiffnessX", "StiffnessY", "StiffnessZ", "StiffnessRx", "StiffnessRy", "StiffnessRz"},
		},
		{
			t:       "EP_LoadGroup.EP_LoadGroup.1",
			name:    "Load groups",
			columns: []string{"Name", "Load", "Relation", "LoadType"},
		},
		{
			t:       "EP_LoadCase.EP_LoadCase.1",
			name:    "Load cases",
			columns: []string{"Name", "Description", "LoadGroup", "VariableType", "Specification", "Duration"},
		},
		{
			t:       "EP_LoadCombi.EP_LoadCombi.1",
			name:    "Load combinations",
			columns: []string{"Name", "Kind", "Cases"},
		},
		{
			t:       "EP_Loads.EP_SurfaceLoadFree.1",
			name:    "Surface loads",
			columns: []string{"Name", "LoadCase", "Plane", "Direction", "Type", "Value", "Location"},
		},
	}

	for _, mat := range collectMaterials(m) {
		specs[0].rows = append(specs[0].rows, row{name: mat.Name, values: []string{mat.Name}})
	}
	for _, n := range m.Nodes {
		specs[1].rows = append(specs[1].rows, row{
			name:   n.Name,
			values: []string{n.Name, ftoa(n.X), ftoa(n.Y), ftoa(n.Z)},
		})
	}
	for _, cs := range m.CrossSections {
		p1, p2 := ftoa(cs.DiameterM), ""
		if cs.Shape == SectionRectangular {
			p1, p2 = ftoa(cs.WidthM), ftoa(cs.HeightM)
		}
		specs[2].rows = append(specs[2].rows, row{
			name:   cs.Name,
			values: []string{cs.Name, cs.Material.Name, string(cs.Shape), p1, p2},
		})
	}
	for _, b := range m.Beams {
		specs[3].rows = append(specs[3].rows, row{
			name:   b.Name,
			values: []string{b.Name, b.BeginNode.Name, b.EndNode.Name, b.CrossSection.Name},
		})
	}
	for _, p := range m.Planes {
		ring := ""
		for i, n := range p.Ring() {
			if i > 0 {
				ring += ";"
			}
			ring += n.Name
		}
		specs[4].rows = append(specs[4].rows, row{
			name:   p.Name,
			values: []string{p.Name, ftoa(p.ThicknessM), p.Material.Name, ring},
		})
	}
	for _, s := range m.Subsoils {
		specs[5].rows = append(specs[5].rows, row{
			name:   s.Name,
			values: []string{s.Name, ftoa(s.Stiffness)},
		})
	}
	for i, s := range m.SurfaceSupports {
		specs[6].rows = append(specs[6].rows, row{
			name:   fmt.Sprintf("surface_support_%d", i),
			values: []string{s.Plane.Name, s.Subsoil.Name},
		})
	}
	for _, s := range m.LineSupports {
		specs[7].rows = append(specs[7].rows, row{
			name: s.Name,
			values: []string{
				s.Name, s.Beam.Name,
				string(s.X), string(s.Y), string(s.Z),
				string(s.RX), string(s.RY), string(s.RZ),
				ftoa(s.StiffnessX), ftoa(s.StiffnessY), ftoa(s.StiffnessZ),
				ftoa(s.StiffnessRX), ftoa(s.StiffnessRY), ftoa(s.StiffnessRZ),
			},
		})
	}
	for _, s := range m.PointSupports {
		values := []string{s.Name, s.Node.Name}
		for _, f := range s.Freedom {
			values = append(values, string(f))
		}
		for _, k := range s.Stiffness {
			values = append(values, ftoa(k))
		}
		specs[8].rows = append(specs[8].rows, row{name: s.Name, values: values})
	}
	for _, g := range m.LoadGroups {
		specs[9].rows = append(specs[9].rows, row{
			name:   g.Name,
			values: []string{g.Name, g.Load, g.Relation, g.LoadType},
		})
	}
	for _, c := range m.LoadCases {
		specs[10].rows = append(specs[10].rows, row{
			name:   c.Name,
			values: []string{c.Name, c.Description, c.Group.Name, c.VariableType, c.Specification, c.Duration},
		})
	}
	for _, c := range m.LoadCombinations {
		cases := ""
		for i, cf := range c.Cases {
			if i > 0 {
				cases += ";"
			}
			cases += fmt.Sprintf("%s=%s", cf.Case.Name, ftoa(cf.Factor))
		}
		specs[11].rows = append(specs[11].rows, row{
			name:   c.Name,
			values: []string{c.Name, c.Kind, cases},
		})
	}
	for _, l := range m.SurfaceLoads {
		specs[12].rows = append(specs[12].rows, row{
			name:   l.Name,
			values: []string{l.Name, l.Case.Name, l.Plane.Name, l.Direction, l.LoadType, ftoa(l.Value), l.Location},
		})
	}
	return specs
}

// collectMaterials gathers the distinct materials referenced by sections
// and planes, first-use order.
func collectMaterials(m *Model) []Material {
	seen := make(map[string]bool)
	var out []Material
	add := func(mat Material) {
		if mat.Name == "" || seen[mat.Name] {
			return
		}
		seen[mat.Name] = true
		out = append(out, mat)
	}
	for _, p := range m.Planes {
		add(p.Material)
	}
	for _, cs := range m.CrossSections {
		add(cs.Material)
	}
	return out
}

func headerCols(columns []string) []xmlCol {
	cols := make([]xmlCol, len(columns))
	for i, c := range columns {
		cols[i] = xmlCol{
			XMLName: xml.Name{Local: fmt.Sprintf("h%d", i)},
			T:       c,
		}
	}
	return cols
}

// GenerateXML serializes the model to the engine's exchange data document
// and its companion definition document, in that order.
func (m *Model) GenerateXML() (data []byte, def []byte, err error) {
	specs := m.tableSpecs()

	project := xmlProject{
		Xmlns: sciaNamespace,
		Def:   xmlDefRef{URI: defFileName},
	}
	defProject := xmlDefProject{Xmlns: sciaNamespace}

	for _, spec := range specs {
		id := containerID(spec.t)
		table := xmlTable{
			ID:     containerID(spec.t + ".table"),
			T:      spec.t,
			Name:   spec.name,
			Header: xmlHeader{Cols: headerCols(spec.columns)},
		}
		for i, r := range spec.rows {
			obj := xmlObj{Nr: i + 1, Name: r.name}
			for j, v := range r.values {
				obj.Ps = append(obj.Ps, xmlParam{
					XMLName: xml.Name{Local: fmt.Sprintf("p%d", j)},
					V:       v,
				})
			}
			table.Rows = append(table.Rows, obj)
		}
		project.Containers = append(project.Containers, xmlContainer{ID: id, T: spec.t, Table: table})
		defProject.Containers = append(defProject.Containers, xmlContainerDef{
			ID:   id,
			T:    spec.t,
			Cols: headerCols(spec.columns),
		})
	}

	data, err = xml.MarshalIndent(project, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshal exchange data: %w", err)
	}
	def, err = xml.MarshalIndent(defProject, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshal exchange definition: %w", err)
	}
	data = append([]byte(xml.Header), data...)
	def = append([]byte(xml.Header), def...)
	return data, def, nil
}
