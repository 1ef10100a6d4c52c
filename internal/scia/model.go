package scia

// Package scia holds the structural model handed to the external FEA
// engine: nodes, beams, planes, cross-sections, supports and load
// bookkeeping. The model is a plain in-memory description; serialization to
// the engine's exchange format lives in xml.go and the engine invocation in
// analysis.go.

// Freedom is the restraint of a single degree of freedom.
type Freedom string

const (
	Free     Freedom = "Free"
	Flexible Freedom = "Flexible"
)

// Role classifies a beam by its function in the bridge. The foundation
// visualization selects beams by role instead of relying on creation order.
type Role string

const (
	RoleVerticalSupport Role = "vertical_support"
	RoleFoundationPile  Role = "foundation_pile"
	RoleAbutmentPile    Role = "abutment_pile"
)

// Material is a named engine material reference.
type Material struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Node is a named 3D point. Identity is name-keyed: two nodes with the same
// coordinates but different names are distinct entities.
type Node struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

// SectionShape discriminates cross-section geometry.
type SectionShape string

const (
	SectionCircular    SectionShape = "circular"
	SectionRectangular SectionShape = "rectangular"
)

// CrossSection is a named beam cross-section. DiameterM is set for circular
// sections, WidthM/HeightM for rectangular ones.
type CrossSection struct {
	Name      string       `json:"name"`
	Material  Material     `json:"material"`
	Shape     SectionShape `json:"shape"`
	DiameterM float64      `json:"diameter_m,omitempty"`
	WidthM    float64      `json:"width_m,omitempty"`
	HeightM   float64      `json:"height_m,omitempty"`
}

// Beam connects two nodes with a cross-section.
type Beam struct {
	Name         string        `json:"name"`
	BeginNode    *Node         `json:"begin_node"`
	EndNode      *Node         `json:"end_node"`
	CrossSection *CrossSection `json:"cross_section"`
	Role         Role          `json:"role"`
}

// Plane is a slab: an ordered polygon of corner nodes with a thickness.
type Plane struct {
	Name       string   `json:"name"`
	Corners    []*Node  `json:"corners"`
	ThicknessM float64  `json:"thickness_m"`
	Material   Material `json:"material"`
}

// Ring returns the closed corner ring, first node repeated last.
func (p *Plane) Ring() []*Node {
	if len(p.Corners) == 0 {
		return nil
	}
	return append(append([]*Node{}, p.Corners...), p.Corners[0])
}

// Subsoil is a soil bedding model shared by surface supports.
type Subsoil struct {
	Name      string  `json:"name"`
	Stiffness float64 `json:"stiffness"` // N/m per m2
}

// SurfaceSupport beds a plane on a subsoil.
type SurfaceSupport struct {
	Plane   *Plane   `json:"plane"`
	Subsoil *Subsoil `json:"subsoil"`
}

// LineSupport restrains a beam along its full length, per degree of
// freedom. Stiffnesses apply to the Flexible freedoms only.
type LineSupport struct {
	Name        string  `json:"name"`
	Beam        *Beam   `json:"beam"`
	X           Freedom `json:"x"`
	Y           Freedom `json:"y"`
	Z           Freedom `json:"z"`
	RX          Freedom `json:"rx"`
	RY          Freedom `json:"ry"`
	RZ          Freedom `json:"rz"`
	StiffnessX  float64 `json:"stiffness_x"`
	StiffnessY  float64 `json:"stiffness_y"`
	StiffnessZ  float64 `json:"stiffness_z"`
	StiffnessRX float64 `json:"stiffness_rx"`
	StiffnessRY float64 `json:"stiffness_ry"`
	StiffnessRZ float64 `json:"stiffness_rz"`
}

// PointSupport restrains a single node. Freedom and Stiffness are ordered
// x, y, z, rx, ry, rz.
type PointSupport struct {
	Name      string     `json:"name"`
	Node      *Node      `json:"node"`
	Freedom   [6]Freedom `json:"freedom"`
	Stiffness [6]float64 `json:"stiffness"`
}

// LoadGroup options follow the engine's vocabulary.
type LoadGroup struct {
	Name     string `json:"name"`
	Load     string `json:"load"`      // e.g. "variable"
	Relation string `json:"relation"`  // e.g. "standard"
	LoadType string `json:"load_type"` // e.g. "cat_g"
}

// LoadCase is a variable static load case under a load group.
type LoadCase struct {
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Group         *LoadGroup `json:"group"`
	VariableType  string     `json:"variable_type"` // "static"
	Specification string     `json:"specification"` // "standard"
	Duration      string     `json:"duration"`      // "short"
}

// CaseFactor pairs a load case with its combination factor. Combinations
// keep an ordered slice so serialization stays deterministic.
type CaseFactor struct {
	Case   *LoadCase `json:"case"`
	Factor float64   `json:"factor"`
}

// LoadCombination combines load cases with factors.
type LoadCombination struct {
	Name  string       `json:"name"`
	Kind  string       `json:"kind"` // e.g. "envelope_serviceability"
	Cases []CaseFactor `json:"cases"`
}

// SurfaceLoad is a pressure load on a plane. Value is signed; downward
// loads on global Z are negative.
type SurfaceLoad struct {
	Name      string    `json:"name"`
	Case      *LoadCase `json:"case"`
	Plane     *Plane    `json:"plane"`
	Direction string    `json:"direction"` // "Z"
	LoadType  string    `json:"load_type"` // "force"
	Value     float64   `json:"value"`     // N/m2
	Location  string    `json:"location"`  // "length"
}

// Model is the complete structural description for one run. All slices
// preserve creation order.
type Model struct {
	Nodes            []*Node
	Beams            []*Beam
	Planes           []*Plane
	CrossSections    []*CrossSection
	Subsoils         []*Subsoil
	SurfaceSupports  []*SurfaceSupport
	LineSupports     []*LineSupport
	PointSupports    []*PointSupport
	LoadGroups       []*LoadGroup
	LoadCases        []*LoadCase
	LoadCombinations []*LoadCombination
	SurfaceLoads     []*SurfaceLoad

	nodesByName map[string]*Node
}

func NewModel() *Model {
	return &Model{nodesByName: make(map[string]*Node)}
}

// Node returns the node registered under name, creating it at (x, y, z) on
// first use. A name seen before returns the existing node unchanged;
// coincident coordinates under different names stay distinct entities.
func (m *Model) Node(name string, x, y, z float64) *Node {
	if n, ok := m.nodesByName[name]; ok {
		return n
	}
	n := &Node{Name: name, X: x, Y: y, Z: z}
	m.nodesByName[name] = n
	m.Nodes = append(m.Nodes, n)
	return n
}

func (m *Model) NewCircularSection(name string, mat Material, diameter float64) *CrossSection {
	cs := &CrossSection{Name: name, Material: mat, Shape: SectionCircular, DiameterM: diameter}
	m.CrossSections = append(m.CrossSections, cs)
	return cs
}

func (m *Model) NewRectangularSection(name string, mat Material, width, height float64) *CrossSection {
	cs := &CrossSection{Name: name, Material: mat, Shape: SectionRectangular, WidthM: width, HeightM: height}
	m.CrossSections = append(m.CrossSections, cs)
	return cs
}

func (m *Model) NewBeam(name string, begin, end *Node, cs *CrossSection, role Role) *Beam {
	b := &Beam{Name: name, BeginNode: begin, EndNode: end, CrossSection: cs, Role: role}
	m.Beams = append(m.Beams, b)
	return b
}

func (m *Model) NewPlane(name string, corners []*Node, thickness float64, mat Material) *Plane {
	p := &Plane{Name: name, Corners: corners, ThicknessM: thickness, Material: mat}
	m.Planes = append(m.Planes, p)
	return p
}

func (m *Model) NewSubsoil(name string, stiffness float64) *Subsoil {
	s := &Subsoil{Name: name, Stiffness: stiffness}
	m.Subsoils = append(m.Subsoils, s)
	return s
}

func (m *Model) NewSurfaceSupport(plane *Plane, subsoil *Subsoil) *SurfaceSupport {
	s := &SurfaceSupport{Plane: plane, Subsoil: subsoil}
	m.SurfaceSupports = append(m.SurfaceSupports, s)
	return s
}

func (m *Model) NewLineSupport(ls LineSupport) *LineSupport {
	s := ls
	m.LineSupports = append(m.LineSupports, &s)
	return &s
}

func (m *Model) NewPointSupport(name string, node *Node, freedom [6]Freedom, stiffness [6]float64) *PointSupport {
	s := &PointSupport{Name: name, Node: node, Freedom: freedom, Stiffness: stiffness}
	m.PointSupports = append(m.PointSupports, s)
	return s
}

func (m *Model) NewLoadGroup(name, load, relation, loadType string) *LoadGroup {
	g := &LoadGroup{Name: name, Load: load, Relation: relation, LoadType: loadType}
	m.LoadGroups = append(m.LoadGroups, g)
	return g
}

func (m *Model) NewVariableLoadCase(name, description string, group *LoadGroup, variableType, specification, duration string) *LoadCase {
	c := &LoadCase{
		Name:          name,
		Description:   description,
		Group:         group,
		VariableType:  variableType,
		Specification: specification,
		Duration:      duration,
	}
	m.LoadCases = append(m.LoadCases, c)
	return c
}

func (m *Model) NewLoadCombination(name, kind string, cases []CaseFactor) *LoadCombination {
	c := &LoadCombination{Name: name, Kind: kind, Cases: cases}
	m.LoadCombinations = append(m.LoadCombinations, c)
	return c
}

func (m *Model) NewSurfaceLoad(name string, lc *LoadCase, plane *Plane, direction, loadType string, value float64, location string) *SurfaceLoad {
	l := &SurfaceLoad{
		Name:      name,
		Case:      lc,
		Plane:     plane,
		Direction: direction,
		LoadType:  loadType,
		Value:     value,
		Location:  location,
	}
	m.SurfaceLoads = append(m.SurfaceLoads, l)
	return l
}

// BeamsWithRole returns the beams carrying the given role, in creation
// order.
func (m *Model) BeamsWithRole(role Role) []*Beam {
	var out []*Beam
	for _, b := range m.Beams {
		if b.Role == role {
			out = append(out, b)
		}
	}
	return out
}
