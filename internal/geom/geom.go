package geom

// Scene primitives handed to the rendering collaborator. Everything is plain
// data with JSON tags; the renderer only needs extrusions, cylinders, boxes
// and spheres with material tags.

// Point is a 3D point. 2D profile points leave Z at zero.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Line is a directed segment used as an extrusion axis.
type Line struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Color is an RGB triple, 0..255 per channel.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

func White() Color { return Color{255, 255, 255} }
func Green() Color { return Color{0, 255, 0} }

// Material tags a solid with render properties.
type Material struct {
	Name      string  `json:"name"`
	Color     Color   `json:"color"`
	Opacity   float64 `json:"opacity"`
	Roughness float64 `json:"roughness"`
}

// Solid is one renderable primitive.
type Solid interface {
	SetMaterial(m Material)
}

// Extrusion sweeps a closed planar profile (first point == last point)
// along Line. The line start doubles as the profile's placement offset.
type Extrusion struct {
	Kind     string   `json:"kind"`
	Profile  []Point  `json:"profile"`
	Line     Line     `json:"line"`
	Material Material `json:"material"`
}

func (e *Extrusion) SetMaterial(m Material) { e.Material = m }

// NewExtrusion builds a profile extrusion.
func NewExtrusion(profile []Point, line Line) *Extrusion {
	return &Extrusion{Kind: "extrusion", Profile: profile, Line: line}
}

// CircularExtrusion is a cylinder of the given diameter along Line.
type CircularExtrusion struct {
	Kind     string   `json:"kind"`
	Diameter float64  `json:"diameter"`
	Line     Line     `json:"line"`
	Material Material `json:"material"`
}

func (e *CircularExtrusion) SetMaterial(m Material) { e.Material = m }

func NewCircularExtrusion(diameter float64, line Line) *CircularExtrusion {
	return &CircularExtrusion{Kind: "circular_extrusion", Diameter: diameter, Line: line}
}

// RectangularExtrusion is a box of cross-section Width x Height along Line.
type RectangularExtrusion struct {
	Kind     string   `json:"kind"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Line     Line     `json:"line"`
	Material Material `json:"material"`
}

func (e *RectangularExtrusion) SetMaterial(m Material) { e.Material = m }

func NewRectangularExtrusion(width, height float64, line Line) *RectangularExtrusion {
	return &RectangularExtrusion{Kind: "rectangular_extrusion", Width: width, Height: height, Line: line}
}

// Sphere at Center with Radius.
type Sphere struct {
	Kind     string   `json:"kind"`
	Center   Point    `json:"center"`
	Radius   float64  `json:"radius"`
	Material Material `json:"material"`
}

func (s *Sphere) SetMaterial(m Material) { s.Material = m }

func NewSphere(center Point, radius float64) *Sphere {
	return &Sphere{Kind: "sphere", Center: center, Radius: radius}
}

// Group is an ordered, composable collection of solids.
type Group struct {
	Children []Solid `json:"children"`
}

func NewGroup() *Group {
	return &Group{}
}

// Add appends solids in order.
func (g *Group) Add(solids ...Solid) {
	g.Children = append(g.Children, solids...)
}

// Merge absorbs the children of another group, preserving their order.
func (g *Group) Merge(other *Group) {
	g.Children = append(g.Children, other.Children...)
}

// Linspace returns n evenly spaced samples over [start, stop], endpoints
// included. n == 1 returns just start.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	// Guard the last sample against accumulation error.
	out[n-1] = stop
	return out
}
