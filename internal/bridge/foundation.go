package bridge

import (
	"math"

	"Trestle/internal/geom"
	"Trestle/internal/params"
	"Trestle/internal/scia"
)

// GenerateFoundations renders the structural model: a sphere per node, a
// thin cylinder per beam, and a rectangular prism over every pile. It must
// run after GenerateModel for the same parameter set, since it reads the
// model's node and beam coordinates.
func GenerateFoundations(p params.Params, m *scia.Model, d params.Design, opacity float64) (*geom.Group, error) {
	p.Normalize(d)
	if err := p.Validate(d); err != nil {
		return nil, err
	}

	g := geom.NewGroup()

	width := p.WidthM
	length := p.LengthM
	height := p.HeightM
	deckThickness := p.DeckThicknessM
	pileThickness := p.PileThicknessMM * 1e-3

	foundationMaterial := geom.Material{Name: "foundation", Roughness: 1, Opacity: opacity}
	nodeMaterial := geom.Material{Name: "node", Color: geom.Green(), Opacity: 1}
	deckMaterial := geom.Material{Name: "deck", Roughness: 1, Opacity: opacity}

	slabThickness := deckThickness
	taludXWidth := height * math.Tan(d.TaludAngleRad)

	deckProfile := []geom.Point{
		{X: 0, Y: 0},
		{X: 0, Y: width},
		{X: length, Y: width},
		{X: length, Y: 0},
		{X: 0, Y: 0},
	}

	slabProfile := []geom.Point{
		{X: -d.SlabWidthM / 2, Y: 0},
		{X: -d.SlabWidthM / 2, Y: width},
		{X: d.SlabWidthM / 2, Y: width},
		{X: d.SlabWidthM / 2, Y: 0},
		{X: -d.SlabWidthM / 2, Y: 0},
	}

	// Every node in the model as a green marker sphere.
	for _, n := range m.Nodes {
		marker := geom.NewSphere(geom.Point{X: n.X, Y: n.Y, Z: n.Z}, d.NodeSphereR)
		marker.SetMaterial(nodeMaterial)
		g.Add(marker)
	}

	// A thin cylinder for every beam.
	for _, b := range m.Beams {
		line := geom.Line{
			Start: geom.Point{X: b.BeginNode.X, Y: b.BeginNode.Y, Z: b.BeginNode.Z},
			End:   geom.Point{X: b.EndNode.X, Y: b.EndNode.Y, Z: b.EndNode.Z},
		}
		cyl := geom.NewCircularExtrusion(d.BeamLineD, line)
		cyl.SetMaterial(deckMaterial)
		g.Add(cyl)
	}

	// Piles additionally get their full rectangular section. Selection is
	// by beam role, so the model builder is free to reorder beam creation.
	for _, b := range m.Beams {
		if b.Role == scia.RoleVerticalSupport {
			continue
		}
		line := geom.Line{
			Start: geom.Point{X: b.BeginNode.X, Y: b.BeginNode.Y, Z: b.BeginNode.Z},
			End:   geom.Point{X: b.EndNode.X, Y: b.EndNode.Y, Z: b.EndNode.Z},
		}
		prism := geom.NewRectangularExtrusion(pileThickness, pileThickness, line)
		prism.SetMaterial(foundationMaterial)
		g.Add(prism)
	}

	// Deck slab for context.
	deck := geom.NewExtrusion(deckProfile, geom.Line{
		Start: geom.Point{Z: height},
		End:   geom.Point{Z: height + deckThickness},
	})
	deck.SetMaterial(foundationMaterial)
	g.Add(deck)

	// Foundation slabs under each support line.
	for _, x := range geom.Linspace(taludXWidth, length-taludXWidth, p.SupportAmount+2) {
		slab := geom.NewExtrusion(slabProfile, geom.Line{
			Start: geom.Point{X: x, Z: -slabThickness / 2},
			End:   geom.Point{X: x, Z: slabThickness / 2},
		})
		slab.SetMaterial(foundationMaterial)
		g.Add(slab)
	}

	// Abutment slabs at both deck ends.
	abutmentLeft := geom.NewExtrusion(slabProfile, geom.Line{
		Start: geom.Point{Z: height - slabThickness},
		End:   geom.Point{Z: height},
	})
	abutmentLeft.SetMaterial(foundationMaterial)
	g.Add(abutmentLeft)

	abutmentRight := geom.NewExtrusion(slabProfile, geom.Line{
		Start: geom.Point{X: length, Z: height - slabThickness},
		End:   geom.Point{X: length, Z: height},
	})
	abutmentRight.SetMaterial(foundationMaterial)
	g.Add(abutmentRight)

	return g, nil
}
