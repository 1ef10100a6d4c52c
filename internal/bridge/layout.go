package bridge

import (
	"math"

	"Trestle/internal/geom"
	"Trestle/internal/params"
)

// GenerateLayout builds the visual model of the bridge above ground: deck,
// road surfaces, taluds and support piers. The opacity multiplier lets the
// caller render the whole layout ghosted behind the foundation view.
func GenerateLayout(p params.Params, d params.Design, opacity float64) (*geom.Group, error) {
	p.Normalize(d)
	if err := p.Validate(d); err != nil {
		return nil, err
	}

	g := geom.NewGroup()

	width := p.WidthM
	length := p.LengthM
	height := p.HeightM
	deckThickness := p.DeckThicknessM

	bridgeMaterial := geom.Material{Name: "bridge", Roughness: 1, Opacity: opacity}
	supportMaterial := geom.Material{Name: "support_piles", Roughness: 1, Opacity: math.Max(opacity, 0.5)}
	laneMaterial := geom.Material{Name: "lanes", Roughness: 1, Color: geom.Color{R: 42, G: 41, B: 34}, Opacity: opacity}
	bikeLaneMaterial := geom.Material{Name: "bike_lanes", Roughness: 1, Color: geom.Color{R: 109, G: 52, B: 45}, Opacity: opacity}
	laneMarkingMaterial := geom.Material{Name: "lane_markings", Roughness: 1, Color: geom.White(), Opacity: opacity}
	taludMaterial := geom.Material{Name: "talud", Roughness: 1, Color: geom.Green(), Opacity: opacity}

	taludXWidth := height * math.Tan(d.TaludAngleRad)
	taludLength := height / math.Cos(d.TaludAngleRad)

	// The road beneath the bridge crosses at the crossing angle; its
	// profiles are sheared accordingly. Zero angle crosses square.
	crossShear := math.Tan(p.CrossingAngleDeg * math.Pi / 180)
	shear := func(pts []geom.Point) []geom.Point {
		out := make([]geom.Point, len(pts))
		for i, pt := range pts {
			out[i] = geom.Point{X: pt.X + crossShear*pt.Y, Y: pt.Y, Z: pt.Z}
		}
		return out
	}

	deckProfile := []geom.Point{
		{X: 0, Y: 0},
		{X: 0, Y: width},
		{X: length, Y: width},
		{X: length, Y: 0},
		{X: 0, Y: 0},
	}

	bikeLaneProfile := []geom.Point{
		{X: 0, Y: 0},
		{X: 0, Y: width / 4},
		{X: length, Y: width / 4},
		{X: length, Y: 0},
		{X: 0, Y: 0},
	}

	laneProfile := shear([]geom.Point{
		{X: taludXWidth, Y: -length},
		{X: taludXWidth, Y: length},
		{X: length - taludXWidth, Y: length},
		{X: length - taludXWidth, Y: -length},
		{X: taludXWidth, Y: -length},
	})

	laneMarkingProfile := shear([]geom.Point{
		{X: 0, Y: -length},
		{X: 0, Y: length},
		{X: 1, Y: length},
		{X: 1, Y: -length},
		{X: 0, Y: -length},
	})

	taludProfile := []geom.Point{
		{X: 0, Y: -length},
		{X: 0, Y: length},
		{X: taludLength, Y: length},
		{X: taludLength, Y: -length},
		{X: 0, Y: -length},
	}

	// Deck slab.
	deck := geom.NewExtrusion(deckProfile, geom.Line{
		Start: geom.Point{Z: height},
		End:   geom.Point{Z: height + deckThickness},
	})
	deck.SetMaterial(bridgeMaterial)
	g.Add(deck)

	// Asphalt strip over the full deck.
	deckLane := geom.NewExtrusion(deckProfile, geom.Line{
		Start: geom.Point{Z: height + deckThickness},
		End:   geom.Point{Z: height + deckThickness + d.LaneThicknessM},
	})
	deckLane.SetMaterial(laneMaterial)
	g.Add(deckLane)

	// Bike lanes along both deck edges, a quarter of the width each.
	bikeLaneLeft := geom.NewExtrusion(bikeLaneProfile, geom.Line{
		Start: geom.Point{Z: height + deckThickness},
		End:   geom.Point{Z: height + deckThickness + d.BikeThicknessM},
	})
	bikeLaneLeft.SetMaterial(bikeLaneMaterial)
	g.Add(bikeLaneLeft)

	bikeLaneRight := geom.NewExtrusion(bikeLaneProfile, geom.Line{
		Start: geom.Point{Y: width * 0.75, Z: height + deckThickness},
		End:   geom.Point{Y: width * 0.75, Z: height + deckThickness + d.BikeThicknessM},
	})
	bikeLaneRight.SetMaterial(bikeLaneMaterial)
	g.Add(bikeLaneRight)

	// Roadway passing under the bridge.
	lane := geom.NewExtrusion(laneProfile, geom.Line{
		Start: geom.Point{Z: -1},
		End:   geom.Point{Z: 0},
	})
	lane.SetMaterial(laneMaterial)
	g.Add(lane)

	// Lane markings on the underpass, one strip per pier bay.
	for _, x := range geom.Linspace(taludXWidth+d.MarkInsetM, length-taludXWidth-d.MarkInsetM, p.SupportAmount+2) {
		marking := geom.NewExtrusion(laneMarkingProfile, geom.Line{
			Start: geom.Point{X: x},
			End:   geom.Point{X: x, Z: d.MarkThicknessM},
		})
		marking.SetMaterial(laneMarkingMaterial)
		g.Add(marking)
	}

	// Embankments on both ends.
	taludLeft := geom.NewExtrusion(taludProfile, geom.Line{
		Start: geom.Point{X: taludXWidth, Z: math.Tan(d.TaludAngleRad) - deckThickness},
		End:   geom.Point{X: taludXWidth - 1, Z: -deckThickness},
	})
	taludLeft.SetMaterial(taludMaterial)
	g.Add(taludLeft)

	taludRight := geom.NewExtrusion(taludProfile, geom.Line{
		Start: geom.Point{X: length - taludXWidth, Z: -math.Tan(d.TaludAngleRad)},
		End:   geom.Point{X: length - taludXWidth - 1},
	})
	taludRight.SetMaterial(taludMaterial)
	g.Add(taludRight)

	// Support piers, same spacing as the structural model.
	for _, x := range geom.Linspace(taludXWidth, length-taludXWidth, p.SupportAmount+2) {
		for _, y := range geom.Linspace(d.PierDiameterM, width-d.PierDiameterM, p.SupportPiles) {
			pier := geom.NewCircularExtrusion(d.PierDiameterM, geom.Line{
				Start: geom.Point{X: x, Y: y},
				End:   geom.Point{X: x, Y: y, Z: height},
			})
			pier.SetMaterial(supportMaterial)
			g.Add(pier)
		}
	}

	return g, nil
}
