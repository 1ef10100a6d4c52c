package bridge

import (
	"fmt"
	"math"

	"Trestle/internal/geom"
	"Trestle/internal/params"
	"Trestle/internal/scia"
)

// GenerateModel builds the structural model for one parameter set: deck
// plane, foundation slabs, vertical support piers, straight and angled
// foundation piles, soil supports and the load bookkeeping. The model is a
// pure function of the inputs; identical parameters produce an identical
// model, node names included.
func GenerateModel(p params.Params, d params.Design) (*scia.Model, error) {
	p.Normalize(d)
	if err := p.Validate(d); err != nil {
		return nil, err
	}

	m := scia.NewModel()

	width := p.WidthM
	length := p.LengthM
	height := p.HeightM
	deckThickness := p.DeckThicknessM

	// Unit conversions happen here and nowhere else: pile thickness mm->m,
	// soil stiffness MN/m->N/m, deck load kN/m2->N/m2 acting downward.
	pileThickness := p.PileThicknessMM * 1e-3
	soilStiffness := p.SoilStiffnessMN * 1e6
	deckLoad := p.DeckLoadKNM2 * -1e3

	pileAngleRad := p.PileAngleDeg * math.Pi / 180
	taludXWidth := height * math.Tan(d.TaludAngleRad)
	slabThickness := deckThickness

	material := scia.Material{ID: 0, Name: "concrete_slab"}
	sectionMaterial := scia.Material{ID: 0, Name: "C30/37"}

	// Deck
	deckNodes := []*scia.Node{
		m.Node("node_deck_0", 0, 0, height),
		m.Node("node_deck_1", 0, width, height),
		m.Node("node_deck_2", length, width, height),
		m.Node("node_deck_3", length, 0, height),
	}
	deckPlane := m.NewPlane("deck_plane", deckNodes, deckThickness, material)

	xSupports := geom.Linspace(taludXWidth, length-taludXWidth, p.SupportAmount+2)
	ySupports := geom.Linspace(d.PierDiameterM, width-d.PierDiameterM, p.SupportPiles)
	slabOffsets := [2]float64{-d.SlabWidthM / 3, d.SlabWidthM / 3}

	// One foundation slab per support line.
	var foundationSlabs []*scia.Plane
	for xi, x := range xSupports {
		slab := m.NewPlane(
			fmt.Sprintf("support_plane_%d", xi),
			[]*scia.Node{
				m.Node(fmt.Sprintf("node_slab_%d_0", xi), x-d.SlabWidthM/2, 0, 0),
				m.Node(fmt.Sprintf("node_slab_%d_1", xi), x-d.SlabWidthM/2, width, 0),
				m.Node(fmt.Sprintf("node_slab_%d_2", xi), x+d.SlabWidthM/2, width, 0),
				m.Node(fmt.Sprintf("node_slab_%d_3", xi), x+d.SlabWidthM/2, 0, 0),
			},
			slabThickness,
			material,
		)
		foundationSlabs = append(foundationSlabs, slab)
	}

	// Vertical support piers between ground and deck.
	pierSection := m.NewCircularSection("circular_cross_section_support", sectionMaterial, d.PierDiameterM)
	for xi, x := range xSupports {
		for yi, y := range ySupports {
			m.NewBeam(
				fmt.Sprintf("support_beam_%d_%d", xi, yi),
				m.Node(fmt.Sprintf("node_support_bottom_%d_%d", xi, yi), x, y, 0),
				m.Node(fmt.Sprintf("node_support_top_%d_%d", xi, yi), x, y, height),
				pierSection,
				scia.RoleVerticalSupport,
			)
		}
	}

	// Straight foundation piles under the support slabs, two per pier at a
	// third of the slab width to either side.
	pileSection := m.NewRectangularSection("rectangular_cross_section_foundation", sectionMaterial, pileThickness, pileThickness)
	var straightPiles []*scia.Beam
	for xi, x := range xSupports {
		for yi, y := range ySupports {
			for zi, offset := range slabOffsets {
				pile := m.NewBeam(
					fmt.Sprintf("foundation_pile_%d_%d_%d", xi, yi, zi),
					m.Node(fmt.Sprintf("node_support_foundation_bottom_%d_%d_%d", xi, yi, zi), x+offset, y, -p.PileLengthM),
					m.Node(fmt.Sprintf("node_support_foundation_top_%d_%d_%d", xi, yi, zi), x+offset, y, 0),
					pileSection,
					scia.RoleFoundationPile,
				)
				straightPiles = append(straightPiles, pile)
			}
		}
	}

	// Abutment slabs at both deck ends, just under the deck surface.
	abutmentZ := height - slabThickness/2
	leftAbutment := m.NewPlane("abutment_plane_left", []*scia.Node{
		m.Node("node_abutment_0_0", -d.SlabWidthM/2, 0, abutmentZ),
		m.Node("node_abutment_0_1", -d.SlabWidthM/2, width, abutmentZ),
		m.Node("node_abutment_0_2", d.SlabWidthM/2, width, abutmentZ),
		m.Node("node_abutment_0_3", d.SlabWidthM/2, 0, abutmentZ),
	}, slabThickness, material)
	foundationSlabs = append(foundationSlabs, leftAbutment)

	rightAbutment := m.NewPlane("abutment_plane_right", []*scia.Node{
		m.Node("node_abutment_1_0", length-d.SlabWidthM/2, 0, abutmentZ),
		m.Node("node_abutment_1_1", length-d.SlabWidthM/2, width, abutmentZ),
		m.Node("node_abutment_1_2", length+d.SlabWidthM/2, width, abutmentZ),
		m.Node("node_abutment_1_3", length+d.SlabWidthM/2, 0, abutmentZ),
	}, slabThickness, material)
	foundationSlabs = append(foundationSlabs, rightAbutment)

	// Abutment piles. The outer pair leans away from the deck by the pile
	// angle; the middle piles run straight down. Middles share the straight
	// pile supports.
	sinA := math.Sin(pileAngleRad)
	cosA := math.Cos(pileAngleRad)
	var angledPiles []*scia.Beam
	for yi, y := range ySupports {
		left := m.NewBeam(
			fmt.Sprintf("abutment_pile_0_%d", yi),
			m.Node(fmt.Sprintf("node_abutment_foundation_bottom_0_%d", yi),
				-sinA*p.PileLengthM+slabOffsets[0], y, height-cosA*p.PileLengthM-slabThickness),
			m.Node(fmt.Sprintf("node_abutment_foundation_top_0_%d", yi),
				slabOffsets[0], y, height-slabThickness),
			pileSection,
			scia.RoleAbutmentPile,
		)
		right := m.NewBeam(
			fmt.Sprintf("abutment_pile_3_%d", yi),
			m.Node(fmt.Sprintf("node_abutment_foundation_bottom_3_%d", yi),
				length+sinA*p.PileLengthM+slabOffsets[1], y, height-cosA*p.PileLengthM-slabThickness),
			m.Node(fmt.Sprintf("node_abutment_foundation_top_3_%d", yi),
				length+slabOffsets[1], y, height-slabThickness),
			pileSection,
			scia.RoleAbutmentPile,
		)
		angledPiles = append(angledPiles, left, right)

		for xi, x := range [2]float64{slabOffsets[1], length + slabOffsets[0]} {
			middle := m.NewBeam(
				fmt.Sprintf("abutment_middle_pile_%d_%d", xi+1, yi),
				m.Node(fmt.Sprintf("node_abutment_foundation_bottom_%d_%d", xi+1, yi),
					x, y, height-p.PileLengthM-slabThickness),
				m.Node(fmt.Sprintf("node_abutment_foundation_top_%d_%d", xi+1, yi),
					x, y, height-slabThickness),
				pileSection,
				scia.RoleAbutmentPile,
			)
			straightPiles = append(straightPiles, middle)
		}
	}

	// Every slab rests on the same subsoil.
	subsoil := m.NewSubsoil("subsoil", soilStiffness)
	for _, slab := range foundationSlabs {
		m.NewSurfaceSupport(slab, subsoil)
	}

	// Straight piles carry skin friction along the shaft and end bearing at
	// the foot, modelled independently.
	for i, pile := range straightPiles {
		m.NewLineSupport(scia.LineSupport{
			Name:       fmt.Sprintf("support_beam_straight_%d", i),
			Beam:       pile,
			X:          scia.Flexible,
			StiffnessX: soilStiffness,
			Y:          scia.Flexible,
			StiffnessY: soilStiffness,
			Z:          scia.Free,
			RX:         scia.Free,
			RY:         scia.Free,
			RZ:         scia.Free,
		})
		m.NewPointSupport(
			fmt.Sprintf("point_support_beam_straight_%d", i),
			pile.BeginNode,
			[6]scia.Freedom{scia.Free, scia.Free, scia.Flexible, scia.Free, scia.Free, scia.Free},
			[6]float64{0, 0, soilStiffness, 0, 0, 0},
		)
	}

	// Angled piles additionally get a flexible torsional restraint about
	// their own axis.
	for i, pile := range angledPiles {
		m.NewLineSupport(scia.LineSupport{
			Name:        fmt.Sprintf("support_beam_angled_%d", i),
			Beam:        pile,
			X:           scia.Flexible,
			StiffnessX:  soilStiffness,
			Y:           scia.Flexible,
			StiffnessY:  soilStiffness,
			Z:           scia.Free,
			RX:          scia.Free,
			RY:          scia.Free,
			RZ:          scia.Flexible,
			StiffnessRZ: soilStiffness,
		})
	}

	// One variable static load case, combined once, loading the deck.
	loadGroup := m.NewLoadGroup("LG1", "variable", "standard", "cat_g")
	loadCase := m.NewVariableLoadCase("LC1", "first load case", loadGroup, "static", "standard", "short")
	m.NewLoadCombination("C1", "envelope_serviceability", []scia.CaseFactor{{Case: loadCase, Factor: 1}})
	m.NewSurfaceLoad("SF:1", loadCase, deckPlane, "Z", "force", deckLoad, "length")

	return m, nil
}
