package params

import (
	"errors"
	"fmt"
	"math"
)

// Params is the full set of user inputs for one bridge design run. Field
// names carry their unit, values are magnitudes; direction and unit scaling
// are applied by the generators, not here.
type Params struct {
	WidthM           float64 `json:"width_m"`
	LengthM          float64 `json:"length_m"`
	HeightM          float64 `json:"height_m"`
	DeckThicknessM   float64 `json:"deck_thickness_m"`
	CrossingAngleDeg float64 `json:"crossing_angle_deg"`
	SupportAmount    int     `json:"support_amount"`
	SupportPiles     int     `json:"support_piles_amount"`

	PileLengthM     float64 `json:"pile_length_m"`
	PileAngleDeg    float64 `json:"pile_angle_deg"`
	PileThicknessMM float64 `json:"pile_thickness_mm"`
	SoilStiffnessMN float64 `json:"soil_stiffness_mn_m"`
	DeckLoadKNM2    float64 `json:"deck_load_kn_m2"`
}

// Design holds the shared design constants. These used to be package-level
// constants; they are passed explicitly so variants can override them.
type Design struct {
	TaludAngleRad    float64 // embankment batter from vertical
	PierDiameterM    float64 // circular support pier diameter
	SlabWidthM       float64 // foundation / abutment slab width
	NodeSphereR      float64 // node marker radius in the foundation view
	BeamLineD        float64 // thin beam cylinder diameter in the foundation view
	LaneThicknessM   float64 // asphalt strip extrusion thickness
	BikeThicknessM   float64 // bike lane strip extrusion thickness
	MarkThicknessM   float64 // lane marking extrusion thickness
	MarkInsetM       float64 // marking inset from the talud toes
	DefaultPileCount int     // piles per support line when unspecified
}

// DefaultDesign mirrors the constants the generators were originally built
// around: 60 degree taluds, 1 m piers, 5 m slabs.
func DefaultDesign() Design {
	return Design{
		TaludAngleRad:    60 * math.Pi / 180,
		PierDiameterM:    1,
		SlabWidthM:       5,
		NodeSphereR:      0.5,
		BeamLineD:        0.2,
		LaneThicknessM:   0.2,
		BikeThicknessM:   0.3,
		MarkThicknessM:   0.2,
		MarkInsetM:       2,
		DefaultPileCount: 3,
	}
}

// Defaults returns the parameter set the editor opens with.
func Defaults() Params {
	return Params{
		WidthM:           20,
		LengthM:          100,
		HeightM:          10,
		DeckThicknessM:   2,
		CrossingAngleDeg: 0,
		SupportAmount:    1,
		SupportPiles:     3,
		PileLengthM:      20,
		PileAngleDeg:     10,
		PileThicknessMM:  500,
		SoilStiffnessMN:  400,
		DeckLoadKNM2:     100,
	}
}

// FieldError is a validation failure attributed to a single input field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InfeasibleError marks a parameter set that is individually valid but
// produces degenerate geometry.
type InfeasibleError struct {
	Reason string
}

func (e *InfeasibleError) Error() string {
	return "infeasible configuration: " + e.Reason
}

// IsInfeasible reports whether err is an infeasible-configuration error.
func IsInfeasible(err error) bool {
	var ie *InfeasibleError
	return errors.As(err, &ie)
}

func fieldErr(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

// Normalize fills optional fields with their defaults.
func (p *Params) Normalize(d Design) {
	if p.SupportPiles == 0 {
		p.SupportPiles = d.DefaultPileCount
	}
}

// Validate checks every field and then the combined geometry. It returns a
// FieldError for per-field failures and an InfeasibleError for parameter
// sets whose geometry degenerates. Generators must not be called on a
// parameter set that fails validation.
func (p Params) Validate(d Design) error {
	positive := []struct {
		name  string
		value float64
	}{
		{"width_m", p.WidthM},
		{"length_m", p.LengthM},
		{"height_m", p.HeightM},
		{"deck_thickness_m", p.DeckThicknessM},
		{"pile_length_m", p.PileLengthM},
		{"pile_thickness_mm", p.PileThicknessMM},
		{"soil_stiffness_mn_m", p.SoilStiffnessMN},
		{"deck_load_kn_m2", p.DeckLoadKNM2},
	}
	for _, f := range positive {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fieldErr(f.name, "must be finite")
		}
		if f.value <= 0 {
			return fieldErr(f.name, "must be positive")
		}
	}
	if p.SupportAmount < 0 {
		return fieldErr("support_amount", "must not be negative")
	}
	if p.SupportPiles < 1 {
		return fieldErr("support_piles_amount", "at least one pile per support line")
	}
	if p.PileAngleDeg < 0 || p.PileAngleDeg >= 90 {
		return fieldErr("pile_angle_deg", "must be in [0, 90)")
	}
	if p.CrossingAngleDeg <= -90 || p.CrossingAngleDeg >= 90 {
		return fieldErr("crossing_angle_deg", "must be in (-90, 90)")
	}

	// Feasibility of the combined geometry. The talud toes must not meet
	// under the deck, and the pile rows must fit across the width.
	taludX := p.HeightM * math.Tan(d.TaludAngleRad)
	if 2*taludX >= p.LengthM {
		return &InfeasibleError{Reason: fmt.Sprintf(
			"talud width %.2f m exceeds half the span; increase length or reduce height", taludX)}
	}
	if p.SupportPiles > 1 && p.WidthM <= 2*d.PierDiameterM {
		return &InfeasibleError{Reason: "deck too narrow for the pile row spacing"}
	}
	return nil
}
