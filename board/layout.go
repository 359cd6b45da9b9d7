package board

// Layout is the raw per-layer square list a Board is built from.
// Loaders produce one of these from a board file; DefaultLayout is used
// when no file is supplied.
type Layout struct {
	Inner  []Square
	Middle []Square
	Outer  []Square
}

type squareSpec struct {
	name string
	typ  SquareType
}

func buildLayer(layer Layer, specs []squareSpec) []Square {
	squares := make([]Square, len(specs))
	for i, spec := range specs {
		squares[i] = Square{
			Position: i,
			Layer:    layer,
			Name:     spec.name,
			Type:     spec.typ,
		}
	}
	return squares
}

// DefaultLayout returns the documented default board: a 10-slot inner
// Z-path, a 24-slot middle ring and a 32-slot outer ring. Positions
// middle-18/inner-1 and middle-6/inner-9 are the fixed crossover pair,
// and inner-5 is the star cell.
func DefaultLayout() Layout {
	inner := buildLayer(Inner, []squareSpec{
		{"Unused", Start}, // placeholder, never landed on
		{"Gateway Down", Transition},
		{"Payday", Paycheck},
		{"Deal", Opportunity},
		{"Doodad", Doodad},
		{"Star Gateway", Transition},
		{"Deal", Opportunity},
		{"Charity", Charity},
		{"Doodad", Doodad},
		{"Gateway Down", Transition},
	})
	inner[1].TargetLayer = Middle
	inner[1].TargetPosition = 18
	inner[5].TargetLayer = Middle
	inner[5].TargetPosition = -1 // player's choice
	inner[9].TargetLayer = Middle
	inner[9].TargetPosition = 6

	middle := buildLayer(Middle, []squareSpec{
		{"Start", Start},
		{"Payday", Paycheck},
		{"Deal", Opportunity},
		{"Doodad", Doodad},
		{"Deal", Opportunity},
		{"Market", Market},
		{"Gateway Up", Transition},
		{"Charity", Charity},
		{"Deal", Opportunity},
		{"Doodad", Doodad},
		{"Deal", Opportunity},
		{"Downsized", Downsized},
		{"Payday", Paycheck},
		{"Deal", Opportunity},
		{"New Baby", Baby},
		{"Deal", Opportunity},
		{"Doodad", Doodad},
		{"Market", Market},
		{"Gateway Up", Transition},
		{"Deal", Opportunity},
		{"Charity", Charity},
		{"Deal", Opportunity},
		{"Doodad", Doodad},
		{"Deal", Opportunity},
	})
	middle[6].TargetLayer = Inner
	middle[6].TargetPosition = 9
	middle[18].TargetLayer = Inner
	middle[18].TargetPosition = 1

	outer := buildLayer(Outer, []squareSpec{
		{"Start", Start},
		{"Payday", Paycheck},
		{"Deal", Opportunity},
		{"Doodad", Doodad},
		{"Market", Market},
		{"Deal", Opportunity},
		{"Charity", Charity},
		{"Deal", Opportunity},
		{"Payday", Paycheck},
		{"Doodad", Doodad},
		{"Downsized", Downsized},
		{"Deal", Opportunity},
		{"Gateway In", Transition},
		{"Deal", Opportunity},
		{"New Baby", Baby},
		{"Doodad", Doodad},
		{"Payday", Paycheck},
		{"Deal", Opportunity},
		{"Market", Market},
		{"Deal", Opportunity},
		{"Charity", Charity},
		{"Doodad", Doodad},
		{"Deal", Opportunity},
		{"Downsized", Downsized},
		{"Payday", Paycheck},
		{"Deal", Opportunity},
		{"Doodad", Doodad},
		{"Deal", Opportunity},
		{"Gateway In", Transition},
		{"New Baby", Baby},
		{"Deal", Opportunity},
		{"Market", Market},
	})
	outer[12].TargetLayer = Middle
	outer[12].TargetPosition = 0
	outer[28].TargetLayer = Middle
	outer[28].TargetPosition = 0

	return Layout{Inner: inner, Middle: middle, Outer: outer}
}
