package board

import "fmt"

// SquareType identifies the effect a square has when landed on.
type SquareType int

const (
	Start SquareType = iota
	Paycheck
	Opportunity
	Doodad
	Market
	Charity
	Downsized
	Baby
	Transition
)

var squareTypeNames = []string{
	"start",
	"paycheck",
	"opportunity",
	"doodad",
	"market",
	"charity",
	"downsized",
	"baby",
	"transition",
}

func (t SquareType) String() string {
	if t < Start || t > Transition {
		return "unknown"
	}
	return squareTypeNames[t]
}

// ParseSquareType converts a square type name from configuration.
func ParseSquareType(s string) (SquareType, error) {
	for i, name := range squareTypeNames {
		if s == name {
			return SquareType(i), nil
		}
	}
	return Start, fmt.Errorf("unknown square type %q", s)
}

// Square is a single addressable board cell. Transition squares carry
// their target; anything a layout file supplies beyond the typed fields
// ends up in Extra.
type Square struct {
	Position int
	Layer    Layer
	Name     string
	Type     SquareType

	// transition squares only
	TargetLayer    Layer
	TargetPosition int

	Extra map[string]string
}

// ChoosesTarget reports whether landing here lets the player pick their
// own destination position (the inner-ring star cell).
func (s Square) ChoosesTarget() bool {
	return s.Type == Transition && s.Layer == Inner && s.Position == StarCell
}

func (s Square) String() string {
	return fmt.Sprintf("%s: %s", s.Type, s.Name)
}
