package board

import (
	"errors"
	"fmt"
)

// Layer represents one of the three concentric tracks on the board.
type Layer int

const (
	Inner Layer = iota
	Middle
	Outer
)

var layerNames = []string{"inner", "middle", "outer"}

func (l Layer) String() string {
	if l < Inner || l > Outer {
		return "unknown"
	}
	return layerNames[l]
}

// ParseLayer converts a layer name from configuration or a client message.
func ParseLayer(s string) (Layer, error) {
	for i, name := range layerNames {
		if s == name {
			return Layer(i), nil
		}
	}
	return Inner, fmt.Errorf("unknown layer %q", s)
}

// Direction is the sense a player is walking in on the inner ring.
// The circular rings only ever move forward.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Inner ring walkable range. Position 0 is an unused placeholder.
const (
	innerMin = 1
	innerMax = 9
)

// StarCell is the inner-ring gateway cell. A player transitioning from
// here may choose any middle-ring position.
const StarCell = 5

var ErrUnknownLayer = errors.New("unknown layer")

// Board holds the per-layer square lists and computes movement.
type Board struct {
	layers map[Layer][]Square
}

// New constructs a Board from a layout. An empty layout falls back to
// the default 10/24/32 board.
func New(layout Layout) *Board {
	if len(layout.Inner) == 0 && len(layout.Middle) == 0 && len(layout.Outer) == 0 {
		layout = DefaultLayout()
	}
	return &Board{
		layers: map[Layer][]Square{
			Inner:  layout.Inner,
			Middle: layout.Middle,
			Outer:  layout.Outer,
		},
	}
}

// Size returns the number of squares on the given layer.
func (b *Board) Size(layer Layer) int {
	return len(b.layers[layer])
}

// GetSquare looks up a square by position and layer.
func (b *Board) GetSquare(position int, layer Layer) (Square, bool) {
	squares, ok := b.layers[layer]
	if !ok || position < 0 || position >= len(squares) {
		return Square{}, false
	}
	return squares[position], true
}

// SquaresByType returns all squares of the given type on a layer.
func (b *Board) SquaresByType(t SquareType, layer Layer) []Square {
	var matches []Square
	for _, sq := range b.layers[layer] {
		if sq.Type == t {
			matches = append(matches, sq)
		}
	}
	return matches
}

// Advance computes the position after moving the given number of steps.
// Middle and outer layers are circular. The inner layer is a reflecting
// walk over [1,9]: the walker bounces at both boundaries, so the
// returned direction must be carried by the caller for the next move.
func (b *Board) Advance(position, steps int, layer Layer, dir Direction) (int, Direction) {
	if layer != Inner {
		size := len(b.layers[layer])
		if size == 0 {
			return position, Forward
		}
		return (position + steps) % size, Forward
	}

	// position 0 is a placeholder cell, never walked
	if position < innerMin {
		position = innerMin
		dir = Forward
	}

	for i := 0; i < steps; i++ {
		if dir == Forward {
			position++
			if position >= innerMax {
				position = innerMax
				dir = Backward
			}
		} else {
			position--
			if position <= innerMin {
				position = innerMin
				dir = Forward
			}
		}
	}
	return position, dir
}

// GuessDirection reconstructs a walker's direction from position alone,
// the way the game originally did: a walker sitting on the upper
// boundary is assumed to be reversing, anywhere else it is assumed to
// be moving forward.
func GuessDirection(position int) Direction {
	if position == innerMax {
		return Backward
	}
	return Forward
}

// EntryDirection is the direction assigned to a walker entering the
// inner ring. Entering at the upper boundary means the only legal move
// is backward.
func EntryDirection(position int) Direction {
	return GuessDirection(position)
}

// TransitionTarget maps a player's current layer and position to their
// landing position on the target layer, per the fixed transition table:
// middle-18 <-> inner-1 and middle-6 <-> inner-9. Unmapped positions
// fall back to the documented defaults.
func (b *Board) TransitionTarget(from Layer, position int, to Layer) int {
	switch {
	case from == Middle && to == Inner:
		switch position {
		case 18:
			return 1
		case 6:
			return 9
		default:
			return 1
		}
	case from == Inner && to == Middle:
		switch position {
		case 1:
			return 18
		case 9:
			return 6
		default:
			return 0
		}
	default:
		return 0
	}
}
