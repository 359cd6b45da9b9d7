package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"cashflow/board"
)

type boardFile struct {
	Inner  []squareEntry `yaml:"inner"`
	Middle []squareEntry `yaml:"middle"`
	Outer  []squareEntry `yaml:"outer"`
}

type squareEntry struct {
	Position       int               `yaml:"position"`
	Name           string            `yaml:"name"`
	Type           string            `yaml:"type"`
	TargetLayer    string            `yaml:"target_layer"`
	TargetPosition int               `yaml:"target_position"`
	Extra          map[string]string `yaml:"extra"`
}

// LoadBoard reads a board layout from a YAML file. An empty path or a
// missing file falls back to the default 10/24/32 layout; malformed
// squares are skipped with a log line.
func LoadBoard(path string) (*board.Board, error) {
	if path == "" {
		return board.New(board.Layout{}), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("board file %s not found, using default layout", path)
			return board.New(board.Layout{}), nil
		}
		return nil, err
	}

	var file boardFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}

	layout := board.Layout{
		Inner:  buildLayer(board.Inner, file.Inner),
		Middle: buildLayer(board.Middle, file.Middle),
		Outer:  buildLayer(board.Outer, file.Outer),
	}

	if len(layout.Inner) == 0 && len(layout.Middle) == 0 && len(layout.Outer) == 0 {
		log.Printf("board file %s contained no usable squares, using default layout", path)
		return board.New(board.Layout{}), nil
	}

	return board.New(layout), nil
}

func buildLayer(layer board.Layer, entries []squareEntry) []board.Square {
	squares := make([]board.Square, len(entries))
	used := make([]bool, len(entries))

	for _, entry := range entries {
		if entry.Position < 0 || entry.Position >= len(entries) {
			log.Printf("skipping %s square %q: position %d out of range", layer, entry.Name, entry.Position)
			continue
		}
		if used[entry.Position] {
			log.Printf("skipping %s square %q: duplicate position %d", layer, entry.Name, entry.Position)
			continue
		}

		t, err := board.ParseSquareType(entry.Type)
		if err != nil {
			log.Printf("skipping %s square %q: %v", layer, entry.Name, err)
			continue
		}

		sq := board.Square{
			Position: entry.Position,
			Layer:    layer,
			Name:     entry.Name,
			Type:     t,
			Extra:    entry.Extra,
		}

		if t == board.Transition {
			target, err := board.ParseLayer(entry.TargetLayer)
			if err != nil {
				log.Printf("skipping %s transition square %q: %v", layer, entry.Name, err)
				continue
			}
			sq.TargetLayer = target
			sq.TargetPosition = entry.TargetPosition
		}

		squares[entry.Position] = sq
		used[entry.Position] = true
	}

	// unfilled slots become plain start squares so positions line up
	for i := range squares {
		if !used[i] {
			squares[i] = board.Square{Position: i, Layer: layer, Name: "Empty", Type: board.Start}
		}
	}

	if len(entries) == 0 {
		return nil
	}
	return squares
}
