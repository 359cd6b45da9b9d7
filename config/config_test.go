package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashflow/board"
	"cashflow/cards"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadServer(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		os.Unsetenv("CASHFLOW_ADDR")
		os.Unsetenv("CASHFLOW_DEBUG_DICE")

		cfg, err := LoadServer()
		require.NoError(t, err)
		assert.Equal(t, ":8000", cfg.Addr)
		assert.False(t, cfg.DebugDice)
	})

	t.Run("reads the environment", func(t *testing.T) {
		os.Setenv("CASHFLOW_ADDR", ":9999")
		os.Setenv("CASHFLOW_DEBUG_DICE", "true")
		defer os.Unsetenv("CASHFLOW_ADDR")
		defer os.Unsetenv("CASHFLOW_DEBUG_DICE")

		cfg, err := LoadServer()
		require.NoError(t, err)
		assert.Equal(t, ":9999", cfg.Addr)
		assert.True(t, cfg.DebugDice)
	})
}

func TestLoadCards(t *testing.T) {
	t.Run("empty path falls back to the default catalog", func(t *testing.T) {
		c, err := LoadCards("")
		require.NoError(t, err)
		assert.Equal(t, 8, c.TotalCards())
	})

	t.Run("missing file falls back to the default catalog", func(t *testing.T) {
		c, err := LoadCards(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 8, c.TotalCards())
	})

	t.Run("unparseable yaml is an error", func(t *testing.T) {
		path := writeFile(t, "cards.yaml", "cards: [not: closed")
		_, err := LoadCards(path)
		assert.Error(t, err)
	})

	t.Run("loads usable cards and skips malformed entries", func(t *testing.T) {
		path := writeFile(t, "cards.yaml", `
cards:
  - id: ENT900
    name: Bakery
    type: enterprise
    cost: 40000
    down_payment: 8000
    monthly_cash_flow: 900
  - id: FIN900
    name: Broken Fund
    type: financial
    price_per_share: 0
  - id: ""
    name: No ID
    type: opportunity
  - id: XXX1
    name: Weird
    type: lottery
`)

		c, err := LoadCards(path)
		require.NoError(t, err)

		assert.Equal(t, 1, c.TotalCards())
		card, ok := c.GetByID("ENT900")
		require.True(t, ok)
		assert.Equal(t, "Bakery", card.Name())
		assert.Equal(t, cards.Enterprise, card.Type())
	})

	t.Run("a file with no usable cards falls back to the default catalog", func(t *testing.T) {
		path := writeFile(t, "cards.yaml", `
cards:
  - id: XXX1
    name: Weird
    type: lottery
`)

		c, err := LoadCards(path)
		require.NoError(t, err)
		assert.Equal(t, 8, c.TotalCards())
	})

	t.Run("financial cards get share bounds defaulted", func(t *testing.T) {
		path := writeFile(t, "cards.yaml", `
cards:
  - id: FIN901
    name: Open Fund
    type: financial
    price_per_share: 10
    dividend_per_share: 1
`)

		c, err := LoadCards(path)
		require.NoError(t, err)

		card, ok := c.GetByID("FIN901")
		require.True(t, ok)
		fin := card.(*cards.FinancialCard)
		assert.Equal(t, 1, fin.MinShares)
		assert.Equal(t, 1000, fin.MaxShares)
	})
}

func TestLoadBoard(t *testing.T) {
	t.Run("empty path falls back to the default layout", func(t *testing.T) {
		b, err := LoadBoard("")
		require.NoError(t, err)
		assert.Equal(t, 10, b.Size(board.Inner))
		assert.Equal(t, 24, b.Size(board.Middle))
		assert.Equal(t, 32, b.Size(board.Outer))
	})

	t.Run("unparseable yaml is an error", func(t *testing.T) {
		path := writeFile(t, "board.yaml", "middle: {broken")
		_, err := LoadBoard(path)
		assert.Error(t, err)
	})

	t.Run("loads a custom layout with holes filled", func(t *testing.T) {
		path := writeFile(t, "board.yaml", `
middle:
  - position: 0
    name: Go
    type: start
  - position: 2
    name: Payday
    type: paycheck
  - position: 1
    name: Up
    type: transition
    target_layer: inner
    target_position: 9
`)

		b, err := LoadBoard(path)
		require.NoError(t, err)
		assert.Equal(t, 3, b.Size(board.Middle))

		sq, ok := b.GetSquare(1, board.Middle)
		require.True(t, ok)
		assert.Equal(t, board.Transition, sq.Type)
		assert.Equal(t, board.Inner, sq.TargetLayer)
		assert.Equal(t, 9, sq.TargetPosition)
	})

	t.Run("skips bad squares but keeps the slot walkable", func(t *testing.T) {
		path := writeFile(t, "board.yaml", `
middle:
  - position: 0
    name: Go
    type: start
  - position: 1
    name: Broken Gateway
    type: transition
    target_layer: basement
  - position: 5
    name: Out Of Range
    type: start
`)

		b, err := LoadBoard(path)
		require.NoError(t, err)
		assert.Equal(t, 3, b.Size(board.Middle))

		sq, ok := b.GetSquare(1, board.Middle)
		require.True(t, ok)
		assert.Equal(t, "Empty", sq.Name)
		assert.Equal(t, board.Start, sq.Type)
	})

	t.Run("a file with no usable squares falls back to the default layout", func(t *testing.T) {
		path := writeFile(t, "board.yaml", "middle: []\n")

		b, err := LoadBoard(path)
		require.NoError(t, err)
		assert.Equal(t, 24, b.Size(board.Middle))
	})
}
