package cards

import "math/rand"

// DrawRecord is one entry in the catalog's draw history.
type DrawRecord struct {
	CardID string
	Type   Type
}

// Catalog holds the typed decks and the draw history. Decks are never
// consumed: drawing returns the shared template, and the same card can
// come up again later.
type Catalog struct {
	cards   map[string]Card
	decks   map[Type][]Card
	history []DrawRecord
}

// NewCatalog builds a catalog from a flat card list.
func NewCatalog(all []Card) *Catalog {
	c := &Catalog{
		cards: map[string]Card{},
		decks: map[Type][]Card{},
	}
	for _, card := range all {
		c.cards[card.ID()] = card
		c.decks[card.Type()] = append(c.decks[card.Type()], card)
	}
	return c
}

// Draw picks uniformly from the named deck. The second return is false
// if that deck is empty.
func (c *Catalog) Draw(t Type, rng *rand.Rand) (Card, bool) {
	deck := c.decks[t]
	if len(deck) == 0 {
		return nil, false
	}
	card := deck[rng.Intn(len(deck))]
	c.history = append(c.history, DrawRecord{card.ID(), t})
	return card, true
}

// DrawRandom picks uniformly across the union of all decks, so each
// card is equally likely regardless of its deck. Decks are visited in
// type order to keep seeded draws reproducible.
func (c *Catalog) DrawRandom(rng *rand.Rand) (Card, bool) {
	var all []Card
	for t := Enterprise; t <= SideBusiness; t++ {
		all = append(all, c.decks[t]...)
	}
	if len(all) == 0 {
		return nil, false
	}
	card := all[rng.Intn(len(all))]
	c.history = append(c.history, DrawRecord{card.ID(), card.Type()})
	return card, true
}

// Opportunity-square category weights. The card type is picked first
// from this distribution, then the card uniformly within that deck, so
// macro-category frequency stays fixed however lopsided the decks are.
var drawWeights = []struct {
	t Type
	w float64
}{
	{Enterprise, 0.2},
	{Opportunity, 0.4},
	{Financial, 0.3},
	{SideBusiness, 0.1},
}

// DrawWeighted performs the two-stage opportunity-square draw.
func (c *Catalog) DrawWeighted(rng *rand.Rand) (Card, bool) {
	r := rng.Float64()
	var cum float64
	chosen := drawWeights[len(drawWeights)-1].t
	for _, dw := range drawWeights {
		cum += dw.w
		if r < cum {
			chosen = dw.t
			break
		}
	}
	return c.Draw(chosen, rng)
}

// GetByID looks up a card template by id.
func (c *Catalog) GetByID(id string) (Card, bool) {
	card, ok := c.cards[id]
	return card, ok
}

// DeckSize returns the number of templates in the named deck.
func (c *Catalog) DeckSize(t Type) int {
	return len(c.decks[t])
}

// TotalCards returns the number of templates across all decks.
func (c *Catalog) TotalCards() int {
	return len(c.cards)
}

// Summary maps deck name to template count.
func (c *Catalog) Summary() map[string]int {
	summary := map[string]int{}
	for t, deck := range c.decks {
		summary[t.String()] = len(deck)
	}
	return summary
}

// History returns a copy of the draw history.
func (c *Catalog) History() []DrawRecord {
	out := make([]DrawRecord, len(c.history))
	copy(out, c.history)
	return out
}

// ResetHistory clears the draw history.
func (c *Catalog) ResetHistory() {
	c.history = nil
}
