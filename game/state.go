package game

// PlayerSummary is the read-only per-player view exposed to
// presentation layers.
type PlayerSummary struct {
	Name            string  `json:"name"`
	Profession      string  `json:"profession"`
	Position        int     `json:"position"`
	Layer           string  `json:"layer"`
	Cash            float64 `json:"cash"`
	PassiveIncome   float64 `json:"passive_income"`
	Expenses        float64 `json:"expenses"`
	FinanciallyFree bool    `json:"financially_free"`
	AssetCount      int     `json:"asset_count"`
	LiabilityCount  int     `json:"liability_count"`
	Children        int     `json:"children"`
	DownsizedTurns  int     `json:"downsized_turns"`
}

// State is a read-only snapshot of the whole game. It is the only way
// anything outside the engine observes game state.
type State struct {
	GamePhase     string          `json:"game_phase"`
	TurnPhase     string          `json:"turn_phase"`
	TurnCount     int             `json:"turn_count"`
	CurrentPlayer string          `json:"current_player"`
	DiceRoll      int             `json:"dice_roll"`
	PendingCard   string          `json:"pending_card,omitempty"`
	MarketMode    bool            `json:"market_mode"`
	Winner        string          `json:"winner,omitempty"`
	Players       []PlayerSummary `json:"players"`
}

// State builds a snapshot of the current game.
func (e *Engine) State() State {
	s := State{
		GamePhase:  e.phase.String(),
		TurnPhase:  e.turnPhase.String(),
		TurnCount:  e.turnCount,
		DiceRoll:   e.dice,
		MarketMode: e.marketMode,
	}

	if p := e.CurrentPlayer(); p != nil {
		s.CurrentPlayer = p.Name
	}
	if e.pendingCard != nil {
		s.PendingCard = e.pendingCard.Name()
	}
	if e.winner != nil {
		s.Winner = e.winner.Name
	}

	for _, p := range e.players {
		s.Players = append(s.Players, PlayerSummary{
			Name:            p.Name,
			Profession:      p.Profession,
			Position:        p.Position,
			Layer:           p.Layer.String(),
			Cash:            p.Cash,
			PassiveIncome:   p.PassiveIncome,
			Expenses:        p.Expenses,
			FinanciallyFree: p.IsFinanciallyFree(),
			AssetCount:      len(p.Assets),
			LiabilityCount:  len(p.Liabilities),
			Children:        p.Children,
			DownsizedTurns:  p.DownsizedTurns,
		})
	}

	return s
}
