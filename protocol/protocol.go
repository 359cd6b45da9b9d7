package protocol

// Cmd represents a command travelling between a client and the server.
type Cmd int

const (
	Null Cmd = iota
	NewJoiner
	StartGame
	RollDice
	Move
	BuyCard
	PassCard
	SellToBank
	SellToPlayer
	ExitMarket
	ChooseLayer
	EndTurn
	GameState
	GameLog
	Error
)

var cmdNames = []string{
	"Null",
	"NewJoiner",
	"StartGame",
	"RollDice",
	"Move",
	"BuyCard",
	"PassCard",
	"SellToBank",
	"SellToPlayer",
	"ExitMarket",
	"ChooseLayer",
	"EndTurn",
	"GameState",
	"GameLog",
	"Error",
}

func (c Cmd) String() string {
	if c < Null || int(c) >= len(cmdNames) {
		return "Unknown"
	}
	return cmdNames[c]
}

// ParseCmd converts a wire command name. Unrecognised names map to
// Null, which no handler accepts.
func ParseCmd(s string) Cmd {
	for i, name := range cmdNames {
		if s == name {
			return Cmd(i)
		}
	}
	return Null
}

// PlayerInfo identifies a player who has joined but may not yet be
// seated in a running game.
type PlayerInfo struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// InboundMessage is a client action. Only the fields relevant to the
// command are set.
type InboundMessage struct {
	PlayerID string `json:"player_id"`
	Command  string `json:"command"`

	Shares         int     `json:"shares,omitempty"`
	AssetIndex     int     `json:"asset_index,omitempty"`
	BuyerIndex     int     `json:"buyer_index,omitempty"`
	Price          float64 `json:"price,omitempty"`
	TargetLayer    string  `json:"target_layer,omitempty"`
	TargetPosition int     `json:"target_position,omitempty"`
	Dice           int     `json:"dice,omitempty"`
}
