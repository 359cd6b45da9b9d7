package protocol

import "cashflow/game"

// OutboundMessage is a message from the server to a player. Every
// accepted action produces one carrying the fresh game state.
type OutboundMessage struct {
	Command Cmd         `json:"command"`
	Message string      `json:"message,omitempty"`
	State   *game.State `json:"state,omitempty"`
	Log     []string    `json:"log,omitempty"`
	Joiner  *PlayerInfo `json:"joiner,omitempty"`
	Error   string      `json:"error,omitempty"`
}
