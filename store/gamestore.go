package store

import (
	"errors"
	"fmt"
	"sync"

	"cashflow/game"
	"cashflow/protocol"
)

var (
	ErrUnknownGameID      = errors.New("unknown game ID")
	ErrGameAlreadyStarted = errors.New("game has already started")
	ErrGameNotStarted     = errors.New("game has not started")
)

// GameStore tracks games from creation through play. A game starts as
// a pending lobby (players joining by ID) and gains an engine once the
// creator starts it.
type GameStore interface {
	CreateGame(gameID string) error
	GameExists(gameID string) bool
	FindEngine(gameID string) *game.Engine
	SetEngine(gameID string, eng *game.Engine) error
	AddPendingPlayer(gameID, playerID, name string) error
	PendingPlayers(gameID string) []protocol.PlayerInfo
	FindPendingPlayer(gameID, playerID string) *protocol.PlayerInfo
}

// InMemoryGameStore maps game IDs to engines and pending players.
// Safe for concurrent use by the server handlers.
type InMemoryGameStore struct {
	mu      sync.RWMutex
	games   map[string]*game.Engine // nil until the game is started
	pending map[string][]protocol.PlayerInfo
}

// NewInMemoryGameStore constructs an empty InMemoryGameStore.
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games:   map[string]*game.Engine{},
		pending: map[string][]protocol.PlayerInfo{},
	}
}

// CreateGame registers a new pending game under the given ID.
func (s *InMemoryGameStore) CreateGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[gameID]; exists {
		return fmt.Errorf("game with id %s already exists", gameID)
	}

	s.games[gameID] = nil
	return nil
}

// GameExists reports whether the ID names a known game, started or not.
func (s *InMemoryGameStore) GameExists(gameID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.games[gameID]
	return exists
}

// FindEngine returns the engine for a started game, or nil.
func (s *InMemoryGameStore) FindEngine(gameID string) *game.Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.games[gameID]
}

// SetEngine attaches a started engine to a pending game.
func (s *InMemoryGameStore) SetEngine(gameID string, eng *game.Engine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.games[gameID]
	if !exists {
		return ErrUnknownGameID
	}
	if existing != nil {
		return ErrGameAlreadyStarted
	}

	s.games[gameID] = eng
	return nil
}

// AddPendingPlayer records the information from which to seat a player
// when the game starts. Fails once the game is underway.
func (s *InMemoryGameStore) AddPendingPlayer(gameID, playerID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	eng, exists := s.games[gameID]
	if !exists {
		return ErrUnknownGameID
	}
	if eng != nil {
		return ErrGameAlreadyStarted
	}

	s.pending[gameID] = append(s.pending[gameID], protocol.PlayerInfo{PlayerID: playerID, Name: name})
	return nil
}

// PendingPlayers returns a copy of the joiners for a game, in join
// order.
func (s *InMemoryGameStore) PendingPlayers(gameID string) []protocol.PlayerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.pending[gameID]
	out := make([]protocol.PlayerInfo, len(src))
	copy(out, src)
	return out
}

// FindPendingPlayer looks up a joiner by game and player ID.
func (s *InMemoryGameStore) FindPendingPlayer(gameID, playerID string) *protocol.PlayerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, info := range s.pending[gameID] {
		if info.PlayerID == playerID {
			return &s.pending[gameID][i]
		}
	}
	return nil
}
