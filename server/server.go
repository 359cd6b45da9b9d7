package server

import (
	"encoding/json"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"

	"cashflow/board"
	"cashflow/cards"
	"cashflow/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NewGameReq struct {
	Name string `json:"name"`
}

type PendingGameRes struct {
	GameID   string   `json:"game_id"`
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Admin    bool     `json:"is_admin"`
	Players  []string `json:"players,omitempty"`
}

type JoinGameReq struct {
	GameID string `json:"game_id"`
	Name   string `json:"name"`
}

type GameStatusRes struct {
	GameID  string      `json:"game_id"`
	Status  string      `json:"status"`
	Players []string    `json:"players,omitempty"`
	State   interface{} `json:"state,omitempty"`
}

// Opts configures a GameServer. Nil factories fall back to the default
// board and card set; each started game gets its own instances.
type Opts struct {
	Store      store.GameStore
	NewBoard   func() *board.Board
	NewCatalog func() *cards.Catalog
	DebugDice  bool
}

// GameServer is the HTTP and websocket presentation layer. All game
// mutation is funnelled through per-game rooms, one action at a time.
type GameServer struct {
	store      store.GameStore
	newBoard   func() *board.Board
	newCatalog func() *cards.Catalog
	debugDice  bool

	mu    sync.Mutex
	rooms map[string]*room

	http.Server
}

// NewID returns a fresh player ID.
func NewID() string {
	return uuid.NewV4().String()
}

var gameIDRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// NewGameID returns a 6-letter game code.
func NewGameID() string {
	letters := []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	code := make([]byte, 6)
	for i := range code {
		code[i] = letters[gameIDRand.Intn(len(letters))]
	}
	return string(code)
}

// NewServer creates a GameServer around a game store.
func NewServer(opts Opts) *GameServer {
	s := &GameServer{
		store:      opts.Store,
		newBoard:   opts.NewBoard,
		newCatalog: opts.NewCatalog,
		debugDice:  opts.DebugDice,
		rooms:      map[string]*room{},
	}

	if s.store == nil {
		s.store = store.NewInMemoryGameStore()
	}
	if s.newBoard == nil {
		s.newBoard = func() *board.Board { return board.New(board.Layout{}) }
	}
	if s.newCatalog == nil {
		s.newCatalog = cards.DefaultCatalog
	}

	router := http.NewServeMux()
	router.Handle("/new", http.HandlerFunc(enableCors(s.HandleNewGame)))
	router.Handle("/join", http.HandlerFunc(enableCors(s.HandleJoinGame)))
	router.Handle("/game/", http.HandlerFunc(enableCors(s.HandleGameStatus)))
	router.Handle("/log/", http.HandlerFunc(enableCors(s.HandleGameLog)))
	router.Handle("/ws", http.HandlerFunc(enableCors(s.HandleWS)))

	s.Handler = router
	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

func enableCors(handler http.HandlerFunc) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		handler.ServeHTTP(w, r)
	}
}

// HandleNewGame creates a game lobby and seats the creator in it.
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w)
		return
	}
	if data.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing player name"))
		return
	}

	gameID := NewGameID()
	playerID := NewID()

	if err := g.store.CreateGame(gameID); err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if err := g.store.AddPendingPlayer(gameID, playerID, data.Name); err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, PendingGameRes{
		GameID:   gameID,
		PlayerID: playerID,
		Name:     data.Name,
		Admin:    true,
	})
}

// HandleJoinGame seats another player in a pending game.
func (g *GameServer) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data JoinGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w)
		return
	}

	if data.GameID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing game ID"))
		return
	}
	if data.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing player name"))
		return
	}

	if !g.store.GameExists(data.GameID) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("unknown game ID '" + data.GameID + "'"))
		return
	}

	playerID := NewID()
	if err := g.store.AddPendingPlayer(data.GameID, playerID, data.Name); err != nil {
		if err == store.ErrGameAlreadyStarted {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(err.Error()))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	var playerNames []string
	for _, info := range g.store.PendingPlayers(data.GameID) {
		playerNames = append(playerNames, info.Name)
	}

	writeJSON(w, http.StatusOK, PendingGameRes{
		GameID:   data.GameID,
		PlayerID: playerID,
		Name:     data.Name,
		Players:  playerNames,
	})
}

// HandleGameStatus reports a game's lifecycle status and, once it is
// running, the full read-only state snapshot.
func (g *GameServer) HandleGameStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	gameID := strings.TrimPrefix(r.URL.Path, "/game/")
	if gameID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing game ID"))
		return
	}

	if !g.store.GameExists(gameID) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("unknown game ID '" + gameID + "'"))
		return
	}

	res := GameStatusRes{GameID: gameID}

	// read through the room loop, never off the engine directly
	if state := g.room(gameID).snapshot(); state != nil {
		res.Status = state.GamePhase
		res.State = state
	} else {
		res.Status = "waiting"
		for _, info := range g.store.PendingPlayers(gameID) {
			res.Players = append(res.Players, info.Name)
		}
	}

	writeJSON(w, http.StatusOK, res)
}

// HandleGameLog returns the most recent game log entries.
func (g *GameServer) HandleGameLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	gameID := strings.TrimPrefix(r.URL.Path, "/log/")
	if gameID == "" || !g.store.GameExists(gameID) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("unknown or not started game ID '" + gameID + "'"))
		return
	}

	n := 10
	if v := r.URL.Query().Get("n"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			n = parsed
		}
	}

	entries, started := g.room(gameID).recentLog(n)
	if !started {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("unknown or not started game ID '" + gameID + "'"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"game_id": gameID,
		"log":     entries,
	})
}

// HandleWS upgrades a joined player to the gameplay socket.
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	gameID := query.Get("game_id")
	if gameID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing game ID"))
		return
	}

	playerID := query.Get("player_id")
	if playerID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing player ID"))
		return
	}

	if !g.store.GameExists(gameID) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("unknown game ID '" + gameID + "'"))
		return
	}

	if g.store.FindPendingPlayer(gameID, playerID) == nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("unknown player ID"))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	rm := g.room(gameID)
	rm.register(newClient(playerID, conn, rm))
}

// room returns the hub for a game, creating and starting it on first
// use.
func (g *GameServer) room(gameID string) *room {
	g.mu.Lock()
	defer g.mu.Unlock()

	rm, ok := g.rooms[gameID]
	if !ok {
		rm = newRoom(gameID, g.store, g.newBoard, g.newCatalog, g.debugDice)
		rm.onEmpty = func() { g.removeRoom(gameID, rm) }
		g.rooms[gameID] = rm
		go rm.listen()
	}
	return rm
}

// removeRoom drops a retired room. Guarded so a newer room that has
// already taken the slot is left alone.
func (g *GameServer) removeRoom(gameID string, rm *room) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.rooms[gameID] == rm {
		delete(g.rooms, gameID)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func writeParseError(err error, w http.ResponseWriter) {
	w.Header().Add("Content-Type", "text/plain")
	if err == io.EOF {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing body"))
		return
	}
	log.Println(err.Error())
	w.WriteHeader(http.StatusBadRequest)
	w.Write([]byte("could not parse request body"))
}
