package server

import (
	"encoding/json"
	"fmt"
	"log"

	"cashflow/board"
	"cashflow/cards"
	"cashflow/game"
	"cashflow/ledger"
	"cashflow/protocol"
	"cashflow/store"
)

type roomMessage struct {
	client *client
	msg    protocol.InboundMessage
}

// room is the per-game hub. Every engine call happens inside listen(),
// so external actions are serialized through a single writer however
// many sockets are open.
type room struct {
	gameID     string
	store      store.GameStore
	newBoard   func() *board.Board
	newCatalog func() *cards.Catalog
	debugDice  bool

	registerCh   chan *client
	unregisterCh chan *client
	inboundCh    chan roomMessage
	queryCh      chan func()

	// closed when the room retires; guards every channel send
	done    chan struct{}
	onEmpty func()

	clients map[string]*client
	seats   map[string]int // player ID -> engine turn index
}

func newRoom(gameID string, s store.GameStore, newBoard func() *board.Board, newCatalog func() *cards.Catalog, debugDice bool) *room {
	return &room{
		gameID:       gameID,
		store:        s,
		newBoard:     newBoard,
		newCatalog:   newCatalog,
		debugDice:    debugDice,
		registerCh:   make(chan *client),
		unregisterCh: make(chan *client),
		inboundCh:    make(chan roomMessage),
		queryCh:      make(chan func()),
		done:         make(chan struct{}),
		clients:      map[string]*client{},
		seats:        map[string]int{},
	}
}

func (rm *room) register(c *client) {
	select {
	case rm.registerCh <- c:
	case <-rm.done:
		c.conn.Close()
	}
}

// listen is the room's single-writer loop.
func (rm *room) listen() {
	for {
		select {
		case c := <-rm.registerCh:
			rm.clients[c.playerID] = c
			go c.writePump()
			go c.readPump()

			if info := rm.store.FindPendingPlayer(rm.gameID, c.playerID); info != nil {
				rm.broadcast(protocol.OutboundMessage{
					Command: protocol.NewJoiner,
					Message: fmt.Sprintf("%s has joined the game", info.Name),
					Joiner:  info,
				})
			}

		case c := <-rm.unregisterCh:
			if _, ok := rm.clients[c.playerID]; ok {
				delete(rm.clients, c.playerID)
				close(c.send)
			}
			if len(rm.clients) == 0 {
				rm.teardown()
				return
			}

		case rmsg := <-rm.inboundCh:
			rm.handle(rmsg)

		case query := <-rm.queryCh:
			query()
		}
	}
}

// teardown retires the room once its last client is gone. The game
// itself lives in the store; the next contact builds a fresh room.
func (rm *room) teardown() {
	if rm.onEmpty != nil {
		rm.onEmpty()
	}
	close(rm.done)
}

// snapshot reads the engine state from inside the room loop, so HTTP
// readers never touch the engine while a gameplay action mutates it.
// Returns nil until the game has started.
func (rm *room) snapshot() *game.State {
	reply := make(chan *game.State, 1)
	query := func() {
		eng := rm.store.FindEngine(rm.gameID)
		if eng == nil {
			reply <- nil
			return
		}
		s := eng.State()
		reply <- &s
	}

	select {
	case rm.queryCh <- query:
		return <-reply
	case <-rm.done:
		return nil
	}
}

// recentLog reads log entries through the room loop. The second return
// is false until the game has started.
func (rm *room) recentLog(n int) ([]string, bool) {
	type logReply struct {
		entries []string
		started bool
	}
	reply := make(chan logReply, 1)
	query := func() {
		eng := rm.store.FindEngine(rm.gameID)
		if eng == nil {
			reply <- logReply{}
			return
		}
		reply <- logReply{entries: eng.RecentLog(n), started: true}
	}

	select {
	case rm.queryCh <- query:
		r := <-reply
		return r.entries, r.started
	case <-rm.done:
		return nil, false
	}
}

func (rm *room) handle(rmsg roomMessage) {
	cmd := protocol.ParseCmd(rmsg.msg.Command)

	if cmd == protocol.StartGame {
		rm.startGame(rmsg.client)
		return
	}

	eng := rm.store.FindEngine(rm.gameID)
	if eng == nil {
		rmsg.client.sendError("game has not started")
		return
	}

	switch cmd {
	case protocol.GameState:
		state := eng.State()
		rmsg.client.sendMessage(protocol.OutboundMessage{Command: protocol.GameState, State: &state})
		return
	case protocol.GameLog:
		rmsg.client.sendMessage(protocol.OutboundMessage{Command: protocol.GameLog, Log: eng.RecentLog(10)})
		return
	}

	// everything below mutates; only the current player may act
	if seat, ok := rm.seats[rmsg.client.playerID]; !ok || seat != eng.CurrentIndex() {
		rmsg.client.sendError("not your turn")
		return
	}

	detail, err := rm.dispatch(eng, cmd, rmsg.msg)
	if err != nil {
		rmsg.client.sendError(err.Error())
		return
	}

	state := eng.State()
	rm.broadcast(protocol.OutboundMessage{
		Command: protocol.GameState,
		Message: detail,
		State:   &state,
	})
}

// dispatch maps a wire command onto the corresponding engine mutator.
func (rm *room) dispatch(eng *game.Engine, cmd protocol.Cmd, m protocol.InboundMessage) (string, error) {
	switch cmd {
	case protocol.RollDice:
		if m.Dice > 0 && rm.debugDice {
			value, err := eng.RollDiceDebug(m.Dice)
			return fmt.Sprintf("rolled a %d", value), err
		}
		value, err := eng.RollDice()
		return fmt.Sprintf("rolled a %d", value), err

	case protocol.Move:
		return eng.Move()

	case protocol.BuyCard:
		return eng.HandleCardDecision("buy", m.Shares)

	case protocol.PassCard:
		return eng.HandleCardDecision("pass", 0)

	case protocol.SellToBank:
		return eng.SellToBank(m.AssetIndex, m.Price)

	case protocol.SellToPlayer:
		return eng.SellToPlayer(m.AssetIndex, m.BuyerIndex, m.Price)

	case protocol.ExitMarket:
		return eng.ExitMarket()

	case protocol.ChooseLayer:
		target, err := board.ParseLayer(m.TargetLayer)
		if err != nil {
			return "", err
		}
		return eng.HandleLayerTransition(target, m.TargetPosition)

	case protocol.EndTurn:
		return eng.EndTurn()
	}

	return "", fmt.Errorf("unknown command %q", m.Command)
}

// startGame seats the pending players and builds the engine. Only the
// first joiner (the creator) may start.
func (rm *room) startGame(c *client) {
	pending := rm.store.PendingPlayers(rm.gameID)

	if len(pending) == 0 || pending[0].PlayerID != c.playerID {
		c.sendError("only the game's creator can start it")
		return
	}

	if rm.store.FindEngine(rm.gameID) != nil {
		c.sendError(store.ErrGameAlreadyStarted.Error())
		return
	}

	players := make([]*ledger.Ledger, len(pending))
	for i, info := range pending {
		players[i] = ledger.FromProfession(info.Name, ledger.Professions[i%len(ledger.Professions)])
		rm.seats[info.PlayerID] = i
	}

	eng, err := game.New(game.Opts{
		Players: players,
		Board:   rm.newBoard(),
		Catalog: rm.newCatalog(),
		Debug:   rm.debugDice,
	})
	if err != nil {
		c.sendError(err.Error())
		return
	}

	detail, err := eng.Start()
	if err != nil {
		c.sendError(err.Error())
		return
	}

	if err := rm.store.SetEngine(rm.gameID, eng); err != nil {
		c.sendError(err.Error())
		return
	}

	state := eng.State()
	rm.broadcast(protocol.OutboundMessage{
		Command: protocol.StartGame,
		Message: detail,
		State:   &state,
	})
}

func (rm *room) broadcast(msg protocol.OutboundMessage) {
	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Println(err.Error())
		return
	}
	for _, c := range rm.clients {
		c.trySend(bytes)
	}
}
