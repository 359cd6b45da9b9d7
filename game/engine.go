package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"cashflow/board"
	"cashflow/cards"
	"cashflow/ledger"
)

// GamePhase is the outer lifecycle state.
type GamePhase int

const (
	Waiting GamePhase = iota
	Playing
	Paused
	Finished
)

var gamePhaseNames = []string{"waiting", "playing", "paused", "finished"}

func (p GamePhase) String() string {
	if p < Waiting || p > Finished {
		return "unknown"
	}
	return gamePhaseNames[p]
}

// TurnPhase is the within-turn state machine position.
type TurnPhase int

const (
	PhaseRollDice TurnPhase = iota
	PhaseMove
	PhaseSquareEvent
	PhaseCardDecision
	PhaseMarket
	PhaseLayerTransition
	PhaseEndTurn
)

var turnPhaseNames = []string{
	"roll_dice",
	"move",
	"square_event",
	"card_decision",
	"market",
	"layer_transition",
	"end_turn",
}

func (p TurnPhase) String() string {
	if p < PhaseRollDice || p > PhaseEndTurn {
		return "unknown"
	}
	return turnPhaseNames[p]
}

var (
	ErrTooFewPlayers  = errors.New("minimum of 2 players required")
	ErrTooManyPlayers = errors.New("maximum of 6 players allowed")
	ErrNotStarted     = errors.New("game has not started")
	ErrGameFinished   = errors.New("game is already over")
	ErrGamePaused     = errors.New("game is paused")
	ErrWrongPhase     = errors.New("operation not allowed in current turn phase")
	ErrDebugDisabled  = errors.New("debug mode is not enabled")
	ErrInvalidDice    = errors.New("dice value must be between 1 and 6")
	ErrNoPendingCard  = errors.New("no card awaiting a decision")
	ErrUnknownChoice  = errors.New("unknown decision")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrUnknownSquare  = errors.New("no square at player position")
	ErrNoTransition   = errors.New("no layer transition in progress")
	ErrNotImplemented = errors.New("not implemented")
)

const (
	minPlayers = 2
	maxPlayers = 6
)

// Opts configures a new Engine. Board, Catalog and Rng fall back to
// defaults when nil.
type Opts struct {
	Players []*ledger.Ledger
	Board   *board.Board
	Catalog *cards.Catalog
	Rng     *rand.Rand

	// Debug enables externally supplied dice values.
	Debug bool

	// LegacyInnerWalk reproduces the original behaviour of guessing
	// the inner-ring walk direction from position alone instead of
	// carrying it on the ledger.
	LegacyInnerWalk bool
}

// Engine owns the authoritative game state and drives the turn cycle.
// It assumes serialized external calls; exactly one player acts at a
// time.
type Engine struct {
	phase     GamePhase
	turnPhase TurnPhase
	turnCount int
	current   int

	players []*ledger.Ledger
	board   *board.Board
	catalog *cards.Catalog
	rng     *rand.Rand

	debug      bool
	legacyWalk bool

	dice           int
	pendingCard    cards.Card
	marketMode     bool
	transitionOpen bool
	winner         *ledger.Ledger

	log *Log
}

// New constructs an engine in the Waiting phase.
func New(opts Opts) (*Engine, error) {
	if len(opts.Players) < minPlayers {
		return nil, ErrTooFewPlayers
	}
	if len(opts.Players) > maxPlayers {
		return nil, ErrTooManyPlayers
	}

	if opts.Board == nil {
		opts.Board = board.New(board.Layout{})
	}
	if opts.Catalog == nil {
		opts.Catalog = cards.DefaultCatalog()
	}
	if opts.Rng == nil {
		opts.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{
		phase:      Waiting,
		turnPhase:  PhaseRollDice,
		players:    opts.Players,
		board:      opts.Board,
		catalog:    opts.Catalog,
		rng:        opts.Rng,
		debug:      opts.Debug,
		legacyWalk: opts.LegacyInnerWalk,
		log:        &Log{},
	}

	e.logf("game initialised with %d players", len(e.players))
	return e, nil
}

// Start begins play with the first player.
func (e *Engine) Start() (string, error) {
	if e.phase != Waiting {
		return "", fmt.Errorf("%w: game phase is %s", ErrWrongPhase, e.phase)
	}

	e.phase = Playing
	e.turnPhase = PhaseRollDice
	e.current = 0
	e.turnCount = 1

	first := e.CurrentPlayer()
	e.logf("game started, %s goes first", first.Name)
	return fmt.Sprintf("game started, %s goes first", first.Name), nil
}

// checkPlaying rejects operations outside active play, or outside the
// expected turn phase. Every mutator calls this first so that an
// out-of-phase call never changes state.
func (e *Engine) checkPlaying(want TurnPhase) error {
	switch e.phase {
	case Waiting:
		return ErrNotStarted
	case Paused:
		return ErrGamePaused
	case Finished:
		return ErrGameFinished
	}
	if e.turnPhase != want {
		return fmt.Errorf("%w: in %s, expected %s", ErrWrongPhase, e.turnPhase, want)
	}
	return nil
}

// RollDice produces this turn's 1-6 dice value.
func (e *Engine) RollDice() (int, error) {
	if err := e.checkPlaying(PhaseRollDice); err != nil {
		return 0, err
	}

	e.dice = e.rng.Intn(6) + 1
	e.turnPhase = PhaseMove

	e.logf("%s rolled a %d", e.CurrentPlayer().Name, e.dice)
	return e.dice, nil
}

// RollDiceDebug injects a dice value. Only accepted when the engine
// was built with Debug set and the value is in range.
func (e *Engine) RollDiceDebug(value int) (int, error) {
	if err := e.checkPlaying(PhaseRollDice); err != nil {
		return 0, err
	}
	if !e.debug {
		return 0, ErrDebugDisabled
	}
	if value < 1 || value > 6 {
		return 0, ErrInvalidDice
	}

	e.dice = value
	e.turnPhase = PhaseMove

	e.logf("%s rolled a %d", e.CurrentPlayer().Name, e.dice)
	return e.dice, nil
}

// Move advances the current player by the rolled dice value and
// immediately resolves the landed square; there is no externally
// observable idle Move state.
func (e *Engine) Move() (string, error) {
	if err := e.checkPlaying(PhaseMove); err != nil {
		return "", err
	}

	p := e.CurrentPlayer()
	oldPosition := p.Position

	dir := p.Direction
	if e.legacyWalk && p.Layer == board.Inner {
		dir = board.GuessDirection(p.Position)
	}

	newPosition, newDir := e.board.Advance(p.Position, e.dice, p.Layer, dir)
	p.Position = newPosition
	p.Direction = newDir

	e.logf("%s moved from %d to %d on the %s ring", p.Name, oldPosition, newPosition, p.Layer)

	e.turnPhase = PhaseSquareEvent
	return e.resolveSquareEvent()
}

// resolveSquareEvent applies the landed square's effect and picks the
// next turn phase from the resolver's intent.
func (e *Engine) resolveSquareEvent() (string, error) {
	p := e.CurrentPlayer()
	sq, ok := e.board.GetSquare(p.Position, p.Layer)
	if !ok {
		return "", fmt.Errorf("%w: position %d on %s ring", ErrUnknownSquare, p.Position, p.Layer)
	}

	// A downsized player forfeits the whole paycheck cycle.
	if p.DownsizedTurns > 0 && sq.Type == board.Paycheck {
		p.DownsizedTurns--
		detail := fmt.Sprintf("%s is downsized and skips the paycheck, %d turns remaining", p.Name, p.DownsizedTurns)
		e.logf(detail)
		e.turnPhase = PhaseEndTurn
		return detail, nil
	}

	out := e.resolveSquare(sq, p)
	e.logf(out.detail)

	switch out.intent {
	case intentCard:
		e.pendingCard = out.card
		e.turnPhase = PhaseCardDecision
	case intentMarket:
		e.marketMode = true
		e.turnPhase = PhaseMarket
	case intentTransition:
		e.transitionOpen = true
		e.turnPhase = PhaseLayerTransition
	default:
		e.turnPhase = PhaseEndTurn
	}

	return out.detail, nil
}

// HandleCardDecision resolves the pending card: "buy" delegates to the
// card's purchase, "pass" declines. Either way the card is cleared and
// the turn moves on; a failed purchase leaves the ledger untouched.
func (e *Engine) HandleCardDecision(decision string, shares int) (string, error) {
	if err := e.checkPlaying(PhaseCardDecision); err != nil {
		return "", err
	}
	if e.pendingCard == nil {
		return "", ErrNoPendingCard
	}

	p := e.CurrentPlayer()
	card := e.pendingCard

	var detail string
	var err error

	switch decision {
	case "buy":
		detail, err = card.Purchase(p, shares)
		if err != nil {
			e.logf("%s could not buy %s: %v", p.Name, card.Name(), err)
		} else {
			e.logf("%s: %s", p.Name, detail)
		}
	case "pass":
		detail = fmt.Sprintf("%s passed on %s", p.Name, card.Name())
		e.logf(detail)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownChoice, decision)
	}

	e.pendingCard = nil
	e.turnPhase = PhaseEndTurn
	return detail, err
}

// SellToBank sells the current player's asset at index to the bank for
// the given price. The player stays in the market phase for further
// actions.
func (e *Engine) SellToBank(assetIndex int, price float64) (string, error) {
	if err := e.checkPlaying(PhaseMarket); err != nil {
		return "", err
	}

	p := e.CurrentPlayer()
	asset, err := p.RemoveAsset(assetIndex)
	if err != nil {
		return "", err
	}
	p.Cash += price

	detail := fmt.Sprintf("%s sold %s to the bank for %.2f", p.Name, asset.Name, price)
	e.logf(detail)
	return detail, nil
}

// SellToPlayer trades the current player's asset at index to another
// player. Both ledgers mutate atomically or not at all.
func (e *Engine) SellToPlayer(assetIndex, buyerIndex int, price float64) (string, error) {
	if err := e.checkPlaying(PhaseMarket); err != nil {
		return "", err
	}
	if buyerIndex < 0 || buyerIndex >= len(e.players) || buyerIndex == e.current {
		return "", ErrUnknownPlayer
	}

	p := e.CurrentPlayer()
	buyer := e.players[buyerIndex]

	if assetIndex < 0 || assetIndex >= len(p.Assets) {
		return "", ledger.ErrUnknownAsset
	}
	assetName := p.Assets[assetIndex].Name

	if err := p.TransferAssetTo(buyer, assetIndex, price); err != nil {
		return "", err
	}

	detail := fmt.Sprintf("%s sold %s to %s for %.2f", p.Name, assetName, buyer.Name, price)
	e.logf(detail)
	return detail, nil
}

// ExitMarket leaves the market phase and ends the action part of the
// turn.
func (e *Engine) ExitMarket() (string, error) {
	if err := e.checkPlaying(PhaseMarket); err != nil {
		return "", err
	}

	e.marketMode = false
	e.turnPhase = PhaseEndTurn

	detail := fmt.Sprintf("%s left the market", e.CurrentPlayer().Name)
	e.logf(detail)
	return detail, nil
}

// HandleLayerTransition moves the current player onto the target
// layer, landing where the gateway square's configuration says, with
// the fixed crossover table as the fallback. targetPosition is only
// consulted for the star cell, where the player picks any middle-ring
// position; pass -1 elsewhere.
func (e *Engine) HandleLayerTransition(target board.Layer, targetPosition int) (string, error) {
	if err := e.checkPlaying(PhaseLayerTransition); err != nil {
		return "", err
	}
	if !e.transitionOpen {
		return "", ErrNoTransition
	}
	if target < board.Inner || target > board.Outer {
		return "", fmt.Errorf("%w: %d", board.ErrUnknownLayer, int(target))
	}

	p := e.CurrentPlayer()
	fromLayer, fromPosition := p.Layer, p.Position

	sq, _ := e.board.GetSquare(p.Position, p.Layer)

	var newPosition int
	switch {
	case sq.ChoosesTarget() && target == board.Middle && targetPosition >= 0:
		// star cell: any middle position the player names
		if targetPosition < e.board.Size(board.Middle) {
			newPosition = targetPosition
		} else {
			newPosition = 0
		}
	case sq.Type == board.Transition && sq.TargetLayer == target && sq.TargetPosition >= 0:
		// the square's own configured landing spot wins over the table
		newPosition = sq.TargetPosition
		if newPosition >= e.board.Size(target) {
			newPosition = 0
		}
	default:
		newPosition = e.board.TransitionTarget(p.Layer, p.Position, target)
	}

	p.Layer = target
	p.Position = newPosition
	p.Direction = board.EntryDirection(newPosition)

	e.transitionOpen = false
	e.turnPhase = PhaseEndTurn

	detail := fmt.Sprintf("%s moved from %s ring position %d to %s ring position %d",
		p.Name, fromLayer, fromPosition, target, newPosition)
	e.logf(detail)
	return detail, nil
}

// EndTurn closes out the acting player's turn: checks the win
// condition, then hands over to the next player with all per-turn state
// reset. A pending layer transition may be abandoned by ending the turn
// directly.
func (e *Engine) EndTurn() (string, error) {
	switch e.phase {
	case Waiting:
		return "", ErrNotStarted
	case Paused:
		return "", ErrGamePaused
	case Finished:
		return "", ErrGameFinished
	}
	if e.turnPhase != PhaseEndTurn && e.turnPhase != PhaseLayerTransition {
		return "", fmt.Errorf("%w: in %s, expected %s", ErrWrongPhase, e.turnPhase, PhaseEndTurn)
	}

	p := e.CurrentPlayer()

	e.transitionOpen = false

	if p.IsFinanciallyFree() {
		e.phase = Finished
		e.winner = p
		e.logf("game over, %s reached financial freedom", p.Name)
		return fmt.Sprintf("%s wins!", p.Name), nil
	}

	e.current = (e.current + 1) % len(e.players)
	if e.current == 0 {
		e.turnCount++
	}

	e.turnPhase = PhaseRollDice
	e.dice = 0
	e.pendingCard = nil
	e.marketMode = false

	next := e.CurrentPlayer()
	e.logf("it is %s's turn", next.Name)
	return fmt.Sprintf("it is %s's turn", next.Name), nil
}

// Pause suspends play; mutators are rejected until Resume.
func (e *Engine) Pause() error {
	if e.phase != Playing {
		return fmt.Errorf("%w: game phase is %s", ErrWrongPhase, e.phase)
	}
	e.phase = Paused
	e.logf("game paused")
	return nil
}

// Resume continues a paused game.
func (e *Engine) Resume() error {
	if e.phase != Paused {
		return fmt.Errorf("%w: game phase is %s", ErrWrongPhase, e.phase)
	}
	e.phase = Playing
	e.logf("game resumed")
	return nil
}

// Save is a stub; persistence is not implemented.
func (e *Engine) Save(filename string) error {
	return ErrNotImplemented
}

// Load is a stub; persistence is not implemented.
func (e *Engine) Load(filename string) error {
	return ErrNotImplemented
}

// CurrentPlayer returns the ledger of the player whose turn it is.
func (e *Engine) CurrentPlayer() *ledger.Ledger {
	if e.current < 0 || e.current >= len(e.players) {
		return nil
	}
	return e.players[e.current]
}

// CurrentIndex returns the acting player's index.
func (e *Engine) CurrentIndex() int {
	return e.current
}

// Players returns the player ledgers in turn order.
func (e *Engine) Players() []*ledger.Ledger {
	return e.players
}

// Phase returns the outer game phase.
func (e *Engine) Phase() GamePhase {
	return e.phase
}

// Turn returns the within-turn phase.
func (e *Engine) Turn() TurnPhase {
	return e.turnPhase
}

// Board returns the board the game is played on.
func (e *Engine) Board() *board.Board {
	return e.board
}

// Winner returns the winning ledger once the game is finished.
func (e *Engine) Winner() *ledger.Ledger {
	return e.winner
}

// PendingCard returns the card awaiting a decision, if any.
func (e *Engine) PendingCard() cards.Card {
	return e.pendingCard
}

// RecentLog returns the last n game log entries.
func (e *Engine) RecentLog(n int) []string {
	return e.log.Recent(n)
}

func (e *Engine) logf(format string, args ...interface{}) {
	e.log.Append(e.turnCount, fmt.Sprintf(format, args...))
}
