package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	utils "cashflow/internal"
	"cashflow/protocol"
	"cashflow/store"
)

func dialWS(t *testing.T, ts *httptest.Server, gameID, playerID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?game_id=" + gameID + "&player_id=" + playerID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	utils.AssertNoError(t, err)
	return conn
}

// readUntil drains the connection until a message with the wanted
// command arrives.
func readUntil(t *testing.T, conn *websocket.Conn, cmd protocol.Cmd) protocol.OutboundMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		var msg protocol.OutboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("did not receive %s: %s", cmd, err.Error())
		}
		if msg.Command == cmd {
			return msg
		}
	}
}

func send(t *testing.T, conn *websocket.Conn, msg protocol.InboundMessage) {
	t.Helper()
	utils.AssertNoError(t, conn.WriteJSON(msg))
}

func TestGameplayOverWebsocket(t *testing.T) {
	s := store.NewInMemoryGameStore()
	utils.AssertNoError(t, s.CreateGame("ABCDEF"))
	utils.AssertNoError(t, s.AddPendingPlayer("ABCDEF", "id-1", "Ana"))
	utils.AssertNoError(t, s.AddPendingPlayer("ABCDEF", "id-2", "Ben"))

	srv := NewServer(Opts{Store: s, DebugDice: true})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	conn1 := dialWS(t, ts, "ABCDEF", "id-1")
	defer conn1.Close()
	joined := readUntil(t, conn1, protocol.NewJoiner)
	utils.AssertEqual(t, joined.Joiner.Name, "Ana")

	conn2 := dialWS(t, ts, "ABCDEF", "id-2")
	defer conn2.Close()
	joined = readUntil(t, conn1, protocol.NewJoiner)
	utils.AssertEqual(t, joined.Joiner.Name, "Ben")

	t.Run("only the creator can start the game", func(t *testing.T) {
		send(t, conn2, protocol.InboundMessage{Command: "StartGame"})
		errMsg := readUntil(t, conn2, protocol.Error)
		utils.AssertTrue(t, strings.Contains(errMsg.Error, "creator"))
	})

	t.Run("starting broadcasts the initial state", func(t *testing.T) {
		send(t, conn1, protocol.InboundMessage{Command: "StartGame"})

		started := readUntil(t, conn1, protocol.StartGame)
		utils.AssertNotNil(t, started.State)
		utils.AssertEqual(t, started.State.GamePhase, "playing")
		utils.AssertEqual(t, started.State.CurrentPlayer, "Ana")
		utils.AssertEqual(t, len(started.State.Players), 2)

		readUntil(t, conn2, protocol.StartGame)
	})

	t.Run("only the current player may act", func(t *testing.T) {
		send(t, conn2, protocol.InboundMessage{Command: "RollDice"})
		errMsg := readUntil(t, conn2, protocol.Error)
		utils.AssertTrue(t, strings.Contains(errMsg.Error, "not your turn"))
	})

	t.Run("a full turn round-trips through the socket", func(t *testing.T) {
		send(t, conn1, protocol.InboundMessage{Command: "RollDice", Dice: 3})
		state := readUntil(t, conn1, protocol.GameState)
		utils.AssertEqual(t, state.State.DiceRoll, 3)
		utils.AssertEqual(t, state.State.TurnPhase, "move")

		send(t, conn1, protocol.InboundMessage{Command: "Move"})
		state = readUntil(t, conn1, protocol.GameState)
		utils.AssertEqual(t, state.State.Players[0].Position, 3)

		// position 3 on the middle ring is a doodad, so the turn is over
		utils.AssertEqual(t, state.State.TurnPhase, "end_turn")

		send(t, conn1, protocol.InboundMessage{Command: "EndTurn"})
		state = readUntil(t, conn1, protocol.GameState)
		utils.AssertEqual(t, state.State.CurrentPlayer, "Ben")

		// the other connection sees the same broadcasts
		state = readUntil(t, conn2, protocol.GameState)
		utils.AssertEqual(t, state.State.DiceRoll, 3)
	})

	t.Run("queries go to the asking player only", func(t *testing.T) {
		send(t, conn2, protocol.InboundMessage{Command: "GameLog"})
		logMsg := readUntil(t, conn2, protocol.GameLog)
		utils.AssertTrue(t, len(logMsg.Log) > 0)
	})

	t.Run("HTTP readers poll safely during gameplay", func(t *testing.T) {
		polling := make(chan struct{})
		go func() {
			defer close(polling)
			for i := 0; i < 50; i++ {
				if res, err := http.Get(ts.URL + "/game/ABCDEF"); err == nil {
					res.Body.Close()
				}
				if res, err := http.Get(ts.URL + "/log/ABCDEF?n=3"); err == nil {
					res.Body.Close()
				}
			}
		}()

		// Ben plays a full turn while the poller hammers the read endpoints
		send(t, conn2, protocol.InboundMessage{Command: "RollDice", Dice: 3})
		readUntil(t, conn2, protocol.GameState)
		send(t, conn2, protocol.InboundMessage{Command: "Move"})
		readUntil(t, conn2, protocol.GameState)
		send(t, conn2, protocol.InboundMessage{Command: "EndTurn"})
		state := readUntil(t, conn2, protocol.GameState)
		utils.AssertEqual(t, state.State.CurrentPlayer, "Ana")
		<-polling

		res, err := http.Get(ts.URL + "/game/ABCDEF")
		utils.AssertNoError(t, err)
		defer res.Body.Close()

		var status GameStatusRes
		utils.AssertNoError(t, json.NewDecoder(res.Body).Decode(&status))
		utils.AssertEqual(t, status.Status, "playing")
		utils.AssertNotNil(t, status.State)
	})

	t.Run("the room is retired when the last player disconnects", func(t *testing.T) {
		conn1.Close()
		conn2.Close()

		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			srv.mu.Lock()
			remaining := len(srv.rooms)
			srv.mu.Unlock()
			if remaining == 0 {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Error("expected the game room to be retired")
	})
}
