package server

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cashflow/game"
	utils "cashflow/internal"
	"cashflow/ledger"
	"cashflow/store"
)

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func mustMakeJson(t *testing.T, payload interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	utils.AssertNoError(t, err)
	return data
}

func newCreateGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/new", bytes.NewBuffer(data))
	return request
}

func newJoinGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/join", bytes.NewBuffer(data))
	return request
}

func assertPendingGameResponse(t *testing.T, body *bytes.Buffer, wantName string) PendingGameRes {
	t.Helper()
	bodyBytes, _ := ioutil.ReadAll(body)

	var got PendingGameRes
	err := json.Unmarshal(bodyBytes, &got)
	if err != nil {
		t.Fatalf("Could not unmarshal json: %s", err.Error())
	}
	if got.Name != wantName {
		t.Errorf("Got %s, want %s", got.Name, wantName)
	}
	if len(got.GameID) == 0 {
		t.Error("Expected a game id")
	}
	if len(got.PlayerID) == 0 {
		t.Error("Expected a player id")
	}
	return got
}

func startedGameStore(t *testing.T, gameID string) store.GameStore {
	t.Helper()

	s := store.NewInMemoryGameStore()
	utils.AssertNoError(t, s.CreateGame(gameID))

	eng, err := game.New(game.Opts{Players: []*ledger.Ledger{
		ledger.FromProfession("Ana", ledger.Professions[0]),
		ledger.FromProfession("Ben", ledger.Professions[1]),
	}})
	utils.AssertNoError(t, err)
	_, err = eng.Start()
	utils.AssertNoError(t, err)
	utils.AssertNoError(t, s.SetEngine(gameID, eng))
	return s
}

func TestPOSTNewGame(t *testing.T) {
	t.Run("succeeds and returns expected data", func(t *testing.T) {
		data := mustMakeJson(t, NewGameReq{"Elton"})

		response := httptest.NewRecorder()
		request := newCreateGameRequest(data)

		srv := NewServer(Opts{})
		srv.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusCreated)
		got := assertPendingGameResponse(t, response.Body, "Elton")
		utils.AssertTrue(t, got.Admin)
	})

	t.Run("returns 400 if the player's name is missing", func(t *testing.T) {
		data := mustMakeJson(t, NewGameReq{})

		response := httptest.NewRecorder()
		request := newCreateGameRequest(data)

		srv := NewServer(Opts{})
		srv.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusBadRequest)
	})

	t.Run("returns 400 if the body is missing", func(t *testing.T) {
		response := httptest.NewRecorder()
		request := newCreateGameRequest([]byte{})

		srv := NewServer(Opts{})
		srv.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusBadRequest)
	})

	t.Run("does not match on GET /new", func(t *testing.T) {
		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/new", nil)

		srv := NewServer(Opts{})
		srv.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusNotFound)
	})
}

func TestPOSTJoinGame(t *testing.T) {
	t.Run("succeeds for a pending game", func(t *testing.T) {
		srv := NewServer(Opts{})

		response := httptest.NewRecorder()
		srv.ServeHTTP(response, newCreateGameRequest(mustMakeJson(t, NewGameReq{"Elton"})))
		created := assertPendingGameResponse(t, response.Body, "Elton")

		response = httptest.NewRecorder()
		srv.ServeHTTP(response, newJoinGameRequest(mustMakeJson(t, JoinGameReq{created.GameID, "Kiki"})))

		assertStatus(t, response.Code, http.StatusOK)
		joined := assertPendingGameResponse(t, response.Body, "Kiki")
		utils.AssertEqual(t, joined.GameID, created.GameID)
		utils.AssertDeepEqual(t, joined.Players, []string{"Elton", "Kiki"})
	})

	t.Run("returns 404 for an unknown game", func(t *testing.T) {
		srv := NewServer(Opts{})

		response := httptest.NewRecorder()
		srv.ServeHTTP(response, newJoinGameRequest(mustMakeJson(t, JoinGameReq{"XXXXXX", "Kiki"})))

		assertStatus(t, response.Code, http.StatusNotFound)
	})

	t.Run("returns 409 once the game has started", func(t *testing.T) {
		srv := NewServer(Opts{Store: startedGameStore(t, "ABCDEF")})

		response := httptest.NewRecorder()
		srv.ServeHTTP(response, newJoinGameRequest(mustMakeJson(t, JoinGameReq{"ABCDEF", "Kiki"})))

		assertStatus(t, response.Code, http.StatusConflict)
	})

	t.Run("returns 400 for missing fields", func(t *testing.T) {
		srv := NewServer(Opts{})

		response := httptest.NewRecorder()
		srv.ServeHTTP(response, newJoinGameRequest(mustMakeJson(t, JoinGameReq{Name: "Kiki"})))
		assertStatus(t, response.Code, http.StatusBadRequest)

		response = httptest.NewRecorder()
		srv.ServeHTTP(response, newJoinGameRequest(mustMakeJson(t, JoinGameReq{GameID: "ABCDEF"})))
		assertStatus(t, response.Code, http.StatusBadRequest)
	})
}

func TestGETGameStatus(t *testing.T) {
	t.Run("reports a waiting game with its joiners", func(t *testing.T) {
		srv := NewServer(Opts{})

		response := httptest.NewRecorder()
		srv.ServeHTTP(response, newCreateGameRequest(mustMakeJson(t, NewGameReq{"Elton"})))
		created := assertPendingGameResponse(t, response.Body, "Elton")

		response = httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/game/"+created.GameID, nil)
		srv.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusOK)

		var status GameStatusRes
		utils.AssertNoError(t, json.NewDecoder(response.Body).Decode(&status))
		utils.AssertEqual(t, status.Status, "waiting")
		utils.AssertDeepEqual(t, status.Players, []string{"Elton"})
	})

	t.Run("reports a running game with its state", func(t *testing.T) {
		srv := NewServer(Opts{Store: startedGameStore(t, "ABCDEF")})

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/game/ABCDEF", nil)
		srv.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusOK)

		var status GameStatusRes
		utils.AssertNoError(t, json.NewDecoder(response.Body).Decode(&status))
		utils.AssertEqual(t, status.Status, "playing")
		utils.AssertNotNil(t, status.State)
	})

	t.Run("returns 404 for an unknown game", func(t *testing.T) {
		srv := NewServer(Opts{})

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/game/XXXXXX", nil)
		srv.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusNotFound)
	})
}

func TestGETGameLog(t *testing.T) {
	t.Run("returns recent entries for a running game", func(t *testing.T) {
		srv := NewServer(Opts{Store: startedGameStore(t, "ABCDEF")})

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/log/ABCDEF?n=5", nil)
		srv.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusOK)

		var body struct {
			GameID string   `json:"game_id"`
			Log    []string `json:"log"`
		}
		utils.AssertNoError(t, json.NewDecoder(response.Body).Decode(&body))
		utils.AssertEqual(t, body.GameID, "ABCDEF")
		utils.AssertTrue(t, len(body.Log) > 0)
		utils.AssertTrue(t, strings.Contains(body.Log[len(body.Log)-1], "goes first"))
	})

	t.Run("returns 404 before the game starts", func(t *testing.T) {
		srv := NewServer(Opts{})

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/log/XXXXXX", nil)
		srv.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusNotFound)
	})
}

func TestWSValidation(t *testing.T) {
	srv := NewServer(Opts{})

	tt := []struct {
		name string
		path string
	}{
		{"missing game id", "/ws"},
		{"unknown game id", "/ws?game_id=XXXXXX&player_id=id-1"},
		{"missing player id", "/ws?game_id=XXXXXX"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			response := httptest.NewRecorder()
			request, _ := http.NewRequest(http.MethodGet, tc.path, nil)
			srv.ServeHTTP(response, request)

			assertStatus(t, response.Code, http.StatusBadRequest)
		})
	}
}

func TestNewGameID(t *testing.T) {
	id := NewGameID()
	utils.AssertEqual(t, len(id), 6)

	for _, r := range id {
		utils.AssertTrue(t, r >= 'A' && r <= 'Z')
	}
}
