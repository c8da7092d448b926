package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardroom.com/server/game"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRouter() *gin.Engine {
	return NewServer(game.NewManager()).SetupRouter()
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func tableConfigBody() map[string]interface{} {
	return map[string]interface{}{
		"name":       "T1",
		"maxPlayers": 6,
		"minBuyIn":   50,
		"maxBuyIn":   500,
		"smallBlind": 10,
		"bigBlind":   20,
	}
}

func setupTableWithPlayers(t *testing.T, router *gin.Engine, players ...string) {
	t.Helper()
	w := doJSON(t, router, "POST", "/tables", tableConfigBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, name := range players {
		w = doJSON(t, router, "POST", "/players", map[string]interface{}{"name": name, "bankroll": 1000})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		w = doJSON(t, router, "POST", "/tables/T1/seat", map[string]interface{}{"playerName": name, "buyIn": 100})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
}

func TestCreateAndGetTable(t *testing.T) {
	router := testRouter()

	w := doJSON(t, router, "POST", "/tables", tableConfigBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, "GET", "/tables/T1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var desc game.TableDescriptor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &desc))
	assert.Equal(t, "T1", desc.Name)
	assert.Equal(t, "empty", desc.Street)
}

func TestErrorStatusMapping(t *testing.T) {
	router := testRouter()
	setupTableWithPlayers(t, router, "alice", "bob")
	w := doJSON(t, router, "POST", "/players", map[string]interface{}{"name": "dave", "bankroll": 1000})
	require.Equal(t, http.StatusOK, w.Code)

	cases := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"unknown table 404", "GET", "/tables/nope", nil, http.StatusNotFound},
		{"unknown player chips 404", "POST", "/players/ghost/chips",
			map[string]interface{}{"chips": 10}, http.StatusNotFound},
		{"duplicate table 409", "POST", "/tables", tableConfigBody(), http.StatusConflict},
		{"duplicate player 409", "POST", "/players",
			map[string]interface{}{"name": "alice", "bankroll": 1}, http.StatusConflict},
		{"seated at another table 409", "POST", "/tables/T1/seat",
			map[string]interface{}{"playerName": "alice", "buyIn": 100}, http.StatusConflict},
		{"remove seated player 409", "DELETE", "/players/alice", nil, http.StatusConflict},
		{"unknown player seat 404", "POST", "/tables/T1/seat",
			map[string]interface{}{"playerName": "carol", "buyIn": 100}, http.StatusNotFound},
		{"buy-in out of bounds 400", "POST", "/tables/T1/seat",
			map[string]interface{}{"playerName": "dave", "buyIn": 5}, http.StatusBadRequest},
		{"deal before shuffle 400", "POST", "/tables/T1/deal-cards", nil, http.StatusBadRequest},
		{"flop before hole cards 400", "POST", "/tables/T1/deal-flop", nil, http.StatusBadRequest},
		{"showdown before river 400", "POST", "/tables/T1/determine-winner", nil, http.StatusBadRequest},
		{"missing body field 400", "POST", "/tables/T1/seat",
			map[string]interface{}{"buyIn": 100}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}

func TestErrorBodyCarriesCodeAndMessage(t *testing.T) {
	router := testRouter()

	w := doJSON(t, router, "GET", "/tables/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	var body appError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.Code)
	assert.Contains(t, body.Message, "nope")
}

func TestInvalidBuyInLeavesSeatsUnchanged(t *testing.T) {
	router := testRouter()
	setupTableWithPlayers(t, router)
	w := doJSON(t, router, "POST", "/players", map[string]interface{}{"name": "alice", "bankroll": 1000})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", "/tables/T1/seat",
		map[string]interface{}{"playerName": "alice", "buyIn": 9999})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = doJSON(t, router, "GET", "/tables/T1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var desc game.TableDescriptor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &desc))
	assert.Empty(t, desc.Seats)
}

func TestFullHandOverHTTP(t *testing.T) {
	router := testRouter()
	setupTableWithPlayers(t, router, "alice", "bob")

	steps := []string{"reshuffle", "deal-cards", "deal-flop", "deal-turn", "deal-river"}
	boardSizes := []int{0, 0, 3, 4, 5}
	for i, step := range steps {
		w := doJSON(t, router, "POST", "/tables/T1/"+step, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var desc game.TableDescriptor
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &desc))
		assert.Len(t, desc.CommunityCards, boardSizes[i], "after %s", step)
	}

	w := doJSON(t, router, "POST", "/tables/T1/determine-winner", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result game.ShowdownResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "T1", result.TableName)
	assert.NotEmpty(t, result.Winners)
	assert.Equal(t, int64(30), result.PotWon)
}

func TestHoleCardVisibilityOverHTTP(t *testing.T) {
	router := testRouter()
	setupTableWithPlayers(t, router, "alice", "bob")

	w := doJSON(t, router, "POST", "/tables/T1/reshuffle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, "POST", "/tables/T1/deal-cards?player=alice", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var desc game.TableDescriptor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &desc))
	require.Len(t, desc.Seats, 2)
	for _, seat := range desc.Seats {
		if seat.PlayerName == "alice" {
			assert.Len(t, seat.HoleCards, 2, "the requesting player sees their own cards")
		} else {
			assert.Empty(t, seat.HoleCards, "other seats stay hidden")
		}
	}

	// the public view hides everything
	w = doJSON(t, router, "GET", "/tables/T1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "holeCards")
	var public game.TableDescriptor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &public))
	for _, seat := range public.Seats {
		assert.Empty(t, seat.HoleCards)
	}
}

func TestSitOutAndRejoinOverHTTP(t *testing.T) {
	router := testRouter()
	setupTableWithPlayers(t, router, "alice", "bob", "carol")

	w := doJSON(t, router, "POST", "/tables/T1/sit-out",
		map[string]interface{}{"playerName": "carol"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, "POST", "/tables/T1/sit-out",
		map[string]interface{}{"playerName": "carol"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "sitting out twice is rejected")

	w = doJSON(t, router, "POST", "/tables/T1/rejoin",
		map[string]interface{}{"playerName": "carol"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestDeleteTableFreesName(t *testing.T) {
	router := testRouter()
	setupTableWithPlayers(t, router)

	w := doJSON(t, router, "DELETE", "/tables/T1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "DELETE", "/tables/T1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, "POST", "/tables", tableConfigBody())
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestListTablesAndPlayers(t *testing.T) {
	router := testRouter()
	for i := 0; i < 3; i++ {
		body := tableConfigBody()
		body["name"] = fmt.Sprintf("T%d", i+1)
		w := doJSON(t, router, "POST", "/tables", body)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, router, "GET", "/tables", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tables []game.TableDescriptor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tables))
	assert.Len(t, tables, 3)

	w = doJSON(t, router, "GET", "/players", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var players []game.PlayerDescriptor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &players))
	assert.Empty(t, players)
}
