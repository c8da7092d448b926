package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardroom.com/server/poker"
)

// scriptTable builds a two-player table whose deck deals the given
// hands and board, bypassing the shuffle.
func scriptTable(t *testing.T, config TableConfig, seat1, seat2, flop []string, turn, river string) (*Table, []*Player) {
	t.Helper()
	table, players := newTableWithPlayers(t, config, 2)
	table.deck = poker.DeckFromScript(
		[]poker.CardsInAscii{seat1, seat2},
		flop,
		poker.NewCard(turn),
		poker.NewCard(river),
		config.BurnCard,
	)
	table.street = StreetShuffled
	require.NoError(t, table.DealCards())
	require.NoError(t, table.DealFlop())
	require.NoError(t, table.DealTurn())
	require.NoError(t, table.DealRiver())
	return table, players
}

func TestShowdownSingleWinner(t *testing.T) {
	table, _ := scriptTable(t, testConfig(),
		[]string{"Kh", "Qd"},
		[]string{"3s", "7s"},
		[]string{"Ac", "Ad", "2c"}, "Td", "3c")

	// button unset: heads-up, seat 1 posts sb 10, seat 2 posts bb 20
	require.Equal(t, int64(30), table.pot)

	result, err := table.DetermineWinner()
	require.NoError(t, err)
	require.Len(t, result.Winners, 1)

	winner := result.Winners[0]
	assert.Equal(t, "player2", winner.PlayerName)
	assert.Equal(t, uint32(2), winner.SeatNo)
	assert.Equal(t, "Two Pair", winner.Rank)
	assert.Equal(t, int64(30), winner.Amount)
	assert.Equal(t, int64(30), result.PotWon)

	// 100 - bb 20 + pot 30
	assert.Equal(t, int64(110), table.seats[1].Stack)
	assert.Equal(t, int64(90), table.seats[0].Stack)
	assert.Zero(t, table.pot)
	assert.Equal(t, StreetShowdown, table.street)
}

func TestShowdownTieSplitsPotOddChipToFirstSeat(t *testing.T) {
	config := testConfig()
	config.SmallBlind = 5
	// pot is sb 5 + bb 20 = 25, an odd split between two winners
	table, _ := scriptTable(t, config,
		[]string{"2s", "2d"},
		[]string{"2h", "2c"},
		[]string{"3s", "3h", "3d"}, "3c", "4s")

	result, err := table.DetermineWinner()
	require.NoError(t, err)
	require.Len(t, result.Winners, 2, "both seats play the board and tie")
	assert.Equal(t, int64(25), result.PotWon)

	assert.Equal(t, uint32(1), result.Winners[0].SeatNo)
	assert.Equal(t, int64(13), result.Winners[0].Amount, "odd chip goes to the first winning seat")
	assert.Equal(t, uint32(2), result.Winners[1].SeatNo)
	assert.Equal(t, int64(12), result.Winners[1].Amount)

	// seat 1: 100 - 5 + 13, seat 2: 100 - 20 + 12
	assert.Equal(t, int64(108), table.seats[0].Stack)
	assert.Equal(t, int64(92), table.seats[1].Stack)
	assert.Zero(t, table.pot)
}

func TestShowdownSkipsFoldedAndAwaySeats(t *testing.T) {
	table, players := newTableWithPlayers(t, testConfig(), 3)
	advanceTo(t, table, StreetRiver)
	table.seats[0].Status = SeatStatusFolded

	result, err := table.DetermineWinner()
	require.NoError(t, err)
	for _, winner := range result.Winners {
		assert.NotEqual(t, players[0].Name, winner.PlayerName, "a folded seat must not win")
	}
}

func TestShowdownAllInSeatContends(t *testing.T) {
	table, _ := scriptTable(t, testConfig(),
		[]string{"As", "Ah"},
		[]string{"Kh", "Kd"},
		[]string{"Ac", "2d", "7h"}, "8s", "9c")
	table.seats[0].Status = SeatStatusAllIn

	result, err := table.DetermineWinner()
	require.NoError(t, err)
	require.Len(t, result.Winners, 1)
	assert.Equal(t, "player1", result.Winners[0].PlayerName)
	assert.Equal(t, "Three of a Kind", result.Winners[0].Rank)
}

func TestShowdownWithNoContenders(t *testing.T) {
	table, _ := newTableWithPlayers(t, testConfig(), 2)
	advanceTo(t, table, StreetRiver)
	table.seats[0].Status = SeatStatusFolded
	table.seats[1].Status = SeatStatusFolded

	_, err := table.DetermineWinner()
	require.Error(t, err)
	_, ok := err.(NoPlayersError)
	assert.True(t, ok, "expected NoPlayersError, got %T", err)
}

func TestShowdownResultRevealsHoleCards(t *testing.T) {
	table, _ := scriptTable(t, testConfig(),
		[]string{"Kh", "Qd"},
		[]string{"3s", "7s"},
		[]string{"Ac", "Ad", "2c"}, "Td", "3c")

	result, err := table.DetermineWinner()
	require.NoError(t, err)
	require.Len(t, result.Winners, 1)
	assert.ElementsMatch(t, []string{"3s", "7s"}, result.Winners[0].HoleCards)
	assert.Len(t, result.Winners[0].BestCards, 5)
}
