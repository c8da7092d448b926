package game

import (
	"fmt"
	"strings"
)

type DuplicateTableError struct {
	Name string
}

func (e DuplicateTableError) Error() string {
	return fmt.Sprintf("table %s already exists", e.Name)
}

type TableNotFoundError struct {
	Name string
}

func (e TableNotFoundError) Error() string {
	return fmt.Sprintf("table %s not found", e.Name)
}

type InvalidConfigError struct {
	Reason string
}

func (e InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid table config: %s", e.Reason)
}

type DuplicatePlayerError struct {
	Name string
}

func (e DuplicatePlayerError) Error() string {
	return fmt.Sprintf("player %s already exists", e.Name)
}

type PlayerNotFoundError struct {
	Name string
}

func (e PlayerNotFoundError) Error() string {
	return fmt.Sprintf("player %s not found", e.Name)
}

type SeatUnavailableError struct {
	Table      string
	MaxPlayers uint32
}

func (e SeatUnavailableError) Error() string {
	return fmt.Sprintf("table %s is full (%d seats)", e.Table, e.MaxPlayers)
}

type InvalidBuyInError struct {
	Amount   int64
	MinBuyIn int64
	MaxBuyIn int64
}

func (e InvalidBuyInError) Error() string {
	return fmt.Sprintf("buy-in %d out of bounds [%d, %d]", e.Amount, e.MinBuyIn, e.MaxBuyIn)
}

type InsufficientBankrollError struct {
	Player   string
	Bankroll int64
	BuyIn    int64
}

func (e InsufficientBankrollError) Error() string {
	return fmt.Sprintf("player %s bankroll %d cannot cover buy-in %d", e.Player, e.Bankroll, e.BuyIn)
}

type AlreadySeatedError struct {
	Player string
	Table  string
}

func (e AlreadySeatedError) Error() string {
	return fmt.Sprintf("player %s is already seated at table %s", e.Player, e.Table)
}

type NotSeatedError struct {
	Player string
	Table  string
}

func (e NotSeatedError) Error() string {
	return fmt.Sprintf("player %s is not seated at table %s", e.Player, e.Table)
}

// InvalidStateError rejects an operation invoked outside its required
// source street. The table state is unchanged when this is returned.
type InvalidStateError struct {
	Op       string
	Current  Street
	Expected []Street
}

func (e InvalidStateError) Error() string {
	expected := make([]string, len(e.Expected))
	for i, s := range e.Expected {
		expected[i] = s.String()
	}
	return fmt.Sprintf("%s is not valid in street %s (expected %s)",
		e.Op, e.Current, strings.Join(expected, " or "))
}

type InsufficientPlayersError struct {
	Seated   int
	Required int
}

func (e InsufficientPlayersError) Error() string {
	return fmt.Sprintf("need at least %d sitting players, have %d", e.Required, e.Seated)
}

type NoPlayersError struct {
	Table string
}

func (e NoPlayersError) Error() string {
	return fmt.Sprintf("table %s has no seated players", e.Table)
}

type InvalidAmountError struct {
	Amount int64
}

func (e InvalidAmountError) Error() string {
	return fmt.Sprintf("amount %d cannot be negative", e.Amount)
}

type InvalidSeatStatusError struct {
	Player   string
	Status   SeatStatus
	Expected SeatStatus
}

func (e InvalidSeatStatusError) Error() string {
	return fmt.Sprintf("player %s has seat status %s (expected %s)", e.Player, e.Status, e.Expected)
}
