package game

import (
	"sync"

	"github.com/rs/zerolog/log"

	"cardroom.com/server/logging"
	"cardroom.com/server/poker"
)

var tableLogger = log.With().Str("logger_name", "game::table").Logger()

// Table owns one hand's lifecycle: the deck, the street state machine,
// the seat list and the pot. Every operation takes the table lock for
// its whole read-modify-write, so at most one operation per table runs
// at a time; operations on different tables are independent.
//
// Every operation is all-or-nothing: validation happens before any
// state is touched, and a failed operation leaves street, cards, seats
// and pot exactly as they were.
type Table struct {
	lock sync.Mutex

	config    TableConfig
	street    Street
	deck      *poker.Deck
	seats     []*Seat
	community []poker.Card
	pot       int64
	// per-seat blind/ante postings for the current hand, so a reshuffle
	// can hand them back
	contribs   map[uint32]int64
	buttonSeat uint32
	nextSeatNo uint32
}

func NewTable(config TableConfig) *Table {
	return &Table{
		config:   config,
		street:   StreetEmpty,
		contribs: make(map[uint32]int64),
	}
}

func (t *Table) Name() string {
	return t.config.Name
}

// SeatPlayer debits the buy-in from the player's bankroll and adds a
// seat at the end of the seating order. The caller (Manager) is
// responsible for the one-seat-across-all-tables invariant.
func (t *Table) SeatPlayer(player *Player, buyIn int64) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if uint32(len(t.seats)) >= t.config.MaxPlayers {
		return SeatUnavailableError{Table: t.config.Name, MaxPlayers: t.config.MaxPlayers}
	}
	if buyIn < t.config.MinBuyIn || buyIn > t.config.MaxBuyIn {
		return InvalidBuyInError{Amount: buyIn, MinBuyIn: t.config.MinBuyIn, MaxBuyIn: t.config.MaxBuyIn}
	}
	if player.Bankroll < buyIn {
		return InsufficientBankrollError{Player: player.Name, Bankroll: player.Bankroll, BuyIn: buyIn}
	}

	t.nextSeatNo++
	player.Bankroll -= buyIn
	t.seats = append(t.seats, &Seat{
		SeatNo:     t.nextSeatNo,
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Stack:      buyIn,
		Status:     SeatStatusSitting,
	})

	tableLogger.Info().
		Str(logging.TableNameKey, t.config.Name).
		Str(logging.PlayerNameKey, player.Name).
		Uint32(logging.SeatNumKey, t.nextSeatNo).
		Int64("buyIn", buyIn).
		Msg("Player took a seat")
	return nil
}

// UnseatPlayer removes the player's seat and credits the remaining
// stack back to the bankroll. Blinds already posted stay in the pot.
func (t *Table) UnseatPlayer(player *Player) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	idx := t.seatIndex(player.Name)
	if idx < 0 {
		return NotSeatedError{Player: player.Name, Table: t.config.Name}
	}

	seat := t.seats[idx]
	player.Bankroll += seat.Stack
	t.seats = append(t.seats[:idx], t.seats[idx+1:]...)

	tableLogger.Info().
		Str(logging.TableNameKey, t.config.Name).
		Str(logging.PlayerNameKey, player.Name).
		Int64("stack", seat.Stack).
		Msg("Player left the table")
	return nil
}

// SitOut marks a sitting player away so dealing and showdown skip the
// seat. The stack stays on the table.
func (t *Table) SitOut(playerName string) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	idx := t.seatIndex(playerName)
	if idx < 0 {
		return NotSeatedError{Player: playerName, Table: t.config.Name}
	}
	seat := t.seats[idx]
	if seat.Status != SeatStatusSitting {
		return InvalidSeatStatusError{Player: playerName, Status: seat.Status, Expected: SeatStatusSitting}
	}
	seat.Status = SeatStatusAway
	return nil
}

// Rejoin brings a sitting-out player back; the seat is dealt in again
// from the next hand.
func (t *Table) Rejoin(playerName string) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	idx := t.seatIndex(playerName)
	if idx < 0 {
		return NotSeatedError{Player: playerName, Table: t.config.Name}
	}
	seat := t.seats[idx]
	if seat.Status != SeatStatusAway {
		return InvalidSeatStatusError{Player: playerName, Status: seat.Status, Expected: SeatStatusAway}
	}
	seat.Status = SeatStatusSitting
	return nil
}

// MoveButton advances the dealer button to the next occupied seat in
// seating order.
func (t *Table) MoveButton() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if len(t.seats) == 0 {
		return NoPlayersError{Table: t.config.Name}
	}
	idx := -1
	for i, seat := range t.seats {
		if seat.SeatNo == t.buttonSeat {
			idx = i
			break
		}
	}
	t.buttonSeat = t.seats[(idx+1)%len(t.seats)].SeatNo
	return nil
}

// Reshuffle discards all hole and community cards, hands posted blinds
// back to the seats that posted them, replaces the deck with a freshly
// shuffled one and resets the street. Valid from any state, with or
// without seated players.
func (t *Table) Reshuffle() {
	t.lock.Lock()
	defer t.lock.Unlock()

	for _, seat := range t.seats {
		if amount := t.contribs[seat.SeatNo]; amount > 0 {
			seat.Stack += amount
			t.pot -= amount
		}
		seat.holeCards = nil
		if seat.Status == SeatStatusFolded || seat.Status == SeatStatusAllIn {
			seat.Status = SeatStatusSitting
		}
	}
	t.contribs = make(map[uint32]int64)
	t.community = nil
	t.deck = poker.NewDeck(nil)
	t.street = StreetShuffled

	tableLogger.Info().
		Str(logging.TableNameKey, t.config.Name).
		Msg("Deck reshuffled")
}

// DealCards deals two hole cards to every sitting seat: one card per
// seat per pass in seating order, two passes, matching conventional
// dealing. It also posts the blinds and antes into the pot.
func (t *Table) DealCards() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.street != StreetShuffled {
		return InvalidStateError{Op: "deal_cards", Current: t.street, Expected: []Street{StreetShuffled}}
	}
	eligible := t.sittingSeats()
	if len(eligible) < 2 {
		return InsufficientPlayersError{Seated: len(eligible), Required: 2}
	}
	needed := 2 * len(eligible)
	if t.deck.Remaining() < needed {
		return poker.DeckExhaustedError{Requested: needed, Remaining: t.deck.Remaining()}
	}

	cards, err := t.deck.Draw(needed)
	if err != nil {
		return err
	}
	for i, seat := range eligible {
		seat.holeCards = []poker.Card{cards[i], cards[i+len(eligible)]}
	}
	t.postBlinds(eligible)
	t.street = StreetHoleCards

	tableLogger.Info().
		Str(logging.TableNameKey, t.config.Name).
		Str(logging.StreetKey, t.street.String()).
		Int("seats", len(eligible)).
		Int64("pot", t.pot).
		Msg("Hole cards dealt")
	return nil
}

func (t *Table) DealFlop() error {
	return t.dealCommunity("deal_flop", StreetHoleCards, StreetFlop)
}

func (t *Table) DealTurn() error {
	return t.dealCommunity("deal_turn", StreetFlop, StreetTurn)
}

func (t *Table) DealRiver() error {
	return t.dealCommunity("deal_river", StreetTurn, StreetRiver)
}

func (t *Table) dealCommunity(op string, from Street, to Street) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.street != from {
		return InvalidStateError{Op: op, Current: t.street, Expected: []Street{from}}
	}
	count := to.communityCardCount() - from.communityCardCount()
	needed := count
	if t.config.BurnCard {
		needed++
	}
	if t.deck.Remaining() < needed {
		return poker.DeckExhaustedError{Requested: needed, Remaining: t.deck.Remaining()}
	}

	if t.config.BurnCard {
		if _, err := t.deck.Draw(1); err != nil {
			return err
		}
	}
	cards, err := t.deck.Draw(count)
	if err != nil {
		return err
	}
	t.community = append(t.community, cards...)
	t.street = to

	tableLogger.Info().
		Str(logging.TableNameKey, t.config.Name).
		Str(logging.OperationKey, op).
		Str(logging.StreetKey, t.street.String()).
		Str("board", poker.CardsToString(t.community)).
		Msg("Community cards dealt")
	return nil
}

// Descriptor snapshots the table. Hole cards are included only for the
// seat owned by forPlayer; pass "" for the public view.
func (t *Table) Descriptor(forPlayer string) *TableDescriptor {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.descriptorLocked(forPlayer)
}

func (t *Table) descriptorLocked(forPlayer string) *TableDescriptor {
	seats := make([]SeatDescriptor, len(t.seats))
	for i, seat := range t.seats {
		seats[i] = seat.descriptor(forPlayer)
	}
	return &TableDescriptor{
		Name:           t.config.Name,
		Config:         t.config,
		Street:         t.street.String(),
		Seats:          seats,
		CommunityCards: poker.CardStrings(t.community),
		Pot:            t.pot,
		ButtonSeatNo:   t.buttonSeat,
	}
}

// drainSeats empties the seat list and reports each player's remaining
// stack, used when the table is deleted.
func (t *Table) drainSeats() map[string]int64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	stacks := make(map[string]int64, len(t.seats))
	for _, seat := range t.seats {
		stacks[seat.PlayerName] = seat.Stack
	}
	t.seats = nil
	return stacks
}

func (t *Table) seatIndex(playerName string) int {
	for i, seat := range t.seats {
		if seat.PlayerName == playerName {
			return i
		}
	}
	return -1
}

func (t *Table) sittingSeats() []*Seat {
	eligible := make([]*Seat, 0, len(t.seats))
	for _, seat := range t.seats {
		if seat.inHand() {
			eligible = append(eligible, seat)
		}
	}
	return eligible
}

// postBlinds collects the small blind, big blind and antes into the
// pot. The small blind sits left of the button, except heads-up where
// the button posts it. Short stacks post what they have.
func (t *Table) postBlinds(eligible []*Seat) {
	buttonIdx := 0
	for i, seat := range eligible {
		if seat.SeatNo == t.buttonSeat {
			buttonIdx = i
			break
		}
	}
	sbIdx := (buttonIdx + 1) % len(eligible)
	bbIdx := (buttonIdx + 2) % len(eligible)
	if len(eligible) == 2 {
		sbIdx = buttonIdx
		bbIdx = (buttonIdx + 1) % 2
	}
	t.post(eligible[sbIdx], t.config.SmallBlind)
	t.post(eligible[bbIdx], t.config.BigBlind)
	if t.config.Ante > 0 {
		for _, seat := range eligible {
			t.post(seat, t.config.Ante)
		}
	}
}

func (t *Table) post(seat *Seat, amount int64) {
	if amount > seat.Stack {
		amount = seat.Stack
	}
	seat.Stack -= amount
	t.pot += amount
	t.contribs[seat.SeatNo] += amount
}
