package game

import (
	"cardroom.com/server/logging"
	"cardroom.com/server/poker"
)

// SeatHandResult is one seat's revealed hand at showdown.
type SeatHandResult struct {
	SeatNo     uint32   `json:"seatNo"`
	PlayerName string   `json:"playerName"`
	HoleCards  []string `json:"holeCards"`
	BestCards  []string `json:"bestCards"`
	Rank       string   `json:"rank"`
	Amount     int64    `json:"amount"`
}

// ShowdownResult reports every winning seat. Ties at the top produce
// multiple winners and the pot is split between them.
type ShowdownResult struct {
	TableName string           `json:"tableName"`
	Winners   []SeatHandResult `json:"winners"`
	PotWon    int64            `json:"potWon"`
}

type evaluatedHand struct {
	rank      poker.HandRank
	bestCards []poker.Card
}

// winnerEvaluate ranks each contending seat's hole+community cards and
// picks the set of seats sharing the best strength.
type winnerEvaluate struct {
	community   []poker.Card
	bestPerSeat map[uint32]evaluatedHand
}

func newWinnerEvaluate(community []poker.Card) *winnerEvaluate {
	return &winnerEvaluate{
		community:   community,
		bestPerSeat: make(map[uint32]evaluatedHand),
	}
}

func (w *winnerEvaluate) evaluateSeat(seat *Seat) {
	allCards := make([]poker.Card, 0, len(seat.holeCards)+len(w.community))
	allCards = append(allCards, seat.holeCards...)
	allCards = append(allCards, w.community...)
	rank, bestCards := poker.Evaluate(allCards)
	w.bestPerSeat[seat.SeatNo] = evaluatedHand{rank: rank, bestCards: bestCards}
}

func (w *winnerEvaluate) winningSeats() []uint32 {
	var best poker.HandRank
	for _, hand := range w.bestPerSeat {
		if hand.rank > best {
			best = hand.rank
		}
	}
	winners := make([]uint32, 0, 1)
	for seatNo, hand := range w.bestPerSeat {
		if hand.rank == best {
			winners = append(winners, seatNo)
		}
	}
	return winners
}

// DetermineWinner runs the showdown: valid only on the river, it ranks
// every seat still in the hand, splits the pot between the best-ranked
// seats and ends the hand.
func (t *Table) DetermineWinner() (*ShowdownResult, error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.street != StreetRiver {
		return nil, InvalidStateError{Op: "determine_winner", Current: t.street, Expected: []Street{StreetRiver}}
	}

	contenders := make([]*Seat, 0, len(t.seats))
	for _, seat := range t.seats {
		if seat.atShowdown() {
			contenders = append(contenders, seat)
		}
	}
	if len(contenders) == 0 {
		return nil, NoPlayersError{Table: t.config.Name}
	}

	evaluate := newWinnerEvaluate(t.community)
	for _, seat := range contenders {
		evaluate.evaluateSeat(seat)
	}
	winningSeats := evaluate.winningSeats()

	potWon := t.pot
	share := potWon / int64(len(winningSeats))
	remainder := potWon % int64(len(winningSeats))

	result := &ShowdownResult{
		TableName: t.config.Name,
		Winners:   make([]SeatHandResult, 0, len(winningSeats)),
		PotWon:    potWon,
	}
	// pay winners in seating order; the odd chip goes to the first
	for _, seat := range contenders {
		if !containsSeat(winningSeats, seat.SeatNo) {
			continue
		}
		amount := share
		if remainder > 0 {
			amount += remainder
			remainder = 0
		}
		seat.Stack += amount
		hand := evaluate.bestPerSeat[seat.SeatNo]
		result.Winners = append(result.Winners, SeatHandResult{
			SeatNo:     seat.SeatNo,
			PlayerName: seat.PlayerName,
			HoleCards:  poker.CardStrings(seat.holeCards),
			BestCards:  poker.CardStrings(hand.bestCards),
			Rank:       poker.RankString(hand.rank),
			Amount:     amount,
		})
	}

	t.pot = 0
	t.contribs = make(map[uint32]int64)
	t.street = StreetShowdown

	tableLogger.Info().
		Str(logging.TableNameKey, t.config.Name).
		Int("winners", len(result.Winners)).
		Int64("pot", potWon).
		Msg("Showdown complete")
	return result, nil
}

func containsSeat(seatNos []uint32, seatNo uint32) bool {
	for _, no := range seatNos {
		if no == seatNo {
			return true
		}
	}
	return false
}
