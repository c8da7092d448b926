package game

import "cardroom.com/server/poker"

// SeatStatus controls whether a seat participates in dealing and
// showdown. Betting negotiation is out of scope, but the states are
// kept so dealing can skip non-participants.
type SeatStatus uint32

const (
	SeatStatusSitting SeatStatus = iota
	SeatStatusFolded
	SeatStatusAllIn
	SeatStatusAway
)

func (s SeatStatus) String() string {
	switch s {
	case SeatStatusSitting:
		return "sitting"
	case SeatStatusFolded:
		return "folded"
	case SeatStatusAllIn:
		return "allin"
	case SeatStatusAway:
		return "away"
	default:
		return "unknown"
	}
}

// Seat binds a player to a table position. Seat numbers start from 1
// like a real table and stay stable while other seats come and go.
type Seat struct {
	SeatNo     uint32
	PlayerID   string
	PlayerName string
	Stack      int64
	Status     SeatStatus

	holeCards []poker.Card
}

func (s *Seat) descriptor(forPlayer string) SeatDescriptor {
	desc := SeatDescriptor{
		SeatNo:     s.SeatNo,
		PlayerName: s.PlayerName,
		Stack:      s.Stack,
		Status:     s.Status.String(),
	}
	if forPlayer != "" && forPlayer == s.PlayerName {
		desc.HoleCards = poker.CardStrings(s.holeCards)
	}
	return desc
}

// inHand reports whether the seat is dealt into the current hand.
func (s *Seat) inHand() bool {
	return s.Status == SeatStatusSitting
}

// atShowdown reports whether the seat competes at showdown: not folded
// or away, and actually holding cards (a seat taken mid-hand has none).
func (s *Seat) atShowdown() bool {
	if s.Status != SeatStatusSitting && s.Status != SeatStatusAllIn {
		return false
	}
	return len(s.holeCards) == 2
}
