package game

// Street is the phase of one hand's lifecycle. Transitions move strictly
// forward; only a reshuffle goes back (to StreetShuffled).
type Street uint32

const (
	StreetEmpty Street = iota
	StreetShuffled
	StreetHoleCards
	StreetFlop
	StreetTurn
	StreetRiver
	StreetShowdown
)

func (s Street) String() string {
	switch s {
	case StreetEmpty:
		return "empty"
	case StreetShuffled:
		return "shuffled"
	case StreetHoleCards:
		return "hole_cards"
	case StreetFlop:
		return "flop"
	case StreetTurn:
		return "turn"
	case StreetRiver:
		return "river"
	case StreetShowdown:
		return "showdown_done"
	default:
		return "unknown"
	}
}

// communityCardCount is the number of community cards a street carries.
func (s Street) communityCardCount() int {
	switch s {
	case StreetFlop:
		return 3
	case StreetTurn:
		return 4
	case StreetRiver, StreetShowdown:
		return 5
	default:
		return 0
	}
}
