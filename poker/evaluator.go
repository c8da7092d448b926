package poker

import (
	"fmt"
	"sort"
)

// Hand categories, weakest to strongest.
const (
	HighCard      int32 = 1
	Pair          int32 = 2
	TwoPair       int32 = 3
	ThreeOfAKind  int32 = 4
	Straight      int32 = 5
	Flush         int32 = 6
	FullHouse     int32 = 7
	FourOfAKind   int32 = 8
	StraightFlush int32 = 9
	RoyalFlush    int32 = 10
)

var rankClassToString = map[int32]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

// HandRank is a totally ordered hand strength: a higher value strictly
// beats a lower one and equal values are an exact tie. The category sits
// in bits 20-23 and up to five tie-break card ranks in the nibbles
// below, so comparing two HandRanks as integers implements the standard
// poker ordering including kickers.
type HandRank uint32

func (r HandRank) Class() int32 {
	return int32(r >> 20)
}

func (r HandRank) String() string {
	return RankString(r)
}

func RankClass(rank HandRank) int32 {
	return rank.Class()
}

func RankString(rank HandRank) string {
	s, ok := rankClassToString[rank.Class()]
	if !ok {
		return "Unknown"
	}
	return s
}

func packRank(class int32, tiebreaks ...int32) HandRank {
	r := uint32(class) << 20
	shift := uint(16)
	for _, t := range tiebreaks {
		r |= uint32(t) << shift
		shift -= 4
	}
	return HandRank(r)
}

// Evaluate scores a 5, 6 or 7 card combination by evaluating every
// 5-card subset and keeping the strongest. It returns the winning
// strength and the five cards that achieve it.
func Evaluate(cards []Card) (HandRank, []Card) {
	switch len(cards) {
	case 5:
		return five(cards...), cards
	case 6:
		return six(cards...)
	case 7:
		return seven(cards...)
	default:
		panic(fmt.Sprintf("only 5, 6 and 7 cards are supported, got %d", len(cards)))
	}
}

func six(cards ...Card) (HandRank, []Card) {
	var best HandRank
	bestCards := make([]Card, 5)
	subset := make([]Card, 5)
	for i := 0; i < len(cards); i++ {
		subset = subset[:0]
		subset = append(subset, cards[:i]...)
		subset = append(subset, cards[i+1:]...)

		score, evaluated := five(subset...), subset
		if score > best {
			best = score
			copy(bestCards, evaluated)
		}
	}
	return best, bestCards
}

func seven(cards ...Card) (HandRank, []Card) {
	var best HandRank
	bestCards := make([]Card, 5)
	subset := make([]Card, 6)
	for i := 0; i < len(cards); i++ {
		subset = subset[:0]
		subset = append(subset, cards[:i]...)
		subset = append(subset, cards[i+1:]...)

		score, evaluated := six(subset...)
		if score > best {
			best = score
			copy(bestCards, evaluated)
		}
	}
	return best, bestCards
}

type rankGroup struct {
	rank  int32
	count int32
}

func five(cards ...Card) HandRank {
	ranks := make([]int32, 5)
	for i, c := range cards {
		ranks[i] = c.Rank()
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })

	isFlush := cards[0].Suit()&cards[1].Suit()&cards[2].Suit()&cards[3].Suit()&cards[4].Suit() != 0

	// group ranks by multiplicity, biggest group first, higher rank
	// breaking group-size ties
	groups := groupRanks(ranks)

	straightHigh := straightHighCard(ranks)
	isStraight := straightHigh != 0

	switch {
	case isStraight && isFlush:
		if straightHigh == MaxRank {
			return packRank(RoyalFlush, straightRanks(straightHigh)...)
		}
		return packRank(StraightFlush, straightRanks(straightHigh)...)
	case groups[0].count == 4:
		return packRank(FourOfAKind, groups[0].rank, groups[1].rank)
	case groups[0].count == 3 && groups[1].count == 2:
		return packRank(FullHouse, groups[0].rank, groups[1].rank)
	case isFlush:
		return packRank(Flush, ranks...)
	case isStraight:
		return packRank(Straight, straightRanks(straightHigh)...)
	case groups[0].count == 3:
		return packRank(ThreeOfAKind, groups[0].rank, groups[1].rank, groups[2].rank)
	case groups[0].count == 2 && groups[1].count == 2:
		return packRank(TwoPair, groups[0].rank, groups[1].rank, groups[2].rank)
	case groups[0].count == 2:
		return packRank(Pair, groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank)
	default:
		return packRank(HighCard, ranks...)
	}
}

func groupRanks(sortedDesc []int32) []rankGroup {
	groups := make([]rankGroup, 0, 5)
	for _, r := range sortedDesc {
		if len(groups) > 0 && groups[len(groups)-1].rank == r {
			groups[len(groups)-1].count++
			continue
		}
		groups = append(groups, rankGroup{rank: r, count: 1})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})
	return groups
}

// straightHighCard returns the high card of a straight, or 0 if the
// ranks do not form one. The ace plays low only in the wheel
// (A-2-3-4-5), whose high card is the five.
func straightHighCard(sortedDesc []int32) int32 {
	for i := 1; i < len(sortedDesc); i++ {
		if sortedDesc[i] == sortedDesc[i-1] {
			return 0
		}
	}
	if sortedDesc[0]-sortedDesc[4] == 4 {
		return sortedDesc[0]
	}
	// wheel: A 5 4 3 2
	if sortedDesc[0] == MaxRank && sortedDesc[1] == 5 && sortedDesc[4] == 2 {
		return 5
	}
	return 0
}

// straightRanks spells out the five tie-break ranks of a straight; in
// the wheel the ace counts as one.
func straightRanks(high int32) []int32 {
	ranks := make([]int32, 5)
	for i := range ranks {
		ranks[i] = high - int32(i)
	}
	return ranks
}
