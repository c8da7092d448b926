package poker

import (
	"fmt"
	"strings"
)

// Card packs a rank and a suit into a single byte:
// high 4 bits hold the rank (2-14, where 11-14 = J,Q,K,A),
// low 4 bits hold the suit as a single bit (1=spade, 2=heart,
// 4=diamond, 8=club). The one-hot suit makes flush detection a
// bitwise AND over five cards.
type Card uint8

const (
	MinRank int32 = 2
	MaxRank int32 = 14 // ace
)

var (
	strRanks = "23456789TJQKA"

	charSuitToIntSuit = map[uint8]int32{
		's': 1,
		'h': 2,
		'd': 4,
		'c': 8,
	}
	intSuitToCharSuit = "xshxdxxxc"
	charRankToIntRank = map[uint8]int32{}
)

var prettySuits = map[int32]string{
	1: "♠", // spades
	2: "❤", // hearts
	4: "♦", // diamonds
	8: "♣", // clubs
}

func init() {
	for i := range strRanks {
		charRankToIntRank[strRanks[i]] = MinRank + int32(i)
	}
}

// NewCard parses cards in ascii form, e.g. "As", "Td", "2c".
func NewCard(s string) Card {
	rank := charRankToIntRank[s[0]]
	suit := charSuitToIntSuit[s[1]]
	return MakeCard(rank, suit)
}

func MakeCard(rank int32, suit int32) Card {
	return Card(uint8(rank)<<4 | uint8(suit))
}

func (c Card) Rank() int32 {
	return int32(c) >> 4
}

func (c Card) Suit() int32 {
	return int32(c) & 0xF
}

func (c Card) String() string {
	return string(strRanks[c.Rank()-MinRank]) + string(intSuitToCharSuit[c.Suit()])
}

func (c Card) MarshalJSON() ([]byte, error) {
	return []byte("\"" + c.String() + "\""), nil
}

func (c *Card) UnmarshalJSON(b []byte) error {
	if len(b) != 4 {
		return fmt.Errorf("poker: invalid card %q", string(b))
	}
	*c = NewCard(string(b[1:3]))
	return nil
}

func (c Card) PrettyString() string {
	return string(strRanks[c.Rank()-MinRank]) + prettySuits[c.Suit()]
}

func CardsToString(cards []Card) string {
	var b strings.Builder
	b.Grow(32)
	b.WriteString("[")
	for _, c := range cards {
		fmt.Fprintf(&b, " %s ", c.PrettyString())
	}
	b.WriteString("]")
	return b.String()
}

// CardStrings returns the ascii form of each card, the shape used in
// table descriptors.
func CardStrings(cards []Card) []string {
	strs := make([]string, len(cards))
	for i, c := range cards {
		strs[i] = c.String()
	}
	return strs
}

// CardsFromStrings is the inverse of CardStrings, used by scripted decks
// in tests.
func CardsFromStrings(strs []string) []Card {
	cards := make([]Card, len(strs))
	for i, s := range strs {
		cards[i] = NewCard(s)
	}
	return cards
}
