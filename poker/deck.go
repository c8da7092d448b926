package poker

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

var fullDeck []Card

func init() {
	fullDeck = initializeFullCards()
}

// DeckExhaustedError is returned when a draw asks for more cards than
// remain between the cursor and the end of the deck. With one deck and
// at most ten seats this never happens in normal play, but the cursor
// arithmetic is checked rather than assumed.
type DeckExhaustedError struct {
	Requested int
	Remaining int
}

func (e DeckExhaustedError) Error() string {
	return fmt.Sprintf("deck exhausted: requested %d cards, %d remaining", e.Requested, e.Remaining)
}

// Deck holds the 52 unique cards in some order plus a cursor marking
// the next undrawn position. Drawn cards stay in place; only the cursor
// moves, so a card can never be handed out twice between shuffles.
type Deck struct {
	cards  []Card
	cursor int
}

func newSeed() rand.Source {
	var b [8]byte
	_, err := crypto_rand.Read(b[:])
	if err != nil {
		panic("cannot seed math/rand package with cryptographically secure random number generator")
	}
	return rand.NewSource(int64(binary.LittleEndian.Uint64(b[:])))
}

// NewDeck returns a shuffled deck. Passing a source makes the shuffle
// deterministic for tests; passing nil seeds from crypto/rand.
func NewDeck(source rand.Source) *Deck {
	if source == nil {
		source = newSeed()
	}
	deck := &Deck{}
	deck.shuffle(rand.New(source))
	return deck
}

// NewDeckNoShuffle returns the deck in canonical order with the cursor
// at zero, used by dealing-order tests.
func NewDeckNoShuffle() *Deck {
	deck := &Deck{}
	deck.cards = make([]Card, DeckSize)
	copy(deck.cards, fullDeck)
	return deck
}

// Shuffle applies a uniformly random permutation to the full 52 cards
// and resets the cursor.
func (deck *Deck) Shuffle() *Deck {
	deck.shuffle(rand.New(newSeed()))
	return deck
}

func (deck *Deck) shuffle(randGen *rand.Rand) {
	deck.cards = make([]Card, DeckSize)
	copy(deck.cards, fullDeck)

	// Fisher-Yates
	for i := DeckSize - 1; i > 0; i-- {
		loc := randGen.Intn(i + 1)
		deck.cards[i], deck.cards[loc] = deck.cards[loc], deck.cards[i]
	}
	deck.cursor = 0
}

// Draw returns the next n cards and advances the cursor.
func (deck *Deck) Draw(n int) ([]Card, error) {
	if deck.cursor+n > len(deck.cards) {
		return nil, DeckExhaustedError{Requested: n, Remaining: deck.Remaining()}
	}
	cards := make([]Card, n)
	copy(cards, deck.cards[deck.cursor:deck.cursor+n])
	deck.cursor += n
	return cards, nil
}

func (deck *Deck) Remaining() int {
	return len(deck.cards) - deck.cursor
}

func (deck *Deck) Drawn() int {
	return deck.cursor
}

func (deck *Deck) PrettyPrint() string {
	return CardsToString(deck.cards)
}

// Canonical order: ranks low to high, suits s, h, d, c within a rank.
func initializeFullCards() []Card {
	var cards []Card
	for i := range strRanks {
		for _, ch := range []byte{'s', 'h', 'd', 'c'} {
			cards = append(cards, NewCard(string(strRanks[i])+string(ch)))
		}
	}
	return cards
}

type CardsInAscii []string

// DeckFromScript arranges a deck so that hole cards are dealt to each
// seat in two interleaved passes (seat i receives positions i and
// i+noOfSeats), followed by the flop, turn and river. Used by tests and
// simulations that need known outcomes.
func DeckFromScript(seatCards []CardsInAscii, flop CardsInAscii, turn Card, river Card, burnCard bool) *Deck {
	deck := NewDeck(nil)
	noOfSeats := len(seatCards)
	for i, holeCards := range seatCards {
		for j, cardStr := range holeCards {
			deck.placeCard(NewCard(cardStr), i+j*noOfSeats)
		}
	}

	deckIndex := noOfSeats * len(seatCards[0])
	if burnCard {
		deckIndex++
	}
	for _, cardStr := range flop {
		deck.placeCard(NewCard(cardStr), deckIndex)
		deckIndex++
	}

	if burnCard {
		deckIndex++
	}
	deck.placeCard(turn, deckIndex)
	deckIndex++

	if burnCard {
		deckIndex++
	}
	deck.placeCard(river, deckIndex)

	return deck
}

// placeCard swaps the wanted card into position, preserving the deck as
// a permutation of the 52 cards.
func (deck *Deck) placeCard(card Card, pos int) {
	loc := deck.getCardLoc(card)
	if loc < 0 {
		panic(fmt.Sprintf("card %s not found in deck\nDeck: %s", card.String(), deck.PrettyPrint()))
	}
	deck.cards[pos], deck.cards[loc] = deck.cards[loc], deck.cards[pos]
}

func (deck *Deck) getCardLoc(cardToLocate Card) int {
	for i, card := range deck.cards {
		if card == cardToLocate {
			return i
		}
	}
	return -1
}
