// Package practice orders a user's words into a flashcard deck.
//
// A deck cycles: the card after the last one is the first one again. Decks
// are built per request from the current word list and hold no state.
package practice

import (
	"errors"
	"math/rand"

	"github.com/mrlokans/wordbook/internal/entities"
)

var ErrEmptyDeck = errors.New("practice deck is empty")

// Card is one flashcard. Japanese and Romaji are the prompt, Spanish the answer.
type Card struct {
	WordID     uint   `json:"wordId"`
	Position   int    `json:"position"`
	Japanese   string `json:"japanese"`
	Romaji     string `json:"romaji"`
	Spanish    string `json:"spanish"`
	CategoryID *uint  `json:"categoryId"`
}

// Options control deck ordering.
type Options struct {
	// Shuffle randomises the order. The same Seed gives the same order, so a
	// client can page through a shuffled deck with Next.
	Shuffle bool
	Seed    int64
}

// Deck is an ordered, wrap-around sequence of cards.
type Deck struct {
	cards []Card
}

// NewDeck builds a deck from words in the order given, or shuffled.
func NewDeck(words []entities.Word, opts Options) *Deck {
	cards := make([]Card, len(words))
	for i, w := range words {
		cards[i] = Card{
			WordID:     w.ID,
			Japanese:   w.Japanese,
			Romaji:     w.Romaji,
			Spanish:    w.Spanish,
			CategoryID: w.CategoryID,
		}
	}

	if opts.Shuffle {
		rng := rand.New(rand.NewSource(opts.Seed))
		rng.Shuffle(len(cards), func(i, j int) {
			cards[i], cards[j] = cards[j], cards[i]
		})
	}

	for i := range cards {
		cards[i].Position = i
	}

	return &Deck{cards: cards}
}

// Cards returns the deck in order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// First returns the first card of the deck.
func (d *Deck) First() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	return d.cards[0], nil
}

// Next returns the card following the word with afterID, wrapping to the
// first card after the last. An afterID not in the deck (including 0)
// starts from the beginning.
func (d *Deck) Next(afterID uint) (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}

	for i, c := range d.cards {
		if c.WordID == afterID {
			return d.cards[(i+1)%len(d.cards)], nil
		}
	}
	return d.cards[0], nil
}
