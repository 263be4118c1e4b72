package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordbook/internal/auth"
	"github.com/mrlokans/wordbook/internal/practice"
	"github.com/mrlokans/wordbook/internal/storage"
)

type PracticeController struct {
	store storage.WordStore
	now   func() time.Time
}

func NewPracticeController(store storage.WordStore) *PracticeController {
	return &PracticeController{store: store, now: time.Now}
}

// DeckResponse is returned by GET /api/practice. Seed is set for shuffled
// decks; passing it back to /api/practice/next keeps the same order.
type DeckResponse struct {
	Cards   []practice.Card `json:"cards"`
	Total   int             `json:"total"`
	Shuffle bool            `json:"shuffle"`
	Seed    int64           `json:"seed,omitempty"`
}

// GetDeck handles GET /api/practice?categoryId=&shuffle=&seed=
func (pc *PracticeController) GetDeck(c *gin.Context) {
	deck, opts, ok := pc.buildDeck(c)
	if !ok {
		return
	}

	resp := DeckResponse{
		Cards:   deck.Cards(),
		Total:   deck.Len(),
		Shuffle: opts.Shuffle,
	}
	if opts.Shuffle {
		resp.Seed = opts.Seed
	}
	c.JSON(http.StatusOK, resp)
}

// NextCard handles GET /api/practice/next?after=&categoryId=&shuffle=&seed=
// Without after (or with an id no longer in the deck) it returns the first card.
func (pc *PracticeController) NextCard(c *gin.Context) {
	after, ok := parseOptionalQueryID(c, "after")
	if !ok {
		return
	}

	deck, _, ok := pc.buildDeck(c)
	if !ok {
		return
	}

	var afterID uint
	if after != nil {
		afterID = *after
	}

	card, err := deck.Next(afterID)
	if errors.Is(err, practice.ErrEmptyDeck) {
		respondError(c, http.StatusNotFound, err.Error(), CodeNotFound)
		return
	}
	if err != nil {
		respondInternalError(c, err, "next card")
		return
	}
	c.JSON(http.StatusOK, card)
}

func (pc *PracticeController) buildDeck(c *gin.Context) (*practice.Deck, practice.Options, bool) {
	categoryID, ok := parseOptionalQueryID(c, "categoryId")
	if !ok {
		return nil, practice.Options{}, false
	}
	shuffle, ok := parseBoolQuery(c, "shuffle")
	if !ok {
		return nil, practice.Options{}, false
	}

	opts := practice.Options{Shuffle: shuffle}
	if shuffle {
		opts.Seed = pc.now().UnixNano()
		if s := c.Query("seed"); s != "" {
			seed, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				respondBadRequest(c, "invalid seed")
				return nil, practice.Options{}, false
			}
			opts.Seed = seed
		}
	}

	words, err := pc.store.ListWords(c.Request.Context(), auth.GetUserID(c), categoryID)
	if err != nil {
		respondInternalError(c, err, "list practice words")
		return nil, practice.Options{}, false
	}
	return practice.NewDeck(words, opts), opts, true
}
