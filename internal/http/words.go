package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordbook/internal/auth"
	"github.com/mrlokans/wordbook/internal/storage"
)

const invalidWordData = "invalid word data"

type WordsController struct {
	store storage.WordStore
}

func NewWordsController(store storage.WordStore) *WordsController {
	return &WordsController{store: store}
}

// CreateWordRequest is the body of POST /api/words.
type CreateWordRequest struct {
	Japanese   string `json:"japanese" binding:"required"`
	Romaji     string `json:"romaji" binding:"required"`
	Spanish    string `json:"spanish" binding:"required"`
	CategoryID *uint  `json:"categoryId"`
}

// UpdateWordRequest is the body of PATCH /api/words/:id. Omitted fields are
// left unchanged; "categoryId": null removes the word from its category.
type UpdateWordRequest struct {
	Japanese   *string                `json:"japanese"`
	Romaji     *string                `json:"romaji"`
	Spanish    *string                `json:"spanish"`
	CategoryID storage.Nullable[uint] `json:"categoryId"`
}

func (r UpdateWordRequest) valid() bool {
	for _, s := range []*string{r.Japanese, r.Romaji, r.Spanish} {
		if s != nil && isBlank(*s) {
			return false
		}
	}
	return true
}

// ListWords handles GET /api/words?categoryId=
// A categoryId owned by someone else yields an empty list.
func (wc *WordsController) ListWords(c *gin.Context) {
	categoryID, ok := parseOptionalQueryID(c, "categoryId")
	if !ok {
		return
	}

	words, err := wc.store.ListWords(c.Request.Context(), auth.GetUserID(c), categoryID)
	if err != nil {
		respondInternalError(c, err, "list words")
		return
	}
	c.JSON(http.StatusOK, words)
}

// GetWord handles GET /api/words/:id
func (wc *WordsController) GetWord(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	word, err := wc.store.GetWord(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "get word")
		return
	}
	if word == nil {
		respondNotFound(c, "word")
		return
	}
	c.JSON(http.StatusOK, word)
}

// CreateWord handles POST /api/words
func (wc *WordsController) CreateWord(c *gin.Context) {
	var req CreateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil || isBlank(req.Japanese) || isBlank(req.Romaji) || isBlank(req.Spanish) {
		respondBadRequest(c, invalidWordData)
		return
	}

	word, err := wc.store.CreateWord(c.Request.Context(), auth.GetUserID(c), storage.NewWord{
		Japanese:   req.Japanese,
		Romaji:     req.Romaji,
		Spanish:    req.Spanish,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		respondStoreError(c, err, "word", "create word")
		return
	}
	c.JSON(http.StatusCreated, word)
}

// UpdateWord handles PATCH /api/words/:id
func (wc *WordsController) UpdateWord(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.valid() {
		respondBadRequest(c, invalidWordData)
		return
	}

	word, err := wc.store.UpdateWord(c.Request.Context(), id, auth.GetUserID(c), storage.WordUpdate{
		Japanese:   req.Japanese,
		Romaji:     req.Romaji,
		Spanish:    req.Spanish,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		respondStoreError(c, err, "word", "update word")
		return
	}
	c.JSON(http.StatusOK, word)
}

// DeleteWord handles DELETE /api/words/:id
func (wc *WordsController) DeleteWord(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := wc.store.DeleteWord(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		respondStoreError(c, err, "word", "delete word")
		return
	}
	c.Status(http.StatusNoContent)
}
