package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wordbook/internal/practice"
	"github.com/mrlokans/wordbook/internal/storage"
)

func seedPracticeWords(t *testing.T, env *testEnv, userID uint) []uint {
	t.Helper()

	var ids []uint
	for _, w := range []storage.NewWord{
		{Japanese: "犬", Romaji: "inu", Spanish: "perro"},
		{Japanese: "猫", Romaji: "neko", Spanish: "gato"},
		{Japanese: "鳥", Romaji: "tori", Spanish: "pájaro"},
	} {
		word, err := env.store.CreateWord(context.Background(), userID, w)
		require.NoError(t, err)
		ids = append(ids, word.ID)
	}
	return ids
}

func TestPracticeController_GetDeck(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.user(t, "hanako")
	ids := seedPracticeWords(t, env, userID)

	w := env.do(t, http.MethodGet, "/api/practice", token, nil)
	requireStatus(t, w, http.StatusOK)

	deck := decode[DeckResponse](t, w)
	assert.Equal(t, 3, deck.Total)
	assert.False(t, deck.Shuffle)
	require.Len(t, deck.Cards, 3)
	for i, card := range deck.Cards {
		assert.Equal(t, ids[i], card.WordID)
		assert.Equal(t, i, card.Position)
	}
}

func TestPracticeController_ShuffledDeckIsReproducible(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.user(t, "hanako")
	seedPracticeWords(t, env, userID)

	first := decode[DeckResponse](t, env.do(t, http.MethodGet, "/api/practice?shuffle=true&seed=42", token, nil))
	second := decode[DeckResponse](t, env.do(t, http.MethodGet, "/api/practice?shuffle=true&seed=42", token, nil))

	assert.True(t, first.Shuffle)
	assert.Equal(t, int64(42), first.Seed)
	assert.Equal(t, first.Cards, second.Cards)

	w := env.do(t, http.MethodGet, "/api/practice?shuffle=maybe", token, nil)
	requireStatus(t, w, http.StatusBadRequest)
}

func TestPracticeController_NextCardWraps(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.user(t, "hanako")
	ids := seedPracticeWords(t, env, userID)

	w := env.do(t, http.MethodGet, "/api/practice/next", token, nil)
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, ids[0], decode[practice.Card](t, w).WordID)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/practice/next?after=%d", ids[0]), token, nil)
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, ids[1], decode[practice.Card](t, w).WordID)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/practice/next?after=%d", ids[2]), token, nil)
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, ids[0], decode[practice.Card](t, w).WordID)
}

func TestPracticeController_EmptyDeck(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user(t, "hanako")

	w := env.do(t, http.MethodGet, "/api/practice/next", token, nil)
	requireStatus(t, w, http.StatusNotFound)
	assert.Contains(t, w.Body.String(), practice.ErrEmptyDeck.Error())

	w = env.do(t, http.MethodGet, "/api/practice", token, nil)
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, 0, decode[DeckResponse](t, w).Total)
}

func TestPracticeController_CategoryFilter(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.user(t, "hanako")
	ctx := context.Background()

	category, err := env.store.CreateCategory(ctx, userID, storage.NewCategory{Name: "Animals"})
	require.NoError(t, err)
	seedPracticeWords(t, env, userID)
	dog, err := env.store.CreateWord(ctx, userID, storage.NewWord{Japanese: "犬", Romaji: "inu", Spanish: "perro", CategoryID: &category.ID})
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/practice?categoryId=%d", category.ID), token, nil)
	requireStatus(t, w, http.StatusOK)
	deck := decode[DeckResponse](t, w)
	require.Len(t, deck.Cards, 1)
	assert.Equal(t, dog.ID, deck.Cards[0].WordID)
}
