// Package storagetest holds the behavioural suite every storage.Store
// implementation must pass.
//
// # Usage
//
//	func TestContract(t *testing.T) {
//		storagetest.Run(t, func(t *testing.T) storage.Store {
//			return storage.NewMemoryStore()
//		})
//	}
package storagetest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wordbook/internal/entities"
	"github.com/mrlokans/wordbook/internal/storage"
)

// Factory returns a fresh, empty store for a single subtest.
type Factory func(t *testing.T) storage.Store

// Run executes the full suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Store)
	}{
		{"CreateUser", testCreateUser},
		{"CreateUser_DuplicateUsername", testCreateUserDuplicate},
		{"GetUser_Missing", testGetUserMissing},
		{"Categories_CRUD", testCategoriesCRUD},
		{"Categories_InsertionOrder", testCategoriesInsertionOrder},
		{"Categories_DuplicateNamesAllowed", testCategoryDuplicateNames},
		{"Categories_OwnerIsolation", testCategoryIsolation},
		{"Categories_ForeignLooksMissing", testCategoryForeignLooksMissing},
		{"UpdateCategory_NotFound", testUpdateCategoryNotFound},
		{"UpdateCategory_PartialFields", testUpdateCategoryPartial},
		{"DeleteCategory_ClearsWordRefs", testDeleteCategoryCascade},
		{"DeleteCategory_LeavesOtherOwners", testDeleteCategoryOtherOwner},
		{"DeleteCategory_Idempotent", testDeleteCategoryIdempotent},
		{"Word_RoundTrip", testWordRoundTrip},
		{"LongText_RoundTrip", testLongTextRoundTrip},
		{"Words_OwnerIsolation", testWordIsolation},
		{"ListWords_CategoryFilter", testListWordsFilter},
		{"ListWords_ForeignCategoryFilter", testListWordsForeignFilter},
		{"CreateWord_UnknownCategory", testCreateWordUnknownCategory},
		{"UpdateWord_NotFound", testUpdateWordNotFound},
		{"UpdateWord_PartialFields", testUpdateWordPartial},
		{"UpdateWord_UnknownCategory", testUpdateWordUnknownCategory},
		{"DeleteWord_Idempotent", testDeleteWordIdempotent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }

func mustUser(t *testing.T, s storage.Store, username string) *entities.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), username, "hash-"+username)
	require.NoError(t, err)
	return user
}

func mustCategory(t *testing.T, s storage.Store, ownerID uint, name string) *entities.Category {
	t.Helper()
	c, err := s.CreateCategory(context.Background(), ownerID, storage.NewCategory{Name: name})
	require.NoError(t, err)
	return c
}

func mustWord(t *testing.T, s storage.Store, ownerID uint, japanese string, categoryID *uint) *entities.Word {
	t.Helper()
	w, err := s.CreateWord(context.Background(), ownerID, storage.NewWord{
		Japanese:   japanese,
		Romaji:     "romaji-" + japanese,
		Spanish:    "spanish-" + japanese,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return w
}

func countAll(t *testing.T, s storage.Store, owners ...uint) (categories, words int) {
	t.Helper()
	ctx := context.Background()
	for _, owner := range owners {
		cs, err := s.ListCategories(ctx, owner)
		require.NoError(t, err)
		ws, err := s.ListWords(ctx, owner, nil)
		require.NoError(t, err)
		categories += len(cs)
		words += len(ws)
	}
	return categories, words
}

func testCreateUser(t *testing.T, s storage.Store) {
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "hanako", "bcrypt-hash")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "hanako", user.Username)
	assert.Equal(t, "bcrypt-hash", user.PasswordHash)

	other := mustUser(t, s, "taro")
	assert.NotEqual(t, user.ID, other.ID)

	byID, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "hanako", byID.Username)

	byName, err := s.GetUserByUsername(ctx, "taro")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, other.ID, byName.ID)
}

func testCreateUserDuplicate(t *testing.T, s storage.Store) {
	ctx := context.Background()
	original := mustUser(t, s, "hanako")

	_, err := s.CreateUser(ctx, "hanako", "another-hash")
	assert.ErrorIs(t, err, storage.ErrConflict)

	stored, err := s.GetUserByUsername(ctx, "hanako")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, original.ID, stored.ID)
	assert.Equal(t, original.PasswordHash, stored.PasswordHash)
}

func testGetUserMissing(t *testing.T, s storage.Store) {
	ctx := context.Background()

	user, err := s.GetUserByID(ctx, 999)
	assert.NoError(t, err)
	assert.Nil(t, user)

	user, err = s.GetUserByUsername(ctx, "nobody")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func testCategoriesCRUD(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "hanako")

	created, err := s.CreateCategory(ctx, owner.ID, storage.NewCategory{
		Name:        "Animals",
		Description: strPtr("four legs and more"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, owner.ID, created.UserID)
	assert.Equal(t, "Animals", created.Name)
	require.NotNil(t, created.Description)
	assert.Equal(t, "four legs and more", *created.Description)

	fetched, err := s.GetCategory(ctx, created.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, created.Name, fetched.Name)

	updated, err := s.UpdateCategory(ctx, created.ID, owner.ID, storage.CategoryUpdate{Name: strPtr("Pets")})
	require.NoError(t, err)
	assert.Equal(t, "Pets", updated.Name)

	require.NoError(t, s.DeleteCategory(ctx, created.ID, owner.ID))

	gone, err := s.GetCategory(ctx, created.ID, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func testCategoriesInsertionOrder(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "hanako")

	names := []string{"Verbs", "Animals", "Food", "Colors"}
	for _, name := range names {
		mustCategory(t, s, owner.ID, name)
	}

	categories, err := s.ListCategories(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, categories, len(names))
	for i, c := range categories {
		assert.Equal(t, names[i], c.Name)
	}
}

func testCategoryDuplicateNames(t *testing.T, s storage.Store) {
	ctx := context.Background()
	hanako := mustUser(t, s, "hanako")
	taro := mustUser(t, s, "taro")

	mustCategory(t, s, hanako.ID, "Animals")
	mustCategory(t, s, hanako.ID, "Animals")
	mustCategory(t, s, taro.ID, "Animals")

	mine, err := s.ListCategories(ctx, hanako.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func testCategoryIsolation(t *testing.T, s storage.Store) {
	ctx := context.Background()
	hanako := mustUser(t, s, "hanako")
	taro := mustUser(t, s, "taro")

	mustCategory(t, s, hanako.ID, "Animals")
	theirs := mustCategory(t, s, taro.ID, "Food")

	mine, err := s.ListCategories(ctx, hanako.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Animals", mine[0].Name)

	got, err := s.GetCategory(ctx, theirs.ID, hanako.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	empty, err := s.ListCategories(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testCategoryForeignLooksMissing(t *testing.T, s storage.Store) {
	ctx := context.Background()
	hanako := mustUser(t, s, "hanako")
	taro := mustUser(t, s, "taro")
	theirs := mustCategory(t, s, taro.ID, "Food")

	foreign, foreignErr := s.GetCategory(ctx, theirs.ID, hanako.ID)
	missing, missingErr := s.GetCategory(ctx, theirs.ID+1000, hanako.ID)

	assert.Equal(t, missingErr, foreignErr)
	assert.Equal(t, missing, foreign)
	assert.Nil(t, foreign)

	theirWord := mustWord(t, s, taro.ID, "寿司", nil)
	foreignWord, foreignWordErr := s.GetWord(ctx, theirWord.ID, hanako.ID)
	missingWord, missingWordErr := s.GetWord(ctx, theirWord.ID+1000, hanako.ID)

	assert.Equal(t, missingWordErr, foreignWordErr)
	assert.Equal(t, missingWord, foreignWord)
	assert.Nil(t, foreignWord)
}

func testUpdateCategoryNotFound(t *testing.T, s storage.Store) {
	ctx := context.Background()
	hanako := mustUser(t, s, "hanako")
	taro := mustUser(t, s, "taro")
	theirs := mustCategory(t, s, taro.ID, "Food")

	beforeCategories, beforeWords := countAll(t, s, hanako.ID, taro.ID)

	_, err := s.UpdateCategory(ctx, 999, hanako.ID, storage.CategoryUpdate{Name: strPtr("x")})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.UpdateCategory(ctx, theirs.ID, hanako.ID, storage.CategoryUpdate{Name: strPtr("stolen")})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	afterCategories, afterWords := countAll(t, s, hanako.ID, taro.ID)
	assert.Equal(t, beforeCategories, afterCategories)
	assert.Equal(t, beforeWords, afterWords)

	unchanged, err := s.GetCategory(ctx, theirs.ID, taro.ID)
	require.NoError(t, err)
	require.NotNil(t, unchanged)
	assert.Equal(t, "Food", unchanged.Name)
}

func testUpdateCategoryPartial(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "hanako")
	c, err := s.CreateCategory(ctx, owner.ID, storage.NewCategory{Name: "Animals", Description: strPtr("zoo")})
	require.NoError(t, err)

	t.Run("empty update keeps everything", func(t *testing.T) {
		got, err := s.UpdateCategory(ctx, c.ID, owner.ID, storage.CategoryUpdate{})
		require.NoError(t, err)
		assert.Equal(t, "Animals", got.Name)
		require.NotNil(t, got.Description)
		assert.Equal(t, "zoo", *got.Description)
	})

	t.Run("name only keeps description", func(t *testing.T) {
		got, err := s.UpdateCategory(ctx, c.ID, owner.ID, storage.CategoryUpdate{Name: strPtr("Pets")})
		require.NoError(t, err)
		assert.Equal(t, "Pets", got.Name)
		require.NotNil(t, got.Description)
		assert.Equal(t, "zoo", *got.Description)
	})

	t.Run("description only keeps name", func(t *testing.T) {
		got, err := s.UpdateCategory(ctx, c.ID, owner.ID, storage.CategoryUpdate{Description: storage.Value("farm")})
		require.NoError(t, err)
		assert.Equal(t, "Pets", got.Name)
		require.NotNil(t, got.Description)
		assert.Equal(t, "farm", *got.Description)
	})

	t.Run("null description clears it", func(t *testing.T) {
		got, err := s.UpdateCategory(ctx, c.ID, owner.ID, storage.CategoryUpdate{Description: storage.Null[string]()})
		require.NoError(t, err)
		assert.Equal(t, "Pets", got.Name)
		assert.Nil(t, got.Description)

		stored, err := s.GetCategory(ctx, c.ID, owner.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Nil(t, stored.Description)
	})
}

func testDeleteCategoryCascade(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "hanako")
	animals := mustCategory(t, s, owner.ID, "Animals")
	food := mustCategory(t, s, owner.ID, "Food")

	const n = 3
	for i := 0; i < n; i++ {
		mustWord(t, s, owner.ID, "動物"+string(rune('a'+i)), uintPtr(animals.ID))
	}
	sushi := mustWord(t, s, owner.ID, "寿司", uintPtr(food.ID))
	loose := mustWord(t, s, owner.ID, "水", nil)

	require.NoError(t, s.DeleteCategory(ctx, animals.ID, owner.ID))

	categories, err := s.ListCategories(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, food.ID, categories[0].ID)

	filtered, err := s.ListWords(ctx, owner.ID, uintPtr(animals.ID))
	require.NoError(t, err)
	assert.Empty(t, filtered)

	words, err := s.ListWords(ctx, owner.ID, nil)
	require.NoError(t, err)
	require.Len(t, words, n+2)

	cleared := 0
	for _, w := range words {
		switch w.ID {
		case sushi.ID:
			require.NotNil(t, w.CategoryID)
			assert.Equal(t, food.ID, *w.CategoryID)
		case loose.ID:
			assert.Nil(t, w.CategoryID)
		default:
			assert.Nil(t, w.CategoryID, "word %d still references deleted category", w.ID)
			cleared++
		}
	}
	assert.Equal(t, n, cleared)
}

func testDeleteCategoryOtherOwner(t *testing.T, s storage.Store) {
	ctx := context.Background()
	hanako := mustUser(t, s, "hanako")
	taro := mustUser(t, s, "taro")
	theirs := mustCategory(t, s, taro.ID, "Food")
	theirWord := mustWord(t, s, taro.ID, "寿司", uintPtr(theirs.ID))

	require.NoError(t, s.DeleteCategory(ctx, theirs.ID, hanako.ID))

	still, err := s.GetCategory(ctx, theirs.ID, taro.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)

	word, err := s.GetWord(ctx, theirWord.ID, taro.ID)
	require.NoError(t, err)
	require.NotNil(t, word)
	require.NotNil(t, word.CategoryID)
	assert.Equal(t, theirs.ID, *word.CategoryID)
}

func testDeleteCategoryIdempotent(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "hanako")
	c := mustCategory(t, s, owner.ID, "Animals")

	assert.NoError(t, s.DeleteCategory(ctx, 999, owner.ID))
	assert.NoError(t, s.DeleteCategory(ctx, c.ID, owner.ID))
	assert.NoError(t, s.DeleteCategory(ctx, c.ID, owner.ID))
}

func testWordRoundTrip(t *testing.T, s storage.Store) {
	ctx := context.Background()
	hanako := mustUser(t, s, "hanako")
	taro := mustUser(t, s, "taro")

	created, err := s.CreateWord(ctx, hanako.ID, storage.NewWord{
		Japanese: "犬",
		Romaji:   "inu",
		Spanish:  "perro",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, hanako.ID, created.UserID)

	got, err := s.GetWord(ctx, created.ID, hanako.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "犬", got.Japanese)
	assert.Equal(t, "inu", got.Romaji)
	assert.Equal(t, "perro", got.Spanish)
	assert.Nil(t, got.CategoryID)

	other, err := s.GetWord(ctx, created.ID, taro.ID)
	require.NoError(t, err)
	assert.Nil(t, other)
}

// Text fields carry no length limit on any backend.
func testLongTextRoundTrip(t *testing.T, s storage.Store) {
	ctx := context.Background()
	hanako := mustUser(t, s, "hanako")

	longName := strings.Repeat("語彙", 300)
	category, err := s.CreateCategory(ctx, hanako.ID, storage.NewCategory{Name: longName})
	require.NoError(t, err)

	phrase := strings.Repeat("ことわざ ", 200)
	romaji := strings.Repeat("kotowaza ", 200)
	spanish := strings.Repeat("refrán ", 200)
	word, err := s.CreateWord(ctx, hanako.ID, storage.NewWord{
		Japanese:   phrase,
		Romaji:     romaji,
		Spanish:    spanish,
		CategoryID: &category.ID,
	})
	require.NoError(t, err)

	gotCategory, err := s.GetCategory(ctx, category.ID, hanako.ID)
	require.NoError(t, err)
	require.NotNil(t, gotCategory)
	assert.Equal(t, longName, gotCategory.Name)

	gotWord, err := s.GetWord(ctx, word.ID, hanako.ID)
	require.NoError(t, err)
	require.NotNil(t, gotWord)
	assert.Equal(t, phrase, gotWord.Japanese)
	assert.Equal(t, romaji, gotWord.Romaji)
	assert.Equal(t, spanish, gotWord.Spanish)
}

func testWordIsolation(t *testing.T, s storage.Store) {
	ctx := context.Background()
	hanako := mustUser(t, s, "hanako")
	taro := mustUser(t, s, "taro")

	mustWord(t, s, hanako.ID, "犬", nil)
	mustWord(t, s, hanako.ID, "猫", nil)
	mustWord(t, s, taro.ID, "鳥", nil)

	mine, err := s.ListWords(ctx, hanako.ID, nil)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "犬", mine[0].Japanese)
	assert.Equal(t, "猫", mine[1].Japanese)

	theirs, err := s.ListWords(ctx, taro.ID, nil)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, "鳥", theirs[0].Japanese)
}

func testListWordsFilter(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "hanako")
	animals := mustCategory(t, s, owner.ID, "Animals")
	food := mustCategory(t, s, owner.ID, "Food")

	mustWord(t, s, owner.ID, "犬", uintPtr(animals.ID))
	mustWord(t, s, owner.ID, "寿司", uintPtr(food.ID))
	mustWord(t, s, owner.ID, "猫", uintPtr(animals.ID))
	mustWord(t, s, owner.ID, "水", nil)

	words, err := s.ListWords(ctx, owner.ID, uintPtr(animals.ID))
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "犬", words[0].Japanese)
	assert.Equal(t, "猫", words[1].Japanese)

	none, err := s.ListWords(ctx, owner.ID, uintPtr(999))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testListWordsForeignFilter(t *testing.T, s storage.Store) {
	ctx := context.Background()
	hanako := mustUser(t, s, "hanako")
	taro := mustUser(t, s, "taro")
	theirs := mustCategory(t, s, taro.ID, "Food")
	mustWord(t, s, taro.ID, "寿司", uintPtr(theirs.ID))
	mustWord(t, s, hanako.ID, "犬", nil)

	words, err := s.ListWords(ctx, hanako.ID, uintPtr(theirs.ID))
	require.NoError(t, err)
	assert.NotNil(t, words)
	assert.Empty(t, words)
}

func testCreateWordUnknownCategory(t *testing.T, s storage.Store) {
	ctx := context.Background()
	hanako := mustUser(t, s, "hanako")
	taro := mustUser(t, s, "taro")
	theirs := mustCategory(t, s, taro.ID, "Food")

	_, err := s.CreateWord(ctx, hanako.ID, storage.NewWord{
		Japanese: "寿司", Romaji: "sushi", Spanish: "sushi", CategoryID: uintPtr(theirs.ID),
	})
	assert.ErrorIs(t, err, storage.ErrUnknownCategory)

	_, err = s.CreateWord(ctx, hanako.ID, storage.NewWord{
		Japanese: "寿司", Romaji: "sushi", Spanish: "sushi", CategoryID: uintPtr(999),
	})
	assert.ErrorIs(t, err, storage.ErrUnknownCategory)

	words, err := s.ListWords(ctx, hanako.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, words)
}

func testUpdateWordNotFound(t *testing.T, s storage.Store) {
	ctx := context.Background()
	hanako := mustUser(t, s, "hanako")
	taro := mustUser(t, s, "taro")
	theirs := mustWord(t, s, taro.ID, "鳥", nil)

	beforeCategories, beforeWords := countAll(t, s, hanako.ID, taro.ID)

	_, err := s.UpdateWord(ctx, 999, hanako.ID, storage.WordUpdate{Spanish: strPtr("x")})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.UpdateWord(ctx, theirs.ID, hanako.ID, storage.WordUpdate{Spanish: strPtr("robado")})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	afterCategories, afterWords := countAll(t, s, hanako.ID, taro.ID)
	assert.Equal(t, beforeCategories, afterCategories)
	assert.Equal(t, beforeWords, afterWords)

	unchanged, err := s.GetWord(ctx, theirs.ID, taro.ID)
	require.NoError(t, err)
	require.NotNil(t, unchanged)
	assert.Equal(t, "spanish-鳥", unchanged.Spanish)
}

func testUpdateWordPartial(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "hanako")
	animals := mustCategory(t, s, owner.ID, "Animals")
	pets := mustCategory(t, s, owner.ID, "Pets")

	w, err := s.CreateWord(ctx, owner.ID, storage.NewWord{
		Japanese: "犬", Romaji: "inu", Spanish: "perro", CategoryID: uintPtr(animals.ID),
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		update   storage.WordUpdate
		japanese string
		romaji   string
		spanish  string
		category *uint
	}{
		{"empty update", storage.WordUpdate{}, "犬", "inu", "perro", uintPtr(animals.ID)},
		{"japanese only", storage.WordUpdate{Japanese: strPtr("いぬ")}, "いぬ", "inu", "perro", uintPtr(animals.ID)},
		{"romaji only", storage.WordUpdate{Romaji: strPtr("inu!")}, "いぬ", "inu!", "perro", uintPtr(animals.ID)},
		{"spanish only", storage.WordUpdate{Spanish: strPtr("can")}, "いぬ", "inu!", "can", uintPtr(animals.ID)},
		{"move category", storage.WordUpdate{CategoryID: storage.Value(pets.ID)}, "いぬ", "inu!", "can", uintPtr(pets.ID)},
		{"clear category", storage.WordUpdate{CategoryID: storage.Null[uint]()}, "いぬ", "inu!", "can", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.UpdateWord(ctx, w.ID, owner.ID, tt.update)
			require.NoError(t, err)

			stored, err := s.GetWord(ctx, w.ID, owner.ID)
			require.NoError(t, err)
			require.NotNil(t, stored)

			for _, word := range []*entities.Word{got, stored} {
				assert.Equal(t, tt.japanese, word.Japanese)
				assert.Equal(t, tt.romaji, word.Romaji)
				assert.Equal(t, tt.spanish, word.Spanish)
				assert.Equal(t, tt.category, word.CategoryID)
			}
		})
	}
}

func testUpdateWordUnknownCategory(t *testing.T, s storage.Store) {
	ctx := context.Background()
	hanako := mustUser(t, s, "hanako")
	taro := mustUser(t, s, "taro")
	theirs := mustCategory(t, s, taro.ID, "Food")
	w := mustWord(t, s, hanako.ID, "犬", nil)

	_, err := s.UpdateWord(ctx, w.ID, hanako.ID, storage.WordUpdate{
		Spanish:    strPtr("perro"),
		CategoryID: storage.Value(theirs.ID),
	})
	assert.ErrorIs(t, err, storage.ErrUnknownCategory)

	stored, err := s.GetWord(ctx, w.ID, hanako.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Nil(t, stored.CategoryID)
	assert.Equal(t, "spanish-犬", stored.Spanish)
}

func testDeleteWordIdempotent(t *testing.T, s storage.Store) {
	ctx := context.Background()
	hanako := mustUser(t, s, "hanako")
	taro := mustUser(t, s, "taro")
	mine := mustWord(t, s, hanako.ID, "犬", nil)
	theirs := mustWord(t, s, taro.ID, "鳥", nil)

	assert.NoError(t, s.DeleteWord(ctx, 999, hanako.ID))
	assert.NoError(t, s.DeleteWord(ctx, theirs.ID, hanako.ID))
	assert.NoError(t, s.DeleteWord(ctx, mine.ID, hanako.ID))
	assert.NoError(t, s.DeleteWord(ctx, mine.ID, hanako.ID))

	gone, err := s.GetWord(ctx, mine.ID, hanako.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := s.GetWord(ctx, theirs.ID, taro.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
