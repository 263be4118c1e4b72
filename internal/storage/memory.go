package storage

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/mrlokans/wordbook/internal/entities"
)

// MemoryStore is a non-persistent Store. Ids are assigned from per-entity
// counters, so ordering by id is insertion order. It is safe for concurrent
// use; all records are copied in and out.
type MemoryStore struct {
	mu sync.RWMutex

	users      map[uint]entities.User
	categories map[uint]entities.Category
	words      map[uint]entities.Word

	nextUserID     uint
	nextCategoryID uint
	nextWordID     uint

	now func() time.Time
}

var (
	_ Store       = (*MemoryStore)(nil)
	_ Maintenance = (*MemoryStore)(nil)
	_ Pinger      = (*MemoryStore)(nil)
)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:          make(map[uint]entities.User),
		categories:     make(map[uint]entities.Category),
		words:          make(map[uint]entities.Word),
		nextUserID:     1,
		nextCategoryID: 1,
		nextWordID:     1,
		now:            time.Now,
	}
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// --- Users ---

func (s *MemoryStore) CreateUser(ctx context.Context, username, passwordHash string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return nil, ErrConflict
		}
	}

	user := entities.User{
		ID:           s.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	}
	s.nextUserID++
	s.users[user.ID] = user

	return &user, nil
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

// ListUserIDs returns every user id in registration order.
func (s *MemoryStore) ListUserIDs(ctx context.Context) ([]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedKeys(s.users), nil
}

// --- Categories ---

func (s *MemoryStore) ListCategories(ctx context.Context, ownerID uint) ([]entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entities.Category, 0)
	for _, id := range sortedKeys(s.categories) {
		c := s.categories[id]
		if c.UserID == ownerID {
			result = append(result, copyCategory(c))
		}
	}
	return result, nil
}

func (s *MemoryStore) GetCategory(ctx context.Context, id, ownerID uint) (*entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.ownedCategory(id, ownerID)
	if !ok {
		return nil, nil
	}
	c = copyCategory(c)
	return &c, nil
}

func (s *MemoryStore) CreateCategory(ctx context.Context, ownerID uint, in NewCategory) (*entities.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := entities.Category{
		ID:          s.nextCategoryID,
		UserID:      ownerID,
		Name:        in.Name,
		Description: cloneString(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextCategoryID++
	s.categories[c.ID] = c

	c = copyCategory(c)
	return &c, nil
}

func (s *MemoryStore) UpdateCategory(ctx context.Context, id, ownerID uint, upd CategoryUpdate) (*entities.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.ownedCategory(id, ownerID)
	if !ok {
		return nil, ErrNotFound
	}

	c = copyCategory(c)
	upd.Apply(&c)
	if !upd.IsEmpty() {
		c.UpdatedAt = s.now()
	}
	s.categories[id] = c

	c = copyCategory(c)
	return &c, nil
}

// DeleteCategory clears the owner's word references to the category before
// removing it. Both steps run under the write lock.
func (s *MemoryStore) DeleteCategory(ctx context.Context, id, ownerID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ownedCategory(id, ownerID); !ok {
		return nil
	}

	now := s.now()
	for wid, w := range s.words {
		if w.UserID == ownerID && w.HasCategory(id) {
			w.CategoryID = nil
			w.UpdatedAt = now
			s.words[wid] = w
		}
	}

	delete(s.categories, id)
	return nil
}

func (s *MemoryStore) ownedCategory(id, ownerID uint) (entities.Category, bool) {
	c, ok := s.categories[id]
	if !ok || c.UserID != ownerID {
		return entities.Category{}, false
	}
	return c, true
}

// --- Words ---

func (s *MemoryStore) ListWords(ctx context.Context, ownerID uint, categoryID *uint) ([]entities.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entities.Word, 0)
	for _, id := range sortedKeys(s.words) {
		w := s.words[id]
		if w.UserID != ownerID {
			continue
		}
		if categoryID != nil && !w.HasCategory(*categoryID) {
			continue
		}
		result = append(result, copyWord(w))
	}
	return result, nil
}

func (s *MemoryStore) GetWord(ctx context.Context, id, ownerID uint) (*entities.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.words[id]
	if !ok || w.UserID != ownerID {
		return nil, nil
	}
	w = copyWord(w)
	return &w, nil
}

func (s *MemoryStore) CreateWord(ctx context.Context, ownerID uint, in NewWord) (*entities.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.CategoryID != nil {
		if _, ok := s.ownedCategory(*in.CategoryID, ownerID); !ok {
			return nil, ErrUnknownCategory
		}
	}

	now := s.now()
	w := entities.Word{
		ID:         s.nextWordID,
		UserID:     ownerID,
		Japanese:   in.Japanese,
		Romaji:     in.Romaji,
		Spanish:    in.Spanish,
		CategoryID: cloneUint(in.CategoryID),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.nextWordID++
	s.words[w.ID] = w

	w = copyWord(w)
	return &w, nil
}

func (s *MemoryStore) UpdateWord(ctx context.Context, id, ownerID uint, upd WordUpdate) (*entities.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.words[id]
	if !ok || w.UserID != ownerID {
		return nil, ErrNotFound
	}

	if upd.CategoryID.Set && upd.CategoryID.Value != nil {
		if _, ok := s.ownedCategory(*upd.CategoryID.Value, ownerID); !ok {
			return nil, ErrUnknownCategory
		}
	}

	w = copyWord(w)
	upd.Apply(&w)
	if !upd.IsEmpty() {
		w.UpdatedAt = s.now()
	}
	s.words[id] = w

	w = copyWord(w)
	return &w, nil
}

func (s *MemoryStore) DeleteWord(ctx context.Context, id, ownerID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w, ok := s.words[id]; ok && w.UserID == ownerID {
		delete(s.words, id)
	}
	return nil
}

// RepairCategoryRefs clears word references to categories that are missing
// or belong to a different user.
func (s *MemoryStore) RepairCategoryRefs(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var repaired int64
	now := s.now()
	for id, w := range s.words {
		if w.CategoryID == nil {
			continue
		}
		if _, ok := s.ownedCategory(*w.CategoryID, w.UserID); ok {
			continue
		}
		w.CategoryID = nil
		w.UpdatedAt = now
		s.words[id] = w
		repaired++
	}
	return repaired, nil
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func copyCategory(c entities.Category) entities.Category {
	c.Description = cloneString(c.Description)
	return c
}

func copyWord(w entities.Word) entities.Word {
	w.CategoryID = cloneUint(w.CategoryID)
	return w
}
