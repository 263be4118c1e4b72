// Package storage defines the owner-scoped storage contract for users,
// categories and words, and provides an in-memory implementation of it.
//
// # Contract
//
// Every category and word operation takes the caller's user id and only ever
// sees records owned by that user. A record owned by someone else behaves
// exactly like a record that does not exist:
//
//   - reads (GetCategory, GetWord, GetUserByID, ...) return nil, nil on a miss;
//   - writes (UpdateCategory, UpdateWord) return ErrNotFound;
//   - deletes are idempotent and succeed on a miss.
//
// Deleting a category first clears the category reference of every word of
// the same owner that points at it, then removes the category.
//
// # Implementations
//
//	store := storage.NewMemoryStore()           // tests, ephemeral runs
//	db, err := database.NewDatabase(cfg)         // sqlite or postgres via gorm
//
// Both satisfy Store and are verified by the shared suite in
// internal/storage/storagetest.
package storage
