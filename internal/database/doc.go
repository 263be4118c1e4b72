// Package database provides the SQL data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, dialect selection, migrations
//	├── users/           # User registration and lookup
//	├── categories/      # Owner-scoped categories
//	└── words/           # Owner-scoped words and reference repair
//
// SQLite and PostgreSQL are supported through the matching gorm dialects.
// Every category and word query is scoped by user_id, so a record owned by
// another user behaves exactly like a missing one.
//
// # Using Sub-packages
//
//	// Initialize database connection
//	db, err := database.Open(config.StorageBackendSQLite, cfg.Database)
//
//	// Use the combined store
//	words, err := db.ListWords(ctx, userID, nil)
//
//	// Or a single repository
//	cat, err := db.Categories.GetCategory(ctx, categoryID, userID)
//
// # Interface Implementations
//
//   - Database: implements storage.Store, storage.Maintenance and storage.Pinger
//   - users.Repository: implements storage.UserStore
//   - categories.Repository: implements storage.CategoryStore
//   - words.Repository: implements storage.WordStore
//
// Deleting a category detaches the owner's words from it inside the same
// transaction as the delete.
package database
