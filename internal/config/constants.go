package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./wordbook.db"

	// DefaultExportDir is where markdown deck exports are written
	DefaultExportDir = "./exports"
)
