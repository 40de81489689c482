package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the main study database
	DefaultDatabasePath = "./berean.db"

	// DefaultTranslationsDir is the default directory for translation JSON files
	DefaultTranslationsDir = "./translations"
)
