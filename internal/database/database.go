// Package database owns the SQLite connection and the repositories built
// on top of it. Opening a database always brings the schema up to date via
// the ordered migrations in the migrations subpackage.
package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/berean-study/berean/internal/database/migrations"
)

// Database wraps the shared gorm handle. All repositories are constructed
// from it.
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (creating if needed) the SQLite database at dbPath and
// runs all pending migrations.
//
// WAL mode plus a busy timeout keeps overlapping async calls from failing
// immediately; the repositories additionally apply bounded retry on
// SQLITE_BUSY (see dberr).
func NewDatabase(dbPath string) (*Database, error) {
	d, err := Open(dbPath)
	if err != nil {
		return nil, err
	}

	applied, err := migrations.Migrate(d.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if applied > 0 {
		log.Printf("Database schema updated: %d migration(s) applied", applied)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return d, nil
}

// Open connects without touching the schema; the migration CLI commands
// use it to run migrations explicitly.
func Open(dbPath string) (*Database, error) {
	dsn := fmt.Sprintf("%s?_journal=WAL&_busy_timeout=5000&_foreign_keys=on", dbPath)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
