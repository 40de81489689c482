// Package cli holds the command-line entry points beyond the default
// serve command.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/berean-study/berean/internal/config"
	"github.com/berean-study/berean/internal/database"
	"github.com/berean-study/berean/internal/database/migrations"
)

// MigrateCommand applies all pending schema migrations.
type MigrateCommand struct {
	DatabasePath string
}

// NewMigrateCommand creates a new MigrateCommand.
func NewMigrateCommand() *MigrateCommand {
	return &MigrateCommand{}
}

// ParseFlags parses command line flags.
func (cmd *MigrateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s migrate [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Apply all pending schema migrations to the database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the migrate command.
func (cmd *MigrateCommand) Run() error {
	db, err := database.Open(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	applied, err := migrations.Migrate(db.DB)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if applied == 0 {
		fmt.Println("Schema is up to date, nothing to apply")
	} else {
		fmt.Printf("Applied %d migration(s)\n", applied)
	}
	return nil
}
