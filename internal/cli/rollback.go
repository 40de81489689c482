package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/berean-study/berean/internal/config"
	"github.com/berean-study/berean/internal/database"
	"github.com/berean-study/berean/internal/database/migrations"
)

// RollbackCommand reverts the most recently applied schema migrations.
type RollbackCommand struct {
	DatabasePath string
	Steps        int
}

// NewRollbackCommand creates a new RollbackCommand.
func NewRollbackCommand() *RollbackCommand {
	return &RollbackCommand{}
}

// ParseFlags parses command line flags.
func (cmd *RollbackCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("rollback", flag.ExitOnError)
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.IntVar(&cmd.Steps, "steps", 1, "Number of migrations to revert")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s rollback [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Revert the most recently applied schema migrations.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s rollback\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s rollback -steps 2\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Steps < 1 {
		return fmt.Errorf("steps must be at least 1")
	}
	return nil
}

// Run executes the rollback command.
func (cmd *RollbackCommand) Run() error {
	db, err := database.Open(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	reverted, err := migrations.Rollback(db.DB, cmd.Steps)
	if err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}

	if reverted == 0 {
		fmt.Println("No applied migrations to revert")
	} else {
		fmt.Printf("Reverted %d migration(s)\n", reverted)
	}
	return nil
}
