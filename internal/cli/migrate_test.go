package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berean-study/berean/internal/database"
	"github.com/berean-study/berean/internal/database/migrations"
)

func TestMigrateCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	cmd := NewMigrateCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-db", dbPath}))
	assert.Equal(t, dbPath, cmd.DatabasePath)
	require.NoError(t, cmd.Run())

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()
	assert.True(t, db.DB.Migrator().HasTable("verse_references"))

	// Second run has nothing to apply.
	require.NoError(t, cmd.Run())
}

func TestRollbackCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	migrate := NewMigrateCommand()
	require.NoError(t, migrate.ParseFlags([]string{"-db", dbPath}))
	require.NoError(t, migrate.Run())

	cmd := NewRollbackCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-db", dbPath, "-steps", "2"}))
	assert.Equal(t, 2, cmd.Steps)
	require.NoError(t, cmd.Run())

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()
	assert.False(t, db.DB.Migrator().HasTable("meta_records"))
	assert.True(t, db.DB.Migrator().HasTable("verse_references"))
}

func TestRollbackCommandRejectsBadSteps(t *testing.T) {
	cmd := NewRollbackCommand()
	err := cmd.ParseFlags([]string{"-steps", "0"})
	assert.Error(t, err)
}

func TestMigrationsAreReversible(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	applied, err := migrations.Migrate(db.DB)
	require.NoError(t, err)
	reverted, err := migrations.Rollback(db.DB, applied)
	require.NoError(t, err)
	assert.Equal(t, applied, reverted)
}
