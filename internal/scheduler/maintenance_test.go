package scheduler

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berean-study/berean/internal/database"
)

func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStartStop(t *testing.T) {
	db := setupTestDB(t)
	s := NewMaintenanceScheduler(db, "0 4 * * *")

	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.Equal(t, 4, next.Hour())

	// Starting twice is a no-op.
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())

	// Stopping twice is also a no-op.
	s.Stop()
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	db := setupTestDB(t)
	s := NewMaintenanceScheduler(db, "not a schedule")

	err := s.Start(context.Background())
	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestContextCancelStops(t *testing.T) {
	db := setupTestDB(t)
	s := NewMaintenanceScheduler(db, "0 4 * * *")

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() },
		time.Second, 10*time.Millisecond)
}

func TestMaintenancePassKeepsDataIntact(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.DB.Exec(
		`INSERT INTO tags (title, created_at, updated_at) VALUES ('Faith', datetime('now'), datetime('now'))`).Error)

	s := NewMaintenanceScheduler(db, "0 4 * * *")
	s.runMaintenance()

	var count int64
	require.NoError(t, db.DB.Raw("SELECT COUNT(*) FROM tags").Scan(&count).Error)
	assert.EqualValues(t, 1, count)
}
