package meta

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/berean-study/berean/internal/database"
	"github.com/berean-study/berean/internal/entities"
)

func setupTestDB(t *testing.T) (*database.Database, *Repository, func()) {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "meta_test")
	require.NoError(t, err)

	db, err := database.NewDatabase(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}
	return db, NewRepository(db.DB), cleanup
}

func TestLedgerStartsEmpty(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	last, err := repo.GetLastUpdate()
	require.NoError(t, err)
	assert.Nil(t, last, "nothing mutated yet")
}

func TestStampAdvances(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Stamp())
	first, err := repo.GetLastUpdate()
	require.NoError(t, err)
	require.NotNil(t, first)

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, repo.Stamp())
	second, err := repo.GetLastUpdate()
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.True(t, second.After(*first))
}

func TestStampConcurrentFirstMutation(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	// Racing first-ever stamps must all land on the same upserted row.
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Stamp()
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	last, err := repo.GetLastUpdate()
	require.NoError(t, err)
	require.NotNil(t, last)

	var count int64
	require.NoError(t, db.DB.Model(&entities.MetaRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestStampInRollsBackWithTransaction(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Stamp())
	before, err := repo.GetLastUpdate()
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := repo.StampIn(tx); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	after, err := repo.GetLastUpdate()
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.True(t, after.Equal(*before), "rolled-back transactions must not stamp")
}
