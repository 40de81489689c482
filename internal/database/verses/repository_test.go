package verses

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berean-study/berean/internal/database"
	"github.com/berean-study/berean/internal/database/dberr"
	"github.com/berean-study/berean/internal/entities"
	"github.com/berean-study/berean/internal/versification"
)

func setupTestDB(t *testing.T) (*database.Database, *Repository, func()) {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "verses_test")
	require.NoError(t, err)

	db, err := database.NewDatabase(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}
	return db, NewRepository(db.DB), cleanup
}

func TestResolveCreatesAndReuses(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := repo.Resolve(43, 3, 16, versification.English)
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, 3, first.Chapter)
	assert.Equal(t, 16, first.VerseNr)

	second, err := repo.Resolve(43, 3, 16, versification.English)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.DB.Model(&entities.VerseReference{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestResolveNormalizesSchemes(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	// Hebrew Psalm 3:2 is English Psalm 3:1; both descriptors must land on
	// one row carrying the English labels.
	fromEnglish, err := repo.Resolve(19, 3, 1, versification.English)
	require.NoError(t, err)
	fromHebrew, err := repo.Resolve(19, 3, 2, versification.Hebrew)
	require.NoError(t, err)

	assert.Equal(t, fromEnglish.ID, fromHebrew.ID)
	assert.Equal(t, 3, fromHebrew.Chapter)
	assert.Equal(t, 1, fromHebrew.VerseNr)
	assert.Equal(t, fromEnglish.AbsoluteVerseNrEng, fromHebrew.AbsoluteVerseNrEng)
	assert.Equal(t, fromEnglish.AbsoluteVerseNrHeb, fromHebrew.AbsoluteVerseNrHeb)

	// The superscription clamps onto the same row as well.
	fromTitle, err := repo.Resolve(19, 3, 1, versification.Hebrew)
	require.NoError(t, err)
	assert.Equal(t, fromEnglish.ID, fromTitle.ID)

	var count int64
	require.NoError(t, db.DB.Model(&entities.VerseReference{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestResolveConcurrent(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	const workers = 8
	ids := make([]uint, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ref, err := repo.Resolve(45, 8, 28, versification.English)
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = ref.ID
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	var count int64
	require.NoError(t, db.DB.Model(&entities.VerseReference{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestResolveRejectsInvalidLoci(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Resolve(99, 1, 1, versification.English)
	var unknown *versification.UnknownBookError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, 99, unknown.Number)

	_, err = repo.Resolve(1, 51, 1, versification.English)
	var rangeErr *versification.RangeError
	require.True(t, errors.As(err, &rangeErr))

	_, err = repo.Resolve(29, 4, 1, versification.English) // Joel 4 exists only in Hebrew
	require.True(t, errors.As(err, &rangeErr))
	_, err = repo.Resolve(29, 4, 1, versification.Hebrew)
	require.NoError(t, err)
}

func TestResolveBatch(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	refs, err := repo.ResolveBatch([]Descriptor{
		{Book: 49, Chapter: 2, Verse: 8},
		{Book: 49, Chapter: 2, Verse: 9},
		{Book: 49, Chapter: 2, Verse: 8}, // duplicate resolves to the same row
	}, versification.English)
	require.NoError(t, err)
	require.Len(t, refs, 3)
	assert.Equal(t, refs[0].ID, refs[2].ID)

	var count int64
	require.NoError(t, db.DB.Model(&entities.VerseReference{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestGetByID(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	ref, err := repo.Resolve(58, 11, 1, versification.English)
	require.NoError(t, err)

	got, err := repo.GetByID(ref.ID)
	require.NoError(t, err)
	assert.Equal(t, ref.ID, got.ID)

	_, err = repo.GetByID(9999)
	assert.True(t, dberr.IsNotFound(err))
}

func TestGetBooks(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	books, err := repo.GetBooks()
	require.NoError(t, err)
	require.Len(t, books, 82)
	assert.Equal(t, 1, books[0].Number)
	assert.Equal(t, "Gen", books[0].ShortTitle)
	assert.Equal(t, 82, books[len(books)-1].Number)
}
