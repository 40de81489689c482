package notes

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/berean-study/berean/internal/database"
	"github.com/berean-study/berean/internal/database/dberr"
	"github.com/berean-study/berean/internal/database/meta"
	"github.com/berean-study/berean/internal/database/verses"
	"github.com/berean-study/berean/internal/entities"
	"github.com/berean-study/berean/internal/versification"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, *verses.Repository, func()) {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "notes_test")
	require.NoError(t, err)

	db, err := database.NewDatabase(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)

	versesRepo := verses.NewRepository(db.DB)
	repo := NewRepository(db.DB, versesRepo, meta.NewRepository(db.DB))
	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}
	return db.DB, repo, versesRepo, cleanup
}

func TestCreateAndListNoteFiles(t *testing.T) {
	_, repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	journal, err := repo.CreateNoteFile("Journal")
	require.NoError(t, err)
	assert.NotZero(t, journal.ID)
	_, err = repo.CreateNoteFile("Commentary")
	require.NoError(t, err)

	_, err = repo.PersistNote(verses.Descriptor{Book: 43, Chapter: 3, Verse: 16},
		versification.English, "First", &journal.ID)
	require.NoError(t, err)
	_, err = repo.PersistNote(verses.Descriptor{Book: 43, Chapter: 3, Verse: 17},
		versification.English, "Second", &journal.ID)
	require.NoError(t, err)

	files, err := repo.GetNoteFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "Commentary", files[0].Title)
	assert.Zero(t, files[0].NoteCount)
	assert.Equal(t, "Journal", files[1].Title)
	assert.Equal(t, 2, files[1].NoteCount)
}

func TestPersistNoteLifecycle(t *testing.T) {
	db, repo, versesRepo, cleanup := setupTestDB(t)
	defer cleanup()

	locus := verses.Descriptor{Book: 43, Chapter: 3, Verse: 16}

	note, err := repo.PersistNote(locus, versification.English, "Draft", nil)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "Draft", note.Text)
	assert.Nil(t, note.NoteFileID)

	// Upsert, not duplicate.
	updated, err := repo.PersistNote(locus, versification.English, "Revised", nil)
	require.NoError(t, err)
	assert.Equal(t, note.ID, updated.ID)
	assert.Equal(t, "Revised", updated.Text)

	var count int64
	require.NoError(t, db.Model(&entities.Note{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	ref, err := versesRepo.Resolve(locus.Book, locus.Chapter, locus.Verse, versification.English)
	require.NoError(t, err)
	found, err := repo.FindNoteByVerseReferenceID(ref.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Revised", found.Text)

	// Empty text deletes and hands back the last state.
	last, err := repo.PersistNote(locus, versification.English, "", nil)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "Revised", last.Text)

	found, err = repo.FindNoteByVerseReferenceID(ref.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, found)

	// Empty text where nothing exists is a no-op.
	none, err := repo.PersistNote(locus, versification.English, "", nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestPersistNoteFileScoping(t *testing.T) {
	db, repo, versesRepo, cleanup := setupTestDB(t)
	defer cleanup()

	file, err := repo.CreateNoteFile("Journal")
	require.NoError(t, err)

	locus := verses.Descriptor{Book: 19, Chapter: 23, Verse: 1}

	unfiled, err := repo.PersistNote(locus, versification.English, "Unfiled", nil)
	require.NoError(t, err)
	filed, err := repo.PersistNote(locus, versification.English, "Filed", &file.ID)
	require.NoError(t, err)
	assert.NotEqual(t, unfiled.ID, filed.ID)

	var count int64
	require.NoError(t, db.Model(&entities.Note{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	ref, err := versesRepo.Resolve(locus.Book, locus.Chapter, locus.Verse, versification.English)
	require.NoError(t, err)

	got, err := repo.FindNoteByVerseReferenceID(ref.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Unfiled", got.Text)
	got, err = repo.FindNoteByVerseReferenceID(ref.ID, &file.ID)
	require.NoError(t, err)
	assert.Equal(t, "Filed", got.Text)
}

func TestPersistNoteErrors(t *testing.T) {
	_, repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	missing := uint(9999)
	_, err := repo.PersistNote(verses.Descriptor{Book: 43, Chapter: 3, Verse: 16},
		versification.English, "Text", &missing)
	assert.True(t, dberr.IsNotFound(err))

	_, err = repo.PersistNote(verses.Descriptor{Book: 99, Chapter: 1, Verse: 1},
		versification.English, "Text", nil)
	var unknown *versification.UnknownBookError
	assert.True(t, errors.As(err, &unknown))
}

func TestDeleteNoteFile(t *testing.T) {
	db, repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	file, err := repo.CreateNoteFile("Journal")
	require.NoError(t, err)

	_, err = repo.PersistNote(verses.Descriptor{Book: 43, Chapter: 3, Verse: 16},
		versification.English, "Filed", &file.ID)
	require.NoError(t, err)
	unfiled, err := repo.PersistNote(verses.Descriptor{Book: 43, Chapter: 3, Verse: 16},
		versification.English, "Unfiled", nil)
	require.NoError(t, err)

	tag := entities.Tag{Title: "Faith", NoteFileID: &file.ID}
	require.NoError(t, db.Create(&tag).Error)

	require.NoError(t, repo.DeleteNoteFile(file.ID))

	var files int64
	require.NoError(t, db.Model(&entities.NoteFile{}).Count(&files).Error)
	assert.Zero(t, files)

	// Only the filed note goes; the unfiled layer survives.
	var remaining []entities.Note
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, unfiled.ID, remaining[0].ID)

	// The tag is detached, not deleted.
	var got entities.Tag
	require.NoError(t, db.First(&got, tag.ID).Error)
	assert.Nil(t, got.NoteFileID)

	assert.True(t, dberr.IsNotFound(repo.DeleteNoteFile(file.ID)))
}

func TestGetNotesForBook(t *testing.T) {
	_, repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.PersistNote(verses.Descriptor{Book: 43, Chapter: 3, Verse: 16},
		versification.English, "Later", nil)
	require.NoError(t, err)
	_, err = repo.PersistNote(verses.Descriptor{Book: 43, Chapter: 1, Verse: 1},
		versification.English, "Earlier", nil)
	require.NoError(t, err)
	_, err = repo.PersistNote(verses.Descriptor{Book: 19, Chapter: 23, Verse: 1},
		versification.English, "Elsewhere", nil)
	require.NoError(t, err)

	rows, err := repo.GetNotesForBook(43)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Earlier", rows[0].Text)
	assert.Equal(t, 1, rows[0].Chapter)
	assert.Equal(t, "Later", rows[1].Text)
	assert.Equal(t, 3, rows[1].Chapter)

	_, err = repo.GetNotesForBook(99)
	var unknown *versification.UnknownBookError
	assert.True(t, errors.As(err, &unknown))
}
