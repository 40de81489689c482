// Package notes provides database operations for verse notes and note
// files (named note layers).
package notes

import (
	"errors"

	"gorm.io/gorm"

	"github.com/berean-study/berean/internal/database/dberr"
	"github.com/berean-study/berean/internal/database/meta"
	"github.com/berean-study/berean/internal/database/verses"
	"github.com/berean-study/berean/internal/entities"
	"github.com/berean-study/berean/internal/versification"
)

// NoteFileWithCount is the listing projection: the file plus how many
// notes it holds.
type NoteFileWithCount struct {
	ID        uint   `gorm:"column:id" json:"id"`
	Title     string `gorm:"column:title" json:"title"`
	NoteCount int    `gorm:"column:note_count" json:"note_count"`
}

// NoteRow is one row of the per-book note read model.
type NoteRow struct {
	NoteID           uint   `gorm:"column:note_id" json:"note_id"`
	VerseReferenceID uint   `gorm:"column:verse_reference_id" json:"verse_reference_id"`
	Chapter          int    `gorm:"column:chapter" json:"chapter"`
	VerseNr          int    `gorm:"column:verse_nr" json:"verse_nr"`
	NoteFileID       *uint  `gorm:"column:note_file_id" json:"note_file_id,omitempty"`
	Text             string `gorm:"column:text" json:"text"`
}

// Repository handles all note and note file database operations.
type Repository struct {
	db     *gorm.DB
	verses *verses.Repository
	ledger *meta.Repository
	retry  dberr.RetryPolicy
}

// NewRepository creates a new notes repository.
func NewRepository(db *gorm.DB, versesRepo *verses.Repository, ledger *meta.Repository) *Repository {
	return &Repository{db: db, verses: versesRepo, ledger: ledger, retry: dberr.DefaultRetry}
}

// SetRetryPolicy overrides the busy-retry policy.
func (r *Repository) SetRetryPolicy(p dberr.RetryPolicy) { r.retry = p }

// CreateNoteFile creates a named note layer.
func (r *Repository) CreateNoteFile(title string) (*entities.NoteFile, error) {
	var file entities.NoteFile
	err := r.retry.WithRetry(func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			file = entities.NoteFile{Title: title}
			if err := tx.Create(&file).Error; err != nil {
				return err
			}
			return r.ledger.StampIn(tx)
		})
	})
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// DeleteNoteFile removes the file and every note in it, and detaches any
// tag still pointing at it, in one transaction.
func (r *Repository) DeleteNoteFile(id uint) error {
	return r.retry.WithRetry(func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			var file entities.NoteFile
			if err := tx.First(&file, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &dberr.NotFoundError{Entity: "note file", ID: id}
				}
				return err
			}
			if err := tx.Where("note_file_id = ?", id).Delete(&entities.Note{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&entities.Tag{}).Where("note_file_id = ?", id).
				Update("note_file_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Delete(&entities.NoteFile{}, id).Error; err != nil {
				return err
			}
			return r.ledger.StampIn(tx)
		})
	})
}

// GetNoteFiles lists every note file with its note count, ordered by
// title.
func (r *Repository) GetNoteFiles() ([]NoteFileWithCount, error) {
	var rows []NoteFileWithCount
	err := r.db.Raw(`
		SELECT f.id, f.title, COUNT(n.id) AS note_count
		FROM note_files f
		LEFT JOIN notes n ON n.note_file_id = f.id
		GROUP BY f.id, f.title
		ORDER BY f.title ASC
	`).Scan(&rows).Error
	return rows, err
}

// PersistNote upserts the note for (verse, note file). Empty text means
// absent: an existing note is deleted instead and its last state is
// returned; persisting empty text where no note exists is a no-op. At
// most one note exists per (verseReferenceId, noteFileId) pair.
func (r *Repository) PersistNote(d verses.Descriptor, scheme versification.Scheme, text string, noteFileID *uint) (*entities.Note, error) {
	var result *entities.Note
	err := r.retry.WithRetry(func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			if noteFileID != nil {
				var file entities.NoteFile
				if err := tx.First(&file, *noteFileID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return &dberr.NotFoundError{Entity: "note file", ID: *noteFileID}
					}
					return err
				}
			}

			ref, err := r.verses.ResolveIn(tx, d.Book, d.Chapter, d.Verse, scheme)
			if err != nil {
				return err
			}

			note, err := findNote(tx, ref.ID, noteFileID)
			if err != nil {
				return err
			}

			if text == "" {
				if note == nil {
					result = nil
					return nil
				}
				last := *note
				if err := tx.Delete(&entities.Note{}, note.ID).Error; err != nil {
					return err
				}
				result = &last
				return r.ledger.StampIn(tx)
			}

			if note == nil {
				note = &entities.Note{VerseReferenceID: ref.ID, NoteFileID: noteFileID, Text: text}
				if err := tx.Create(note).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Model(note).Update("text", text).Error; err != nil {
					return err
				}
			}
			result = note
			return r.ledger.StampIn(tx)
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindNoteByVerseReferenceID returns the note for (verse reference, note
// file), or nil when none exists.
func (r *Repository) FindNoteByVerseReferenceID(verseReferenceID uint, noteFileID *uint) (*entities.Note, error) {
	return findNote(r.db, verseReferenceID, noteFileID)
}

func findNote(tx *gorm.DB, verseReferenceID uint, noteFileID *uint) (*entities.Note, error) {
	query := tx.Where("verse_reference_id = ?", verseReferenceID)
	if noteFileID == nil {
		query = query.Where("note_file_id IS NULL")
	} else {
		query = query.Where("note_file_id = ?", *noteFileID)
	}
	var note entities.Note
	err := query.First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// GetNotesForBook returns every note within a book, ordered by locus, for
// the chapter decoration read model.
func (r *Repository) GetNotesForBook(bookNumber int) ([]NoteRow, error) {
	var book entities.BibleBook
	if err := r.db.Where("number = ?", bookNumber).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &versification.UnknownBookError{Number: bookNumber}
		}
		return nil, err
	}
	var rows []NoteRow
	err := r.db.Raw(`
		SELECT n.id AS note_id, vr.id AS verse_reference_id, vr.chapter, vr.verse_nr, n.note_file_id, n.text
		FROM notes n
		JOIN verse_references vr ON vr.id = n.verse_reference_id
		WHERE vr.bible_book_id = ?
		ORDER BY vr.chapter ASC, vr.verse_nr ASC
	`, book.ID).Scan(&rows).Error
	return rows, err
}
