// Package verses resolves translation-specific verse descriptors to the
// single shared VerseReference row per canonical locus, creating rows
// lazily on first use.
package verses

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/berean-study/berean/internal/database/dberr"
	"github.com/berean-study/berean/internal/entities"
	"github.com/berean-study/berean/internal/versification"
)

// Descriptor is a verse position as reported by a translation, expressed
// in that translation's versification scheme.
type Descriptor struct {
	Book    int `json:"book"`
	Chapter int `json:"chapter"`
	Verse   int `json:"verse"`
}

// Repository handles verse reference resolution.
type Repository struct {
	db    *gorm.DB
	retry dberr.RetryPolicy

	mu      sync.Mutex
	bookIDs map[int]uint // book number -> bible_books.id, immutable once seeded
}

// NewRepository creates a new verse reference repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, retry: dberr.DefaultRetry, bookIDs: make(map[int]uint)}
}

// SetRetryPolicy overrides the busy-retry policy (used by config wiring).
func (r *Repository) SetRetryPolicy(p dberr.RetryPolicy) {
	r.retry = p
}

func (r *Repository) bookID(tx *gorm.DB, number int) (uint, error) {
	r.mu.Lock()
	id, ok := r.bookIDs[number]
	r.mu.Unlock()
	if ok {
		return id, nil
	}

	var book entities.BibleBook
	if err := tx.Where("number = ?", number).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, &versification.UnknownBookError{Number: number}
		}
		return 0, fmt.Errorf("failed to look up book %d: %w", number, err)
	}

	r.mu.Lock()
	r.bookIDs[number] = book.ID
	r.mu.Unlock()
	return book.ID, nil
}

// Resolve finds or creates the VerseReference for the given locus. The
// descriptor is normalized to canonical English-scheme labels first, so
// every translation of the same logical verse shares one row. Resolve is
// idempotent: repeated calls return the same row id.
func (r *Repository) Resolve(book, chapter, verse int, scheme versification.Scheme) (*entities.VerseReference, error) {
	return r.ResolveIn(r.db, book, chapter, verse, scheme)
}

// ResolveIn is Resolve running against the caller's transaction.
//
// The find-or-create is a read-then-write sequence with a race window;
// the unique index on (bible_book_id, chapter, verse_nr) closes it. A
// constraint failure on insert means another call won the race, so the
// winner's row is read back. Busy responses are retried per the policy.
func (r *Repository) ResolveIn(tx *gorm.DB, book, chapter, verse int, scheme versification.Scheme) (*entities.VerseReference, error) {
	locus, err := versification.Canonical(book, chapter, verse, scheme)
	if err != nil {
		return nil, err
	}
	bookID, err := r.bookID(tx, book)
	if err != nil {
		return nil, err
	}

	var ref entities.VerseReference
	err = r.retry.WithRetry(func() error {
		findErr := tx.Where("bible_book_id = ? AND chapter = ? AND verse_nr = ?",
			bookID, locus.Chapter, locus.Verse).First(&ref).Error
		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		ref = entities.VerseReference{
			BibleBookID:        bookID,
			Chapter:            locus.Chapter,
			VerseNr:            locus.Verse,
			AbsoluteVerseNrEng: locus.AbsoluteEng,
			AbsoluteVerseNrHeb: locus.AbsoluteHeb,
		}
		createErr := tx.Create(&ref).Error
		if createErr == nil {
			return nil
		}
		if dberr.IsConstraint(createErr) {
			// Lost the race to a concurrent resolve; read the winner.
			return tx.Where("bible_book_id = ? AND chapter = ? AND verse_nr = ?",
				bookID, locus.Chapter, locus.Verse).First(&ref).Error
		}
		return createErr
	})
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// ResolveBatch resolves a list of descriptors under one scheme with the
// same per-element guarantee; used when bulk-tagging a verse range.
func (r *Repository) ResolveBatch(descriptors []Descriptor, scheme versification.Scheme) ([]*entities.VerseReference, error) {
	refs := make([]*entities.VerseReference, 0, len(descriptors))
	for _, d := range descriptors {
		ref, err := r.Resolve(d.Book, d.Chapter, d.Verse, scheme)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// GetByID retrieves a verse reference by row id.
func (r *Repository) GetByID(id uint) (*entities.VerseReference, error) {
	var ref entities.VerseReference
	if err := r.db.First(&ref, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &dberr.NotFoundError{Entity: "verse reference", ID: id}
		}
		return nil, err
	}
	return &ref, nil
}

// GetBooks returns the seeded book registry in canonical order.
func (r *Repository) GetBooks() ([]entities.BibleBook, error) {
	var books []entities.BibleBook
	err := r.db.Order("number ASC").Find(&books).Error
	return books, err
}
