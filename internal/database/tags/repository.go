// Package tags provides database operations for tag management: the tag
// lifecycle, verse assignments, group membership, tag notes and the
// statistics projection used by tag lists.
package tags

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/berean-study/berean/internal/database/dberr"
	"github.com/berean-study/berean/internal/database/meta"
	"github.com/berean-study/berean/internal/database/verses"
	"github.com/berean-study/berean/internal/entities"
	"github.com/berean-study/berean/internal/versification"
)

// Repository handles all tag database operations.
type Repository struct {
	db     *gorm.DB
	verses *verses.Repository
	ledger *meta.Repository
	retry  dberr.RetryPolicy

	recentLimit int
}

// NewRepository creates a new tags repository.
func NewRepository(db *gorm.DB, versesRepo *verses.Repository, ledger *meta.Repository) *Repository {
	return &Repository{
		db:          db,
		verses:      versesRepo,
		ledger:      ledger,
		retry:       dberr.DefaultRetry,
		recentLimit: 5,
	}
}

// SetRetryPolicy overrides the busy-retry policy.
func (r *Repository) SetRetryPolicy(p dberr.RetryPolicy) { r.retry = p }

// SetRecentLimit overrides how many tags the recency ordering returns.
func (r *Repository) SetRecentLimit(n int) {
	if n > 0 {
		r.recentLimit = n
	}
}

// CreateTag creates a new tag. A nil bibleBookID makes the tag global.
// With withNoteFile, a note file of the same title is created first and
// linked; if that step fails the tag is not created. Title collisions
// (case-sensitive exact match) fail with DuplicateTitleError.
func (r *Repository) CreateTag(title string, bibleBookID *uint, withNoteFile bool) (*entities.Tag, error) {
	var tag entities.Tag
	err := r.retry.WithRetry(func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			var existing entities.Tag
			findErr := tx.Where("title = ?", title).First(&existing).Error
			if findErr == nil {
				return &dberr.DuplicateTitleError{Entity: "tag", Title: title}
			}
			if !errors.Is(findErr, gorm.ErrRecordNotFound) {
				return findErr
			}

			tag = entities.Tag{Title: title, BibleBookID: bibleBookID}
			if withNoteFile {
				noteFile := entities.NoteFile{Title: title}
				if err := tx.Create(&noteFile).Error; err != nil {
					return fmt.Errorf("failed to create note file for tag: %w", err)
				}
				tag.NoteFileID = &noteFile.ID
			}
			if err := tx.Create(&tag).Error; err != nil {
				if dberr.IsConstraint(err) {
					return &dberr.DuplicateTitleError{Entity: "tag", Title: title}
				}
				return err
			}
			return r.ledger.StampIn(tx)
		})
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// RenameTag updates a tag's title. A no-op (and no ledger stamp) when the
// title is unchanged. Does not touch assignments.
func (r *Repository) RenameTag(id uint, newTitle string) (*entities.Tag, error) {
	var tag entities.Tag
	err := r.retry.WithRetry(func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&tag, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &dberr.NotFoundError{Entity: "tag", ID: id}
				}
				return err
			}
			if tag.Title == newTitle {
				return nil
			}
			if err := tx.Model(&tag).Update("title", newTitle).Error; err != nil {
				if dberr.IsConstraint(err) {
					return &dberr.DuplicateTitleError{Entity: "tag", Title: newTitle}
				}
				return err
			}
			return r.ledger.StampIn(tx)
		})
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetTagByID retrieves a tag by ID.
func (r *Repository) GetTagByID(id uint) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &dberr.NotFoundError{Entity: "tag", ID: id}
		}
		return nil, err
	}
	return &tag, nil
}

// UpdateTagGroups adjusts a tag's group memberships. Adds are idempotent
// (existing memberships are kept), removes are idempotent (missing
// memberships are ignored). Removes are processed after adds, so a group
// id appearing in both lists ends up removed.
func (r *Repository) UpdateTagGroups(id uint, addGroupIDs, removeGroupIDs []uint) error {
	return r.retry.WithRetry(func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			var tag entities.Tag
			if err := tx.First(&tag, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &dberr.NotFoundError{Entity: "tag", ID: id}
				}
				return err
			}

			for _, groupID := range addGroupIDs {
				var group entities.TagGroup
				if err := tx.First(&group, groupID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return &dberr.NotFoundError{Entity: "tag group", ID: groupID}
					}
					return err
				}
				member := entities.TagGroupMember{TagGroupID: groupID, TagID: id}
				if err := tx.Create(&member).Error; err != nil {
					if dberr.IsConstraint(err) {
						continue // already a member
					}
					return err
				}
			}

			for _, groupID := range removeGroupIDs {
				if err := tx.Delete(&entities.TagGroupMember{TagGroupID: groupID, TagID: id}).Error; err != nil {
					return err
				}
			}

			return r.ledger.StampIn(tx)
		})
	})
}

// DeleteTag removes the tag, all its verse assignments, group memberships
// and tag note, and optionally its note file with that file's notes. The
// whole delete is one transaction: a failure partway leaves nothing
// removed and the ledger unstamped.
func (r *Repository) DeleteTag(id uint, deleteNoteFile bool) error {
	return r.retry.WithRetry(func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			var tag entities.Tag
			if err := tx.First(&tag, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &dberr.NotFoundError{Entity: "tag", ID: id}
				}
				return err
			}

			if err := tx.Where("tag_id = ?", id).Delete(&entities.VerseTag{}).Error; err != nil {
				return err
			}
			if err := tx.Where("tag_id = ?", id).Delete(&entities.TagGroupMember{}).Error; err != nil {
				return err
			}
			if err := tx.Where("tag_id = ?", id).Delete(&entities.TagNote{}).Error; err != nil {
				return err
			}
			if deleteNoteFile && tag.NoteFileID != nil {
				if err := tx.Where("note_file_id = ?", *tag.NoteFileID).Delete(&entities.Note{}).Error; err != nil {
					return err
				}
				if err := tx.Delete(&entities.NoteFile{}, *tag.NoteFileID).Error; err != nil {
					return err
				}
			}
			if err := tx.Delete(&entities.Tag{}, id).Error; err != nil {
				return err
			}
			return r.ledger.StampIn(tx)
		})
	})
}

// AssignTag attaches a tag to every verse in the list, resolving verse
// references as needed. Assigning an already-assigned verse is a no-op,
// not an error. The ledger is stamped once per batch.
func (r *Repository) AssignTag(tagID uint, descriptors []verses.Descriptor, scheme versification.Scheme) error {
	return r.retry.WithRetry(func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			var tag entities.Tag
			if err := tx.First(&tag, tagID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &dberr.NotFoundError{Entity: "tag", ID: tagID}
				}
				return err
			}

			for _, d := range descriptors {
				ref, err := r.verses.ResolveIn(tx, d.Book, d.Chapter, d.Verse, scheme)
				if err != nil {
					return err
				}
				verseTag := entities.VerseTag{VerseReferenceID: ref.ID, TagID: tagID}
				if err := tx.Create(&verseTag).Error; err != nil {
					if dberr.IsConstraint(err) {
						continue // pair already exists
					}
					return err
				}
			}
			return r.ledger.StampIn(tx)
		})
	})
}

// UnassignTag detaches a tag from every verse in the list. Verses that
// were never resolved or never assigned are skipped silently. The ledger
// is stamped once per batch.
func (r *Repository) UnassignTag(tagID uint, descriptors []verses.Descriptor, scheme versification.Scheme) error {
	return r.retry.WithRetry(func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			var tag entities.Tag
			if err := tx.First(&tag, tagID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &dberr.NotFoundError{Entity: "tag", ID: tagID}
				}
				return err
			}

			for _, d := range descriptors {
				locus, err := versification.Canonical(d.Book, d.Chapter, d.Verse, scheme)
				if err != nil {
					return err
				}
				var ref entities.VerseReference
				findErr := tx.
					Joins("JOIN bible_books ON bible_books.id = verse_references.bible_book_id").
					Where("bible_books.number = ? AND verse_references.chapter = ? AND verse_references.verse_nr = ?",
						locus.Book, locus.Chapter, locus.Verse).
					First(&ref).Error
				if errors.Is(findErr, gorm.ErrRecordNotFound) {
					continue
				}
				if findErr != nil {
					return findErr
				}
				if err := tx.Delete(&entities.VerseTag{VerseReferenceID: ref.ID, TagID: tagID}).Error; err != nil {
					return err
				}
			}
			return r.ledger.StampIn(tx)
		})
	})
}
