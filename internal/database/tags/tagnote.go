package tags

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/berean-study/berean/internal/database/dberr"
	"github.com/berean-study/berean/internal/entities"
)

type tagNoteField int

const (
	fieldIntroduction tagNoteField = iota
	fieldConclusion
)

// PersistIntroduction writes the tag note introduction. An empty string
// clears the field; once both fields are empty the row is deleted. Returns
// the surviving record, or nil when the row was pruned or never existed.
func (r *Repository) PersistIntroduction(tagID uint, text string) (*entities.TagNote, error) {
	return r.persistTagNoteField(tagID, fieldIntroduction, text)
}

// PersistConclusion writes the tag note conclusion with the same
// empty-means-absent semantics as PersistIntroduction.
func (r *Repository) PersistConclusion(tagID uint, text string) (*entities.TagNote, error) {
	return r.persistTagNoteField(tagID, fieldConclusion, text)
}

// GetTagNote returns the tag's note, or nil if it carries no content.
func (r *Repository) GetTagNote(tagID uint) (*entities.TagNote, error) {
	var note entities.TagNote
	err := r.db.Where("tag_id = ?", tagID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// A TagNote row exists only while at least one field is non-empty, so the
// write path always ends with either an upsert or a prune.
func (r *Repository) persistTagNoteField(tagID uint, field tagNoteField, text string) (*entities.TagNote, error) {
	var result *entities.TagNote
	err := r.retry.WithRetry(func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			var tag entities.Tag
			if err := tx.First(&tag, tagID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &dberr.NotFoundError{Entity: "tag", ID: tagID}
				}
				return err
			}

			var note entities.TagNote
			findErr := tx.Where("tag_id = ?", tagID).First(&note).Error
			missing := errors.Is(findErr, gorm.ErrRecordNotFound)
			if findErr != nil && !missing {
				return findErr
			}

			var value *string
			var stamp *time.Time
			if text != "" {
				now := time.Now()
				value = &text
				stamp = &now
			}

			if missing {
				if value == nil {
					result = nil // nothing stored, nothing to clear
					return nil
				}
				note = entities.TagNote{TagID: tagID}
				setTagNoteField(&note, field, value, stamp)
				if err := tx.Create(&note).Error; err != nil {
					return err
				}
				result = &note
				return r.ledger.StampIn(tx)
			}

			setTagNoteField(&note, field, value, stamp)
			if note.Introduction == nil && note.Conclusion == nil {
				if err := tx.Delete(&entities.TagNote{}, note.ID).Error; err != nil {
					return err
				}
				result = nil
				return r.ledger.StampIn(tx)
			}
			if err := tx.Save(&note).Error; err != nil {
				return err
			}
			result = &note
			return r.ledger.StampIn(tx)
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func setTagNoteField(note *entities.TagNote, field tagNoteField, value *string, stamp *time.Time) {
	switch field {
	case fieldIntroduction:
		note.Introduction = value
		note.IntroductionUpdatedAt = stamp
	case fieldConclusion:
		note.Conclusion = value
		note.ConclusionUpdatedAt = stamp
	}
}
