// Package taggroups provides database operations for tag groups: purely
// organizational collections of tags with no direct relation to verses.
package taggroups

import (
	"errors"

	"gorm.io/gorm"

	"github.com/berean-study/berean/internal/database/dberr"
	"github.com/berean-study/berean/internal/database/meta"
	"github.com/berean-study/berean/internal/entities"
)

// TagGroupWithCount is the read-only listing projection: the group plus
// how many tags it contains.
type TagGroupWithCount struct {
	ID       uint   `gorm:"column:id" json:"id"`
	Title    string `gorm:"column:title" json:"title"`
	TagCount int    `gorm:"column:tag_count" json:"tag_count"`
}

// Repository handles all tag group database operations.
type Repository struct {
	db     *gorm.DB
	ledger *meta.Repository
	retry  dberr.RetryPolicy
}

// NewRepository creates a new tag groups repository.
func NewRepository(db *gorm.DB, ledger *meta.Repository) *Repository {
	return &Repository{db: db, ledger: ledger, retry: dberr.DefaultRetry}
}

// SetRetryPolicy overrides the busy-retry policy.
func (r *Repository) SetRetryPolicy(p dberr.RetryPolicy) { r.retry = p }

// CreateTagGroup creates a new group. Titles are globally unique
// (case-sensitive exact match).
func (r *Repository) CreateTagGroup(title string) (*entities.TagGroup, error) {
	var group entities.TagGroup
	err := r.retry.WithRetry(func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			var existing entities.TagGroup
			findErr := tx.Where("title = ?", title).First(&existing).Error
			if findErr == nil {
				return &dberr.DuplicateTitleError{Entity: "tag group", Title: title}
			}
			if !errors.Is(findErr, gorm.ErrRecordNotFound) {
				return findErr
			}

			group = entities.TagGroup{Title: title}
			if err := tx.Create(&group).Error; err != nil {
				if dberr.IsConstraint(err) {
					return &dberr.DuplicateTitleError{Entity: "tag group", Title: title}
				}
				return err
			}
			return r.ledger.StampIn(tx)
		})
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// RenameTagGroup updates a group's title; a no-op when unchanged.
func (r *Repository) RenameTagGroup(id uint, newTitle string) (*entities.TagGroup, error) {
	var group entities.TagGroup
	err := r.retry.WithRetry(func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&group, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &dberr.NotFoundError{Entity: "tag group", ID: id}
				}
				return err
			}
			if group.Title == newTitle {
				return nil
			}
			if err := tx.Model(&group).Update("title", newTitle).Error; err != nil {
				if dberr.IsConstraint(err) {
					return &dberr.DuplicateTitleError{Entity: "tag group", Title: newTitle}
				}
				return err
			}
			return r.ledger.StampIn(tx)
		})
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// DeleteTagGroup removes the group and its memberships in one
// transaction. Member tags themselves are untouched.
func (r *Repository) DeleteTagGroup(id uint) error {
	return r.retry.WithRetry(func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			var group entities.TagGroup
			if err := tx.First(&group, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &dberr.NotFoundError{Entity: "tag group", ID: id}
				}
				return err
			}
			if err := tx.Where("tag_group_id = ?", id).Delete(&entities.TagGroupMember{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&entities.TagGroup{}, id).Error; err != nil {
				return err
			}
			return r.ledger.StampIn(tx)
		})
	})
}

// GetTagGroupByID retrieves a group by ID.
func (r *Repository) GetTagGroupByID(id uint) (*entities.TagGroup, error) {
	var group entities.TagGroup
	if err := r.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &dberr.NotFoundError{Entity: "tag group", ID: id}
		}
		return nil, err
	}
	return &group, nil
}

// GetAllTagGroups lists every group with its member count, ordered by
// title.
func (r *Repository) GetAllTagGroups() ([]TagGroupWithCount, error) {
	var rows []TagGroupWithCount
	err := r.db.Raw(`
		SELECT g.id, g.title, COUNT(m.tag_id) AS tag_count
		FROM tag_groups g
		LEFT JOIN tag_group_members m ON m.tag_group_id = g.id
		GROUP BY g.id, g.title
		ORDER BY g.title ASC
	`).Scan(&rows).Error
	return rows, err
}

// GetTagsInGroup lists the member tags of a group, ordered by title.
func (r *Repository) GetTagsInGroup(groupID uint) ([]entities.Tag, error) {
	var tags []entities.Tag
	err := r.db.
		Joins("JOIN tag_group_members m ON m.tag_id = tags.id").
		Where("m.tag_group_id = ?", groupID).
		Order("tags.title ASC").
		Find(&tags).Error
	return tags, err
}
