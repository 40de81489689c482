// Package meta owns the change ledger: a single meta_records row whose
// timestamp is advanced inside the transaction of every mutating
// operation. External readers poll GetLastUpdate to detect that the
// dataset changed.
package meta

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/berean-study/berean/internal/entities"
)

const ledgerID = 1

// Repository handles change ledger operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new change ledger repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// StampIn advances the ledger inside the caller's transaction, creating
// the row on the first mutation. The write is a single upsert so two
// racing first mutations cannot both lose an update-then-insert race and
// fail on the insert. Mutators call this last so a rolled-back
// transaction never stamps the ledger.
func (r *Repository) StampIn(tx *gorm.DB) error {
	rec := entities.MetaRecord{ID: ledgerID, LastModifiedAt: time.Now()}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_modified_at"}),
	}).Create(&rec).Error
}

// Stamp advances the ledger outside any transaction.
func (r *Repository) Stamp() error {
	return r.StampIn(r.db)
}

// GetLastUpdate returns the time of the most recent mutation, or nil if
// nothing has ever been mutated.
func (r *Repository) GetLastUpdate() (*time.Time, error) {
	var rec entities.MetaRecord
	err := r.db.First(&rec, ledgerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec.LastModifiedAt, nil
}
