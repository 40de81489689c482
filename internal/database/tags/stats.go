package tags

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/berean-study/berean/internal/entities"
	"github.com/berean-study/berean/internal/versification"
)

// TagWithStats is the read-only projection returned by GetAllTags: the
// persisted tag columns plus display-time aggregates. It is never written
// back to the store.
type TagWithStats struct {
	ID                    uint   `gorm:"column:id" json:"id"`
	Title                 string `gorm:"column:title" json:"title"`
	BibleBookID           *uint  `gorm:"column:bible_book_id" json:"bible_book_id,omitempty"`
	NoteFileID            *uint  `gorm:"column:note_file_id" json:"note_file_id,omitempty"`
	GlobalAssignmentCount int    `gorm:"column:global_assignment_count" json:"global_assignment_count"`
	BookAssignmentCount   int    `gorm:"column:book_assignment_count" json:"book_assignment_count"`
	LastUsed              *int64 `gorm:"column:last_used" json:"last_used,omitempty"` // unix seconds
	TagGroupIDs           []uint `gorm:"-" json:"tag_group_ids,omitempty"`
}

// VerseTagRow is one row of the per-book verse decoration read model.
type VerseTagRow struct {
	VerseReferenceID uint   `gorm:"column:verse_reference_id" json:"verse_reference_id"`
	Chapter          int    `gorm:"column:chapter" json:"chapter"`
	VerseNr          int    `gorm:"column:verse_nr" json:"verse_nr"`
	TagID            uint   `gorm:"column:tag_id" json:"tag_id"`
	TagTitle         string `gorm:"column:tag_title" json:"tag_title"`
}

func (r *Repository) bookRowID(bookNumber int) (uint, error) {
	var book entities.BibleBook
	if err := r.db.Where("number = ?", bookNumber).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, &versification.UnknownBookError{Number: bookNumber}
		}
		return 0, err
	}
	return book.ID, nil
}

// GetAllTags returns every tag with its assignment statistics, computed in
// one pass over verse_tags/verse_references. bookNumber scopes the
// book-assignment count (0 = no book in view). With sortByRecency the
// result is the most recently used tags, newest first, capped at the
// recent limit; otherwise tags are ordered alphabetically by title.
// Unless statsOnly is set, each tag also carries its group id list.
func (r *Repository) GetAllTags(bookNumber int, sortByRecency, statsOnly bool) ([]TagWithStats, error) {
	var bookID uint
	if bookNumber != 0 {
		id, err := r.bookRowID(bookNumber)
		if err != nil {
			return nil, err
		}
		bookID = id
	}

	query := `
		SELECT t.id, t.title, t.bible_book_id, t.note_file_id,
		       COUNT(vt.tag_id) AS global_assignment_count,
		       COALESCE(SUM(CASE WHEN vr.bible_book_id = ? THEN 1 ELSE 0 END), 0) AS book_assignment_count,
		       CAST(strftime('%s', MAX(vt.updated_at)) AS INTEGER) AS last_used
		FROM tags t
		LEFT JOIN verse_tags vt ON vt.tag_id = t.id
		LEFT JOIN verse_references vr ON vr.id = vt.verse_reference_id
		GROUP BY t.id, t.title, t.bible_book_id, t.note_file_id
	`
	args := []interface{}{bookID}
	if sortByRecency {
		query += " HAVING MAX(vt.updated_at) IS NOT NULL ORDER BY last_used DESC LIMIT ?"
		args = append(args, r.recentLimit)
	} else {
		query += " ORDER BY t.title ASC"
	}

	var rows []TagWithStats
	if err := r.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	if !statsOnly && len(rows) > 0 {
		if err := r.attachGroupIDs(rows); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

func (r *Repository) attachGroupIDs(rows []TagWithStats) error {
	ids := make([]uint, len(rows))
	index := make(map[uint]int, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
		index[row.ID] = i
	}

	var members []entities.TagGroupMember
	if err := r.db.Where("tag_id IN ?", ids).Find(&members).Error; err != nil {
		return err
	}
	for _, m := range members {
		i := index[m.TagID]
		rows[i].TagGroupIDs = append(rows[i].TagGroupIDs, m.TagGroupID)
	}
	return nil
}

// GetTagCount returns, for bookNumber 0, the total number of tags;
// otherwise the number of distinct tags with at least one assignment in
// that book.
func (r *Repository) GetTagCount(bookNumber int) (int64, error) {
	if bookNumber == 0 {
		var count int64
		err := r.db.Model(&entities.Tag{}).Count(&count).Error
		return count, err
	}

	bookID, err := r.bookRowID(bookNumber)
	if err != nil {
		return 0, err
	}
	var count int64
	err = r.db.Raw(`
		SELECT COUNT(DISTINCT vt.tag_id)
		FROM verse_tags vt
		JOIN verse_references vr ON vr.id = vt.verse_reference_id
		WHERE vr.bible_book_id = ?
	`, bookID).Scan(&count).Error
	return count, err
}

// GetVerseTagsForBook returns every tag assignment within a book, ordered
// by locus, so a chapter view can decorate its verses in one query.
func (r *Repository) GetVerseTagsForBook(bookNumber int) ([]VerseTagRow, error) {
	bookID, err := r.bookRowID(bookNumber)
	if err != nil {
		return nil, err
	}
	var rows []VerseTagRow
	err = r.db.Raw(`
		SELECT vr.id AS verse_reference_id, vr.chapter, vr.verse_nr, t.id AS tag_id, t.title AS tag_title
		FROM verse_tags vt
		JOIN verse_references vr ON vr.id = vt.verse_reference_id
		JOIN tags t ON t.id = vt.tag_id
		WHERE vr.bible_book_id = ?
		ORDER BY vr.chapter ASC, vr.verse_nr ASC, t.title ASC
	`, bookID).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load verse tags for book %d: %w", bookNumber, err)
	}
	return rows, nil
}
