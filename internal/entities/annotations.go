package entities

import (
	"time"
)

// BibleBook is immutable reference data, seeded once by the book-seed
// migration. Number determines canonical ordering for all sorting.
type BibleBook struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Number     int    `gorm:"uniqueIndex" json:"number"` // 1..82
	ShortTitle string `gorm:"uniqueIndex;size:10" json:"short_title"`
	LongTitle  string `gorm:"size:100" json:"long_title"`
}

// VerseReference is the canonical, scheme-independent identity of a verse.
// Chapter and VerseNr are English-scheme labels; the two absolute verse
// numbers address the verse in each versification tradition. Rows are
// created lazily by the resolver and shared across every translation.
type VerseReference struct {
	ID                 uint `gorm:"primaryKey" json:"id"`
	BibleBookID        uint `gorm:"index;uniqueIndex:idx_verse_references_locus" json:"bible_book_id"`
	Chapter            int  `gorm:"uniqueIndex:idx_verse_references_locus" json:"chapter"`
	VerseNr            int  `gorm:"uniqueIndex:idx_verse_references_locus" json:"verse_nr"`
	AbsoluteVerseNrEng int  `gorm:"index" json:"absolute_verse_nr_eng"`
	AbsoluteVerseNrHeb int  `gorm:"index" json:"absolute_verse_nr_heb"`

	BibleBook BibleBook `gorm:"foreignKey:BibleBookID" json:"-"`
}

// Tag is a user-defined label attachable to verses. A nil BibleBookID means
// the tag is global; a set one scopes it to a single book. Introduction and
// Conclusion are legacy columns kept for older databases; live content is
// carried by TagNote since the tag-notes migration.
type Tag struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"uniqueIndex;size:255" json:"title"`
	BibleBookID  *uint     `gorm:"index" json:"bible_book_id,omitempty"`
	NoteFileID   *uint     `gorm:"index" json:"note_file_id,omitempty"`
	Introduction *string   `gorm:"type:text" json:"-"`
	Conclusion   *string   `gorm:"type:text" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VerseTag associates a tag with a verse. Unique on the pair; UpdatedAt
// feeds the last-used statistic.
type VerseTag struct {
	VerseReferenceID uint      `gorm:"primaryKey;autoIncrement:false" json:"verse_reference_id"`
	TagID            uint      `gorm:"primaryKey;autoIncrement:false" json:"tag_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TagGroup is a pure organizational grouping of tags; it has no direct
// relation to verses.
type TagGroup struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"uniqueIndex;size:255" json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// TagGroupMember links a tag into a group. Unique on the pair.
type TagGroupMember struct {
	TagGroupID uint `gorm:"primaryKey;autoIncrement:false" json:"tag_group_id"`
	TagID      uint `gorm:"primaryKey;autoIncrement:false" json:"tag_id"`
}

// TagNote carries the free-text introduction/conclusion of a tag. The row
// exists only while at least one field is non-null; writing both empty
// deletes it.
type TagNote struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	TagID                 uint       `gorm:"uniqueIndex" json:"tag_id"`
	Introduction          *string    `gorm:"type:text" json:"introduction,omitempty"`
	Conclusion            *string    `gorm:"type:text" json:"conclusion,omitempty"`
	IntroductionUpdatedAt *time.Time `json:"introduction_updated_at,omitempty"`
	ConclusionUpdatedAt   *time.Time `json:"conclusion_updated_at,omitempty"`
}

// NoteFile is a named collection of notes; nil NoteFileID on a Note means
// the default, unfiled layer.
type NoteFile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Note is a free-text annotation on a verse. At most one note exists per
// (verse reference, note file) pair; a note never persists with empty text.
type Note struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	NoteFileID       *uint     `gorm:"index" json:"note_file_id,omitempty"`
	VerseReferenceID uint      `gorm:"index" json:"verse_reference_id"`
	Text             string    `gorm:"type:text" json:"text"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MetaRecord is the change ledger: a single row (id 1) whose
// LastModifiedAt is stamped inside the transaction of every mutation.
type MetaRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	LastModifiedAt time.Time `json:"last_modified_at"`
}

func (BibleBook) TableName() string      { return "bible_books" }
func (VerseReference) TableName() string { return "verse_references" }
func (Tag) TableName() string            { return "tags" }
func (VerseTag) TableName() string       { return "verse_tags" }
func (TagGroup) TableName() string       { return "tag_groups" }
func (TagGroupMember) TableName() string { return "tag_group_members" }
func (TagNote) TableName() string        { return "tag_notes" }
func (NoteFile) TableName() string       { return "note_files" }
func (Note) TableName() string           { return "notes" }
func (MetaRecord) TableName() string     { return "meta_records" }
