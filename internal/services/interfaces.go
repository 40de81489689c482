package services

import (
	"time"

	"github.com/berean-study/berean/internal/database/notes"
	"github.com/berean-study/berean/internal/database/taggroups"
	"github.com/berean-study/berean/internal/database/tags"
	"github.com/berean-study/berean/internal/database/verses"
	"github.com/berean-study/berean/internal/entities"
	"github.com/berean-study/berean/internal/versification"
)

// TagStore covers the tag lifecycle, assignments, tag notes and the
// statistics projection.
type TagStore interface {
	CreateTag(title string, bibleBookID *uint, withNoteFile bool) (*entities.Tag, error)
	RenameTag(id uint, newTitle string) (*entities.Tag, error)
	UpdateTagGroups(id uint, addGroupIDs, removeGroupIDs []uint) error
	DeleteTag(id uint, deleteNoteFile bool) error
	AssignTag(tagID uint, descriptors []verses.Descriptor, scheme versification.Scheme) error
	UnassignTag(tagID uint, descriptors []verses.Descriptor, scheme versification.Scheme) error
	GetTagByID(id uint) (*entities.Tag, error)
	GetAllTags(bookNumber int, sortByRecency, statsOnly bool) ([]tags.TagWithStats, error)
	GetTagCount(bookNumber int) (int64, error)
	GetVerseTagsForBook(bookNumber int) ([]tags.VerseTagRow, error)
	PersistIntroduction(tagID uint, text string) (*entities.TagNote, error)
	PersistConclusion(tagID uint, text string) (*entities.TagNote, error)
	GetTagNote(tagID uint) (*entities.TagNote, error)
}

// TagGroupStore covers tag group CRUD and membership listing.
type TagGroupStore interface {
	CreateTagGroup(title string) (*entities.TagGroup, error)
	RenameTagGroup(id uint, newTitle string) (*entities.TagGroup, error)
	DeleteTagGroup(id uint) error
	GetTagGroupByID(id uint) (*entities.TagGroup, error)
	GetAllTagGroups() ([]taggroups.TagGroupWithCount, error)
	GetTagsInGroup(groupID uint) ([]entities.Tag, error)
}

// NoteStore covers verse notes and note files.
type NoteStore interface {
	CreateNoteFile(title string) (*entities.NoteFile, error)
	DeleteNoteFile(id uint) error
	GetNoteFiles() ([]notes.NoteFileWithCount, error)
	PersistNote(d verses.Descriptor, scheme versification.Scheme, text string, noteFileID *uint) (*entities.Note, error)
	FindNoteByVerseReferenceID(verseReferenceID uint, noteFileID *uint) (*entities.Note, error)
	GetNotesForBook(bookNumber int) ([]notes.NoteRow, error)
}

// VerseStore resolves canonical verse references.
type VerseStore interface {
	Resolve(book, chapter, verse int, scheme versification.Scheme) (*entities.VerseReference, error)
	ResolveBatch(descriptors []verses.Descriptor, scheme versification.Scheme) ([]*entities.VerseReference, error)
	GetByID(id uint) (*entities.VerseReference, error)
	GetBooks() ([]entities.BibleBook, error)
}

// Ledger reads the change ledger.
type Ledger interface {
	GetLastUpdate() (*time.Time, error)
}
