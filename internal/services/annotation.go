// Package services holds the annotation service: the single boundary the
// UI layer talks to. Mutations come back as a structured MutationResult,
// statistics reads degrade to empty results with a logged diagnostic, so
// no store error propagates as an unhandled fault.
package services

import (
	"log"
	"time"

	"github.com/berean-study/berean/internal/database/notes"
	"github.com/berean-study/berean/internal/database/taggroups"
	"github.com/berean-study/berean/internal/database/tags"
	"github.com/berean-study/berean/internal/database/verses"
	"github.com/berean-study/berean/internal/entities"
	"github.com/berean-study/berean/internal/stats"
	"github.com/berean-study/berean/internal/versification"
)

// AnnotationService orchestrates the annotation store repositories.
type AnnotationService struct {
	tags      TagStore
	tagGroups TagGroupStore
	notes     NoteStore
	verses    VerseStore
	ledger    Ledger
	clusterer *stats.Clusterer
}

// NewAnnotationService creates a new annotation service.
func NewAnnotationService(tagStore TagStore, groupStore TagGroupStore, noteStore NoteStore, verseStore VerseStore, ledger Ledger, clusterer *stats.Clusterer) *AnnotationService {
	if clusterer == nil {
		clusterer = stats.NewClusterer(stats.DefaultMaxClusters, stats.DefaultMinPercent)
	}
	return &AnnotationService{
		tags:      tagStore,
		tagGroups: groupStore,
		notes:     noteStore,
		verses:    verseStore,
		ledger:    ledger,
		clusterer: clusterer,
	}
}

// Tag lifecycle.

func (s *AnnotationService) CreateTag(title string, bibleBookID *uint, withNoteFile bool) MutationResult {
	tag, err := s.tags.CreateTag(title, bibleBookID, withNoteFile)
	if err != nil {
		return failResult(err)
	}
	return okResult(tag)
}

func (s *AnnotationService) RenameTag(id uint, newTitle string) MutationResult {
	tag, err := s.tags.RenameTag(id, newTitle)
	if err != nil {
		return failResult(err)
	}
	return okResult(tag)
}

func (s *AnnotationService) UpdateTagGroups(id uint, addGroupIDs, removeGroupIDs []uint) MutationResult {
	if err := s.tags.UpdateTagGroups(id, addGroupIDs, removeGroupIDs); err != nil {
		return failResult(err)
	}
	return okResult(nil)
}

func (s *AnnotationService) DeleteTag(id uint, deleteNoteFile bool) MutationResult {
	if err := s.tags.DeleteTag(id, deleteNoteFile); err != nil {
		return failResult(err)
	}
	return okResult(nil)
}

func (s *AnnotationService) AssignTag(tagID uint, descriptors []verses.Descriptor, scheme versification.Scheme) MutationResult {
	if err := s.tags.AssignTag(tagID, descriptors, scheme); err != nil {
		return failResult(err)
	}
	return okResult(nil)
}

func (s *AnnotationService) UnassignTag(tagID uint, descriptors []verses.Descriptor, scheme versification.Scheme) MutationResult {
	if err := s.tags.UnassignTag(tagID, descriptors, scheme); err != nil {
		return failResult(err)
	}
	return okResult(nil)
}

// Tag notes.

func (s *AnnotationService) PersistIntroduction(tagID uint, text string) MutationResult {
	note, err := s.tags.PersistIntroduction(tagID, text)
	if err != nil {
		return failResult(err)
	}
	return okResult(note)
}

func (s *AnnotationService) PersistConclusion(tagID uint, text string) MutationResult {
	note, err := s.tags.PersistConclusion(tagID, text)
	if err != nil {
		return failResult(err)
	}
	return okResult(note)
}

func (s *AnnotationService) GetTagNote(tagID uint) (*entities.TagNote, error) {
	return s.tags.GetTagNote(tagID)
}

// Tag groups.

func (s *AnnotationService) CreateTagGroup(title string) MutationResult {
	group, err := s.tagGroups.CreateTagGroup(title)
	if err != nil {
		return failResult(err)
	}
	return okResult(group)
}

func (s *AnnotationService) RenameTagGroup(id uint, newTitle string) MutationResult {
	group, err := s.tagGroups.RenameTagGroup(id, newTitle)
	if err != nil {
		return failResult(err)
	}
	return okResult(group)
}

func (s *AnnotationService) DeleteTagGroup(id uint) MutationResult {
	if err := s.tagGroups.DeleteTagGroup(id); err != nil {
		return failResult(err)
	}
	return okResult(nil)
}

func (s *AnnotationService) GetAllTagGroups() ([]taggroups.TagGroupWithCount, error) {
	return s.tagGroups.GetAllTagGroups()
}

func (s *AnnotationService) GetTagsInGroup(groupID uint) ([]entities.Tag, error) {
	return s.tagGroups.GetTagsInGroup(groupID)
}

// Notes and note files.

func (s *AnnotationService) CreateNoteFile(title string) MutationResult {
	file, err := s.notes.CreateNoteFile(title)
	if err != nil {
		return failResult(err)
	}
	return okResult(file)
}

func (s *AnnotationService) DeleteNoteFile(id uint) MutationResult {
	if err := s.notes.DeleteNoteFile(id); err != nil {
		return failResult(err)
	}
	return okResult(nil)
}

func (s *AnnotationService) GetNoteFiles() ([]notes.NoteFileWithCount, error) {
	return s.notes.GetNoteFiles()
}

// PersistNote applies the empty-means-absent rule: the result record is
// the surviving note, or the deleted note's last state when empty text
// removed it.
func (s *AnnotationService) PersistNote(d verses.Descriptor, scheme versification.Scheme, text string, noteFileID *uint) MutationResult {
	note, err := s.notes.PersistNote(d, scheme, text, noteFileID)
	if err != nil {
		return failResult(err)
	}
	return okResult(note)
}

func (s *AnnotationService) GetNotesForBook(bookNumber int) ([]notes.NoteRow, error) {
	return s.notes.GetNotesForBook(bookNumber)
}

// Verse resolution.

func (s *AnnotationService) ResolveVerse(d verses.Descriptor, scheme versification.Scheme) MutationResult {
	ref, err := s.verses.Resolve(d.Book, d.Chapter, d.Verse, scheme)
	if err != nil {
		return failResult(err)
	}
	return okResult(ref)
}

func (s *AnnotationService) GetBooks() ([]entities.BibleBook, error) {
	return s.verses.GetBooks()
}

// GetLastUpdate reports the ledger timestamp, nil before the first
// mutation.
func (s *AnnotationService) GetLastUpdate() (*time.Time, error) {
	return s.ledger.GetLastUpdate()
}

// Statistics. Read-only aggregate queries return an empty result with a
// logged diagnostic instead of failing the whole view.

func (s *AnnotationService) GetAllTags(bookNumber int, sortByRecency, statsOnly bool) []tags.TagWithStats {
	rows, err := s.tags.GetAllTags(bookNumber, sortByRecency, statsOnly)
	if err != nil {
		log.Printf("tag statistics query failed for book %d: %v", bookNumber, err)
		return []tags.TagWithStats{}
	}
	return rows
}

func (s *AnnotationService) GetTagCount(bookNumber int) int64 {
	count, err := s.tags.GetTagCount(bookNumber)
	if err != nil {
		log.Printf("tag count query failed for book %d: %v", bookNumber, err)
		return 0
	}
	return count
}

func (s *AnnotationService) GetVerseTagsForBook(bookNumber int) []tags.VerseTagRow {
	rows, err := s.tags.GetVerseTagsForBook(bookNumber)
	if err != nil {
		log.Printf("verse tag query failed for book %d: %v", bookNumber, err)
		return []tags.VerseTagRow{}
	}
	return rows
}

// FrequencyBands clusters the tags assigned within a book by the share of
// the book's verses each covers, yielding the two bands the tag list
// renders.
func (s *AnnotationService) FrequencyBands(bookNumber int) stats.Bands {
	total, err := versification.BookVerseCount(versification.English, bookNumber)
	if err != nil {
		log.Printf("frequency clustering skipped for book %d: %v", bookNumber, err)
		return stats.Bands{}
	}

	rows, err := s.tags.GetAllTags(bookNumber, false, true)
	if err != nil {
		log.Printf("frequency clustering query failed for book %d: %v", bookNumber, err)
		return stats.Bands{}
	}

	frequencies := make([]stats.TagFrequency, 0, len(rows))
	for _, row := range rows {
		if row.BookAssignmentCount == 0 {
			continue
		}
		frequencies = append(frequencies, stats.TagFrequency{
			TagID:   row.ID,
			Title:   row.Title,
			Count:   row.BookAssignmentCount,
			Percent: stats.Percent(row.BookAssignmentCount, total),
		})
	}
	return s.clusterer.Cluster(frequencies)
}
