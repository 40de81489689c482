package tasks

import (
	"context"
	"fmt"
	"log"

	"github.com/mikestefanello/backlite"

	"github.com/berean-study/berean/internal/database/verses"
	"github.com/berean-study/berean/internal/versification"
)

// TagAssigner attaches a tag to a batch of verses.
type TagAssigner interface {
	AssignTag(tagID uint, descriptors []verses.Descriptor, scheme versification.Scheme) error
}

// TagRangeTask assigns a tag to every verse in a chapter range of a book.
// FromChapter/ToChapter of 0 mean the whole book.
type TagRangeTask struct {
	TagID       uint   `json:"tag_id"`
	Book        int    `json:"book"`
	FromChapter int    `json:"from_chapter"`
	ToChapter   int    `json:"to_chapter"`
	Scheme      string `json:"scheme"`
}

// Config returns the queue configuration for range tagging tasks.
func (t TagRangeTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "tag_range",
		MaxAttempts: DefaultMaxAttempts,
		Backoff:     DefaultRetryBackoff,
		Timeout:     DefaultTaskTimeout,
		Retention: &backlite.Retention{
			Duration:   DefaultRetention,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// expand lists every verse descriptor in the task's chapter range.
func (t TagRangeTask) expand(scheme versification.Scheme) ([]verses.Descriptor, error) {
	chapters, err := versification.ChapterCount(scheme, t.Book)
	if err != nil {
		return nil, err
	}
	from, to := t.FromChapter, t.ToChapter
	if from == 0 {
		from = 1
	}
	if to == 0 {
		to = chapters
	}
	if from < 1 || to > chapters || from > to {
		return nil, fmt.Errorf("chapter range %d-%d out of bounds for book %d (%d chapters)", from, to, t.Book, chapters)
	}

	var descriptors []verses.Descriptor
	for chapter := from; chapter <= to; chapter++ {
		count, err := versification.VerseCount(scheme, t.Book, chapter)
		if err != nil {
			return nil, err
		}
		for verse := 1; verse <= count; verse++ {
			descriptors = append(descriptors, verses.Descriptor{Book: t.Book, Chapter: chapter, Verse: verse})
		}
	}
	return descriptors, nil
}

// TagRangeProcessor creates a processor function for TagRangeTask.
func TagRangeProcessor(assigner TagAssigner) backlite.QueueProcessor[TagRangeTask] {
	return func(ctx context.Context, task TagRangeTask) error {
		if assigner == nil {
			return fmt.Errorf("tag assigner not configured")
		}

		scheme := versification.Scheme(task.Scheme)
		if !scheme.Valid() {
			return fmt.Errorf("unknown versification scheme %q", task.Scheme)
		}

		descriptors, err := task.expand(scheme)
		if err != nil {
			return fmt.Errorf("expand range: %w", err)
		}

		if err := assigner.AssignTag(task.TagID, descriptors, scheme); err != nil {
			return fmt.Errorf("assign tag %d: %w", task.TagID, err)
		}

		log.Printf("[TASK] Assigned tag %d to %d verses in book %d", task.TagID, len(descriptors), task.Book)
		return nil
	}
}

// NewTagRangeQueue creates a backlite queue for range tagging tasks.
func NewTagRangeQueue(assigner TagAssigner) backlite.Queue {
	return backlite.NewQueue(TagRangeProcessor(assigner))
}
