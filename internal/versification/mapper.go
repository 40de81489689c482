package versification

import (
	"sort"

	"github.com/berean-study/berean/internal/canon"
)

// CanonicalLocus is the scheme-independent identity of a verse: English
// chapter/verse labels plus the absolute verse number in each scheme.
type CanonicalLocus struct {
	Book        int
	Chapter     int
	Verse       int
	AbsoluteEng int
	AbsoluteHeb int
}

// Per-scheme prefix sums over book totals, so absolute numbers are strictly
// increasing across books. Index is book number; value is the count of
// verses in all preceding books.
var (
	engPrefix map[int]int
	hebPrefix map[int]int
)

func init() {
	buildHebrewTables()
	engPrefix = buildPrefix(English)
	hebPrefix = buildPrefix(Hebrew)
}

func buildPrefix(scheme Scheme) map[int]int {
	prefix := make(map[int]int, canon.MaxBookNumber)
	total := 0
	for _, b := range canon.Books {
		prefix[b.Number] = total
		total += bookTotal(versesFor(scheme, b.Number))
	}
	return prefix
}

func versesFor(scheme Scheme, book int) []int {
	if scheme == Hebrew {
		return hebrewVersesFor(book)
	}
	return englishVerses[book]
}

func bookTable(scheme Scheme, book int) ([]int, error) {
	if _, ok := canon.ByNumber(book); !ok {
		return nil, &UnknownBookError{Number: book}
	}
	return versesFor(scheme, book), nil
}

// ChapterCount returns the number of chapters of a book under a scheme.
func ChapterCount(scheme Scheme, book int) (int, error) {
	table, err := bookTable(scheme, book)
	if err != nil {
		return 0, err
	}
	return len(table), nil
}

// BookVerseCount returns the total number of verses in a book under a
// scheme.
func BookVerseCount(scheme Scheme, book int) (int, error) {
	table, err := bookTable(scheme, book)
	if err != nil {
		return 0, err
	}
	return bookTotal(table), nil
}

// VerseCount returns the number of verses in a chapter under a scheme.
func VerseCount(scheme Scheme, book, chapter int) (int, error) {
	table, err := bookTable(scheme, book)
	if err != nil {
		return 0, err
	}
	if chapter < 1 || chapter > len(table) {
		return 0, &RangeError{Scheme: scheme, Book: book, Chapter: chapter, Verse: 1}
	}
	return table[chapter-1], nil
}

// bookRelative converts (chapter, verse) to the 1-based position of the
// verse within its book under the given scheme.
func bookRelative(scheme Scheme, book, chapter, verse int) (int, error) {
	table, err := bookTable(scheme, book)
	if err != nil {
		return 0, err
	}
	if chapter < 1 || chapter > len(table) || verse < 1 || verse > table[chapter-1] {
		return 0, &RangeError{Scheme: scheme, Book: book, Chapter: chapter, Verse: verse}
	}
	abs := verse
	for _, n := range table[:chapter-1] {
		abs += n
	}
	return abs, nil
}

// locusOf is the inverse of bookRelative.
func locusOf(scheme Scheme, book, abs int) (chapter, verse int, err error) {
	table, err := bookTable(scheme, book)
	if err != nil {
		return 0, 0, err
	}
	if abs < 1 {
		return 0, 0, &RangeError{Scheme: scheme, Book: book, Chapter: 1, Verse: abs}
	}
	for i, n := range table {
		if abs <= n {
			return i + 1, abs, nil
		}
		abs -= n
	}
	return 0, 0, &RangeError{Scheme: scheme, Book: book, Chapter: len(table), Verse: abs}
}

// AbsoluteVerseNr converts a locus into the global absolute verse number
// under the given scheme. The result is strictly increasing over the
// ordered sequence (book, chapter, verse).
func AbsoluteVerseNr(scheme Scheme, book, chapter, verse int) (int, error) {
	rel, err := bookRelative(scheme, book, chapter, verse)
	if err != nil {
		return 0, err
	}
	if scheme == Hebrew {
		return hebPrefix[book] + rel, nil
	}
	return engPrefix[book] + rel, nil
}

// engToHebRel converts a book-relative English absolute to the Hebrew one.
func engToHebRel(book, relEng int) int {
	for _, r := range crossOffsets[book] {
		if relEng >= r.fromEng && relEng <= r.toEng {
			return relEng + r.delta
		}
	}
	return relEng
}

// hebToEngRel converts a book-relative Hebrew absolute to the English one.
// A Hebrew-only verse (a Psalm superscription) falls between two English
// spans and is clamped to the first verse of the following span, so
// annotating a superscription annotates verse 1 of its psalm.
func hebToEngRel(book, relHeb int) int {
	ranges := crossOffsets[book]
	if len(ranges) == 0 {
		return relHeb
	}
	i := sort.Search(len(ranges), func(i int) bool {
		return ranges[i].toEng+ranges[i].delta >= relHeb
	})
	if i >= len(ranges) {
		return relHeb - ranges[len(ranges)-1].delta
	}
	r := ranges[i]
	if relHeb < r.fromEng+r.delta {
		if i == 0 && relHeb <= r.fromEng {
			return relHeb
		}
		return r.fromEng
	}
	return relHeb - r.delta
}

// EngToHeb converts a global English absolute verse number to its Hebrew
// counterpart for the given book.
func EngToHeb(book, absoluteEng int) (int, error) {
	table, err := bookTable(English, book)
	if err != nil {
		return 0, err
	}
	rel := absoluteEng - engPrefix[book]
	if rel < 1 || rel > bookTotal(table) {
		return 0, &RangeError{Scheme: English, Book: book, Chapter: 0, Verse: rel}
	}
	return hebPrefix[book] + engToHebRel(book, rel), nil
}

// HebToEng converts a global Hebrew absolute verse number to its English
// counterpart for the given book.
func HebToEng(book, absoluteHeb int) (int, error) {
	table, err := bookTable(Hebrew, book)
	if err != nil {
		return 0, err
	}
	rel := absoluteHeb - hebPrefix[book]
	if rel < 1 || rel > bookTotal(table) {
		return 0, &RangeError{Scheme: Hebrew, Book: book, Chapter: 0, Verse: rel}
	}
	return engPrefix[book] + hebToEngRel(book, rel), nil
}

// Canonical normalizes a translation-specific locus to its canonical form:
// English-scheme chapter/verse labels plus both absolute verse numbers.
// Both absolutes are derived from the canonical labels, so every descriptor
// of the same logical verse yields the same CanonicalLocus regardless of
// the source scheme.
func Canonical(book, chapter, verse int, scheme Scheme) (CanonicalLocus, error) {
	rel, err := bookRelative(scheme, book, chapter, verse)
	if err != nil {
		return CanonicalLocus{}, err
	}
	relEng := rel
	if scheme == Hebrew {
		relEng = hebToEngRel(book, rel)
	}
	engChapter, engVerse, err := locusOf(English, book, relEng)
	if err != nil {
		return CanonicalLocus{}, err
	}
	return CanonicalLocus{
		Book:        book,
		Chapter:     engChapter,
		Verse:       engVerse,
		AbsoluteEng: engPrefix[book] + relEng,
		AbsoluteHeb: hebPrefix[book] + engToHebRel(book, relEng),
	}, nil
}
