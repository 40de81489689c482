// Package versification converts between (book, chapter, verse) loci and
// absolute verse numbers for the two supported versification schemes, and
// between the two schemes' address spaces for the same logical verse.
//
// All conversions are pure lookups against static per-book tables; the
// package holds no mutable state.
package versification

import "fmt"

// Scheme identifies a versification tradition.
type Scheme string

const (
	// English is the versification used by most English translations (KJV lineage).
	English Scheme = "ENGLISH"
	// Hebrew is the Masoretic versification (BHS lineage).
	Hebrew Scheme = "HEBREW"
)

// Valid reports whether s is a known scheme.
func (s Scheme) Valid() bool {
	return s == English || s == Hebrew
}

// Counterpart returns the other scheme.
func (s Scheme) Counterpart() Scheme {
	if s == English {
		return Hebrew
	}
	return English
}

// UnknownBookError is returned when a book number is not in the registry.
type UnknownBookError struct {
	Number int
}

func (e *UnknownBookError) Error() string {
	return fmt.Sprintf("unknown book number %d", e.Number)
}

// RangeError is returned when a chapter/verse combination lies beyond the
// known bounds of a book under the given scheme.
type RangeError struct {
	Scheme  Scheme
	Book    int
	Chapter int
	Verse   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("locus %d:%d:%d out of range for scheme %s", e.Book, e.Chapter, e.Verse, e.Scheme)
}
