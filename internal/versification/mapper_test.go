package versification

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berean-study/berean/internal/canon"
)

// Absolute verse numbers must be strictly increasing, with no gaps, over
// the canonical ordering of (book, chapter, verse) under each scheme.
func TestAbsoluteVerseNrContiguous(t *testing.T) {
	for _, scheme := range []Scheme{English, Hebrew} {
		prev := 0
		for _, b := range canon.Books {
			chapters, err := ChapterCount(scheme, b.Number)
			require.NoError(t, err)
			for ch := 1; ch <= chapters; ch++ {
				count, err := VerseCount(scheme, b.Number, ch)
				require.NoError(t, err)
				for v := 1; v <= count; v++ {
					abs, err := AbsoluteVerseNr(scheme, b.Number, ch, v)
					require.NoError(t, err)
					require.Equal(t, prev+1, abs, "%s %s %d:%d", scheme, b.Short, ch, v)
					prev = abs
				}
			}
		}
	}
}

// Outside Psalms and 1 Samuel the two schemes relabel chapters but carry
// the same verse stream, so book totals must agree. Psalms gains one
// numbered verse per superscription, 1 Samuel gains one for the split of
// 20:42.
func TestSchemeBookTotals(t *testing.T) {
	for _, b := range canon.Books {
		eng, err := BookVerseCount(English, b.Number)
		require.NoError(t, err)
		heb, err := BookVerseCount(Hebrew, b.Number)
		require.NoError(t, err)

		switch b.Number {
		case 9:
			assert.Equal(t, eng+1, heb, "1 Samuel")
		case 19:
			titles := 0
			for p := 1; p <= 150; p++ {
				titles += psalmTitleVerses(p)
			}
			assert.Equal(t, eng+titles, heb, "Psalms")
		default:
			assert.Equal(t, eng, heb, "book %d (%s)", b.Number, b.Short)
		}
	}
}

func TestChapterCounts(t *testing.T) {
	cases := []struct {
		scheme Scheme
		book   int
		want   int
	}{
		{English, 29, 3}, // Joel
		{Hebrew, 29, 4},
		{English, 39, 4}, // Malachi
		{Hebrew, 39, 3},
		{English, 19, 150},
		{Hebrew, 19, 150},
		{English, 57, 1}, // Philemon
	}
	for _, c := range cases {
		got, err := ChapterCount(c.scheme, c.book)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%s book %d", c.scheme, c.book)
	}
}

func TestVerseCounts(t *testing.T) {
	cases := []struct {
		scheme  Scheme
		book    int
		chapter int
		want    int
	}{
		{English, 1, 1, 31},
		{English, 19, 117, 2},
		{English, 19, 119, 176},
		{English, 19, 3, 8},
		{Hebrew, 19, 3, 9},   // superscription counted
		{Hebrew, 19, 51, 21}, // double title
		{English, 9, 21, 15},
		{Hebrew, 9, 21, 16}, // 20:42 split
		{English, 57, 1, 25},
	}
	for _, c := range cases {
		got, err := VerseCount(c.scheme, c.book, c.chapter)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%s book %d chapter %d", c.scheme, c.book, c.chapter)
	}
}

// Chapter-boundary relabels: the same verse carries different labels in
// the two schemes but the same position in the stream.
func TestChapterBoundaryRelabels(t *testing.T) {
	cases := []struct {
		book                 int
		engCh, engV          int
		hebCh, hebV          int
	}{
		{1, 31, 55, 32, 1},  // Genesis
		{29, 2, 28, 3, 1},   // Joel
		{29, 3, 1, 4, 1},    // Joel
		{39, 4, 1, 3, 19},   // Malachi
		{32, 1, 17, 2, 1},   // Jonah
		{23, 9, 1, 8, 23},   // Isaiah
	}
	for _, c := range cases {
		rel, err := bookRelative(English, c.book, c.engCh, c.engV)
		require.NoError(t, err)
		ch, v, err := locusOf(Hebrew, c.book, rel)
		require.NoError(t, err)
		assert.Equal(t, c.hebCh, ch, "book %d English %d:%d", c.book, c.engCh, c.engV)
		assert.Equal(t, c.hebV, v, "book %d English %d:%d", c.book, c.engCh, c.engV)
	}
}

func TestCanonicalPsalmDivergence(t *testing.T) {
	// English Psalm 3:1 is Hebrew Psalm 3:2; the Hebrew superscription 3:1
	// clamps to the same canonical locus.
	fromEnglish, err := Canonical(19, 3, 1, English)
	require.NoError(t, err)
	fromHebrew, err := Canonical(19, 3, 2, Hebrew)
	require.NoError(t, err)
	fromTitle, err := Canonical(19, 3, 1, Hebrew)
	require.NoError(t, err)

	assert.Equal(t, 3, fromEnglish.Chapter)
	assert.Equal(t, 1, fromEnglish.Verse)
	assert.Equal(t, fromEnglish, fromHebrew)
	assert.Equal(t, fromEnglish, fromTitle)
	// Psalm 3 carries one title, psalms 1 and 2 none, so the Hebrew
	// absolute runs exactly one ahead here.
	assert.Equal(t, fromEnglish.AbsoluteEng-engPrefix[19]+1, fromEnglish.AbsoluteHeb-hebPrefix[19])
}

func TestCanonicalFirstSamuelSplit(t *testing.T) {
	fromEnglish, err := Canonical(9, 21, 1, English)
	require.NoError(t, err)
	fromHebrew, err := Canonical(9, 21, 2, Hebrew)
	require.NoError(t, err)
	assert.Equal(t, fromEnglish, fromHebrew)
	assert.Equal(t, 21, fromEnglish.Chapter)
	assert.Equal(t, 1, fromEnglish.Verse)

	// Before the split the schemes agree verse for verse.
	before, err := Canonical(9, 20, 42, Hebrew)
	require.NoError(t, err)
	assert.Equal(t, 20, before.Chapter)
	assert.Equal(t, 42, before.Verse)
	assert.Equal(t, before.AbsoluteEng-engPrefix[9], before.AbsoluteHeb-hebPrefix[9])
}

// Canonical output is a fixed point: feeding the canonical labels back in
// under the English scheme reproduces the locus.
func TestCanonicalIdempotent(t *testing.T) {
	for _, book := range []int{1, 9, 19, 29, 39, 43, 57} {
		chapters, err := ChapterCount(Hebrew, book)
		require.NoError(t, err)
		for ch := 1; ch <= chapters; ch++ {
			count, err := VerseCount(Hebrew, book, ch)
			require.NoError(t, err)
			for v := 1; v <= count; v++ {
				locus, err := Canonical(book, ch, v, Hebrew)
				require.NoError(t, err)
				again, err := Canonical(locus.Book, locus.Chapter, locus.Verse, English)
				require.NoError(t, err)
				require.Equal(t, locus, again, "book %d Hebrew %d:%d", book, ch, v)
			}
		}
	}
}

// Every English verse survives a round trip through the Hebrew address
// space unchanged. (The reverse does not hold: superscriptions are
// Hebrew-only and clamp forward.)
func TestEngHebRoundTrip(t *testing.T) {
	for _, b := range canon.Books {
		total, err := BookVerseCount(English, b.Number)
		require.NoError(t, err)
		for rel := 1; rel <= total; rel++ {
			absEng := engPrefix[b.Number] + rel
			absHeb, err := EngToHeb(b.Number, absEng)
			require.NoError(t, err)
			back, err := HebToEng(b.Number, absHeb)
			require.NoError(t, err)
			require.Equal(t, absEng, back, "%s rel %d", b.Short, rel)
		}
	}
}

func TestUnknownBook(t *testing.T) {
	for _, book := range []int{0, -1, canon.MaxBookNumber + 1} {
		_, err := ChapterCount(English, book)
		var unknown *UnknownBookError
		require.True(t, errors.As(err, &unknown), "book %d", book)
		assert.Equal(t, book, unknown.Number)

		_, err = Canonical(book, 1, 1, English)
		require.True(t, errors.As(err, &unknown))
	}
}

func TestOutOfRange(t *testing.T) {
	cases := []struct {
		scheme  Scheme
		book    int
		chapter int
		verse   int
	}{
		{English, 1, 51, 1},   // Genesis has 50 chapters
		{English, 1, 1, 32},   // Genesis 1 has 31 verses
		{English, 29, 4, 1},   // Joel has 3 English chapters
		{Hebrew, 39, 4, 1},    // Malachi has 3 Hebrew chapters
		{English, 19, 3, 9},   // Psalm 3 has 8 English verses
		{English, 1, 0, 1},
		{English, 1, 1, 0},
	}
	for _, c := range cases {
		_, err := AbsoluteVerseNr(c.scheme, c.book, c.chapter, c.verse)
		var rangeErr *RangeError
		require.True(t, errors.As(err, &rangeErr), "%s %d %d:%d", c.scheme, c.book, c.chapter, c.verse)
	}

	total, err := BookVerseCount(English, 57)
	require.NoError(t, err)
	_, err = EngToHeb(57, engPrefix[57]+total+1)
	var rangeErr *RangeError
	require.True(t, errors.As(err, &rangeErr))
}

func TestSchemeHelpers(t *testing.T) {
	assert.True(t, English.Valid())
	assert.True(t, Hebrew.Valid())
	assert.False(t, Scheme("VULGATE").Valid())
	assert.Equal(t, Hebrew, English.Counterpart())
	assert.Equal(t, English, Hebrew.Counterpart())
}
