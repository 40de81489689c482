package versification

// The Hebrew (Masoretic) scheme diverges from the English scheme in a
// bounded set of books. Almost all divergences are chapter-boundary shifts:
// the underlying verse stream is identical, only the chapter/verse labels
// differ, so the absolute verse numbers agree. The exceptions are Psalms,
// where the Masoretic text numbers the superscriptions as verses, and
// 1 Samuel 20:42, which the Masoretic text splits into two verses. Those
// two books get cross-scheme offset tables.

// hebrewOverrides maps a book number to its full verses-per-chapter table
// under the Hebrew scheme. Books without an entry use the English table.
// The Psalms entry is derived in init from psalmTitleVerses.
var hebrewOverrides = map[int][]int{}

// boundary-shift overrides: per book, chapter number (1-based) -> verse count
var hebrewChapterTweaks = map[int]map[int]int{
	1:  {31: 54, 32: 33},                 // Gen 31:55 -> 32:1
	2:  {7: 29, 8: 28, 21: 37, 22: 30},   // Exo 7:25/8:1, 22:1 -> 21:37
	3:  {5: 26, 6: 23},                   // Lev 6:1-7 -> 5:20-26
	4:  {16: 35, 17: 28, 25: 19, 26: 64}, // Num 16:36 -> 17:1
	5:  {12: 31, 13: 19, 22: 29, 23: 26, 28: 69, 29: 28},
	10: {18: 32, 19: 44}, // 2Sa 18:33 -> 19:1
	11: {4: 20, 5: 32},   // 1Ki 4:21 -> 5:1
	12: {11: 20, 12: 22},
	13: {5: 41, 6: 66}, // 1Ch 6:1-15 -> 5:27-41
	14: {1: 18, 2: 17, 13: 23, 14: 14},
	16: {3: 38, 4: 17, 9: 37, 10: 40}, // Neh 3:33 -> 4:1
	18: {40: 32, 41: 26},              // Job 41:1-8 -> 40:25-32
	21: {4: 17, 5: 19},                // Ecc 5:1 -> 4:17
	22: {6: 12, 7: 14},                // Sol 6:13 -> 7:1
	23: {8: 23, 9: 20},                // Isa 9:1 -> 8:23
	24: {8: 23, 9: 25},
	26: {20: 44, 21: 37}, // Eze 20:45 -> 21:1
	27: {3: 33, 4: 34, 5: 30, 6: 29},
	28: {1: 9, 2: 25, 11: 11, 12: 15, 13: 15, 14: 10},
	32: {1: 16, 2: 11}, // Jon 1:17 -> 2:1
	33: {4: 14, 5: 14},
	34: {1: 14, 2: 14}, // Nah 1:15 -> 2:1
	38: {1: 17, 2: 17}, // Zec 1:18-21 -> 2:1-4
}

// chapter-count overrides: Joel and Malachi relabel chapters entirely
var hebrewChapterTables = map[int][]int{
	29: {20, 27, 5, 21}, // Joel 2:28-32 -> 3:1-5, English 3 -> Hebrew 4
	39: {14, 17, 24},    // Mal 4:1-6 -> 3:19-24
}

// psalmsUntitled lists the psalms with no superscription; every other psalm
// carries one extra leading verse in the Hebrew scheme, and the psalms in
// psalmsDoubleTitled carry two.
var psalmsUntitled = map[int]bool{
	1: true, 2: true, 10: true, 33: true, 43: true, 71: true, 91: true,
	93: true, 94: true, 95: true, 96: true, 97: true, 99: true, 104: true,
	105: true, 107: true, 114: true, 115: true, 116: true, 117: true,
	118: true, 119: true, 135: true, 136: true, 137: true, 146: true,
	147: true, 148: true, 149: true, 150: true,
}

var psalmsDoubleTitled = map[int]bool{51: true, 52: true, 54: true, 60: true}

func psalmTitleVerses(psalm int) int {
	switch {
	case psalmsUntitled[psalm]:
		return 0
	case psalmsDoubleTitled[psalm]:
		return 2
	default:
		return 1
	}
}

// offsetRange maps a contiguous span of book-relative English absolute
// verse numbers onto the Hebrew address space: absHeb = absEng + delta.
type offsetRange struct {
	fromEng int // inclusive
	toEng   int // inclusive
	delta   int
}

// crossOffsets holds the per-book offset tables for books whose absolute
// numbering diverges. Built in init; books without an entry have delta 0.
var crossOffsets = map[int][]offsetRange{}

// buildHebrewTables populates hebrewOverrides and crossOffsets. Called from
// this package's init before the prefix sums are computed.
func buildHebrewTables() {
	// Boundary-shift overrides keep the verse stream identical, so the
	// full Hebrew table is the English table with a few chapters swapped.
	for book, tweaks := range hebrewChapterTweaks {
		eng := englishVerses[book]
		heb := make([]int, len(eng))
		copy(heb, eng)
		for chapter, count := range tweaks {
			heb[chapter-1] = count
		}
		hebrewOverrides[book] = heb
	}

	// 1 Samuel: English 20:42 is two Masoretic verses, so chapter 21 gains
	// a verse and everything from there on shifts by one.
	engSam := englishVerses[9]
	hebSam := make([]int, len(engSam))
	copy(hebSam, engSam)
	hebSam[20] = engSam[20] + 1 // chapter 21
	hebrewOverrides[9] = hebSam
	splitAt := 0
	for _, n := range engSam[:20] {
		splitAt += n
	}
	crossOffsets[9] = []offsetRange{{fromEng: splitAt + 1, toEng: bookTotal(engSam), delta: 1}}

	for book, table := range hebrewChapterTables {
		hebrewOverrides[book] = table
	}

	// Psalms: each superscription is an extra numbered verse in the Hebrew
	// scheme. The offset for a psalm is the cumulative number of title
	// verses up to and including that psalm.
	engPsa := englishVerses[19]
	hebPsa := make([]int, len(engPsa))
	ranges := make([]offsetRange, 0, len(engPsa))
	abs := 0
	titles := 0
	for p := 1; p <= len(engPsa); p++ {
		count := engPsa[p-1]
		titles += psalmTitleVerses(p)
		hebPsa[p-1] = count + psalmTitleVerses(p)
		ranges = append(ranges, offsetRange{fromEng: abs + 1, toEng: abs + count, delta: titles})
		abs += count
	}
	hebrewOverrides[19] = hebPsa
	crossOffsets[19] = ranges
}

// hebrewVersesFor returns the verses-per-chapter table for a book under the
// Hebrew scheme.
func hebrewVersesFor(book int) []int {
	if t, ok := hebrewOverrides[book]; ok {
		return t
	}
	return englishVerses[book]
}

func bookTotal(table []int) int {
	total := 0
	for _, n := range table {
		total += n
	}
	return total
}
