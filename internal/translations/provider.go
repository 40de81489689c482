// Package translations supplies scripture text to the verse views. The
// core only consumes a translation's versification scheme and its
// (book, chapter, verseNr) triples; the text content is passed through
// untouched.
package translations

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/berean-study/berean/internal/versification"
)

// Verse is one verse of a translation, in that translation's own
// versification scheme.
type Verse struct {
	Chapter int    `json:"chapter"`
	VerseNr int    `json:"verse_nr"`
	Content string `json:"content"`
}

// Translation describes an available translation.
type Translation struct {
	ID     string               `json:"id"`
	Title  string               `json:"title"`
	Scheme versification.Scheme `json:"scheme"`
}

// Provider is the consumed interface for translation text.
type Provider interface {
	Translations() ([]Translation, error)
	Scheme(translationID string) (versification.Scheme, error)
	BookVerses(translationID string, book int) ([]Verse, error)
}

// translationFile is the on-disk format: one JSON file per translation,
// verses grouped by book number.
type translationFile struct {
	ID     string               `json:"id"`
	Title  string               `json:"title"`
	Scheme versification.Scheme `json:"scheme"`
	Books  map[string][]Verse   `json:"books"`
}

// DirectoryProvider reads translations from a directory of JSON files,
// caching each file after first load. Files are immutable once installed.
type DirectoryProvider struct {
	dir string

	mu    sync.Mutex
	cache map[string]*translationFile
}

// NewDirectoryProvider creates a provider over a translations directory.
func NewDirectoryProvider(dir string) *DirectoryProvider {
	return &DirectoryProvider{dir: dir, cache: make(map[string]*translationFile)}
}

// Translations lists every translation in the directory, ordered by id.
func (p *DirectoryProvider) Translations() ([]Translation, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read translations directory %s: %w", p.dir, err)
	}

	var result []Translation
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		file, err := p.load(id)
		if err != nil {
			return nil, err
		}
		result = append(result, Translation{ID: file.ID, Title: file.Title, Scheme: file.Scheme})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Scheme returns the versification scheme of a translation.
func (p *DirectoryProvider) Scheme(translationID string) (versification.Scheme, error) {
	file, err := p.load(translationID)
	if err != nil {
		return "", err
	}
	return file.Scheme, nil
}

// BookVerses returns a book's verses in locus order. An installed
// translation may omit books; that yields an empty list, not an error.
func (p *DirectoryProvider) BookVerses(translationID string, book int) ([]Verse, error) {
	file, err := p.load(translationID)
	if err != nil {
		return nil, err
	}
	verses := file.Books[strconv.Itoa(book)]
	sort.Slice(verses, func(i, j int) bool {
		if verses[i].Chapter != verses[j].Chapter {
			return verses[i].Chapter < verses[j].Chapter
		}
		return verses[i].VerseNr < verses[j].VerseNr
	})
	return verses, nil
}

func (p *DirectoryProvider) load(translationID string) (*translationFile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if file, ok := p.cache[translationID]; ok {
		return file, nil
	}

	path := filepath.Join(p.dir, translationID+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read translation %s: %w", translationID, err)
	}

	var file translationFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse translation %s: %w", translationID, err)
	}
	if file.ID == "" {
		file.ID = translationID
	}
	if !file.Scheme.Valid() {
		return nil, fmt.Errorf("translation %s declares unknown scheme %q", translationID, file.Scheme)
	}

	p.cache[translationID] = &file
	return &file, nil
}
