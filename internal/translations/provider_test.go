package translations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berean-study/berean/internal/versification"
)

func writeTranslation(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func setupTranslationsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeTranslation(t, dir, "web.json", `{
		"id": "web",
		"title": "World English Bible",
		"scheme": "ENGLISH",
		"books": {
			"43": [
				{"chapter": 3, "verse_nr": 17, "content": "For God didn't send his Son..."},
				{"chapter": 3, "verse_nr": 16, "content": "For God so loved the world..."},
				{"chapter": 1, "verse_nr": 1, "content": "In the beginning was the Word..."}
			]
		}
	}`)
	writeTranslation(t, dir, "bhs.json", `{
		"id": "bhs",
		"title": "Biblia Hebraica",
		"scheme": "HEBREW",
		"books": {}
	}`)

	return dir
}

func TestTranslationsListing(t *testing.T) {
	p := NewDirectoryProvider(setupTranslationsDir(t))

	list, err := p.Translations()
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Ordered by id.
	assert.Equal(t, "bhs", list[0].ID)
	assert.Equal(t, versification.Hebrew, list[0].Scheme)
	assert.Equal(t, "web", list[1].ID)
	assert.Equal(t, "World English Bible", list[1].Title)
	assert.Equal(t, versification.English, list[1].Scheme)
}

func TestScheme(t *testing.T) {
	p := NewDirectoryProvider(setupTranslationsDir(t))

	scheme, err := p.Scheme("web")
	require.NoError(t, err)
	assert.Equal(t, versification.English, scheme)

	_, err = p.Scheme("missing")
	assert.Error(t, err)
}

func TestBookVersesSorted(t *testing.T) {
	p := NewDirectoryProvider(setupTranslationsDir(t))

	verses, err := p.BookVerses("web", 43)
	require.NoError(t, err)
	require.Len(t, verses, 3)
	assert.Equal(t, 1, verses[0].Chapter)
	assert.Equal(t, 3, verses[1].Chapter)
	assert.Equal(t, 16, verses[1].VerseNr)
	assert.Equal(t, 17, verses[2].VerseNr)

	// Books the translation omits yield an empty list, not an error.
	verses, err = p.BookVerses("web", 19)
	require.NoError(t, err)
	assert.Empty(t, verses)
}

func TestIDDefaultsToFilename(t *testing.T) {
	dir := t.TempDir()
	writeTranslation(t, dir, "kjv.json", `{"title": "King James", "scheme": "ENGLISH", "books": {}}`)

	p := NewDirectoryProvider(dir)
	list, err := p.Translations()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "kjv", list[0].ID)
}

func TestRejectsUnknownScheme(t *testing.T) {
	dir := t.TempDir()
	writeTranslation(t, dir, "vul.json", `{"id": "vul", "title": "Vulgate", "scheme": "VULGATE", "books": {}}`)

	p := NewDirectoryProvider(dir)
	_, err := p.Scheme("vul")
	assert.ErrorContains(t, err, "unknown scheme")
}

func TestNonJSONFilesIgnored(t *testing.T) {
	dir := setupTranslationsDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("notes"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	p := NewDirectoryProvider(dir)
	list, err := p.Translations()
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestMissingDirectory(t *testing.T) {
	p := NewDirectoryProvider(filepath.Join(t.TempDir(), "nope"))
	_, err := p.Translations()
	assert.Error(t, err)
}
