// Command generate_demo creates a demo database with sample annotations
// over well known passages, plus a small public domain translation
// extract for the text endpoints.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db] [-translations ./translations]
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/berean-study/berean/internal/database"
	"github.com/berean-study/berean/internal/database/meta"
	"github.com/berean-study/berean/internal/database/notes"
	"github.com/berean-study/berean/internal/database/taggroups"
	"github.com/berean-study/berean/internal/database/tags"
	"github.com/berean-study/berean/internal/database/verses"
	"github.com/berean-study/berean/internal/versification"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	translationsDir := flag.String("translations", "", "optional directory to write a sample translation extract into")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	ledger := meta.NewRepository(db.DB)
	versesRepo := verses.NewRepository(db.DB)
	tagsRepo := tags.NewRepository(db.DB, versesRepo, ledger)
	groupsRepo := taggroups.NewRepository(db.DB, ledger)
	notesRepo := notes.NewRepository(db.DB, versesRepo, ledger)

	tagIDs := createTags(tagsRepo)
	createGroups(groupsRepo, tagsRepo, tagIDs)
	assignVerses(tagsRepo, tagIDs)
	writeNotes(notesRepo, tagsRepo, tagIDs)

	if *translationsDir != "" {
		if err := writeSampleTranslation(*translationsDir); err != nil {
			log.Fatalf("Failed to write sample translation: %v", err)
		}
	}

	log.Println("Demo database generated successfully!")
}

func createTags(repo *tags.Repository) map[string]uint {
	definitions := []struct {
		title        string
		withNoteFile bool
	}{
		{"Faith", true},
		{"Grace", false},
		{"Prayer", false},
		{"Covenant", false},
		{"Messianic", false},
	}

	ids := make(map[string]uint)
	for _, d := range definitions {
		tag, err := repo.CreateTag(d.title, nil, d.withNoteFile)
		if err != nil {
			log.Printf("Failed to create tag %s: %v", d.title, err)
			continue
		}
		ids[d.title] = tag.ID
		log.Printf("Created tag: %s", d.title)
	}
	return ids
}

func createGroups(groups *taggroups.Repository, tagsRepo *tags.Repository, tagIDs map[string]uint) {
	memberships := map[string][]string{
		"Doctrines": {"Faith", "Grace", "Covenant"},
		"Devotion":  {"Prayer"},
		"Prophecy":  {"Messianic", "Covenant"},
	}

	for title, members := range memberships {
		group, err := groups.CreateTagGroup(title)
		if err != nil {
			log.Printf("Failed to create tag group %s: %v", title, err)
			continue
		}
		for _, member := range members {
			tagID, ok := tagIDs[member]
			if !ok {
				continue
			}
			if err := tagsRepo.UpdateTagGroups(tagID, []uint{group.ID}, nil); err != nil {
				log.Printf("Failed to add %s to group %s: %v", member, title, err)
			}
		}
		log.Printf("Created tag group: %s (%d members)", title, len(members))
	}
}

func assignVerses(repo *tags.Repository, tagIDs map[string]uint) {
	assignments := map[string][]verses.Descriptor{
		"Faith": {
			{Book: 49, Chapter: 2, Verse: 8},  // Ephesians 2:8
			{Book: 58, Chapter: 11, Verse: 1}, // Hebrews 11:1
			{Book: 45, Chapter: 10, Verse: 17},
		},
		"Grace": {
			{Book: 49, Chapter: 2, Verse: 8},
			{Book: 49, Chapter: 2, Verse: 9},
			{Book: 43, Chapter: 1, Verse: 17},
		},
		"Prayer": {
			{Book: 40, Chapter: 6, Verse: 9}, // Matthew 6:9
			{Book: 19, Chapter: 23, Verse: 1},
			{Book: 52, Chapter: 5, Verse: 17},
		},
		"Covenant": {
			{Book: 1, Chapter: 9, Verse: 13},
			{Book: 24, Chapter: 31, Verse: 31},
		},
		"Messianic": {
			{Book: 23, Chapter: 53, Verse: 5}, // Isaiah 53:5
			{Book: 19, Chapter: 22, Verse: 1},
		},
	}

	for title, descriptors := range assignments {
		tagID, ok := tagIDs[title]
		if !ok {
			continue
		}
		if err := repo.AssignTag(tagID, descriptors, versification.English); err != nil {
			log.Printf("Failed to assign tag %s: %v", title, err)
			continue
		}
		log.Printf("Assigned %s to %d verses", title, len(descriptors))
	}
}

func writeNotes(repo *notes.Repository, tagsRepo *tags.Repository, tagIDs map[string]uint) {
	file, err := repo.CreateNoteFile("Study journal")
	if err != nil {
		log.Printf("Failed to create note file: %v", err)
		return
	}

	entries := []struct {
		locus      verses.Descriptor
		text       string
		noteFileID *uint
	}{
		{verses.Descriptor{Book: 43, Chapter: 3, Verse: 16}, "The hinge of the whole gospel.", nil},
		{verses.Descriptor{Book: 49, Chapter: 2, Verse: 8}, "Compare Romans 4: faith counted as righteousness.", &file.ID},
		{verses.Descriptor{Book: 19, Chapter: 23, Verse: 1}, "Shepherd imagery continues through verse 4.", &file.ID},
	}

	for _, e := range entries {
		if _, err := repo.PersistNote(e.locus, versification.English, e.text, e.noteFileID); err != nil {
			log.Printf("Failed to persist note on %d %d:%d: %v", e.locus.Book, e.locus.Chapter, e.locus.Verse, err)
		}
	}
	log.Printf("Wrote %d notes", len(entries))

	if faithID, ok := tagIDs["Faith"]; ok {
		if _, err := tagsRepo.PersistIntroduction(faithID, "Passages tracing faith from Abraham to the church."); err != nil {
			log.Printf("Failed to persist tag note: %v", err)
		}
	}
}

// writeSampleTranslation emits a tiny World English Bible extract in the
// directory provider's format.
func writeSampleTranslation(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	extract := map[string]interface{}{
		"id":     "web",
		"title":  "World English Bible (extract)",
		"scheme": "ENGLISH",
		"books": map[string][]map[string]interface{}{
			"43": {
				{"chapter": 3, "verse_nr": 16, "content": "For God so loved the world, that he gave his only born Son, that whoever believes in him should not perish, but have eternal life."},
				{"chapter": 3, "verse_nr": 17, "content": "For God didn't send his Son into the world to judge the world, but that the world should be saved through him."},
			},
			"19": {
				{"chapter": 23, "verse_nr": 1, "content": "Yahweh is my shepherd; I shall lack nothing."},
				{"chapter": 23, "verse_nr": 2, "content": "He makes me lie down in green pastures. He leads me beside still waters."},
			},
			"49": {
				{"chapter": 2, "verse_nr": 8, "content": "For by grace you have been saved through faith, and that not of yourselves; it is the gift of God,"},
				{"chapter": 2, "verse_nr": 9, "content": "not of works, that no one would boast."},
			},
		},
	}

	data, err := json.MarshalIndent(extract, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "web.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	log.Printf("Wrote sample translation extract to %s", path)
	return nil
}
