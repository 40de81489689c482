// Package migrations holds the ordered, reversible schema migrations and a
// small runner that records applied migrations in schema_migrations.
//
// Each migration declares its own local model types frozen at the shape the
// schema had when the migration was written, so later entity changes cannot
// silently alter what an old migration does.
package migrations

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/berean-study/berean/internal/canon"
)

// Migration is one reversible schema step.
type Migration struct {
	Name string
	Up   func(tx *gorm.DB) error
	Down func(tx *gorm.DB) error
}

type appliedMigration struct {
	Name      string `gorm:"primaryKey;size:255"`
	AppliedAt time.Time
}

func (appliedMigration) TableName() string { return "schema_migrations" }

// All returns every migration in execution order.
func All() []Migration {
	return []Migration{
		coreSchema(),
		seedBibleBooks(),
		noteFiles(),
		tagGroups(),
		tagTextColumns(),
		tagNotes(),
		metaRecords(),
	}
}

// Migrate applies every pending migration in order, each in its own
// transaction. Returns the number of migrations applied.
func Migrate(db *gorm.DB) (int, error) {
	if err := db.AutoMigrate(&appliedMigration{}); err != nil {
		return 0, fmt.Errorf("failed to prepare schema_migrations: %w", err)
	}

	applied := make(map[string]bool)
	var rows []appliedMigration
	if err := db.Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	for _, row := range rows {
		applied[row.Name] = true
	}

	count := 0
	for _, m := range All() {
		if applied[m.Name] {
			continue
		}
		migration := m
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return err
			}
			return tx.Create(&appliedMigration{Name: migration.Name, AppliedAt: time.Now()}).Error
		})
		if err != nil {
			return count, fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}
		log.Printf("Applied migration %s", migration.Name)
		count++
	}
	return count, nil
}

// Rollback reverts up to steps applied migrations, newest first.
func Rollback(db *gorm.DB, steps int) (int, error) {
	var rows []appliedMigration
	if err := db.Order("applied_at DESC, name DESC").Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("failed to read schema_migrations: %w", err)
	}

	byName := make(map[string]Migration)
	for _, m := range All() {
		byName[m.Name] = m
	}

	count := 0
	for _, row := range rows {
		if count >= steps {
			break
		}
		migration, ok := byName[row.Name]
		if !ok {
			return count, fmt.Errorf("no definition for applied migration %s", row.Name)
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&appliedMigration{Name: migration.Name}).Error
		})
		if err != nil {
			return count, fmt.Errorf("rollback of %s failed: %w", migration.Name, err)
		}
		log.Printf("Rolled back migration %s", migration.Name)
		count++
	}
	return count, nil
}

// --- 0001: core schema ---

type m1BibleBook struct {
	ID         uint   `gorm:"primaryKey"`
	Number     int    `gorm:"uniqueIndex"`
	ShortTitle string `gorm:"uniqueIndex;size:10"`
	LongTitle  string `gorm:"size:100"`
}

func (m1BibleBook) TableName() string { return "bible_books" }

type m1VerseReference struct {
	ID                 uint `gorm:"primaryKey"`
	BibleBookID        uint `gorm:"index;uniqueIndex:idx_verse_references_locus"`
	Chapter            int  `gorm:"uniqueIndex:idx_verse_references_locus"`
	VerseNr            int  `gorm:"uniqueIndex:idx_verse_references_locus"`
	AbsoluteVerseNrEng int  `gorm:"index"`
	AbsoluteVerseNrHeb int  `gorm:"index"`
}

func (m1VerseReference) TableName() string { return "verse_references" }

type m1Tag struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"uniqueIndex;size:255"`
	BibleBookID *uint  `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (m1Tag) TableName() string { return "tags" }

type m1VerseTag struct {
	VerseReferenceID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID            uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (m1VerseTag) TableName() string { return "verse_tags" }

func coreSchema() Migration {
	return Migration{
		Name: "0001_core_schema",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&m1BibleBook{}, &m1VerseReference{}, &m1Tag{}, &m1VerseTag{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&m1VerseTag{}, &m1Tag{}, &m1VerseReference{}, &m1BibleBook{})
		},
	}
}

// --- 0002: seed the canonical book registry ---

func seedBibleBooks() Migration {
	return Migration{
		Name: "0002_seed_bible_books",
		Up: func(tx *gorm.DB) error {
			for _, b := range canon.Books {
				row := m1BibleBook{Number: b.Number, ShortTitle: b.Short, LongTitle: b.Long}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("failed to seed book %s: %w", b.Short, err)
				}
			}
			return nil
		},
		Down: func(tx *gorm.DB) error {
			return tx.Where("1 = 1").Delete(&m1BibleBook{}).Error
		},
	}
}

// --- 0003: note files and notes ---

type m3NoteFile struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m3NoteFile) TableName() string { return "note_files" }

type m3Note struct {
	ID               uint   `gorm:"primaryKey"`
	NoteFileID       *uint  `gorm:"index"`
	VerseReferenceID uint   `gorm:"index"`
	Text             string `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (m3Note) TableName() string { return "notes" }

type m3Tag struct {
	NoteFileID *uint `gorm:"index"`
}

func (m3Tag) TableName() string { return "tags" }

func noteFiles() Migration {
	return Migration{
		Name: "0003_note_files",
		Up: func(tx *gorm.DB) error {
			if err := tx.Migrator().CreateTable(&m3NoteFile{}, &m3Note{}); err != nil {
				return err
			}
			return tx.Migrator().AddColumn(&m3Tag{}, "NoteFileID")
		},
		Down: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropColumn(&m3Tag{}, "NoteFileID"); err != nil {
				return err
			}
			return tx.Migrator().DropTable(&m3Note{}, &m3NoteFile{})
		},
	}
}

// --- 0004: tag groups ---

type m4TagGroup struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"uniqueIndex;size:255"`
	CreatedAt time.Time
}

func (m4TagGroup) TableName() string { return "tag_groups" }

type m4TagGroupMember struct {
	TagGroupID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID      uint `gorm:"primaryKey;autoIncrement:false"`
}

func (m4TagGroupMember) TableName() string { return "tag_group_members" }

func tagGroups() Migration {
	return Migration{
		Name: "0004_tag_groups",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&m4TagGroup{}, &m4TagGroupMember{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&m4TagGroupMember{}, &m4TagGroup{})
		},
	}
}

// --- 0005: introduction/conclusion columns on tags ---

type m5Tag struct {
	Introduction *string `gorm:"type:text"`
	Conclusion   *string `gorm:"type:text"`
}

func (m5Tag) TableName() string { return "tags" }

func tagTextColumns() Migration {
	return Migration{
		Name: "0005_tag_text_columns",
		Up: func(tx *gorm.DB) error {
			if err := tx.Migrator().AddColumn(&m5Tag{}, "Introduction"); err != nil {
				return err
			}
			return tx.Migrator().AddColumn(&m5Tag{}, "Conclusion")
		},
		Down: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropColumn(&m5Tag{}, "Conclusion"); err != nil {
				return err
			}
			return tx.Migrator().DropColumn(&m5Tag{}, "Introduction")
		},
	}
}

// --- 0006: tag notes table, absorbing the tag text columns ---

type m6TagNote struct {
	ID                    uint    `gorm:"primaryKey"`
	TagID                 uint    `gorm:"uniqueIndex"`
	Introduction          *string `gorm:"type:text"`
	Conclusion            *string `gorm:"type:text"`
	IntroductionUpdatedAt *time.Time
	ConclusionUpdatedAt   *time.Time
}

func (m6TagNote) TableName() string { return "tag_notes" }

func tagNotes() Migration {
	return Migration{
		Name: "0006_tag_notes",
		Up: func(tx *gorm.DB) error {
			if err := tx.Migrator().CreateTable(&m6TagNote{}); err != nil {
				return err
			}
			// Carry over tag content written before this table existed.
			return tx.Exec(`
				INSERT INTO tag_notes (tag_id, introduction, conclusion)
				SELECT id, introduction, conclusion FROM tags
				WHERE (introduction IS NOT NULL AND introduction != '')
				   OR (conclusion IS NOT NULL AND conclusion != '')
			`).Error
		},
		Down: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				UPDATE tags SET
					introduction = (SELECT introduction FROM tag_notes WHERE tag_notes.tag_id = tags.id),
					conclusion = (SELECT conclusion FROM tag_notes WHERE tag_notes.tag_id = tags.id)
				WHERE id IN (SELECT tag_id FROM tag_notes)
			`).Error; err != nil {
				return err
			}
			return tx.Migrator().DropTable(&m6TagNote{})
		},
	}
}

// --- 0007: meta records (change ledger) ---

type m7MetaRecord struct {
	ID             uint `gorm:"primaryKey"`
	LastModifiedAt time.Time
}

func (m7MetaRecord) TableName() string { return "meta_records" }

func metaRecords() Migration {
	return Migration{
		Name: "0007_meta_records",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&m7MetaRecord{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&m7MetaRecord{})
		},
	}
}
