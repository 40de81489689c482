package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/berean-study/berean/internal/database/meta"
	"github.com/berean-study/berean/internal/database/notes"
	"github.com/berean-study/berean/internal/database/taggroups"
	"github.com/berean-study/berean/internal/database/tags"
	"github.com/berean-study/berean/internal/database/verses"
	"github.com/berean-study/berean/internal/services"
	"github.com/berean-study/berean/internal/tasks"
	"github.com/berean-study/berean/internal/translations"
)

// =============================================================================
// Annotation Store
// =============================================================================

var _ services.TagStore = (*tags.Repository)(nil)
var _ services.TagGroupStore = (*taggroups.Repository)(nil)
var _ services.NoteStore = (*notes.Repository)(nil)
var _ services.VerseStore = (*verses.Repository)(nil)
var _ services.Ledger = (*meta.Repository)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ tasks.TagAssigner = (*tags.Repository)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ translations.Provider = (*translations.DirectoryProvider)(nil)
