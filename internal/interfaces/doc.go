// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Annotation Store Interfaces
//
//   - TagStore: tag lifecycle, assignments, tag notes, statistics (internal/services/interfaces.go)
//   - TagGroupStore: tag group CRUD and membership (internal/services/interfaces.go)
//   - NoteStore: verse notes and note files (internal/services/interfaces.go)
//   - VerseStore: canonical verse reference resolution (internal/services/interfaces.go)
//   - Ledger: change ledger read access (internal/services/interfaces.go)
//
// ## External Service Interfaces
//
//   - translations.Provider: translation text and versification scheme per translation
//
// # Adding a New Translation Source
//
// To serve translations from somewhere other than a JSON directory
// (e.g. a remote module repository):
//
//  1. Implement translations.Provider
//
//     type RemoteProvider struct {
//         baseURL    string
//         httpClient *http.Client
//     }
//
//     func (p *RemoteProvider) Translations() ([]translations.Translation, error)
//     func (p *RemoteProvider) Scheme(translationID string) (versification.Scheme, error)
//     func (p *RemoteProvider) BookVerses(translationID string, book int) ([]translations.Verse, error)
//
//     var _ translations.Provider = (*RemoteProvider)(nil)
//
//  2. Wire it in entrypoint.Run
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
