package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/berean-study/berean/internal/database/verses"
	"github.com/berean-study/berean/internal/services"
	"github.com/berean-study/berean/internal/translations"
	"github.com/berean-study/berean/internal/versification"
)

type VersesController struct {
	service  *services.AnnotationService
	provider translations.Provider
}

func NewVersesController(service *services.AnnotationService, provider translations.Provider) *VersesController {
	return &VersesController{service: service, provider: provider}
}

// GetBooks returns the canonical book registry
// GET /api/books
func (vc *VersesController) GetBooks(c *gin.Context) {
	books, err := vc.service.GetBooks()
	if err != nil {
		respondInternalError(c, err, "get books")
		return
	}
	c.JSON(http.StatusOK, books)
}

// ResolveVerse resolves a translation-specific locus to its canonical
// verse reference, creating the row on first use
// POST /api/verses/resolve
func (vc *VersesController) ResolveVerse(c *gin.Context) {
	var req struct {
		Book    int    `json:"book" binding:"required"`
		Chapter int    `json:"chapter" binding:"required"`
		Verse   int    `json:"verse" binding:"required"`
		Scheme  string `json:"scheme"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "book, chapter and verse are required")
		return
	}

	scheme := versification.Scheme(req.Scheme)
	if req.Scheme == "" {
		scheme = versification.English
	}
	if !scheme.Valid() {
		respondBadRequest(c, "unknown versification scheme")
		return
	}

	d := verses.Descriptor{Book: req.Book, Chapter: req.Chapter, Verse: req.Verse}
	respondMutation(c, vc.service.ResolveVerse(d, scheme), http.StatusOK)
}

// GetVerseTagsForBook returns every tag assignment within a book, ordered
// by locus, for chapter decoration
// GET /api/books/:number/verse-tags
func (vc *VersesController) GetVerseTagsForBook(c *gin.Context) {
	number, ok := parseBookParam(c, "number")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, vc.service.GetVerseTagsForBook(number))
}

// GetTranslations lists the installed translations
// GET /api/translations
func (vc *VersesController) GetTranslations(c *gin.Context) {
	if vc.provider == nil {
		respondError(c, http.StatusServiceUnavailable, "no translations configured")
		return
	}
	list, err := vc.provider.Translations()
	if err != nil {
		respondInternalError(c, err, "list translations")
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetTranslationBook returns a book's text in one translation, together
// with the translation's versification scheme
// GET /api/translations/:id/books/:number
func (vc *VersesController) GetTranslationBook(c *gin.Context) {
	if vc.provider == nil {
		respondError(c, http.StatusServiceUnavailable, "no translations configured")
		return
	}
	number, ok := parseBookParam(c, "number")
	if !ok {
		return
	}
	translationID := c.Param("id")

	scheme, err := vc.provider.Scheme(translationID)
	if err != nil {
		respondNotFound(c, "translation")
		return
	}
	bookVerses, err := vc.provider.BookVerses(translationID, number)
	if err != nil {
		respondInternalError(c, err, "get translation book")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"translation": translationID,
		"scheme":      scheme,
		"book":        number,
		"verses":      bookVerses,
	})
}
