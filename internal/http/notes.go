package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/berean-study/berean/internal/database/verses"
	"github.com/berean-study/berean/internal/services"
	"github.com/berean-study/berean/internal/versification"
)

type NotesController struct {
	service *services.AnnotationService
}

func NewNotesController(service *services.AnnotationService) *NotesController {
	return &NotesController{service: service}
}

// GetNoteFiles lists every note file with its note count
// GET /api/note-files
func (nc *NotesController) GetNoteFiles(c *gin.Context) {
	files, err := nc.service.GetNoteFiles()
	if err != nil {
		respondInternalError(c, err, "get note files")
		return
	}
	c.JSON(http.StatusOK, files)
}

// CreateNoteFile creates a named note layer
// POST /api/note-files
func (nc *NotesController) CreateNoteFile(c *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	respondMutation(c, nc.service.CreateNoteFile(req.Title), http.StatusCreated)
}

// DeleteNoteFile removes a note file and all its notes
// DELETE /api/note-files/:id
func (nc *NotesController) DeleteNoteFile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	respondMutation(c, nc.service.DeleteNoteFile(id), http.StatusOK)
}

// PersistNote writes, replaces or clears the note on a verse. Empty text
// deletes an existing note.
// PUT /api/notes
func (nc *NotesController) PersistNote(c *gin.Context) {
	var req struct {
		Book       int    `json:"book" binding:"required"`
		Chapter    int    `json:"chapter" binding:"required"`
		Verse      int    `json:"verse" binding:"required"`
		Scheme     string `json:"scheme"`
		Text       string `json:"text"`
		NoteFileID *uint  `json:"note_file_id"`
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
	respondMutation(c, nc.service.PersistNote(d, scheme, req.Text, req.NoteFileID), http.StatusOK)
}

// GetNotesForBook returns every note within a book in locus order
// GET /api/books/:number/notes
func (nc *NotesController) GetNotesForBook(c *gin.Context) {
	number, ok := parseBookParam(c, "number")
	if !ok {
		return
	}

	rows, err := nc.service.GetNotesForBook(number)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, rows)
}
