package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/berean-study/berean/internal/database/verses"
	"github.com/berean-study/berean/internal/services"
	"github.com/berean-study/berean/internal/tasks"
	"github.com/berean-study/berean/internal/versification"
)

// verseSelection is the request shape shared by assign/unassign and note
// persistence: a list of verse positions plus the scheme they are
// expressed in.
type verseSelection struct {
	Scheme string              `json:"scheme"`
	Verses []verses.Descriptor `json:"verses" binding:"required"`
}

func (s verseSelection) scheme() (versification.Scheme, bool) {
	scheme := versification.Scheme(s.Scheme)
	if s.Scheme == "" {
		scheme = versification.English
	}
	return scheme, scheme.Valid()
}

type TagsController struct {
	service    *services.AnnotationService
	taskClient *tasks.Client
}

func NewTagsController(service *services.AnnotationService, taskClient *tasks.Client) *TagsController {
	return &TagsController{service: service, taskClient: taskClient}
}

// GetAllTags returns all tags with their assignment statistics
// GET /api/tags?book=N&recent=true&stats_only=true
func (tc *TagsController) GetAllTags(c *gin.Context) {
	book, ok := parseQueryBook(c, "book")
	if !ok {
		return
	}
	recent := c.Query("recent") == "true"
	statsOnly := c.Query("stats_only") == "true"

	c.JSON(http.StatusOK, tc.service.GetAllTags(book, recent, statsOnly))
}

// GetTagCount returns the tag count, book-scoped when a book is given
// GET /api/tags/count?book=N
func (tc *TagsController) GetTagCount(c *gin.Context) {
	book, ok := parseQueryBook(c, "book")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": tc.service.GetTagCount(book)})
}

// GetFrequencyBands returns the two frequency bands for a book's tags
// GET /api/tags/frequency?book=N
func (tc *TagsController) GetFrequencyBands(c *gin.Context) {
	book, ok := parseQueryBook(c, "book")
	if !ok {
		return
	}
	if book == 0 {
		respondBadRequest(c, "book is required")
		return
	}
	c.JSON(http.StatusOK, tc.service.FrequencyBands(book))
}

// CreateTag creates a new tag
// POST /api/tags
func (tc *TagsController) CreateTag(c *gin.Context) {
	var req struct {
		Title        string `json:"title" binding:"required"`
		BibleBookID  *uint  `json:"bible_book_id"`
		WithNoteFile bool   `json:"with_note_file"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	respondMutation(c, tc.service.CreateTag(req.Title, req.BibleBookID, req.WithNoteFile), http.StatusCreated)
}

// RenameTag updates a tag's title
// PATCH /api/tags/:id
func (tc *TagsController) RenameTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	respondMutation(c, tc.service.RenameTag(id, req.Title), http.StatusOK)
}

// UpdateTagGroups adjusts a tag's group memberships
// POST /api/tags/:id/groups
func (tc *TagsController) UpdateTagGroups(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Add    []uint `json:"add"`
		Remove []uint `json:"remove"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	respondMutation(c, tc.service.UpdateTagGroups(id, req.Add, req.Remove), http.StatusOK)
}

// DeleteTag removes a tag and its associations
// DELETE /api/tags/:id?delete_note_file=true
func (tc *TagsController) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	deleteNoteFile := c.Query("delete_note_file") == "true"

	respondMutation(c, tc.service.DeleteTag(id, deleteNoteFile), http.StatusOK)
}

// AssignTag attaches a tag to a list of verses
// POST /api/tags/:id/assign
func (tc *TagsController) AssignTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req verseSelection
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "verses are required")
		return
	}
	scheme, valid := req.scheme()
	if !valid {
		respondBadRequest(c, "unknown versification scheme")
		return
	}

	respondMutation(c, tc.service.AssignTag(id, req.Verses, scheme), http.StatusOK)
}

// UnassignTag detaches a tag from a list of verses
// POST /api/tags/:id/unassign
func (tc *TagsController) UnassignTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req verseSelection
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "verses are required")
		return
	}
	scheme, valid := req.scheme()
	if !valid {
		respondBadRequest(c, "unknown versification scheme")
		return
	}

	respondMutation(c, tc.service.UnassignTag(id, req.Verses, scheme), http.StatusOK)
}

// AssignTagRange enqueues a background task tagging a whole chapter range.
// Requires the task queue to be enabled.
// POST /api/tags/:id/assign-range
func (tc *TagsController) AssignTagRange(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if tc.taskClient == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is not enabled")
		return
	}

	var req struct {
		Book        int    `json:"book" binding:"required"`
		FromChapter int    `json:"from_chapter"`
		ToChapter   int    `json:"to_chapter"`
		Scheme      string `json:"scheme"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "book is required")
		return
	}
	if req.Scheme == "" {
		req.Scheme = string(versification.English)
	}
	if !versification.Scheme(req.Scheme).Valid() {
		respondBadRequest(c, "unknown versification scheme")
		return
	}

	task := tasks.TagRangeTask{
		TagID:       id,
		Book:        req.Book,
		FromChapter: req.FromChapter,
		ToChapter:   req.ToChapter,
		Scheme:      req.Scheme,
	}
	ids, err := tc.taskClient.Add(task).Save()
	if err != nil {
		respondInternalError(c, err, "enqueue tag range task")
		return
	}
	log.Printf("Enqueued TagRangeTask with ID: %s", ids[0])

	respondAccepted(c, "range tagging started", gin.H{"task_id": ids[0]})
}

// GetTagNote returns the tag's introduction/conclusion note
// GET /api/tags/:id/note
func (tc *TagsController) GetTagNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	note, err := tc.service.GetTagNote(id)
	if err != nil {
		respondInternalError(c, err, "get tag note")
		return
	}
	if note == nil {
		respondNotFound(c, "tag note")
		return
	}
	c.JSON(http.StatusOK, note)
}

// PersistIntroduction writes the tag note introduction
// PUT /api/tags/:id/note/introduction
func (tc *TagsController) PersistIntroduction(c *gin.Context) {
	tc.persistTagNoteField(c, tc.service.PersistIntroduction)
}

// PersistConclusion writes the tag note conclusion
// PUT /api/tags/:id/note/conclusion
func (tc *TagsController) PersistConclusion(c *gin.Context) {
	tc.persistTagNoteField(c, tc.service.PersistConclusion)
}

func (tc *TagsController) persistTagNoteField(c *gin.Context, persist func(uint, string) services.MutationResult) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Empty text is valid: it clears the field.
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	respondMutation(c, persist(id, req.Text), http.StatusOK)
}
