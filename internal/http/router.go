package http

import (
	"github.com/gin-gonic/gin"

	"github.com/berean-study/berean/internal/database"
	"github.com/berean-study/berean/internal/services"
	"github.com/berean-study/berean/internal/tasks"
	"github.com/berean-study/berean/internal/translations"
)

// RouterConfig carries all router dependencies, improving testability
// and reducing parameter count.
type RouterConfig struct {
	Database     *database.Database
	Service      *services.AnnotationService
	Translations translations.Provider
	TaskClient   *tasks.Client
	Version      string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	tagsController := NewTagsController(cfg.Service, cfg.TaskClient)
	tagGroupsController := NewTagGroupsController(cfg.Service)
	notesController := NewNotesController(cfg.Service)
	versesController := NewVersesController(cfg.Service, cfg.Translations)
	metaController := NewMetaController(cfg.Service)
	tasksController := NewTasksController(cfg.TaskClient)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Tag endpoints
	router.GET("/api/tags", tagsController.GetAllTags)
	router.GET("/api/tags/count", tagsController.GetTagCount)
	router.GET("/api/tags/frequency", tagsController.GetFrequencyBands)
	router.POST("/api/tags", tagsController.CreateTag)
	router.PATCH("/api/tags/:id", tagsController.RenameTag)
	router.DELETE("/api/tags/:id", tagsController.DeleteTag)
	router.POST("/api/tags/:id/groups", tagsController.UpdateTagGroups)
	router.POST("/api/tags/:id/assign", tagsController.AssignTag)
	router.POST("/api/tags/:id/unassign", tagsController.UnassignTag)
	router.POST("/api/tags/:id/assign-range", tagsController.AssignTagRange)
	router.GET("/api/tags/:id/note", tagsController.GetTagNote)
	router.PUT("/api/tags/:id/note/introduction", tagsController.PersistIntroduction)
	router.PUT("/api/tags/:id/note/conclusion", tagsController.PersistConclusion)

	// Tag group endpoints
	router.GET("/api/tag-groups", tagGroupsController.GetAllTagGroups)
	router.POST("/api/tag-groups", tagGroupsController.CreateTagGroup)
	router.PATCH("/api/tag-groups/:id", tagGroupsController.RenameTagGroup)
	router.DELETE("/api/tag-groups/:id", tagGroupsController.DeleteTagGroup)
	router.GET("/api/tag-groups/:id/tags", tagGroupsController.GetTagsInGroup)

	// Note endpoints
	router.GET("/api/note-files", notesController.GetNoteFiles)
	router.POST("/api/note-files", notesController.CreateNoteFile)
	router.DELETE("/api/note-files/:id", notesController.DeleteNoteFile)
	router.PUT("/api/notes", notesController.PersistNote)

	// Verse and book endpoints
	router.GET("/api/books", versesController.GetBooks)
	router.POST("/api/verses/resolve", versesController.ResolveVerse)
	router.GET("/api/books/:number/verse-tags", versesController.GetVerseTagsForBook)
	router.GET("/api/books/:number/notes", notesController.GetNotesForBook)

	// Translation endpoints
	router.GET("/api/translations", versesController.GetTranslations)
	router.GET("/api/translations/:id/books/:number", versesController.GetTranslationBook)

	// Background job endpoints
	router.GET("/api/tasks/:id", tasksController.GetTaskStatus)

	// Change ledger endpoint
	router.GET("/api/meta/last-update", metaController.GetLastUpdate)

	return router
}
