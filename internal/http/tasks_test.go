package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berean-study/berean/internal/database"
	"github.com/berean-study/berean/internal/database/meta"
	"github.com/berean-study/berean/internal/database/notes"
	"github.com/berean-study/berean/internal/database/taggroups"
	"github.com/berean-study/berean/internal/database/tags"
	"github.com/berean-study/berean/internal/database/verses"
	"github.com/berean-study/berean/internal/services"
	"github.com/berean-study/berean/internal/tasks"
)

// setupRouterWithQueue wires a real task queue but never starts its
// workers, so enqueued jobs stay pending.
func setupRouterWithQueue(t *testing.T) (*gin.Engine, *services.AnnotationService, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpDir, err := os.MkdirTemp("", "http_tasks_test")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	ledger := meta.NewRepository(db.DB)
	versesRepo := verses.NewRepository(db.DB)
	tagsRepo := tags.NewRepository(db.DB, versesRepo, ledger)
	groupsRepo := taggroups.NewRepository(db.DB, ledger)
	notesRepo := notes.NewRepository(db.DB, versesRepo, ledger)
	service := services.NewAnnotationService(tagsRepo, groupsRepo, notesRepo, versesRepo, ledger, nil)

	queue, err := tasks.NewClient(dbPath, tasks.DefaultConfig())
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Database:   db,
		Service:    service,
		TaskClient: queue,
		Version:    "test",
	})

	cleanup := func() {
		queue.Close()
		db.Close()
		os.RemoveAll(tmpDir)
	}
	return router, service, cleanup
}

func TestTaskEndpoints(t *testing.T) {
	t.Run("assign range enqueues and reports pending", func(t *testing.T) {
		router, service, cleanup := setupRouterWithQueue(t)
		defer cleanup()

		created := service.CreateTag("Greeting", nil, false)
		require.True(t, created.Success)
		id := tagID(t, created)

		w := doJSON(router, "POST", fmt.Sprintf("/api/tags/%d/assign-range", id), `{"book":57}`)
		require.Equal(t, http.StatusAccepted, w.Code)

		var resp struct {
			Data struct {
				TaskID string `json:"task_id"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Data.TaskID)

		w = doJSON(router, "GET", "/api/tasks/"+resp.Data.TaskID, "")
		require.Equal(t, http.StatusOK, w.Code)

		var status struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, resp.Data.TaskID, status.ID)
		assert.Equal(t, "pending", status.Status)
	})

	t.Run("unknown task is not found", func(t *testing.T) {
		router, _, cleanup := setupRouterWithQueue(t)
		defer cleanup()

		w := doJSON(router, "GET", "/api/tasks/no-such-task", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("disabled queue reports unavailable", func(t *testing.T) {
		router, _, cleanup := setupRouter(t)
		defer cleanup()

		w := doJSON(router, "GET", "/api/tasks/anything", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
