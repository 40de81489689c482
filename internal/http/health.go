package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/berean-study/berean/internal/canon"
	"github.com/berean-study/berean/internal/database"
	"github.com/berean-study/berean/internal/entities"
)

// HealthResponse reports service liveness plus the state of the study
// database behind it.
type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// Status reports liveness. Beyond the connection ping it verifies the
// schema is migrated by counting the seeded book registry: a reachable
// but unmigrated store cannot serve annotations and reports unhealthy.
func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	fail := func(check string, err error) {
		checks[check] = "error: " + err.Error()
		status = "unhealthy"
	}

	if h.db == nil {
		checks["database"] = "not configured"
	} else if sqlDB, err := h.db.DB.DB(); err != nil {
		fail("database", err)
	} else if err := sqlDB.Ping(); err != nil {
		fail("database", err)
	} else {
		checks["database"] = "ok"

		var books int64
		if err := h.db.DB.Model(&entities.BibleBook{}).Count(&books).Error; err != nil {
			fail("schema", err)
		} else if int(books) != len(canon.Books) {
			fail("schema", fmt.Errorf("book registry has %d of %d books", books, len(canon.Books)))
		} else {
			checks["schema"] = "ok"
		}
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
