package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/berean-study/berean/internal/services"
)

type MetaController struct {
	service *services.AnnotationService
}

func NewMetaController(service *services.AnnotationService) *MetaController {
	return &MetaController{service: service}
}

// GetLastUpdate reports when the store was last mutated; null until the
// first mutation
// GET /api/meta/last-update
func (mc *MetaController) GetLastUpdate(c *gin.Context) {
	lastUpdate, err := mc.service.GetLastUpdate()
	if err != nil {
		respondInternalError(c, err, "get last update")
		return
	}

	var formatted *string
	if lastUpdate != nil {
		s := lastUpdate.Format(time.RFC3339)
		formatted = &s
	}
	c.JSON(http.StatusOK, gin.H{"last_modified_at": formatted})
}
