package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/berean-study/berean/internal/services"
)

type TagGroupsController struct {
	service *services.AnnotationService
}

func NewTagGroupsController(service *services.AnnotationService) *TagGroupsController {
	return &TagGroupsController{service: service}
}

// GetAllTagGroups lists every group with its member count
// GET /api/tag-groups
func (tgc *TagGroupsController) GetAllTagGroups(c *gin.Context) {
	groups, err := tgc.service.GetAllTagGroups()
	if err != nil {
		respondInternalError(c, err, "get all tag groups")
		return
	}
	c.JSON(http.StatusOK, groups)
}

// CreateTagGroup creates a new group
// POST /api/tag-groups
func (tgc *TagGroupsController) CreateTagGroup(c *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	respondMutation(c, tgc.service.CreateTagGroup(req.Title), http.StatusCreated)
}

// RenameTagGroup updates a group's title
// PATCH /api/tag-groups/:id
func (tgc *TagGroupsController) RenameTagGroup(c *gin.Context) {
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

	respondMutation(c, tgc.service.RenameTagGroup(id, req.Title), http.StatusOK)
}

// DeleteTagGroup removes a group and its memberships
// DELETE /api/tag-groups/:id
func (tgc *TagGroupsController) DeleteTagGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	respondMutation(c, tgc.service.DeleteTagGroup(id), http.StatusOK)
}

// GetTagsInGroup lists the member tags of a group
// GET /api/tag-groups/:id/tags
func (tgc *TagGroupsController) GetTagsInGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tags, err := tgc.service.GetTagsInGroup(id)
	if err != nil {
		respondInternalError(c, err, "get tags in group")
		return
	}
	c.JSON(http.StatusOK, tags)
}
