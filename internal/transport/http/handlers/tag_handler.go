package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/blog-platform/internal/db"
	"github.com/example/blog-platform/internal/service"
)

type TagHandler struct {
	service *service.TagService
}

func NewTagHandler(database *db.Database) *TagHandler {
	return &TagHandler{service: service.NewTagService(database)}
}

func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.service.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}
