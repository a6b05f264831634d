package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/blog-platform/internal/auth"
	"github.com/example/blog-platform/internal/db"
	"github.com/example/blog-platform/internal/service"
)

type CommentHandler struct {
	service *service.CommentService
}

func NewCommentHandler(database *db.Database) *CommentHandler {
	return &CommentHandler{service: service.NewCommentService(database)}
}

type createCommentReq struct {
	Content  string `json:"content" binding:"required,min=1"`
	PostID   uint   `json:"postId" binding:"required"`
	ParentID *uint  `json:"parentId"`
}

func (h *CommentHandler) List(c *gin.Context) {
	postID, err := strconv.Atoi(c.Query("postId"))
	if err != nil || postID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postId is required"})
		return
	}
	comments, err := h.service.ListForPost(c.Request.Context(), uint(postID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) Create(c *gin.Context) {
	caller, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}
	var req createCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment, err := h.service.CreateComment(c.Request.Context(), caller, service.CreateCommentInput{
		Content:  req.Content,
		PostID:   req.PostID,
		ParentID: req.ParentID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
