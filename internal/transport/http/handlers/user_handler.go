package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/blog-platform/internal/auth"
	"github.com/example/blog-platform/internal/config"
	"github.com/example/blog-platform/internal/db"
	"github.com/example/blog-platform/internal/service"
)

type UserHandler struct {
	service     *service.UserService
	defaultPage int
}

func NewUserHandler(database *db.Database, cfg *config.Config) *UserHandler {
	return &UserHandler{service: service.NewUserService(database), defaultPage: cfg.DefaultPageSize}
}

type registerReq struct {
	Username string `json:"username" binding:"required,min=1"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=1"`
}

func (h *UserHandler) List(c *gin.Context) {
	caller, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}
	page, limit := pageParams(c, h.defaultPage)
	result, err := h.service.ListUsers(c.Request.Context(), caller, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.service.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}
