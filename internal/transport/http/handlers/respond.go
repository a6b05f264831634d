package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/blog-platform/internal/service"
)

// respondError maps domain errors onto the status taxonomy: 400 invalid
// input, 401 bad credentials, 403 forbidden, 404 missing row, 500 for
// everything else with a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// pageParams reads 1-indexed page and limit query parameters, falling back
// to page 1 and the configured default limit.
func pageParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page = intQuery(c, "page", 1)
	if page < 1 {
		page = 1
	}
	limit = intQuery(c, "limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

func intQuery(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}
