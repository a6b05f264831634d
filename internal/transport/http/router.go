package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/blog-platform/internal/auth"
	"github.com/example/blog-platform/internal/cache"
	"github.com/example/blog-platform/internal/config"
	"github.com/example/blog-platform/internal/db"
	"github.com/example/blog-platform/internal/search"
	"github.com/example/blog-platform/internal/transport/http/handlers"
)

type Router = *gin.Engine

// NewRouter wires every API route. redisClient and es may be nil, which
// disables logout revocation and full-text search respectively.
func NewRouter(cfg *config.Config, database *db.Database, redisClient *cache.RedisClient, es *search.Elastic) Router {
	if mode := gin.Mode(); mode == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	var denylist auth.Denylist
	if redisClient != nil {
		denylist = redisClient
	}
	tokens := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour, denylist)
	authRequired := tokens.Middleware()

	posts := handlers.NewPostHandler(database, es, cfg)
	comments := handlers.NewCommentHandler(database)
	tags := handlers.NewTagHandler(database)
	users := handlers.NewUserHandler(database, cfg)
	authH := handlers.NewAuthHandler(database, tokens)

	api := r.Group("/api")

	api.GET("/posts", posts.List)
	api.POST("/posts", authRequired, posts.Create)
	api.GET("/posts/search", posts.Search)
	api.GET("/posts/slug/:slug", posts.GetBySlug)
	api.GET("/posts/:id", posts.Get)
	api.PUT("/posts/:id", authRequired, posts.Update)
	api.DELETE("/posts/:id", authRequired, posts.Delete)

	api.GET("/comments", comments.List)
	api.POST("/comments", authRequired, comments.Create)

	api.GET("/tags", tags.List)

	api.GET("/users", authRequired, users.List)
	api.POST("/users", users.Register)

	api.POST("/auth/login", authH.Login)
	api.POST("/auth/logout", authRequired, authH.Logout)

	return r
}
