package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/scribehq/scribe/config"
	"github.com/scribehq/scribe/controllers"
	"github.com/scribehq/scribe/factory"
	"github.com/scribehq/scribe/middleware"
	"github.com/scribehq/scribe/store"
	"github.com/scribehq/scribe/utils"
)

// SetupRouter wires routes, middlewares, stores, and controllers over
// the initialized database.
func SetupRouter() *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace the default console logger with a file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	db := config.DB()
	identity := store.NewIdentity(db)
	content := store.NewContent(db)
	postFactory := factory.New(content)

	authController := controllers.NewAuthController(identity)
	postController := controllers.NewPostController(content, postFactory)

	api := r.Group("/api/v1")

	// Unauthenticated identity endpoints, rate limited
	open := api.Group("")
	open.Use(middleware.RateLimitMiddleware())
	open.POST("/setup-user/", authController.SetupUser)
	open.POST("/users/", authController.Register)
	open.POST("/login/", authController.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	protected.GET("/users/", authController.ListUsers)
	protected.GET("/me/", authController.Me)
	protected.POST("/logout/", authController.Logout)
	protected.GET("/protected/", authController.Protected)

	protected.GET("/posts/", postController.ListPosts)
	protected.POST("/posts/", postController.CreatePost)
	protected.GET("/posts/:id/", postController.GetPost)

	protected.GET("/comments/", postController.ListComments)
	protected.POST("/comments/", postController.CreateComment)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40404, "route not found")
	})

	return r
}
