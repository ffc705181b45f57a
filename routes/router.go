package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"miniblog/config"
	"miniblog/controllers"
	"miniblog/middleware"
	"miniblog/utils"
)

// SetupRouter wires routes, middlewares, and controllers around the explicit
// database handle and optional cache.
func SetupRouter(cfg config.AppConfig, db *gorm.DB, cache *utils.Cache) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(utils.GinLogger())
	r.Use(utils.GinRecovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", middleware.TokenHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
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
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db, cfg)
	postController := controllers.NewPostController(db, cache)

	secret := []byte(cfg.JWTSecret)
	authRequired := middleware.AuthRequired(secret)
	rateLimited := middleware.RateLimit(cfg.RateLimitPerMinute)

	api := r.Group("/api")

	api.POST("/users", rateLimited, authController.Register)
	api.POST("/auth", rateLimited, authController.Login)

	api.GET("/posts", postController.ListPosts)
	api.GET("/posts/:id", postController.GetPost)
	api.POST("/posts", authRequired, postController.CreatePost)
	api.PUT("/posts/:id", authRequired, postController.UpdatePost)
	api.DELETE("/posts/:id", authRequired, postController.DeletePost)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Msg(ctx, http.StatusNotFound, "Route not found")
	})

	return r
}
