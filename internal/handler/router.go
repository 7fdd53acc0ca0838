package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mireo/fitvault/internal/middleware"
	"github.com/mireo/fitvault/internal/pkg/response"
)

type RouterDeps struct {
	Workouts     *WorkoutHandler
	Imports      *ImportHandler
	JWTSecret    []byte
	DeployWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/healthz", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))

	authGroup.POST("/workouts", deps.Workouts.Create)
	authGroup.GET("/workouts", deps.Workouts.List)
	authGroup.GET("/workouts/:id", deps.Workouts.Get)
	authGroup.DELETE("/workouts/:id", deps.Workouts.Delete)

	// Deploy and upload are throttled; a batch import is not a thing to
	// fire in a tight loop.
	deployGroup := authGroup.Group("")
	deployGroup.Use(middleware.RateLimit(deps.DeployWindow))
	deployGroup.POST("/imports", deps.Imports.Deploy)
	deployGroup.POST("/imports/upload", deps.Imports.Upload)

	authGroup.GET("/imports", deps.Imports.List)
	authGroup.GET("/imports/:id", deps.Imports.Get)
}
