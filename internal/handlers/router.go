package handlers

import (
	"project-tracker/internal/config"
	"project-tracker/internal/middleware"
	"project-tracker/internal/monitoring"
	"project-tracker/internal/services"
	"project-tracker/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterDeps gathers everything the HTTP surface needs.
type RouterDeps struct {
	Config          *config.Config
	Store           store.Store
	RegisterService services.RegisterService
	AuthService     services.AuthService
	ProjectService  services.ProjectService
	TaskService     services.TaskService
	ReportService   services.ReportService
	HealthChecks    map[string]monitoring.HealthCheckFunc
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.Default())
	router.Use(monitoring.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware(deps.Config.RateLimit))

	registerHandler := NewRegisterHandler(deps.RegisterService)
	authHandler := NewAuthHandler(deps.AuthService)
	projectHandler := NewProjectHandler(deps.ProjectService)
	taskHandler := NewTaskHandler(deps.TaskService)
	reportHandler := NewReportHandler(deps.ReportService)

	router.GET("/health", monitoring.HealthHandler(deps.HealthChecks))
	router.GET("/metrics", monitoring.MetricsHandler)

	api := router.Group("/api")
	api.POST("/register", registerHandler.Registration)
	api.POST("/login", authHandler.Login)
	api.POST("/refresh", authHandler.Refresh)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(deps.Store, deps.Config.Auth.JWTSecret))
	authed.POST("/logout", authHandler.Logout)
	authed.GET("/user/role", authHandler.Role)
	authed.GET("/projects", projectHandler.ListProjects)
	authed.POST("/projects", projectHandler.CreateProject)
	authed.GET("/projects/:id", projectHandler.GetProject)
	authed.POST("/projects/:id/tasks", taskHandler.CreateTask)
	authed.PUT("/projects/:id/roles", projectHandler.SetProjectRole)
	authed.GET("/tasks", taskHandler.GetTasks)
	authed.GET("/tasks/:id", taskHandler.GetTaskByID)
	authed.PUT("/tasks/:id", taskHandler.UpdateTask)
	authed.DELETE("/tasks/:id", taskHandler.DeleteTask)
	authed.GET("/reports", reportHandler.GetReport)

	return router
}
