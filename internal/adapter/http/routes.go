package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/handlers"
	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/middleware"
)

type Handlers struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Task    *handlers.TaskHandler
	Request *handlers.RequestHandler
	Tag     *handlers.TagHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers, jwtSecret []byte) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)
		api.POST("/auth/login", h.Auth.Login)
	}

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(jwtSecret))
	{
		authed.GET("/tasks", h.Task.ListTasks)
		authed.GET("/tasks/:id", h.Task.GetTask)
		authed.PUT("/tasks/:id", h.Task.SubmitWork)
		authed.PUT("/tasks/:id/return", h.Task.ReturnToPending)
		authed.PUT("/tasks/:id/submit-file", h.Task.SubmitWorkWithFile)
		authed.PUT("/tasks/:id/complete", h.Task.MarkComplete)
		authed.POST("/tasks/prioritize", h.Task.Prioritize)
		authed.GET("/users", h.Task.ListUsers)
		authed.GET("/tags", h.Tag.ListTags)

		authed.POST("/tasks/:id/extension-request", h.Request.FileExtensionRequest)
		authed.POST("/tasks/:id/cancellation-request", h.Request.FileCancellationRequest)
	}

	admin := authed.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/tasks", h.Task.CreateTask)
		admin.PUT("/tasks/:id/rework", h.Task.RequestRework)
		admin.DELETE("/tasks/:id", h.Task.DeleteTask)
		admin.POST("/tasks/:id/reset-reminder", h.Task.ResetReminder)

		admin.GET("/extension-requests", h.Request.ListExtensionRequests)
		admin.PUT("/tasks/:id/extension/approve", h.Request.ApproveExtension)
		admin.PUT("/tasks/:id/extension/decline", h.Request.DeclineExtension)

		admin.GET("/cancellation-requests", h.Request.ListCancellationRequests)
		admin.PUT("/tasks/:id/cancellation/approve", h.Request.ApproveCancellation)
		admin.PUT("/tasks/:id/cancellation/decline", h.Request.DeclineCancellation)

		admin.POST("/tags", h.Tag.AddTag)
		admin.DELETE("/tags/:value", h.Tag.RemoveTag)
	}
}
