package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/managio-dev/managio/internal/handlers"
	"github.com/managio-dev/managio/internal/middleware"
	"github.com/managio-dev/managio/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.POST("/logout", middleware.AuthMiddleware(), handlers.LogoutUser)
			auth.PATCH("/account", middleware.AuthMiddleware(), handlers.UpdateUser)
			auth.DELETE("/account", middleware.AuthMiddleware(), handlers.DeleteUser)
		}

		clients := api.Group("/clients", middleware.AuthMiddleware())
		{
			clients.POST("", handlers.CreateClient)
			clients.GET("", handlers.ListClients)
			clients.GET("/:id", handlers.GetClient)
			clients.PATCH("/:id", handlers.UpdateClient)
			clients.DELETE("/:id", handlers.DeleteClient)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:id", handlers.GetProject)
			projects.PATCH("/:id", handlers.UpdateProject)
			projects.DELETE("/:id", handlers.DeleteProject)
		}

		tasks := api.Group("/tasks", middleware.AuthMiddleware())
		{
			tasks.POST("", handlers.CreateTask)
			tasks.GET("", handlers.ListTasks)
			tasks.GET("/:id", handlers.GetTask)
			tasks.PATCH("/:id", handlers.UpdateTask)
			tasks.DELETE("/:id", handlers.DeleteTask)
		}

		invoices := api.Group("/invoices", middleware.AuthMiddleware())
		{
			invoices.POST("", handlers.CreateInvoice)
			invoices.GET("", handlers.ListInvoices)
			invoices.GET("/:id", handlers.GetInvoice)
			invoices.POST("/:id/send", handlers.SendInvoice)
			invoices.POST("/:id/pay", handlers.PayInvoice)
			invoices.DELETE("/:id", handlers.DeleteInvoice)
		}

		timeLogs := api.Group("/time-logs", middleware.AuthMiddleware())
		{
			timeLogs.POST("", handlers.CreateTimeLog)
			timeLogs.GET("", handlers.ListTimeLogs)
			timeLogs.PATCH("/:id", handlers.UpdateTimeLog)
			timeLogs.DELETE("/:id", handlers.DeleteTimeLog)
		}

		timer := api.Group("/timer", middleware.AuthMiddleware())
		{
			timer.GET("", handlers.GetTimer)
			timer.POST("/start", handlers.StartTimer)
			timer.POST("/stop", handlers.StopTimer)
			timer.POST("/reset", handlers.ResetTimer)
		}

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", handlers.ListNotifications)
			notifications.POST("/:id/read", handlers.MarkNotificationRead)
			notifications.POST("/read-all", handlers.MarkAllNotificationsRead)
			notifications.DELETE("/:id", handlers.DeleteNotification)
			notifications.DELETE("", handlers.DeleteAllNotifications)
		}

		preferences := api.Group("/notification-preferences", middleware.AuthMiddleware())
		{
			preferences.GET("", handlers.GetPreferences)
			preferences.PUT("", handlers.UpdatePreferences)
		}

		departments := api.Group("/departments", middleware.AuthMiddleware())
		{
			departments.GET("", handlers.ListDepartments)
			departments.POST("", middleware.RequireRole(types.RoleOwner, types.RoleAdmin), handlers.CreateDepartment)
			departments.PATCH("/:id", middleware.RequireRole(types.RoleOwner, types.RoleAdmin), handlers.UpdateDepartment)
			departments.DELETE("/:id", middleware.RequireRole(types.RoleOwner, types.RoleAdmin), handlers.DeleteDepartment)
		}

		team := api.Group("/team", middleware.AuthMiddleware())
		{
			team.GET("", handlers.ListTeam)
			team.POST("/invite", middleware.RequireRole(types.RoleOwner, types.RoleAdmin), handlers.InviteMember)
			team.PATCH("/:id", middleware.RequireRole(types.RoleOwner, types.RoleAdmin), handlers.UpdateMember)
			team.DELETE("/:id", middleware.RequireRole(types.RoleOwner, types.RoleAdmin), handlers.RemoveMember)
		}

		templates := api.Group("/templates", middleware.AuthMiddleware())
		{
			templates.GET("", handlers.ListTemplates)
			templates.POST("", handlers.CreateTemplate)
			templates.PATCH("/:id", handlers.UpdateTemplate)
			templates.DELETE("/:id", handlers.DeleteTemplate)
		}

		organization := api.Group("/organization", middleware.AuthMiddleware())
		{
			organization.GET("", handlers.GetOrganization)
			organization.PATCH("", middleware.RequireRole(types.RoleOwner, types.RoleAdmin), handlers.UpdateOrganization)
		}

		api.GET("/calendar", middleware.AuthMiddleware(), handlers.GetCalendar)
		api.GET("/dashboard", middleware.AuthMiddleware(), handlers.GetDashboard)
	}

	return r
}
