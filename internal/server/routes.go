package server

import (
	"github.com/labstack/echo/v4"

	"github.com/kavia-common/gym-backend/internal/auth"
	"github.com/kavia-common/gym-backend/internal/handlers"
	"github.com/kavia-common/gym-backend/internal/models"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	membershipHandler *handlers.MembershipHandler,
	trainerHandler *handlers.TrainerHandler,
	classHandler *handlers.ClassHandler,
	bookingHandler *handlers.BookingHandler,
	dashboardHandler *handlers.DashboardHandler,
	wsHandler *handlers.WSHandler,
	authMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
) {
	adminOnly := auth.RequireRole(models.RoleAdmin)

	e.GET("/health", handlers.Health)
	e.GET("/ws/echo", wsHandler.Echo)
	e.GET("/docs/websocket", handlers.Usage)

	api := e.Group("/api")

	authGroup := api.Group("/auth", authRateLimiter)
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	plans := api.Group("/plans")
	plans.GET("", membershipHandler.ListPlans)
	plans.POST("", membershipHandler.CreatePlan, authMiddleware, adminOnly)
	plans.PUT("/:planId", membershipHandler.UpdatePlan, authMiddleware, adminOnly)
	plans.DELETE("/:planId", membershipHandler.DeletePlan, authMiddleware, adminOnly)

	memberships := api.Group("/memberships", authMiddleware)
	memberships.GET("", membershipHandler.List)
	memberships.POST("", membershipHandler.Create, adminOnly)
	memberships.POST("/:membershipId/cancel", membershipHandler.Cancel, adminOnly)

	trainers := api.Group("/trainers")
	trainers.GET("", trainerHandler.List)
	trainers.GET("/:trainerId", trainerHandler.Get)
	trainers.GET("/:trainerId/classes", trainerHandler.Classes)
	trainers.POST("", trainerHandler.Create, authMiddleware, adminOnly)
	trainers.PUT("/:trainerId", trainerHandler.Update, authMiddleware)
	trainers.DELETE("/:trainerId", trainerHandler.Delete, authMiddleware, adminOnly)

	classes := api.Group("/classes")
	classes.GET("", classHandler.List)
	classes.GET("/:classId", classHandler.Get)
	classes.POST("", classHandler.Create, authMiddleware, adminOnly)
	classes.PUT("/:classId", classHandler.Update, authMiddleware, adminOnly)
	classes.DELETE("/:classId", classHandler.Delete, authMiddleware, adminOnly)

	bookings := api.Group("/bookings", authMiddleware)
	bookings.GET("", bookingHandler.List)
	bookings.GET("/:bookingId", bookingHandler.Get)
	bookings.POST("", bookingHandler.Create)
	bookings.POST("/:bookingId/cancel", bookingHandler.Cancel)
	bookings.POST("/attendance", bookingHandler.MarkAttendance, adminOnly)

	dashboard := api.Group("/dashboard", authMiddleware)
	dashboard.GET("/admin", dashboardHandler.Admin, adminOnly)
	dashboard.GET("/member", dashboardHandler.Member)
	dashboard.GET("/trainer", dashboardHandler.Trainer, auth.RequireRole(models.RoleTrainer))
}
