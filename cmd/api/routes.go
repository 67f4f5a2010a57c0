package main

import (
	"context"
	"net/http"
	"time"

	_ "medspace-api/docs"
	"medspace-api/internal/middleware"
	"medspace-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "net/http/pprof"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupStaticRoutes()
	a.setupHealthCheck()
	a.setupAPIRoutes()
}

// setupStaticRoutes configures documentation and operational endpoints
func (a *App) setupStaticRoutes() {
	// Serve Swagger UI
	a.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Expose pprof profiling endpoints (disable in production)
	if !a.Config.IsProduction() {
		a.Router.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}

	// Expose Prometheus metrics endpoint
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// setupHealthCheck configures health check endpoint
func (a *App) setupHealthCheck() {
	a.Router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := a.DB.Ping(ctx); err != nil {
			logger.GlobalLogger.Printf("MongoDB ping failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "MongoDB unavailable"})
			return
		}

		if _, err := a.Redis.Ping(ctx).Result(); err != nil {
			logger.GlobalLogger.Printf("Redis ping failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "Redis unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	tokenAuth := middleware.TokenAuth(a.Config.JWT.Secret, a.Users)
	adminAuth := middleware.AdminBasicAuth(a.Users)

	authRoutes := a.Router.Group("/auth")
	{
		authRoutes.POST("/register", a.AuthHandler.Register)
		authRoutes.POST("/login", a.AuthHandler.Login)
		authRoutes.POST("/forgot-password", a.AuthHandler.ForgotPassword)
		authRoutes.POST("/verify-otp", a.AuthHandler.VerifyOTP)
		authRoutes.POST("/reset-password", a.AuthHandler.ResetPassword)

		if a.OAuthHandler != nil {
			authRoutes.GET("/google", a.OAuthHandler.GoogleLogin)
			authRoutes.GET("/google/callback", a.OAuthHandler.GoogleCallback)
		}
	}

	// Emergency booking needs no account
	a.Router.POST("/appointments/emergency", a.AppointmentHandler.BookEmergency)

	appointments := a.Router.Group("/appointments")
	appointments.Use(tokenAuth)
	{
		appointments.POST("", a.AppointmentHandler.BookAppointment)
		appointments.GET("", a.AppointmentHandler.ListAppointments)
		appointments.PUT("/:appointmentId", a.AppointmentHandler.UpdateAppointment)
		appointments.DELETE("/:appointmentId", a.AppointmentHandler.DeleteAppointment)
	}

	profile := a.Router.Group("/profile")
	profile.Use(tokenAuth)
	{
		profile.GET("", a.UserHandler.GetProfile)
		profile.PUT("", a.UserHandler.UpdateProfile)
	}

	a.Router.POST("/subscribe", a.NewsletterHandler.Subscribe)

	admin := a.Router.Group("/admin")
	admin.Use(adminAuth)
	{
		admin.POST("/send-mail", a.NewsletterHandler.SendMail)

		admin.GET("/users", a.UserHandler.ListUsers)
		admin.POST("/users", a.UserHandler.CreateUser)
		admin.GET("/users/:id", a.UserHandler.GetUser)
		admin.PUT("/users/:id", a.UserHandler.UpdateUser)
		admin.DELETE("/users/:id", a.UserHandler.DeleteUser)
	}
}
