package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"medspace-api/internal/handlers"
	"medspace-api/internal/mailer"
	"medspace-api/internal/middleware"
	"medspace-api/internal/repositories"
	"medspace-api/internal/services"
	"medspace-api/pkg/cache"
	"medspace-api/pkg/config"
	"medspace-api/pkg/database"
	"medspace-api/pkg/logger"
	"medspace-api/pkg/metrics"
	"medspace-api/pkg/oauth"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// App represents the application structure
type App struct {
	Config             *config.Config
	Router             *gin.Engine
	DB                 *database.MongoDatabase
	Redis              *redis.Client
	Mail               *mailer.Dispatcher
	RateLimiter        *middleware.RateLimiter
	Users              repositories.UserRepository
	AuthHandler        *handlers.AuthHandler
	OAuthHandler       *handlers.OAuthHandler
	AppointmentHandler *handlers.AppointmentHandler
	UserHandler        *handlers.UserHandler
	NewsletterHandler  *handlers.NewsletterHandler
	Server             *http.Server

	stopBackground context.CancelFunc
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	app := &App{Config: cfg}

	// Initialize infrastructure
	app.initializeDatabase()
	app.initializeCache()
	app.initializeMetrics()
	app.initializeRateLimiter()
	app.initializeMailer()

	// Initialize business logic
	app.initializeDependencies()

	// Initialize web layer
	app.initializeRouter()

	return app
}

// initialize the database connection and indexes
func (a *App) initializeDatabase() {
	db, err := database.InitDB(a.Config)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize database: %v", err)
		os.Exit(1)
	}
	a.DB = db

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.EnsureIndexes(ctx); err != nil {
		logger.GlobalLogger.Errorf("Failed to create indexes: %v", err)
		os.Exit(1)
	}
}

// initialize the Redis cache
func (a *App) initializeCache() {
	redisCfg, err := cache.NewRedisConfig(a.Config)
	if err != nil {
		logger.GlobalLogger.Errorf("Invalid Redis configuration: %v", err)
		os.Exit(1)
	}
	client, err := cache.InitRedis(redisCfg)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize Redis: %v", err)
		os.Exit(1)
	}
	a.Redis = client
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// initialize the rate limiter and its idle-client sweep
func (a *App) initializeRateLimiter() {
	ctx, cancel := context.WithCancel(context.Background())
	a.stopBackground = cancel

	a.RateLimiter = middleware.NewRateLimiter(
		middleware.PerMinute(a.Config.RateLimit.RequestsPerMinute),
		a.Config.RateLimit.Burst,
	)
	go a.RateLimiter.Cleanup(ctx, time.Minute)
}

// start the background mail workers
func (a *App) initializeMailer() {
	a.Mail = mailer.NewDispatcher(mailer.NewSender(a.Config), mailer.DispatcherConfig{
		Workers:     a.Config.Mail.Workers,
		QueueSize:   a.Config.Mail.QueueSize,
		SendTimeout: a.Config.Mail.SendTimeout,
	})
	a.Mail.Start()
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	store := cache.NewStore(a.Redis)

	// repositories
	userRepo := repositories.NewUserRepository(a.DB)
	newsletterRepo := repositories.NewNewsletterRepository(a.DB)
	resetStore := repositories.NewResetStore(store)
	profileCache := repositories.NewProfileCache(store)
	a.Users = userRepo

	// services
	authService := services.NewAuthService(userRepo, resetStore, profileCache, a.Mail, a.Config)
	appointmentService := services.NewAppointmentService(userRepo, profileCache, a.Mail)
	userService := services.NewUserService(userRepo, profileCache)
	newsletterService := services.NewNewsletterService(newsletterRepo, a.Mail, mailer.NewSender(a.Config), a.Config)

	// handlers
	a.AuthHandler = handlers.NewAuthHandler(authService)
	a.AppointmentHandler = handlers.NewAppointmentHandler(appointmentService)
	a.UserHandler = handlers.NewUserHandler(userService)
	a.NewsletterHandler = handlers.NewNewsletterHandler(newsletterService)
	if a.Config.GoogleOAuthEnabled() {
		a.OAuthHandler = handlers.NewOAuthHandler(authService, oauth.NewGoogleProvider(a.Config),
			a.Config.OAuth.FrontendRedirect, a.Config.IsProduction())
	} else {
		logger.GlobalLogger.Warnf("GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET not set, Google sign-in disabled")
	}
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	if a.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup(ctx context.Context) {
	if a.stopBackground != nil {
		a.stopBackground()
	}
	if err := a.Mail.Shutdown(ctx); err != nil {
		logger.GlobalLogger.Errorf("Mail queue not drained before shutdown: %v", err)
	}
	a.DB.Close()
	cache.CloseRedis(a.Redis)
}
