package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/mzohdy/northstar/internal/api/handlers"
	"github.com/mzohdy/northstar/internal/api/middleware"
	"github.com/mzohdy/northstar/internal/api/routes"
	"github.com/mzohdy/northstar/internal/assistant"
	"github.com/mzohdy/northstar/internal/domain/contact"
	"github.com/mzohdy/northstar/internal/domain/events"
	"github.com/mzohdy/northstar/internal/domain/finance"
	"github.com/mzohdy/northstar/internal/domain/project"
	"github.com/mzohdy/northstar/internal/domain/task"
	"github.com/mzohdy/northstar/internal/infrastructure/cache"
	"github.com/mzohdy/northstar/internal/infrastructure/persistence/postgres/connection"
	"github.com/mzohdy/northstar/internal/infrastructure/persistence/postgres/migrations"
	"github.com/mzohdy/northstar/internal/infrastructure/scheduler"
	"github.com/mzohdy/northstar/pkg/config"
	"github.com/mzohdy/northstar/pkg/dates"
	"github.com/mzohdy/northstar/pkg/logger"
	"github.com/mzohdy/northstar/pkg/security/auth"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	location, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		log.Fatal("Invalid timezone in configuration",
			zap.String("timezone", cfg.Server.Timezone), zap.Error(err))
	}

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Connect to database and run migrations
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize Redis
	redisConfig := cache.NewConfigFromEnv(cfg)
	redisClient, err := cache.NewRedisClient(redisConfig, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	taskRepo := task.NewRepository(db)
	projectRepo := project.NewRepository(db)
	financeRepo := finance.NewRepository(db)
	contactRepo := contact.NewRepository(db)

	// Initialize services
	statsSettings := task.StatsSettings{
		Location:       location,
		WeekStart:      dates.Weekday(cfg.Stats.WeekStart),
		Categories:     cfg.Stats.Categories,
		WorkCategories: cfg.Stats.WorkCategories,
		LifeCategories: cfg.Stats.LifeCategories,
	}
	taskService := task.NewService(taskRepo, redisClient, statsSettings, log.Logger)
	projectService := project.NewService(projectRepo, log.Logger)
	financeService := finance.NewService(financeRepo, redisClient, location, cfg.Stats.TopExpenses, log.Logger)
	contactService := contact.NewService(contactRepo, log.Logger)

	// Initialize logrus logger for the assistant context builder
	assistantLogger := logrus.New()
	assistantLogger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Server.Mode == "production" {
		assistantLogger.SetLevel(logrus.InfoLevel)
	} else {
		assistantLogger.SetLevel(logrus.DebugLevel)
	}

	contextBuilder := assistant.NewContextBuilder(assistant.BuilderConfig{
		Tasks:    taskService,
		Finances: financeService,
		Contacts: contactService,
		Logger:   assistantLogger,
	})

	// Start the overdue-task replan scheduler
	replanScheduler := scheduler.NewScheduler(taskService, location, log)
	replanScheduler.Start()
	defer replanScheduler.Stop()
	log.Info("Replan scheduler started successfully")

	// Dashboard write events clear the cached dashboard and stats views.
	// The stats pattern carries the response-cache middleware namespace.
	go func() {
		ctx := context.Background()
		err := redisClient.SubscribeToDashboardEvents(ctx, func(event *events.DashboardEvent) error {
			if err := redisClient.ClearByPattern(ctx, "dashboard:*"); err != nil {
				return err
			}
			return redisClient.ClearByPattern(ctx, "northstar:stats:*")
		})
		if err != nil {
			log.Error("Dashboard event subscription stopped", zap.Error(err))
		}
	}()

	// JWT and shared middleware
	jwtService := auth.NewJWTService(cfg)
	cacheMiddleware := middleware.NewCacheMiddleware(redisClient, "northstar", cfg.Stats.CacheTTL)

	// Initialize handlers
	taskHandler := handlers.NewTaskHandler(taskService)
	projectHandler := handlers.NewProjectHandler(projectService)
	financeHandler := handlers.NewFinanceHandler(financeService)
	contactHandler := handlers.NewContactHandler(contactService)
	statsHandler := handlers.NewStatsHandler(taskService, financeService, contactService, redisClient, cfg.Stats.CacheTTL)
	assistantHandler := handlers.NewAssistantHandler(contextBuilder)
	healthHandler := handlers.NewHealthHandler(db.DB, redisClient)

	// Register routes
	routes.NewHealthRoutes(healthHandler).RegisterRoutes(router)
	routes.NewTaskRoutes(taskHandler, jwtService).RegisterRoutes(router, cacheMiddleware)
	routes.NewProjectRoutes(projectHandler, jwtService).RegisterRoutes(router, cacheMiddleware)
	routes.NewFinanceRoutes(financeHandler, jwtService).RegisterRoutes(router, cacheMiddleware)
	routes.NewContactRoutes(contactHandler, jwtService).RegisterRoutes(router, cacheMiddleware)
	routes.NewStatsRoutes(statsHandler, jwtService).RegisterRoutes(router, cacheMiddleware)
	if cfg.Assistant.Enabled {
		routes.NewAssistantRoutes(assistantHandler, jwtService).RegisterRoutes(router)
		log.Info("Registered assistant routes at /api/assistant")
	}

	for _, route := range router.Routes() {
		log.Info("Route registered",
			zap.String("method", route.Method),
			zap.String("path", route.Path),
		)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
