package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yukikurage/time-management-api/internal/auth"
	"github.com/yukikurage/time-management-api/internal/config"
	"github.com/yukikurage/time-management-api/internal/constants"
	"github.com/yukikurage/time-management-api/internal/database"
	"github.com/yukikurage/time-management-api/internal/handlers"
	"github.com/yukikurage/time-management-api/internal/hierarchy"
	"github.com/yukikurage/time-management-api/internal/logging"
	"github.com/yukikurage/time-management-api/internal/middleware"
	"github.com/yukikurage/time-management-api/internal/notify"
	"github.com/yukikurage/time-management-api/internal/repository"
	"github.com/yukikurage/time-management-api/internal/scope"
	"github.com/yukikurage/time-management-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(db, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestID(), logging.Middleware(logger))

	// Setup session middleware with Redis
	// Pool size 10 over TCP; the default Redis user authenticates with the
	// configured password.
	store, err := redisStore.NewStore(10, "tcp", cfg.RedisAddr(), cfg.RedisPassword, []byte(cfg.SessionSecret))
	if err != nil {
		logger.Fatal("failed to create Redis session store", zap.Error(err))
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAgeSeconds,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	notifier := newNotifier(cfg, logger)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	entryRepo := repository.NewTimeEntryRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	toolRepo := repository.NewAIToolRepository(db)

	// Services
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTLMinutes)
	builder := scope.NewBuilder(hierarchy.NewResolver(userRepo))

	authService := services.NewAuthService(userRepo, hasher, tokens)
	projectService := services.NewProjectService(projectRepo, userRepo, builder)

	handlers.RegisterRoutes(r, handlers.Handlers{
		Health:    handlers.NewHealthHandler(db),
		Auth:      handlers.NewAuthHandler(authService),
		Employees: handlers.NewEmployeeHandler(services.NewEmployeeService(userRepo, builder, hasher)),
		Projects:  handlers.NewProjectHandler(projectService),
		Tasks:     handlers.NewTaskHandler(services.NewTaskService(taskRepo, projectRepo, userRepo, builder, notifier, logger)),
		Entries:   handlers.NewTimeEntryHandler(services.NewTimeEntryService(entryRepo, projectRepo, taskRepo, userRepo, builder)),
		Settings:  handlers.NewSettingsHandler(services.NewDepartmentService(deptRepo), services.NewAIToolService(toolRepo)),
		Reports:   handlers.NewReportHandler(services.NewReportService(deptRepo, taskRepo, entryRepo, builder, projectService)),
	}, middleware.RequireAuth(authService, logger))

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

// newNotifier publishes task events to Redis when it answers a ping and
// falls back to logging them otherwise.
func newNotifier(cfg *config.Config, logger *zap.Logger) notify.Notifier {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, task notifications will only be logged", zap.Error(err))
		_ = client.Close()
		return notify.NewLogNotifier(logger)
	}
	return notify.NewRedisNotifier(client, cfg.NotifyChannel)
}
