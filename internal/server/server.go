// Package server contains the HTTP handlers and routing for the blog API.
package server

import (
	"context"
	"log/slog"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/token"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config   *config.Config
	db       *gorm.DB
	redis    *redis.Client
	app      *fiber.App
	prom     *fiberprometheus.FiberPrometheus
	codec    *token.Codec
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this to inject a mocked database and skip Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	codec, err := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	// Prometheus collectors register globally; skip them under test so
	// repeated server construction does not panic on re-registration.
	var prom *fiberprometheus.FiberPrometheus
	if cfg.Env != "test" {
		prom = fiberprometheus.New("inkwell-api")
	}

	return &Server{
		config:   cfg,
		db:       db,
		redis:    redisClient,
		prom:     prom,
		codec:    codec,
		userRepo: repository.NewUserRepository(db),
		postRepo: repository.NewPostRepository(db),
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.RequestLogger())

	if s.prom != nil {
		s.prom.RegisterAt(app, "/metrics")
		app.Use(s.prom.Middleware)
	}

	// Permissive dev CORS; production origins are a deployment concern.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/", s.HealthCheck)

	auth := api.Group("/auth")
	auth.Post("/signup", s.Signup)
	auth.Post("/login", s.Login)

	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Get("/:id", s.GetPost)
	posts.Post("/", middleware.AuthRequired(s.codec), s.CreatePost)
	posts.Put("/:id", middleware.AuthRequired(s.codec), s.UpdatePost)
	posts.Delete("/:id", middleware.AuthRequired(s.codec), s.DeletePost)
}

// HealthCheck reports service and dependency status.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if sqlDB, err := s.db.DB(); err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis == nil {
		redisStatus = "unavailable"
	} else if err := s.redis.Ping(ctx).Err(); err != nil {
		redisStatus = "unhealthy"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "inkwell",
		"version": "1.0.0",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}

// NewApp builds the Fiber application with middleware and routes attached.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Inkwell API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
				slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start starts the server and blocks until it is shut down.
func (s *Server) Start() error {
	app := s.NewApp()
	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server and its resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server",
				slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB",
				slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis",
				slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
