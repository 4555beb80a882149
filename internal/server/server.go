package server

import (
	"backend-wayshare/internal/auth"
	"backend-wayshare/internal/compare"
	"backend-wayshare/internal/config"
	"backend-wayshare/internal/location"
	"backend-wayshare/internal/route"
	"backend-wayshare/internal/session"
	"backend-wayshare/internal/share"
	"backend-wayshare/internal/storage"
	"backend-wayshare/internal/stream"
	"backend-wayshare/internal/waypoint"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	objects := storage.NewService(s.DB)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	session.RegisterRoutes(s.App.Group("/sessions"), session.NewService(s.DB), jwtMiddleware)
	location.RegisterRoutes(s.App.Group("/locations"), location.NewService(s.DB, s.Stream), jwtMiddleware)
	waypoint.RegisterRoutes(s.App.Group("/waypoints"), waypoint.NewService(s.DB), jwtMiddleware)
	route.RegisterRoutes(s.App.Group("/routes"), route.NewService(s.DB, objects), jwtMiddleware)
	compare.RegisterRoutes(s.App.Group("/compare"), compare.NewService(s.DB, s.Cfg.CoverageThresholdKm))
	share.RegisterRoutes(s.App.Group("/share"), share.NewService(s.DB), jwtMiddleware)
	storage.RegisterRoutes(s.App.Group("/storage"), objects, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
