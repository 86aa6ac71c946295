package server

import (
	"backend-tripplanner/internal/auth"
	"backend-tripplanner/internal/config"
	"backend-tripplanner/internal/eld"
	"backend-tripplanner/internal/export"
	"backend-tripplanner/internal/route"
	"backend-tripplanner/internal/stream"
	"backend-tripplanner/internal/trip"

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
	routeSvc := route.NewService(s.DB, route.NewMapboxClient(s.Cfg.MapboxAPIKey))
	tripSvc := trip.NewService(s.DB)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	trip.RegisterRoutes(s.App.Group("/trips"), tripSvc, jwtMiddleware)
	trip.RegisterLocationRoutes(s.App.Group("/locations"), tripSvc, jwtMiddleware)
	route.RegisterRoutes(s.App.Group("/routes"), routeSvc, jwtMiddleware)
	route.RegisterGeocodeRoutes(s.App.Group("/geocode"), routeSvc, jwtMiddleware)
	eld.RegisterRoutes(s.App, eld.NewService(s.DB, s.Stream), jwtMiddleware)
	export.RegisterRoutes(s.App.Group("/exports"), export.NewService(s.DB), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
