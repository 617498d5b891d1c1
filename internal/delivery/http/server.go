package http

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/transport-service/internal/config"
	"github.com/transport-service/internal/delivery/http/handler"
	"github.com/transport-service/internal/delivery/http/middleware"
	apperrors "github.com/transport-service/internal/pkg/errors"
	"github.com/transport-service/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	routeHandler    *handler.RouteHandler
	isolineHandler  *handler.IsolineHandler
	mapMatchHandler *handler.MapMatchHandler
	healthHandler   *handler.HealthHandler
	statsHandler    *handler.StatsHandler
	docsHandler     *handler.DocsHandler
}

// NewServer - создание нового HTTP сервера.
// statsHandler может быть nil, если Redis недоступен: /stats тогда отвечает 503.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	routeHandler *handler.RouteHandler,
	isolineHandler *handler.IsolineHandler,
	mapMatchHandler *handler.MapMatchHandler,
	healthHandler *handler.HealthHandler,
	statsHandler *handler.StatsHandler,
	docsHandler *handler.DocsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Transport Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Valhalla.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		routeHandler:    routeHandler,
		isolineHandler:  isolineHandler,
		mapMatchHandler: mapMatchHandler,
		healthHandler:   healthHandler,
		statsHandler:    statsHandler,
		docsHandler:     docsHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - экземпляр Fiber, используется в тестах через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.Metrics())
	s.app.Use(middleware.CORS(s.config.AllowOrigins()))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/", s.docsHandler.OpenAPI)
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	s.app.Get("/health", s.healthHandler.Health)

	// Routing
	s.app.Post("/route/:costing", s.routeHandler.Route)

	// Isolines
	isoline := s.app.Group("/isoline")
	isoline.Get("/isochrone", s.isolineHandler.Isochrone)
	isoline.Get("/isodistance", s.isolineHandler.Isodistance)

	// Map matching
	matching := s.app.Group("/map_matching")
	matching.Post("/trace_route", s.mapMatchHandler.TraceRoute)
	matching.Post("/trace_attributes", s.mapMatchHandler.TraceAttributes)

	// Stats
	if s.statsHandler != nil {
		s.app.Get("/stats", s.statsHandler.GetUsage)
	} else {
		s.app.Get("/stats", func(c *fiber.Ctx) error {
			return utils.SendError(c, apperrors.ErrStatsUnavailable)
		})
	}
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные хендлерами (404 маршрута, 413 тела, паники)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := apperrors.As(err); ok {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		appErr := apperrors.ErrInternalServer
		if code < fiber.StatusInternalServerError {
			appErr = apperrors.New(errorCode(code), err.Error(), code)
		}
		return c.Status(code).JSON(utils.ErrorResponse{Error: appErr})
	}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	default:
		return "BAD_REQUEST"
	}
}
