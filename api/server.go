package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/memheal/memcore/internal/config"
	"github.com/memheal/memcore/internal/memory"
	"github.com/memheal/memcore/internal/pagecache"
	"github.com/memheal/memcore/internal/platform"
	"github.com/memheal/memcore/internal/procmem"
	"github.com/memheal/memcore/internal/swap"
)

// Server represents the API server
type Server struct {
	app        *fiber.App
	cfg        *config.Config
	collector  memory.Collector
	releaser   pagecache.Releaser
	swapReader swap.Reader
	procReader procmem.Reader
	history    *History
}

// NewServer creates a new API server. A nil config means defaults.
// Unsupported platforms are not an error here: the collector serves
// zeroed snapshots and cache release reports failure, which callers
// can observe for themselves.
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:        cfg.Server.ReadTimeout,
		WriteTimeout:       cfg.Server.WriteTimeout,
		IdleTimeout:        cfg.Server.IdleTimeout,
		DisableKeepalive:   false,
		EnableIPValidation: false,
		ServerHeader:       "memcore",
		AppName:            "memcore v1.0",
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "*",
		AllowCredentials: false,
		ExposeHeaders:    "Content-Length,Content-Type,Access-Control-Allow-Origin",
		MaxAge:           86400, // 24 hours
	}))

	// Add explicit CORS headers middleware
	app.Use(func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", "*")
		c.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS,PATCH")
		c.Set("Access-Control-Allow-Headers", "*")

		// Handle preflight requests
		if c.Method() == "OPTIONS" {
			return c.SendStatus(204)
		}

		return c.Next()
	})

	server := &Server{
		app:        app,
		cfg:        cfg,
		collector:  memory.NewCollector(),
		releaser:   pagecache.NewReleaser(),
		swapReader: swap.NewReader(),
		procReader: procmem.NewReader(),
		history:    NewHistory(cfg.History.MaxPoints),
	}

	server.setupRoutes()
	return server, nil
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.app.Group("/api")

	// Memory inspection endpoints
	api.Get("/memory/current", s.getCurrentMemory)
	api.Get("/memory/history", s.getMemoryHistory)
	api.Get("/memory/swap", s.getSwap)
	api.Get("/memory/process", s.getProcessMemory)

	// Memory pressure endpoints
	api.Post("/memory/release", s.releaseCache)
	api.Post("/memory/fragment", s.fragmentMemory)
	api.Post("/memory/defragment", s.defragmentMemory)
	api.Post("/memory/simulate", s.simulateUsage)

	// Health check
	api.Get("/health", s.healthCheck)
}

// Start starts the API server
func (s *Server) Start(address string) error {
	return s.app.Listen(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Health check endpoint
func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"platform":  platform.GetOS(),
		"supported": platform.IsSupported(),
		"timestamp": time.Now().Unix(),
	})
}
