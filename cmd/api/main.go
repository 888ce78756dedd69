package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"project-feasibility/internal/api/handlers"
	"project-feasibility/internal/api/middleware"
	"project-feasibility/internal/cache"
	"project-feasibility/internal/config"
	"project-feasibility/internal/scenario"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	configFile := flag.String("config", "", "optional server settings file (env vars take precedence)")
	flag.Parse()

	cfg, err := config.LoadServer(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "server config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	store, closeStore, err := newStore(cfg, logger)
	if err != nil {
		logger.Fatal("failed to set up memo cache", zap.Error(err))
	}
	defer closeStore()

	projectDir := cfg.ProjectDir
	if abs, err := filepath.Abs(projectDir); err == nil {
		projectDir = abs
	}

	// Set up Gin router
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler(logger))

	// Initialize handlers
	svc := scenario.NewService(store, logger)
	projectionHandler := handlers.NewProjectionHandler(svc, projectDir, logger)
	projectHandler := handlers.NewProjectHandler(projectDir, logger)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "cache": cfg.CacheBack})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/projection", projectionHandler.RunProjection)
		api.POST("/scenario/compare", projectionHandler.CompareScenario)
		api.POST("/scenario/rank", projectionHandler.RankScenarios)

		api.GET("/projects", projectHandler.ListProjects)
		api.GET("/event-types", handlers.ListEventTypes)
	}

	// Serve static files from STATIC_DIR (if it exists)
	staticDir := cfg.StaticDir
	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", filepath.Join(staticDir, "assets"))
		router.StaticFile("/favicon.ico", filepath.Join(staticDir, "favicon.ico"))

		// Serve index.html for all non-API routes (SPA routing)
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
				return
			}
			c.File(filepath.Join(staticDir, "index.html"))
		})
		logger.Info("serving static files", zap.String("dir", staticDir))
	} else {
		logger.Info("static directory not found, skipping static file serving", zap.String("dir", staticDir))
	}

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("starting API server",
		zap.String("addr", addr),
		zap.String("env", cfg.Env),
		zap.String("cache_backend", cfg.CacheBack))
	if err := router.Run(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Server) (*zap.Logger, error) {
	if cfg.Production() && !cfg.DebugLog {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newStore picks the memo cache backend. A nil store disables memoization.
func newStore(cfg *config.Server, logger *zap.Logger) (cache.Store, func(), error) {
	switch cfg.CacheBack {
	case config.CacheRedis:
		rs := cache.NewRedisStore(cfg.RedisAddr, "feasibility:", cfg.CacheTTL)
		if err := rs.Ping(context.Background()); err != nil {
			rs.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("memo cache: redis", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
		return rs, func() { rs.Close() }, nil
	case config.CacheMemory:
		ms := cache.NewMemoryStore(cfg.CacheTTL, cfg.CacheTTL/2)
		logger.Info("memo cache: memory", zap.Duration("ttl", cfg.CacheTTL))
		return ms, func() { ms.Close() }, nil
	default:
		logger.Info("memo cache disabled")
		return nil, func() {}, nil
	}
}
