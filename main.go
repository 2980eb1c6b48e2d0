package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dessert-cart/catalog"
	"dessert-cart/config"
	"dessert-cart/database"
	"dessert-cart/logger"
	"dessert-cart/middleware"
	"dessert-cart/routes"
	"dessert-cart/session"
	"dessert-cart/views"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := config.LoadEnv(); err != nil {
		log.Fatal("Error loading .env file:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer zlog.Sync()

	if err := config.ValidateEnv(zlog); err != nil {
		zlog.Fatal("environment validation failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database is optional: it backs the db catalog source and catalog seeding.
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Connect(cfg.DatabaseURL)
		if err != nil {
			zlog.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := database.Migrate(db); err != nil {
			zlog.Fatal("failed to run migrations", zap.Error(err))
		}
		if cfg.SeedCatalog != "" {
			seedCatalog(ctx, db, cfg.SeedCatalog, zlog)
		}
	}

	source, err := catalog.NewSource(cfg.CatalogSource, cfg.CatalogLocation, db)
	if err != nil {
		zlog.Fatal("invalid catalog source", zap.Error(err))
	}

	loadCtx, cancelLoad := context.WithTimeout(ctx, 30*time.Second)
	products, loadErr := catalog.NewLoader(source, zlog).LoadOrEmpty(loadCtx)
	cancelLoad()

	tmpl, err := views.Templates()
	if err != nil {
		zlog.Fatal("failed to parse templates", zap.Error(err))
	}

	sessions := session.NewRegistry(cfg.SessionTTL, tmpl, zlog)
	go sessions.Run(ctx, time.Minute)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.Cleanup(10 * time.Minute)
			}
		}
	}()

	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(zlog))

	origins := []string{cfg.FrontendURL}
	if cfg.FrontendURL == "" {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	if info, err := os.Stat(cfg.AssetsDir); err == nil && info.IsDir() {
		r.Static("/assets", cfg.AssetsDir)
	} else {
		zlog.Warn("assets directory not found, images will not be served", zap.String("dir", cfg.AssetsDir))
	}

	routes.SetupRoutes(r, routes.Deps{
		Catalog:       products,
		CatalogView:   views.NewCatalogView(products.Products(), loadErr),
		Templates:     tmpl,
		Sessions:      sessions,
		RateLimiter:   limiter,
		SessionMaxAge: int(cfg.SessionTTL.Seconds()),
		Logger:        zlog,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
		// Cancels open event streams on shutdown.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	// Run server in a goroutine
	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}

	if db != nil {
		if err := database.Close(db); err != nil {
			zlog.Error("error closing database connection", zap.Error(err))
		} else {
			zlog.Info("database connection closed")
		}
	}

	zlog.Info("server exited gracefully")
}

// seedCatalog imports a JSON catalog file into the products table.
func seedCatalog(ctx context.Context, db *gorm.DB, path string, zlog *zap.Logger) {
	seed, err := catalog.NewLoader(&catalog.FileSource{Path: path}, zlog).Load(ctx)
	if err != nil {
		zlog.Error("catalog seed skipped", zap.String("path", path), zap.Error(err))
		return
	}
	n, err := database.SeedProducts(db.WithContext(ctx), seed.Products())
	if err != nil {
		zlog.Error("catalog seed failed", zap.Error(err))
		return
	}
	zlog.Info("catalog seeded", zap.Int64("rows", n))
}
