package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stallhub/docs"
	"stallhub/internal/auth"
	"stallhub/internal/cache"
	"stallhub/internal/config"
	"stallhub/internal/database"
	"stallhub/internal/database/migration"
	handlers "stallhub/internal/http/handler"
	"stallhub/internal/http/middleware"
	"stallhub/internal/logging"
	"stallhub/internal/mail"
	"stallhub/internal/monitor"
	"stallhub/internal/otel"
	"stallhub/internal/repository/postgres"
	"stallhub/internal/service"
	"stallhub/internal/storage"
)

const (
	cacheSweepInterval = time.Minute
	linkPurgeInterval  = time.Hour
	shutdownTimeout    = 10 * time.Second
	// Room for multipart framing around the largest accepted image.
	bodyLimit = storage.MaxImageBytes + 1<<20
)

// @title StallHub API
// @version 1.0
// @description Multi-tenant ordering for food courts and restaurant stalls.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()
	logger := logging.New(os.Stdout, loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	// PostgreSQL pool shared by repositories, transactions and the monitor
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db.DB, logger, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}
	mailer := mail.New(cfg.Mail, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := monitor.NewMetrics(registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to register http metrics: %v", err)
	}

	cacheMgr := cache.New(cfg.Cache.TTL)
	cacheMgr.Observe(metrics.CacheLookup)
	go cacheMgr.Run(ctx, cacheSweepInterval)

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatalf("failed to initialize session tokens: %v", err)
	}

	// Initialize repositories and services
	users := postgres.NewUserPostgres(db.DB)
	links := postgres.NewMagicLinkPostgres(db.DB)
	businesses := postgres.NewBusinessPostgres(db.DB)
	stalls := postgres.NewStallPostgres(db.DB)
	products := postgres.NewProductPostgres(db.DB)
	carts := postgres.NewCartPostgres(db.DB)
	orders := postgres.NewOrderPostgres(db.DB)
	analytics := postgres.NewAnalyticsPostgres(db.DB)
	tx := db.Tx

	authSvc := service.NewAuthService(users, links, tx, tokens, mailer, service.AuthOptions{
		BaseURL:      cfg.BaseURL,
		MagicLinkTTL: cfg.Auth.MagicLinkTTL,
		MaxAttempts:  cfg.Auth.MaxCodeAttempts,
	}, metrics, logger)
	adminSvc := service.NewAdminService(users, businesses, monitor.New(db, cacheMgr, registry), logger)

	if cfg.Auth.SuperAdminEmail != "" {
		if err := adminSvc.EnsureSuperAdmin(ctx, cfg.Auth.SuperAdminEmail, cfg.Auth.SuperAdminPassword); err != nil {
			log.Fatalf("failed to bootstrap super admin: %v", err)
		}
	}
	go purgeExpiredLinks(ctx, authSvc, logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    bodyLimit,
	})

	// Register global middleware
	app.Use(recover.New())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(logger))
	app.Use(httpMetrics.Handler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.RequestIDHeader,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, handlers.Deps{
		DB:                  db.DB,
		Tokens:              tokens,
		Auth:                authSvc,
		Businesses:          service.NewBusinessService(businesses, stalls, users, tx, authSvc, logger),
		Stalls:              service.NewStallService(stalls, businesses, cacheMgr),
		Products:            service.NewProductService(products, stalls, businesses, objStore, cacheMgr, logger),
		Carts:               service.NewCartService(carts, products),
		Orders:              service.NewOrderService(orders, products, stalls, businesses, carts, tx, cacheMgr, metrics, logger),
		Analytics:           service.NewAnalyticsService(analytics, users, businesses, cacheMgr, loc),
		Admin:               adminSvc,
		AuthRateLimit:       cfg.RateLimit.Max,
		AuthRateLimitWindow: cfg.RateLimit.Window,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			logger.Error("server_shutdown_failed", err, nil)
		}
	}()

	addr := ":" + cfg.Port
	logger.Info("server_starting", map[string]any{"addr": addr})

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
	logger.Info("server_stopped", nil)
}

// purgeExpiredLinks deletes dead magic links until ctx ends.
func purgeExpiredLinks(ctx context.Context, svc service.AuthService, logger *logging.Logger) {
	ticker := time.NewTicker(linkPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.PurgeExpiredLinks(ctx)
			if err != nil {
				logger.Error("magic_link_purge_failed", err, nil)
				continue
			}
			if n > 0 {
				logger.Info("magic_link_purge", map[string]any{"deleted": n})
			}
		}
	}
}
