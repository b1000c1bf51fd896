package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/fashionhub/internal/api"
	"github.com/aaravmahajanofficial/fashionhub/internal/cache"
	"github.com/aaravmahajanofficial/fashionhub/internal/config"
	"github.com/aaravmahajanofficial/fashionhub/internal/dataset"
	"github.com/aaravmahajanofficial/fashionhub/internal/events"
	"github.com/aaravmahajanofficial/fashionhub/internal/health"
	"github.com/aaravmahajanofficial/fashionhub/internal/identity"
	"github.com/aaravmahajanofficial/fashionhub/internal/logging"
	"github.com/aaravmahajanofficial/fashionhub/internal/metrics"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	repository "github.com/aaravmahajanofficial/fashionhub/internal/repositories"
	service "github.com/aaravmahajanofficial/fashionhub/internal/services"
	"github.com/aaravmahajanofficial/fashionhub/internal/telemetry"
)

const feedBuffer = 256

//	@title			FashionHub Storefront API
//	@version		1.0
//	@description	Catalog, cart, auth and theme state of one storefront session.
//	@host			localhost:8082
//	@BasePath		/api/v1
func main() {

	// Load config
	cfg := config.MustLoad()

	// Logger setup
	logger := logging.New(os.Stdout, cfg.Log.Level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Otel)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Backend selection
	var (
		catalogProvider service.CatalogProvider
		authProvider    service.AuthProvider
	)

	switch {
	case cfg.IsRemote():
		repos, err := repository.New(cfg)
		if err != nil {
			slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
			os.Exit(1)
		}

		defer func() {
			if err := repos.Close(); err != nil {
				slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
			} else {
				slog.Info("✅ Database connection closed")
			}
		}()

		if err := repos.Migrate(ctx); err != nil {
			slog.Error("❌ Error applying the database schema", slog.String("error", err.Error()))
			os.Exit(1)
		}

		redisClient, err := repository.NewRedisClient(cfg)
		if err != nil {
			slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
			os.Exit(1)
		}

		defer redisClient.Close()

		redisCache := cache.NewRedisCache(redisClient, cfg.Cache)

		identitySvc := identity.NewService(
			repos.Account,
			repository.NewSessionRepo(redisClient, cfg.Env),
			repository.NewRateLimitRepo(redisClient, cfg.RateConfig),
			[]byte(cfg.Security.JWTKey),
			cfg.Security.JWTExpiry(),
		)

		catalogProvider = service.NewRemoteCatalog(repos.Product, redisCache)
		authProvider = service.NewRemoteAuth(identitySvc, repos.Profile, redisCache, cfg.Admin.AllowList())

	default:
		catalogProvider = service.NewLocalCatalog(dataset.MustProducts())
		authProvider = service.NewMockAuth()
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("backend", cfg.Backend), slog.String("version", "1.0.0"))

	// State containers
	catalog := service.NewCatalogService(catalogProvider)
	cart := service.NewCartService()
	auth := service.NewAuthService(authProvider)
	theme := service.NewThemeService(models.ThemeMode(cfg.Theme.DefaultMode), models.Scheme(cfg.Theme.SystemDefault))

	if err := catalog.Load(ctx); err != nil {
		slog.Error("❌ Error loading the catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := auth.Restore(ctx); err != nil {
		slog.Warn("⚠️ Previous session could not be restored", slog.String("error", err.Error()))
	}

	// Catalog change feed
	if len(cfg.Kafka.Brokers) > 0 {
		feed := events.NewCatalogFeed(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.CatalogTopic), feedBuffer, logger)
		unsubscribe := catalog.Subscribe(feed.Listener())

		go feed.Run(ctx)

		defer func() {
			unsubscribe()
			if err := feed.Close(); err != nil {
				slog.Error("⚠️ Error closing the catalog feed", slog.String("error", err.Error()))
			}
		}()

		slog.Info("📣 Catalog feed enabled", slog.String("topic", cfg.Kafka.CatalogTopic))
	}

	stopMetrics := metrics.Observe(catalog, cart, auth, theme)
	defer stopMetrics()

	healthChecks, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error setting up health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Setup router
	handler := api.NewRouter(api.Containers{
		Catalog: catalog,
		Cart:    cart,
		Auth:    auth,
		Theme:   theme,
	}, healthChecks.Handler())

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: telemetry.Handler(handler, "fashionhub"),
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	go func() { // Starts the HTTP server in a new goroutine so it doesn't block the main thread.

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
