package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"newsdesk/internal/config"
	"newsdesk/internal/infra/adapter/persistence/memory"
	mongoRepo "newsdesk/internal/infra/adapter/persistence/mongo"
	pgRepo "newsdesk/internal/infra/adapter/persistence/postgres"
	"newsdesk/internal/infra/db"
	"newsdesk/internal/infra/newsapi"
	"newsdesk/internal/infra/notifier"
	"newsdesk/internal/infra/scraper"
	"newsdesk/internal/infra/worker"
	"newsdesk/internal/observability/logging"
	"newsdesk/internal/observability/tracing"
	"newsdesk/internal/repository"
	"newsdesk/internal/resilience/circuitbreaker"

	bmUC "newsdesk/internal/usecase/bookmark"
	feedUC "newsdesk/internal/usecase/feed"
	notifyUC "newsdesk/internal/usecase/notify"

	hhttp "newsdesk/internal/handler/http"
	hbookmark "newsdesk/internal/handler/http/bookmark"
	hfeed "newsdesk/internal/handler/http/feed"
	"newsdesk/internal/handler/http/requestid"
	"newsdesk/internal/handler/http/respond"

	_ "newsdesk/docs" // swagger docs
)

// @title           Newsdesk API
// @version         1.0
// @description     News aggregation API with article bookmarks.
// @description     Live headlines are proxied from the configured provider; saved articles are persisted.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @BasePath  /

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := initLogger(cfg)
	respond.ExposeInternalErrors(cfg.IsDevelopment())

	tp, err := tracing.Init(tracing.Config{
		ServiceName: "newsdesk-api",
		Version:     cfg.Version,
		Environment: cfg.AppEnv,
		SampleRatio: cfg.TraceSampleRatio,
	})
	if err != nil {
		logger.Error("failed to initialize tracing", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := initStore(ctx, logger, cfg.Store)
	if err != nil {
		logger.Error("failed to initialize article store", slog.Any("error", err))
		os.Exit(1)
	}

	components := setupServer(logger, cfg, store)
	components.closers = append(components.closers, closeStore, tp.Shutdown)

	if err := runServer(ctx, logger, cfg, components); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger builds the process logger and installs it as the slog default.
func initLogger(cfg config.Config) *slog.Logger {
	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slog.SetDefault(logger)
	return logger.With(slog.String("version", cfg.Version))
}

// initStore opens the configured backend and wraps it in the store circuit
// breaker. The returned func releases the connection.
func initStore(ctx context.Context, logger *slog.Logger, cfg config.StoreConfig) (*circuitbreaker.GuardedStore, func(context.Context) error, error) {
	var (
		next    repository.ArticleStore
		closeFn = func(context.Context) error { return nil }
	)

	switch cfg.Driver {
	case config.DriverMongo:
		client, err := db.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		repo := mongoRepo.NewArticleRepo(client.Database(cfg.MongoDatabase))
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		next, closeFn = repo, client.Disconnect

	case config.DriverPostgres:
		database, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.MigrateUp(ctx, database); err != nil {
			_ = database.Close()
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		next = pgRepo.NewArticleRepo(database)
		closeFn = func(context.Context) error { return database.Close() }

	default:
		logger.Warn("using in-memory article store; bookmarks are lost on restart")
		next = memory.NewArticleRepo()
	}

	logger.Info("article store ready", slog.String("driver", cfg.Driver))
	return circuitbreaker.NewGuardedStore(next, circuitbreaker.StoreConfig()), closeFn, nil
}

// initProvider returns the headline provider selected by NEWS_PROVIDER.
func initProvider(logger *slog.Logger, cfg config.NewsConfig) feedUC.Provider {
	client := &http.Client{Timeout: cfg.UpstreamTimeout}
	if cfg.Provider == config.ProviderRSS {
		logger.Info("news provider: rss", slog.Int("categories", len(cfg.RSSFeeds)))
		return scraper.NewRSSProvider(client, cfg.RSSFeeds)
	}
	logger.Info("news provider: newsapi", slog.String("base_url", cfg.BaseURL))
	return newsapi.New(newsapi.Config{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL, HTTPClient: client})
}

// initNotifications builds the bookmark event dispatcher. The Kafka writer,
// when enabled, is returned so it can be flushed on shutdown.
func initNotifications(logger *slog.Logger, cfg config.NotifyConfig) (notifyUC.Service, *notifier.KafkaNotifier) {
	discord := notifyUC.NewDiscordChannel(notifier.DiscordConfig{
		Enabled:    cfg.DiscordWebhookURL != "",
		WebhookURL: cfg.DiscordWebhookURL,
		Timeout:    10 * time.Second,
	})
	kafka, kafkaWriter := notifyUC.NewKafkaChannel(notifier.KafkaConfig{
		Enabled: len(cfg.KafkaBrokers) > 0,
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
	})

	logger.Info("bookmark notifications configured",
		slog.Bool("discord", discord.IsEnabled()),
		slog.Bool("kafka", kafka.IsEnabled()))
	return notifyUC.NewService([]notifyUC.Channel{discord, kafka}, 10), kafkaWriter
}

// ServerComponents holds what runServer needs to serve and shut down.
type ServerComponents struct {
	Handler       http.Handler
	RateLimiter   *hhttp.RateLimiter
	Scheduler     *worker.Scheduler
	StatsJob      *worker.StatsJob
	Notifications notifyUC.Service

	closers []func(context.Context) error
}

// setupServer wires the use cases, routes and middleware chain.
func setupServer(logger *slog.Logger, cfg config.Config, store *circuitbreaker.GuardedStore) *ServerComponents {
	notifications, kafkaWriter := initNotifications(logger, cfg.Notify)

	bookmarkSvc := &bmUC.Service{Repo: store, Events: notifications}
	feedSvc := feedUC.NewService(initProvider(logger, cfg.News), feedUC.Options{Timeout: cfg.News.UpstreamTimeout})

	limiter := hhttp.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	if cfg.RateLimit.RPS <= 0 {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}
	proxies, err := hhttp.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
	if err != nil {
		logger.Error("invalid trusted proxy list", slog.Any("error", err))
		os.Exit(1)
	}
	limiter.TrustProxies(proxies)

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", &hhttp.RootHandler{})
	mux.Handle("GET /health", &hhttp.HealthHandler{
		Store:         store,
		Breakers:      []*circuitbreaker.CircuitBreaker{store.Breaker(), feedSvc.Breaker()},
		Notifications: notifications,
		RateLimiter:   limiter,
		Version:       cfg.Version,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Store: store})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	hfeed.Register(mux, feedSvc)
	hbookmark.Register(mux, bookmarkSvc, cfg.DevEndpointsEnabled)
	if cfg.DevEndpointsEnabled {
		logger.Warn("development endpoints are enabled")
	}

	statsJob := &worker.StatsJob{Counter: bookmarkSvc, Logger: logger}
	scheduler := worker.NewScheduler(logger)
	if err := scheduler.Add(cfg.StatsSchedule, statsJob); err != nil {
		logger.Error("failed to schedule stats job", slog.Any("error", err))
		os.Exit(1)
	}

	components := &ServerComponents{
		Handler:       applyMiddleware(logger, cfg, hhttp.Router(mux), limiter),
		RateLimiter:   limiter,
		Scheduler:     scheduler,
		StatsJob:      statsJob,
		Notifications: notifications,
	}
	if kafkaWriter != nil {
		components.closers = append(components.closers, func(context.Context) error { return kafkaWriter.Close() })
	}
	return components
}

// applyMiddleware wraps the router. Listed outermost first:
// CORS → Security headers → Request ID → request logger → Tracing →
// Metrics → Rate Limit → Recovery → Logging → Input Validation → Timeout.
func applyMiddleware(logger *slog.Logger, cfg config.Config, handler http.Handler, limiter *hhttp.RateLimiter) http.Handler {
	corsConfig := hhttp.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.CORSAllowedOrigins
	logger.Info("CORS enabled", slog.Any("allowed_origins", corsConfig.AllowedOrigins))

	h := handler
	h = hhttp.Timeout(cfg.RequestTimeout)(h)
	h = hhttp.InputValidation(hhttp.MaxBodyBytes)(h)
	h = hhttp.Logging(logger)(h)
	h = hhttp.Recover(logger)(h)
	h = limiter.Limit(h)
	h = hhttp.MetricsMiddleware(h)
	h = tracing.Middleware(h)
	h = logging.Middleware(logger)(h)
	h = requestid.Middleware(h)
	h = hhttp.SecurityHeaders(h)
	h = hhttp.CORS(corsConfig)(h)
	return h
}

// runServer serves until ctx is cancelled, then drains in order: HTTP
// server, scheduler, pending notifications, then closers.
func runServer(ctx context.Context, logger *slog.Logger, cfg config.Config, c *ServerComponents) error {
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           c.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", slog.String("addr", addr), slog.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		c.RateLimiter.StartCleanup(gctx, time.Minute, 10*time.Minute)
		return nil
	})

	c.Scheduler.Start()
	// populate the gauge without waiting for the first tick
	go c.StatsJob.Run()

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		}
		if err := c.Scheduler.Stop(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("scheduler stop: %w", err))
		}
		if err := c.Notifications.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("notification drain: %w", err))
		}
		for _, closeFn := range c.closers {
			if err := closeFn(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		logger.Info("server stopped")
		return errors.Join(errs...)
	})

	return g.Wait()
}
