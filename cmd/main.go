package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sbilibin2017/gw-bank-client/internal/buildinfo"
	"github.com/sbilibin2017/gw-bank-client/internal/config"
	"github.com/sbilibin2017/gw-bank-client/internal/facades"
	"github.com/sbilibin2017/gw-bank-client/internal/handlers"
	"github.com/sbilibin2017/gw-bank-client/internal/jwt"
	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/middlewares"
	"github.com/sbilibin2017/gw-bank-client/internal/repositories"
	"github.com/sbilibin2017/gw-bank-client/internal/services"
)

// @title gw-bank-client API
// @version 1.0.0
// @description Dashboard gateway of the bank web client. Holds the session of one user and renders account data as JSON.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting gateway version %s, commit %s, build %s\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// gateway groups the services the HTTP routes are served by.
type gateway struct {
	auth      *services.AuthService
	dashboard *services.DashboardService
	loans     *services.LoanService
	reports   *services.ReportPoller
}

// run initializes the logger, Redis, Kafka and the bank API client, restores
// the stored session and serves HTTP until ctx is done or a signal arrives.
func run(ctx context.Context, cfg *config.Config) error {
	if err := logger.Initialize(cfg.LogLevel, "json"); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection error: %w", err)
	}
	defer rdb.Close()

	// A nil *kafka.Writer must not end up inside the interface.
	var kafkaWriter services.KafkaWriter
	if w := newKafkaWriter(cfg); w != nil {
		kafkaWriter = w
		defer func() {
			if err := w.Close(); err != nil {
				logger.Log.Errorw("Kafka writer close error", "error", err)
			}
		}()
	}

	api := facades.NewBankAPIFacade(cfg.BankAPIURL, cfg.BankAuthScheme, &http.Client{Timeout: cfg.RequestTimeout})
	store := repositories.NewCredentialRedisRepository(rdb, cfg.CredentialKey, cfg.CredentialTTL)

	auth := services.NewAuthService(api, store, jwt.New(), cfg.DefaultRecencyDays)
	gw := &gateway{
		auth:      auth,
		dashboard: services.NewDashboardService(api, auth),
		loans:     services.NewLoanService(api, auth),
		reports: services.NewReportPoller(api, auth, kafkaWriter, services.ReportOptions{
			Interval:    cfg.ReportPollInterval,
			MaxAttempts: cfg.ReportMaxAttempts,
			Deadline:    cfg.ReportDeadline,
		}),
	}

	restored, err := auth.Restore(ctx)
	if err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	if restored {
		logger.Log.Info("Stored session restored, loading dashboard")
		go func() {
			if err := gw.dashboard.Load(ctx); err != nil {
				logger.Log.Warnw("initial dashboard load failed", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           newRouter(gw, cfg.ListenAddr()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s", cfg.ListenAddr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// newKafkaWriter returns a writer for report events, or nil when no brokers
// are configured.
func newKafkaWriter(cfg *config.Config) *kafka.Writer {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Log.Warn("KAFKA_BROKERS not set, report events will not be published")
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// newRouter wires the gateway routes.
func newRouter(gw *gateway, listenAddr string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	// Public routes
	r.Post("/register", handlers.NewRegisterHandler(gw.auth))
	r.Post("/login", handlers.NewLoginHandler(gw.auth))

	// Routes that need a signed-in user
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(gw.auth))

		r.Post("/logout", handlers.NewLogoutHandler(gw.auth))

		r.Get("/dashboard", handlers.NewDashboardHandler(gw.dashboard))
		r.Put("/dashboard/filters", handlers.NewFiltersHandler(gw.dashboard))
		r.Post("/dashboard/refresh", handlers.NewRefreshHandler(gw.dashboard))

		r.Post("/transactions/{kind}", handlers.NewTransactionHandler(gw.dashboard))
		r.Post("/accounts", handlers.NewCreateAccountHandler(gw.dashboard))
		r.Get("/profile", handlers.NewProfileHandler(gw.dashboard))

		r.Get("/loans", handlers.NewLoansHandler(gw.loans))
		r.Post("/loans", handlers.NewApplyLoanHandler(gw.loans))
		r.Post("/loans/{loanID}/payments", handlers.NewPayLoanHandler(gw.loans))

		r.Post("/reports", handlers.NewReportHandler(gw.reports))
		r.Get("/reports/status", handlers.NewReportStatusHandler(gw.reports))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s/swagger/doc.json", listenAddr)),
	))

	return r
}
