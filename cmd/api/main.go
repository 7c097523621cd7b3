package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/healthchain/service-claims-go/internal/aivalidation"
	"github.com/healthchain/service-claims-go/internal/alert"
	alertrepo "github.com/healthchain/service-claims-go/internal/alert/repo"
	"github.com/healthchain/service-claims-go/internal/analytics"
	"github.com/healthchain/service-claims-go/internal/audit"
	"github.com/healthchain/service-claims-go/internal/auth"
	"github.com/healthchain/service-claims-go/internal/claim"
	claimrepo "github.com/healthchain/service-claims-go/internal/claim/repo"
	"github.com/healthchain/service-claims-go/internal/config"
	"github.com/healthchain/service-claims-go/internal/credential"
	"github.com/healthchain/service-claims-go/internal/faskes"
	faskesrepo "github.com/healthchain/service-claims-go/internal/faskes/repo"
	"github.com/healthchain/service-claims-go/internal/iot"
	iotrepo "github.com/healthchain/service-claims-go/internal/iot/repo"
	"github.com/healthchain/service-claims-go/internal/metrics"
	"github.com/healthchain/service-claims-go/internal/router"
	"github.com/healthchain/service-claims-go/internal/seed"
	userrepo "github.com/healthchain/service-claims-go/internal/user/repo"
	"github.com/healthchain/service-claims-go/pkg/database"
	"github.com/healthchain/service-claims-go/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	_ = godotenv.Load()

	lg, err := utilities.InitLogger(utilities.LoggerConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()
	sugar := lg.Sugar()

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("config: %v", err)
	}

	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		runServe(cfg, sugar)
	case "migrate":
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			sugar.Fatalf("migrate: %v", err)
		}
		sugar.Info("migrations applied")
	case "seed":
		runSeed(cfg, sugar)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (expected serve, migrate or seed)\n", cmd)
		os.Exit(2)
	}
}

func runSeed(cfg *config.Config, sugar *zap.SugaredLogger) {
	db, err := database.Connect(database.Config{DSN: cfg.DatabaseURL})
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	seeder := seed.New(
		userrepo.NewUserRepo(db),
		faskesrepo.NewFaskesRepo(db),
		iotrepo.NewDeviceRepo(db),
		iotrepo.NewSensorRepo(db),
		iotrepo.NewQueueRepo(db),
		credential.BcryptHasher{},
		sugar,
	)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := seeder.Run(ctx); err != nil {
		sugar.Fatalf("seed: %v", err)
	}
}

func runServe(cfg *config.Config, sugar *zap.SugaredLogger) {
	sugar.Info("starting service-claims")

	db, err := database.Connect(database.Config{DSN: cfg.DatabaseURL})
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		sugar.Fatalf("migrate: %v", err)
	}

	// shared infrastructure
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	auditLog := audit.NewRepo(db, sugar)
	tokens := credential.NewTokenIssuer(cfg.SecretKey, cfg.TokenTTL)
	hasher := credential.BcryptHasher{}
	validator := aivalidation.NewValidator()

	// repositories
	users := userrepo.NewUserRepo(db)
	facilities := faskesrepo.NewFaskesRepo(db)
	claims := claimrepo.NewClaimRepo(db)
	devices := iotrepo.NewDeviceRepo(db)
	sensors := iotrepo.NewSensorRepo(db)
	queues := iotrepo.NewQueueRepo(db)
	alerts := alertrepo.NewAlertRepo(db)

	// services and handlers
	authSvc := auth.NewService(users, hasher, tokens, auditLog, cfg.TokenTTL)
	notifier := alert.NewNotifier(alerts, sugar)
	claimSvc := claim.NewService(claims, facilities, validator,
		claim.NewNumberGenerator(utilities.SnowflakeNodeID()), auditLog, notifier)

	limiter := router.NewRateLimiter(float64(cfg.RateLimitRPS), cfg.RateLimitBurst)
	defer limiter.Stop()

	handler := router.New(router.Deps{
		Config:    cfg,
		Logger:    sugar,
		Tokens:    tokens,
		Collector: collector,
		Gatherer:  registry,
		Auth:      auth.NewHandler(authSvc, collector, sugar),
		Claims:    claim.NewHandler(claimSvc, collector, sugar),
		Faskes:    faskes.NewHandler(facilities, sugar),
		IoT:       iot.NewHandler(devices, sensors, queues, sugar),
		AI:        aivalidation.NewHandler(validator, claimSvc, sugar),
		Alerts:    alert.NewHandler(alerts, sugar),
		Analytics: analytics.NewHandler(claimSvc, sugar),
		Limiter:   limiter,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.ServerPort,
		Handler: handler,
	}

	go func() {
		sugar.Infow("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
