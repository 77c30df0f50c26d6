package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmaher/scrapbill-backend/api/routes"
	"github.com/dmaher/scrapbill-backend/internal/delivery"
	"github.com/dmaher/scrapbill-backend/internal/dockets"
	"github.com/dmaher/scrapbill-backend/internal/forms"
	"github.com/dmaher/scrapbill-backend/internal/invoices"
	"github.com/dmaher/scrapbill-backend/internal/settings"
	"github.com/dmaher/scrapbill-backend/pkg/config"
	"github.com/dmaher/scrapbill-backend/pkg/db"
	"github.com/dmaher/scrapbill-backend/pkg/logger"
	"github.com/dmaher/scrapbill-backend/pkg/mailrelay"
	"github.com/dmaher/scrapbill-backend/pkg/metrics"
	"github.com/dmaher/scrapbill-backend/pkg/migrate"
	"github.com/dmaher/scrapbill-backend/pkg/redis"
	"github.com/dmaher/scrapbill-backend/pkg/renderer"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	invoiceService, err := invoices.NewService(invoices.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create invoice service", err)
		os.Exit(1)
	}

	docketService, err := dockets.NewService(dockets.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create docket service", err)
		os.Exit(1)
	}

	settingsRepo, err := settings.NewRepository(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to create settings repository", err)
		os.Exit(1)
	}
	settingsService, err := settings.NewService(settingsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	rendererClient, err := renderer.NewClient(cfg.Renderer.BaseURL, cfg.Renderer.Timeout)
	if err != nil {
		logg.Error(context.Background(), "failed to create renderer client", err)
		os.Exit(1)
	}
	mailClient, err := mailrelay.NewClient(cfg.MailRelay.BaseURL, cfg.MailRelay.FromAddress, cfg.MailRelay.Timeout)
	if err != nil {
		logg.Error(context.Background(), "failed to create mail relay client", err)
		os.Exit(1)
	}
	deliveryService, err := delivery.NewService(invoiceService, docketService, rendererClient, mailClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create delivery service", err)
		os.Exit(1)
	}

	formRegistry, err := forms.NewRegistry(forms.RegistryParams{
		QuietPeriod: cfg.Forms.QuietPeriod(),
		SessionTTL:  cfg.Forms.SessionTTL,
		Logger:      logg,
		Metrics:     metrics.NewRecalcMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create form registry", err)
		os.Exit(1)
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go formRegistry.RunJanitor(rootCtx, cfg.Forms.SweepInterval)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(rootCtx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			formRegistry,
			invoiceService,
			docketService,
			settingsService,
			deliveryService,
		),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-rootCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
