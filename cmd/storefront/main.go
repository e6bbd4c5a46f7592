package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront/api/routes"
	"github.com/angelmondragon/storefront/internal/basket"
	"github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/internal/session"
	"github.com/angelmondragon/storefront/internal/vendors"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/instance"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	format := cfg.App.LogFormat
	if format == "" && cfg.App.IsDev() {
		format = logger.FormatConsole
	}
	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Instance:    instance.GetID(),
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      format,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "storefront stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	clock := clockwork.NewRealClock()

	backend, err := openStorage(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, backend.close())
	}()

	remote, err := vendors.OpenRemoteStore(ctx, vendors.RemoteParams{
		Store:   backend.store,
		Key:     cfg.Storage.SnapshotKey,
		Clock:   clock,
		Latency: cfg.Directory,
		Logger:  logg,
		Metrics: metrics.NewDirectoryMetrics(registry),
	})
	if err != nil {
		return err
	}

	replica := vendors.NewReplica(remote, logg)
	if err := replica.FetchAll(ctx); err != nil {
		logg.Warn(ctx, "initial vendor fetch failed, serving an empty directory until refreshed")
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		Clock:    clock,
		Config:   cfg.Orders,
		Logger:   logg,
		Metrics:  metrics.NewOrderMetrics(registry),
		OnChange: func(ctx context.Context, order orders.Order) {
			logg.Info(logg.WithField(logg.WithOrderID(ctx, order.ID), "order_status", order.Status), "order.status_changed")
		},
	})
	if err != nil {
		return err
	}
	defer orderService.Close()

	cart := basket.New()
	checkoutService, err := checkout.NewService(cart, orderService, checkout.InstantPayments{Clock: clock}, cfg.Billing, logg)
	if err != nil {
		return err
	}
	sessionManager := session.NewManager(replica, logg)

	addr := ":" + cfg.App.Port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Driver,
	})
	logg.Info(logCtx, "starting storefront server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			registry,
			backend.checks,
			replica,
			sessionManager,
			cart,
			checkoutService,
			orderService,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down storefront server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
