// Command enerlink runs the CRM HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/api"
	"github.com/enerlink/enerlink/internal/auth"
	"github.com/enerlink/enerlink/internal/config"
	"github.com/enerlink/enerlink/internal/db"
	"github.com/enerlink/enerlink/internal/db/migrations"
	"github.com/enerlink/enerlink/internal/dbpool"
	"github.com/enerlink/enerlink/internal/security"
	"github.com/enerlink/enerlink/internal/service"
	"github.com/enerlink/enerlink/internal/store"
	"github.com/enerlink/enerlink/internal/ws"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 30 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("server exited with error")
	}
}

func run(log *logrus.Logger) error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	// Live feed hub plus the LISTEN/NOTIFY bridge that feeds it.
	hub := ws.NewHub(log)
	go hub.Run(ctx)

	bridge := db.NewNotifyBridge(log, pool, hub)
	if err := bridge.Start(ctx); err != nil {
		return err
	}

	// Stores.
	base := store.Base{Pool: pool, Log: log}
	activityStore := store.NewActivityStore(base)
	lookupStore := store.NewLookupStore(base, cfg.LookupRowLimit)
	clientStore := store.NewClientStore(base)
	pointStore := store.NewPointStore(base)
	contractStore := store.NewContractStore(base)
	invoiceStore := store.NewInvoiceStore(base)
	userStore := store.NewUserStore(base)
	geocodeStore := store.NewGeocodeStore(base)

	// Services.
	recorder := service.NewRecorder(activityStore, log, cfg.ActivityQueue)
	go recorder.Run(ctx)

	geocoder := service.NewGeocodeService(geocodeStore, cfg.GeocoderURL, cfg.GeocoderRPS, log)
	activitySvc := service.NewActivityService(activityStore, lookupStore, userStore, log)
	clientSvc := service.NewClientService(clientStore, recorder, geocoder, log)
	pointSvc := service.NewPointService(pointStore, recorder, log)
	contractSvc := service.NewContractService(contractStore, recorder, log)
	invoiceSvc := service.NewInvoiceService(invoiceStore, recorder, log)

	tokens := auth.NewManager(cfg.JWTSecret.Value(), time.Duration(cfg.TokenTTLHours)*time.Hour)
	guard := security.NewLoginGuard(ctx, log)
	authSvc := service.NewAuthService(userStore, tokens, guard, log)

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:         log,
		Pool:        pool,
		Hub:         hub,
		Activity:    activitySvc,
		Clients:     clientSvc,
		Points:      pointSvc,
		Contracts:   contractSvc,
		Invoices:    invoiceSvc,
		Auth:        authSvc,
		Geocode:     geocoder,
		Tokens:      tokens,
		CORSOrigins: cfg.CORSOrigins,
		Version:     version,
		GeocoderURL: cfg.GeocoderURL,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Addr(),
			"version": version,
		}).Info("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http server shutdown")
	}

	// The recorder drains its queue when ctx is cancelled; give it a moment
	// before closing the pool out from under it.
	hub.Shutdown()
	time.Sleep(100 * time.Millisecond)

	log.Info("server stopped")

	return nil
}
