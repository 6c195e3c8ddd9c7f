package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/lukasbauer/voxbridge/internal/app"
)

func main() {
	cfg := app.LoadConfigFromEnv()

	flags := log.LstdFlags
	if cfg.LogLevel == "debug" {
		flags |= log.Lmicroseconds | log.Lshortfile
	}
	logger := log.New(os.Stdout, "", flags)

	// Initialize Sentry for error monitoring
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    cfg.SentryTracing,
			TracesSampleRate: cfg.SentryTracesSampleRate,
			Environment:      cfg.Environment,
		})
		if err != nil {
			logger.Printf("sentry init failed: %v", err)
		} else {
			logger.Printf("sentry initialized")
			defer sentry.Flush(2 * time.Second)
		}
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		if cfg.SentryDSN != "" {
			sentry.CaptureException(err)
			sentry.Flush(2 * time.Second)
		}
		logger.Fatalf("init app: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("listening on %s (backend=%s)", cfg.HTTPAddr, cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()

	// Stop taking synthesis requests, let in-flight ones finish, then release
	// the engine.
	requests := a.Requests()
	requests.StartDraining()
	logger.Printf("draining %d in-flight requests", requests.ActiveCount())

	drained := make(chan struct{})
	go func() {
		requests.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(cfg.ShutdownTimeout):
		active := requests.ActiveCount()
		logger.Printf("drain timeout after %s, %d requests still active", cfg.ShutdownTimeout, active)
		notifyCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = a.Notifier().NotifyDrainTimeout(notifyCtx, active, cfg.ShutdownTimeout)
		cancel()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = a.Close()
}
