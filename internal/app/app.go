package app

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lukasbauer/voxbridge/internal/core"
	"github.com/lukasbauer/voxbridge/internal/eventlog"
	"github.com/lukasbauer/voxbridge/internal/httpapi"
	"github.com/lukasbauer/voxbridge/internal/jobs"
	"github.com/lukasbauer/voxbridge/internal/notifications"
	"github.com/lukasbauer/voxbridge/internal/tts"
	"github.com/lukasbauer/voxbridge/internal/voicevox"
)

type App struct {
	cfg      Config
	logger   *log.Logger
	db       *pgxpool.Pool
	eventLog *eventlog.Logger
	facade   *voicevox.Facade
	requests *httpapi.RequestRegistry
	discord  *notifications.Discord
	janitor  *jobs.EventRetentionJob
}

// New wires the engine backend, the facade and the optional event log, then
// initializes the engine. A non-OK initialize is returned as an error.
func New(cfg Config, logger *log.Logger) (*App, error) {
	accel, err := core.ParseAccelerationMode(cfg.Acceleration)
	if err != nil {
		return nil, err
	}

	rt, err := NewRuntime(cfg, logger)
	if err != nil {
		return nil, err
	}

	var db *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, err
		}
		// Migrations are applied externally (psql -f migrations/*.sql).
	} else {
		logger.Printf("DATABASE_URL not set, event log disabled")
	}
	el := eventlog.New(db)

	opts := []voicevox.Option{
		voicevox.WithRuntime(rt),
		voicevox.WithLogger(logger),
		voicevox.WithEventLog(el),
		voicevox.WithAccelerationMode(accel),
		voicevox.WithCPUThreads(uint16(cfg.CPUThreads)),
	}
	if cfg.OutputDir != "" {
		opts = append(opts, voicevox.WithBaseDir(cfg.OutputDir))
	}
	f := voicevox.New(cfg.OpenJTalkDict, opts...)

	a := &App{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		eventLog: el,
		facade:   f,
		requests: httpapi.NewRequestRegistry(),
		discord:  notifications.NewDiscord(cfg.DiscordWebhookURL, logger),
	}

	if code := f.Initialize(); code != core.ResultOK {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.discord.NotifyEngineInitFailed(ctx, cfg.Backend, f.DictionaryPath(), code.String())
		_ = a.Close()
		return nil, fmt.Errorf("initialize engine (dict=%s): %w", f.DictionaryPath(), code.Err())
	}

	if el.Enabled() {
		a.janitor = jobs.NewEventRetentionJob(el, logger, cfg.EventRetention, time.Hour)
		a.janitor.Start()
	}
	return a, nil
}

// NewRuntime builds the engine runtime selected by cfg.Backend.
func NewRuntime(cfg Config, logger *log.Logger) (*core.Runtime, error) {
	switch cfg.Backend {
	case BackendNative:
		return core.Default()
	case BackendHTTP:
		// Shared HTTP client with connection pooling; the engine is a single host.
		httpClient := &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:          10,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		}
		return core.NewRuntime(tts.NewEngine(tts.Config{
			BaseURL:    cfg.EngineURL,
			Timeout:    cfg.HTTPTimeout,
			Logger:     logger,
			HTTPClient: httpClient,
		})), nil
	default:
		return nil, fmt.Errorf("unknown VOICEVOX_BACKEND %q (want %s or %s)", cfg.Backend, BackendNative, BackendHTTP)
	}
}

// Facade is the process facade the HTTP API drives.
func (a *App) Facade() *voicevox.Facade { return a.facade }

// Notifier sends operational alerts; disabled without DISCORD_WEBHOOK_URL.
func (a *App) Notifier() *notifications.Discord { return a.discord }

// Requests tracks in-flight API requests for graceful shutdown.
func (a *App) Requests() *httpapi.RequestRegistry { return a.requests }

func (a *App) Router() http.Handler {
	routerCfg := httpapi.RouterConfig{
		JWTSecret:    a.cfg.JWTSecret,
		JWTExpiry:    a.cfg.JWTExpiry,
		MaxTextBytes: int64(a.cfg.MaxTextBytes),
	}
	return httpapi.NewRouter(routerCfg, a.logger, a.facade, a.eventLog, a.requests)
}

func (a *App) Close() error {
	if a.janitor != nil {
		a.janitor.Stop()
	}
	if a.facade != nil {
		_ = a.facade.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	return nil
}
