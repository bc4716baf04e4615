package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/motortwin/motortwin/pkg/types"
	"github.com/motortwin/motortwin/server/internal/alerts"
	"github.com/motortwin/motortwin/server/internal/api"
	"github.com/motortwin/motortwin/server/internal/config"
	"github.com/motortwin/motortwin/server/internal/history"
	"github.com/motortwin/motortwin/server/internal/limits"
	"github.com/motortwin/motortwin/server/internal/maintenance"
	"github.com/motortwin/motortwin/server/internal/observability"
	"github.com/motortwin/motortwin/server/internal/scheduler"
	"github.com/motortwin/motortwin/server/internal/source"
	"github.com/motortwin/motortwin/server/internal/ws"
)

func main() {
	configPath := flag.String("config", "", "path to config file; empty runs with built-in defaults")
	limitsPath := flag.String("limits", "", "path to a YAML limits file, used when the config has no limits section")
	flag.Parse()

	// .env is optional; it only feeds the *_env indirections in the config.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "motortwin-server: load .env: %v\n", err)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Server.SlogLevel()}))
	slog.SetDefault(logger)

	slog.Info("motortwin-server starting", "config", *configPath)
	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"tick_interval", cfg.Telemetry.TickInterval,
		"history_size", cfg.Telemetry.HistorySize,
	)

	initial, err := initialLimits(cfg, *limitsPath)
	if err != nil {
		slog.Error("failed to load limits", "err", err)
		os.Exit(1)
	}

	seed := cfg.Telemetry.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	slog.Info("telemetry seeded", "seed", seed)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Core: limit table, history window and simulated source behind the tick loop.
	// The source and the estimators draw from separate generators so that
	// changing the tick cadence does not shift the reading sequence.
	table := limits.New(initial)
	hist := history.New(cfg.Telemetry.HistorySize)
	gen := source.NewGenerator(rand.New(rand.NewSource(seed)), cfg.Telemetry.Ranges)
	sched := scheduler.New(table, hist, gen, rand.New(rand.NewSource(seed+1)), scheduler.Options{
		Interval:     cfg.Telemetry.TickInterval,
		BackfillStep: cfg.Telemetry.BackfillStep,
	})

	metrics := observability.New()
	alertEngine := alerts.New(cfg.Alerts)
	hub := ws.New(sched.Latest, ws.Options{AllowedOrigins: cfg.Server.CORSOrigins})
	maint := maintenance.New(maintenance.SeedRecords())

	alertEngine.OnAlert(func(a alerts.Alert) {
		metrics.ObserveAlert(a.Kind, a.Severity, a.State)
		hub.Publish(ws.EventAlert, a)
	})
	metrics.RegisterGaugeFunc("ws_clients", "Number of connected WebSocket dashboards.", func() float64 {
		return float64(hub.Count())
	})
	metrics.RegisterGaugeFunc("maintenance_records", "Number of entries in the maintenance log.", func() float64 {
		return float64(maint.Len())
	})

	sched.Subscribe(alertEngine)
	sched.Subscribe(metrics)
	sched.Subscribe(hub)

	go hub.Run(ctx)
	go sched.Run(ctx)

	// Hot reload: the limits section of the config, or the -limits file.
	if *configPath != "" {
		go func() {
			err := config.Watch(ctx, *configPath, func(c *config.Config) {
				if len(c.Limits) > 0 {
					sched.UpdateLimits(c.Limits)
				}
			})
			if err != nil {
				slog.Error("config watcher stopped", "err", err)
			}
		}()
	}
	if *limitsPath != "" && len(cfg.Limits) == 0 {
		go func() {
			err := config.WatchFile(ctx, *limitsPath, func(abs string) {
				rows, err := limits.LoadFile(abs)
				if err != nil {
					slog.Error("limits: reload failed, keeping previous table", "path", abs, "err", err)
					return
				}
				sched.UpdateLimits(rows)
			})
			if err != nil {
				slog.Error("limits watcher stopped", "err", err)
			}
		}()
	}

	apiHandler := api.New(api.Deps{
		Scheduler:   sched,
		Alerts:      alertEngine,
		Maintenance: maint,
	}, api.Options{
		AuthMode:    cfg.Server.Auth.Mode,
		AuthHeader:  cfg.Server.Auth.EffectiveHeader(),
		AuthKey:     cfg.Server.Auth.Key(),
		CORSOrigins: cfg.Server.CORSOrigins,
		Middleware:  []mux.MiddlewareFunc{metrics.Middleware},
	})
	apiHandler.Mount("/ws/stream", hub)
	apiHandler.Mount("/metrics", metrics.Handler())

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           handlers.CombinedLoggingHandler(os.Stdout, apiHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("motortwin-server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpSrv.Shutdown(shutdownCtx) //nolint:errcheck
	alertEngine.Wait()
}

// initialLimits picks the startup limit table: the config's limits section,
// then the -limits file, then the factory defaults.
func initialLimits(cfg *config.Config, path string) ([]types.Limit, error) {
	switch {
	case len(cfg.Limits) > 0:
		slog.Info("limits loaded from config", "rows", len(cfg.Limits))
		return cfg.Limits, nil
	case path != "":
		rows, err := limits.LoadFile(path)
		if err != nil {
			return nil, err
		}
		slog.Info("limits loaded from file", "path", path, "rows", len(rows))
		return rows, nil
	default:
		slog.Info("using factory limits")
		return limits.Defaults(), nil
	}
}
