package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"groledger/config"
	"groledger/core"
	"groledger/core/genesis"
	"groledger/observability/logging"
	telemetry "groledger/observability/otel"
	"groledger/storage"
)

const serviceName = "groledgerd"

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	planFlag := flag.String("plan", "", "Path to a YAML allocation plan (overrides config AllocationFile)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(logging.Options{
		Service:    serviceName,
		Env:        cfg.Telemetry.Env,
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, cfg, *planFlag); err != nil {
		logger.Error("groledgerd stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, planPath string) error {
	headers := telemetry.ParseHeaders(cfg.Telemetry.Headers)
	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: serviceName,
		Environment: cfg.Telemetry.Env,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
		Headers:     headers,
		Metrics:     cfg.Telemetry.Metrics,
		Traces:      cfg.Telemetry.Traces,
		SampleRatio: cfg.Telemetry.SampleRatio,
		Ledger: telemetry.Ledger{
			Storage: cfg.Storage.Backend,
			Modules: core.ModuleAddresses(),
		},
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	if cfg.Telemetry.Traces || cfg.Telemetry.Metrics {
		attrs := append([]any{slog.String("endpoint", cfg.Telemetry.Endpoint)}, logging.MaskHeaders(headers)...)
		logger.Info("telemetry exporters enabled", attrs...)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown", slog.Any("error", err))
		}
	}()

	db, err := openDatabase(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	rt := core.NewRuntime(db, core.Options{
		Logger:  logger,
		Emitter: newLogEmitter(logger),
		Clock:   core.NewClock(cfg.Ledger.GenesisTime, cfg.Ledger.GenesisBlock),
	})
	defer rt.Close()

	settings, err := core.SettingsFromConfig(cfg)
	if err != nil {
		return err
	}
	if !rt.Initialized() {
		if _, err := rt.Init(ctx, settings); err != nil {
			return fmt.Errorf("initialize ledger: %w", err)
		}
		logger.Info("ledger initialized", slog.String("owner", settings.Roles.Owner.Hex()))
	}

	if path := resolvePlanPath(planPath, cfg.AllocationFile); path != "" {
		plan, err := genesis.LoadPlan(path)
		if err != nil {
			return err
		}
		receipt, err := genesis.Apply(ctx, rt, plan, settings.Roles)
		switch {
		case errors.Is(err, genesis.ErrPlanApplied):
			logger.Info("allocation plan already applied", slog.String("plan", path))
		case err != nil:
			return fmt.Errorf("apply allocation plan: %w", err)
		default:
			logger.Info("allocation plan applied",
				slog.String("plan", path),
				slog.String("receipt", receipt.ID.String()),
				slog.Int("events", len(receipt.Events)))
		}
	}

	serverErr := make(chan error, 1)
	var srv *http.Server
	if addr := strings.TrimSpace(cfg.Telemetry.MetricsAddress); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("metrics listening", slog.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()
	}

	logger.Info("groledgerd ready", slog.Uint64("block", rt.Clock().Block()))
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("serve metrics: %w", err)
	}
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics shutdown", slog.Any("error", err))
		}
	}
	return nil
}

func openDatabase(cfg config.Storage) (storage.Database, error) {
	switch cfg.Backend {
	case "leveldb":
		return storage.NewLevelDB(cfg.DataDir)
	case "bolt":
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, err
		}
		return storage.NewBoltDB(filepath.Join(cfg.DataDir, "ledger.db"))
	case "memory", "":
		return storage.NewMemDB(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func resolvePlanPath(flagValue, configValue string) string {
	if trimmed := strings.TrimSpace(flagValue); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(configValue)
}
