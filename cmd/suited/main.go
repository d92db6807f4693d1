package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"suited/internal/config"
	"suited/internal/coordinator"
	"suited/internal/history"
	"suited/internal/httpapi"
	"suited/internal/registry"
	"suited/pkg/types"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "suited",
		Short:   "suited — memory-budgeted model suite coordinator",
		Version: version,
	}
	root.AddCommand(newServeCmd(), newModelsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	var (
		addr        string
		modelsDir   string
		cacheSize   int
		maxMemoryMB int
		defaultEst  int
		loadTimeout time.Duration
		configPath  string
		historyDB   string
		accessMeta  string
		logLevel    string
		corsOrigins string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the suite coordinator HTTP daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Config{}
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = loaded
			}
			// Flags set explicitly override file values.
			if cmd.Flags().Changed("addr") || cfg.Addr == "" {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("models-dir") || cfg.ModelsDir == "" {
				cfg.ModelsDir = modelsDir
			}
			if cmd.Flags().Changed("cache-size") || cfg.CacheSize == 0 {
				cfg.CacheSize = cacheSize
			}
			if cmd.Flags().Changed("max-memory-mb") || cfg.MaxMemoryMB == 0 {
				cfg.MaxMemoryMB = maxMemoryMB
			}
			if cmd.Flags().Changed("default-estimate-mb") || cfg.DefaultEstMB == 0 {
				cfg.DefaultEstMB = defaultEst
			}
			if cmd.Flags().Changed("history-db") || cfg.HistoryDB == "" {
				cfg.HistoryDB = historyDB
			}
			if cmd.Flags().Changed("access-meta") || cfg.AccessMetaPath == "" {
				cfg.AccessMetaPath = accessMeta
			}
			if cmd.Flags().Changed("log-level") || cfg.LogLevel == "" {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("load-timeout") {
				cfg.LoadTimeoutSec = int(loadTimeout.Seconds())
			}
			if cmd.Flags().Changed("cors-origins") {
				cfg.CORSEnabled = true
				cfg.CORSOrigins = splitCSV(corsOrigins)
			}
			return runServe(cfg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr, "addr", ":8080", "HTTP listen address, e.g. :8080")
	f.StringVar(&modelsDir, "models-dir", "", "Directory to scan for model files (optional)")
	f.IntVar(&cacheSize, "cache-size", 4, "Maximum number of concurrently loaded suites")
	f.IntVar(&maxMemoryMB, "max-memory-mb", 0, "Memory budget in MB across all suites (0=unlimited)")
	f.IntVar(&defaultEst, "default-estimate-mb", 1024, "Per-model estimate when a loader cannot size a file")
	f.DurationVar(&loadTimeout, "load-timeout", 0, "Timeout per model load (0=none)")
	f.StringVar(&configPath, "config", "", "Path to a yaml/json/toml config file")
	f.StringVar(&historyDB, "history-db", "", "SQLite path for the lifecycle event log (optional)")
	f.StringVar(&accessMeta, "access-meta", "", "Path for persisted last-accessed metadata (optional)")
	f.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, error, off")
	f.StringVar(&corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins (empty disables CORS)")
	return cmd
}

func runServe(cfg config.Config) error {
	logger := newLogger(cfg.LogLevel)

	var publisher coordinator.EventPublisher
	var hist *history.Store
	if cfg.HistoryDB != "" {
		h, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer h.Close()
		hist = h
		publisher = h
	}

	coord := coordinator.NewWithConfig(coordinator.Config{
		CacheSize:         cfg.CacheSize,
		MaxMemoryMB:       cfg.MaxMemoryMB,
		DefaultEstimateMB: cfg.DefaultEstMB,
		OptimizeTarget:    cfg.OptimizeTarget,
		LoadTimeout:       time.Duration(cfg.LoadTimeoutSec) * time.Second,
		Publisher:         publisher,
		AccessMetaPath:    cfg.AccessMetaPath,
		Logger:            logger,
	})

	for _, suite := range cfg.Suites {
		if err := coord.RegisterSuite(suite); err != nil {
			logger.Error().Err(err).Str("suite", suite.Name).Msg("startup registration failed")
		}
	}

	httpapi.SetLogger(logger)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins,
		[]string{"GET", "POST", "DELETE"}, []string{"Content-Type", "X-Log-Level"})

	opts := httpapi.Options{}
	if cfg.ModelsDir != "" {
		dir := cfg.ModelsDir
		opts.ListModels = func() ([]types.ModelFile, error) { return registry.ScanDir(dir) }
	}
	if hist != nil {
		opts.History = hist
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(coord, opts)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Int("cache_size", cfg.CacheSize).
			Int("budget_mb", cfg.MaxMemoryMB).Msg("suited listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	if err := coord.Cleanup(); err != nil {
		logger.Error().Err(err).Msg("cleanup error")
	}
	return nil
}

func newModelsCmd() *cobra.Command {
	var modelsDir string
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Scan a models directory and list discovered model files",
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := registry.ScanDir(modelsDir)
			if err != nil {
				return err
			}
			for _, m := range models {
				kind := string(m.Kind)
				if kind == "" {
					kind = "?"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %6dMB  %s\n", kind, m.SizeMB, m.Path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&modelsDir, "models-dir", "~/models", "Directory to scan for model files")
	return cmd
}

func newLogger(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "error":
		lvl = zerolog.ErrorLevel
	case "off":
		lvl = zerolog.Disabled
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

// splitCSV splits a comma-separated flag value, trimming blanks.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
