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
	"syscall"
	"time"

	"dashboard.covid19.org/internal/app"
	"dashboard.covid19.org/internal/appconf"
	"dashboard.covid19.org/internal/dashboard"
	"dashboard.covid19.org/internal/logging"
	"dashboard.covid19.org/internal/memo"
	"dashboard.covid19.org/internal/whodata"
)

const (
	shutdownTimeout = 10 * time.Second
	// writeMargin is the time left for rendering a response after a reload
	// used its whole fetch timeout.
	writeMargin = 30 * time.Second
)

// writeTimeout outlasts a POST /api/reload that takes the full fetch timeout.
func writeTimeout(fetchTimeout time.Duration) time.Duration {
	if fetchTimeout <= 0 {
		return 0
	}
	return fetchTimeout + writeMargin
}

// parseConfig reads the command line. Values from the -config file are
// applied first; flags given explicitly on the command line win over them.
func parseConfig(args []string) (appconf.Config, whodata.Config, error) {
	cfg := appconf.Config{}
	dataCfg := whodata.DefaultConfig()

	var env, adminKeys, trustedProxies, configPath string

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", 4000, "API server port")
	fs.StringVar(&env, "env", "development", "Environment (development|test|production)")
	fs.StringVar(&adminKeys, "admin-keys", "", "Comma separated keys allowed to trigger a data reload")
	fs.StringVar(&dataCfg.CasesURL, "cases-url", dataCfg.CasesURL, "URL or path of the WHO daily cases CSV")
	fs.StringVar(&dataCfg.SummaryURL, "summary-url", dataCfg.SummaryURL, "URL or path of the WHO summary table CSV")
	fs.StringVar(&dataCfg.VaccinationsURL, "vaccinations-url", dataCfg.VaccinationsURL, "URL or path of the WHO vaccination CSV")
	fs.DurationVar(&dataCfg.FetchTimeout, "fetch-timeout", dataCfg.FetchTimeout, "Timeout for fetching all three sources")
	fs.IntVar(&cfg.CacheSize, "cache-size", memo.DefaultSize, "Number of chart results kept in memory")
	fs.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second allowed per client (negative disables limiting)")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	fs.StringVar(&trustedProxies, "trusted-proxies", "", "Comma separated proxy addresses or CIDRs whose X-Forwarded-For header is trusted")
	fs.StringVar(&configPath, "config", "", "Optional YAML configuration file")
	fs.BoolVar(&dataCfg.Verbose, "verbose", false, "Log dataset statistics after each load")

	if err := fs.Parse(args); err != nil {
		return appconf.Config{}, whodata.Config{}, err
	}

	cfg.Env = appconf.EnvFlagToEnvironment(env)
	cfg.AdminKeys = appconf.ParseKeys(adminKeys)
	proxies, err := appconf.ParseTrustedProxies(appconf.ParseKeys(trustedProxies))
	if err != nil {
		return appconf.Config{}, whodata.Config{}, err
	}
	cfg.TrustedProxies = proxies

	if configPath != "" {
		fileCfg, err := appconf.LoadFile(configPath)
		if err != nil {
			return appconf.Config{}, whodata.Config{}, fmt.Errorf("config file: %w", err)
		}

		explicit := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

		if err := fileCfg.Apply(&cfg, &dataCfg, explicit); err != nil {
			return appconf.Config{}, whodata.Config{}, fmt.Errorf("config file %s: %w", configPath, err)
		}
	}

	if cfg.CacheSize <= 0 {
		return appconf.Config{}, whodata.Config{}, fmt.Errorf("cache-size must be positive, got %d", cfg.CacheSize)
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return appconf.Config{}, whodata.Config{}, err
	}

	return cfg, dataCfg, nil
}

// newApplication loads the data and wires the services the handlers use.
// It fails when any source cannot be fetched.
func newApplication(ctx context.Context, cfg appconf.Config, dataCfg whodata.Config, logger *slog.Logger) (*app.Application, error) {
	manager, err := whodata.InitManager(ctx, dataCfg, nil, logger)
	if err != nil {
		return nil, err
	}

	cache, err := memo.New(cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	return &app.Application{
		Config:      cfg,
		DataConfig:  dataCfg,
		Logger:      logger,
		DataManager: manager,
		Dashboard:   dashboard.NewService(manager, cache, logger),
	}, nil
}

func main() {
	cfg, dataCfg, err := parseConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.NewStructuredLogger(os.Stdout, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, dataCfg, logger); err != nil {
		logging.LogError(logger, "server stopped", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appconf.Config, dataCfg whodata.Config, logger *slog.Logger) error {
	application, err := newApplication(ctx, cfg, dataCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load WHO data: %w", err)
	}
	application.DataManager.PrintStatistics()

	handler, shutdown := routes(application)
	defer shutdown()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: writeTimeout(dataCfg.FetchTimeout),
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String())
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
