package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/yndnr/tokmint/internal/core/service"
	"github.com/yndnr/tokmint/internal/infra/buildinfo"
	"github.com/yndnr/tokmint/internal/infra/confloader"
	"github.com/yndnr/tokmint/internal/infra/shutdown"
	"github.com/yndnr/tokmint/internal/server/config"
	"github.com/yndnr/tokmint/internal/server/httpserver"
	"github.com/yndnr/tokmint/internal/server/reload"
	"github.com/yndnr/tokmint/internal/telemetry/logger"
	"github.com/yndnr/tokmint/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
		noWatch     = flag.Bool("no-watch", false, "Do not reload when the configuration file changes")
		addr        = flag.String("addr", "", "Listen address, overrides server.http.addr")
		logLevel    = flag.String("log-level", "", "Log level, overrides log.level")
	)
	flag.Parse()

	overrides := make(map[string]any)
	if *addr != "" {
		overrides["server.http.addr"] = *addr
	}
	if *logLevel != "" {
		overrides["log.level"] = *logLevel
	}

	if *showVersion {
		fmt.Printf("tokmint-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := config.LoadWithOverrides(*configFile, overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(config.ToLoggerConfig(&cfg.Log))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)
	defer logger.Sync()

	info := buildinfo.Get()
	log.Info("starting tokmint-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", *configFile)

	var metrics *metric.Registry
	if cfg.Metrics.Enabled {
		metrics = metric.NewRegistry()
	}

	scopes, err := reload.BuildScopes(cfg, log)
	if err != nil {
		return fmt.Errorf("build scopes: %w", err)
	}
	registry := service.NewRegistry(scopes...)
	metrics.SetScopes(len(scopes))
	log.Info("scopes loaded", "scopes", len(scopes))

	assembler := service.NewAssembler(
		service.WithLogger(log),
		service.WithMetrics(metrics),
	)

	trusted, err := cfg.Server.HTTP.TrustedNets()
	if err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}

	routerCfg := httpserver.RouterConfig{
		Registry:       registry,
		Assembler:      assembler,
		Logger:         log,
		Metrics:        metrics,
		RateLimit:      cfg.Server.HTTP.RateLimit,
		TrustedProxies: trusted,
	}
	if cfg.Metrics.Enabled {
		routerCfg.MetricsPath = cfg.Metrics.Path
	}
	httpServer := httpserver.New(cfg.Server.HTTP, httpserver.NewRouter(routerCfg))

	shutdownHandler := shutdown.NewHandler(cfg.Server.HTTP.ShutdownTimeout)

	if *configFile != "" {
		reloader := reload.New(*configFile, registry, log, metrics, reload.WithOverrides(overrides))
		shutdownHandler.OnReload(func() {
			_ = reloader.Reload()
		})

		if !*noWatch {
			watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
			if err != nil {
				return fmt.Errorf("init config watcher: %w", err)
			}
			if err := reloader.Watch(watcher); err != nil {
				return fmt.Errorf("watch config: %w", err)
			}
			watcher.StartAsync()
			shutdownHandler.OnShutdown(func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	// Hooks run in reverse: stop the server before closing scope caches.
	shutdownHandler.OnShutdown(func(context.Context) error {
		log.Info("closing scopes")
		registry.Close()
		return nil
	})
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	listener, err := net.Listen("tcp", cfg.Server.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.HTTP.Addr, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		log.Info("HTTP server listening",
			"addr", listener.Addr().String(),
			"tls", httpServer.TLSEnabled())
		if err := httpServer.Serve(listener); err != nil {
			log.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.WaitContext(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}
