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

	"routekit.transitlab.org/internal/appconf"
	"routekit.transitlab.org/internal/logging"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config file")
		feedPath   = flag.String("feed", "", "GTFS zip path or URL (overrides config)")
		port       = flag.Int("port", 0, "HTTP listen port (overrides config)")
		envFlag    = flag.String("env", "", "environment: development, test, or production")
		apiKeys    = flag.String("api-keys", "", "comma-separated API keys (overrides config)")
	)
	flag.Parse()

	cfg, err := appconf.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	if *feedPath != "" {
		cfg.FeedPath = *feedPath
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *envFlag != "" {
		cfg.Env = appconf.EnvFlagToEnvironment(*envFlag)
	}
	if *apiKeys != "" {
		cfg.ApiKeys = ParseAPIKeys(*apiKeys)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg appconf.Config) error {
	coreApp, err := BuildApplication(cfg)
	if err != nil {
		return err
	}

	srv, rateLimiter := CreateServer(coreApp, cfg)
	defer rateLimiter.Stop()

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		logging.LogOperation(coreApp.Logger, "shutting_down", slog.String("signal", s.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logging.LogOperation(coreApp.Logger, "starting_server",
		slog.String("addr", srv.Addr),
		slog.String("env", cfg.Env.String()))

	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownErr; err != nil {
		return err
	}

	logging.LogOperation(coreApp.Logger, "server_stopped")
	return nil
}
