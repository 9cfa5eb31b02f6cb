package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/portfolio-api/app/api"
	"github.com/lysyi3m/portfolio-api/app/blog"
	"github.com/lysyi3m/portfolio-api/app/cfg"
	"github.com/lysyi3m/portfolio-api/app/database"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting Portfolio API", "version", appCfg.Version)

	db, err := database.Open(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	messageRepo := database.NewMessageRepository(db)

	source := newBlogSource(appCfg)
	gateway := blog.NewGateway(source, &http.Client{}, blog.Config{
		Timeout:   appCfg.BlogRequestTimeout,
		UserAgent: appCfg.UserAgent,
	})
	if gateway.Configured() {
		slog.Info("Blog source configured", "source", source.Name(), "timeout", appCfg.BlogRequestTimeout)
	} else {
		slog.Warn("Blog source not configured, fallback posts will be served", "source", source.Name())
	}

	handler := api.NewHandler(gateway, messageRepo, appCfg.Version)
	server := api.NewServer(handler, appCfg.CORSOrigins)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig)
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Portfolio API shutdown complete")
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func newBlogSource(c *cfg.Cfg) blog.Source {
	if c.BlogSource == cfg.BlogSourceFeed {
		return blog.NewFeedSource(c.BlogFeedURL)
	}
	return blog.NewBloggerSource(c.BloggerAPIURL, c.GoogleAPIKey, c.BloggerBlogID)
}
