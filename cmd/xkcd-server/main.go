package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vrsandeep/xkcd-go/internal/api"
	"github.com/vrsandeep/xkcd-go/internal/config"
	"github.com/vrsandeep/xkcd-go/internal/core"
	"github.com/vrsandeep/xkcd-go/internal/logger"
	"github.com/vrsandeep/xkcd-go/internal/watcher"
)

func main() {
	app, err := core.New()
	if err != nil {
		logger.New().Error("Fatal error during application setup", "error", err)
		os.Exit(1)
	}
	log := app.Log

	// Settings are read once at startup; changes are only reported.
	if _, err := config.Watch(func(cfg *config.Config) {
		log.Info("Configuration file changed; restart the server to apply it",
			"port", cfg.Server.Port, "upstream", cfg.XKCD.BaseURL)
	}, func(err error) {
		log.Warn("Ignoring invalid configuration change", "error", err)
	}); err != nil {
		log.Warn("Could not watch configuration file", "error", err)
	}

	go app.WsHub.Run()

	// Poll for new comics and announce them on /ws/comics
	watch := watcher.NewService(app.Client, app.WsHub, log)
	if err := watch.Start(app.Config.Watch.IntervalMinutes); err != nil {
		log.Warn("Comic watcher not started", "error", err)
	}
	defer watch.Stop()

	server := api.NewServer(app)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.Config.Server.Port),
		Handler: server.Router(),
	}

	go func() {
		log.Info("Starting web server", "addr", httpServer.Addr, "version", app.Version, "upstream", app.Client.BaseURL())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Could not start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		return
	}

	log.Info("Server exiting.")
}
