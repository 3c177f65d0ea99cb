package core

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vrsandeep/xkcd-go/internal/config"
	"github.com/vrsandeep/xkcd-go/internal/logger"
	"github.com/vrsandeep/xkcd-go/internal/version"
	"github.com/vrsandeep/xkcd-go/internal/websocket"
	"github.com/vrsandeep/xkcd-go/xkcd"
)

// App holds the components shared between the server and the CLI.
type App struct {
	Config  *config.Config
	Client  *xkcd.Client
	Log     *slog.Logger
	WsHub   *websocket.Hub
	Version string
}

// New loads the configuration and builds the xkcd client and logger from it.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg), nil
}

// NewWithConfig builds an App from an already loaded configuration.
func NewWithConfig(cfg *config.Config) *App {
	log := logger.New(logger.WithLevel(cfg.Log.Level), logger.WithFormat(cfg.Log.Format))
	hub := websocket.NewHub()
	hub.SetLogger(log)
	return &App{
		Config:  cfg,
		Client:  NewClient(cfg),
		Log:     log,
		WsHub:   hub,
		Version: version.String(),
	}
}

// NewClient creates an xkcd client honoring the xkcd.* settings. A timeout
// of 0 keeps the transport default.
func NewClient(cfg *config.Config) *xkcd.Client {
	hc := &http.Client{}
	if cfg.XKCD.TimeoutSeconds > 0 {
		hc.Timeout = time.Duration(cfg.XKCD.TimeoutSeconds) * time.Second
	}
	return xkcd.New(
		xkcd.WithHTTPClient(hc),
		xkcd.WithBaseURL(cfg.XKCD.BaseURL),
		xkcd.WithUserAgent(cfg.XKCD.UserAgent),
	)
}
