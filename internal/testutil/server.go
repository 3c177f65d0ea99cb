// Shared test app setup, which simplifies the API and command tests.

package testutil

import (
	"testing"

	"github.com/vrsandeep/xkcd-go/internal/config"
	"github.com/vrsandeep/xkcd-go/internal/core"
	"github.com/vrsandeep/xkcd-go/internal/logger"
	"github.com/vrsandeep/xkcd-go/internal/websocket"
)

// SetupTestApp returns a core.App whose client talks to a fresh FakeXKCD.
func SetupTestApp(t *testing.T) (*core.App, *FakeXKCD) {
	t.Helper()
	fake := NewFakeXKCD(t)

	cfg := &config.Config{}
	cfg.XKCD.BaseURL = fake.URL()
	cfg.XKCD.TimeoutSeconds = 5
	cfg.Thumbnail.Width = 200
	cfg.Thumbnail.Height = 300

	hub := websocket.NewHub()
	go hub.Run()

	app := &core.App{
		Config:  cfg,
		Client:  core.NewClient(cfg),
		Log:     logger.Void(),
		WsHub:   hub,
		Version: "test",
	}
	return app, fake
}
