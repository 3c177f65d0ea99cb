// It defines the API server, sets up the routes (endpoints)
// using chi, and links them to the handler functions.

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vrsandeep/xkcd-go/internal/core"
	"github.com/vrsandeep/xkcd-go/xkcd"
)

// ComicFetcher is the subset of *xkcd.Client used by the handlers.
type ComicFetcher interface {
	Get(number uint32) (*xkcd.Comic, error)
	Latest() (*xkcd.Comic, error)
	Image(comic *xkcd.Comic) ([]byte, error)
}

// Server holds the dependencies for our API.
type Server struct {
	app     *core.App
	fetcher ComicFetcher
}

// NewServer creates a new Server instance.
func NewServer(app *core.App) *Server {
	return &Server{
		app:     app,
		fetcher: app.Client,
	}
}

// SetFetcher replaces the comic fetcher, for testing.
func (s *Server) SetFetcher(f ComicFetcher) {
	s.fetcher = f
}

// Router sets up and returns the main router for the application.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/version", s.handleGetVersion)
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/comics", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/latest", s.handleGetLatestComic)
		r.Get("/{num}", s.handleGetComic)
		r.Get("/{num}/image", s.handleGetComicImage)
		r.Get("/{num}/thumbnail", s.handleGetThumbnail)
	})

	// New comic announcements from the watcher
	r.Get("/ws/comics", func(w http.ResponseWriter, r *http.Request) {
		s.app.WsHub.ServeWs(w, r)
	})

	return r
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"version": s.app.Version})
}
