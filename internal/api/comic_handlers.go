package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vrsandeep/xkcd-go/internal/thumbnail"
	"github.com/vrsandeep/xkcd-go/xkcd"
)

func (s *Server) handleGetLatestComic(w http.ResponseWriter, r *http.Request) {
	comic, err := s.fetcher.Latest()
	if err != nil {
		s.respondFetchError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, comic)
}

func (s *Server) handleGetComic(w http.ResponseWriter, r *http.Request) {
	num, ok := comicNumber(w, r)
	if !ok {
		return
	}
	comic, err := s.fetcher.Get(num)
	if err != nil {
		s.respondFetchError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, comic)
}

func (s *Server) handleGetThumbnail(w http.ResponseWriter, r *http.Request) {
	num, ok := comicNumber(w, r)
	if !ok {
		return
	}
	comic, err := s.fetcher.Get(num)
	if err != nil {
		s.respondFetchError(w, r, err)
		return
	}

	data, err := s.fetcher.Image(comic)
	if err != nil {
		// The comic exists, so a missing image is upstream's problem.
		s.app.Log.Warn("Failed to fetch comic image", "num", num, "url", comic.Img, "error", err)
		RespondWithError(w, http.StatusBadGateway, "Failed to fetch comic image")
		return
	}

	thumb, err := thumbnail.Generate(data, s.app.Config.Thumbnail.Width, s.app.Config.Thumbnail.Height)
	if err != nil {
		s.app.Log.Warn("Failed to generate thumbnail", "num", num, "error", err)
		RespondWithError(w, http.StatusUnprocessableEntity, "Comic image could not be decoded")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	if r.URL.Query().Get("format") == "datauri" {
		RespondWithJSON(w, http.StatusOK, map[string]any{
			"num":       comic.Num,
			"thumbnail": thumbnail.DataURI(thumb),
		})
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Write(thumb)
}

func comicNumber(w http.ResponseWriter, r *http.Request) (uint32, bool) {
	num, err := strconv.ParseUint(chi.URLParam(r, "num"), 10, 32)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid comic number")
		return 0, false
	}
	return uint32(num), true
}

// respondFetchError answers with a short message per error kind. The full
// error names the upstream URL, so it only goes to the log.
func (s *Server) respondFetchError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusForFetchError(err)
	if code != http.StatusNotFound {
		s.app.Log.Error("Comic fetch failed", "path", r.URL.Path, "kind", xkcd.KindOf(err).String(), "error", err)
	}
	RespondWithError(w, code, fetchErrorMessage(err))
}
