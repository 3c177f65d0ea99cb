package api

import (
	"net/http"
	"strings"
)

// handleGetComicImage serves the original image of a comic through the API,
// so clients only need to reach this server.
func (s *Server) handleGetComicImage(w http.ResponseWriter, r *http.Request) {
	num, ok := comicNumber(w, r)
	if !ok {
		return
	}
	comic, err := s.fetcher.Get(num)
	if err != nil {
		s.respondFetchError(w, r, err)
		return
	}
	if comic.Img == "" {
		RespondWithError(w, http.StatusNotFound, "Comic has no image")
		return
	}

	data, err := s.fetcher.Image(comic)
	if err != nil {
		s.app.Log.Warn("Failed to fetch comic image", "num", num, "url", comic.Img, "error", err)
		RespondWithError(w, http.StatusBadGateway, "Failed to fetch comic image")
		return
	}

	w.Header().Set("Content-Type", inferContentType(comic.Img))
	// Published images never change.
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}

// inferContentType guesses the content type from the URL extension.
func inferContentType(url string) string {
	lowerURL := strings.ToLower(url)
	switch {
	case strings.HasSuffix(lowerURL, ".jpg") || strings.HasSuffix(lowerURL, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lowerURL, ".png"):
		return "image/png"
	case strings.HasSuffix(lowerURL, ".gif"):
		return "image/gif"
	case strings.HasSuffix(lowerURL, ".webp"):
		return "image/webp"
	case strings.HasSuffix(lowerURL, ".svg"):
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
