// Helper functions for sending standardized JSON responses.

package api

import (
	"encoding/json"
	"net/http"

	"github.com/vrsandeep/xkcd-go/xkcd"
)

// RespondWithJSON writes a JSON response with the given status code and payload.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to marshal response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// RespondWithError writes a standardized JSON error response.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

// statusForFetchError maps a failed xkcd call to the status we answer with.
// Only a remote 404 is the caller's fault; everything else is upstream.
func statusForFetchError(err error) int {
	if xkcd.IsNotFound(err) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func fetchErrorMessage(err error) string {
	if xkcd.IsNotFound(err) {
		return "Comic not found"
	}
	switch xkcd.KindOf(err) {
	case xkcd.KindDecode, xkcd.KindParse, xkcd.KindDate:
		return "Upstream returned an invalid comic"
	default:
		return "Upstream request failed"
	}
}
