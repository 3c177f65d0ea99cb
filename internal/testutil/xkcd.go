package testutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Comic10JSON is the payload xkcd serves for comic 10.
const Comic10JSON = `{"month": "1", "num": 10, "link": "", "year": "2006", "news": "", "safe_title": "Pi Equals", "transcript": "Pi = 3.141592653589793helpimtrappedinauniversefactory7108914...", "alt": "My most famous drawing, and one of the first I did for the site", "img": "https://imgs.xkcd.com/comics/pi.jpg", "title": "Pi Equals", "day": "1"}`

// Comic327JSON is the payload xkcd serves for comic 327.
const Comic327JSON = `{"month": "10", "num": 327, "link": "", "year": "2007", "news": "", "safe_title": "Exploits of a Mom", "transcript": "[[A woman is talking on the phone.]]", "alt": "Her daughter is named Help I'm trapped in a driver's license factory.", "img": "https://imgs.xkcd.com/comics/exploits_of_a_mom.png", "title": "Exploits of a Mom", "day": "10"}`

// ComicJSON renders a minimal comic payload.
func ComicJSON(num uint32, title, img, year, month, day string) string {
	return fmt.Sprintf(`{"num": %d, "title": %q, "safe_title": %q, "link": "", "alt": "alt text", "img": %q, "news": "", "transcript": "", "year": %q, "month": %q, "day": %q}`,
		num, title, title, img, year, month, day)
}

// FakeXKCD is an in-process stand-in for xkcd.com. It serves
// /info.0.json, /{num}/info.0.json, an HTML page at /{num} and a PNG at
// /comics/test.png. Unknown comics answer 404 like the real site.
type FakeXKCD struct {
	Server *httptest.Server

	mu       sync.RWMutex
	comics   map[uint32]string
	latest   uint32
	requests atomic.Int64
}

// NewFakeXKCD starts a fake xkcd serving comics 10 and 327, with 327 as the
// latest. The server is closed when the test ends.
func NewFakeXKCD(t *testing.T) *FakeXKCD {
	t.Helper()
	f := &FakeXKCD{comics: make(map[uint32]string)}
	f.AddComic(10, Comic10JSON)
	f.AddComic(327, Comic327JSON)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			f.requests.Add(1)
			next.ServeHTTP(w, r)
		})
	})
	r.Get("/info.0.json", f.handleLatest)
	r.Get("/{num}/info.0.json", f.handleComic)
	r.Get("/{num}", f.handlePage)
	r.Get("/{num}/", f.handlePage)
	r.Get("/comics/test.png", handleTestImage)

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL of the fake site.
func (f *FakeXKCD) URL() string {
	return f.Server.URL
}

// AddComic serves payload for num and makes it the latest comic when num is
// the highest known number.
func (f *FakeXKCD) AddComic(num uint32, payload string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comics[num] = payload
	if num > f.latest {
		f.latest = num
	}
}

// Requests returns how many requests the fake has served.
func (f *FakeXKCD) Requests() int64 {
	return f.requests.Load()
}

func (f *FakeXKCD) handleLatest(w http.ResponseWriter, r *http.Request) {
	f.mu.RLock()
	payload, ok := f.comics[f.latest]
	f.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, payload)
}

func (f *FakeXKCD) handleComic(w http.ResponseWriter, r *http.Request) {
	num, err := strconv.ParseUint(chi.URLParam(r, "num"), 10, 32)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	f.mu.RLock()
	payload, ok := f.comics[uint32(num)]
	f.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, payload)
}

func (f *FakeXKCD) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>xkcd: Comic %s</title></head><body><div id=\"comic\"></div></body></html>", chi.URLParam(r, "num"))
}

func writeJSON(w http.ResponseWriter, payload string) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(payload))
}

func handleTestImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	w.Write(TestPNG(400, 600))
}

// TestPNG returns an encoded PNG of the given size.
func TestPNG(width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}
