package xkcd_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/xkcd-go/internal/testutil"
	"github.com/vrsandeep/xkcd-go/xkcd"
)

func TestURLs(t *testing.T) {
	assert.Equal(t, "https://xkcd.com/10/info.0.json", xkcd.ComicURL(xkcd.DefaultBaseURL, 10))
	assert.Equal(t, "https://xkcd.com/0/info.0.json", xkcd.ComicURL("https://xkcd.com/", 0))
	assert.Equal(t, "https://xkcd.com/info.0.json", xkcd.LatestURL(xkcd.DefaultBaseURL))
}

func TestClientGet(t *testing.T) {
	fake := testutil.NewFakeXKCD(t)
	client := xkcd.New(xkcd.WithBaseURL(fake.URL()))

	t.Run("Comic 10", func(t *testing.T) {
		c, err := client.Get(10)
		require.NoError(t, err)

		assert.Equal(t, "Pi Equals", c.Title)
		assert.Equal(t, "", c.Link)
		assert.Equal(t, uint32(10), c.Num)
		assert.Equal(t, "https://imgs.xkcd.com/comics/pi.jpg", c.Img)
		assert.Equal(t, "My most famous drawing, and one of the first I did for the site", c.Alt)
		assert.Equal(t, "", c.News)
		assert.True(t, strings.HasPrefix(c.Transcript, "Pi = 3.141592653589793helpimtrappedinauniversefactory7108914..."))
		assert.Equal(t, time.Date(2006, time.January, 1, 0, 0, 0, 0, time.UTC), c.Date)
	})

	t.Run("Number matches request", func(t *testing.T) {
		c, err := client.Get(327)
		require.NoError(t, err)
		assert.Equal(t, uint32(327), c.Num)
	})

	t.Run("Zero is rejected by the remote", func(t *testing.T) {
		before := fake.Requests()
		_, err := client.Get(0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, xkcd.ErrTransport))
		assert.True(t, xkcd.IsNotFound(err))
		assert.Equal(t, before+1, fake.Requests(), "expected the request to reach the server")
	})

	t.Run("Far beyond latest", func(t *testing.T) {
		_, err := client.Get(999999999)
		require.Error(t, err)
		assert.True(t, xkcd.IsNotFound(err))
	})

	t.Run("Idempotent", func(t *testing.T) {
		a, err := client.Get(10)
		require.NoError(t, err)
		b, err := client.Get(10)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestClientLatest(t *testing.T) {
	fake := testutil.NewFakeXKCD(t)
	client := xkcd.New(xkcd.WithBaseURL(fake.URL()))

	latest, err := client.Latest()
	require.NoError(t, err)
	assert.Equal(t, uint32(327), latest.Num)

	ten, err := client.Get(10)
	require.NoError(t, err)
	assert.False(t, latest.Date.Before(ten.Date))

	fake.AddComic(3000, testutil.ComicJSON(3000, "Newer", "", "2024", "11", "1"))
	latest, err = client.Latest()
	require.NoError(t, err)
	assert.Equal(t, uint32(3000), latest.Num)
}

func TestClientDecodeErrors(t *testing.T) {
	fake := testutil.NewFakeXKCD(t)
	client := xkcd.New(xkcd.WithBaseURL(fake.URL()))

	t.Run("HTML page", func(t *testing.T) {
		_, err := client.GetByURL(fake.URL() + "/100")
		require.Error(t, err)
		assert.True(t, errors.Is(err, xkcd.ErrDecode))
		assert.Contains(t, err.Error(), "xkcd: Comic 100")
	})

	bodies := map[string]string{
		"Null":         `null`,
		"Array":        `[1, 2, 3]`,
		"Wrong type":   `{"num": "ten", "year": "2006", "month": "1", "day": "1"}`,
		"Truncated":    `{"num": 10, "title": "Pi Eq`,
		"Numeric date": `{"num": 10, "year": 2006, "month": 1, "day": 1}`,
		"Empty object": `{}`,
		"Missing num":  `{"title": "x", "link": "", "alt": "", "img": "", "news": "", "transcript": "", "year": "2006", "month": "1", "day": "1"}`,
		"Only date":    `{"year": "2006", "month": "1", "day": "1"}`,
		"Missing date": `{"num": 10, "title": "x", "link": "", "alt": "", "img": "", "news": "", "transcript": ""}`,
		"Zero num":     `{"num": 0, "title": "x", "link": "", "alt": "", "img": "", "news": "", "transcript": "", "year": "2006", "month": "1", "day": "1"}`,
	}
	for name, body := range bodies {
		body := body
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(body))
			}))
			defer srv.Close()

			c, err := xkcd.New(xkcd.WithBaseURL(srv.URL)).Latest()
			require.Error(t, err)
			assert.Nil(t, c)
			assert.Equal(t, xkcd.KindDecode, xkcd.KindOf(err))
		})
	}
}

func TestClientMappingErrors(t *testing.T) {
	fake := testutil.NewFakeXKCD(t)
	fake.AddComic(50, testutil.ComicJSON(50, "Bad month", "", "2006", "13", "1"))
	fake.AddComic(51, testutil.ComicJSON(51, "Bad year", "", "MMVI", "1", "1"))
	client := xkcd.New(xkcd.WithBaseURL(fake.URL()))

	_, err := client.Get(50)
	assert.True(t, errors.Is(err, xkcd.ErrDate))

	_, err = client.Get(51)
	assert.True(t, errors.Is(err, xkcd.ErrParse))
}

func TestClientTransportErrors(t *testing.T) {
	t.Run("Server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := xkcd.New(xkcd.WithBaseURL(srv.URL)).Get(10)
		var xerr *xkcd.Error
		require.True(t, errors.As(err, &xerr))
		assert.Equal(t, xkcd.KindTransport, xerr.Kind)
		assert.Equal(t, http.StatusServiceUnavailable, xerr.StatusCode)
		assert.False(t, xkcd.IsNotFound(err))
	})

	t.Run("Connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := xkcd.New(xkcd.WithBaseURL(url)).Latest()
		require.Error(t, err)
		assert.True(t, errors.Is(err, xkcd.ErrTransport))
		assert.False(t, xkcd.IsNotFound(err))
	})

	t.Run("Timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		client := xkcd.New(
			xkcd.WithBaseURL(srv.URL),
			xkcd.WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}),
		)
		_, err := client.Latest()
		assert.True(t, errors.Is(err, xkcd.ErrTransport))
	})
}

func TestClientUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.Write([]byte(testutil.Comic10JSON))
	}))
	defer srv.Close()

	_, err := xkcd.New(xkcd.WithBaseURL(srv.URL), xkcd.WithUserAgent("comic-bot/1.0")).Latest()
	require.NoError(t, err)
	assert.Equal(t, "comic-bot/1.0", got)
}

func TestClientImage(t *testing.T) {
	fake := testutil.NewFakeXKCD(t)
	client := xkcd.New(xkcd.WithBaseURL(fake.URL()))

	data, err := client.Image(&xkcd.Comic{Img: fake.URL() + "/comics/test.png"})
	require.NoError(t, err)
	assert.Equal(t, testutil.TestPNG(400, 600), data)

	_, err = client.Image(&xkcd.Comic{Img: fake.URL() + "/comics/missing.png"})
	assert.True(t, xkcd.IsNotFound(err))

	_, err = client.Image(nil)
	assert.True(t, errors.Is(err, xkcd.ErrTransport))

	_, err = client.Image(&xkcd.Comic{Num: 10})
	assert.True(t, errors.Is(err, xkcd.ErrTransport))
}

func TestClientMissingFieldMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title": "x", "year": "2006", "month": "1", "day": "1"}`))
	}))
	defer srv.Close()

	_, err := xkcd.New(xkcd.WithBaseURL(srv.URL)).Latest()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing field "num"`)
	assert.Contains(t, err.Error(), srv.URL)
}
