// Package xkcd fetches comic metadata from the xkcd JSON API.
//
//	c, err := xkcd.Get(327)
//	if err != nil {
//		return err
//	}
//	fmt.Printf("Comic %d: %q\n", c.Num, c.Title)
package xkcd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultBaseURL is the xkcd site root.
const DefaultBaseURL = "https://xkcd.com"

const defaultUserAgent = "xkcd-go"

// Client fetches comics. The zero value is not usable; use New.
// A Client is safe for concurrent use.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithBaseURL points the client at a different site root, e.g. a test server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a Client. Without options it talks to xkcd.com using an
// http.Client with no timeout of its own.
func New(opts ...Option) *Client {
	c := &Client{
		client:    &http.Client{},
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultClient = New()

// Get fetches comic number using the default client.
func Get(number uint32) (*Comic, error) {
	return defaultClient.Get(number)
}

// Latest fetches the most recent comic using the default client.
func Latest() (*Comic, error) {
	return defaultClient.Latest()
}

// ComicURL returns the info URL for comic number under base.
func ComicURL(base string, number uint32) string {
	return fmt.Sprintf("%s/%d/info.0.json", strings.TrimRight(base, "/"), number)
}

// LatestURL returns the info URL of the latest comic under base.
func LatestURL(base string) string {
	return strings.TrimRight(base, "/") + "/info.0.json"
}

// BaseURL returns the site root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get fetches comic number. The number is not range checked: xkcd answers
// 404 for 0 and for numbers past the latest comic, which surfaces as a
// KindTransport error (see IsNotFound).
func (c *Client) Get(number uint32) (*Comic, error) {
	return c.GetByURL(ComicURL(c.baseURL, number))
}

// Latest fetches the most recent comic.
func (c *Client) Latest() (*Comic, error) {
	return c.GetByURL(LatestURL(c.baseURL))
}

// GetByURL fetches and maps the comic JSON served at url.
func (c *Client) GetByURL(url string) (*Comic, error) {
	resp, err := c.fetch(url)
	if err != nil {
		return nil, err
	}
	return resp.ToComic()
}

// Image downloads the image of comic.
func (c *Client) Image(comic *Comic) ([]byte, error) {
	if comic == nil || comic.Img == "" {
		return nil, &Error{Kind: KindTransport, Message: "comic has no image URL"}
	}
	body, _, err := c.do(comic.Img)
	return body, err
}

func (c *Client) fetch(url string) (ComicResponse, error) {
	var out ComicResponse

	body, contentType, err := c.do(url)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(body, &out); err != nil {
		decodeErr := &Error{Kind: KindDecode, URL: url, Err: err}
		if strings.Contains(contentType, "html") {
			if title := pageTitle(body); title != "" {
				decodeErr.Message = fmt.Sprintf("got HTML page %q", title)
			}
		}
		return out, decodeErr
	}
	if err := checkFields(body, out); err != nil {
		err.URL = url
		return out, err
	}
	return out, nil
}

// wireFields are the keys every comic payload carries.
var wireFields = []string{"num", "title", "link", "alt", "img", "news", "transcript", "year", "month", "day"}

// checkFields rejects payloads that decoded cleanly but are not a comic.
// encoding/json zero-fills missing keys and accepts "null".
func checkFields(body []byte, out ComicResponse) *Error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return &Error{Kind: KindDecode, Err: err}
	}
	if keys == nil {
		return &Error{Kind: KindDecode, Message: "body is not a JSON object"}
	}
	for _, field := range wireFields {
		if _, ok := keys[field]; !ok {
			return &Error{Kind: KindDecode, Message: fmt.Sprintf("missing field %q", field)}
		}
	}
	if out.Num == 0 {
		return &Error{Kind: KindDecode, Message: "comic number must be at least 1"}
	}
	return nil
}

// do performs a GET and returns the full body. The body is always closed.
func (c *Client) do(url string) ([]byte, string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, "", &Error{Kind: KindTransport, URL: url, Err: err}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", &Error{Kind: KindTransport, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return nil, "", &Error{Kind: KindTransport, URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &Error{Kind: KindTransport, URL: url, Err: err}
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func pageTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
