package xkcd

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Comic is a single xkcd comic with its publication date resolved.
type Comic struct {
	// The comic number, assigned sequentially by xkcd.
	Num uint32 `json:"num"`
	// The full title of the comic.
	Title string `json:"title"`
	// An external link attached to the comic. Usually empty.
	Link string `json:"link"`
	// The alt-text (title-text) for the image.
	Alt string `json:"alt"`
	// A URL to the comic's image.
	Img string `json:"img"`
	// Occasional announcements. May contain HTML.
	News string `json:"news"`
	// A transcript of the comic, if one was written.
	Transcript string `json:"transcript"`
	// Publication date at midnight UTC.
	Date time.Time `json:"date"`
}

// NewsText returns the news field with any HTML markup stripped.
func (c *Comic) NewsText() string {
	if c.News == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(c.News))
	if err != nil {
		return c.News
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
