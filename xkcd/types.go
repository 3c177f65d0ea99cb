package xkcd

// ComicResponse mirrors the JSON payload served at /info.0.json.
// Nothing is validated here; see ToComic.
type ComicResponse struct {
	Num        uint32 `json:"num"`
	Title      string `json:"title"`
	Link       string `json:"link"`
	Alt        string `json:"alt"`
	Img        string `json:"img"`
	News       string `json:"news"`
	Transcript string `json:"transcript"`
	Year       string `json:"year"`
	Month      string `json:"month"`
	Day        string `json:"day"`
}
