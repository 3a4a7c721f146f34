package web

import (
	"encoding/xml"
	"log/slog"
	"net/http"
)

// Atom feed document types. Timestamps are plain strings: the sorted
// projection's formatted output passes through to the wire verbatim.
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Xmlns   string      `xml:"xmlns,attr"`
	Title   string      `xml:"title"`
	ID      string      `xml:"id"`
	Updated string      `xml:"updated"`
	Author  atomAuthor  `xml:"author"`
	Links   []atomLink  `xml:"link"`
	Entries []atomEntry `xml:"entry"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
}

type atomEntry struct {
	Title   string   `xml:"title"`
	ID      string   `xml:"id"`
	Updated string   `xml:"updated"`
	Link    atomLink `xml:"link"`
}

// Feed handles GET /feed.xml. The feed-level updated value is the first
// entry's formatted timestamp, empty when there are no posts; entry order
// is the projection's order.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.Listing(r.Context(), "")
	if err != nil {
		h.serverError(w, "feed", err)
		return
	}

	var updated string
	if len(posts) > 0 {
		updated = posts[0].Published
	}

	feed := atomFeed{
		Xmlns:   "http://www.w3.org/2005/Atom",
		Title:   h.site.Title,
		ID:      h.site.BaseURL + "/",
		Updated: updated,
		Author:  atomAuthor{Name: h.site.Author},
		Links: []atomLink{
			{Href: h.site.BaseURL + "/feed.xml", Rel: "self"},
			{Href: h.site.BaseURL + "/"},
		},
	}
	for _, p := range posts {
		url := h.site.BaseURL + "/blog/" + p.Filename
		feed.Entries = append(feed.Entries, atomEntry{
			Title:   p.Title,
			ID:      url,
			Updated: p.Published,
			Link:    atomLink{Href: url},
		})
	}

	w.Header().Set("Content-Type", "application/atom+xml; charset=utf-8")
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(feed); err != nil {
		slog.Error("feed encode failed", slog.String("error", err.Error()))
	}
}
