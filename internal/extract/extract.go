// Package extract pulls the display title and publication time out of an
// org-exported HTML document.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DateLayout is the timestamp format the org HTML exporter emits inside the
// date paragraph, e.g. "2024-03-01 Fri 09:30".
const DateLayout = "2006-01-02 Mon 15:04"

// ErrDateFormat reports a date paragraph whose text does not match
// DateLayout. The returned Meta is still usable: title extraction is
// unaffected and Published is left at the zero instant.
var ErrDateFormat = errors.New("extract: malformed date text")

// Meta holds the metadata extracted from one document.
type Meta struct {
	Title     string
	Published time.Time
}

// Extract parses data as HTML and returns the document's metadata.
//
// The title is the text of the first <title> element, empty when absent.
// The publication time is taken from the first <p class="date"> element:
// the exporter's label ("Created: ", "Date: ", ...) is dropped by splitting
// on the label colon, and the remainder is parsed against DateLayout. The
// authoring timezone is unknowable, so the value is interpreted in the
// local timezone of the indexing process and converted to UTC.
//
// A missing date paragraph is not an error; Published stays at the zero
// instant and the document sorts as the oldest.
func Extract(data []byte) (Meta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return Meta{}, fmt.Errorf("extract: parse html: %w", err)
	}

	var meta Meta
	meta.Title = strings.TrimSpace(doc.Find("title").First().Text())

	dateSel := doc.Find("p.date").First()
	if dateSel.Length() == 0 {
		return meta, nil
	}

	published, err := parseDate(dateSel.Text())
	if err != nil {
		return meta, err
	}
	meta.Published = published.UTC()
	return meta, nil
}

// parseDate turns the date paragraph text into a local-time instant. The
// text is tried as-is first (no label), then with everything up to the
// first colon treated as the exporter's label. The time-of-day colon sits
// well past the label position, so an honest date never loses fields to
// the split.
func parseDate(s string) (time.Time, error) {
	candidates := []string{strings.TrimSpace(s)}
	if i := strings.Index(s, ":"); i >= 0 {
		candidates = append(candidates, strings.TrimSpace(s[i+1:]))
	}
	for _, c := range candidates {
		if t, err := time.ParseInLocation(DateLayout, c, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrDateFormat, strings.TrimSpace(s))
}
