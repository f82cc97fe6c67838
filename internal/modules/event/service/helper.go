package service

import (
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"scopri.app/eventilocali/internal/entity"
)

var sanitizer = bluemonday.StrictPolicy()

// ApplyEventFields copies submission fields onto the entity. Event text comes
// from untrusted callers, so markup is stripped before it ever reaches the
// store or the search index.
func ApplyEventFields(event *entity.Event, name, category string, date time.Time, location string, link *string) {
	event.Name = sanitize(name)
	event.Category = sanitize(category)
	event.Date = date
	event.Location = sanitize(location)
	event.Link = link
}

// The policy entity-encodes what it keeps, so the output is unescaped again:
// stored text is plain text, and names like "dell'Antiquariato" round-trip
// unchanged.
func sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(s)))
}
