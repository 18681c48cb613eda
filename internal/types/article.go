package types

import (
	"encoding/json"
	"time"
)

// Stub is a transient, pre-persistence representation of a discovered
// article. URL is the natural key: two stubs with an equal URL are the
// same article.
type Stub struct {
	// URL is the absolute article URL (unique key).
	URL string `json:"url"`

	// Title is the listing-page headline, empty when the card had none.
	Title string `json:"title,omitempty"`

	// PublishDate is normalized to YYYY-MM-DD, empty when unparseable.
	PublishDate string `json:"publish_date,omitempty"`

	// Source is the site identifier (e.g. "anthropic", "arxiv").
	Source string `json:"source"`

	// SourceURL is the site's base/listing URL.
	SourceURL string `json:"source_url"`

	// Authors is populated only by sources that list them.
	Authors []string `json:"authors,omitempty"`

	// PDFURL is an alternate binary representation, when offered.
	PDFURL string `json:"pdf_url,omitempty"`

	// Text is the full article body, filled in after content extraction.
	Text string `json:"text,omitempty"`

	// FetchedAt is when this stub was discovered.
	FetchedAt time.Time `json:"fetched_at"`
}

// HasText reports whether inline body text was captured.
func (s *Stub) HasText() bool { return s.Text != "" }

// ToJSON serializes the stub for artifact storage.
func (s *Stub) ToJSON() ([]byte, error) {
	return json.Marshal(s)
}

// Record is a persisted row describing a known article. Records are
// created only through the record store's Update; afterwards only the
// IsNew flag changes.
type Record struct {
	URL             string
	ArticleFilePath string
	Title           string
	Source          string
	PublishDate     string

	// HasText is true when inline text was captured rather than only a
	// PDF reference.
	HasText bool

	// IsNew is reset for all rows at the start of each update cycle and
	// set for rows inserted in that cycle.
	IsNew bool
}
