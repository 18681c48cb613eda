package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the explicit listing-page date formats, tried in
// order: long month, abbreviated month, dot-separated, slash-separated.
var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"1.2.2006",
	"2/1/2006",
}

// relativeDaysRe matches the Italian relative-date phrase "N giorni fa"
// used by ilpost listing cards.
var relativeDaysRe = regexp.MustCompile(`(\d+) giorni fa`)

// sectionDateRe matches the dated section heading of abstract listings,
// e.g. "Tue, 5 Mar 2024 (showing 25 of 120 entries)".
var sectionDateRe = regexp.MustCompile(`\w{3}, \d{1,2} \w{3} \d{4}`)

const sectionDateLayout = "Mon, 2 Jan 2006"

// ParseDate normalizes a visible date string to YYYY-MM-DD. It tries
// the explicit layouts in order, then the relative-date fallback, and
// returns "" when nothing parses. It never fails hard: unparseable
// dates are an expected property of heterogeneous listing markup.
func ParseDate(s string, now time.Time) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	if m := relativeDaysRe.FindStringSubmatch(s); m != nil {
		days, err := strconv.Atoi(m[1])
		if err == nil {
			return now.AddDate(0, 0, -days).Format("2006-01-02")
		}
	}

	return ""
}

// ParseDateAttr normalizes a machine-readable timestamp attribute value
// by truncating any time-of-day component at the T separator. This path
// assumes ISO-8601-like values and never falls back to locale parsing.
func ParseDateAttr(v string) string {
	v = strings.TrimSpace(v)
	if i := strings.Index(v, "T"); i != -1 {
		v = v[:i]
	}
	return v
}

// parseSectionDate parses the dated heading of an abstract-list section
// with its single fixed pattern. Returns "" on mismatch, which leaves
// every item in that section undated.
func parseSectionDate(heading string) string {
	m := sectionDateRe.FindString(strings.TrimSpace(heading))
	if m == "" {
		return ""
	}
	t, err := time.Parse(sectionDateLayout, m)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}
