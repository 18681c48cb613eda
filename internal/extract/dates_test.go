package extract

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"long month", "January 5, 2024", "2024-01-05"},
		{"abbreviated month", "Mar 5, 2024", "2024-03-05"},
		{"dot separated", "1.2.2006", "2006-01-02"},
		{"slash separated", "2/1/2006", "2006-01-02"},
		{"relative days", "5 giorni fa", "2024-03-10"},
		{"relative days embedded", "Pubblicato 12 giorni fa", "2024-03-03"},
		{"surrounding whitespace", "  January 5, 2024  ", "2024-01-05"},
		{"unparseable", "next Tuesday", ""},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDate(tc.in, testNow)
			if got != tc.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseDateAttr(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-03-05T10:30:00Z", "2024-03-05"},
		{"2024-03-05", "2024-03-05"},
		{" 2024-03-05T00:00:00 ", "2024-03-05"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := ParseDateAttr(tc.in); got != tc.want {
			t.Errorf("ParseDateAttr(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseSectionDate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain heading", "Tue, 5 Mar 2024", "2024-03-05"},
		{"heading with entry count", "Tue, 5 Mar 2024 (showing first 25 of 120 entries )", "2024-03-05"},
		{"no date", "New submissions", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseSectionDate(tc.in); got != tc.want {
				t.Errorf("parseSectionDate(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
