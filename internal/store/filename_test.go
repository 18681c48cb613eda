package store

import "testing"

func TestSafeFilename(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "report.txt", "report.txt"},
		{"illegal characters stripped", `my<file>:"na/me"?*.txt`, "myfilename.txt"},
		{"spaces and hyphens", "deep dive - part two", "deep_dive___part_two"},
		{"reserved stem", "CON.txt", "CON_.txt"},
		{"reserved stem lowercase", "con.txt", "con_.txt"},
		{"reserved stem no extension", "NUL", "NUL_"},
		{"surrounding spaces", "  CON.txt  ", "CON_.txt"},
		{"trailing periods", "draft...", "draft"},
		{"non-ascii stripped", "résumé.pdf", "rsum.pdf"},
		{"control characters stripped", "a\x01b\tc", "abc"},
		{"everything stripped", `<>:"/\|?*`, "unnamed_file"},
		{"empty", "", "unnamed_file"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SafeFilename(tc.in); got != tc.want {
				t.Errorf("SafeFilename(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
