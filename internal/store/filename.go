package store

import (
	"strings"
)

// reservedNames are device names that Windows refuses as file stems
// regardless of extension.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// SafeFilename derives a collision-safe, filesystem-legal filename from
// an arbitrary string: characters illegal on common filesystems and
// control/non-ASCII characters are stripped, whitespace and hyphens
// become underscores, reserved device-name stems get a suffix, and
// leading/trailing spaces and periods are trimmed. An empty result
// falls back to a fixed placeholder.
func SafeFilename(name string) string {
	name = strings.TrimSpace(name)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if strings.ContainsRune(`<>:"/\|?*`, r) {
			continue
		}
		if r < 0x20 || r > 0x7e {
			continue
		}
		if r == ' ' || r == '-' {
			r = '_'
		}
		b.WriteRune(r)
	}

	out := b.String()

	stem := out
	ext := ""
	if i := strings.LastIndex(out, "."); i > 0 {
		stem, ext = out[:i], out[i:]
	}
	if reservedNames[strings.ToUpper(stem)] {
		out = stem + "_" + ext
	}

	out = strings.Trim(out, " .")
	if out == "" {
		return "unnamed_file"
	}
	return out
}
