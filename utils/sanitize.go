package utils

import (
	"net/url"
	"strings"
)

// ContentDisposition builds an attachment header for name. Names outside ASCII
// also carry the RFC 5987 filename* form so accents survive the download.
func ContentDisposition(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', '"', '\\':
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if clean == "" {
		clean = "modelo"
	}

	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return '_'
		}
		return r
	}, clean)
	header := `attachment; filename="` + fallback + `"`
	if fallback != clean {
		header += "; filename*=UTF-8''" + url.PathEscape(clean)
	}
	return header
}
