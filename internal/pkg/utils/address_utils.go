package utils

import (
	"strings"
	"unicode"
)

// SplitAddresses splits free-form input on newlines, commas, semicolons and
// whitespace, dropping empty fields.
func SplitAddresses(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
}

// ShortAddress abbreviates an address for log lines and labels.
func ShortAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:4] + "…" + addr[len(addr)-4:]
}
