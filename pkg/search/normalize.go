// Package search normaliza texto para búsqueda de catálogo:
// minúsculas y sin tildes, para que "cafe" encuentre "Café".
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize devuelve s en minúsculas y sin marcas diacríticas.
func Normalize(s string) string {
	out, _, err := transform.String(folder, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// Matches indica si query (ya normalizado o no) aparece en alguno de los campos.
func Matches(query string, fields ...string) bool {
	q := Normalize(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	for _, f := range fields {
		if strings.Contains(Normalize(f), q) {
			return true
		}
	}
	return false
}
