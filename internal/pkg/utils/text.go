package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldName приводит название к каноническому виду: без диакритики,
// case-folded, пробелы схлопнуты до одного
func FoldName(s string) string {
	stripped, _, err := transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		s,
	)
	if err != nil {
		stripped = s
	}

	return strings.Join(strings.Fields(cases.Fold().String(stripped)), " ")
}
