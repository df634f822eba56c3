// Package normalize canonicalises user supplied names
//
// Key builds the comparison key used by uniqueness checks:
// 1 drop invalid UTF-8 and control characters
// 2 Unicode NFKD decomposition so accents split from their letters
// 3 case folding
// 4 remove combining marks and format characters
// 5 width fold fullwidth to ASCII, then recompose to NFC
// 6 collapse whitespace to single spaces and trim
//
// Name and Text only clean and compose a value for storage; they keep case and accents.
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// transformers are stateful; keep a pool of fresh chains
var keyChains = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
			norm.NFC,
		)
	},
}

// Key returns the canonical uniqueness key for a name
// "Ｆinance  Dept" and "finance dept" share a key
func Key(s string) string {
	s = Clean(s)
	if s == "" {
		return ""
	}
	tr := keyChains.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	keyChains.Put(tr)
	if err != nil {
		// the chain only fails on invalid input, which Clean already removed
		out = s
	}
	return collapse(out)
}

// Name returns the display form of a short label: cleaned, NFC composed,
// inner whitespace collapsed to single spaces and trimmed
func Name(s string) string {
	return collapse(norm.NFC.String(Clean(s)))
}

// Text returns the stored form of free text: cleaned, NFC composed and trimmed
// line breaks are kept
func Text(s string) string {
	return strings.TrimSpace(norm.NFC.String(Clean(s)))
}

// collapse turns every whitespace run into one ASCII space and trims the edges
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
