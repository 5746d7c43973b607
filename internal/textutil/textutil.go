// Package textutil provides the text normalization shared by the query
// engine and the index builder. Entity recognition is case-insensitive and
// accent-insensitive, so every name and every query token passes through the
// same Normalize before comparison.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxTermLen caps the length (in runes) of a term entering similarity
// computation. Longer terms are truncated rather than rejected.
const MaxTermLen = 64

// stopwords are filler words dropped during tokenization. The source
// datasets are German with English technical vocabulary mixed in, so both
// languages are covered.
var stopwords = map[string]struct{}{
	"der": {}, "die": {}, "das": {}, "ein": {}, "eine": {},
	"und": {}, "oder": {}, "fur": {}, "fuer": {}, "mit": {},
	"bei": {}, "von": {}, "nach": {}, "uber": {}, "the": {},
	"and": {}, "for": {}, "with": {}, "from": {}, "into": {},
	"are": {}, "was": {}, "wie": {}, "welche": {}, "werden": {},
}

var accentStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// FoldAccents removes diacritical marks, so "Übertragung" and "Ubertragung"
// normalize identically. Falls back to the input if the transform fails.
func FoldAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lowercases, folds accents, turns hyphens into spaces, strips
// punctuation, and collapses whitespace. It is the canonical form used for
// vocabulary keys and query text alike.
func Normalize(s string) string {
	s = FoldAccents(strings.ToLower(s))
	s = strings.ReplaceAll(s, "-", " ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize normalizes the text and splits it into words, keeping stopwords
// and short tokens. Use Terms when filler should be dropped.
func Tokenize(s string) []string {
	norm := Normalize(s)
	if norm == "" {
		return nil
	}
	return strings.Fields(norm)
}

// Terms tokenizes the text and drops stopwords and tokens shorter than
// three runes. This is the token set carried into matching.
func Terms(s string) []string {
	tokens := Tokenize(s)
	terms := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if IsStopword(t) {
			continue
		}
		terms = append(terms, t)
	}
	return terms
}

// IsStopword reports whether the (already normalized) token is filler.
// Tokens of one or two runes count as filler too.
func IsStopword(token string) bool {
	if len([]rune(token)) <= 2 {
		return true
	}
	_, ok := stopwords[token]
	return ok
}

// CapTerm truncates a term to MaxTermLen runes. The second return reports
// whether truncation happened, so callers can discount the match.
func CapTerm(term string) (string, bool) {
	r := []rune(term)
	if len(r) <= MaxTermLen {
		return term, false
	}
	return string(r[:MaxTermLen]), true
}
