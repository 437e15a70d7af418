package atlas

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/unicode/norm"
)

// maxQueryKeywords caps the keyword sequence at the width of the per-type
// skip bitmask. Tokens past the cap are silently dropped; this is a hard
// capacity limit, not an error.
const maxQueryKeywords = 31

// normalizeText applies Unicode normalization (NFKC) and converts to
// lowercase.
func normalizeText(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

// splitTokens splits normalized text into word tokens using UAX#29 word
// segmentation, discarding delimiter-only segments.
func splitTokens(s string) []string {
	toks := words.FromString(s)
	var tokens []string
	for toks.Next() {
		t := toks.Value()
		if hasAlnum(t) {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// hasAlnum reports whether the segment contains at least one letter or
// digit, i.e. whether it is a word rather than a delimiter run.
func hasAlnum(s string) bool {
	for _, r := range s {
		if !isDelimiter(r) {
			return true
		}
	}
	return false
}

// isDelimiter classifies a rune as a token delimiter.
func isDelimiter(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// queryTokens is the tokenizer output: completed keywords plus the
// possibly-incomplete trailing prefix.
type queryTokens struct {
	keywords []string
	prefix   string
}

// tokenizeQuery normalizes and splits raw query text. If the text does not
// end in a delimiter, the final token is held out as the prefix — the
// in-progress last word, eligible only for prefix matching. At most
// maxQueryKeywords keywords are retained.
func tokenizeQuery(raw string) queryTokens {
	var q queryTokens
	q.keywords = splitTokens(normalizeText(raw))
	if len(q.keywords) > 0 && !endsInDelimiter(raw) {
		q.prefix = q.keywords[len(q.keywords)-1]
		q.keywords = q.keywords[:len(q.keywords)-1]
	}
	if len(q.keywords) > maxQueryKeywords {
		q.keywords = q.keywords[:maxQueryKeywords]
	}
	return q
}

// endsInDelimiter reports whether the last rune of the raw text is a
// delimiter. An empty string counts as delimited.
func endsInDelimiter(raw string) bool {
	last := rune(0)
	ok := false
	for _, r := range raw {
		last, ok = r, true
	}
	return !ok || isDelimiter(last)
}
