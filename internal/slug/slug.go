// Package slug derives URL-safe slugs from document titles.
package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// charMap transliterates letters that do not decompose into ASCII base
// letters under NFD.
var charMap = map[rune]string{
	'ß': "ss",
	'æ': "ae",
	'œ': "oe",
	'ø': "o",
	'đ': "d",
	'ð': "d",
	'ł': "l",
	'þ': "th",
	'ı': "i",
}

// Result is the outcome of a slug generation.
type Result struct {
	Slug                    string `json:"slug"`
	SlugWithPrefixAndSuffix string `json:"slugWithPrefixAndSuffix"`
}

type options struct {
	stopWords map[string]bool
}

// Option configures slug generation.
type Option func(*options)

// WithStopWords drops the given words from generated slugs.
func WithStopWords(words ...string) Option {
	return func(o *options) {
		if o.stopWords == nil {
			o.stopWords = make(map[string]bool, len(words))
		}
		for _, w := range words {
			for _, part := range parts(w) {
				o.stopWords[part] = true
			}
		}
	}
}

// Slugify converts a title into a lowercase, hyphen-separated ASCII slug.
// It NFD-normalizes, strips combining marks, transliterates, drops quotes,
// and collapses every other disallowed character run into a single dash.
// The second return value is false when the title yields no slug.
func Slugify(title string, opts ...Option) (string, bool) {
	if strings.TrimSpace(title) == "" {
		return "", false
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var kept []string
	for _, p := range parts(title) {
		if o.stopWords[p] {
			continue
		}
		kept = append(kept, p)
	}

	s := strings.Join(kept, "-")
	return s, s != ""
}

// WithPrefixSuffix concatenates prefix, slug, and suffix verbatim.
func WithPrefixSuffix(slug, prefix, suffix string) string {
	return prefix + slug + suffix
}

// Generate slugifies title and applies prefix and suffix.
func Generate(title, prefix, suffix string, opts ...Option) (Result, bool) {
	s, ok := Slugify(title, opts...)
	if !ok {
		return Result{}, false
	}
	return Result{
		Slug:                    s,
		SlugWithPrefixAndSuffix: WithPrefixSuffix(s, prefix, suffix),
	}, true
}

// parts splits s into its normalized slug words.
func parts(s string) []string {
	stripped, _, err := transform.String(stripMarks(), s)
	if err == nil {
		s = stripped
	}
	s = strings.ToLower(s)

	var b strings.Builder
	for _, r := range s {
		if rep, ok := charMap[r]; ok {
			b.WriteString(rep)
			continue
		}
		switch {
		case isQuote(r):
			// Dropped so "don't" becomes "dont" rather than "don-t".
		case r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}

	return strings.FieldsFunc(b.String(), func(r rune) bool { return r == '-' })
}

// stripMarks returns a transformer that removes combining (Mn) marks.
// Transformers hold state, so each call gets its own chain.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func isQuote(r rune) bool {
	switch r {
	case '\'', '"', '`', '‘', '’', '“', '”':
		return true
	}
	return false
}
