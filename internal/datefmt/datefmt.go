// Package datefmt formats dates for front matter fields using date-fns
// style patterns, the pattern syntax users write in their settings.
package datefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ISOLayout matches JavaScript's Date.prototype.toISOString output.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// ErrInvalidPattern is returned when a pattern contains an unsupported token.
var ErrInvalidPattern = errors.New("invalid date format pattern")

// userTokens maps the simplified user-facing tokens onto date-fns tokens.
// Order matters: longer tokens are replaced first.
var userTokens = []struct{ from, to string }{
	{"YYYY", "yyyy"},
	{"YY", "yy"},
	{"DD", "dd"},
	{"D", "d"},
}

// Translate rewrites the user-facing tokens of spec into date-fns tokens.
// The table is fixed. Quoted literal text is copied unchanged.
func Translate(spec string) string {
	var b strings.Builder
	for spec != "" {
		i := strings.IndexByte(spec, '\'')
		if i < 0 {
			b.WriteString(translateRun(spec))
			break
		}
		b.WriteString(translateRun(spec[:i]))
		spec = spec[i:]

		end := strings.IndexByte(spec[1:], '\'')
		if end < 0 {
			b.WriteString(spec)
			break
		}
		b.WriteString(spec[:end+2])
		spec = spec[end+2:]
	}
	return b.String()
}

func translateRun(s string) string {
	for _, t := range userTokens {
		s = strings.ReplaceAll(s, t.from, t.to)
	}
	return s
}

// Format renders t with the field format when set, else the global format,
// else as an ISO-8601 UTC timestamp.
func Format(t time.Time, fieldFormat, globalFormat string) (string, error) {
	spec := fieldFormat
	if spec == "" {
		spec = globalFormat
	}
	if spec == "" {
		return t.UTC().Format(ISOLayout), nil
	}

	layout, err := Compile(Translate(spec))
	if err != nil {
		return "", err
	}
	return layout.Format(t), nil
}

// Layout is a compiled date-fns pattern.
type Layout struct {
	pattern  string
	segments []segment
}

type segment func(t time.Time) string

// String returns the source pattern.
func (l Layout) String() string { return l.pattern }

// Format renders t.
func (l Layout) Format(t time.Time) string {
	var b strings.Builder
	for _, seg := range l.segments {
		b.WriteString(seg(t))
	}
	return b.String()
}

// Compile parses a date-fns pattern. Letters must form known tokens; text
// wrapped in single quotes is literal and '' is an escaped quote.
func Compile(pattern string) (Layout, error) {
	l := Layout{pattern: pattern}
	r := []rune(pattern)

	for i := 0; i < len(r); {
		c := r[i]

		switch {
		case c == '\'':
			lit, next, err := quoted(r, i)
			if err != nil {
				return Layout{}, err
			}
			l.segments = append(l.segments, literal(lit))
			i = next

		case isLetter(c):
			j := i
			for j < len(r) && r[j] == c {
				j++
			}
			seg, err := token(c, j-i)
			if err != nil {
				return Layout{}, err
			}
			l.segments = append(l.segments, seg)
			i = j

		default:
			l.segments = append(l.segments, literal(string(c)))
			i++
		}
	}

	return l, nil
}

// quoted reads a quoted literal starting at r[i] == '\''.
func quoted(r []rune, i int) (string, int, error) {
	if i+1 < len(r) && r[i+1] == '\'' {
		return "'", i + 2, nil
	}

	var b strings.Builder
	for j := i + 1; j < len(r); j++ {
		if r[j] != '\'' {
			b.WriteRune(r[j])
			continue
		}
		if j+1 < len(r) && r[j+1] == '\'' {
			b.WriteRune('\'')
			j++
			continue
		}
		return b.String(), j + 1, nil
	}
	return "", 0, fmt.Errorf("%w: unterminated quoted text", ErrInvalidPattern)
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func literal(s string) segment {
	return func(time.Time) string { return s }
}

func layout(l string) segment {
	return func(t time.Time) string { return t.Format(l) }
}

// token maps a run of n identical pattern letters onto a segment.
func token(c rune, n int) (segment, error) {
	switch c {
	case 'y':
		if n == 2 {
			return layout("06"), nil
		}
		return func(t time.Time) string { return pad(t.Year(), n) }, nil
	case 'M', 'L':
		switch n {
		case 1:
			return layout("1"), nil
		case 2:
			return layout("01"), nil
		case 3:
			return layout("Jan"), nil
		case 4:
			return layout("January"), nil
		}
	case 'd':
		switch n {
		case 1:
			return layout("2"), nil
		case 2:
			return layout("02"), nil
		}
	case 'E':
		switch {
		case n <= 3:
			return layout("Mon"), nil
		case n == 4:
			return layout("Monday"), nil
		}
	case 'H':
		if n <= 2 {
			return func(t time.Time) string { return pad(t.Hour(), n) }, nil
		}
	case 'h':
		switch n {
		case 1:
			return layout("3"), nil
		case 2:
			return layout("03"), nil
		}
	case 'm':
		switch n {
		case 1:
			return layout("4"), nil
		case 2:
			return layout("04"), nil
		}
	case 's':
		switch n {
		case 1:
			return layout("5"), nil
		case 2:
			return layout("05"), nil
		}
	case 'S':
		if n <= 9 {
			return func(t time.Time) string { return t.Format("." + strings.Repeat("0", n))[1:] }, nil
		}
	case 'a':
		switch n {
		case 1, 2:
			return layout("PM"), nil
		case 3:
			return layout("pm"), nil
		case 4:
			return func(t time.Time) string {
				if t.Hour() < 12 {
					return "a.m."
				}
				return "p.m."
			}, nil
		case 5:
			return func(t time.Time) string { return t.Format("pm")[:1] }, nil
		}
	case 'X':
		switch n {
		case 1:
			return layout("Z07"), nil
		case 2:
			return layout("Z0700"), nil
		case 3:
			return layout("Z07:00"), nil
		}
	case 'x':
		switch n {
		case 1:
			return layout("-07"), nil
		case 2:
			return layout("-0700"), nil
		case 3:
			return layout("-07:00"), nil
		}
	}
	return nil, fmt.Errorf("%w: unsupported token %q", ErrInvalidPattern, strings.Repeat(string(c), n))
}

// pad renders v with at least n digits.
func pad(v, n int) string {
	s := strconv.Itoa(v)
	for len(s) < n {
		s = "0" + s
	}
	return s
}
