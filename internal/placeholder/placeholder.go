// Package placeholder expands the fixed {{token}} vocabulary used in
// default field values and custom placeholders.
package placeholder

import (
	"strings"
	"time"

	"github.com/eykd/fmx/internal/datefmt"
	"github.com/eykd/fmx/internal/domain"
	"github.com/eykd/fmx/internal/slug"
)

// Built-in tokens.
const (
	Title  = "{{title}}"
	Slug   = "{{slug}}"
	Now    = "{{now}}"
	Year   = "{{year}}"
	Month  = "{{month}}"
	Day    = "{{day}}"
	Hour12 = "{{hour12}}"
	Hour24 = "{{hour24}}"
	AmPm   = "{{ampm}}"
	Minute = "{{minute}}"
)

// SettingDateFormat is the setting consulted for {{now}}.
const SettingDateFormat = "date_format"

// timeTokens are resolved after {{now}}, in this order.
var timeTokens = []struct {
	token  string
	layout datefmt.Layout
}{
	{Year, mustCompile("yyyy")},
	{Month, mustCompile("MM")},
	{Day, mustCompile("dd")},
	{Hour12, mustCompile("hh")},
	{Hour24, mustCompile("HH")},
	{AmPm, mustCompile("aaa")},
	{Minute, mustCompile("mm")},
}

func mustCompile(p string) datefmt.Layout {
	l, err := datefmt.Compile(p)
	if err != nil {
		panic(err)
	}
	return l
}

// Token wraps id in placeholder braces.
func Token(id string) string {
	return "{{" + id + "}}"
}

// Resolve expands the known tokens in tmpl. Substitution is global and
// literal; unknown tokens are left untouched. An invalid dateFormat is
// reported as a *domain.ConfigError.
func Resolve(tmpl, title, dateFormat string, now time.Time, opts ...slug.Option) (string, error) {
	if tmpl == "" {
		return tmpl, nil
	}

	if strings.Contains(tmpl, Title) {
		tmpl = strings.ReplaceAll(tmpl, Title, title)
	}

	if strings.Contains(tmpl, Slug) {
		s, _ := slug.Slugify(title, opts...)
		tmpl = strings.ReplaceAll(tmpl, Slug, s)
	}

	if strings.Contains(tmpl, Now) {
		formatted, err := datefmt.Format(now, "", dateFormat)
		if err != nil {
			return "", domain.NewConfigError(SettingDateFormat, err)
		}
		tmpl = strings.ReplaceAll(tmpl, Now, formatted)
	}

	for _, tt := range timeTokens {
		if strings.Contains(tmpl, tt.token) {
			tmpl = strings.ReplaceAll(tmpl, tt.token, tt.layout.Format(now))
		}
	}

	return tmpl, nil
}

// Custom is a user-defined placeholder whose value is itself a template.
type Custom struct {
	ID    string `yaml:"id" json:"id"`
	Value string `yaml:"value" json:"value"`
}

// Token returns the placeholder's own token, e.g. {{permalink}}.
func (c Custom) Token() string {
	return Token(c.ID)
}

// References reports whether the custom value contains token.
func (c Custom) References(token string) bool {
	return c.Value != "" && strings.Contains(c.Value, token)
}

// Resolve expands the custom value with Resolve.
func (c Custom) Resolve(title, dateFormat string, now time.Time, opts ...slug.Option) (string, error) {
	return Resolve(c.Value, title, dateFormat, now, opts...)
}

// Find returns the custom placeholder with the given id.
func Find(customs []Custom, id string) (Custom, bool) {
	for _, c := range customs {
		if c.ID == id {
			return c, true
		}
	}
	return Custom{}, false
}

// ResolveCustom expands the custom placeholder with the given id. The
// second result is false when no such placeholder exists.
func ResolveCustom(customs []Custom, id, title, dateFormat string, now time.Time, opts ...slug.Option) (string, bool, error) {
	c, ok := Find(customs, id)
	if !ok {
		return "", false, nil
	}
	v, err := c.Resolve(title, dateFormat, now, opts...)
	return v, true, err
}
