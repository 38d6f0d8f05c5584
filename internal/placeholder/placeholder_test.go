package placeholder

import (
	"errors"
	"testing"
	"time"

	"github.com/eykd/fmx/internal/datefmt"
	"github.com/eykd/fmx/internal/domain"
	"github.com/eykd/fmx/internal/slug"
)

var now = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		tmpl       string
		title      string
		dateFormat string
		want       string
	}{
		{"title and slug", "{{title}}-{{slug}}", "Hello World", "", "Hello World-hello-world"},
		{"empty template", "", "Hello", "", ""},
		{"no tokens", "static value", "Hello", "", "static value"},
		{"global replacement", "{{slug}}/{{slug}}", "A B", "", "a-b/a-b"},
		{"absent title", "[{{title}}]", "", "", "[]"},
		{"absent title slug", "[{{slug}}]", "", "", "[]"},
		{"now iso fallback", "{{now}}", "", "", "2024-03-05T14:07:09.000Z"},
		{"now with format", "{{now}}", "", "yyyy-MM-dd", "2024-03-05"},
		{"date parts", "{{year}}/{{month}}/{{day}}", "", "", "2024/03/05"},
		{"time parts", "{{hour12}}:{{minute}} {{ampm}} ({{hour24}})", "", "", "02:07 pm (14)"},
		{"unknown tokens pass through", "{{author}}-{{slug}}", "X", "", "{{author}}-x"},
		{"case sensitive", "{{Title}}", "X", "", "{{Title}}"},
		{"title resolved before slug", "{{title}}", "{{slug}}", "", "slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.tmpl, tt.title, tt.dateFormat, now)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	once, err := Resolve("/{{year}}/{{slug}}/{{custom}}", "My Post", "", now)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	twice, err := Resolve(once, "My Post", "", now)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if once != twice {
		t.Errorf("Resolve not idempotent: %q != %q", once, twice)
	}
}

func TestResolve_InvalidDateFormat(t *testing.T) {
	_, err := Resolve("{{now}}", "", "yyyy-QQ", now)

	ce, ok := domain.AsConfigError(err)
	if !ok {
		t.Fatalf("Resolve() error = %v, want ConfigError", err)
	}
	if ce.Setting != SettingDateFormat {
		t.Errorf("Setting = %q, want %q", ce.Setting, SettingDateFormat)
	}
	if !errors.Is(err, datefmt.ErrInvalidPattern) {
		t.Errorf("error does not wrap ErrInvalidPattern: %v", err)
	}
}

func TestResolve_InvalidDateFormatIgnoredWithoutNow(t *testing.T) {
	got, err := Resolve("{{slug}}", "A", "yyyy-QQ", now)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "a" {
		t.Errorf("Resolve() = %q, want %q", got, "a")
	}
}

func TestResolve_SlugOptions(t *testing.T) {
	got, err := Resolve("{{slug}}", "The Big Day", "", now, slug.WithStopWords("the"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "big-day" {
		t.Errorf("Resolve() = %q, want %q", got, "big-day")
	}
}

func TestCustom(t *testing.T) {
	c := Custom{ID: "permalink", Value: "post-{{slug}}"}

	if c.Token() != "{{permalink}}" {
		t.Errorf("Token() = %q", c.Token())
	}
	if !c.References(Slug) {
		t.Error("References({{slug}}) = false")
	}
	if c.References(Title) {
		t.Error("References({{title}}) = true")
	}

	got, err := c.Resolve("My Post", "", now)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "post-my-post" {
		t.Errorf("Resolve() = %q, want %q", got, "post-my-post")
	}
}

func TestFind(t *testing.T) {
	customs := []Custom{{ID: "a", Value: "1"}, {ID: "b", Value: "2"}}

	if c, ok := Find(customs, "b"); !ok || c.Value != "2" {
		t.Errorf("Find(b) = %+v, %v", c, ok)
	}
	if _, ok := Find(customs, "z"); ok {
		t.Error("Find(z) ok = true")
	}
}

func TestResolveCustom(t *testing.T) {
	customs := []Custom{{ID: "url", Value: "/{{year}}/{{slug}}/"}}

	got, ok, err := ResolveCustom(customs, "url", "Hello World", "", now)
	if err != nil || !ok {
		t.Fatalf("ResolveCustom() = %q, %v, %v", got, ok, err)
	}
	if got != "/2024/hello-world/" {
		t.Errorf("ResolveCustom() = %q", got)
	}

	if _, ok, _ := ResolveCustom(customs, "missing", "x", "", now); ok {
		t.Error("ResolveCustom(missing) ok = true")
	}
}
