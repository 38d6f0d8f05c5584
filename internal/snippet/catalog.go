package snippet

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSnippetIncomplete is returned when a snippet lacks a title or body.
	ErrSnippetIncomplete = errors.New("snippet missing title or body")
	// ErrSnippetExists is returned when a snippet title is already taken.
	ErrSnippetExists = errors.New("snippet with the same title already exists")
	// ErrSnippetNotFound is returned when no snippet has the given title.
	ErrSnippetNotFound = errors.New("snippet not found")
)

// Field is a value prompted for when a snippet is inserted. The body
// refers to it as [[name]].
type Field struct {
	Name    string `yaml:"name" json:"name"`
	Title   string `yaml:"title,omitempty" json:"title,omitempty"`
	Default string `yaml:"default,omitempty" json:"default,omitempty"`
}

// Definition is a stored snippet.
type Definition struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Body        []string `yaml:"body" json:"body"`
	Fields      []Field  `yaml:"fields,omitempty" json:"fields,omitempty"`
	IsMedia     bool     `yaml:"is_media_snippet,omitempty" json:"isMediaSnippet,omitempty"`
	// SourcePath is set for snippets loaded from an external data file.
	// Replace never keeps them.
	SourcePath  string   `yaml:"source_path,omitempty" json:"sourcePath,omitempty"`
}

// FieldValue is the payload entry recorded for each field.
type FieldValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Render substitutes field values into the body and wraps the result in
// sentinels so the block can be located and edited later. Fields without
// a value use their default.
func (d Definition) Render(values map[string]string) (string, error) {
	body := strings.Join(d.Body, "\n")

	fields := make([]any, 0, len(d.Fields))
	for _, f := range d.Fields {
		v, ok := values[f.Name]
		if !ok {
			v = f.Default
		}
		body = strings.ReplaceAll(body, "[["+f.Name+"]]", v)
		fields = append(fields, FieldValue{Name: f.Name, Value: v})
	}

	return Wrap(Info{ID: d.Title, Fields: fields}, body)
}

// Catalog is the ordered set of stored snippets.
type Catalog struct {
	items []Definition
}

// NewCatalog returns a catalog holding defs.
func NewCatalog(defs []Definition) *Catalog {
	return &Catalog{items: append([]Definition(nil), defs...)}
}

// Definitions returns the stored snippets.
func (c *Catalog) Definitions() []Definition {
	return append([]Definition(nil), c.items...)
}

// Get returns the snippet with the given title.
func (c *Catalog) Get(title string) (Definition, error) {
	for _, d := range c.items {
		if d.Title == title {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("%q: %w", title, ErrSnippetNotFound)
}

// Add stores a new snippet. The body is split into lines.
func (c *Catalog) Add(title, description, body string, fields []Field) (Definition, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
		return Definition{}, ErrSnippetIncomplete
	}
	if _, err := c.Get(title); err == nil {
		return Definition{}, fmt.Errorf("%q: %w", title, ErrSnippetExists)
	}

	d := Definition{
		Title:       title,
		Description: description,
		Body:        strings.Split(body, "\n"),
		Fields:      fields,
	}
	c.items = append(c.items, d)
	return d, nil
}

// Replace swaps the stored snippets for defs and returns the ones kept.
// Snippets with a SourcePath are dropped. Every kept snippet needs a title
// and a body, and titles must be unique.
func (c *Catalog) Replace(defs []Definition) ([]Definition, error) {
	kept := make([]Definition, 0, len(defs))
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if d.SourcePath != "" {
			continue
		}
		if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(strings.Join(d.Body, "\n")) == "" {
			return nil, fmt.Errorf("%q: %w", d.Title, ErrSnippetIncomplete)
		}
		if seen[d.Title] {
			return nil, fmt.Errorf("%q: %w", d.Title, ErrSnippetExists)
		}
		seen[d.Title] = true
		kept = append(kept, d)
	}
	c.items = kept
	return append([]Definition(nil), kept...), nil
}
