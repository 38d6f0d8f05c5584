package cmd

import (
	"context"

	"github.com/eykd/fmx/internal/article"
	"github.com/eykd/fmx/internal/domain"
	"github.com/eykd/fmx/internal/snippet"
)

// call records one Workspace invocation.
type call struct {
	method string
	path   string
	apply  bool
}

// mockWorkspace is a test double for Workspace.
type mockWorkspace struct {
	calls []call

	doc      *DocumentResult
	slug     *SlugResult
	taxonomy *TaxonomyResult
	options  []article.Option
	snippet  *SnippetResult
	match    *snippet.Match
	defs     []snippet.Definition
	resolved string
	err      error

	// Recorded arguments.
	field    string
	force    bool
	kind     string
	values   []string
	remember bool
	title    string
	fields   map[string]string
	sel      domain.Range
	added    snippet.Definition
	replaced []snippet.Definition
	tmpl     string
}

func (m *mockWorkspace) record(method, path string, apply bool) {
	m.calls = append(m.calls, call{method: method, path: path, apply: apply})
}

func (m *mockWorkspace) last() call {
	if len(m.calls) == 0 {
		return call{}
	}
	return m.calls[len(m.calls)-1]
}

func (m *mockWorkspace) ToggleDraft(_ context.Context, path string, apply bool) (*DocumentResult, error) {
	m.record("ToggleDraft", path, apply)
	return m.doc, m.err
}

func (m *mockWorkspace) UpdateDate(_ context.Context, path, field string, force, apply bool) (*DocumentResult, error) {
	m.record("UpdateDate", path, apply)
	m.field, m.force = field, force
	return m.doc, m.err
}

func (m *mockWorkspace) SetDate(_ context.Context, path string, apply bool) (*DocumentResult, error) {
	m.record("SetDate", path, apply)
	return m.doc, m.err
}

func (m *mockWorkspace) SetLastModified(_ context.Context, path string, apply bool) (*DocumentResult, error) {
	m.record("SetLastModified", path, apply)
	return m.doc, m.err
}

func (m *mockWorkspace) WillSave(_ context.Context, path string, apply bool) (*DocumentResult, error) {
	m.record("WillSave", path, apply)
	return m.doc, m.err
}

func (m *mockWorkspace) UpdateSlug(_ context.Context, path string, apply bool) (*SlugResult, error) {
	m.record("UpdateSlug", path, apply)
	return m.slug, m.err
}

func (m *mockWorkspace) SlugFromPath(_ context.Context, path string) (string, bool, error) {
	m.record("SlugFromPath", path, false)
	return m.resolved, m.resolved != "", m.err
}

func (m *mockWorkspace) TaxonomyOptions(_ context.Context, path, kind string) ([]article.Option, error) {
	m.record("TaxonomyOptions", path, false)
	m.kind = kind
	return m.options, m.err
}

func (m *mockWorkspace) SetTaxonomy(_ context.Context, path, kind string, values []string, remember, apply bool) (*TaxonomyResult, error) {
	m.record("SetTaxonomy", path, apply)
	m.kind, m.values, m.remember = kind, values, remember
	return m.taxonomy, m.err
}

func (m *mockWorkspace) ListSnippets(_ context.Context) ([]snippet.Definition, error) {
	m.record("ListSnippets", "", false)
	return m.defs, m.err
}

func (m *mockWorkspace) LocateSnippet(_ context.Context, path string, sel domain.Range) (*snippet.Match, error) {
	m.record("LocateSnippet", path, false)
	m.sel = sel
	return m.match, m.err
}

func (m *mockWorkspace) InsertSnippet(_ context.Context, path, title string, values map[string]string, sel domain.Range, apply bool) (*SnippetResult, error) {
	m.record("InsertSnippet", path, apply)
	m.title, m.fields, m.sel = title, values, sel
	return m.snippet, m.err
}

func (m *mockWorkspace) AddSnippet(_ context.Context, def snippet.Definition, apply bool) (snippet.Definition, error) {
	m.record("AddSnippet", "", apply)
	m.added = def
	return def, m.err
}

func (m *mockWorkspace) ReplaceSnippets(_ context.Context, defs []snippet.Definition, apply bool) ([]snippet.Definition, error) {
	m.record("ReplaceSnippets", "", apply)
	m.replaced = defs
	return defs, m.err
}

func (m *mockWorkspace) ResolvePlaceholder(_ context.Context, tmpl, title string) (string, error) {
	m.record("ResolvePlaceholder", "", false)
	m.tmpl, m.title = tmpl, title
	return m.resolved, m.err
}
