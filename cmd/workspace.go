package cmd

import (
	"context"

	"github.com/eykd/fmx/internal/article"
	"github.com/eykd/fmx/internal/domain"
	"github.com/eykd/fmx/internal/snippet"
)

// DocumentResult holds the outcome of a front matter operation.
type DocumentResult struct {
	Path     string           `json:"path"`
	Changed  bool             `json:"changed"`
	Planned  bool             `json:"planned"`
	Fields   map[string]any   `json:"fields,omitempty"`
	Metadata map[string]any   `json:"metadata,omitempty"`
	Edit     *domain.TextEdit `json:"edit,omitempty"`
	Notices  []domain.Notice  `json:"notices,omitempty"`
}

// SlugResult holds the outcome of a slug update.
type SlugResult struct {
	DocumentResult
	Slug        string `json:"slug,omitempty"`
	RenamedFrom string `json:"renamedFrom,omitempty"`
	RenamedTo   string `json:"renamedTo,omitempty"`
	RenameError string `json:"renameError,omitempty"`
}

// TaxonomyResult holds the outcome of setting a taxonomy.
type TaxonomyResult struct {
	DocumentResult
	Added []string `json:"added,omitempty"`
}

// SnippetResult holds the outcome of inserting a snippet.
type SnippetResult struct {
	DocumentResult
	Replaced bool `json:"replaced"`
}

// DraftRunner toggles draft flags.
type DraftRunner interface {
	ToggleDraft(ctx context.Context, path string, apply bool) (*DocumentResult, error)
}

// DateRunner writes date fields.
type DateRunner interface {
	UpdateDate(ctx context.Context, path, field string, force, apply bool) (*DocumentResult, error)
	SetDate(ctx context.Context, path string, apply bool) (*DocumentResult, error)
	SetLastModified(ctx context.Context, path string, apply bool) (*DocumentResult, error)
}

// PresaveRunner runs the pre-save hook.
type PresaveRunner interface {
	WillSave(ctx context.Context, path string, apply bool) (*DocumentResult, error)
}

// SlugRunner derives slugs.
type SlugRunner interface {
	UpdateSlug(ctx context.Context, path string, apply bool) (*SlugResult, error)
	SlugFromPath(ctx context.Context, path string) (string, bool, error)
}

// TaxonomyRunner reads and writes taxonomy fields.
type TaxonomyRunner interface {
	TaxonomyOptions(ctx context.Context, path, kind string) ([]article.Option, error)
	SetTaxonomy(ctx context.Context, path, kind string, values []string, remember, apply bool) (*TaxonomyResult, error)
}

// SnippetRunner manages snippet blocks and stored snippets.
type SnippetRunner interface {
	ListSnippets(ctx context.Context) ([]snippet.Definition, error)
	LocateSnippet(ctx context.Context, path string, sel domain.Range) (*snippet.Match, error)
	InsertSnippet(ctx context.Context, path, title string, values map[string]string, sel domain.Range, apply bool) (*SnippetResult, error)
	AddSnippet(ctx context.Context, def snippet.Definition, apply bool) (snippet.Definition, error)
	ReplaceSnippets(ctx context.Context, defs []snippet.Definition, apply bool) ([]snippet.Definition, error)
}

// PlaceholderRunner expands placeholder templates.
type PlaceholderRunner interface {
	ResolvePlaceholder(ctx context.Context, tmpl, title string) (string, error)
}

// Workspace is every operation the commands need.
type Workspace interface {
	DraftRunner
	DateRunner
	PresaveRunner
	SlugRunner
	TaxonomyRunner
	SnippetRunner
	PlaceholderRunner
}
