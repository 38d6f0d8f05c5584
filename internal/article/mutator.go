// Package article implements the field-level operations on a document's
// front matter: draft toggling, dates, slugs, and taxonomies.
//
// Operations never write files. Each returns the updated metadata and the
// text edit replacing the front matter block, or nil when there is
// nothing to do. Configuration problems are reported to the Notifier.
package article

import (
	"fmt"
	"time"

	"github.com/eykd/fmx/internal/contenttype"
	"github.com/eykd/fmx/internal/domain"
	"github.com/eykd/fmx/internal/frontmatter"
	"github.com/eykd/fmx/internal/slug"
)

// Fallback field names used when the content type does not flag one.
const (
	FieldDraft   = "draft"
	FieldDate    = "date"
	FieldLastMod = "lastmod"
	FieldSlug    = "slug"
)

// Change is the result of a mutating operation.
type Change struct {
	Metadata *frontmatter.Metadata
	Edit     domain.TextEdit
	// Rename is set by UpdateSlug when the file should be renamed after
	// the edit is saved.
	Rename *RenameRequest
}

// RenameRequest asks the host to rename a file once the edit is written.
type RenameRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Mutator applies field operations under a fixed configuration.
type Mutator struct {
	cfg     Config
	catalog *contenttype.Catalog
	notify  domain.Notifier
	now     func() time.Time
}

// New returns a Mutator. A nil notifier discards notices; a nil clock
// uses time.Now.
func New(cfg Config, catalog *contenttype.Catalog, notifier domain.Notifier, now func() time.Time) *Mutator {
	if notifier == nil {
		notifier = domain.Discard
	}
	if now == nil {
		now = time.Now
	}
	return &Mutator{cfg: cfg, catalog: catalog, notify: notifier, now: now}
}

// Config returns the mutator's settings.
func (m *Mutator) Config() Config { return m.cfg }

// ContentType resolves the content type governing doc.
func (m *Mutator) ContentType(doc *frontmatter.Document, relPath string) contenttype.Definition {
	var meta contenttype.Lookup
	if doc != nil && doc.Metadata != nil {
		meta = doc.Metadata
	}
	return m.catalog.Resolve(meta, relPath)
}

func applicable(doc *frontmatter.Document) bool {
	return doc != nil && doc.HasFrontMatter()
}

func (m *Mutator) slugOptions() []slug.Option {
	if len(m.cfg.SlugStopWords) == 0 {
		return nil
	}
	return []slug.Option{slug.WithStopWords(m.cfg.SlugStopWords...)}
}

// ToggleDraft flips the draft flag. An absent or falsy flag becomes true.
func (m *Mutator) ToggleDraft(doc *frontmatter.Document, relPath string) *Change {
	if !applicable(doc) {
		return nil
	}

	field := FieldDraft
	if f, ok := m.ContentType(doc, relPath).DraftField(); ok {
		field = f.Name
	}

	meta := doc.Metadata.Clone()
	meta.Set(field, !meta.Bool(field))
	return m.commit(doc, meta, relPath)
}

// report sends err to the notifier. Configuration errors name their
// setting.
func (m *Mutator) report(err error, relPath string) {
	if ce, ok := domain.AsConfigError(err); ok {
		m.notify.Notify(ce.ToNotice(relPath))
		return
	}
	m.notify.Notify(domain.Notice{
		Severity: domain.SeverityError,
		Message:  err.Error(),
		Path:     relPath,
	})
}

func (m *Mutator) commit(doc *frontmatter.Document, meta *frontmatter.Metadata, relPath string) *Change {
	edit, err := doc.Edit(meta)
	if err != nil {
		m.report(fmt.Errorf("writing front matter: %w", err), relPath)
		return nil
	}
	return &Change{Metadata: meta, Edit: edit}
}
