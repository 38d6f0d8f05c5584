package article

import (
	"fmt"

	"github.com/eykd/fmx/internal/frontmatter"
)

// Option is an entry of a taxonomy picker.
type Option struct {
	Value  string `json:"value"`
	Picked bool   `json:"picked"`
}

// TaxonomyFieldName returns the field storing kind for the document.
func (m *Mutator) TaxonomyFieldName(doc *frontmatter.Document, relPath, kind string) string {
	if f, ok := m.ContentType(doc, relPath).TaxonomyField(kind); ok {
		return f.Name
	}
	return kind
}

// TaxonomyOptions lists the values a user may pick for kind: the
// document's current values first, marked picked, then the rest of the
// known vocabulary in configured order.
func (m *Mutator) TaxonomyOptions(doc *frontmatter.Document, relPath, kind string) []Option {
	if !applicable(doc) || kind == "" {
		return nil
	}

	field := m.TaxonomyFieldName(doc, relPath, kind)
	current := doc.Metadata.Strings(field)

	seen := make(map[string]bool)
	var opts []Option
	for _, v := range current {
		if seen[v] {
			continue
		}
		seen[v] = true
		opts = append(opts, Option{Value: v, Picked: true})
	}
	for _, v := range m.cfg.KnownTaxonomies[kind] {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		opts = append(opts, Option{Value: v})
	}

	if len(opts) == 0 {
		m.notifyInfo(fmt.Sprintf("No %s configured or set on the document.", kind), relPath)
	}
	return opts
}

// SetTaxonomy replaces the taxonomy field with exactly confirmed. Values
// not confirmed are removed.
func (m *Mutator) SetTaxonomy(doc *frontmatter.Document, relPath, kind string, confirmed []string) *Change {
	if !applicable(doc) || kind == "" {
		return nil
	}

	values := make([]string, 0, len(confirmed))
	seen := make(map[string]bool, len(confirmed))
	for _, v := range confirmed {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}

	meta := doc.Metadata.Clone()
	meta.Set(m.TaxonomyFieldName(doc, relPath, kind), values)
	return m.commit(doc, meta, relPath)
}

// UnknownTerms returns the confirmed values missing from the known
// vocabulary of kind, in order.
func (m *Mutator) UnknownTerms(kind string, confirmed []string) []string {
	known := make(map[string]bool)
	for _, v := range m.cfg.KnownTaxonomies[kind] {
		known[v] = true
	}
	var out []string
	for _, v := range confirmed {
		if v == "" || known[v] {
			continue
		}
		known[v] = true
		out = append(out, v)
	}
	return out
}
