// Package contenttype resolves which field schema governs a document.
package contenttype

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultName is the name of the fallback content type.
const DefaultName = "default"

// FieldKind is the type of a content type field.
type FieldKind string

const (
	KindString     FieldKind = "string"
	KindText       FieldKind = "text"
	KindNumber     FieldKind = "number"
	KindDateTime   FieldKind = "datetime"
	KindBoolean    FieldKind = "boolean"
	KindDraft      FieldKind = "draft"
	KindImage      FieldKind = "image"
	KindList       FieldKind = "list"
	KindTags       FieldKind = "tags"
	KindCategories FieldKind = "categories"
	KindTaxonomy   FieldKind = "taxonomy"
	KindSlug       FieldKind = "slug"
)

// Field describes one front matter field.
type Field struct {
	Name           string    `yaml:"name" json:"name"`
	Type           FieldKind `yaml:"type" json:"type"`
	Default        string    `yaml:"default,omitempty" json:"default,omitempty"`
	DateFormat     string    `yaml:"date_format,omitempty" json:"dateFormat,omitempty"`
	IsPublishDate  bool      `yaml:"is_publish_date,omitempty" json:"isPublishDate,omitempty"`
	IsModifiedDate bool      `yaml:"is_modified_date,omitempty" json:"isModifiedDate,omitempty"`
	TaxonomyID     string    `yaml:"taxonomy_id,omitempty" json:"taxonomyId,omitempty"`
}

// Definition is a named field schema.
type Definition struct {
	Name       string  `yaml:"name" json:"name"`
	Fields     []Field `yaml:"fields" json:"fields"`
	PageBundle bool    `yaml:"page_bundle,omitempty" json:"pageBundle,omitempty"`
	// Prefix overrides the global file prefix. An empty string disables
	// prefixing for this type.
	Prefix *string `yaml:"file_prefix,omitempty" json:"filePrefix,omitempty"`
	// PathPattern is a doublestar glob matched against workspace-relative
	// paths.
	PathPattern string `yaml:"path_pattern,omitempty" json:"pathPattern,omitempty"`
}

// Default returns the built-in content type used when nothing else
// matches.
func Default() Definition {
	return Definition{
		Name: DefaultName,
		Fields: []Field{
			{Name: "title", Type: KindString},
			{Name: "description", Type: KindString},
			{Name: "date", Type: KindDateTime, IsPublishDate: true},
			{Name: "lastmod", Type: KindDateTime, IsModifiedDate: true},
			{Name: "preview", Type: KindImage},
			{Name: "draft", Type: KindDraft},
			{Name: "tags", Type: KindTags},
			{Name: "categories", Type: KindCategories},
		},
	}
}

// Field returns the field called name.
func (d Definition) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FilePrefix picks the prefix for new or renamed files: the content type's
// own prefix, then the content folder's, then the global one. The second
// result is false when no prefix applies.
func (d Definition) FilePrefix(global string, folderPrefix *string) (string, bool) {
	switch {
	case d.Prefix != nil:
		return *d.Prefix, *d.Prefix != ""
	case folderPrefix != nil:
		return *folderPrefix, *folderPrefix != ""
	}
	return global, global != ""
}

// PublishDateFields returns every field flagged as a publish date.
func (d Definition) PublishDateFields() []Field {
	var out []Field
	for _, f := range d.Fields {
		if f.Type == KindDateTime && f.IsPublishDate {
			out = append(out, f)
		}
	}
	return out
}

// ModifiedDateField returns the field flagged as the last-modified date.
func (d Definition) ModifiedDateField() (Field, bool) {
	for _, f := range d.Fields {
		if f.Type == KindDateTime && f.IsModifiedDate {
			return f, true
		}
	}
	return Field{}, false
}

// DraftField returns the field holding the draft flag.
func (d Definition) DraftField() (Field, bool) {
	for _, f := range d.Fields {
		if f.Type == KindDraft {
			return f, true
		}
	}
	return Field{}, false
}

// TaxonomyField returns the field storing the given taxonomy. kind is
// "tags", "categories", or a custom taxonomy id.
func (d Definition) TaxonomyField(kind string) (Field, bool) {
	for _, f := range d.Fields {
		switch {
		case kind == string(KindTags) && f.Type == KindTags,
			kind == string(KindCategories) && f.Type == KindCategories,
			f.Type == KindTaxonomy && f.TaxonomyID == kind:
			return f, true
		}
	}
	return Field{}, false
}

// TemplateIndex maps a literal default template to the fields that use it.
type TemplateIndex map[string][]Field

// Templates indexes the fields of d by their default template.
func (d Definition) Templates() TemplateIndex {
	idx := make(TemplateIndex)
	for _, f := range d.Fields {
		if f.Default == "" {
			continue
		}
		idx[f.Default] = append(idx[f.Default], f)
	}
	return idx
}

// FieldsWithTemplate returns every field of d whose default is exactly
// token.
func FieldsWithTemplate(d Definition, token string) []Field {
	return d.Templates()[token]
}

// Lookup reads string metadata values.
type Lookup interface {
	String(key string) (string, bool)
}

// Catalog holds the configured content types.
type Catalog struct {
	defs []Definition
}

// NewCatalog returns a catalog over defs. Order matters for path pattern
// matching.
func NewCatalog(defs []Definition) *Catalog {
	return &Catalog{defs: append([]Definition(nil), defs...)}
}

// Definitions returns the configured content types.
func (c *Catalog) Definitions() []Definition {
	if c == nil {
		return nil
	}
	return append([]Definition(nil), c.defs...)
}

// Get returns the content type called name.
func (c *Catalog) Get(name string) (Definition, bool) {
	if c == nil || name == "" {
		return Definition{}, false
	}
	for _, d := range c.defs {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// typeKeys are the metadata fields that name a content type explicitly.
var typeKeys = []string{"type", "layout"}

// Resolve picks the content type for a document: an explicit type field,
// then the first path pattern matching relPath, then the configured
// default, then the built-in default.
func (c *Catalog) Resolve(meta Lookup, relPath string) Definition {
	if meta != nil {
		for _, key := range typeKeys {
			if name, ok := meta.String(key); ok {
				if d, ok := c.Get(name); ok {
					return d
				}
			}
		}
	}

	if relPath != "" && c != nil {
		p := path.Clean(strings.ReplaceAll(relPath, "\\", "/"))
		for _, d := range c.defs {
			if d.PathPattern == "" {
				continue
			}
			if ok, err := doublestar.Match(d.PathPattern, p); err == nil && ok {
				return d
			}
		}
	}

	if d, ok := c.Get(DefaultName); ok {
		return d
	}
	return Default()
}
