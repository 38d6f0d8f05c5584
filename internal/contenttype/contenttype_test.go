package contenttype

import "testing"

type lookup map[string]string

func (l lookup) String(key string) (string, bool) {
	v, ok := l[key]
	return v, ok
}

func ptr(s string) *string { return &s }

func testCatalog() *Catalog {
	return NewCatalog([]Definition{
		{
			Name: "post",
			Fields: []Field{
				{Name: "title", Type: KindString},
				{Name: "slug", Type: KindSlug, Default: "{{slug}}"},
				{Name: "permalink", Type: KindString, Default: "{{slug}}"},
				{Name: "url", Type: KindString, Default: "{{post-url}}"},
				{Name: "published", Type: KindDateTime, IsPublishDate: true, DateFormat: "yyyy-MM-dd"},
				{Name: "updated", Type: KindDateTime, IsModifiedDate: true},
				{Name: "wip", Type: KindDraft},
				{Name: "labels", Type: KindTags},
				{Name: "series", Type: KindTaxonomy, TaxonomyID: "series"},
			},
			PathPattern: "blog/**/*.md",
			Prefix:      ptr("yyyy-MM-dd"),
		},
		{Name: "page", Fields: []Field{{Name: "title", Type: KindString}}, Prefix: ptr("")},
		{Name: "docs", PathPattern: "docs/**"},
	})
}

func TestCatalog_Resolve(t *testing.T) {
	c := testCatalog()

	tests := []struct {
		name    string
		meta    Lookup
		relPath string
		want    string
	}{
		{"explicit type", lookup{"type": "page"}, "blog/2024/a.md", "page"},
		{"layout field", lookup{"layout": "page"}, "", "page"},
		{"unknown type falls through to path", lookup{"type": "nope"}, "blog/2024/a.md", "post"},
		{"path pattern", nil, "blog/a.md", "post"},
		{"windows separators", nil, `docs\guide\intro.md`, "docs"},
		{"built-in default", lookup{}, "notes/a.md", DefaultName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Resolve(tt.meta, tt.relPath); got.Name != tt.want {
				t.Errorf("Resolve() = %q, want %q", got.Name, tt.want)
			}
		})
	}
}

func TestCatalog_ResolveConfiguredDefault(t *testing.T) {
	c := NewCatalog([]Definition{{Name: DefaultName, Fields: []Field{{Name: "only", Type: KindString}}}})
	got := c.Resolve(nil, "x.md")
	if len(got.Fields) != 1 || got.Fields[0].Name != "only" {
		t.Errorf("Resolve() = %+v, want configured default", got)
	}
}

func TestCatalog_Nil(t *testing.T) {
	var c *Catalog
	if got := c.Resolve(lookup{"type": "x"}, "a.md"); got.Name != DefaultName {
		t.Errorf("Resolve() = %q, want built-in default", got.Name)
	}
}

func TestDefinition_FilePrefix(t *testing.T) {
	folder := ptr("folder")
	tests := []struct {
		name   string
		def    Definition
		folder *string
		want   string
		wantOK bool
	}{
		{"content type wins", Definition{Prefix: ptr("type")}, folder, "type", true},
		{"empty content type disables", Definition{Prefix: ptr("")}, folder, "", false},
		{"folder over global", Definition{}, folder, "folder", true},
		{"global", Definition{}, nil, "global", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.def.FilePrefix("global", tt.folder)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FilePrefix() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if _, ok := (Definition{}).FilePrefix("", nil); ok {
		t.Error("FilePrefix() with nothing configured reported a prefix")
	}
}

func TestFieldsWithTemplate(t *testing.T) {
	post, _ := testCatalog().Get("post")

	got := FieldsWithTemplate(post, "{{slug}}")
	if len(got) != 2 || got[0].Name != "slug" || got[1].Name != "permalink" {
		t.Errorf("FieldsWithTemplate({{slug}}) = %+v", got)
	}
	if got := FieldsWithTemplate(post, "{{title}}"); len(got) != 0 {
		t.Errorf("FieldsWithTemplate({{title}}) = %+v, want none", got)
	}
	if got := post.Templates()["{{post-url}}"]; len(got) != 1 || got[0].Name != "url" {
		t.Errorf("Templates()[{{post-url}}] = %+v", got)
	}
}

func TestDefinition_FieldHelpers(t *testing.T) {
	post, _ := testCatalog().Get("post")

	if got := post.PublishDateFields(); len(got) != 1 || got[0].Name != "published" {
		t.Errorf("PublishDateFields() = %+v", got)
	}
	if f, ok := post.ModifiedDateField(); !ok || f.Name != "updated" {
		t.Errorf("ModifiedDateField() = %+v, %v", f, ok)
	}
	if f, ok := post.DraftField(); !ok || f.Name != "wip" {
		t.Errorf("DraftField() = %+v, %v", f, ok)
	}
	if f, ok := post.TaxonomyField("tags"); !ok || f.Name != "labels" {
		t.Errorf("TaxonomyField(tags) = %+v, %v", f, ok)
	}
	if f, ok := post.TaxonomyField("series"); !ok || f.Name != "series" {
		t.Errorf("TaxonomyField(series) = %+v, %v", f, ok)
	}
	if _, ok := post.TaxonomyField("categories"); ok {
		t.Error("TaxonomyField(categories) found a field")
	}

	def := Default()
	if f, ok := def.ModifiedDateField(); !ok || f.Name != "lastmod" {
		t.Errorf("Default().ModifiedDateField() = %+v, %v", f, ok)
	}
	if f, ok := def.DraftField(); !ok || f.Name != "draft" {
		t.Errorf("Default().DraftField() = %+v, %v", f, ok)
	}
}
