package frontmatter

import (
	"strings"
	"testing"
)

func TestParse_TOML(t *testing.T) {
	raw := "+++\ntitle = \"Hello\"\ndraft = true\ntags = [\"a\", \"b\"]\n\n[params]\nauthor = \"me\"\n+++\nBody"
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Format != FormatTOML {
		t.Fatalf("Format = %v, want toml", doc.Format)
	}
	if got := strings.Join(doc.Metadata.Keys(), ","); got != "title,draft,tags,params" {
		t.Errorf("Keys() = %s", got)
	}
	if !doc.Metadata.Bool("draft") {
		t.Error("Bool(draft) = false")
	}
	if got := doc.Metadata.Strings("tags"); strings.Join(got, ",") != "a,b" {
		t.Errorf("Strings(tags) = %v", got)
	}
	params, _ := doc.Metadata.Get("params")
	if m, ok := params.(map[string]any); !ok || m["author"] != "me" {
		t.Errorf("params = %#v", params)
	}
}

func TestSerialize_TOMLScalarBeforeTables(t *testing.T) {
	raw := "+++\ntitle = \"Hello\"\n\n[params]\nauthor = \"me\"\n+++\nBody"
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	meta := doc.Metadata.Clone()
	meta.Set("slug", "hello")
	meta.Set("title", "Changed")

	got, err := doc.Serialize(meta)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	want := "+++\ntitle = \"Changed\"\nslug = \"hello\"\n\n[params]\nauthor = \"me\"\n+++\nBody"
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}

	reparsed, err := Parse(got)
	if err != nil {
		t.Fatalf("Parse(serialized) error = %v", err)
	}
	if s, _ := reparsed.Metadata.String("slug"); s != "hello" {
		t.Errorf("slug = %q", s)
	}
}

func TestSerialize_TOMLBool(t *testing.T) {
	doc, err := Parse("+++\ndraft = false # keep\ntitle = \"x\"\n+++\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	meta := doc.Metadata.Clone()
	meta.Set("draft", true)

	got, err := doc.Serialize(meta)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if want := "+++\ndraft = true\ntitle = \"x\"\n+++\n"; got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestFirstSegment(t *testing.T) {
	tests := map[string]string{
		"title":         "title",
		"params.author": "params",
		`"my key"`:      "my key",
		`'a.b'.c`:       "a.b",
		"":              "",
		`"unterminated`: "",
	}
	for in, want := range tests {
		if got := firstSegment(in); got != want {
			t.Errorf("firstSegment(%q) = %q, want %q", in, got, want)
		}
	}
}
