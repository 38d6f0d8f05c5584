package frontmatter

import "testing"

func TestSerialize_RoundTripHostileStrings(t *testing.T) {
	// Values that look like YAML syntax or contain a closing delimiter must
	// survive a write and re-read unchanged, without ending the block early.
	tests := []struct {
		name  string
		value string
	}{
		{"double quotes with colon", `He said "hello": a greeting`},
		{"quotes with newline", "Line one \"quoted\"\nLine two"},
		{"hash at start", "#hashtag title"},
		{"backslash escapes", `path: C:\new\folder`},
		{"closing delimiter", "before\n---\nafter"},
		{"toml delimiter", "+++"},
		{"leading dash", "- not a list"},
		{"looks like bool", "true"},
		{"looks like number", "0012"},
	}

	for _, format := range []string{"---\ntitle: Old\n---\nBody", "+++\ntitle = \"Old\"\n+++\nBody"} {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				doc, err := Parse(format)
				if err != nil {
					t.Fatalf("Parse() error = %v", err)
				}
				meta := doc.Metadata.Clone()
				meta.Set("title", tt.value)

				out, err := doc.Serialize(meta)
				if err != nil {
					t.Fatalf("Serialize() error = %v", err)
				}

				reparsed, err := Parse(out)
				if err != nil {
					t.Fatalf("Parse(%q) error = %v", out, err)
				}
				if got := reparsed.Title(); got != tt.value {
					t.Errorf("round-trip failed: got %q, want %q (document %q)", got, tt.value, out)
				}
				if reparsed.Body != "Body" {
					t.Errorf("Body = %q, want Body", reparsed.Body)
				}
			})
		}
	}
}

func TestSerialize_HostileKey(t *testing.T) {
	doc, err := Parse("---\ntitle: Old\n---\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	meta := doc.Metadata.Clone()
	meta.Set("a: b", "c")

	out, err := doc.Serialize(meta)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	reparsed, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", out, err)
	}
	if got, _ := reparsed.Metadata.String("a: b"); got != "c" {
		t.Errorf("value = %q, want c (document %q)", got, out)
	}
}
