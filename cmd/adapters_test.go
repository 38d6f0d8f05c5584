package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/eykd/fmx/internal/config"
	"github.com/eykd/fmx/internal/snippet"
)

// newTempWorkspace creates an initialized workspace holding files and an
// adapter rooted at it.
func newTempWorkspace(t *testing.T, cfg config.Config, files map[string]string) (string, *workspaceAdapter) {
	t.Helper()
	dir := t.TempDir()
	if err := config.Save(dir, &cfg); err != nil {
		t.Fatalf("config.Save() error = %v", err)
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	a := newWorkspaceAdapter(func() (string, error) { return dir, nil }, new(bytes.Buffer))
	a.now = func() time.Time { return time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC) }
	return dir, a
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestWorkspaceAdapter_ToggleDraft(t *testing.T) {
	dir, a := newTempWorkspace(t, config.Default(), map[string]string{
		"post.md": "---\ntitle: A\n---\nBody\n",
	})

	res, err := a.ToggleDraft(context.Background(), "post.md", true)
	if err != nil {
		t.Fatalf("ToggleDraft() error = %v", err)
	}
	if !res.Changed || res.Planned {
		t.Errorf("Changed=%v Planned=%v, want applied change", res.Changed, res.Planned)
	}
	if res.Fields["draft"] != true {
		t.Errorf("Fields = %v, want draft true", res.Fields)
	}
	want := "---\ntitle: A\ndraft: true\n---\nBody\n"
	if got := readFile(t, filepath.Join(dir, "post.md")); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestWorkspaceAdapter_DryRunLeavesFile(t *testing.T) {
	raw := "---\ntitle: A\n---\nBody\n"
	dir, a := newTempWorkspace(t, config.Default(), map[string]string{"post.md": raw})

	res, err := a.ToggleDraft(context.Background(), "post.md", false)
	if err != nil {
		t.Fatalf("ToggleDraft() error = %v", err)
	}
	if !res.Planned {
		t.Error("Planned = false, want true")
	}
	if got := readFile(t, filepath.Join(dir, "post.md")); got != raw {
		t.Errorf("file changed on dry run: %q", got)
	}
}

func TestWorkspaceAdapter_UpdateSlugRenames(t *testing.T) {
	cfg := config.Default()
	cfg.Slug.UpdateFileName = true
	dir, a := newTempWorkspace(t, cfg, map[string]string{
		"posts/old.md": "---\ntitle: My Post\n---\n",
	})

	res, err := a.UpdateSlug(context.Background(), "posts/old.md", true)
	if err != nil {
		t.Fatalf("UpdateSlug() error = %v", err)
	}
	if res.Slug != "my-post" {
		t.Errorf("Slug = %q, want my-post", res.Slug)
	}
	if res.RenamedFrom != "posts/old.md" || res.RenamedTo != "posts/my-post.md" {
		t.Errorf("rename = %q -> %q", res.RenamedFrom, res.RenamedTo)
	}
	if res.RenameError != "" {
		t.Errorf("RenameError = %q", res.RenameError)
	}
	if got := readFile(t, filepath.Join(dir, "posts", "my-post.md")); !strings.Contains(got, "slug: my-post") {
		t.Errorf("renamed file = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "posts", "old.md")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("old file still present: %v", err)
	}
}

func TestWorkspaceAdapter_UpdateSlugTargetExists(t *testing.T) {
	cfg := config.Default()
	cfg.Slug.UpdateFileName = true
	dir, a := newTempWorkspace(t, cfg, map[string]string{
		"old.md":     "---\ntitle: My Post\n---\n",
		"my-post.md": "taken\n",
	})

	res, err := a.UpdateSlug(context.Background(), "old.md", true)
	if err != nil {
		t.Fatalf("UpdateSlug() error = %v", err)
	}
	if res.RenameError == "" {
		t.Fatal("RenameError empty, want target exists failure")
	}
	if got := readFile(t, filepath.Join(dir, "old.md")); !strings.Contains(got, "slug: my-post") {
		t.Errorf("metadata not kept after failed rename: %q", got)
	}
	if got := readFile(t, filepath.Join(dir, "my-post.md")); got != "taken\n" {
		t.Errorf("existing target overwritten: %q", got)
	}
}

func TestWorkspaceAdapter_NoticesDoNotAccumulate(t *testing.T) {
	cfg := config.Default()
	cfg.Slug.UpdateFileName = true
	_, a := newTempWorkspace(t, cfg, map[string]string{
		"a.md":       "---\ntitle: My Post\n---\n",
		"b.md":       "---\ntitle: My Post\n---\n",
		"my-post.md": "taken\n",
	})

	for _, name := range []string{"a.md", "b.md"} {
		res, err := a.UpdateSlug(context.Background(), name, true)
		if err != nil {
			t.Fatalf("UpdateSlug(%s) error = %v", name, err)
		}
		if len(res.Notices) != 1 || res.Notices[0].Path == "" {
			t.Errorf("UpdateSlug(%s) notices = %+v, want the rename warning only", name, res.Notices)
		}
		if len(a.notifier.Notices) != 0 {
			t.Errorf("notifier kept %d notices after UpdateSlug(%s)", len(a.notifier.Notices), name)
		}
	}
}

func TestWorkspaceAdapter_SetTaxonomyRemember(t *testing.T) {
	cfg := config.Default()
	cfg.Taxonomies.Tags = []string{"go"}
	dir, a := newTempWorkspace(t, cfg, map[string]string{"a.md": "---\ntitle: A\n---\n"})

	res, err := a.SetTaxonomy(context.Background(), "a.md", "tags", []string{"go", "cli"}, true, true)
	if err != nil {
		t.Fatalf("SetTaxonomy() error = %v", err)
	}
	if !slices.Equal(res.Added, []string{"cli"}) {
		t.Errorf("Added = %v, want [cli]", res.Added)
	}

	saved, err := config.Load(dir)
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	if !slices.Equal(saved.Taxonomies.Tags, []string{"go", "cli"}) {
		t.Errorf("saved tags = %v, want [go cli]", saved.Taxonomies.Tags)
	}

	opts, err := a.TaxonomyOptions(context.Background(), "a.md", "tags")
	if err != nil {
		t.Fatalf("TaxonomyOptions() error = %v", err)
	}
	if len(opts) != 2 {
		t.Errorf("options = %v, want go and cli", opts)
	}
}

func TestWorkspaceAdapter_ResolvePlaceholder(t *testing.T) {
	_, a := newTempWorkspace(t, config.Default(), nil)

	got, err := a.ResolvePlaceholder(context.Background(), "{{year}}/{{slug}}", "Hello World")
	if err != nil {
		t.Fatalf("ResolvePlaceholder() error = %v", err)
	}
	if got != "2024/hello-world" {
		t.Errorf("ResolvePlaceholder() = %q, want 2024/hello-world", got)
	}
}

func TestWorkspaceAdapter_NotInProject(t *testing.T) {
	dir := t.TempDir()
	a := newWorkspaceAdapter(func() (string, error) { return dir, nil }, new(bytes.Buffer))

	_, err := a.ToggleDraft(context.Background(), "a.md", true)
	if !errors.Is(err, ErrNotInProject) {
		t.Errorf("error = %v, want ErrNotInProject", err)
	}
}

func TestWorkspaceAdapter_UnsupportedFile(t *testing.T) {
	_, a := newTempWorkspace(t, config.Default(), map[string]string{"notes.txt": "---\ntitle: A\n---\n"})

	if _, err := a.ToggleDraft(context.Background(), "notes.txt", true); err == nil {
		t.Error("expected error for a file type outside file_types")
	}
}

func TestWorkspaceAdapter_ReplaceSnippets(t *testing.T) {
	cfg := config.Default()
	cfg.Snippets = []snippet.Definition{{Title: "Old", Body: []string{"o"}}}
	dir, a := newTempWorkspace(t, cfg, nil)

	kept, err := a.ReplaceSnippets(context.Background(), []snippet.Definition{
		{Title: "New", Body: []string{"n"}},
		{Title: "Shared", Body: []string{"s"}, SourcePath: "data/snippets.yaml"},
	}, true)
	if err != nil {
		t.Fatalf("ReplaceSnippets() error = %v", err)
	}
	if len(kept) != 1 || kept[0].Title != "New" {
		t.Errorf("kept = %+v", kept)
	}

	saved, err := config.Load(dir)
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	if len(saved.Snippets) != 1 || saved.Snippets[0].Title != "New" {
		t.Errorf("saved snippets = %+v, want New only", saved.Snippets)
	}
	defs, err := a.ListSnippets(context.Background())
	if err != nil || len(defs) != 1 || defs[0].Title != "New" {
		t.Errorf("ListSnippets() = %+v, %v", defs, err)
	}
}
