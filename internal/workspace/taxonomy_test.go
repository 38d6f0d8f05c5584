package workspace

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/eykd/fmx/internal/article"
)

func TestService_TaxonomyOptions(t *testing.T) {
	cfg := article.Config{KnownTaxonomies: map[string][]string{"tags": {"go", "yaml", "cli"}}}
	f := newFixture(cfg, map[string]string{"a.md": "---\ntitle: A\ntags: [cli]\n---\n"})

	got, err := f.svc.TaxonomyOptions(context.Background(), "a.md", "tags")
	if err != nil {
		t.Fatalf("TaxonomyOptions() error = %v", err)
	}
	want := []article.Option{{Value: "cli", Picked: true}, {Value: "go"}, {Value: "yaml"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TaxonomyOptions() = %+v, want %+v", got, want)
	}
	if f.locker.tryLockCalled {
		t.Error("read-only operation took the lock")
	}
}

func TestService_SetTaxonomy(t *testing.T) {
	cfg := article.Config{KnownTaxonomies: map[string][]string{"tags": {"go"}}}
	raw := "---\ntitle: A\ntags:\n  - old\n---\n"

	t.Run("replaces field", func(t *testing.T) {
		f := newFixture(cfg, map[string]string{"a.md": raw})
		res, err := f.svc.SetTaxonomy(context.Background(), "a.md", "tags", []string{"go", "new"}, false)
		if err != nil {
			t.Fatalf("SetTaxonomy() error = %v", err)
		}
		if !reflect.DeepEqual(res.Metadata["tags"], []string{"go", "new"}) {
			t.Errorf("tags = %#v", res.Metadata["tags"])
		}
		if res.Added != nil {
			t.Errorf("Added = %v, want nil without remember", res.Added)
		}
	})

	t.Run("remembers unknown terms", func(t *testing.T) {
		settings := &fakeSettings{}
		f := newFixture(cfg, map[string]string{"a.md": raw}, WithSettingsStore(settings))
		res, err := f.svc.SetTaxonomy(context.Background(), "a.md", "tags", []string{"go", "new"}, true)
		if err != nil {
			t.Fatalf("SetTaxonomy() error = %v", err)
		}
		if !reflect.DeepEqual(res.Added, []string{"new"}) {
			t.Errorf("Added = %v, want [new]", res.Added)
		}
		if !reflect.DeepEqual(settings.terms["tags"], []string{"new"}) {
			t.Errorf("saved terms = %v", settings.terms)
		}
	})

	t.Run("settings failure is returned", func(t *testing.T) {
		saveErr := errors.New("read-only config")
		settings := &fakeSettings{err: saveErr}
		f := newFixture(cfg, map[string]string{"a.md": raw}, WithSettingsStore(settings))
		if _, err := f.svc.SetTaxonomy(context.Background(), "a.md", "tags", []string{"new"}, true); !errors.Is(err, saveErr) {
			t.Errorf("error = %v, want %v", err, saveErr)
		}
	})
}
