// Package workspace provides the application service that applies front
// matter operations to documents on disk.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/eykd/fmx/internal/article"
	"github.com/eykd/fmx/internal/domain"
	"github.com/eykd/fmx/internal/frontmatter"
	"github.com/eykd/fmx/internal/snippet"
)

// ErrUnsupportedFile is returned when a path is not an editable document.
var ErrUnsupportedFile = errors.New("not a supported document")

// ErrOutsideWorkspace is returned for paths outside the workspace root.
var ErrOutsideWorkspace = errors.New("path is outside the workspace")

// FileReader abstracts reading document content.
type FileReader interface {
	ReadFile(ctx context.Context, path string) (string, error)
}

// FileWriter abstracts writing document content.
type FileWriter interface {
	WriteFile(ctx context.Context, path, content string) error
}

// FileRenamer abstracts renaming documents. Implementations must not
// overwrite an existing file.
type FileRenamer interface {
	RenameFile(ctx context.Context, oldPath, newPath string) error
}

// Locker abstracts advisory lock acquisition for mutating operations.
type Locker interface {
	TryLock(ctx context.Context) error
	Unlock() error
}

// PathFilter decides which workspace-relative paths are documents.
type PathFilter interface {
	IsAllowed(rel string) bool
}

// SettingsStore persists additions to the workspace settings.
type SettingsStore interface {
	AddTerms(ctx context.Context, kind string, values []string) error
	AddSnippet(ctx context.Context, def snippet.Definition) error
	SetSnippets(ctx context.Context, defs []snippet.Definition) error
}

// Result holds the outcome of a document operation.
type Result struct {
	Path     string           `json:"path"`
	Changed  bool             `json:"changed"`
	Written  bool             `json:"written"`
	Metadata map[string]any   `json:"metadata,omitempty"`
	Updated  []string         `json:"updated,omitempty"`
	Edit     *domain.TextEdit `json:"edit,omitempty"`
	// Content is the full document text after the operation.
	Content string `json:"-"`
}

// SlugResult holds the outcome of UpdateSlug.
type SlugResult struct {
	Result
	Rename  *article.RenameRequest `json:"rename,omitempty"`
	Renamed bool                   `json:"renamed"`
	// RenameErr is set when the document was written but the rename
	// failed. The written metadata stands.
	RenameErr error `json:"-"`
}

// Service coordinates document operations with advisory locking.
type Service struct {
	root     string
	mutator  *article.Mutator
	reader   FileReader
	writer   FileWriter
	renamer  FileRenamer
	locker   Locker
	filter   PathFilter
	settings SettingsStore
	snippets *snippet.Catalog
	notify   domain.Notifier
	dryRun   bool
}

// Option configures a Service.
type Option func(*Service)

// WithRenamer sets the renamer used after slug updates.
func WithRenamer(r FileRenamer) Option {
	return func(s *Service) { s.renamer = r }
}

// WithPathFilter restricts operations to allowed documents.
func WithPathFilter(f PathFilter) Option {
	return func(s *Service) { s.filter = f }
}

// WithSettingsStore sets where new terms and snippets are saved.
func WithSettingsStore(st SettingsStore) Option {
	return func(s *Service) { s.settings = st }
}

// WithSnippets sets the stored snippet catalog.
func WithSnippets(c *snippet.Catalog) Option {
	return func(s *Service) { s.snippets = c }
}

// WithNotifier sets the sink for notices raised by the service itself.
func WithNotifier(n domain.Notifier) Option {
	return func(s *Service) { s.notify = n }
}

// WithDryRun computes results without writing or renaming files.
func WithDryRun(dryRun bool) Option {
	return func(s *Service) { s.dryRun = dryRun }
}

// NewService creates a Service rooted at root.
func NewService(root string, mutator *article.Mutator, reader FileReader, writer FileWriter, locker Locker, opts ...Option) *Service {
	s := &Service{
		root:     root,
		mutator:  mutator,
		reader:   reader,
		writer:   writer,
		locker:   locker,
		snippets: snippet.NewCatalog(nil),
		notify:   domain.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// operation computes a change for a parsed document.
type operation func(doc *frontmatter.Document, abs, rel string) *article.Change

// ToggleDraft flips the draft flag of the document at path.
func (s *Service) ToggleDraft(ctx context.Context, path string) (*Result, error) {
	res, _, err := s.mutate(ctx, path, func(doc *frontmatter.Document, _, rel string) *article.Change {
		return s.mutator.ToggleDraft(doc, rel)
	})
	return res, err
}

// UpdateDate sets field to the current date when present, or always when
// force is set.
func (s *Service) UpdateDate(ctx context.Context, path, field string, force bool) (*Result, error) {
	res, _, err := s.mutate(ctx, path, func(doc *frontmatter.Document, _, rel string) *article.Change {
		return s.mutator.UpdateDate(doc, rel, field, force)
	})
	return res, err
}

// SetDate sets every publish date field of the document.
func (s *Service) SetDate(ctx context.Context, path string) (*Result, error) {
	res, _, err := s.mutate(ctx, path, func(doc *frontmatter.Document, _, rel string) *article.Change {
		return s.mutator.SetDate(doc, rel)
	})
	return res, err
}

// SetLastModified sets the modified date field of the document.
func (s *Service) SetLastModified(ctx context.Context, path string) (*Result, error) {
	res, _, err := s.mutate(ctx, path, func(doc *frontmatter.Document, _, rel string) *article.Change {
		return s.mutator.SetLastModified(doc, rel)
	})
	return res, err
}

// WillSave runs the pre-save hook: the modified date is refreshed for
// documents inside a content folder when automatic updates are enabled.
func (s *Service) WillSave(ctx context.Context, path string) (*Result, error) {
	res, _, err := s.mutate(ctx, path, func(doc *frontmatter.Document, _, rel string) *article.Change {
		return s.mutator.WillSave(doc, rel)
	})
	return res, err
}

// UpdateSlug derives the slug from the title. The document is written
// first; a requested rename follows and never overwrites another file.
func (s *Service) UpdateSlug(ctx context.Context, path string) (*SlugResult, error) {
	if err := s.locker.TryLock(ctx); err != nil {
		return nil, err
	}
	defer s.locker.Unlock()

	res, change, err := s.apply(ctx, path, func(doc *frontmatter.Document, abs, rel string) *article.Change {
		return s.mutator.UpdateSlug(doc, abs, rel)
	})
	if err != nil {
		return nil, err
	}

	out := &SlugResult{Result: *res}
	if change == nil || change.Rename == nil {
		return out, nil
	}
	out.Rename = change.Rename
	if s.dryRun || s.renamer == nil {
		return out, nil
	}

	if err := s.renamer.RenameFile(ctx, change.Rename.From, change.Rename.To); err != nil {
		out.RenameErr = fmt.Errorf("rename %s: %w", change.Rename.From, err)
		s.notify.Notify(domain.Notice{
			Severity: domain.SeverityWarning,
			Message:  out.RenameErr.Error(),
			Path:     res.Path,
		})
		return out, nil
	}
	out.Renamed = true
	return out, nil
}

// SlugFromPath derives a slug from the document's file name.
func (s *Service) SlugFromPath(path string) (string, bool) {
	abs := s.abs(path)
	return s.mutator.SlugFromPath(abs, func(p string) bool {
		_, err := s.rel(p)
		return err == nil
	})
}

// mutate runs op on the document at path under the lock.
func (s *Service) mutate(ctx context.Context, path string, op operation) (*Result, *article.Change, error) {
	if err := s.locker.TryLock(ctx); err != nil {
		return nil, nil, err
	}
	defer s.locker.Unlock()

	return s.apply(ctx, path, op)
}

// apply reads, parses, and rewrites the document. The caller holds the
// lock.
func (s *Service) apply(ctx context.Context, path string, op operation) (*Result, *article.Change, error) {
	doc, abs, rel, err := s.load(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	res := &Result{Path: rel, Content: doc.Raw}
	change := op(doc, abs, rel)
	if change == nil {
		if doc.Metadata != nil {
			res.Metadata = doc.Metadata.Map()
		}
		return res, nil, nil
	}

	edit := change.Edit
	res.Changed = true
	res.Edit = &edit
	res.Metadata = change.Metadata.Map()
	for _, k := range change.Metadata.Keys() {
		if change.Metadata.Touched(k) {
			res.Updated = append(res.Updated, k)
		}
	}
	res.Content = domain.ApplyEdit(doc.Raw, edit)

	if s.dryRun {
		return res, change, nil
	}
	if err := s.writer.WriteFile(ctx, abs, res.Content); err != nil {
		return nil, nil, fmt.Errorf("write %s: %w", rel, err)
	}
	res.Written = true
	return res, change, nil
}

// load reads and parses the document at path.
func (s *Service) load(ctx context.Context, path string) (*frontmatter.Document, string, string, error) {
	abs := s.abs(path)
	rel, err := s.rel(abs)
	if err != nil {
		return nil, "", "", err
	}

	raw, err := s.reader.ReadFile(ctx, abs)
	if err != nil {
		return nil, "", "", fmt.Errorf("read %s: %w", rel, err)
	}

	doc, err := frontmatter.Parse(raw)
	if err != nil {
		return nil, "", "", fmt.Errorf("parse %s: %w", rel, err)
	}
	return doc, abs, rel, nil
}

func (s *Service) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.root, path)
}

// rel returns the workspace-relative, slash-separated form of abs and
// checks it against the path filter.
func (s *Service) rel(abs string) (string, error) {
	r, err := filepath.Rel(s.root, abs)
	if err != nil {
		return "", fmt.Errorf("%s: %w", abs, ErrOutsideWorkspace)
	}
	r = filepath.ToSlash(r)
	if r == ".." || strings.HasPrefix(r, "../") {
		return "", fmt.Errorf("%s: %w", abs, ErrOutsideWorkspace)
	}
	if s.filter != nil && !s.filter.IsAllowed(r) {
		return "", fmt.Errorf("%s: %w", r, ErrUnsupportedFile)
	}
	return r, nil
}
