package cmd

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/eykd/fmx/internal/article"
	"github.com/eykd/fmx/internal/config"
	"github.com/eykd/fmx/internal/domain"
	"github.com/eykd/fmx/internal/fs"
	"github.com/eykd/fmx/internal/lock"
	"github.com/eykd/fmx/internal/logging"
	"github.com/eykd/fmx/internal/placeholder"
	"github.com/eykd/fmx/internal/slug"
	"github.com/eykd/fmx/internal/snippet"
	"github.com/eykd/fmx/internal/workspace"
)

// workspaceAdapter implements Workspace on top of workspace.Service. The
// workspace is opened on first use so commands that do not need one, like
// init, run anywhere. Calls are serialized: the MCP server may issue them
// concurrently and they share one advisory lock.
type workspaceAdapter struct {
	getwd func() (string, error)
	now   func() time.Time

	mu       sync.Mutex
	once     sync.Once
	openErr  error
	cwd      string
	root     string
	cfg      *config.Config
	locker   *lock.Lock
	notifier *logging.Notifier
}

func newWorkspaceAdapter(getwd func() (string, error), stderr io.Writer) *workspaceAdapter {
	return &workspaceAdapter{
		getwd:    getwd,
		now:      time.Now,
		notifier: logging.NewNotifier(stderr),
	}
}

// open locates the workspace and loads its config.
func (a *workspaceAdapter) open() error {
	a.once.Do(func() {
		cwd, err := a.getwd()
		if err != nil {
			a.openErr = err
			return
		}
		root, err := fs.FindProjectRoot(cwd)
		if errors.Is(err, fs.ErrNoProject) {
			a.openErr = ErrNotInProject
			return
		}
		if err != nil {
			a.openErr = err
			return
		}
		cfg, err := config.Load(root)
		if err != nil {
			a.openErr = &ContextError{Op: "load config", Path: config.Path(root), Err: err}
			return
		}
		locker, err := lock.ForWorkspace(root, config.Dir, config.LockName)
		if err != nil {
			a.openErr = err
			return
		}

		a.cwd, a.root, a.cfg, a.locker = cwd, root, cfg, locker
		log.Debug().Str("root", root).Msg("workspace opened")
	})
	return a.openErr
}

// service builds a workspace service for one call and clears notices left
// by earlier calls. Without apply the service only computes changes.
func (a *workspaceAdapter) service(apply bool) (*workspace.Service, error) {
	if err := a.open(); err != nil {
		return nil, err
	}
	a.notifier.Drain()
	mutator := article.New(a.cfg.Article(), a.cfg.Catalog(), a.notifier, a.now)
	return workspace.NewService(a.root, mutator, fs.OSReader{}, fs.OSWriter{}, a.locker,
		workspace.WithRenamer(fs.OSRenamer{}),
		workspace.WithPathFilter(fs.NewPathFilter(a.cfg.FileTypes, a.cfg.Ignore)),
		workspace.WithSettingsStore(&settingsStore{root: a.root, saved: a.reload}),
		workspace.WithSnippets(a.cfg.SnippetCatalog()),
		workspace.WithNotifier(a.notifier),
		workspace.WithDryRun(!apply),
	), nil
}

// reload replaces the cached config after the settings file changed.
func (a *workspaceAdapter) reload(cfg *config.Config) {
	a.cfg = cfg
}

// toDocument converts a service result.
func toDocument(r *workspace.Result, apply bool, notices []domain.Notice) *DocumentResult {
	out := &DocumentResult{
		Path:     r.Path,
		Changed:  r.Changed,
		Planned:  r.Changed && !apply,
		Metadata: r.Metadata,
		Edit:     r.Edit,
		Notices:  notices,
	}
	if len(r.Updated) > 0 {
		out.Fields = make(map[string]any, len(r.Updated))
		for _, k := range r.Updated {
			out.Fields[k] = r.Metadata[k]
		}
	}
	return out
}

// document runs a plain document operation.
func (a *workspaceAdapter) document(apply bool, op func(*workspace.Service) (*workspace.Result, error)) (*DocumentResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	svc, err := a.service(apply)
	if err != nil {
		return nil, err
	}
	r, err := op(svc)
	if err != nil {
		return nil, err
	}
	return toDocument(r, apply, a.notifier.Drain()), nil
}

func (a *workspaceAdapter) ToggleDraft(ctx context.Context, path string, apply bool) (*DocumentResult, error) {
	return a.document(apply, func(s *workspace.Service) (*workspace.Result, error) {
		return s.ToggleDraft(ctx, a.resolve(path))
	})
}

func (a *workspaceAdapter) UpdateDate(ctx context.Context, path, field string, force, apply bool) (*DocumentResult, error) {
	return a.document(apply, func(s *workspace.Service) (*workspace.Result, error) {
		return s.UpdateDate(ctx, a.resolve(path), field, force)
	})
}

func (a *workspaceAdapter) SetDate(ctx context.Context, path string, apply bool) (*DocumentResult, error) {
	return a.document(apply, func(s *workspace.Service) (*workspace.Result, error) {
		return s.SetDate(ctx, a.resolve(path))
	})
}

func (a *workspaceAdapter) SetLastModified(ctx context.Context, path string, apply bool) (*DocumentResult, error) {
	return a.document(apply, func(s *workspace.Service) (*workspace.Result, error) {
		return s.SetLastModified(ctx, a.resolve(path))
	})
}

func (a *workspaceAdapter) WillSave(ctx context.Context, path string, apply bool) (*DocumentResult, error) {
	return a.document(apply, func(s *workspace.Service) (*workspace.Result, error) {
		return s.WillSave(ctx, a.resolve(path))
	})
}

func (a *workspaceAdapter) UpdateSlug(ctx context.Context, path string, apply bool) (*SlugResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	svc, err := a.service(apply)
	if err != nil {
		return nil, err
	}
	r, err := svc.UpdateSlug(ctx, a.resolve(path))
	if err != nil {
		return nil, err
	}

	out := &SlugResult{DocumentResult: *toDocument(&r.Result, apply, a.notifier.Drain())}
	if v, ok := r.Metadata[article.FieldSlug].(string); ok {
		out.Slug = v
	}
	if r.Rename != nil {
		out.RenamedFrom = a.rel(r.Rename.From)
		out.RenamedTo = a.rel(r.Rename.To)
	}
	if r.RenameErr != nil {
		out.RenameError = r.RenameErr.Error()
	}
	return out, nil
}

func (a *workspaceAdapter) SlugFromPath(ctx context.Context, path string) (string, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	svc, err := a.service(false)
	if err != nil {
		return "", false, err
	}
	s, ok := svc.SlugFromPath(a.resolve(path))
	return s, ok, nil
}

func (a *workspaceAdapter) TaxonomyOptions(ctx context.Context, path, kind string) ([]article.Option, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	svc, err := a.service(false)
	if err != nil {
		return nil, err
	}
	return svc.TaxonomyOptions(ctx, a.resolve(path), kind)
}

func (a *workspaceAdapter) SetTaxonomy(ctx context.Context, path, kind string, values []string, remember, apply bool) (*TaxonomyResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	svc, err := a.service(apply)
	if err != nil {
		return nil, err
	}
	r, err := svc.SetTaxonomy(ctx, a.resolve(path), kind, values, remember)
	if err != nil {
		return nil, err
	}
	return &TaxonomyResult{DocumentResult: *toDocument(&r.Result, apply, a.notifier.Drain()), Added: r.Added}, nil
}

func (a *workspaceAdapter) ListSnippets(ctx context.Context) ([]snippet.Definition, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	svc, err := a.service(false)
	if err != nil {
		return nil, err
	}
	return svc.Snippets(), nil
}

func (a *workspaceAdapter) LocateSnippet(ctx context.Context, path string, sel domain.Range) (*snippet.Match, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	svc, err := a.service(false)
	if err != nil {
		return nil, err
	}
	return svc.LocateSnippet(ctx, a.resolve(path), sel)
}

func (a *workspaceAdapter) InsertSnippet(ctx context.Context, path, title string, values map[string]string, sel domain.Range, apply bool) (*SnippetResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	svc, err := a.service(apply)
	if err != nil {
		return nil, err
	}
	r, err := svc.InsertSnippet(ctx, a.resolve(path), title, values, sel)
	if err != nil {
		return nil, err
	}
	return &SnippetResult{DocumentResult: *toDocument(&r.Result, apply, a.notifier.Drain()), Replaced: r.Replaced}, nil
}

func (a *workspaceAdapter) AddSnippet(ctx context.Context, def snippet.Definition, apply bool) (snippet.Definition, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	svc, err := a.service(apply)
	if err != nil {
		return snippet.Definition{}, err
	}
	return svc.AddSnippet(ctx, def.Title, def.Description, strings.Join(def.Body, "\n"), def.Fields)
}

func (a *workspaceAdapter) ReplaceSnippets(ctx context.Context, defs []snippet.Definition, apply bool) ([]snippet.Definition, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	svc, err := a.service(apply)
	if err != nil {
		return nil, err
	}
	return svc.ReplaceSnippets(ctx, defs)
}

func (a *workspaceAdapter) ResolvePlaceholder(ctx context.Context, tmpl, title string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.open(); err != nil {
		return "", err
	}
	var opts []slug.Option
	if len(a.cfg.Slug.StopWords) > 0 {
		opts = append(opts, slug.WithStopWords(a.cfg.Slug.StopWords...))
	}
	now := a.now()

	for _, c := range a.cfg.Placeholders {
		if !strings.Contains(tmpl, c.Token()) {
			continue
		}
		v, err := c.Resolve(title, a.cfg.DateFormat, now, opts...)
		if err != nil {
			return "", err
		}
		tmpl = strings.ReplaceAll(tmpl, c.Token(), v)
	}
	return placeholder.Resolve(tmpl, title, a.cfg.DateFormat, now, opts...)
}

// resolve makes a command line path absolute against the working
// directory.
func (a *workspaceAdapter) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.cwd, path)
}

// rel shortens an absolute path for display.
func (a *workspaceAdapter) rel(path string) string {
	if r, err := fs.RelPath(a.root, path); err == nil {
		return r
	}
	return path
}

// settingsStore saves additions to the config file. The workspace lock is
// held by the caller.
type settingsStore struct {
	root  string
	saved func(*config.Config)
}

func (s *settingsStore) update(fn func(*config.Config)) error {
	cfg, err := config.Load(s.root)
	if err != nil {
		return err
	}
	fn(cfg)
	if err := config.Save(s.root, cfg); err != nil {
		return err
	}
	if s.saved != nil {
		s.saved(cfg)
	}
	return nil
}

func (s *settingsStore) AddTerms(_ context.Context, kind string, values []string) error {
	return s.update(func(c *config.Config) { c.AddTerms(kind, values) })
}

func (s *settingsStore) AddSnippet(_ context.Context, def snippet.Definition) error {
	return s.update(func(c *config.Config) { c.Snippets = append(c.Snippets, def) })
}

func (s *settingsStore) SetSnippets(_ context.Context, defs []snippet.Definition) error {
	return s.update(func(c *config.Config) { c.Snippets = defs })
}
