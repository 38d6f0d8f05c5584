package workspace

import (
	"context"
	"fmt"
	"strings"

	"github.com/eykd/fmx/internal/domain"
	"github.com/eykd/fmx/internal/snippet"
)

// SnippetResult holds the outcome of InsertSnippet.
type SnippetResult struct {
	Result
	// Replaced is true when an existing snippet block was rewritten.
	Replaced bool `json:"replaced"`
}

// Snippets returns the stored snippet definitions.
func (s *Service) Snippets() []snippet.Definition {
	return s.snippets.Definitions()
}

// LocateSnippet returns the snippet block containing the cursor line, or
// nil when the cursor is outside every block.
func (s *Service) LocateSnippet(ctx context.Context, path string, sel domain.Range) (*snippet.Match, error) {
	doc, _, _, err := s.load(ctx, path)
	if err != nil {
		return nil, err
	}
	return snippet.Locate(splitLines(doc.Raw), sel)
}

// InsertSnippet renders the stored snippet title with values. The result
// replaces the block under the cursor when there is one, else the
// selection. An empty title reuses the located block's snippet.
func (s *Service) InsertSnippet(ctx context.Context, path, title string, values map[string]string, sel domain.Range) (*SnippetResult, error) {
	if err := s.locker.TryLock(ctx); err != nil {
		return nil, err
	}
	defer s.locker.Unlock()

	doc, abs, rel, err := s.load(ctx, path)
	if err != nil {
		return nil, err
	}

	match, err := snippet.Locate(splitLines(doc.Raw), sel)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rel, err)
	}
	if title == "" {
		if match == nil || match.Info == nil {
			return nil, fmt.Errorf("no snippet at line %d: %w", sel.Start.Line, snippet.ErrSnippetNotFound)
		}
		title = match.Info.ID
	}

	def, err := s.snippets.Get(title)
	if err != nil {
		return nil, err
	}
	text, err := def.Render(values)
	if err != nil {
		return nil, err
	}

	edit := snippet.Insert(match, sel, text)
	out := &SnippetResult{
		Result: Result{
			Path:    rel,
			Changed: true,
			Edit:    &edit,
			Content: domain.ApplyEdit(doc.Raw, edit),
		},
		Replaced: match != nil,
	}
	if s.dryRun {
		return out, nil
	}
	if err := s.writer.WriteFile(ctx, abs, out.Content); err != nil {
		return nil, fmt.Errorf("write %s: %w", rel, err)
	}
	out.Written = true
	return out, nil
}

// AddSnippet stores a new snippet and saves it to the settings.
func (s *Service) AddSnippet(ctx context.Context, title, description, body string, fields []snippet.Field) (snippet.Definition, error) {
	if err := s.locker.TryLock(ctx); err != nil {
		return snippet.Definition{}, err
	}
	defer s.locker.Unlock()

	def, err := s.snippets.Add(title, description, body, fields)
	if err != nil {
		return snippet.Definition{}, err
	}
	if s.dryRun || s.settings == nil {
		return def, nil
	}
	if err := s.settings.AddSnippet(ctx, def); err != nil {
		return snippet.Definition{}, fmt.Errorf("saving snippet %q: %w", title, err)
	}
	return def, nil
}

// ReplaceSnippets swaps the stored snippets for defs, minus external ones,
// and saves them to the settings.
func (s *Service) ReplaceSnippets(ctx context.Context, defs []snippet.Definition) ([]snippet.Definition, error) {
	if err := s.locker.TryLock(ctx); err != nil {
		return nil, err
	}
	defer s.locker.Unlock()

	kept, err := s.snippets.Replace(defs)
	if err != nil {
		return nil, err
	}
	if s.dryRun || s.settings == nil {
		return kept, nil
	}
	if err := s.settings.SetSnippets(ctx, kept); err != nil {
		return nil, fmt.Errorf("saving snippets: %w", err)
	}
	return kept, nil
}

// splitLines splits text into lines without their terminators.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
