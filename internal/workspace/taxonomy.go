package workspace

import (
	"context"
	"fmt"

	"github.com/eykd/fmx/internal/article"
	"github.com/eykd/fmx/internal/frontmatter"
)

// TaxonomyResult holds the outcome of SetTaxonomy.
type TaxonomyResult struct {
	Result
	// Added lists values saved to the known vocabulary.
	Added []string `json:"added,omitempty"`
}

// TaxonomyOptions lists the picker entries for kind: current values
// first, then the known vocabulary.
func (s *Service) TaxonomyOptions(ctx context.Context, path, kind string) ([]article.Option, error) {
	doc, _, rel, err := s.load(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.mutator.TaxonomyOptions(doc, rel, kind), nil
}

// SetTaxonomy replaces the taxonomy field with values. When remember is
// set, values missing from the vocabulary are saved to the settings.
func (s *Service) SetTaxonomy(ctx context.Context, path, kind string, values []string, remember bool) (*TaxonomyResult, error) {
	if err := s.locker.TryLock(ctx); err != nil {
		return nil, err
	}
	defer s.locker.Unlock()

	res, change, err := s.apply(ctx, path, func(doc *frontmatter.Document, _, rel string) *article.Change {
		return s.mutator.SetTaxonomy(doc, rel, kind, values)
	})
	if err != nil {
		return nil, err
	}

	out := &TaxonomyResult{Result: *res}
	if change == nil || !remember || s.settings == nil {
		return out, nil
	}

	unknown := s.mutator.UnknownTerms(kind, values)
	if len(unknown) == 0 || s.dryRun {
		out.Added = unknown
		return out, nil
	}
	if err := s.settings.AddTerms(ctx, kind, unknown); err != nil {
		return nil, fmt.Errorf("saving %s: %w", kind, err)
	}
	out.Added = unknown
	return out, nil
}
