package article

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/eykd/fmx/internal/domain"
	"github.com/eykd/fmx/internal/placeholder"
)

// Config is the settings snapshot every operation reads.
type Config struct {
	DateFormat           string
	FilePrefix           string
	SlugPrefix           string
	SlugSuffix           string
	SlugStopWords        []string
	AutoUpdateDate       bool
	UpdateFileNameOnSlug bool
	CustomPlaceholders   []placeholder.Custom
	// KnownTaxonomies maps a taxonomy kind ("tags", "categories", or a
	// custom id) to its vocabulary.
	KnownTaxonomies map[string][]string
	ContentFolders  []ContentFolder
}

// ContentFolder is a workspace folder holding documents.
type ContentFolder struct {
	// Path is workspace-relative and may contain doublestar patterns.
	Path       string
	FilePrefix *string
}

func (f ContentFolder) pattern() string {
	p := strings.Trim(domain.ToSlash(f.Path), "/")
	if p == "" || p == "." {
		return "**"
	}
	return p + "/**"
}

// ContentFolder returns the first content folder containing relPath.
func (c Config) ContentFolder(relPath string) (ContentFolder, bool) {
	if relPath == "" {
		return ContentFolder{}, false
	}
	rel := path.Clean(domain.ToSlash(relPath))
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return ContentFolder{}, false
	}
	for _, f := range c.ContentFolders {
		if ok, err := doublestar.Match(f.pattern(), rel); err == nil && ok {
			return f, true
		}
	}
	return ContentFolder{}, false
}
