package fs

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultIgnored are skipped in every workspace.
var defaultIgnored = []string{
	".fmx/**",
	".git/**",
	"**/node_modules/**",
	"**/.DS_Store",
}

// PathFilter decides which workspace files are documents fmx may edit.
type PathFilter struct {
	ignored    []string
	extensions []string
}

// NewPathFilter returns a filter accepting the given extensions (with or
// without a leading dot) and rejecting paths matching ignore patterns.
func NewPathFilter(extensions, ignore []string) *PathFilter {
	pf := &PathFilter{ignored: append(append([]string(nil), defaultIgnored...), ignore...)}
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if ext != "" {
			pf.extensions = append(pf.extensions, "."+ext)
		}
	}
	return pf
}

// IsAllowed reports whether the workspace-relative path rel is an
// editable document.
func (pf *PathFilter) IsAllowed(rel string) bool {
	p := path.Clean(strings.ReplaceAll(rel, "\\", "/"))
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return false
	}

	for _, pattern := range pf.ignored {
		if ok, err := doublestar.Match(pattern, p); err == nil && ok {
			return false
		}
	}

	if len(pf.extensions) == 0 {
		return true
	}
	ext := strings.ToLower(path.Ext(p))
	for _, allowed := range pf.extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// FilterPaths keeps the allowed paths.
func (pf *PathFilter) FilterPaths(paths []string) []string {
	var allowed []string
	for _, p := range paths {
		if pf.IsAllowed(p) {
			allowed = append(allowed, p)
		}
	}
	return allowed
}
