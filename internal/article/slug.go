package article

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/eykd/fmx/internal/contenttype"
	"github.com/eykd/fmx/internal/datefmt"
	"github.com/eykd/fmx/internal/domain"
	"github.com/eykd/fmx/internal/frontmatter"
	"github.com/eykd/fmx/internal/placeholder"
	"github.com/eykd/fmx/internal/slug"
)

// SettingFilePrefix names the global file prefix setting.
const SettingFilePrefix = "file_prefix"

// UpdateSlug derives the slug from the title and writes it to the slug
// field, to every field defaulting to {{slug}}, and to every field
// defaulting to a custom placeholder whose value uses {{slug}}. When file
// renaming is enabled the change carries a RenameRequest for filePath.
func (m *Mutator) UpdateSlug(doc *frontmatter.Document, filePath, relPath string) *Change {
	if !applicable(doc) {
		return nil
	}
	title := doc.Title()
	opts := m.slugOptions()
	res, ok := slug.Generate(title, m.cfg.SlugPrefix, m.cfg.SlugSuffix, opts...)
	if !ok {
		return nil
	}

	def := m.ContentType(doc, relPath)
	templates := def.Templates()
	now := m.now()

	meta := doc.Metadata.Clone()
	meta.Set(FieldSlug, res.SlugWithPrefixAndSuffix)

	for _, f := range templates[placeholder.Slug] {
		meta.Set(f.Name, res.Slug)
	}

	var firstErr error
	for _, c := range m.cfg.CustomPlaceholders {
		if !c.References(placeholder.Slug) {
			continue
		}
		fields := templates[c.Token()]
		if len(fields) == 0 {
			continue
		}
		v, err := c.Resolve(title, m.cfg.DateFormat, now, opts...)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, f := range fields {
			meta.Set(f.Name, v)
		}
	}

	change := m.commit(doc, meta, relPath)
	if change == nil {
		return nil
	}

	if m.cfg.UpdateFileNameOnSlug && filePath != "" {
		rename, err := m.renameFor(def, filePath, relPath, res.Slug)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		change.Rename = rename
	}

	if firstErr != nil {
		m.report(firstErr, relPath)
	}
	return change
}

// renameFor derives the post-slug file name from the bare slug. Index files
// of page bundle content types keep their name.
func (m *Mutator) renameFor(def contenttype.Definition, filePath, relPath, s string) (*RenameRequest, error) {
	ext := filepath.Ext(filePath)
	base := strings.TrimSuffix(filepath.Base(filePath), ext)
	if def.PageBundle && strings.EqualFold(base, "index") {
		return nil, nil
	}

	prefix, err := m.FilePrefix(def, relPath)
	if err != nil {
		return nil, err
	}

	name, err := domain.SlugFileName(s, ext, prefix)
	if err != nil {
		return nil, fmt.Errorf("deriving file name from slug %q: %w", s, err)
	}

	to := filepath.Join(filepath.Dir(filePath), name)
	if to == filePath {
		return nil, nil
	}
	return &RenameRequest{From: filePath, To: to}, nil
}

// FilePrefix resolves and formats the file prefix for relPath: content
// type, then content folder, then global. The prefix is a date pattern.
func (m *Mutator) FilePrefix(def contenttype.Definition, relPath string) (string, error) {
	var folderPrefix *string
	setting := SettingFilePrefix
	if folder, ok := m.cfg.ContentFolder(relPath); ok && folder.FilePrefix != nil {
		folderPrefix = folder.FilePrefix
		setting = fmt.Sprintf("content_folders[%s].file_prefix", folder.Path)
	}
	if def.Prefix != nil {
		setting = fmt.Sprintf("content_types[%s].file_prefix", def.Name)
	}

	raw, ok := def.FilePrefix(m.cfg.FilePrefix, folderPrefix)
	if !ok {
		return "", nil
	}
	prefix, err := datefmt.Format(m.now(), raw, "")
	if err != nil {
		return "", domain.NewConfigError(setting, err)
	}
	return prefix, nil
}

// SlugFromPath derives a slug from a document path: the parent folder for
// index files, else the base name without extension. Paths rejected by
// isValid yield false.
func (m *Mutator) SlugFromPath(filePath string, isValid func(string) bool) (string, bool) {
	if filePath == "" {
		return "", false
	}
	if isValid != nil && !isValid(filePath) {
		return "", false
	}
	s := domain.SlugFromPath(filePath)
	if s == "" || s == "." || s == "/" {
		return "", false
	}
	return s, true
}
