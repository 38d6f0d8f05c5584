// Package config loads the project settings file, .fmx/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/eykd/fmx/internal/article"
	"github.com/eykd/fmx/internal/contenttype"
	"github.com/eykd/fmx/internal/placeholder"
	"github.com/eykd/fmx/internal/snippet"
)

// Project layout.
const (
	Dir      = ".fmx"
	FileName = "config.yaml"
	LockName = "lock"
)

// Config is the project settings file.
type Config struct {
	DateFormat     string                   `yaml:"date_format,omitempty"`
	FilePrefix     string                   `yaml:"file_prefix,omitempty"`
	AutoUpdateDate bool                     `yaml:"auto_update_date"`
	Slug           SlugConfig               `yaml:"slug"`
	Placeholders   []placeholder.Custom     `yaml:"placeholders,omitempty"`
	Taxonomies     Taxonomies               `yaml:"taxonomies"`
	ContentFolders []ContentFolder          `yaml:"content_folders,omitempty"`
	ContentTypes   []contenttype.Definition `yaml:"content_types,omitempty"`
	Snippets       []snippet.Definition     `yaml:"snippets,omitempty"`
	// FileTypes lists the extensions, without dot, of documents fmx edits.
	FileTypes []string `yaml:"file_types,omitempty"`
	// Ignore holds doublestar patterns of workspace paths to skip.
	Ignore []string `yaml:"ignore,omitempty"`
}

// SlugConfig holds slug generation settings.
type SlugConfig struct {
	Prefix         string   `yaml:"prefix,omitempty"`
	Suffix         string   `yaml:"suffix,omitempty"`
	StopWords      []string `yaml:"stop_words,omitempty"`
	UpdateFileName bool     `yaml:"update_file_name"`
}

// Taxonomies holds the known vocabularies.
type Taxonomies struct {
	Tags       []string            `yaml:"tags,omitempty"`
	Categories []string            `yaml:"categories,omitempty"`
	Custom     map[string][]string `yaml:"custom,omitempty"`
}

// ContentFolder is a workspace folder holding documents.
type ContentFolder struct {
	Path       string  `yaml:"path"`
	FilePrefix *string `yaml:"file_prefix,omitempty"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		AutoUpdateDate: true,
		ContentFolders: []ContentFolder{{Path: "."}},
		FileTypes:      []string{"md", "markdown", "mdx"},
	}
}

// Path returns the settings file location under root.
func Path(root string) string {
	return filepath.Join(root, Dir, FileName)
}

// Load reads the settings file under root. A missing file yields the
// defaults.
func Load(root string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(root))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.FileTypes) == 0 {
		c.FileTypes = Default().FileTypes
	}
}

// Save writes c to the settings file under root, creating the project
// directory if needed.
func Save(root string, c *Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(root, Dir), 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", Dir, err)
	}
	return os.WriteFile(Path(root), data, 0o644)
}

// Article returns the settings snapshot for article operations.
func (c *Config) Article() article.Config {
	known := map[string][]string{
		string(contenttype.KindTags):       c.Taxonomies.Tags,
		string(contenttype.KindCategories): c.Taxonomies.Categories,
	}
	for id, values := range c.Taxonomies.Custom {
		known[id] = values
	}

	folders := make([]article.ContentFolder, len(c.ContentFolders))
	for i, f := range c.ContentFolders {
		folders[i] = article.ContentFolder{Path: f.Path, FilePrefix: f.FilePrefix}
	}

	return article.Config{
		DateFormat:           c.DateFormat,
		FilePrefix:           c.FilePrefix,
		SlugPrefix:           c.Slug.Prefix,
		SlugSuffix:           c.Slug.Suffix,
		SlugStopWords:        c.Slug.StopWords,
		AutoUpdateDate:       c.AutoUpdateDate,
		UpdateFileNameOnSlug: c.Slug.UpdateFileName,
		CustomPlaceholders:   c.Placeholders,
		KnownTaxonomies:      known,
		ContentFolders:       folders,
	}
}

// Catalog returns the content type catalog.
func (c *Config) Catalog() *contenttype.Catalog {
	return contenttype.NewCatalog(c.ContentTypes)
}

// SnippetCatalog returns the stored snippets.
func (c *Config) SnippetCatalog() *snippet.Catalog {
	return snippet.NewCatalog(c.Snippets)
}

// AddTerms appends values to the vocabulary of kind, skipping ones
// already known.
func (c *Config) AddTerms(kind string, values []string) {
	if len(values) == 0 {
		return
	}
	switch kind {
	case string(contenttype.KindTags):
		c.Taxonomies.Tags = appendNew(c.Taxonomies.Tags, values)
	case string(contenttype.KindCategories):
		c.Taxonomies.Categories = appendNew(c.Taxonomies.Categories, values)
	default:
		if c.Taxonomies.Custom == nil {
			c.Taxonomies.Custom = make(map[string][]string)
		}
		c.Taxonomies.Custom[kind] = appendNew(c.Taxonomies.Custom[kind], values)
	}
}

func appendNew(list, values []string) []string {
	seen := make(map[string]bool, len(list))
	for _, v := range list {
		seen[v] = true
	}
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		list = append(list, v)
	}
	return list
}
