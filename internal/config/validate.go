package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/eykd/fmx/internal/article"
	"github.com/eykd/fmx/internal/contenttype"
	"github.com/eykd/fmx/internal/datefmt"
)

// Validate checks date patterns, glob patterns, and name uniqueness.
// Problems are reported as criterio.FieldErrors keyed by setting path.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("date_format", c.DateFormat, datePattern),
		criterio.Run("file_prefix", c.FilePrefix, datePattern),
		c.validatePlaceholders(),
		c.validateContentFolders(),
		c.validateContentTypes(),
		c.validateSnippets(),
		c.validateGlobs(),
	)
}

func datePattern(s string) error {
	if s == "" {
		return nil
	}
	if _, err := datefmt.Compile(datefmt.Translate(s)); err != nil {
		return err
	}
	return nil
}

func globPattern(s string) error {
	if s == "" {
		return nil
	}
	if !doublestar.ValidatePattern(s) {
		return fmt.Errorf("invalid pattern %q", s)
	}
	return nil
}

func (c *Config) validatePlaceholders() error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool)
	for i, p := range c.Placeholders {
		field := fmt.Sprintf("placeholders[%d]", i)
		switch {
		case strings.TrimSpace(p.ID) == "":
			errs = errs.Append(field+".id", errors.New("id is required"))
		case seen[p.ID]:
			errs = errs.Append(field+".id", fmt.Errorf("duplicate id %q", p.ID))
		}
		seen[p.ID] = true
	}
	return errs.ToError()
}

func (c *Config) validateContentFolders() error {
	var errs criterio.FieldErrorsBuilder
	for i, f := range c.ContentFolders {
		field := fmt.Sprintf("content_folders[%d]", i)
		if strings.TrimSpace(f.Path) == "" {
			errs = errs.Append(field+".path", errors.New("path is required"))
		}
		if err := globPattern(f.Path); err != nil {
			errs = errs.Append(field+".path", err)
		}
		if f.FilePrefix != nil {
			if err := datePattern(*f.FilePrefix); err != nil {
				errs = errs.Append(field+".file_prefix", err)
			}
		}
	}
	return errs.ToError()
}

func (c *Config) validateContentTypes() error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool)
	for i, ct := range c.ContentTypes {
		field := fmt.Sprintf("content_types[%d]", i)
		switch {
		case strings.TrimSpace(ct.Name) == "":
			errs = errs.Append(field+".name", errors.New("name is required"))
		case seen[ct.Name]:
			errs = errs.Append(field+".name", fmt.Errorf("duplicate content type %q", ct.Name))
		}
		seen[ct.Name] = true

		if err := globPattern(ct.PathPattern); err != nil {
			errs = errs.Append(field+".path_pattern", err)
		}
		if ct.Prefix != nil {
			if err := datePattern(*ct.Prefix); err != nil {
				errs = errs.Append(field+".file_prefix", err)
			}
		}
		for _, f := range ct.Fields {
			if f.Type != contenttype.KindDateTime || f.DateFormat == "" {
				continue
			}
			if err := datePattern(f.DateFormat); err != nil {
				errs = errs.Append(article.FieldDateFormatSetting(ct.Name, f.Name), err)
			}
		}
	}
	return errs.ToError()
}

func (c *Config) validateSnippets() error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool)
	for i, s := range c.Snippets {
		field := fmt.Sprintf("snippets[%d]", i)
		switch {
		case strings.TrimSpace(s.Title) == "":
			errs = errs.Append(field+".title", errors.New("title is required"))
		case seen[s.Title]:
			errs = errs.Append(field+".title", fmt.Errorf("duplicate snippet %q", s.Title))
		}
		seen[s.Title] = true
	}
	return errs.ToError()
}

func (c *Config) validateGlobs() error {
	var errs criterio.FieldErrorsBuilder
	for i, p := range c.Ignore {
		if err := globPattern(p); err != nil {
			errs = errs.Append(fmt.Sprintf("ignore[%d]", i), err)
		}
	}
	return errs.ToError()
}
