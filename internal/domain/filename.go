package domain

import (
	"errors"
	"path"
	"strings"
)

// ErrInvalidFilename is returned when a file name cannot be derived from a slug.
var ErrInvalidFilename = errors.New("invalid filename")

// SlugFileName builds the file name a document takes after a slug update.
// Leading and trailing slashes are stripped from slug, ext is appended as-is,
// and a non-empty prefix is joined with a hyphen.
func SlugFileName(slug, ext, prefix string) (string, error) {
	name := strings.TrimPrefix(slug, "/")
	name = strings.TrimSuffix(name, "/")
	if name == "" || strings.ContainsAny(name, "/\\\x00") {
		return "", ErrInvalidFilename
	}

	name += ext
	if prefix != "" {
		name = prefix + "-" + name
	}
	return name, nil
}

// SlugFromPath derives a slug from a document path. Page-bundle documents
// named index take the name of their directory.
func SlugFromPath(filePath string) string {
	p := ToSlash(filePath)
	base := path.Base(p)
	name := strings.TrimSuffix(base, path.Ext(base))

	if strings.ToLower(name) != "index" {
		return name
	}
	return path.Base(path.Dir(p))
}

// ToSlash converts Windows separators to forward slashes.
func ToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
