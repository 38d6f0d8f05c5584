package domain

import (
	"errors"
	"testing"
)

func TestSlugFileName(t *testing.T) {
	tests := []struct {
		name   string
		slug   string
		ext    string
		prefix string
		want   string
	}{
		{"bare slug", "my-post", ".md", "", "my-post.md"},
		{"leading slash stripped", "/my-post", ".md", "", "my-post.md"},
		{"trailing slash stripped", "my-post/", ".mdx", "", "my-post.mdx"},
		{"both slashes stripped", "/my-post/", ".md", "", "my-post.md"},
		{"prefix joined with hyphen", "my-post", ".md", "2024-03-01", "2024-03-01-my-post.md"},
		{"empty extension", "my-post", "", "", "my-post"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SlugFileName(tt.slug, tt.ext, tt.prefix)
			if err != nil {
				t.Fatalf("SlugFileName() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SlugFileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlugFileName_RejectsUnsafeSlugs(t *testing.T) {
	tests := []struct {
		name string
		slug string
	}{
		{"empty", ""},
		{"only slash", "/"},
		{"nested path", "blog/my-post"},
		{"backslash", `blog\my-post`},
		{"null byte", "post\x00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SlugFileName(tt.slug, ".md", "")
			if !errors.Is(err, ErrInvalidFilename) {
				t.Errorf("SlugFileName(%q) error = %v, want ErrInvalidFilename", tt.slug, err)
			}
		})
	}
}

func TestSlugFromPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"plain file", "content/posts/hello-world.md", "hello-world"},
		{"index uses folder", "content/posts/my-bundle/index.md", "my-bundle"},
		{"index is case-insensitive", "content/posts/my-bundle/INDEX.md", "my-bundle"},
		{"windows separators", `content\posts\bundle\index.md`, "bundle"},
		{"multiple dots keep inner", "content/v1.2-notes.md", "v1.2-notes"},
		{"_index is not index", "content/posts/_index.md", "_index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlugFromPath(tt.path); got != tt.want {
				t.Errorf("SlugFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
