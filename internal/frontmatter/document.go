// Package frontmatter parses and rewrites the metadata block at the top of
// a text document. YAML (---) and TOML (+++) blocks are supported. Values
// that are not written keep their original source text.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eykd/fmx/internal/domain"
)

var (
	// ErrUnclosed is returned when an opening delimiter has no closing line.
	ErrUnclosed = errors.New("unclosed front matter")
	// ErrNoFrontMatter is returned when an edit is requested for a document
	// without a metadata block.
	ErrNoFrontMatter = errors.New("document has no front matter")
	// ErrDuplicateKey is returned when a top-level key appears twice.
	ErrDuplicateKey = errors.New("duplicate front matter key")
	// ErrNotMapping is returned when the block is not a key/value mapping.
	ErrNotMapping = errors.New("front matter is not a mapping")
)

// Format identifies the metadata syntax.
type Format int

const (
	FormatNone Format = iota
	FormatYAML
	FormatTOML
)

// Delimiter returns the fence line for f.
func (f Format) Delimiter() string {
	switch f {
	case FormatYAML:
		return "---"
	case FormatTOML:
		return "+++"
	}
	return ""
}

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	}
	return "none"
}

// Document is a parsed text document.
type Document struct {
	Raw      string
	Format   Format
	Metadata *Metadata
	// Range spans from the opening delimiter to the end of the closing
	// delimiter line.
	Range domain.Range
	Body  string

	blk   block
	lines []string
	spans []span
	// whole is set when the block could not be split per key; any write
	// re-encodes every field.
	whole bool
	c     codec
}

type block struct {
	format      Format
	headerStart int
	headerEnd   int
	closeEnd    int
}

// span is the half-open line range [start, end) holding one top-level key.
type span struct {
	key        string
	start, end int
	table      bool
	// anchors and aliases name the YAML anchors the entry defines and
	// references.
	anchors []string
	aliases []string
}

type codec interface {
	decode(header string, lines []string) (*Metadata, []span, error)
	encode(key string, v any) (string, error)
	// isTable reports whether v must be written after scalar keys.
	isTable(v any) bool
}

// Split separates a document into its metadata text and body. A document
// without a block returns the whole input as body.
func Split(input string) (string, string, error) {
	blk, ok, err := locate(input)
	if err != nil {
		return "", "", err
	}
	if !ok {
		return "", input, nil
	}
	return input[blk.headerStart:blk.headerEnd], bodyAfter(input, blk.closeEnd), nil
}

func locate(input string) (block, bool, error) {
	for _, f := range []Format{FormatYAML, FormatTOML} {
		d := f.Delimiter()

		var openLen int
		switch {
		case strings.HasPrefix(input, d+"\n"):
			openLen = len(d) + 1
		case strings.HasPrefix(input, d+"\r\n"):
			openLen = len(d) + 2
		default:
			continue
		}

		pos := openLen
		for {
			nl := strings.IndexByte(input[pos:], '\n')
			line := input[pos:]
			if nl >= 0 {
				line = input[pos : pos+nl]
			}
			line = strings.TrimSuffix(line, "\r")
			if line == d {
				return block{
					format:      f,
					headerStart: openLen,
					headerEnd:   pos,
					closeEnd:    pos + len(line),
				}, true, nil
			}
			if nl < 0 {
				break
			}
			pos += nl + 1
		}
		return block{}, false, fmt.Errorf("%s block: %w", f, ErrUnclosed)
	}
	return block{}, false, nil
}

func bodyAfter(input string, closeEnd int) string {
	rest := input[closeEnd:]
	if strings.HasPrefix(rest, "\r\n") {
		return rest[2:]
	}
	return strings.TrimPrefix(rest, "\n")
}

// Parse reads the metadata block at the top of raw. A document without a
// block is not an error; its Format is FormatNone.
func Parse(raw string) (*Document, error) {
	doc := &Document{Raw: raw, Body: raw, Metadata: NewMetadata()}

	blk, ok, err := locate(raw)
	if err != nil {
		return nil, err
	}
	if !ok {
		return doc, nil
	}

	doc.blk = blk
	doc.Format = blk.format
	doc.Body = bodyAfter(raw, blk.closeEnd)
	doc.Range = domain.Range{
		Start: domain.Position{},
		End: domain.Position{
			Line:      strings.Count(raw[:blk.closeEnd], "\n"),
			Character: len(blk.format.Delimiter()),
		},
	}

	switch blk.format {
	case FormatYAML:
		doc.c = yamlCodec{}
	case FormatTOML:
		doc.c = tomlCodec{}
	}

	header := raw[blk.headerStart:blk.headerEnd]
	doc.lines = splitLines(header)

	meta, spans, err := doc.c.decode(header, doc.lines)
	if err != nil {
		return nil, fmt.Errorf("parsing %s front matter: %w", blk.format, err)
	}
	doc.Metadata = meta
	doc.spans = spans
	doc.whole = !spansUsable(spans, meta, len(doc.lines))

	return doc, nil
}

// HasFrontMatter reports whether the document carries a metadata block.
func (d *Document) HasFrontMatter() bool {
	return d != nil && d.Format != FormatNone
}

// Title returns the string title field, if any.
func (d *Document) Title() string {
	if d == nil {
		return ""
	}
	s, _ := d.Metadata.String("title")
	return s
}

// Serialize returns the full document text with meta written into the
// metadata block. Passing the unmodified parsed metadata returns Raw.
func (d *Document) Serialize(meta *Metadata) (string, error) {
	if !d.HasFrontMatter() {
		return "", ErrNoFrontMatter
	}
	header, err := d.renderHeader(meta)
	if err != nil {
		return "", err
	}
	return d.Raw[:d.blk.headerStart] + header + d.Raw[d.blk.headerEnd:], nil
}

// Edit returns a replacement for Range holding meta.
func (d *Document) Edit(meta *Metadata) (domain.TextEdit, error) {
	if !d.HasFrontMatter() {
		return domain.TextEdit{}, ErrNoFrontMatter
	}
	header, err := d.renderHeader(meta)
	if err != nil {
		return domain.TextEdit{}, err
	}
	text := d.Raw[:d.blk.headerStart] + header + d.Raw[d.blk.headerEnd:d.blk.closeEnd]
	return domain.TextEdit{Range: d.Range, NewText: text}, nil
}

func (d *Document) crlf() bool {
	return strings.HasSuffix(d.Raw[:d.blk.headerStart], "\r\n")
}

func (d *Document) renderHeader(meta *Metadata) (string, error) {
	if meta == nil {
		meta = NewMetadata()
	}

	var b strings.Builder
	write := func(keys []string) error {
		for _, k := range keys {
			v, _ := meta.Get(k)
			s, err := d.c.encode(k, v)
			if err != nil {
				return fmt.Errorf("encoding %q: %w", k, err)
			}
			if d.crlf() {
				s = strings.ReplaceAll(s, "\n", "\r\n")
			}
			b.WriteString(s)
		}
		return nil
	}

	if d.whole || d.breaksAlias(meta) {
		if !meta.Dirty() && sameKeys(meta.Keys(), d.Metadata.Keys()) {
			return strings.Join(d.lines, ""), nil
		}
		var scalars, tables []string
		for _, k := range meta.Keys() {
			v, _ := meta.Get(k)
			if d.c.isTable(v) {
				tables = append(tables, k)
			} else {
				scalars = append(scalars, k)
			}
		}
		if err := write(scalars); err != nil {
			return "", err
		}
		if err := write(tables); err != nil {
			return "", err
		}
		return b.String(), nil
	}

	original := make(map[string]bool, len(d.spans))
	for _, sp := range d.spans {
		original[sp.key] = true
	}
	var fresh, freshTables []string
	for _, k := range meta.Keys() {
		if original[k] {
			continue
		}
		v, _ := meta.Get(k)
		if d.c.isTable(v) {
			freshTables = append(freshTables, k)
		} else {
			fresh = append(fresh, k)
		}
	}

	cursor := 0
	for _, sp := range d.spans {
		if sp.table && fresh != nil {
			if err := write(fresh); err != nil {
				return "", err
			}
			fresh = nil
		}
		b.WriteString(strings.Join(d.lines[cursor:sp.start], ""))
		cursor = sp.end

		if !meta.Has(sp.key) {
			continue
		}
		if !meta.Touched(sp.key) {
			b.WriteString(strings.Join(d.lines[sp.start:sp.end], ""))
			continue
		}
		if err := write([]string{sp.key}); err != nil {
			return "", err
		}
	}
	b.WriteString(strings.Join(d.lines[cursor:], ""))

	if err := write(fresh); err != nil {
		return "", err
	}
	if err := write(freshTables); err != nil {
		return "", err
	}
	return b.String(), nil
}

// breaksAlias reports whether rewriting or dropping a key would remove an
// anchor that a kept, untouched key still references.
func (d *Document) breaksAlias(meta *Metadata) bool {
	lost := make(map[string]bool)
	for _, sp := range d.spans {
		if meta.Has(sp.key) && !meta.Touched(sp.key) {
			continue
		}
		for _, a := range sp.anchors {
			lost[a] = true
		}
	}
	if len(lost) == 0 {
		return false
	}
	for _, sp := range d.spans {
		if !meta.Has(sp.key) || meta.Touched(sp.key) {
			continue
		}
		for _, a := range sp.aliases {
			if lost[a] {
				return true
			}
		}
	}
	return false
}

// splitLines splits s after each newline, keeping the terminators.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// spansUsable reports whether spans cover each decoded key exactly once in
// strictly increasing, non-overlapping line order.
func spansUsable(spans []span, meta *Metadata, n int) bool {
	if len(spans) != meta.Len() {
		return false
	}
	seen := make(map[string]bool, len(spans))
	prev := 0
	for _, sp := range spans {
		if seen[sp.key] || !meta.Has(sp.key) {
			return false
		}
		seen[sp.key] = true
		if sp.start < prev || sp.end <= sp.start || sp.end > n {
			return false
		}
		prev = sp.end
	}
	return true
}

func sameKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// trimTrailing shrinks end past blank lines and lines matching comment so
// a key's span does not swallow the gap before the next key.
func trimTrailing(lines []string, start, end int, comment func(string) bool) int {
	for end > start+1 {
		l := lines[end-1]
		if strings.TrimSpace(l) == "" || comment(l) {
			end--
			continue
		}
		break
	}
	return end
}
