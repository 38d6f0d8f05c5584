package frontmatter

import (
	"bytes"
	"strings"

	"github.com/BurntSushi/toml"
)

type tomlCodec struct{}

func (tomlCodec) decode(header string, lines []string) (*Metadata, []span, error) {
	meta := NewMetadata()

	var values map[string]any
	md, err := toml.Decode(header, &values)
	if err != nil {
		return nil, nil, err
	}
	for _, key := range md.Keys() {
		top := key[0]
		if meta.Has(top) {
			continue
		}
		meta.put(top, values[top])
	}

	return meta, tomlSpans(lines), nil
}

// tomlSpans scans for top-level keys and table headers. Consecutive lines
// sharing a first key segment (dotted keys, sub-tables) form one span.
func tomlSpans(lines []string) []span {
	var spans []span
	inTable := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		var key string
		table := false
		switch {
		case strings.HasPrefix(trimmed, "["):
			key = firstSegment(strings.Trim(trimmed, "[] \t\r"))
			table = true
			inTable = true
		case inTable:
			continue
		default:
			eq := strings.IndexByte(trimmed, '=')
			if eq <= 0 || strings.HasPrefix(trimmed, "#") {
				continue
			}
			key = firstSegment(strings.TrimSpace(trimmed[:eq]))
		}
		if key == "" {
			continue
		}

		if n := len(spans); n > 0 && spans[n-1].key == key {
			continue
		}
		if n := len(spans); n > 0 {
			spans[n-1].end = i
		}
		spans = append(spans, span{key: key, start: i, table: table})
	}

	for i := range spans {
		end := len(lines)
		if i+1 < len(spans) {
			end = spans[i+1].start
		}
		spans[i].end = trimTrailing(lines, spans[i].start, end, tomlComment)
	}
	return spans
}

// firstSegment returns the first component of a possibly dotted, possibly
// quoted TOML key.
func firstSegment(key string) string {
	if key == "" {
		return ""
	}
	if q := key[0]; q == '"' || q == '\'' {
		end := strings.IndexByte(key[1:], q)
		if end < 0 {
			return ""
		}
		return key[1 : end+1]
	}
	if dot := strings.IndexByte(key, '.'); dot >= 0 {
		key = key[:dot]
	}
	return strings.TrimSpace(key)
}

func tomlComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

func (tomlCodec) encode(key string, v any) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]any{key: v}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (tomlCodec) isTable(v any) bool {
	switch vv := v.(type) {
	case map[string]any:
		return true
	case []map[string]any:
		return len(vv) > 0
	case []any:
		if len(vv) == 0 {
			return false
		}
		for _, item := range vv {
			if _, ok := item.(map[string]any); !ok {
				return false
			}
		}
		return true
	}
	return false
}
