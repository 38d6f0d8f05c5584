package frontmatter

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type yamlCodec struct{}

func (yamlCodec) decode(header string, lines []string) (*Metadata, []span, error) {
	meta := NewMetadata()

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(header), &root); err != nil {
		return nil, nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return meta, nil, nil
	}

	mapping := root.Content[0]
	if mapping.Kind == yaml.ScalarNode && mapping.Tag == "!!null" {
		return meta, nil, nil
	}
	if mapping.Kind != yaml.MappingNode {
		return nil, nil, ErrNotMapping
	}

	var spans []span
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		k, v := mapping.Content[i], mapping.Content[i+1]
		if meta.Has(k.Value) {
			return nil, nil, fmt.Errorf("%w: %q", ErrDuplicateKey, k.Value)
		}

		var val any
		if err := v.Decode(&val); err != nil {
			return nil, nil, fmt.Errorf("decoding %q: %w", k.Value, err)
		}
		meta.put(k.Value, val)
		sp := span{key: k.Value, start: k.Line - 1}
		collectAnchors(k, &sp)
		collectAnchors(v, &sp)
		spans = append(spans, sp)
	}

	if mapping.Style&yaml.FlowStyle != 0 {
		return meta, nil, nil
	}

	for i := range spans {
		end := len(lines)
		if i+1 < len(spans) {
			end = spans[i+1].start
		}
		spans[i].end = trimTrailing(lines, spans[i].start, end, yamlComment)
	}
	return meta, spans, nil
}

// collectAnchors records the anchors n defines and the aliases it uses.
func collectAnchors(n *yaml.Node, sp *span) {
	if n.Anchor != "" {
		sp.anchors = append(sp.anchors, n.Anchor)
	}
	if n.Kind == yaml.AliasNode {
		sp.aliases = append(sp.aliases, n.Value)
		return
	}
	for _, c := range n.Content {
		collectAnchors(c, sp)
	}
}

func yamlComment(line string) bool {
	return strings.HasPrefix(line, "#")
}

// encode writes a single "key: value" entry. Date-like strings are written
// plain so they read back the same way an author would have typed them.
func (yamlCodec) encode(key string, v any) (string, error) {
	var val yaml.Node
	if err := val.Encode(v); err != nil {
		return "", err
	}
	plainTimestamps(&val)

	k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	entry := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{k, &val}}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(entry); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (yamlCodec) isTable(any) bool { return false }

func plainTimestamps(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && looksLikeTimestamp(n.Value) {
		n.Tag = ""
		n.Style = 0
		return
	}
	for _, c := range n.Content {
		plainTimestamps(c)
	}
}

var timestampLayouts = []string{
	"2006-1-2T15:4:5.999999999Z07:00",
	"2006-1-2t15:4:5.999999999Z07:00",
	"2006-1-2 15:4:5.999999999",
	"2006-1-2",
}

func looksLikeTimestamp(s string) bool {
	if len(s) < 8 || s[4] != '-' {
		return false
	}
	for i := range 4 {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
