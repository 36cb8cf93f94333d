package sidebar

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Encode writes the file back as YAML. Plain categories and documents use
// the shorthand forms; everything else uses typed objects. Parsing the
// output yields a structurally identical file.
func Encode(f *File) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range f.Sidebars {
		items, err := encodeItems(s.Items)
		if err != nil {
			return nil, fmt.Errorf("encoding sidebar %q: %w", s.Name, err)
		}
		root.Content = append(root.Content, scalar(s.Name), items)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, fmt.Errorf("encoding sidebar: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding sidebar: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeItems(items []Node) (*yaml.Node, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, item := range items {
		n, err := encodeNode(item)
		if err != nil {
			return nil, err
		}
		seq.Content = append(seq.Content, n)
	}
	return seq, nil
}

func encodeNode(item Node) (*yaml.Node, error) {
	switch n := item.(type) {
	case *Doc:
		if n.Label == "" && !n.Disabled {
			return scalar(n.ID), nil
		}
		m := mapping(fieldType, scalar(string(KindDoc)), fieldID, scalar(n.ID))
		if n.Label != "" {
			m.Content = append(m.Content, scalar(fieldLabel), scalar(n.Label))
		}
		appendEnabled(m, n.Disabled)
		return m, nil

	case *Link:
		m := mapping(fieldType, scalar(string(KindLink)), fieldLabel, scalar(n.Label), fieldHref, scalar(n.Href))
		appendEnabled(m, n.Disabled)
		return m, nil

	case *Category:
		items, err := encodeItems(n.Items)
		if err != nil {
			return nil, err
		}
		if n.Link == "" && n.Collapsed == nil && !n.Disabled {
			return mapping(n.Label, items), nil
		}
		m := mapping(fieldType, scalar(string(KindCategory)), fieldLabel, scalar(n.Label))
		if n.Link != "" {
			m.Content = append(m.Content, scalar(fieldLink),
				mapping(fieldType, scalar(string(KindDoc)), fieldID, scalar(n.Link)))
		}
		if n.Collapsed != nil {
			m.Content = append(m.Content, scalar(fieldCollapsed), boolean(*n.Collapsed))
		}
		appendEnabled(m, n.Disabled)
		m.Content = append(m.Content, scalar(fieldItems), items)
		return m, nil

	default:
		return nil, fmt.Errorf("unsupported node %T", item)
	}
}

func appendEnabled(m *yaml.Node, disabled bool) {
	if disabled {
		m.Content = append(m.Content, scalar(fieldEnabled), boolean(false))
	}
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func boolean(v bool) *yaml.Node {
	s := "false"
	if v {
		s = "true"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: s}
}

// mapping builds a mapping node from alternating keys and value nodes.
func mapping(kv ...any) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(kv); i += 2 {
		m.Content = append(m.Content, scalar(kv[i].(string)), kv[i+1].(*yaml.Node))
	}
	return m
}

// EncodeJSON writes the file in the JSON shape static-site generators
// consume: an object keyed by sidebar name. Dormant nodes are left out, so
// the output has no enabled field.
func EncodeJSON(f *File) ([]byte, error) {
	out := make(map[string]any, len(f.Sidebars))
	for _, s := range f.Sidebars {
		out[s.Name] = ItemsJSON(s.Items)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding sidebar json: %w", err)
	}
	return append(data, '\n'), nil
}

// ItemsJSON converts the active items to plain values for encoding/json.
// A disabled category drops its whole subtree. Every category becomes a
// single-key object or a typed object, so key order inside objects never
// carries meaning.
func ItemsJSON(items []Node) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		if !item.Enabled() {
			continue
		}
		out = append(out, nodeJSON(item))
	}
	return out
}

func nodeJSON(item Node) any {
	switch n := item.(type) {
	case *Doc:
		if n.Label == "" {
			return n.ID
		}
		return map[string]any{fieldType: string(KindDoc), fieldID: n.ID, fieldLabel: n.Label}
	case *Link:
		return map[string]any{fieldType: string(KindLink), fieldLabel: n.Label, fieldHref: n.Href}
	case *Category:
		items := ItemsJSON(n.Items)
		if n.Link == "" && n.Collapsed == nil {
			return map[string]any{n.Label: items}
		}
		m := map[string]any{fieldType: string(KindCategory), fieldLabel: n.Label, fieldItems: items}
		if n.Link != "" {
			m[fieldLink] = map[string]any{fieldType: string(KindDoc), fieldID: n.Link}
		}
		if n.Collapsed != nil {
			m[fieldCollapsed] = *n.Collapsed
		}
		return m
	default:
		return nil
	}
}
