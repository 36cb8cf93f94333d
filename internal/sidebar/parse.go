package sidebar

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Field names of the explicit object form.
const (
	fieldType      = "type"
	fieldID        = "id"
	fieldLabel     = "label"
	fieldHref      = "href"
	fieldLink      = "link"
	fieldItems     = "items"
	fieldCollapsed = "collapsed"
	fieldEnabled   = "enabled"
)

var allowedFields = map[Kind]map[string]bool{
	KindDoc:      {fieldType: true, fieldID: true, fieldLabel: true, fieldEnabled: true},
	KindLink:     {fieldType: true, fieldLabel: true, fieldHref: true, fieldEnabled: true},
	KindCategory: {fieldType: true, fieldLabel: true, fieldLink: true, fieldItems: true, fieldCollapsed: true, fieldEnabled: true},
}

// LoadFile reads and parses a sidebar file. JSON files are accepted as well
// as YAML.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sidebar %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing sidebar %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a sidebar source and normalizes the shorthand forms into
// explicit nodes. The top level maps sidebar names to item sequences.
func Parse(data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, syntaxError(err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("sidebar source is empty")
	}

	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, newParseError(root, "top level must map sidebar names to item lists")
	}

	f := &File{}
	seen := make(map[string]bool)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		name, err := label(key)
		if err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, newParseError(key, fmt.Sprintf("sidebar %q defined twice", name))
		}
		seen[name] = true

		items, err := parseItems(val)
		if err != nil {
			return nil, err
		}
		f.Sidebars = append(f.Sidebars, &Sidebar{Name: name, Items: items})
	}
	return f, nil
}

// ParseItems decodes a single item sequence, without the sidebar-name
// wrapper.
func ParseItems(data []byte) ([]Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, syntaxError(err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("sidebar items are empty")
	}
	return parseItems(doc.Content[0])
}

func parseItems(n *yaml.Node) ([]Node, error) {
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		return nil, newParseError(n, "expected a list of sidebar items")
	}
	items := make([]Node, 0, len(n.Content))
	for _, child := range n.Content {
		parsed, err := parseEntry(child)
		if err != nil {
			return nil, err
		}
		items = append(items, parsed...)
	}
	return items, nil
}

// parseEntry returns more than one node when a shorthand mapping declares
// several categories.
func parseEntry(n *yaml.Node) ([]Node, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		id, err := docID(n)
		if err != nil {
			return nil, err
		}
		return []Node{&Doc{ID: id}}, nil
	case yaml.MappingNode:
		if isExplicit(n) {
			node, err := parseExplicit(n)
			if err != nil {
				return nil, err
			}
			return []Node{node}, nil
		}
		return parseShorthand(n)
	default:
		return nil, newParseError(n, "expected a document id, a category or a typed item")
	}
}

func parseShorthand(n *yaml.Node) ([]Node, error) {
	if len(n.Content) == 0 {
		return nil, newParseError(n, "empty category mapping")
	}
	nodes := make([]Node, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		lbl, err := label(key)
		if err != nil {
			return nil, err
		}
		items, err := parseItems(val)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &Category{Label: lbl, Items: items})
	}
	return nodes, nil
}

// isExplicit reports whether a mapping is a typed item. A shorthand
// category labelled "type" maps to a list and is not explicit.
func isExplicit(n *yaml.Node) bool {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == fieldType {
			return resolve(n.Content[i+1]).Kind == yaml.ScalarNode
		}
	}
	return false
}

func parseExplicit(n *yaml.Node) (Node, error) {
	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if _, dup := fields[key.Value]; dup {
			return nil, newParseError(key, fmt.Sprintf("duplicate field %q", key.Value))
		}
		fields[key.Value] = resolve(n.Content[i+1])
	}

	kind := Kind(fields[fieldType].Value)
	allowed, ok := allowedFields[kind]
	if !ok {
		return nil, newParseError(fields[fieldType], fmt.Sprintf("unknown item type %q", kind))
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if key := n.Content[i]; !allowed[key.Value] {
			return nil, newParseError(key, fmt.Sprintf("field %q is not allowed on a %s item", key.Value, kind))
		}
	}

	enabled, err := boolField(n, fields, fieldEnabled, true)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindDoc:
		idNode, err := requireField(n, fields, fieldID)
		if err != nil {
			return nil, err
		}
		id, err := docID(idNode)
		if err != nil {
			return nil, err
		}
		lbl, err := optionalString(fields, fieldLabel)
		if err != nil {
			return nil, err
		}
		return &Doc{ID: id, Label: lbl, Disabled: !enabled}, nil

	case KindLink:
		lblNode, err := requireField(n, fields, fieldLabel)
		if err != nil {
			return nil, err
		}
		lbl, err := label(lblNode)
		if err != nil {
			return nil, err
		}
		hrefNode, err := requireField(n, fields, fieldHref)
		if err != nil {
			return nil, err
		}
		href, err := stringValue(hrefNode, "href")
		if err != nil {
			return nil, err
		}
		return &Link{Label: lbl, Href: href, Disabled: !enabled}, nil

	default:
		lblNode, err := requireField(n, fields, fieldLabel)
		if err != nil {
			return nil, err
		}
		lbl, err := label(lblNode)
		if err != nil {
			return nil, err
		}
		itemsNode, err := requireField(n, fields, fieldItems)
		if err != nil {
			return nil, err
		}
		items, err := parseItems(itemsNode)
		if err != nil {
			return nil, err
		}
		cat := &Category{Label: lbl, Items: items, Disabled: !enabled}
		if linkNode, ok := fields[fieldLink]; ok {
			if cat.Link, err = categoryLink(linkNode); err != nil {
				return nil, err
			}
		}
		if _, ok := fields[fieldCollapsed]; ok {
			collapsed, err := boolField(n, fields, fieldCollapsed, false)
			if err != nil {
				return nil, err
			}
			cat.Collapsed = &collapsed
		}
		return cat, nil
	}
}

// categoryLink accepts either a bare document id or {type: doc, id: ...}.
func categoryLink(n *yaml.Node) (string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return docID(n)
	case yaml.MappingNode:
		var typ, id *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			switch n.Content[i].Value {
			case fieldType:
				typ = resolve(n.Content[i+1])
			case fieldID:
				id = resolve(n.Content[i+1])
			default:
				return "", newParseError(n.Content[i], fmt.Sprintf("field %q is not allowed on a category link", n.Content[i].Value))
			}
		}
		if typ == nil || typ.Value != string(KindDoc) {
			return "", newParseError(n, "category link must have type doc")
		}
		if id == nil {
			return "", newParseError(n, "category link is missing field \"id\"")
		}
		return docID(id)
	default:
		return "", newParseError(n, "category link must be a document id or a doc reference")
	}
}

func requireField(parent *yaml.Node, fields map[string]*yaml.Node, name string) (*yaml.Node, error) {
	n, ok := fields[name]
	if !ok {
		return nil, newParseError(parent, fmt.Sprintf("missing required field %q", name))
	}
	return n, nil
}

func optionalString(fields map[string]*yaml.Node, name string) (string, error) {
	n, ok := fields[name]
	if !ok {
		return "", nil
	}
	return stringValue(n, name)
}

func boolField(parent *yaml.Node, fields map[string]*yaml.Node, name string, def bool) (bool, error) {
	n, ok := fields[name]
	if !ok {
		return def, nil
	}
	var v bool
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!bool" || n.Decode(&v) != nil {
		return false, newParseError(n, fmt.Sprintf("field %q must be true or false", name))
	}
	return v, nil
}

func stringValue(n *yaml.Node, what string) (string, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() == "!!null" {
		return "", newParseError(n, fmt.Sprintf("%s must be a string", what))
	}
	if strings.TrimSpace(n.Value) == "" {
		return "", newParseError(n, fmt.Sprintf("%s must not be empty", what))
	}
	return n.Value, nil
}

func docID(n *yaml.Node) (string, error) {
	return stringValue(n, "document id")
}

func label(n *yaml.Node) (string, error) {
	return stringValue(resolve(n), "label")
}

// resolve follows YAML aliases so anchored subtrees can be reused.
func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// yamlLine matches the "yaml: line N: msg" form of yaml.v3 errors.
var yamlLine = regexp.MustCompile(`^yaml: (?:line (\d+): )?(.*)$`)

// syntaxError converts a yaml.v3 decoding error into a *ParseError. The
// decoder reports a line but no column.
func syntaxError(err error) *ParseError {
	msg := err.Error()
	var te *yaml.TypeError
	if errors.As(err, &te) && len(te.Errors) > 0 {
		msg = "yaml: " + te.Errors[0]
	}
	perr := &ParseError{Msg: strings.TrimPrefix(msg, "yaml: ")}
	if m := yamlLine.FindStringSubmatch(msg); m != nil {
		perr.Line, _ = strconv.Atoi(m[1])
		perr.Msg = m[2]
	}
	return perr
}

func newParseError(n *yaml.Node, msg string) *ParseError {
	return &ParseError{Line: n.Line, Column: n.Column, Node: describe(n), Msg: msg}
}

// describe renders a short, single-line preview of a node.
func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		v := n.Value
		if utf8.RuneCountInString(v) > 60 {
			v = string([]rune(v)[:57]) + "..."
		}
		return fmt.Sprintf("%q", v)
	case yaml.MappingNode:
		keys := make([]string, 0, len(n.Content)/2)
		for i := 0; i < len(n.Content); i += 2 {
			keys = append(keys, n.Content[i].Value)
		}
		return "{" + strings.Join(keys, ", ") + "}"
	case yaml.SequenceNode:
		return fmt.Sprintf("[%d items]", len(n.Content))
	default:
		return ""
	}
}
