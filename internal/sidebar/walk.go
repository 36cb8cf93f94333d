package sidebar

import (
	"errors"
	"slices"
)

// SkipCategory can be returned by a WalkFunc visiting a category to skip
// its children. It is never returned by Walk.
var SkipCategory = errors.New("skip category")

// Visit describes one node reached during a walk.
type Visit struct {
	Node Node
	// Parents are the enclosing categories, outermost first.
	Parents []*Category
	// Index is the position of Node within its parent's items.
	Index int
	// Active is false when the node or any ancestor is disabled.
	Active bool
}

// Depth is the nesting level of the node; root items have depth 0.
func (v Visit) Depth() int { return len(v.Parents) }

// Path returns the labels of the enclosing categories.
func (v Visit) Path() []string {
	path := make([]string, len(v.Parents))
	for i, p := range v.Parents {
		path[i] = p.Label
	}
	return path
}

// WalkFunc is called for every node in depth-first authored order.
type WalkFunc func(v Visit) error

// Walk traverses items depth-first in authored order. A category reached
// again while it is still on the ancestor stack fails with *CycleError.
func Walk(items []Node, fn WalkFunc) error {
	return walk(items, nil, true, fn)
}

func walk(items []Node, parents []*Category, active bool, fn WalkFunc) error {
	for i, item := range items {
		v := Visit{
			Node:    item,
			Parents: parents,
			Index:   i,
			Active:  active && item.Enabled(),
		}

		cat, isCat := item.(*Category)
		if isCat && slices.Contains(parents, cat) {
			return &CycleError{Label: cat.Label, Path: v.Path()}
		}

		err := fn(v)
		if isCat && errors.Is(err, SkipCategory) {
			continue
		}
		if err != nil {
			return err
		}

		if isCat {
			// Clip so sibling subtrees never share a backing array.
			next := append(slices.Clip(parents), cat)
			if err := walk(cat.Items, next, v.Active, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// DocRef is a reference to a document from a leaf or a category header.
type DocRef struct {
	DocID  string
	Path   []string
	Active bool
	// Header is true when the reference is a category's own link.
	Header bool
}

// Docs returns every document reference in authored order. Dormant
// references are included only when includeDormant is set.
func Docs(items []Node, includeDormant bool) ([]DocRef, error) {
	var refs []DocRef
	err := Walk(items, func(v Visit) error {
		if !v.Active && !includeDormant {
			return nil
		}
		switch n := v.Node.(type) {
		case *Doc:
			refs = append(refs, DocRef{DocID: n.ID, Path: v.Path(), Active: v.Active})
		case *Category:
			if n.Link != "" {
				path := append(v.Path(), n.Label)
				refs = append(refs, DocRef{DocID: n.Link, Path: path, Active: v.Active, Header: true})
			}
		}
		return nil
	})
	return refs, err
}

// Breadcrumbs returns the category path of every active reference to
// docID. An empty result means the document is not in the sidebar.
func Breadcrumbs(items []Node, docID string) ([][]string, error) {
	refs, err := Docs(items, false)
	if err != nil {
		return nil, err
	}
	var paths [][]string
	for _, ref := range refs {
		if ref.DocID == docID {
			paths = append(paths, ref.Path)
		}
	}
	return paths, nil
}

// Counts summarizes a sidebar.
type Counts struct {
	Docs       int `json:"docs"`
	Categories int `json:"categories"`
	Links      int `json:"links"`
	Dormant    int `json:"dormant"`
	MaxDepth   int `json:"max_depth"`
}

// Count tallies active nodes per kind and the number of dormant nodes.
func Count(items []Node) (Counts, error) {
	var c Counts
	err := Walk(items, func(v Visit) error {
		if !v.Active {
			c.Dormant++
			return nil
		}
		if d := v.Depth(); d > c.MaxDepth {
			c.MaxDepth = d
		}
		switch v.Node.(type) {
		case *Doc:
			c.Docs++
		case *Category:
			c.Categories++
		case *Link:
			c.Links++
		}
		return nil
	})
	return c, err
}
