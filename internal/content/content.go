// Package content discovers the documentation pages a sidebar can
// reference and resolves document ids against them.
package content

import (
	"fmt"
	"sort"
)

// Document is one documentation page.
type Document struct {
	ID string
	// Path is the slash-separated source path relative to the content root.
	Path         string
	Title        string
	SidebarLabel string
}

// Label returns the text a sidebar shows for the document.
func (d Document) Label() string {
	if d.SidebarLabel != "" {
		return d.SidebarLabel
	}
	return d.Title
}

// Set is an immutable collection of documents keyed by id.
type Set struct {
	docs map[string]Document
}

// NewSet builds a set from documents. Later documents replace earlier ones
// with the same id.
func NewSet(docs ...Document) *Set {
	s := &Set{docs: make(map[string]Document, len(docs))}
	for _, d := range docs {
		s.docs[d.ID] = d
	}
	return s
}

func (s *Set) add(d Document) error {
	if prev, ok := s.docs[d.ID]; ok {
		return fmt.Errorf("document id %q defined by both %s and %s", d.ID, prev.Path, d.Path)
	}
	s.docs[d.ID] = d
	return nil
}

// Has reports whether a document with the id exists.
func (s *Set) Has(id string) bool {
	_, ok := s.docs[id]
	return ok
}

// Get returns the document with the id.
func (s *Set) Get(id string) (Document, bool) {
	d, ok := s.docs[id]
	return d, ok
}

// Label returns the sidebar label for id, or "" when unknown.
func (s *Set) Label(id string) string {
	if s == nil {
		return ""
	}
	return s.docs[id].Label()
}

// Len returns the number of documents.
func (s *Set) Len() int { return len(s.docs) }

// IDs returns every document id, sorted.
func (s *Set) IDs() []string {
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
