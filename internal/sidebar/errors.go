package sidebar

import (
	"fmt"
	"strings"
)

// ParseError describes malformed sidebar source. Column is zero for YAML
// syntax errors, which only carry a line.
type ParseError struct {
	Line   int
	Column int
	// Node is a short rendering of the offending node.
	Node string
	Msg  string
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if e.Node != "" {
		msg = fmt.Sprintf("%s (at %s)", e.Msg, e.Node)
	}
	switch {
	case e.Line == 0:
		return msg
	case e.Column == 0:
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	default:
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, msg)
	}
}

// UnresolvedReferenceError reports a document id that does not exist in
// the content set.
type UnresolvedReferenceError struct {
	DocID string
	Path  []string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved document %q in %s", e.DocID, formatPath(e.Path))
}

// InvalidLinkError reports a link whose href is not a well-formed absolute
// URL.
type InvalidLinkError struct {
	Label  string
	Href   string
	Path   []string
	Reason string
}

func (e *InvalidLinkError) Error() string {
	return fmt.Sprintf("invalid link %q (%s) in %s: %s", e.Label, e.Href, formatPath(e.Path), e.Reason)
}

// CycleError reports a category that is its own ancestor.
type CycleError struct {
	Label string
	Path  []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("category %q is its own ancestor in %s", e.Label, formatPath(e.Path))
}

// DuplicateReferenceError reports a document id referenced more than once.
type DuplicateReferenceError struct {
	DocID string
	Paths [][]string
}

func (e *DuplicateReferenceError) Error() string {
	locs := make([]string, len(e.Paths))
	for i, p := range e.Paths {
		locs[i] = formatPath(p)
	}
	return fmt.Sprintf("document %q referenced %d times: %s", e.DocID, len(e.Paths), strings.Join(locs, "; "))
}

// EmptyCategoryError reports an active category with nothing to show.
type EmptyCategoryError struct {
	Label string
	Path  []string
}

func (e *EmptyCategoryError) Error() string {
	return fmt.Sprintf("category %q in %s has no active items", e.Label, formatPath(e.Path))
}

func formatPath(path []string) string {
	if len(path) == 0 {
		return "<root>"
	}
	return strings.Join(path, " > ")
}
