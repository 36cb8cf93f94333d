package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ziadkadry99/sidenav/internal/sidebar"
)

// OutlineOptions controls Outline.
type OutlineOptions struct {
	IncludeDormant bool
	Indent         string // Defaults to two spaces.
}

// Outline writes items as an indented text tree. Categories end with "/",
// a category header link follows an arrow and external links show their
// URL in angle brackets.
func Outline(w io.Writer, items []sidebar.Node, opts OutlineOptions) error {
	indent := opts.Indent
	if indent == "" {
		indent = "  "
	}
	return sidebar.Walk(items, func(v sidebar.Visit) error {
		if !v.Active && !opts.IncludeDormant {
			if _, ok := v.Node.(*sidebar.Category); ok {
				return sidebar.SkipCategory
			}
			return nil
		}

		var line string
		switch n := v.Node.(type) {
		case *sidebar.Doc:
			line = n.ID
			if n.Label != "" {
				line = fmt.Sprintf("%s (%s)", n.Label, n.ID)
			}
		case *sidebar.Category:
			line = n.Label + "/"
			if n.HasLink() {
				line += " -> " + n.Link
			}
		case *sidebar.Link:
			line = fmt.Sprintf("%s <%s>", n.Label, n.Href)
		}
		if !v.Active {
			line += " (disabled)"
		}
		_, err := fmt.Fprintln(w, strings.Repeat(indent, v.Depth())+line)
		return err
	})
}
