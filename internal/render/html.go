// Package render turns sidebar trees into navigation markup and text
// outlines.
package render

import (
	"errors"
	"fmt"
	"html"
	"path"
	"slices"
	"strings"

	"github.com/ziadkadry99/sidenav/internal/content"
	"github.com/ziadkadry99/sidenav/internal/sidebar"
)

// Options controls HTML rendering.
type Options struct {
	// ActiveDoc is the id of the page being viewed. Categories on its path
	// are expanded and its anchor is marked active.
	ActiveDoc string
	// DocHref maps a document id to a URL. Defaults to "/" + id.
	DocHref func(id string) string
	// Content supplies titles for documents without an explicit label.
	Content *content.Set
}

func (o Options) href(id string) string {
	if o.DocHref != nil {
		return o.DocHref(id)
	}
	return "/" + id
}

// HTML renders items as nested <ul><li> navigation. Dormant nodes are
// omitted.
func HTML(items []sidebar.Node, opts Options) (string, error) {
	var b strings.Builder
	r := renderer{b: &b, opts: opts}
	if err := r.list(items, nil); err != nil {
		return "", err
	}
	return b.String(), nil
}

type renderer struct {
	b    *strings.Builder
	opts Options
}

func (r *renderer) list(items []sidebar.Node, parents []*sidebar.Category) error {
	r.b.WriteString("<ul>\n")
	for _, item := range items {
		if !item.Enabled() {
			continue
		}
		switch n := item.(type) {
		case *sidebar.Doc:
			r.doc(n.ID, n.Label)
		case *sidebar.Link:
			fmt.Fprintf(r.b, `<li class="link"><a href="%s" rel="noopener" target="_blank">%s</a></li>`+"\n",
				html.EscapeString(n.Href), html.EscapeString(n.Label))
		case *sidebar.Category:
			if slices.Contains(parents, n) {
				labels := make([]string, len(parents))
				for i, p := range parents {
					labels[i] = p.Label
				}
				return &sidebar.CycleError{Label: n.Label, Path: labels}
			}
			if err := r.category(n, parents); err != nil {
				return err
			}
		}
	}
	r.b.WriteString("</ul>\n")
	return nil
}

func (r *renderer) category(c *sidebar.Category, parents []*sidebar.Category) error {
	class := "dir"
	if r.opts.ActiveDoc != "" && containsDoc(c, r.opts.ActiveDoc) {
		class += " expanded"
	} else if c.Collapsed != nil && !*c.Collapsed {
		class += " expanded"
	}
	fmt.Fprintf(r.b, `<li class="%s">`, class)
	if c.HasLink() {
		active := ""
		if c.Link == r.opts.ActiveDoc {
			active = ` class="active"`
		}
		fmt.Fprintf(r.b, `<a class="dir-toggle" href="%s"%s>%s</a>`+"\n",
			html.EscapeString(r.opts.href(c.Link)), active, html.EscapeString(c.Label))
	} else {
		fmt.Fprintf(r.b, `<span class="dir-toggle">%s</span>`+"\n", html.EscapeString(c.Label))
	}
	if err := r.list(c.Items, append(slices.Clip(parents), c)); err != nil {
		return err
	}
	r.b.WriteString("</li>\n")
	return nil
}

func (r *renderer) doc(id, label string) {
	active := ""
	if id == r.opts.ActiveDoc {
		active = ` class="active"`
	}
	fmt.Fprintf(r.b, `<li class="file"><a href="%s"%s>%s</a></li>`+"\n",
		html.EscapeString(r.opts.href(id)), active, html.EscapeString(r.label(id, label)))
}

// label picks the node label, then the document title, then a humanized
// last id segment.
func (r *renderer) label(id, label string) string {
	if label != "" {
		return label
	}
	if title := r.opts.Content.Label(id); title != "" {
		return title
	}
	return Humanize(path.Base(id))
}

// containsDoc reports whether id is referenced by an active node under c,
// including c's own link.
func containsDoc(c *sidebar.Category, id string) bool {
	errFound := errors.New("found")
	err := sidebar.Walk([]sidebar.Node{c}, func(v sidebar.Visit) error {
		if !v.Active {
			if _, ok := v.Node.(*sidebar.Category); ok {
				return sidebar.SkipCategory
			}
			return nil
		}
		switch n := v.Node.(type) {
		case *sidebar.Doc:
			if n.ID == id {
				return errFound
			}
		case *sidebar.Category:
			if n.Link == id {
				return errFound
			}
		}
		return nil
	})
	return errors.Is(err, errFound)
}

// Humanize converts an id slug such as "table-operations" to
// "Table Operations".
func Humanize(slug string) string {
	words := strings.FieldsFunc(slug, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
