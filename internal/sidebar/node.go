// Package sidebar loads, normalizes, walks and validates documentation
// sidebar trees.
//
// A sidebar is an ordered sequence of nodes. Each node is a document leaf,
// a category (optionally with a clickable header linking to a document) or
// an external link. Authored order is significant and is preserved by every
// operation in this package.
package sidebar

// Kind identifies the variant of a Node.
type Kind string

const (
	KindDoc              Kind = "doc"
	KindCategory         Kind = "category"
	KindCategoryWithLink Kind = "category-with-link"
	KindLink             Kind = "link"
)

// Node is one entry of a sidebar. The set of implementations is closed:
// *Doc, *Category and *Link.
type Node interface {
	Kind() Kind
	// Enabled reports whether the node itself is enabled. A node whose
	// ancestor is disabled is dormant even when Enabled returns true.
	Enabled() bool
	// DisplayLabel is the label shown for the node, which may be empty for
	// documents that take their title from the content.
	DisplayLabel() string
	sealed()
}

// Doc is a leaf referencing a documentation page by its document id.
type Doc struct {
	ID       string
	Label    string
	Disabled bool
}

func (d *Doc) Kind() Kind           { return KindDoc }
func (d *Doc) Enabled() bool        { return !d.Disabled }
func (d *Doc) DisplayLabel() string { return d.Label }
func (d *Doc) sealed()              {}

// Category is a named, ordered group of nodes. When Link is set the
// category header itself navigates to that document.
type Category struct {
	Label     string
	Link      string
	Items     []Node
	Collapsed *bool
	Disabled  bool
}

func (c *Category) Kind() Kind {
	if c.Link != "" {
		return KindCategoryWithLink
	}
	return KindCategory
}
func (c *Category) Enabled() bool        { return !c.Disabled }
func (c *Category) DisplayLabel() string { return c.Label }
func (c *Category) sealed()              {}

// HasLink reports whether the category header links to a document.
func (c *Category) HasLink() bool { return c.Link != "" }

// Link is an external hyperlink rendered in place of a document leaf.
type Link struct {
	Label    string
	Href     string
	Disabled bool
}

func (l *Link) Kind() Kind           { return KindLink }
func (l *Link) Enabled() bool        { return !l.Disabled }
func (l *Link) DisplayLabel() string { return l.Label }
func (l *Link) sealed()              {}

// Sidebar is a named root sequence of nodes.
type Sidebar struct {
	Name  string
	Items []Node
}

// File holds every sidebar defined in one source file, in authored order.
type File struct {
	Sidebars []*Sidebar
}

// Sidebar returns the sidebar with the given name.
func (f *File) Sidebar(name string) (*Sidebar, bool) {
	for _, s := range f.Sidebars {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Names returns the sidebar names in authored order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Sidebars))
	for _, s := range f.Sidebars {
		names = append(names, s.Name)
	}
	return names
}
