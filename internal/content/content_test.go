package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under a temporary root and returns it.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return root
}

type countingReporter struct {
	total   int
	updates int
	done    bool
}

func (r *countingReporter) Start(total int)    { r.total = total }
func (r *countingReporter) Update(int, string) { r.updates++ }
func (r *countingReporter) Finish()            { r.done = true }

func TestScan(t *testing.T) {
	root := writeTree(t, map[string]string{
		"docs/intro.md":                 "# Introduction\n\nWelcome.\n",
		"docs/how-to-guides/filters.md": "---\ntitle: Filter tables\nsidebar_label: Filters\n---\n\n# Ignored heading\n",
		"docs/reference/cheat.mdx":      "---\nid: cheat-sheet\n---\n\nNo heading here.\n",
		"docs/notes.txt":                "not a document",
		"node_modules/pkg/readme.md":    "# vendored\n",
		"build/docs/intro.md":           "# built\n",
	})

	rep := &countingReporter{}
	set, err := Scan(context.Background(), ScanConfig{Root: root}, rep)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"docs/how-to-guides/filters",
		"docs/intro",
		"docs/reference/cheat-sheet",
	}, set.IDs())
	assert.Equal(t, 3, rep.total)
	assert.Equal(t, 3, rep.updates)
	assert.True(t, rep.done)

	intro, ok := set.Get("docs/intro")
	require.True(t, ok)
	assert.Equal(t, "Introduction", intro.Title)
	assert.Equal(t, "docs/intro.md", intro.Path)

	filters, _ := set.Get("docs/how-to-guides/filters")
	assert.Equal(t, "Filter tables", filters.Title)
	assert.Equal(t, "Filters", filters.Label())

	cheat, _ := set.Get("docs/reference/cheat-sheet")
	assert.Equal(t, "docs/reference/cheat.mdx", cheat.Path)
	assert.Empty(t, cheat.Title)
}

func TestScanIncludeExclude(t *testing.T) {
	root := writeTree(t, map[string]string{
		"docs/a.md":       "# A\n",
		"docs/draft/b.md": "# B\n",
		"blog/post.md":    "# Post\n",
		"docs/c.mdx":      "# C\n",
	})

	set, err := Scan(context.Background(), ScanConfig{
		Root:    root,
		Include: []string{"docs/**/*.md"},
		Exclude: []string{"docs/draft/**"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/a"}, set.IDs())
}

func TestScanDuplicateID(t *testing.T) {
	root := writeTree(t, map[string]string{
		"docs/a.md": "# A\n",
		"docs/b.md": "---\nid: a\n---\n",
	})
	_, err := Scan(context.Background(), ScanConfig{Root: root}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `document id "docs/a"`)
}

func TestScanBadFrontMatter(t *testing.T) {
	root := writeTree(t, map[string]string{
		"docs/a.md": "---\ntitle: [unclosed\n---\n",
	})
	_, err := Scan(context.Background(), ScanConfig{Root: root}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docs/a.md")
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(context.Background(), ScanConfig{Root: filepath.Join(t.TempDir(), "missing")}, nil)
	assert.Error(t, err)
}

func TestScanCancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"docs/a.md": "# A\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Scan(ctx, ScanConfig{Root: root}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDocumentID(t *testing.T) {
	tests := []struct {
		rel, override, want string
	}{
		{"docs/intro.md", "", "docs/intro"},
		{"docs/ref/table.mdx", "", "docs/ref/table"},
		{"docs/ref/table.md", "table-ops", "docs/ref/table-ops"},
		{"top.md", "", "top"},
		{"top.md", "home", "home"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DocumentID(tt.rel, tt.override), tt.rel)
	}
}

func TestSplitFrontMatter(t *testing.T) {
	header, body := splitFrontMatter([]byte("\xef\xbb\xbf---\nid: x\n---\n# T\n"))
	assert.Equal(t, "id: x\n", string(header))
	assert.Equal(t, "# T\n", string(body))

	header, body = splitFrontMatter([]byte("# No header\n"))
	assert.Nil(t, header)
	assert.Equal(t, "# No header\n", string(body))

	header, body = splitFrontMatter([]byte("---\nid: x\n"))
	assert.Nil(t, header)
	assert.Equal(t, "---\nid: x\n", string(body))
}

func TestFirstHeading(t *testing.T) {
	assert.Equal(t, "Hello world", firstHeading([]byte("Intro text\n\n## Sub\n\n# Hello *world*\n")))
	assert.Equal(t, "Setext", firstHeading([]byte("Setext\n======\n")))
	assert.Empty(t, firstHeading([]byte("## Only level two\n")))
}

func TestSetLabel(t *testing.T) {
	set := NewSet(
		Document{ID: "a", Title: "Title A"},
		Document{ID: "b", Title: "Title B", SidebarLabel: "B"},
	)
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Has("a"))
	assert.False(t, set.Has("c"))
	assert.Equal(t, "Title A", set.Label("a"))
	assert.Equal(t, "B", set.Label("b"))
	assert.Empty(t, set.Label("c"))

	var nilSet *Set
	assert.Empty(t, nilSet.Label("a"))
}

func TestFilters(t *testing.T) {
	assert.True(t, MatchesInclude("docs/a.md", nil))
	assert.True(t, MatchesInclude("docs/deep/b.mdx", nil))
	assert.False(t, MatchesInclude("docs/a.txt", nil))
	assert.True(t, MatchesExclude("docs/draft/x.md", []string{"docs/draft/**"}))
	assert.False(t, MatchesExclude("docs/x.md", nil))
	assert.True(t, shouldExcludeDir("Node_Modules"))
	assert.False(t, shouldExcludeDir("docs"))
}
