package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/sidenav/internal/sidebar"
)

// resetFlags restores every flag to its default so runs do not leak into
// each other through the package-level flag variables.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command with args and an isolated config file.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	if !containsFlag(args, "--config") {
		args = append(args, "--config", filepath.Join(t.TempDir(), "missing.yml"))
	}
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func containsFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag || strings.HasPrefix(a, flag+"=") {
			return true
		}
	}
	return false
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sidenav dev\n", out)
}

func TestTree(t *testing.T) {
	out, err := run(t, "tree")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "docs/intro", lines[0])
	assert.Contains(t, out, "Getting Started/\n  docs/tutorials/quickstart\n")
	assert.NotContains(t, out, "BusinessCalendar")

	out, err = run(t, "tree", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "BusinessCalendar/ (disabled)")
}

func TestTreeUnknownSidebar(t *testing.T) {
	_, err := run(t, "tree", "--name", "groovySidebar")
	assert.ErrorContains(t, err, `sidebar "groovySidebar" not found`)
}

func TestValidateBuiltIn(t *testing.T) {
	out, err := run(t, "validate", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "Sidebar mainSidebar (built-in:sidebars/core.yml)")
	assert.Contains(t, out, "document references not checked")
	assert.Contains(t, out, "[duplicate-reference]")
	assert.Contains(t, out, "OK: 2 warning(s)")

	// The shipped duplicates are known, so strict mode still passes.
	out, err = run(t, "validate", "--quiet", "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "OK: 2 warning(s)")
}

func TestValidateWithContent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "intro.md"), []byte("# Intro\n"), 0o644))

	out, err := run(t, "validate", "--quiet", "--content", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error(s)")
	assert.Contains(t, out, "[unresolved-reference]")
	assert.NotContains(t, out, `"docs/intro"`)
	assert.Contains(t, out, "FAILED:")
}

func writeSidebar(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sidebars.yml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

const smallSidebar = `
mainSidebar:
  - docs/intro
  - Guides:
      - docs/guides/one
      - docs/intro
  - type: link
    label: Pydoc (client)
    href: https://deephaven.io/core/client-api/python
groovySidebar:
  - docs/groovy/intro
`

func TestValidateStrictDuplicate(t *testing.T) {
	path := writeSidebar(t, smallSidebar)

	_, err := run(t, "validate", "--quiet", "--sidebar", path)
	require.NoError(t, err)

	out, err := run(t, "validate", "--quiet", "--sidebar", path, "--strict")
	require.Error(t, err)
	assert.Contains(t, out, "error [duplicate-reference]")
}

func TestValidateParseError(t *testing.T) {
	path := writeSidebar(t, "mainSidebar:\n  - type: link\n    label: x\n")
	_, err := run(t, "validate", "--sidebar", path)
	var perr *sidebar.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
}

func TestValidateRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")
	cfgPath := filepath.Join(dir, ".sidenav.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("history:\n  enabled: true\n  path: "+dbPath+"\n"), 0o644))

	_, err := run(t, "validate", "--quiet", "--config", cfgPath)
	require.NoError(t, err)
	_, err = run(t, "validate", "--quiet", "--config", cfgPath, "--no-record")
	require.NoError(t, err)

	out, err := run(t, "history", "--config", cfgPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "SIDEBAR")
	assert.Contains(t, lines[1], "mainSidebar")
	assert.Contains(t, lines[1], "unresolved")

	id := strings.Fields(lines[1])[0]
	out, err = run(t, "history", "--config", cfgPath, "--run", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Run "+id)
	assert.Contains(t, out, "warning [duplicate-reference]")
}

func TestHistoryMissingDatabase(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".sidenav.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("history:\n  path: "+filepath.Join(dir, "none.db")+"\n"), 0o644))

	_, err := run(t, "history", "--config", cfgPath)
	assert.ErrorContains(t, err, "no history database")
}

func TestExportJSON(t *testing.T) {
	path := writeSidebar(t, smallSidebar)
	out, err := run(t, "export", "--sidebar", path)
	require.NoError(t, err)

	var got map[string][]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []any{"docs/groovy/intro"}, got["groovySidebar"])
	assert.Len(t, got["mainSidebar"], 3)
}

func TestExportYAMLRoundTrip(t *testing.T) {
	out, err := run(t, "export", "--format", "yaml")
	require.NoError(t, err)

	file, err := sidebar.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, []string{"mainSidebar"}, file.Names())
}

func TestExportHTMLToFile(t *testing.T) {
	path := writeSidebar(t, smallSidebar)
	target := filepath.Join(t.TempDir(), "nav.html")

	out, err := run(t, "export", "--sidebar", path, "--format", "html", "--output", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<a href="/docs/guides/one">One</a>`)
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := run(t, "export", "--format", "toml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestFind(t *testing.T) {
	out, err := run(t, "find", "docs/how-to-guides/partition-by")
	require.NoError(t, err)
	assert.Equal(t,
		"mainSidebar > User Guides > Table operations > Group and aggregate\n"+
			"mainSidebar > User Guides > Table operations > Partitioned tables\n",
		out)

	out, err = run(t, "find", "docs/intro")
	require.NoError(t, err)
	assert.Equal(t, "mainSidebar\n", out)

	_, err = run(t, "find", "docs/does-not-exist")
	assert.ErrorContains(t, err, "not in any sidebar")
}

func TestFindRestrictedToSidebar(t *testing.T) {
	path := writeSidebar(t, smallSidebar)
	out, err := run(t, "find", "docs/groovy/intro", "--sidebar", path)
	require.NoError(t, err)
	assert.Equal(t, "groovySidebar\n", out)

	_, err = run(t, "find", "docs/groovy/intro", "--sidebar", path, "--name", "mainSidebar")
	assert.Error(t, err)
}

func TestPreviewWatchNeedsFile(t *testing.T) {
	_, err := run(t, "preview", "--watch")
	assert.ErrorContains(t, err, "--watch needs a sidebar file")
}

func TestInvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), ".sidenav.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_format: xml\n"), 0o644))
	_, err := run(t, "tree", "--config", cfgPath)
	assert.ErrorContains(t, err, "invalid config")
}
