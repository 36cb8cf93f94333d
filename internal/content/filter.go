package content

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude matches Markdown and MDX documents.
var DefaultInclude = []string{"**/*.md", "**/*.mdx"}

// DefaultExcludes are directory names never scanned for documents.
var DefaultExcludes = []string{
	".git",
	"node_modules",
	"build",
	".docusaurus",
	".sidenav",
	"vendor",
	".idea",
	".vscode",
}

// shouldExcludeDir checks whether a directory name matches any default
// exclusion. Used during traversal to skip entire subtrees.
func shouldExcludeDir(name string) bool {
	for _, excl := range DefaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// MatchesInclude returns true if relPath matches any include pattern. An
// empty pattern list uses DefaultInclude.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		patterns = DefaultInclude
	}
	return matchesAny(relPath, patterns)
}

// MatchesExclude returns true if relPath matches any exclude pattern.
func MatchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny matches slash-normalized paths with doublestar so ** spans
// directories.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(filepath.ToSlash(pattern), normalized); err == nil && matched {
			return true
		}
	}
	return false
}
