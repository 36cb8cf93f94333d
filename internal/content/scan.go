package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ziadkadry99/sidenav/internal/progress"
)

// ScanConfig controls which files Scan reads.
type ScanConfig struct {
	Root    string   // Content root; document ids are relative to it.
	Include []string // Glob patterns; empty means DefaultInclude.
	Exclude []string // Glob patterns excluded after Include.
}

// Scan walks cfg.Root and returns the documents it finds. A document id is
// the file's path relative to the root without its extension; an `id` in
// the front matter replaces the last path segment.
func Scan(ctx context.Context, cfg ScanConfig, reporter progress.Reporter) (*Set, error) {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("content: resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content: %s is not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if p != root && shouldExcludeDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if MatchesInclude(rel, cfg.Include) && !MatchesExclude(rel, cfg.Exclude) {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("content: traversal: %w", err)
	}

	set := NewSet()
	reporter.Start(len(paths))
	defer reporter.Finish()
	for i, rel := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := readDocument(root, rel)
		if err != nil {
			return nil, err
		}
		if err := set.add(doc); err != nil {
			return nil, fmt.Errorf("content: %w", err)
		}
		reporter.Update(i+1, rel)
	}
	return set, nil
}

func readDocument(root, rel string) (Document, error) {
	src, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return Document{}, fmt.Errorf("content: reading %s: %w", rel, err)
	}
	header, body := splitFrontMatter(src)
	fm, err := parseFrontMatter(header)
	if err != nil {
		return Document{}, fmt.Errorf("content: %s: %w", rel, err)
	}

	doc := Document{
		ID:           DocumentID(rel, fm.ID),
		Path:         rel,
		Title:        fm.Title,
		SidebarLabel: fm.SidebarLabel,
	}
	if doc.Title == "" {
		doc.Title = firstHeading(body)
	}
	return doc, nil
}

// DocumentID derives the id of the document at rel. A non-empty override
// replaces the file name.
func DocumentID(rel, override string) string {
	rel = filepath.ToSlash(rel)
	dir, file := path.Split(rel)
	if override != "" {
		return dir + override
	}
	return dir + strings.TrimSuffix(file, path.Ext(file))
}
