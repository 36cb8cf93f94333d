package content

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// frontMatter holds the keys read from a document's YAML header.
type frontMatter struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	SidebarLabel string `yaml:"sidebar_label"`
}

var fence = []byte("---")

// splitFrontMatter separates a leading "---" fenced YAML block from the
// body. Documents without one return a nil header.
func splitFrontMatter(src []byte) (header, body []byte) {
	src = bytes.TrimPrefix(src, []byte("\xef\xbb\xbf"))
	first, rest, ok := cutLine(src)
	if !ok || !bytes.Equal(bytes.TrimRight(first, " \t\r"), fence) {
		return nil, src
	}
	var buf bytes.Buffer
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = cutLine(rest)
		if bytes.Equal(bytes.TrimRight(line, " \t\r"), fence) {
			return buf.Bytes(), rest
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	// Unterminated header: treat the whole file as body.
	return nil, src
}

func cutLine(b []byte) (line, rest []byte, found bool) {
	if len(b) == 0 {
		return nil, nil, false
	}
	line, rest, found = bytes.Cut(b, []byte("\n"))
	return line, rest, true
}

func parseFrontMatter(header []byte) (frontMatter, error) {
	var fm frontMatter
	if len(bytes.TrimSpace(header)) == 0 {
		return fm, nil
	}
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return fm, fmt.Errorf("parsing front matter: %w", err)
	}
	fm.ID = strings.TrimSpace(fm.ID)
	return fm, nil
}

var markdown = goldmark.New()

// firstHeading returns the text of the first level-1 heading in body.
func firstHeading(body []byte) string {
	doc := markdown.Parser().Parse(text.NewReader(body))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			var b strings.Builder
			plainText(h, body, &b)
			title = strings.TrimSpace(b.String())
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}

func plainText(n ast.Node, src []byte, b *strings.Builder) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			plainText(c, src, b)
		}
	}
}
