package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/sidenav/internal/render"
	"github.com/ziadkadry99/sidenav/internal/sidebar"
)

// sidebarFor resolves an optional sidebar name to a sidebar.
func (s *Server) sidebarFor(name string) (*sidebar.Sidebar, *mcp.CallToolResult) {
	if name == "" {
		name = s.opts.DefaultSidebar
	}
	sb, ok := s.file.Sidebar(name)
	if !ok {
		return nil, mcp.NewToolResultError(fmt.Sprintf(
			"unknown sidebar %q; available: %s", name, strings.Join(s.file.Names(), ", "),
		))
	}
	return sb, nil
}

// handleListSidebars lists every sidebar with its counts.
func (s *Server) handleListSidebars(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if len(s.file.Sidebars) == 0 {
		return mcp.NewToolResultText("No sidebars defined."), nil
	}

	var b strings.Builder
	for _, sb := range s.file.Sidebars {
		c, err := sidebar.Count(sb.Items)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s: %v", sb.Name, err)), nil
		}
		fmt.Fprintf(&b, "- %s: %d docs, %d categories, %d links", sb.Name, c.Docs, c.Categories, c.Links)
		if c.Dormant > 0 {
			fmt.Fprintf(&b, ", %d disabled", c.Dormant)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleGetSidebar returns a sidebar outline.
func (s *Server) handleGetSidebar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sb, errResult := s.sidebarFor(request.GetString("name", ""))
	if errResult != nil {
		return errResult, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", sb.Name)
	err := render.Outline(&b, sb.Items, render.OutlineOptions{
		IncludeDormant: request.GetBool("include_disabled", false),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rendering outline: %v", err)), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleFindDocument reports every category path that references a document.
func (s *Server) handleFindDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := request.RequireString("doc_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: doc_id"), nil
	}

	sidebars := s.file.Sidebars
	if name := request.GetString("sidebar", ""); name != "" {
		sb, errResult := s.sidebarFor(name)
		if errResult != nil {
			return errResult, nil
		}
		sidebars = []*sidebar.Sidebar{sb}
	}

	var b strings.Builder
	found := 0
	for _, sb := range sidebars {
		paths, err := sidebar.Breadcrumbs(sb.Items, docID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s: %v", sb.Name, err)), nil
		}
		for _, p := range paths {
			found++
			fmt.Fprintf(&b, "- %s: %s\n", sb.Name, breadcrumb(p))
		}
	}

	if found == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("Document %q is not referenced by any sidebar.", docID)), nil
	}
	header := fmt.Sprintf("Document %q is referenced %d time(s):\n", docID, found)
	if s.opts.Content != nil {
		if title := s.opts.Content.Label(docID); title != "" {
			header = fmt.Sprintf("Document %q (%s) is referenced %d time(s):\n", docID, title, found)
		}
	}
	return mcp.NewToolResultText(header + b.String()), nil
}

// handleValidateSidebar validates a sidebar and summarizes the findings.
func (s *Server) handleValidateSidebar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sb, errResult := s.sidebarFor(request.GetString("name", ""))
	if errResult != nil {
		return errResult, nil
	}

	opts := s.opts.Validate
	if s.opts.Content != nil {
		opts.Resolver = s.opts.Content
	}
	report := sidebar.Validate(sb.Items, opts)
	return mcp.NewToolResultText(formatReport(sb.Name, report, opts.Resolver != nil)), nil
}

// formatReport renders a validation report as Markdown.
func formatReport(name string, report *sidebar.Report, resolved bool) string {
	var b strings.Builder
	errs, warns := report.Errors(), report.Warnings()

	status := "valid"
	if len(errs) > 0 {
		status = "invalid"
	}
	fmt.Fprintf(&b, "Sidebar %s is %s: %d error(s), %d warning(s).\n", name, status, len(errs), len(warns))
	c := report.Counts
	fmt.Fprintf(&b, "%d docs, %d categories, %d links, %d disabled, depth %d.\n",
		c.Docs, c.Categories, c.Links, c.Dormant, c.MaxDepth)
	if !resolved {
		b.WriteString("Document references were not checked against content.\n")
	}

	for _, group := range []struct {
		title    string
		findings []sidebar.Finding
	}{{"Errors", errs}, {"Warnings", warns}} {
		if len(group.findings) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", group.title)
		for _, f := range group.findings {
			fmt.Fprintf(&b, "- [%s] %s\n", f.Code(), f.Err)
		}
	}
	return b.String()
}

func breadcrumb(path []string) string {
	if len(path) == 0 {
		return "(top level)"
	}
	return strings.Join(path, " > ")
}
