package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listSidebarsTool defines the list_sidebars MCP tool.
var listSidebarsTool = mcp.NewTool("list_sidebars",
	mcp.WithDescription("List the documentation sidebars with their document, category and link counts."),
)

// getSidebarTool defines the get_sidebar MCP tool.
var getSidebarTool = mcp.NewTool("get_sidebar",
	mcp.WithDescription("Get a documentation sidebar as an indented outline of categories, document ids and external links."),
	mcp.WithString("name",
		mcp.Description("Sidebar name (defaults to the main sidebar)"),
	),
	mcp.WithBoolean("include_disabled",
		mcp.Description("Also show disabled entries, marked (disabled)"),
	),
)

// findDocumentTool defines the find_document MCP tool.
var findDocumentTool = mcp.NewTool("find_document",
	mcp.WithDescription("Find where a document appears in the sidebars. Returns the category path of every reference."),
	mcp.WithString("doc_id",
		mcp.Required(),
		mcp.Description("Document id, e.g. docs/how-to-guides/partition-by"),
	),
	mcp.WithString("sidebar",
		mcp.Description("Restrict the search to one sidebar"),
	),
)

// validateSidebarTool defines the validate_sidebar MCP tool.
var validateSidebarTool = mcp.NewTool("validate_sidebar",
	mcp.WithDescription("Validate a sidebar: unresolved document references, malformed links, duplicates and empty categories."),
	mcp.WithString("name",
		mcp.Description("Sidebar name (defaults to the main sidebar)"),
	),
)
