package mcp

import "github.com/mark3labs/mcp-go/mcp"

func extractSourceTool() mcp.Tool {
	return mcp.NewTool("extract_source",
		mcp.WithDescription("Statically extract styles from one component source. Returns the rewritten code, the generated CSS, and the slot-to-class mapping."),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Source file contents to transform"),
		),
		mcp.WithString("file_path",
			mcp.Description("Path used for language detection (defaults to component.tsx)"),
		),
	)
}

func extractProjectTool() mcp.Tool {
	return mcp.NewTool("extract_project",
		mcp.WithDescription("Run extraction over every source file under a project root. Returns run statistics and the per-file class mappings."),
		mcp.WithString("root",
			mcp.Required(),
			mcp.Description("Project root directory"),
		),
		mcp.WithBoolean("write",
			mcp.Description("Rewrite transformed sources in place"),
		),
	)
}

func getStylesheetTool() mcp.Tool {
	return mcp.NewTool("get_stylesheet",
		mcp.WithDescription("Extract a project and return only the concatenated stylesheet text."),
		mcp.WithString("root",
			mcp.Required(),
			mcp.Description("Project root directory"),
		),
	)
}
