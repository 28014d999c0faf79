package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cascadiacollections/fluentstatic/pkg/styles"
)

// sourceResult is the JSON payload for extract_source.
type sourceResult struct {
	Success bool              `json:"success"`
	Changed bool              `json:"changed"`
	Code    string            `json:"code"`
	CSS     string            `json:"css"`
	Classes map[string]string `json:"classes"`
	Error   string            `json:"error,omitempty"`
}

// projectResult is the JSON payload for extract_project.
type projectResult struct {
	FilesDiscovered  int                `json:"files_discovered"`
	FilesProcessed   int                `json:"files_processed"`
	FilesChanged     int                `json:"files_changed"`
	FilesFailed      int                `json:"files_failed"`
	ClassesGenerated int                `json:"classes_generated"`
	DurationMs       int64              `json:"duration_ms"`
	Files            []projectFileEntry `json:"files,omitempty"`
}

type projectFileEntry struct {
	FilePath string            `json:"file_path"`
	Classes  map[string]string `json:"classes"`
}

func (s *Server) handleExtractSource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	filePath := req.GetString("file_path", "component.tsx")

	res := s.runner.ExtractOne(filePath, []byte(source))

	payload := sourceResult{
		Success: res.Success,
		Changed: res.Changed,
		Code:    res.Code,
		CSS:     res.CSS,
		Classes: classMap(res),
		Error:   res.Err,
	}
	return jsonResult(payload)
}

func (s *Server) handleExtractProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := req.RequireString("root")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	write := req.GetBool("write", false)

	run, err := s.runner.Run(root)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload := projectResult{
		FilesDiscovered:  run.FilesDiscovered,
		FilesProcessed:   run.FilesProcessed,
		FilesChanged:     run.FilesChanged,
		FilesFailed:      run.FilesFailed,
		ClassesGenerated: run.ClassesGenerated,
		DurationMs:       run.DurationMs,
	}
	for _, fr := range run.Files {
		if len(fr.Classes) == 0 {
			continue
		}
		payload.Files = append(payload.Files, projectFileEntry{
			FilePath: fr.FilePath,
			Classes:  classMap(fr),
		})
	}

	if write {
		// Route through the runner so the file cache forgets each rewritten
		// file; a plain WriteFile would leave later calls reading the old
		// mapping.
		if err := s.runner.WriteChanged(run.Files); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	return jsonResult(payload)
}

func (s *Server) handleGetStylesheet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := req.RequireString("root")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	run, err := s.runner.Run(root)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(run.CSS), nil
}

func classMap(fr *styles.FileResult) map[string]string {
	out := make(map[string]string, len(fr.Classes))
	for _, c := range fr.Classes {
		out[c.Key] = c.Class
	}
	return out
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
