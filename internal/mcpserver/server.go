// Package mcpserver exposes the file catalog as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"docexplorer/internal/catalog"
	"docexplorer/internal/modal"
	"docexplorer/internal/tree"
)

type Server struct {
	mcp    *server.MCPServer
	store  *catalog.Store
	tree   *tree.Model
	logger *log.Logger
}

type fileResult struct {
	Path         string       `json:"path"`
	Icon         string       `json:"icon"`
	Description  string       `json:"description"`
	Usage        string       `json:"usage"`
	Dependencies []dependency `json:"dependencies"`
}

type dependency struct {
	Path     string `json:"path"`
	Resolved bool   `json:"resolved"`
}

type child struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
}

func New(store *catalog.Store, version string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{store: store, tree: tree.FromStore(store), logger: logger.WithPrefix("mcp")}

	s.mcp = server.NewMCPServer(
		"docexplorer",
		version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("lookup_file",
		mcp.WithDescription("Return the icon, description, usage and dependencies of one project file."),
		mcp.WithString("path", mcp.Required(), mcp.Description("File path as shown in the tree (e.g. src/view/cli/MainCLI.java)")),
	), s.lookupFile)

	s.mcp.AddTool(mcp.NewTool("list_dependencies",
		mcp.WithDescription("List the dependencies of a file. Resolved entries have their own catalog record."),
		mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
	), s.listDependencies)

	s.mcp.AddTool(mcp.NewTool("list_children",
		mcp.WithDescription("List the direct children of a folder, or the top-level entries when path is empty."),
		mcp.WithString("path", mcp.Description("Folder path (empty for the roots)")),
	), s.listChildren)

	s.mcp.AddTool(mcp.NewTool("search_files",
		mcp.WithDescription("Case-insensitive substring search over file and folder names."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
	), s.searchFiles)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving on stdio", "files", s.store.Len())
	return server.ServeStdio(s.mcp)
}

func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func dependencies(e *catalog.Entry) []dependency {
	out := make([]dependency, 0, len(e.Deps))
	for _, d := range e.Deps {
		out = append(out, dependency{Path: d.ID, Resolved: d.Resolved()})
	}
	return out
}

func (s *Server) lookupFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	e, ok := s.store.Lookup(strings.TrimSpace(path))
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no description found: %s", path)), nil
	}
	return jsonResult(fileResult{
		Path:         e.ID,
		Icon:         e.Record.Icon,
		Description:  e.Record.Description,
		Usage:        e.Record.Usage,
		Dependencies: dependencies(e),
	})
}

func (s *Server) listDependencies(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	e, ok := s.store.Lookup(strings.TrimSpace(path))
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no description found: %s", path)), nil
	}
	if len(e.Deps) == 0 {
		return mcp.NewToolResultText(modal.NoDependenciesText), nil
	}
	return jsonResult(dependencies(e))
}

func (s *Server) listChildren(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := ""
	if p, err := req.RequireString("path"); err == nil {
		path = strings.TrimSpace(p)
	}

	var ids []string
	if path == "" {
		ids = s.tree.Roots()
	} else {
		if !s.tree.IsFolder(path) {
			return mcp.NewToolResultError(fmt.Sprintf("not a folder: %s", path)), nil
		}
		ids = s.tree.Children(path)
	}
	out := make([]child, 0, len(ids))
	for _, id := range ids {
		k, _ := s.tree.Kind(id)
		out = append(out, child{Path: id, Kind: k.String()})
	}
	return jsonResult(out)
}

func (s *Server) searchFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hits := s.tree.Search(query)
	if len(hits) == 0 {
		return mcp.NewToolResultText("no matches"), nil
	}
	return mcp.NewToolResultText(strings.Join(hits, "\n")), nil
}
