// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the blog's post index to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/halvard/orglog/internal/apperr"
	"github.com/halvard/orglog/internal/postservice"
)

// Server wraps the MCP server with blog tools. All tools are read-only:
// the metadata store takes no writes outside the bootstrap scan and the
// watcher.
type Server struct {
	mcp *server.MCPServer
	svc *postservice.Service
}

// New creates a new MCP server with the blog tools registered.
func New(svc *postservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"orglog",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List all blog posts newest-first with their publication timestamps."),
		mcp.WithString("format", mcp.Description("Optional Go time layout for timestamps (default RFC3339)")),
	), s.listPosts)

	s.mcp.AddTool(mcp.NewTool("read_post",
		mcp.WithDescription("Read one blog post: its cached metadata and the full exported HTML body."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("Post filename (e.g. my-post.html)")),
	), s.readPost)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) listPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := ""
	if f, err := req.RequireString("format"); err == nil {
		format = f
	}
	posts, err := s.svc.Listing(ctx, format)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(posts, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := req.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	post, err := s.svc.GetPost(ctx, filename)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", filename)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	header := fmt.Sprintf("title: %s\npublished: %s\n\n", post.Title, post.Published.Format("2006-01-02 15:04"))
	return mcp.NewToolResultText(header + post.Content), nil
}
