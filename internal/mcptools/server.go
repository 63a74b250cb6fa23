package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewFlowMCPServer creates an MCP server with the 4 blog flow tools
// registered: plan_roadmap, write_post, run_blog_flow, and
// get_flow_status.
func NewFlowMCPServer(svc *FlowService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "crew-agents",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "plan_roadmap",
		Description: "Run the planning crew for a blog series topic and persist the roadmap document. Returns the planned post outlines.",
	}, svc.PlanRoadmap)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "write_post",
		Description: "Write one post from the persisted roadmap by its one-based number. Saves the post as a markdown artifact and returns its path.",
	}, svc.WritePost)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_blog_flow",
		Description: "Run the full blog flow: plan a roadmap (or resume from the one on disk) and write every post in order. Partial progress is kept on failure.",
	}, svc.RunBlogFlow)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_flow_status",
		Description: "Report the progress of a blog series directory: roadmap presence, written posts, and the next post number to write.",
	}, svc.GetFlowStatus)

	return server
}

// RunFlowMCPServerStdio runs the MCP server on stdio transport,
// blocking until stdin is closed or the context is cancelled.
func RunFlowMCPServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunFlowMCPServerHTTP starts an HTTP server exposing the blog flow
// MCP tools on the streamable transport.
func RunFlowMCPServerHTTP(ctx context.Context, svc *FlowService, addr string) error {
	server := NewFlowMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
