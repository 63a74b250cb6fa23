package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/slavadubrov/crew-agents/internal/config"
	"github.com/slavadubrov/crew-agents/internal/mcptools"
)

func runMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	httpAddr := fs.String("http", "", "serve MCP over HTTP on this address (default: stdio)")
	outputDir := fs.String("output-dir", "", "default directory for tool artifacts (default: output)")
	model := fs.String("model", "", "model name (default: "+defaultModel+")")
	verbose := fs.Bool("verbose", false, "enable verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if *outputDir == "" {
		*outputDir = cfg.OutputDir
	}

	// Logs go to stderr; stdout belongs to the stdio transport.
	logger := newLogger(*verbose || cfg.Verbose)
	exec, err := buildExecutor(cfg, *model, logger)
	if err != nil {
		return err
	}

	svc := mcptools.NewFlowService(exec, *outputDir, mcptools.WithFlowLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *httpAddr != "" {
		return mcptools.RunFlowMCPServerHTTP(ctx, svc, *httpAddr)
	}
	return mcptools.RunFlowMCPServerStdio(ctx, mcptools.NewFlowMCPServer(svc))
}
