package main

import (
	"fmt"
	"os"
)

// version is set by goreleaser at build time.
var version = "dev"

const usage = `crewagents drives LLM agent crews for content workflows.

Usage:
  crewagents blog    [flags]   plan and write a blog series
  crewagents apply   [flags]   tailor a resume and prep interview materials
  crewagents status  [flags]   show the progress of a blog series directory
  crewagents export  [flags]   export series artifacts as JSON or HTML
  crewagents serve   [flags]   serve the crews as JSON-RPC services
  crewagents mcp     [flags]   run as an MCP server (stdio or HTTP)
  crewagents version           print version and exit

Run 'crewagents <command> -h' for command flags.
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}

	switch args[0] {
	case "blog":
		return runBlog(args[1:])
	case "apply":
		return runApply(args[1:])
	case "status":
		return runStatus(args[1:])
	case "export":
		return runExport(args[1:])
	case "serve":
		return runServe(args[1:])
	case "mcp":
		return runMCP(args[1:])
	case "version", "-version", "--version":
		fmt.Println(version)
		return nil
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q (run 'crewagents help')", args[0])
	}
}
