package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/slavadubrov/crew-agents/internal/config"
	"github.com/slavadubrov/crew-agents/internal/crewrpc"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	host := fs.String("host", "127.0.0.1", "host to bind")
	port := fs.Int("port", 8700, "base port; each crew service takes the next port")
	model := fs.String("model", "", "model name (default: "+defaultModel+")")
	verbose := fs.Bool("verbose", false, "enable verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	logger := newLogger(*verbose || cfg.Verbose)
	exec, err := newLocalExecutor(cfg, *model, logger)
	if err != nil {
		return err
	}

	planning, err := crewrpc.NewService(crewrpc.Card{
		Name:         "blog-planning-crew",
		Description:  "Plans a blog series roadmap for a topic and goal",
		Version:      version,
		Capabilities: []string{crewrpc.MethodPlan},
	}, exec, crewrpc.WithServiceLogger(logger))
	if err != nil {
		return err
	}

	writing, err := crewrpc.NewService(crewrpc.Card{
		Name:         "blog-writing-crew",
		Description:  "Writes one blog post from a roadmap outline",
		Version:      version,
		Capabilities: []string{crewrpc.MethodWrite},
	}, exec, crewrpc.WithServiceLogger(logger))
	if err != nil {
		return err
	}

	registry := crewrpc.NewRegistry()
	registry.Add(planning)
	registry.Add(writing)

	fmt.Printf("planning crew on http://%s:%d\n", *host, *port)
	fmt.Printf("writing crew  on http://%s:%d\n", *host, *port+1)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return registry.Run(ctx, *host, *port)
}
