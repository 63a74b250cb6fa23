package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/slavadubrov/crew-agents/internal/blogflow"
	"github.com/slavadubrov/crew-agents/internal/config"
	"github.com/slavadubrov/crew-agents/internal/roadmap"
)

func runBlog(args []string) error {
	fs := flag.NewFlagSet("blog", flag.ContinueOnError)
	topic := fs.String("topic", "", "subject of the blog series")
	goal := fs.String("goal", "", "audience and purpose of the series")
	outputDir := fs.String("output-dir", "", "directory for artifacts (default: output)")
	resume := fs.Bool("resume", false, "skip planning and resume from the roadmap on disk")
	roadmapFile := fs.String("roadmap", "", "roadmap file to resume from (default: <output-dir>/"+roadmap.DefaultFilename+")")
	model := fs.String("model", "", "model name (default: "+defaultModel+")")
	verbose := fs.Bool("verbose", false, "enable verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if *topic == "" {
		*topic = cfg.Topic
	}
	if *goal == "" {
		*goal = cfg.Goal
	}
	if *outputDir == "" {
		*outputDir = cfg.OutputDir
	}
	if *outputDir == "" {
		*outputDir = "output"
	}

	logger := newLogger(*verbose || cfg.Verbose)
	exec, err := buildExecutor(cfg, *model, logger)
	if err != nil {
		return err
	}

	flowCfg := blogflow.Config{
		Topic:     *topic,
		Goal:      *goal,
		OutputDir: *outputDir,
	}
	if *resume || *roadmapFile != "" {
		flowCfg.SkipPlanning = true
		flowCfg.RoadmapFile = *roadmapFile
		if flowCfg.RoadmapFile == "" {
			flowCfg.RoadmapFile = filepath.Join(*outputDir, roadmap.DefaultFilename)
		}
	}

	ctrl, err := blogflow.New(flowCfg, exec, blogflow.WithLogger(logger))
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ev := range ctrl.Progress() {
			fmt.Println(blogflow.FormatEvent(ev))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state, runErr := ctrl.Kickoff(ctx)
	ctrl.Close()
	wg.Wait()

	if len(state.Roadmap) > 0 {
		fmt.Printf("\nRoadmap: %s\n", ctrl.RoadmapPath())
	}
	for i, post := range state.Posts {
		fmt.Printf("Post %d: %s\n", i+1, filepath.Join(*outputDir, blogflow.PostFilename(i+1, post.Title)))
	}
	if runErr != nil {
		return runErr
	}

	fmt.Printf("\nWrote %d posts about %q.\n", len(state.Posts), state.Topic)
	return nil
}
