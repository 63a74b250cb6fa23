package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/slavadubrov/crew-agents/internal/config"
	"github.com/slavadubrov/crew-agents/internal/jobkit"
)

func runApply(args []string) error {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	resumePath := fs.String("resume", "", "path to the resume markdown file")
	jobURL := fs.String("job-url", "", "URL of the job posting")
	githubURL := fs.String("github", "", "URL of the candidate's GitHub profile")
	writeup := fs.String("writeup", "", "personal writeup text")
	writeupFile := fs.String("writeup-file", "", "file containing the personal writeup")
	outputDir := fs.String("output-dir", "", "directory for artifacts (default: output)")
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
	if *outputDir == "" {
		*outputDir = "output"
	}

	if *writeupFile != "" {
		data, err := os.ReadFile(*writeupFile)
		if err != nil {
			return fmt.Errorf("read writeup: %w", err)
		}
		*writeup = string(data)
	}

	logger := newLogger(*verbose || cfg.Verbose)

	// The job application crew always runs in-process: it is a single
	// crew with no remote service counterpart.
	exec, err := newLocalExecutor(cfg, *model, logger)
	if err != nil {
		return err
	}

	ctrl, err := jobkit.New(exec, *outputDir, jobkit.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kit, err := ctrl.Run(ctx, jobkit.Inputs{
		ResumePath:      *resumePath,
		JobPostingURL:   *jobURL,
		GithubURL:       *githubURL,
		PersonalWriteup: *writeup,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Tailored resume:     %s\n", kit.ResumePath)
	fmt.Printf("Interview materials: %s\n", kit.InterviewPath)
	return nil
}
