package main

import (
	"flag"
	"fmt"

	"github.com/slavadubrov/crew-agents/internal/status"
)

func runStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	outputDir := fs.String("output-dir", "output", "directory to inspect")
	if err := fs.Parse(args); err != nil {
		return err
	}

	report, err := status.Scan(*outputDir)
	if err != nil {
		return err
	}

	if !report.HasRoadmap && len(report.Posts) == 0 {
		fmt.Printf("No blog series found in %s.\n", *outputDir)
		fmt.Println("Run 'crewagents blog -topic <topic>' to start one.")
		return nil
	}

	if report.HasRoadmap {
		fmt.Printf("Series: %s\n", report.Topic)
		fmt.Printf("Planned posts: %d\n", report.Planned)
	} else {
		fmt.Println("No roadmap document found.")
	}

	for _, p := range report.Posts {
		fmt.Printf("  [written] %d. %s\n", p.Number, p.Filename)
	}

	switch {
	case report.Complete:
		fmt.Println("All posts written.")
	default:
		fmt.Printf("Next post to write: %d\n", report.NextNumber)
	}
	return nil
}
