package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/slavadubrov/crew-agents/internal/export"
)

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	outputDir := fs.String("output-dir", "output", "directory holding the series artifacts")
	format := fs.String("format", "json", "export format: json or html")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch *format {
	case "json":
		exp, err := export.ExportSeries(*outputDir)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(exp, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		_, err = os.Stdout.Write(append(out, '\n'))
		return err
	case "html":
		paths, err := export.ExportHTML(*outputDir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json or html)", *format)
	}
}
