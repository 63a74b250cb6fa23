// Package export turns the artifacts of a blog series into shareable
// formats: a JSON summary of the whole series and HTML versions of
// the markdown posts.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/slavadubrov/crew-agents/internal/roadmap"
	"github.com/slavadubrov/crew-agents/internal/status"
)

// SeriesExport is the top-level JSON export structure.
type SeriesExport struct {
	Topic      string       `json:"topic"`
	Goal       string       `json:"goal,omitempty"`
	ExportedAt string       `json:"exportedAt"`
	Dir        string       `json:"dir"`
	Posts      []PostExport `json:"posts"`
}

// PostExport describes one planned post and its artifact, if written.
type PostExport struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	Filename    string `json:"filename,omitempty"`
}

// ExportSeries builds a SeriesExport from the artifacts in dir. The
// roadmap supplies the plan; post files on disk determine which
// entries are written versus pending.
func ExportSeries(dir string) (*SeriesExport, error) {
	report, err := status.Scan(dir)
	if err != nil {
		return nil, err
	}
	if !report.HasRoadmap {
		return nil, fmt.Errorf("export: no %s in %s", roadmap.DefaultFilename, dir)
	}

	written := make(map[int]string, len(report.Posts))
	for _, p := range report.Posts {
		written[p.Number] = p.Filename
	}

	doc, err := roadmap.ParseFile(filepath.Join(dir, roadmap.DefaultFilename))
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	exp := &SeriesExport{
		Topic:      doc.Topic,
		Goal:       doc.Goal,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Dir:        dir,
	}
	for i, outline := range doc.Outlines {
		pe := PostExport{
			Number:      i + 1,
			Title:       outline.Title,
			Description: outline.Description,
			Status:      "pending",
		}
		if name, ok := written[i+1]; ok {
			pe.Status = "written"
			pe.Filename = name
		}
		exp.Posts = append(exp.Posts, pe)
	}
	return exp, nil
}

// WriteJSON marshals the export with indentation and writes it to path.
func WriteJSON(path string, exp *SeriesExport) error {
	data, err := json.MarshalIndent(exp, "", "  ")
	if err != nil {
		return fmt.Errorf("export: marshal: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
