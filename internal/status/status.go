// Package status inspects a flow output directory and reports how far
// a blog series has progressed, based purely on the artifacts on disk.
package status

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/slavadubrov/crew-agents/internal/roadmap"
)

// postFileRe matches persisted post artifacts and captures the
// one-based post number.
var postFileRe = regexp.MustCompile(`^Blog_Post_(\d+)_(.+)\.md$`)

// PostFile is one post artifact found in the output directory.
type PostFile struct {
	Number   int    `json:"number"`
	Filename string `json:"filename"`
}

// Report describes the progress of a blog series in one directory.
type Report struct {
	Dir        string     `json:"dir"`
	HasRoadmap bool       `json:"has_roadmap"`
	Topic      string     `json:"topic,omitempty"`
	Goal       string     `json:"goal,omitempty"`
	Planned    int        `json:"planned"`
	Posts      []PostFile `json:"posts"`
	NextNumber int        `json:"next_number"`
	Complete   bool       `json:"complete"`
}

// Scan reads dir and reports roadmap presence, which posts exist, and
// the next post number to write. A missing directory yields an empty
// report, not an error.
func Scan(dir string) (Report, error) {
	report := Report{Dir: dir, NextNumber: 1}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return report, nil
	}
	if err != nil {
		return report, fmt.Errorf("status: read %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := postFileRe.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			continue
		}
		report.Posts = append(report.Posts, PostFile{Number: n, Filename: entry.Name()})
	}
	sort.Slice(report.Posts, func(i, j int) bool {
		return report.Posts[i].Number < report.Posts[j].Number
	})

	doc, err := roadmap.ParseFile(filepath.Join(dir, roadmap.DefaultFilename))
	if err == nil {
		report.HasRoadmap = true
		report.Topic = doc.Topic
		report.Goal = doc.Goal
		report.Planned = len(doc.Outlines)
	}

	report.NextNumber = nextNumber(report.Posts)
	report.Complete = report.HasRoadmap && report.Planned > 0 && report.NextNumber > report.Planned
	return report, nil
}

// nextNumber returns the first post number missing from the
// consecutive run starting at 1. Posts write strictly in order, so a
// gap means everything after it still needs writing.
func nextNumber(posts []PostFile) int {
	next := 1
	for _, p := range posts {
		if p.Number == next {
			next++
		}
	}
	return next
}
