// Package roadmap reads and writes the persisted roadmap document: the
// plain-text, human-editable plan produced by the planning phase and consumed
// when a run resumes without re-planning. Writing then parsing a document
// reproduces the same topic, goal, and outlines.
package roadmap

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/slavadubrov/crew-agents/internal/crew"
)

// DefaultFilename is the roadmap's fixed name inside the output directory.
const DefaultFilename = "Blog_Series_Roadmap.md"

// Document is the parsed form of a roadmap file.
type Document struct {
	Topic    string
	Goal     string
	Outlines []crew.Outline
}

// Marshal renders a Document in the persisted roadmap format.
func Marshal(doc Document) []byte {
	var b strings.Builder
	b.WriteString("# Blog Series Roadmap\n\n")
	fmt.Fprintf(&b, "## Topic: %s\n\n", doc.Topic)
	fmt.Fprintf(&b, "## Goal\n%s\n\n", doc.Goal)
	b.WriteString("## Planned Posts\n\n")
	for i, outline := range doc.Outlines {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, outline.Title)
		fmt.Fprintf(&b, "%s\n\n", outline.Description)
	}
	return []byte(b.String())
}

var (
	topicRe   = regexp.MustCompile(`(?m)^## Topic: (.+)$`)
	goalRe    = regexp.MustCompile(`(?s)## Goal\n(.*?)\n\n## Planned Posts`)
	outlineRe = regexp.MustCompile(`(?m)^### \d+\. (.+)$`)
)

// Parse extracts topic, goal, and outlines from document text. Parsing is
// tolerant: a missing marker yields an empty field rather than an error, and
// every extracted field is trimmed. Callers that need a usable roadmap must
// check the result for emptiness themselves.
func Parse(data []byte) Document {
	content := string(data)
	var doc Document

	if m := topicRe.FindStringSubmatch(content); m != nil {
		doc.Topic = strings.TrimSpace(m[1])
	}
	if m := goalRe.FindStringSubmatch(content); m != nil {
		doc.Goal = strings.TrimSpace(m[1])
	}

	// Each numbered header starts an outline; its description runs to the
	// next header or the end of the document.
	headers := outlineRe.FindAllStringSubmatchIndex(content, -1)
	for i, h := range headers {
		title := strings.TrimSpace(content[h[2]:h[3]])
		bodyStart := h[1]
		bodyEnd := len(content)
		if i+1 < len(headers) {
			bodyEnd = headers[i+1][0]
		}
		doc.Outlines = append(doc.Outlines, crew.Outline{
			Title:       title,
			Description: strings.TrimSpace(content[bodyStart:bodyEnd]),
		})
	}

	return doc
}

// ParseFile reads and parses a roadmap file. Only the read can fail; the
// parse itself follows Parse's tolerant contract.
func ParseFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("roadmap: read %s: %w", path, err)
	}
	return Parse(data), nil
}

// WriteFile renders doc and writes it to path.
func WriteFile(path string, doc Document) error {
	if err := os.WriteFile(path, Marshal(doc), 0o644); err != nil {
		return fmt.Errorf("roadmap: write %s: %w", path, err)
	}
	return nil
}
