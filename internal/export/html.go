package export

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/slavadubrov/crew-agents/internal/status"
)

// htmlPage wraps rendered post content in a minimal standalone page.
const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

// RenderHTML converts markdown to an HTML fragment.
func RenderHTML(md []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(md, &buf); err != nil {
		return nil, fmt.Errorf("export: render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportHTML renders every written post in dir to a standalone HTML
// file next to its markdown source. It returns the paths written.
func ExportHTML(dir string) ([]string, error) {
	report, err := status.Scan(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, post := range report.Posts {
		src := filepath.Join(dir, post.Filename)
		md, err := os.ReadFile(src)
		if err != nil {
			return paths, fmt.Errorf("export: read %s: %w", src, err)
		}

		body, err := RenderHTML(md)
		if err != nil {
			return paths, err
		}

		title := html.EscapeString(postTitle(md, post.Filename))
		page := fmt.Sprintf(htmlPage, title, body)

		dst := strings.TrimSuffix(src, ".md") + ".html"
		if err := os.WriteFile(dst, []byte(page), 0o644); err != nil {
			return paths, fmt.Errorf("export: write %s: %w", dst, err)
		}
		paths = append(paths, dst)
	}
	return paths, nil
}

// postTitle takes the first level-one heading, falling back to the
// filename without its extension.
func postTitle(md []byte, filename string) string {
	for _, line := range strings.Split(string(md), "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return strings.TrimSuffix(filename, ".md")
}
