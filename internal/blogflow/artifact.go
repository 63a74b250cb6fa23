package blogflow

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PostFilename returns the artifact name for the n-th post (one-based):
// Blog_Post_<n>_<title>.md with the title made filesystem-safe.
func PostFilename(n int, title string) string {
	return fmt.Sprintf("Blog_Post_%d_%s.md", n, sanitizeTitle(title))
}

// sanitizeTitle maps a post title to a filename component. Spaces become
// underscores; letters, digits, dots, dashes, and underscores pass through;
// any other rune (slashes, colons, quotes) becomes a dash so a generated
// title can never escape the output directory.
func sanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(title) {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}

// writePostFile persists a post body under dir using PostFilename and
// returns the full path.
func writePostFile(dir string, n int, title, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, PostFilename(n, title))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
