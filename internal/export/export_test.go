package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slavadubrov/crew-agents/internal/crew"
	"github.com/slavadubrov/crew-agents/internal/roadmap"
)

func seriesDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	doc := roadmap.Document{
		Topic: "Caching strategies",
		Goal:  "Teach caching",
		Outlines: []crew.Outline{
			{Title: "LRU Cache", Description: "Eviction basics."},
			{Title: "Write-Through Cache", Description: "Consistency tradeoffs."},
		},
	}
	require.NoError(t, roadmap.WriteFile(filepath.Join(dir, roadmap.DefaultFilename), doc))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "Blog_Post_1_LRU_Cache.md"),
		[]byte("# LRU Cache\n\nEvict the *least* recently used entry.\n"),
		0o644,
	))
	return dir
}

func TestExportSeriesPartial(t *testing.T) {
	dir := seriesDir(t)

	exp, err := ExportSeries(dir)
	require.NoError(t, err)

	assert.Equal(t, "Caching strategies", exp.Topic)
	assert.Equal(t, "Teach caching", exp.Goal)
	assert.NotEmpty(t, exp.ExportedAt)
	require.Len(t, exp.Posts, 2)

	assert.Equal(t, "written", exp.Posts[0].Status)
	assert.Equal(t, "Blog_Post_1_LRU_Cache.md", exp.Posts[0].Filename)
	assert.Equal(t, "pending", exp.Posts[1].Status)
	assert.Empty(t, exp.Posts[1].Filename)
	assert.Equal(t, "Write-Through Cache", exp.Posts[1].Title)
}

func TestExportSeriesNoRoadmap(t *testing.T) {
	_, err := ExportSeries(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), roadmap.DefaultFilename)
}

func TestWriteJSON(t *testing.T) {
	dir := seriesDir(t)

	exp, err := ExportSeries(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "series.json")
	require.NoError(t, WriteJSON(path, exp))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded SeriesExport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, exp.Topic, decoded.Topic)
	require.Len(t, decoded.Posts, 2)
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML([]byte("# Title\n\nSome *emphasis* here.\n"))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<em>emphasis</em>")
}

func TestExportHTML(t *testing.T) {
	dir := seriesDir(t)

	paths, err := ExportHTML(dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	assert.Equal(t, filepath.Join(dir, "Blog_Post_1_LRU_Cache.html"), paths[0])

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	page := string(data)
	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "<title>LRU Cache</title>")
	assert.Contains(t, page, "<h1>LRU Cache</h1>")
	assert.Contains(t, page, "<em>least</em>")
}

func TestExportHTMLEmptyDir(t *testing.T) {
	paths, err := ExportHTML(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestPostTitleFallback(t *testing.T) {
	assert.Equal(t, "My Post", postTitle([]byte("no heading here"), "My Post.md"))
	assert.Equal(t, "Heading", postTitle([]byte("intro\n# Heading\n"), "x.md"))
}
