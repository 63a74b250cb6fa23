package status

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slavadubrov/crew-agents/internal/crew"
	"github.com/slavadubrov/crew-agents/internal/roadmap"
)

func writeRoadmap(t *testing.T, dir string, outlines ...crew.Outline) {
	t.Helper()
	doc := roadmap.Document{
		Topic:    "Caching strategies",
		Goal:     "Teach caching",
		Outlines: outlines,
	}
	require.NoError(t, roadmap.WriteFile(filepath.Join(dir, roadmap.DefaultFilename), doc))
}

func writePost(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("# post\n"), 0o644))
}

func TestScanMissingDir(t *testing.T) {
	report, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)

	assert.False(t, report.HasRoadmap)
	assert.Empty(t, report.Posts)
	assert.Equal(t, 1, report.NextNumber)
	assert.False(t, report.Complete)
}

func TestScanEmptyDir(t *testing.T) {
	report, err := Scan(t.TempDir())
	require.NoError(t, err)

	assert.False(t, report.HasRoadmap)
	assert.Equal(t, 1, report.NextNumber)
}

func TestScanRoadmapOnly(t *testing.T) {
	dir := t.TempDir()
	writeRoadmap(t, dir,
		crew.Outline{Title: "LRU Cache", Description: "Eviction basics."},
		crew.Outline{Title: "Write-Through Cache", Description: "Consistency."},
	)

	report, err := Scan(dir)
	require.NoError(t, err)

	assert.True(t, report.HasRoadmap)
	assert.Equal(t, "Caching strategies", report.Topic)
	assert.Equal(t, 2, report.Planned)
	assert.Empty(t, report.Posts)
	assert.Equal(t, 1, report.NextNumber)
	assert.False(t, report.Complete)
}

func TestScanPartialSeries(t *testing.T) {
	dir := t.TempDir()
	writeRoadmap(t, dir,
		crew.Outline{Title: "A"},
		crew.Outline{Title: "B"},
		crew.Outline{Title: "C"},
	)
	writePost(t, dir, "Blog_Post_1_A.md")
	writePost(t, dir, "Blog_Post_2_B.md")

	report, err := Scan(dir)
	require.NoError(t, err)

	require.Len(t, report.Posts, 2)
	assert.Equal(t, 1, report.Posts[0].Number)
	assert.Equal(t, "Blog_Post_1_A.md", report.Posts[0].Filename)
	assert.Equal(t, 3, report.NextNumber)
	assert.False(t, report.Complete)
}

func TestScanCompleteSeries(t *testing.T) {
	dir := t.TempDir()
	writeRoadmap(t, dir,
		crew.Outline{Title: "LRU Cache"},
		crew.Outline{Title: "Write-Through Cache"},
	)
	writePost(t, dir, "Blog_Post_1_LRU_Cache.md")
	writePost(t, dir, "Blog_Post_2_Write-Through_Cache.md")

	report, err := Scan(dir)
	require.NoError(t, err)

	assert.Equal(t, 3, report.NextNumber)
	assert.True(t, report.Complete)
}

func TestScanGapInPosts(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "Blog_Post_1_A.md")
	writePost(t, dir, "Blog_Post_3_C.md")

	report, err := Scan(dir)
	require.NoError(t, err)

	require.Len(t, report.Posts, 2)
	assert.Equal(t, 2, report.NextNumber)
}

func TestScanIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "notes.md")
	writePost(t, dir, "Blog_Post_x_A.md")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Blog_Post_1_Dir.md"), 0o755))

	report, err := Scan(dir)
	require.NoError(t, err)

	assert.Empty(t, report.Posts)
	assert.Equal(t, 1, report.NextNumber)
}
