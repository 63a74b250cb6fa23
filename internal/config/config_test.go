package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoadYML(t *testing.T) {
	dir := t.TempDir()
	content := `
outputDir: artifacts
topic: Caching strategies
goal: Teach caching
model: gpt-4o-mini
planEndpoint: http://localhost:8701
retries: 3
verbose: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crewagents.yml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "artifacts", cfg.OutputDir)
	assert.Equal(t, "Caching strategies", cfg.Topic)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "http://localhost:8701", cfg.PlanEndpoint)
	assert.Empty(t, cfg.WriteEndpoint)
	assert.Equal(t, 3, cfg.Retries)
	assert.True(t, cfg.Verbose)
}

func TestLoadYAMLExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crewagents.yaml"), []byte("model: gpt-4o\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", cfg.Model)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crewagents.yml"), []byte("model: [unclosed"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
}
