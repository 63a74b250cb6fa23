// Package config loads project-level settings for the crew-agents CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from crewagents.yml.
// Command-line flags override these values; environment variables cover
// the secrets (OPENAI_API_KEY).
type ProjectConfig struct {
	OutputDir string `yaml:"outputDir,omitempty"`
	Topic     string `yaml:"topic,omitempty"`
	Goal      string `yaml:"goal,omitempty"`

	Model   string `yaml:"model,omitempty"`
	BaseURL string `yaml:"baseURL,omitempty"`

	// PlanEndpoint and WriteEndpoint point at remote crew services.
	// When set, those crews run remotely instead of in-process.
	PlanEndpoint  string `yaml:"planEndpoint,omitempty"`
	WriteEndpoint string `yaml:"writeEndpoint,omitempty"`

	Retries int  `yaml:"retries,omitempty"`
	Verbose bool `yaml:"verbose,omitempty"`
}

// Load attempts to read crewagents.yml or crewagents.yaml from the
// given directory. Returns a zero-value config (not an error) if no
// config file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"crewagents.yml", "crewagents.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
