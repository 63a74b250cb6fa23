package crew

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// AgentSpec describes one role-scoped agent within a crew.
type AgentSpec struct {
	Role            string `yaml:"role"`
	Goal            string `yaml:"goal"`
	Backstory       string `yaml:"backstory"`
	AllowDelegation bool   `yaml:"allow_delegation,omitempty"`
}

// TaskSpec describes one task a crew performs. Tasks run in declaration
// order; Description may reference input bindings as {name} placeholders.
type TaskSpec struct {
	Name           string `yaml:"name"`
	Agent          string `yaml:"agent"`
	Description    string `yaml:"description"`
	ExpectedOutput string `yaml:"expected_output"`
}

// Definition is a complete crew configuration: its agents and the ordered
// tasks they perform toward one output.
type Definition struct {
	Name   string               `yaml:"name"`
	Agents map[string]AgentSpec `yaml:"agents"`
	Tasks  []TaskSpec           `yaml:"tasks"`
}

// Validate checks a definition for structural problems: no tasks, tasks
// referencing unknown agents, or duplicate task names.
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("crew: definition has no name")
	}
	if len(d.Tasks) == 0 {
		return fmt.Errorf("crew %q: no tasks defined", d.Name)
	}
	seen := make(map[string]bool, len(d.Tasks))
	for _, task := range d.Tasks {
		if task.Name == "" {
			return fmt.Errorf("crew %q: task with empty name", d.Name)
		}
		if seen[task.Name] {
			return fmt.Errorf("crew %q: duplicate task %q", d.Name, task.Name)
		}
		seen[task.Name] = true
		if _, ok := d.Agents[task.Agent]; !ok {
			return fmt.Errorf("crew %q: task %q references unknown agent %q", d.Name, task.Name, task.Agent)
		}
	}
	return nil
}

// ParseDefinition unmarshals and validates a crew definition from YAML.
func ParseDefinition(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("crew: parse definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// LoadDefinition reads a crew definition from a YAML file.
func LoadDefinition(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("crew: read definition %s: %w", path, err)
	}
	return ParseDefinition(data)
}

var placeholderRe = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

// Interpolate replaces {name} placeholders in text with the corresponding
// binding values. Placeholders without a binding are left untouched so a
// missing input is visible in the rendered prompt rather than silently blank.
func Interpolate(text string, bindings map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(m string) string {
		key := strings.Trim(m, "{}")
		if v, ok := bindings[key]; ok {
			return v
		}
		return m
	})
}
