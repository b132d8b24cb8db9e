package report

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed prompts/system_prompt.txt
var defaultSystemPrompt string

//go:embed prompts/user_prompt.txt
var defaultUserPrompt string

// Prompts is the instruction pair sent to the narrative model.
type Prompts struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

// DefaultPrompts returns the bundled prompt pair.
func DefaultPrompts() Prompts {
	return Prompts{System: defaultSystemPrompt, User: defaultUserPrompt}
}

// LoadPrompts reads a YAML prompt override from path. Empty fields keep
// the bundled defaults, and an empty path returns them unchanged.
func LoadPrompts(path string) (Prompts, error) {
	prompts := DefaultPrompts()
	if path == "" {
		return prompts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Prompts{}, fmt.Errorf("reading prompts file: %w", err)
	}
	var override Prompts
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Prompts{}, fmt.Errorf("parsing prompts file: %w", err)
	}

	if override.System != "" {
		prompts.System = override.System
	}
	if override.User != "" {
		prompts.User = override.User
	}
	return prompts, nil
}
