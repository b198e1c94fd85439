// Package promptfile parses YAML prompt definition files into the shape
// the version store commits: trimmed content, a metadata map, and tags.
package promptfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML shape of a prompt definition.
type File struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Model       string   `yaml:"model"`
	Temperature *float64 `yaml:"temperature"`
	MaxTokens   *int     `yaml:"max_tokens"`
	TopP        *float64 `yaml:"top_p"`
	Content     string   `yaml:"content"`
	Tags        []string `yaml:"tags"`
}

// Prompt is the parsed result ready to commit.
type Prompt struct {
	Content  string
	Metadata map[string]any
	Tags     []string
}

// Defaults applied when a field is absent from the file
const (
	defaultVersion     = "1.0.0"
	defaultModel       = "gpt-4"
	defaultTemperature = 0.7
)

// Parse decodes a YAML prompt document. The content field is required;
// everything else falls back to defaults. The name defaults to fallbackName
// when absent, matching how files are named after their path stem.
func Parse(data []byte, fallbackName string) (*Prompt, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid prompt file: %w", err)
	}

	content := strings.TrimSpace(f.Content)
	if content == "" {
		return nil, fmt.Errorf("prompt file has no content field")
	}

	name := f.Name
	if name == "" {
		name = fallbackName
	}
	version := f.Version
	if version == "" {
		version = defaultVersion
	}
	model := f.Model
	if model == "" {
		model = defaultModel
	}
	temperature := defaultTemperature
	if f.Temperature != nil {
		temperature = *f.Temperature
	}

	metadata := map[string]any{
		"name":        name,
		"version":     version,
		"model":       model,
		"temperature": temperature,
	}
	if f.MaxTokens != nil {
		metadata["max_tokens"] = *f.MaxTokens
	}
	if f.TopP != nil {
		metadata["top_p"] = *f.TopP
	}

	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}

	return &Prompt{
		Content:  content,
		Metadata: metadata,
		Tags:     tags,
	}, nil
}

// ParseFile reads and parses a prompt file from disk, using the file's
// base name without extension as the fallback prompt name.
func ParseFile(path string) (*Prompt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prompt file: %w", err)
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(data, stem)
}
