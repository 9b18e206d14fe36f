package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Jevon1999/api-presensi/internal/fixtures"
	"gopkg.in/yaml.v3"
)

// BotFile is the optional YAML file named by BOT_TEMPLATES_FILE. Any value
// it sets overrides the environment and the built-in templates.
type BotFile struct {
	MarkMessagesRead *bool             `yaml:"mark_messages_read"`
	TypingDelayMS    *int              `yaml:"typing_delay_ms"`
	Templates        map[string]string `yaml:"templates"`
}

// LoadBotFile reads and parses a bot file.
func LoadBotFile(path string) (BotFile, error) {
	var file BotFile

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return file, fmt.Errorf("failed to read bot file: %w", err)
	}

	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("failed to parse bot file: %w", err)
	}

	if file.TypingDelayMS != nil && *file.TypingDelayMS < 0 {
		return file, fmt.Errorf("typing_delay_ms must not be negative")
	}
	return file, nil
}

// MergeTemplates returns the default templates with overrides applied.
// Empty override values are ignored.
func MergeTemplates(overrides map[string]string) map[string]string {
	merged := fixtures.DefaultBotTemplates()
	for key, text := range overrides {
		if text == "" {
			continue
		}
		merged[key] = text
	}
	return merged
}
