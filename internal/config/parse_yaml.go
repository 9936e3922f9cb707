package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func parseYAML(path string) (rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rawConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return rawConfig{}, fmt.Errorf("invalid config: %v", err)
	}
	return raw, nil
}
