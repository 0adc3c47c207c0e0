package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type ModelConfig struct {
	Path string `yaml:"path"`
	Name string `yaml:"name,omitempty"`
}

type OutputConfig struct {
	Path     string `yaml:"path,omitempty"`
	Language string `yaml:"language,omitempty"`
}

type ProjectConfig struct {
	Model         ModelConfig  `yaml:"model"`
	Output        OutputConfig `yaml:"output"`
	SectionPolicy string       `yaml:"section_policy,omitempty"`
	Timeout       string       `yaml:"timeout"`
}

const ConfigFileName = "viewgen.yaml"

func Load(projectPath string) (*ProjectConfig, error) {
	configPath := filepath.Join(projectPath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
