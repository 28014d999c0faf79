package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cascadiacollections/fluentstatic/pkg/runner"
)

// ProjectConfig holds the contents of .fluentstatic.yaml.
type ProjectConfig struct {
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
	Concurrency int      `yaml:"concurrency"`
	CSSOut      string   `yaml:"css_out"`
	Write       bool     `yaml:"write"`
}

// loadProjectConfig reads .fluentstatic.yaml from the current directory.
// Returns nil (no error) if the file does not exist.
func loadProjectConfig() (*ProjectConfig, error) {
	data, err := os.ReadFile(".fluentstatic.yaml")
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyProjectConfig overlays .fluentstatic.yaml values onto the default run
// configuration. Command-line flags are applied afterwards and win.
func applyProjectConfig(cfg runner.Config) runner.Config {
	pc, err := loadProjectConfig()
	if err != nil || pc == nil {
		return cfg
	}
	if len(pc.Include) > 0 {
		cfg.Include = pc.Include
	}
	if len(pc.Exclude) > 0 {
		cfg.Exclude = pc.Exclude
	}
	if pc.Concurrency > 0 {
		cfg.Concurrency = pc.Concurrency
	}
	if pc.CSSOut != "" {
		cfg.CSSOutPath = pc.CSSOut
	}
	if pc.Write {
		cfg.Write = true
	}
	return cfg
}
