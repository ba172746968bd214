package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is looked up when Load is given a directory.
const ConfigFileName = "deconstruct.yaml"

// Environment variables understood by the CLI.
const (
	EnvDebug   = "DEBUG"
	EnvRootDir = "ROOT_DIR"
)

// ProjectConfig is the content of deconstruct.yaml.
type ProjectConfig struct {
	Files deconstruct.FileTables `yaml:",inline"`
}

// Load reads deconstruct.yaml. path may name the file itself or the directory holding it.
func Load(path string) (*ProjectConfig, error) {
	configPath := path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		configPath = filepath.Join(path, ConfigFileName)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v: %w", configPath, err, deconstruct.ErrInvalidConfig)
	}
	return &cfg, nil
}

// Environment holds the settings read from process environment variables.
type Environment struct {
	// Verbose is true when DEBUG is exactly "true".
	Verbose bool

	// RootDir overrides the root for temporary extraction workspaces.
	RootDir string
}

// FromEnvironment reads settings through lookup, normally os.LookupEnv.
func FromEnvironment(lookup func(string) (string, bool)) Environment {
	var env Environment
	if v, ok := lookup(EnvDebug); ok && v == "true" {
		env.Verbose = true
	}
	if v, ok := lookup(EnvRootDir); ok {
		env.RootDir = v
	}
	return env
}
