// Package config loads the generator settings that every builder shares: the GitHub
// organization used in repository URLs, package metadata, the CI Node.js version and the
// post-deploy health check delay.
//
// Sources are applied in order: built-in defaults, the optional YAML settings file
// (with ${VAR} expansion), a .env file next to the output directory, then DEPLOYGEN_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	derrors "github.com/tiation/deploygen/internal/errors"
)

// DefaultPath is the settings file looked up when --config is not given.
const DefaultPath = "deploygen.yaml"

// Settings carries the generator-wide values that are not part of a repository record.
type Settings struct {
	Organization     string        `yaml:"organization"`
	Author           string        `yaml:"author"`
	License          string        `yaml:"license"`
	Version          string        `yaml:"version"`
	NodeVersion      string        `yaml:"node_version"`
	HealthCheckDelay time.Duration `yaml:"health_check_delay"`
}

// Default returns the settings the generator uses when nothing is configured.
func Default() Settings {
	return Settings{
		Organization:     "tiation",
		Author:           "tiatheone@protonmail.com",
		License:          "MIT",
		Version:          "1.0.0",
		NodeVersion:      "18",
		HealthCheckDelay: 10 * time.Second,
	}
}

// Load reads a settings file on top of Default. A missing file is not an error.
func Load(path string) (Settings, error) {
	return load(path, os.Getenv)
}

func load(path string, lookup func(string) string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	// #nosec G304 -- settings path is supplied by the operator.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to read settings file").
			WithContext("path", path)
	}

	// Expand environment variables in the YAML content
	expanded := os.Expand(string(data), lookup)
	if err := yaml.Unmarshal([]byte(expanded), &s); err != nil {
		return s, derrors.ConfigInvalid(path, fmt.Errorf("failed to unmarshal settings: %w", err))
	}
	return s, nil
}

// Validate checks that every value needed by the builders is present.
func (s Settings) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"organization", s.Organization},
		{"author", s.Author},
		{"license", s.License},
		{"version", s.Version},
		{"node_version", s.NodeVersion},
	}
	for _, r := range required {
		if r.value == "" {
			return derrors.ValidationFailed(r.field, "must not be empty")
		}
	}
	if s.HealthCheckDelay < 0 {
		return derrors.ValidationFailed("health_check_delay", "must not be negative")
	}
	if s.HealthCheckDelay%time.Second != 0 {
		return derrors.ValidationFailed("health_check_delay", "must be a whole number of seconds")
	}
	return nil
}

// HealthCheckSeconds is the delay as the integer the deploy script passes to sleep.
func (s Settings) HealthCheckSeconds() int {
	return int(s.HealthCheckDelay / time.Second)
}

// Resolve runs the whole loading chain: .env in dir, the settings file, environment
// overrides, then validation. Process variables win over .env values, and .env is
// re-read on every call.
func Resolve(path, dir string) (Settings, error) {
	dotenv, err := LoadDotEnv(dir)
	if err != nil {
		return Settings{}, err
	}
	lookup := envLookup(dotenv)

	s, err := load(path, lookup)
	if err != nil {
		return Settings{}, err
	}
	if err := s.applyEnv(lookup); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
