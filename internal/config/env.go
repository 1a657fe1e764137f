package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	derrors "github.com/tiation/deploygen/internal/errors"
)

// Environment variables that override the settings file.
const (
	EnvOrganization = "DEPLOYGEN_ORG"
	EnvAuthor       = "DEPLOYGEN_AUTHOR"
	EnvLicense      = "DEPLOYGEN_LICENSE"
	EnvVersion      = "DEPLOYGEN_VERSION"
	EnvNodeVersion  = "DEPLOYGEN_NODE_VERSION"
	EnvHealthDelay  = "DEPLOYGEN_HEALTH_DELAY"
)

// LoadDotEnv reads dir/.env if it exists. The process environment is left untouched,
// so every call sees the file's current content. A missing file yields nil.
func LoadDotEnv(dir string) (map[string]string, error) {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, derrors.ConfigInvalid(path, err)
	}
	return vars, nil
}

// envLookup resolves a variable from the process environment first, then from dotenv.
func envLookup(dotenv map[string]string) func(string) string {
	return func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}
}

// ApplyEnv overrides fields from DEPLOYGEN_* variables that are set and non-empty.
// DEPLOYGEN_HEALTH_DELAY accepts a duration ("15s") or a plain number of seconds.
func (s *Settings) ApplyEnv() error {
	return s.applyEnv(os.Getenv)
}

func (s *Settings) applyEnv(lookup func(string) string) error {
	for env, field := range map[string]*string{
		EnvOrganization: &s.Organization,
		EnvAuthor:       &s.Author,
		EnvLicense:      &s.License,
		EnvVersion:      &s.Version,
		EnvNodeVersion:  &s.NodeVersion,
	} {
		if v := lookup(env); v != "" {
			*field = v
		}
	}

	if v := lookup(EnvHealthDelay); v != "" {
		d, err := parseDelay(v)
		if err != nil {
			return derrors.ConfigInvalid(EnvHealthDelay, err)
		}
		s.HealthCheckDelay = d
	}
	return nil
}

func parseDelay(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid delay %q: %w", v, err)
	}
	return d, nil
}
