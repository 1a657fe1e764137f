package catalog

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/idna"
	"gopkg.in/yaml.v3"

	derrors "github.com/tiation/deploygen/internal/errors"
)

// fileFormat is the on-disk shape of a catalog overlay.
type fileFormat struct {
	Repositories []RepositoryConfig `yaml:"repositories"`
}

var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.VerifyDNSLength(true),
	idna.BidiRule(),
)

// LoadFile reads a YAML catalog overlay. Every record is validated.
func LoadFile(path string) (*Catalog, error) {
	// #nosec G304 -- path is an operator-supplied catalog file.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, derrors.ConfigNotFound(path)
		}
		return nil, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to read catalog file").
			WithContext("path", path)
	}
	return Parse(data)
}

// Parse decodes YAML catalog content and validates each record.
func Parse(data []byte) (*Catalog, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "failed to parse catalog file")
	}
	for _, r := range f.Repositories {
		if err := Validate(r); err != nil {
			return nil, err
		}
	}
	return New(f.Repositories)
}

// Validate checks that every field is populated and that Domain is a usable hostname.
// CSPAdditional is passed through unparsed.
func Validate(r RepositoryConfig) error {
	required := []struct {
		field string
		empty bool
	}{
		{"key", r.Key == ""},
		{"name", r.Name == ""},
		{"domain", r.Domain == ""},
		{"description", r.Description == ""},
		{"type", r.Type == ""},
		{"features", len(r.Features) == 0},
		{"api_endpoints", len(r.APIEndpoints) == 0},
		{"csp_additional", r.CSPAdditional == ""},
	}
	for _, f := range required {
		if f.empty {
			return derrors.ValidationFailed(f.field, "required field is empty").WithContext("repository", r.Key)
		}
	}
	if err := ValidateDomain(r.Domain); err != nil {
		return derrors.ValidationFailed("domain", err.Error()).WithContext("repository", r.Key)
	}
	for _, ep := range r.APIEndpoints {
		if !strings.HasPrefix(ep, "/") || strings.HasSuffix(ep, "/") {
			return derrors.ValidationFailed("api_endpoints", fmt.Sprintf("endpoint %q must start with / and not end with /", ep)).
				WithContext("repository", r.Key)
		}
	}
	return nil
}

// ValidateDomain reports whether domain is a fully-qualified hostname.
func ValidateDomain(domain string) error {
	if !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
		return fmt.Errorf("domain %q is not fully qualified", domain)
	}
	ascii, err := hostProfile.ToASCII(domain)
	if err != nil {
		return fmt.Errorf("domain %q: %w", domain, err)
	}
	if ascii != domain {
		return fmt.Errorf("domain %q must be written in lowercase ASCII form (%s)", domain, ascii)
	}
	return nil
}
