package commands

import (
	"fmt"
	"strings"

	"github.com/tiation/deploygen/internal/catalog"
	"github.com/tiation/deploygen/internal/csp"
	derrors "github.com/tiation/deploygen/internal/errors"
	"github.com/tiation/deploygen/internal/generator"
	"github.com/tiation/deploygen/internal/logfields"
	"github.com/tiation/deploygen/internal/schema"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Key string `arg:"" optional:"" help:"Catalog key to validate (all keys when omitted)"`
}

func (v *ValidateCmd) Run(glob *Global, root *CLI) error {
	cat, err := root.LoadCatalog()
	if err != nil {
		return err
	}
	settings, err := root.LoadSettings()
	if err != nil {
		return err
	}

	repos := cat.All()
	if v.Key != "" {
		r, err := cat.Lookup(v.Key)
		if err != nil {
			return err
		}
		repos = []catalog.RepositoryConfig{r}
	}

	out := glob.out()
	var failed []string
	for _, r := range repos {
		err := catalog.Validate(r)
		if err == nil {
			var hosting []byte
			hosting, err = generator.RenderArtifact(generator.ArtifactSurge, r, settings)
			if err == nil {
				err = schema.ValidateHosting(hosting)
			}
		}
		if err != nil {
			failed = append(failed, r.Key)
			glob.logger().Error("Validation failed", logfields.Repository(r.Key), logfields.Error(err))
			_, _ = fmt.Fprintf(out, "FAIL  %s\n", r.Key)
			continue
		}

		if dups := csp.Duplicates(csp.Join(r.CSPAdditional)); len(dups) > 0 {
			_, _ = fmt.Fprintf(out, "WARN  %s: CSP repeats %s\n", r.Key, strings.Join(dups, ", "))
			continue
		}
		_, _ = fmt.Fprintf(out, "OK    %s\n", r.Key)
	}

	if len(failed) > 0 {
		return derrors.New(derrors.CategoryValidation, derrors.SeverityFatal,
			fmt.Sprintf("%d of %d repositories failed validation", len(failed), len(repos))).
			WithContext("repositories", strings.Join(failed, ","))
	}
	return nil
}
