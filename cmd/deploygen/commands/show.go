package commands

import (
	"github.com/tiation/deploygen/internal/generator"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	Key      string `arg:"" help:"Catalog key of the repository"`
	Artifact string `arg:"" help:"Artifact to render" enum:"surge,cname,scripts,workflow,deploy-script"`
}

func (s *ShowCmd) Run(glob *Global, root *CLI) error {
	cat, err := root.LoadCatalog()
	if err != nil {
		return err
	}
	repo, err := cat.Lookup(s.Key)
	if err != nil {
		return err
	}
	settings, err := root.LoadSettings()
	if err != nil {
		return err
	}

	out, err := generator.RenderArtifact(s.Artifact, repo, settings)
	if err != nil {
		return err
	}
	_, err = glob.out().Write(out)
	return err
}
