package commands

import (
	"fmt"

	"github.com/tiation/deploygen/internal/version"
)

// VersionCmd implements the 'version' command.
type VersionCmd struct{}

func (v *VersionCmd) Run(glob *Global, _ *CLI) error {
	_, err := fmt.Fprintln(glob.out(), version.String())
	return err
}
