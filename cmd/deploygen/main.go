package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/tiation/deploygen/cmd/deploygen/commands"
	derrors "github.com/tiation/deploygen/internal/errors"
	"github.com/tiation/deploygen/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("deploygen"),
		kong.Description("Generate Surge.sh deployment artifacts for catalog repositories."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	glob := &commands.Global{Logger: slog.Default()}
	if err := ctx.Run(glob, &cli); err != nil {
		derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
