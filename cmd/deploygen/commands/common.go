package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/tiation/deploygen/internal/catalog"
	"github.com/tiation/deploygen/internal/config"
)

// Global carries shared state into every command's Run method.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Settings file path (optional)" default:"deploygen.yaml" type:"path"`
	Catalog string           `help:"YAML catalog overlay merged onto the builtin catalog" type:"path"`
	Dir     string           `short:"C" help:"Output root directory" default:"." type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate   GenerateCmd `cmd:"" default:"withargs" help:"Generate deployment artifacts for a repository (default)"`
	List       ListCmd     `cmd:"" help:"List catalog repositories"`
	Show       ShowCmd     `cmd:"" help:"Print one rendered artifact without writing files"`
	Validate   ValidateCmd `cmd:"" help:"Render and schema-check hosting configs"`
	VersionCmd VersionCmd  `cmd:"" name:"version" help:"Print version information"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// LoadCatalog returns the builtin catalog, with the --catalog overlay merged on top
// when one is given.
func (c *CLI) LoadCatalog() (*catalog.Catalog, error) {
	cat := catalog.Builtin()
	if c.Catalog == "" {
		return cat, nil
	}
	overlay, err := catalog.LoadFile(c.Catalog)
	if err != nil {
		return nil, err
	}
	return cat.Merge(overlay), nil
}

// LoadSettings resolves generator settings from --config, .env in --dir and the
// environment.
func (c *CLI) LoadSettings() (config.Settings, error) {
	return config.Resolve(c.Config, c.Dir)
}

// WatchedFiles lists the inputs whose change triggers regeneration in watch mode.
func (c *CLI) WatchedFiles() []string {
	files := []string{c.Config, envFile(c.Dir)}
	if c.Catalog != "" {
		files = append(files, c.Catalog)
	}
	return files
}
