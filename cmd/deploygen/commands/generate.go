package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/tiation/deploygen/internal/catalog"
	"github.com/tiation/deploygen/internal/generator"
	"github.com/tiation/deploygen/internal/git"
	"github.com/tiation/deploygen/internal/logfields"
	"github.com/tiation/deploygen/internal/metrics"
	"github.com/tiation/deploygen/internal/watch"
)

// GenerateCmd implements the default 'generate' command.
type GenerateCmd struct {
	Key         string `arg:"" optional:"" help:"Catalog key of the repository to generate for"`
	DryRun      bool   `name:"dry-run" help:"Render and validate without writing files"`
	Detect      bool   `help:"Derive the key from the origin remote of the git repository at --dir"`
	JSON        bool   `name:"json" help:"Print the generation result as JSON"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this textfile" type:"path"`
	Watch       bool   `help:"Regenerate when the settings, catalog or .env file changes"`
}

func (g *GenerateCmd) Run(glob *Global, root *CLI) error {
	out := glob.out()
	log := glob.logger()

	cat, err := root.LoadCatalog()
	if err != nil {
		return err
	}

	key, err := g.resolveKey(root.Dir, cat, log)
	if err != nil {
		return err
	}
	if key == "" {
		printUsage(out, cat)
		return nil
	}

	if !g.Watch {
		return g.runOnce(context.Background(), glob, root, key)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := g.runOnce(ctx, glob, root, key); err != nil {
		log.Error("Initial generation failed", logfields.Error(err))
	}

	w, err := watch.New(root.WatchedFiles(), watch.DefaultDebounce, log)
	if err != nil {
		return err
	}
	log.Info("Watching for changes, press Ctrl+C to stop", logfields.Count(len(w.Files())))
	return w.Run(ctx, func(ctx context.Context, changed []string) {
		log.Info("Inputs changed, regenerating", slog.Any("files", changed))
		if err := g.runOnce(ctx, glob, root, key); err != nil {
			log.Error("Regeneration failed", logfields.Error(err))
		}
	})
}

func (g *GenerateCmd) resolveKey(dir string, cat *catalog.Catalog, log *slog.Logger) (string, error) {
	if g.Key != "" {
		if g.Detect {
			log.Debug("Explicit key given, skipping remote detection", logfields.Repository(g.Key))
		}
		return g.Key, nil
	}
	if !g.Detect {
		return "", nil
	}
	key, origin, err := git.DetectKey(dir, cat)
	if err != nil {
		return "", err
	}
	log.Info("Detected repository from git remote", logfields.Repository(key), slog.String("remote", origin.URL))
	return key, nil
}

// runOnce reloads catalog and settings so watch mode picks up edits.
func (g *GenerateCmd) runOnce(ctx context.Context, glob *Global, root *CLI, key string) error {
	cat, err := root.LoadCatalog()
	if err != nil {
		return err
	}
	settings, err := root.LoadSettings()
	if err != nil {
		return err
	}

	var rec metrics.Recorder = metrics.NoopRecorder{}
	var reg *prom.Registry
	if g.MetricsFile != "" {
		reg = prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
	}

	gen := &generator.Generator{
		Catalog:  cat,
		Settings: settings,
		Dir:      root.Dir,
		Recorder: rec,
		Logger:   glob.logger(),
	}
	res, genErr := gen.Generate(ctx, key, generator.Options{DryRun: g.DryRun})

	if reg != nil {
		if err := metrics.WriteTextfile(g.MetricsFile, reg); err != nil {
			glob.logger().Warn("Failed to write metrics textfile", logfields.Path(g.MetricsFile), logfields.Error(err))
		}
	}
	if genErr != nil {
		return genErr
	}

	if g.JSON {
		enc := json.NewEncoder(glob.out())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printSummary(glob.out(), root.Dir, res)
	return nil
}

func printUsage(w io.Writer, cat *catalog.Catalog) {
	_, _ = fmt.Fprintln(w, "Usage: deploygen [generate] <repository-key>")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Available repositories:")
	for _, k := range cat.Keys() {
		_, _ = fmt.Fprintf(w, "  - %s\n", k)
	}
}

func printSummary(w io.Writer, dir string, res *generator.Result) {
	verb := "Wrote"
	if res.DryRun {
		verb = "Would write"
	}
	_, _ = fmt.Fprintf(w, "Surge deployment for %s (%s)\n", res.Key, res.Domain)
	for _, f := range res.Written {
		_, _ = fmt.Fprintf(w, "  %s %s (%d bytes)\n", verb, filepath.Join(dir, f.Path), f.Bytes)
	}
	if len(res.CSPDuplicates) > 0 {
		_, _ = fmt.Fprintf(w, "  Warning: CSP repeats directives %v; the first occurrence wins\n", res.CSPDuplicates)
	}
	if !res.DryRun {
		_, _ = fmt.Fprintln(w, "Next: set SURGE_TOKEN in the repository secrets and push to main.")
	}
}

func envFile(dir string) string {
	return filepath.Join(dir, ".env")
}
