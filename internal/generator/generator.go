package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/tiation/deploygen/internal/catalog"
	"github.com/tiation/deploygen/internal/config"
	derrors "github.com/tiation/deploygen/internal/errors"
	"github.com/tiation/deploygen/internal/fsutil"
	"github.com/tiation/deploygen/internal/logfields"
	"github.com/tiation/deploygen/internal/metrics"
	"github.com/tiation/deploygen/internal/schema"
)

// Generator writes the artifacts of one catalog repository under Dir.
type Generator struct {
	Catalog  *catalog.Catalog
	Settings config.Settings
	Dir      string
	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// Options controls a single Generate call.
type Options struct {
	// DryRun renders and validates everything but writes nothing.
	DryRun bool
}

// WrittenFile describes one artifact of a run.
type WrittenFile struct {
	Artifact string `json:"artifact"`
	Path     string `json:"path"`
	Bytes    int    `json:"bytes"`
	SHA256   string `json:"sha256"`
	Mode     string `json:"mode"`
}

// Result summarises a Generate call.
type Result struct {
	RunID         string        `json:"run_id"`
	Key           string        `json:"key"`
	Domain        string        `json:"domain"`
	DryRun        bool          `json:"dry_run"`
	Written       []WrittenFile `json:"files"`
	CSPDuplicates []string      `json:"csp_duplicates,omitempty"`
}

func (g *Generator) recorder() metrics.Recorder {
	if g.Recorder == nil {
		return metrics.NoopRecorder{}
	}
	return g.Recorder
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Generator) dir() string {
	if g.Dir == "" {
		return "."
	}
	return g.Dir
}

// Generate looks up key, plans every artifact, validates the hosting document and
// writes the files. An unknown key or a malformed package.json leaves the output
// directory untouched.
func (g *Generator) Generate(ctx context.Context, key string, opts Options) (*Result, error) {
	rec := g.recorder()
	runID := uuid.NewString()
	log := g.logger().With(logfields.RunID(runID), logfields.Repository(key))

	if g.Catalog == nil {
		return nil, derrors.InternalError("generator has no catalog", nil)
	}
	repo, err := g.Catalog.Lookup(key)
	if err != nil {
		rec.IncGeneration(metrics.OutcomeNotFound)
		return nil, err
	}

	result, err := g.generate(ctx, log, repo, opts, rec)
	switch {
	case err == nil:
		rec.IncGeneration(metrics.OutcomeSuccess)
	case derrors.IsCategory(err, derrors.CategoryValidation):
		rec.IncGeneration(metrics.OutcomeInvalid)
	default:
		rec.IncGeneration(metrics.OutcomeFailed)
	}
	if result != nil {
		result.RunID = runID
	}
	return result, err
}

func (g *Generator) generate(ctx context.Context, log *slog.Logger, repo catalog.RepositoryConfig, opts Options, rec metrics.Recorder) (*Result, error) {
	start := time.Now()
	dir := g.dir()
	manifestPath := filepath.Join(dir, ManifestPath)

	existing, err := readOptional(manifestPath)
	if err != nil {
		return nil, err
	}

	plan, err := buildPlan(repo, g.Settings, existing, rec)
	if err != nil {
		if dge, ok := derrors.As(err); ok && dge.Context["path"] == ManifestPath {
			dge.WithContext("path", manifestPath)
		}
		return nil, err
	}

	hosting, _ := plan.Artifact(ArtifactSurge)
	if err := schema.ValidateHosting(hosting.Content); err != nil {
		return nil, err
	}

	if len(plan.CSPDuplicates) > 0 {
		log.Warn("CSP fragment repeats baseline directives; browsers enforce only the first occurrence",
			logfields.Directives(plan.CSPDuplicates))
	}

	// Resolve every target before the first write so a bad path cannot leave a partial set.
	targets := make([]string, len(plan.Artifacts))
	for i, a := range plan.Artifacts {
		full, err := fsutil.ResolveUnder(dir, a.Path)
		if err != nil {
			return nil, derrors.WriteFailed(a.Path, err)
		}
		targets[i] = full
	}

	result := &Result{
		Key:           repo.Key,
		Domain:        repo.Domain,
		DryRun:        opts.DryRun,
		CSPDuplicates: plan.CSPDuplicates,
	}
	for i, a := range plan.Artifacts {
		if err := ctx.Err(); err != nil {
			return result, derrors.Wrap(err, derrors.CategoryInternal, derrors.SeverityFatal, "generation cancelled")
		}

		sum := sha256.Sum256(a.Content)
		wf := WrittenFile{
			Artifact: a.Name,
			Path:     a.Path,
			Bytes:    len(a.Content),
			SHA256:   hex.EncodeToString(sum[:]),
			Mode:     fmt.Sprintf("%04o", a.Mode.Perm()),
		}

		if opts.DryRun {
			rec.IncArtifact(a.Name, metrics.ResultDryRun)
			log.Debug("Planned artifact", logfields.Artifact(a.Name), logfields.Path(a.Path), logfields.Bytes(wf.Bytes))
		} else {
			if err := fsutil.WriteFileAtomic(targets[i], a.Content, a.Mode); err != nil {
				rec.IncArtifact(a.Name, metrics.ResultFailed)
				return result, derrors.WriteFailed(a.Path, err).WithContext("artifact", a.Name)
			}
			rec.IncArtifact(a.Name, metrics.ResultWritten)
			rec.AddBytes(a.Name, wf.Bytes)
			log.Info("Wrote artifact", logfields.Artifact(a.Name), logfields.Path(a.Path), logfields.Bytes(wf.Bytes))
		}
		result.Written = append(result.Written, wf)
	}

	log.Info("Generation complete", logfields.Domain(repo.Domain), logfields.Count(len(result.Written)), logfields.Since(start))
	return result, nil
}

// readOptional returns nil content, not an error, when path does not exist.
func readOptional(path string) ([]byte, error) {
	// #nosec G304 -- path is the package manifest inside the output directory.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to read package manifest").
			WithContext("path", path)
	}
	return data, nil
}
