package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiation/deploygen/internal/catalog"
	"github.com/tiation/deploygen/internal/config"
	"github.com/tiation/deploygen/internal/deployscript"
	derrors "github.com/tiation/deploygen/internal/errors"
	"github.com/tiation/deploygen/internal/metrics"
	"github.com/tiation/deploygen/internal/workflow"
)

type fakeRecorder struct {
	mu          sync.Mutex
	renders     map[string]int
	artifacts   map[string]metrics.ResultLabel
	bytes       map[string]int
	generations []metrics.OutcomeLabel
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{
		renders:   map[string]int{},
		artifacts: map[string]metrics.ResultLabel{},
		bytes:     map[string]int{},
	}
}

func (f *fakeRecorder) ObserveRender(artifact string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renders[artifact]++
}

func (f *fakeRecorder) IncArtifact(artifact string, result metrics.ResultLabel) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.artifacts[artifact] = result
}

func (f *fakeRecorder) AddBytes(artifact string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bytes[artifact] += n
}

func (f *fakeRecorder) IncGeneration(outcome metrics.OutcomeLabel) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generations = append(f.generations, outcome)
}

func newGenerator(t *testing.T, dir string) (*Generator, *fakeRecorder, *bytes.Buffer) {
	t.Helper()
	rec := newFakeRecorder()
	var logs bytes.Buffer
	return &Generator{
		Catalog:  catalog.Builtin(),
		Settings: config.Default(),
		Dir:      dir,
		Recorder: rec,
		Logger:   slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}, rec, &logs
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	var out []string
	require.NoError(t, filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(dir, path)
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	}))
	return out
}

func TestGenerate_UnknownKeyWritesNothing(t *testing.T) {
	dir := t.TempDir()
	g, rec, _ := newGenerator(t, dir)

	_, err := g.Generate(context.Background(), "no-such-repo", Options{})
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryCatalog))
	assert.Empty(t, listFiles(t, dir))
	assert.Equal(t, []metrics.OutcomeLabel{metrics.OutcomeNotFound}, rec.generations)
}

func TestGenerate_WritesAllArtifactsWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	g, rec, logs := newGenerator(t, dir)

	res, err := g.Generate(context.Background(), "tiation-cms", Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "tiation-cms", res.Key)
	assert.Equal(t, "tiation-cms.surge.sh", res.Domain)

	assert.ElementsMatch(t, []string{
		SurgePath,
		CNAMEPath,
		workflow.Path,
		deployscript.Path,
	}, listFiles(t, dir))
	assert.NoFileExists(t, filepath.Join(dir, ManifestPath))

	cname, err := os.ReadFile(filepath.Join(dir, CNAMEPath))
	require.NoError(t, err)
	assert.Equal(t, "tiation-cms.surge.sh", string(cname))

	info, err := os.Stat(filepath.Join(dir, deployscript.Path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	require.Len(t, res.Written, 4)
	assert.Equal(t, ArtifactSurge, res.Written[0].Artifact)
	assert.Equal(t, "0755", res.Written[3].Mode)
	assert.Len(t, res.Written[0].SHA256, 64)

	assert.Equal(t, []metrics.OutcomeLabel{metrics.OutcomeSuccess}, rec.generations)
	assert.Equal(t, metrics.ResultWritten, rec.artifacts[ArtifactWorkflow])
	assert.Equal(t, len(cname), rec.bytes[ArtifactCNAME])
	assert.Contains(t, logs.String(), "run_id="+res.RunID)
	assert.Regexp(t, `msg="Generation complete".* duration_ms=[0-9.]+`, logs.String())
}

func TestGenerate_MergesExistingManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := `{"name":"tiation-cms","version":"0.1.0","scripts":{"lint":"old","custom":"echo hi"},"private":true}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestPath), []byte(manifest), 0o600))
	g, _, _ := newGenerator(t, dir)

	res, err := g.Generate(context.Background(), "tiation-cms", Options{})
	require.NoError(t, err)
	require.Len(t, res.Written, 5)

	data, err := os.ReadFile(filepath.Join(dir, ManifestPath))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "0.1.0", got["version"])
	assert.Equal(t, true, got["private"])
	scripts, ok := got["scripts"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "eslint .", scripts["lint"])
	assert.Equal(t, "echo hi", scripts["custom"])
	assert.Contains(t, scripts, "build")
}

func TestGenerate_MalformedManifestWritesNothing(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, ManifestPath)
	require.NoError(t, os.WriteFile(manifestPath, []byte(`{"name": `), 0o600))
	g, rec, _ := newGenerator(t, dir)

	_, err := g.Generate(context.Background(), "tiation-cms", Options{})
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
	dge, ok := derrors.As(err)
	require.True(t, ok)
	assert.Equal(t, manifestPath, dge.Context["path"])

	assert.Equal(t, []string{ManifestPath}, listFiles(t, dir))
	assert.Equal(t, []metrics.OutcomeLabel{metrics.OutcomeInvalid}, rec.generations)
}

func TestGenerate_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	g, rec, _ := newGenerator(t, dir)

	res, err := g.Generate(context.Background(), "DiceRollerSimulator", Options{DryRun: true})
	require.NoError(t, err)
	assert.True(t, res.DryRun)
	assert.Len(t, res.Written, 4)
	assert.Empty(t, listFiles(t, dir))
	assert.Equal(t, metrics.ResultDryRun, rec.artifacts[ArtifactSurge])
	assert.Empty(t, rec.bytes)
}

func TestGenerate_IsDeterministic(t *testing.T) {
	dir := t.TempDir()
	g, _, _ := newGenerator(t, dir)

	first, err := g.Generate(context.Background(), "DiceRollerSimulator", Options{})
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), "DiceRollerSimulator", Options{})
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	require.Len(t, second.Written, len(first.Written))
	for i := range first.Written {
		assert.Equal(t, first.Written[i].SHA256, second.Written[i].SHA256, first.Written[i].Path)
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	g, rec, _ := newGenerator(t, dir)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, "tiation-cms", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, listFiles(t, dir))
	assert.Equal(t, []metrics.OutcomeLabel{metrics.OutcomeFailed}, rec.generations)
}

func TestBuildPlan_ArtifactOrder(t *testing.T) {
	repo, err := catalog.Builtin().Lookup("tiation-go-sdk")
	require.NoError(t, err)

	p, err := BuildPlan(repo, config.Default(), nil)
	require.NoError(t, err)
	var names []string
	for _, a := range p.Artifacts {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{ArtifactSurge, ArtifactCNAME, ArtifactWorkflow, ArtifactDeployScript}, names)

	p, err = BuildPlan(repo, config.Default(), []byte(`{}`))
	require.NoError(t, err)
	a, ok := p.Artifact(ArtifactScripts)
	require.True(t, ok)
	assert.Equal(t, ManifestPath, a.Path)
}

func TestRenderArtifact(t *testing.T) {
	repo, err := catalog.Builtin().Lookup("tiation-go-sdk")
	require.NoError(t, err)

	for _, name := range ArtifactNames() {
		t.Run(name, func(t *testing.T) {
			out, err := RenderArtifact(name, repo, config.Default())
			require.NoError(t, err)
			assert.NotEmpty(t, out)
		})
	}

	_, err = RenderArtifact("nginx", repo, config.Default())
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
}
