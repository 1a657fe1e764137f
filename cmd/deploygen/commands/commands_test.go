package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiation/deploygen/internal/catalog"
	derrors "github.com/tiation/deploygen/internal/errors"
	"github.com/tiation/deploygen/internal/generator"
)

// run parses args against a fresh CLI and executes the selected command.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("deploygen"),
		kong.Vars{"version": "test"},
		kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }),
	)
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	glob := &Global{Stdout: &out, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	err = kctx.Run(glob, &cli)
	return out.String(), err
}

func isolatedDir(t *testing.T) string {
	t.Helper()
	for _, k := range []string{"DEPLOYGEN_ORG", "DEPLOYGEN_AUTHOR", "DEPLOYGEN_LICENSE", "DEPLOYGEN_VERSION", "DEPLOYGEN_NODE_VERSION", "DEPLOYGEN_HEALTH_DELAY"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return t.TempDir()
}

func entries(t *testing.T, dir string) []string {
	t.Helper()
	list, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range list {
		names = append(names, e.Name())
	}
	return names
}

func TestGenerate_NoKeyPrintsUsageAndKeys(t *testing.T) {
	dir := isolatedDir(t)

	out, err := run(t, "-C", dir, "-c", filepath.Join(dir, "deploygen.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Usage: deploygen")
	for _, k := range catalog.Builtin().Keys() {
		assert.Contains(t, out, "  - "+k+"\n")
	}
	assert.Empty(t, entries(t, dir))
}

func TestGenerate_UnknownKeyIsCatalogError(t *testing.T) {
	dir := isolatedDir(t)

	_, err := run(t, "-C", dir, "-c", filepath.Join(dir, "deploygen.yaml"), "not-a-repo")
	require.Error(t, err)
	assert.Equal(t, 3, derrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
	assert.Empty(t, entries(t, dir))
}

func TestGenerate_DefaultCommandWritesArtifacts(t *testing.T) {
	dir := isolatedDir(t)

	out, err := run(t, "-C", dir, "-c", filepath.Join(dir, "deploygen.yaml"), "DiceRollerSimulator")
	require.NoError(t, err)
	assert.Contains(t, out, "tiation-dice-roller.surge.sh")
	assert.FileExists(t, filepath.Join(dir, generator.SurgePath))
	assert.FileExists(t, filepath.Join(dir, ".github", "workflows", "deploy-surge.yml"))
	assert.FileExists(t, filepath.Join(dir, "scripts", "deploy.sh"))
}

func TestGenerate_JSONDryRunWithMetrics(t *testing.T) {
	dir := isolatedDir(t)
	metricsDir := t.TempDir()
	metricsFile := filepath.Join(metricsDir, "deploygen.prom")

	out, err := run(t, "-C", dir, "-c", filepath.Join(dir, "deploygen.yaml"),
		"generate", "tiation-cms", "--dry-run", "--json", "--metrics-file", metricsFile)
	require.NoError(t, err)

	var res generator.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "tiation-cms", res.Key)
	assert.True(t, res.DryRun)
	assert.Len(t, res.Written, 4)
	assert.Empty(t, entries(t, dir))

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "deploygen_generations_total")
}

func TestGenerate_DetectFromOrigin(t *testing.T) {
	dir := isolatedDir(t)
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:tiation/tiation-go-sdk.git"},
	})
	require.NoError(t, err)

	out, err := run(t, "-C", dir, "-c", filepath.Join(dir, "deploygen.yaml"), "generate", "--detect", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Surge deployment for tiation-go-sdk")
}

func TestShow_PrintsArtifact(t *testing.T) {
	dir := isolatedDir(t)

	out, err := run(t, "-C", dir, "-c", filepath.Join(dir, "deploygen.yaml"), "show", "tiation-cms", "cname")
	require.NoError(t, err)
	assert.Equal(t, "tiation-cms.surge.sh", out)

	out, err = run(t, "-C", dir, "-c", filepath.Join(dir, "deploygen.yaml"), "show", "tiation-cms", "scripts")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{\n  \"scripts\": {"))
	assert.Empty(t, entries(t, dir))
}

func TestList_UsesCatalogOverlay(t *testing.T) {
	dir := isolatedDir(t)
	overlay := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(overlay, []byte(`repositories:
  - key: tiation-blog
    name: tiation-blog
    domain: tiation-blog.surge.sh
    description: Company blog
    type: blog-site
    features: [rss]
    api_endpoints: [/api/posts]
    csp_additional: "img-src https://images.tiation.com;"
`), 0o600))

	out, err := run(t, "-C", dir, "-c", filepath.Join(dir, "deploygen.yaml"), "--catalog", overlay, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "DiceRollerSimulator")
	assert.Contains(t, out, "Gaming Tool")
	assert.Contains(t, out, "tiation-blog.surge.sh")
	assert.Contains(t, out, "Blog Site")
}

func TestValidate_AllBuiltinKeys(t *testing.T) {
	dir := isolatedDir(t)

	out, err := run(t, "-C", dir, "-c", filepath.Join(dir, "deploygen.yaml"), "validate")
	require.NoError(t, err)
	assert.NotContains(t, out, "FAIL")
	assert.Equal(t, catalog.Builtin().Len(), strings.Count(out, "\n"))
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "deploygen "))
}

func TestTypeLabel(t *testing.T) {
	tests := map[string]string{
		"gaming-tool":        "Gaming Tool",
		"cms-platform":       "Cms Platform",
		"documentation-site": "Documentation Site",
		"":                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, TypeLabel(in), in)
	}
}
