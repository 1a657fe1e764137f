// Package generator turns a catalog record into the full set of deployment artifacts and
// writes them under an output directory.
//
// Everything is rendered into a Plan first; files are only touched once every artifact
// rendered and the hosting document passed schema validation.
package generator

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/tiation/deploygen/internal/catalog"
	"github.com/tiation/deploygen/internal/config"
	"github.com/tiation/deploygen/internal/csp"
	"github.com/tiation/deploygen/internal/deployscript"
	derrors "github.com/tiation/deploygen/internal/errors"
	"github.com/tiation/deploygen/internal/metrics"
	"github.com/tiation/deploygen/internal/scripts"
	"github.com/tiation/deploygen/internal/surge"
	"github.com/tiation/deploygen/internal/workflow"
)

// Artifact names, as accepted by `deploygen show`.
const (
	ArtifactSurge        = "surge"
	ArtifactCNAME        = "cname"
	ArtifactScripts      = "scripts"
	ArtifactWorkflow     = "workflow"
	ArtifactDeployScript = "deploy-script"
)

// Output paths relative to the output directory.
const (
	SurgePath    = "surge.json"
	CNAMEPath    = "CNAME"
	ManifestPath = scripts.ManifestName
)

const fileMode fs.FileMode = 0o644

// ArtifactNames lists every artifact in plan order.
func ArtifactNames() []string {
	return []string{ArtifactSurge, ArtifactCNAME, ArtifactScripts, ArtifactWorkflow, ArtifactDeployScript}
}

// Artifact is one rendered output file.
type Artifact struct {
	Name    string
	Path    string
	Content []byte
	Mode    fs.FileMode
}

// Plan holds every artifact for one repository, in write order.
type Plan struct {
	Repo          catalog.RepositoryConfig
	Artifacts     []Artifact
	CSPDuplicates []string
}

// Artifact returns the planned artifact with the given name.
func (p *Plan) Artifact(name string) (Artifact, bool) {
	for _, a := range p.Artifacts {
		if a.Name == name {
			return a, true
		}
	}
	return Artifact{}, false
}

// BuildPlan renders all artifacts for repo in memory. The package manifest is only
// planned when existingManifest is non-nil; its scripts are merged into it.
func BuildPlan(repo catalog.RepositoryConfig, s config.Settings, existingManifest []byte) (*Plan, error) {
	return buildPlan(repo, s, existingManifest, metrics.NoopRecorder{})
}

func buildPlan(repo catalog.RepositoryConfig, s config.Settings, existingManifest []byte, rec metrics.Recorder) (*Plan, error) {
	p := &Plan{
		Repo:          repo,
		CSPDuplicates: csp.Duplicates(csp.Join(repo.CSPAdditional)),
	}

	add := func(name, path string, mode fs.FileMode, render func() ([]byte, error)) error {
		start := time.Now()
		content, err := render()
		rec.ObserveRender(name, time.Since(start))
		if err != nil {
			rec.IncArtifact(name, metrics.ResultFailed)
			if _, ok := derrors.As(err); ok {
				return err
			}
			return derrors.RenderFailed(name, err)
		}
		p.Artifacts = append(p.Artifacts, Artifact{Name: name, Path: path, Content: content, Mode: mode})
		return nil
	}

	if err := add(ArtifactSurge, SurgePath, fileMode, func() ([]byte, error) {
		return surge.Render(surge.Build(repo, s))
	}); err != nil {
		return nil, err
	}
	if err := add(ArtifactCNAME, CNAMEPath, fileMode, func() ([]byte, error) {
		return RenderCNAME(repo), nil
	}); err != nil {
		return nil, err
	}
	if existingManifest != nil {
		if err := add(ArtifactScripts, ManifestPath, fileMode, func() ([]byte, error) {
			return scripts.MergeManifest(existingManifest, scripts.Build(repo))
		}); err != nil {
			return nil, err
		}
	}
	if err := add(ArtifactWorkflow, workflow.Path, fileMode, func() ([]byte, error) {
		return workflow.Render(workflow.Build(repo, s))
	}); err != nil {
		return nil, err
	}
	if err := add(ArtifactDeployScript, deployscript.Path, deployscript.FileMode, func() ([]byte, error) {
		return deployscript.Render(deployscript.Build(repo, s))
	}); err != nil {
		return nil, err
	}
	return p, nil
}

// RenderCNAME returns the CNAME file content: the bare domain without a newline.
func RenderCNAME(repo catalog.RepositoryConfig) []byte {
	return []byte(repo.Domain)
}

// RenderArtifact renders a single artifact without planning the rest. The scripts
// artifact is rendered as a standalone {"scripts": ...} object.
func RenderArtifact(name string, repo catalog.RepositoryConfig, s config.Settings) ([]byte, error) {
	switch name {
	case ArtifactSurge:
		return surge.Render(surge.Build(repo, s))
	case ArtifactCNAME:
		return RenderCNAME(repo), nil
	case ArtifactScripts:
		return scripts.Render(scripts.Build(repo))
	case ArtifactWorkflow:
		return workflow.Render(workflow.Build(repo, s))
	case ArtifactDeployScript:
		return deployscript.Render(deployscript.Build(repo, s))
	default:
		return nil, derrors.ValidationFailed("artifact", fmt.Sprintf("unknown artifact %q", name))
	}
}
