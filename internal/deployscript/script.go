// Package deployscript builds scripts/deploy.sh, the interactive bash script that
// deploys a repository to Surge from a developer machine.
package deployscript

import (
	"github.com/tiation/deploygen/internal/catalog"
	"github.com/tiation/deploygen/internal/config"
)

// Path is where the script is written, relative to the repository root.
const Path = "scripts/deploy.sh"

// Project holds the values the script exports as shell variables.
type Project struct {
	Name     string
	Type     string
	Domain   string
	Features []string
}

// Environment maps an ENVIRONMENT argument to a <name><suffix> Surge domain.
type Environment struct {
	Name         string
	DomainSuffix string
}

// Gate is a command whose failure only prints a warning.
type Gate struct {
	Comment string
	Icon    string
	Label   string
	Command string
	Warning string
}

// BuildTargets selects the build command for the production environment and the rest.
type BuildTargets struct {
	ProductionEnvironment string
	Production            string
	Other                 string
}

// HealthCheck runs once after deploy and never fails the script.
type HealthCheck struct {
	DelaySeconds int
	URL          string
}

// Script is the full description of deploy.sh.
type Script struct {
	Project            Project
	DefaultEnvironment string
	Environments       []Environment
	InstallSurge       string
	Audit              Gate
	Install            string
	Gates              []Gate
	Builds             BuildTargets
	Deploy             string
	Health             HealthCheck
}

// Build returns the script description for repo.
func Build(repo catalog.RepositoryConfig, s config.Settings) Script {
	return Script{
		Project: Project{
			Name:     repo.Name,
			Type:     repo.Type,
			Domain:   repo.Domain,
			Features: append([]string(nil), repo.Features...),
		},
		DefaultEnvironment: "prod",
		Environments: []Environment{
			{Name: "dev", DomainSuffix: "-dev.surge.sh"},
			{Name: "staging", DomainSuffix: "-staging.surge.sh"},
		},
		InstallSurge: "npm install -g surge",
		Audit: Gate{
			Icon:    "🔒",
			Label:   "Running security audit...",
			Command: "npm audit --audit-level=high",
			Warning: "Security warnings found",
		},
		Install: "npm ci",
		Gates: []Gate{
			{Comment: "Run quality checks", Icon: "🔍", Label: "Running code quality checks...", Command: "npm run lint", Warning: "Linting warnings found"},
			{Comment: "Run tests", Icon: "🧪", Label: "Running tests...", Command: "npm run test", Warning: "Test warnings found"},
		},
		Builds: BuildTargets{
			ProductionEnvironment: "prod",
			Production:            "npm run build:prod",
			Other:                 "npm run build:dev",
		},
		Deploy: `surge dist "$DEPLOY_DOMAIN"`,
		Health: HealthCheck{
			DelaySeconds: s.HealthCheckSeconds(),
			URL:          "https://$DEPLOY_DOMAIN",
		},
	}
}
