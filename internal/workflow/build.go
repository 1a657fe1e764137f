package workflow

import (
	"strings"

	"github.com/tiation/deploygen/internal/catalog"
	"github.com/tiation/deploygen/internal/config"
)

// Path is where the workflow is written, relative to the repository root.
const Path = ".github/workflows/deploy-surge.yml"

const (
	runner       = "ubuntu-latest"
	checkout     = "actions/checkout@v4"
	artifactName = "build-files"
	artifactPath = "dist/"
)

func checkoutStep() Step {
	return Step{Name: "Checkout repository", Uses: checkout}
}

func downloadStep() Step {
	return Step{
		Name: "Download build artifacts",
		Uses: "actions/download-artifact@v4",
		With: []Var{{"name", artifactName}, {"path", artifactPath}},
	}
}

var surgeToken = []Var{{"SURGE_TOKEN", "${{ secrets.SURGE_TOKEN }}"}}

// Build returns the pipeline for repo. Jobs run security-scan, then build-and-test,
// then either deploy-production (main) or deploy-preview (pull requests).
func Build(repo catalog.RepositoryConfig, s config.Settings) Workflow {
	return Workflow{
		Name: "Deploy to Surge - " + repo.Name,
		Triggers: []Trigger{
			{Event: "push", Branches: []string{"main", "develop"}},
			{Event: "pull_request", Branches: []string{"main"}},
		},
		Env: []Var{
			{"NODE_VERSION", s.NodeVersion},
			{"SURGE_DOMAIN", repo.Domain},
			{"PROJECT_TYPE", repo.Type},
		},
		Jobs: []Job{
			securityScanJob(),
			buildAndTestJob(),
			deployProductionJob(),
			deployPreviewJob(repo.Features),
		},
	}
}

func securityScanJob() Job {
	return Job{
		ID:     "security-scan",
		RunsOn: runner,
		Steps: []Step{
			checkoutStep(),
			{Name: "Run security audit", Run: "npm audit --audit-level=high\n"},
		},
	}
}

func buildAndTestJob() Job {
	return Job{
		ID:     "build-and-test",
		RunsOn: runner,
		Needs:  "security-scan",
		Steps: []Step{
			checkoutStep(),
			{
				Name: "Setup Node.js",
				Uses: "actions/setup-node@v4",
				With: []Var{{"node-version", "${{ env.NODE_VERSION }}"}, {"cache", "npm"}},
			},
			{Name: "Install dependencies", Run: "npm ci"},
			{Name: "Run linting", Run: "npm run lint"},
			{Name: "Run tests", Run: "npm run test"},
			{
				Name: "Build application",
				Run:  "npm run build:prod",
				Env:  []Var{{"NODE_ENV", "production"}, {"PROJECT_TYPE", "${{ env.PROJECT_TYPE }}"}},
			},
			{Name: "Run security scan", Run: "npm run security-scan", ContinueOnError: true},
			{
				Name: "Upload build artifacts",
				Uses: "actions/upload-artifact@v4",
				With: []Var{{"name", artifactName}, {"path", artifactPath}},
			},
		},
	}
}

func deployProductionJob() Job {
	return Job{
		ID:     "deploy-production",
		RunsOn: runner,
		Needs:  "build-and-test",
		If:     "github.ref == 'refs/heads/main'",
		Steps: []Step{
			checkoutStep(),
			downloadStep(),
			{
				Name: "Deploy to Surge",
				Run: "npm install -g surge\n" +
					"surge ./dist ${{ env.SURGE_DOMAIN }} --token ${{ secrets.SURGE_TOKEN }}\n",
				Env: surgeToken,
			},
			{Name: "Wait for deployment", Run: "sleep 30"},
			{
				Name: "Health check",
				Run:  "curl -f https://${{ env.SURGE_DOMAIN }}/health || echo \"Health check failed\"\n",
			},
			{
				Name: "Lighthouse CI",
				Run:  "npm install -g @lhci/cli\nlhci autorun\n",
				Env:  []Var{{"LHCI_GITHUB_APP_TOKEN", "${{ secrets.LHCI_GITHUB_APP_TOKEN }}"}},
			},
			{Name: "Performance test", Run: "npm run performance-test", ContinueOnError: true},
		},
	}
}

func deployPreviewJob(features []string) Job {
	return Job{
		ID:     "deploy-preview",
		RunsOn: runner,
		Needs:  "build-and-test",
		If:     "github.event_name == 'pull_request'",
		Steps: []Step{
			checkoutStep(),
			downloadStep(),
			{
				Name: "Deploy preview to Surge",
				Run: "npm install -g surge\n" +
					"PREVIEW_DOMAIN=\"${{ env.SURGE_DOMAIN }}-pr-${{ github.event.number }}.surge.sh\"\n" +
					"surge ./dist $PREVIEW_DOMAIN --token ${{ secrets.SURGE_TOKEN }}\n" +
					"echo \"PREVIEW_URL=https://$PREVIEW_DOMAIN\" >> $GITHUB_ENV\n",
				Env: surgeToken,
			},
			{
				Name: "Comment PR",
				Uses: "actions/github-script@v7",
				With: []Var{{"script", commentScript(features)}},
			},
		},
	}
}

// commentScript is the github-script body that posts the preview link on the PR.
func commentScript(features []string) string {
	var bullets strings.Builder
	for _, f := range features {
		bullets.WriteString("- " + f + "\n")
	}

	return "const previewUrl = process.env.PREVIEW_URL;\n" +
		"github.rest.issues.createComment({\n" +
		"  issue_number: context.issue.number,\n" +
		"  owner: context.repo.owner,\n" +
		"  repo: context.repo.repo,\n" +
		"  body: `**Preview deployed successfully!**\n" +
		"\n" +
		"**Preview URL:** ${previewUrl}\n" +
		"**Main Site:** https://${{ env.SURGE_DOMAIN }}\n" +
		"**Project Type:** ${{ env.PROJECT_TYPE }}\n" +
		"\n" +
		"**Features:**\n" +
		bullets.String() +
		"\n" +
		"*This preview will be automatically cleaned up when the PR is merged.*`\n" +
		"});\n"
}
