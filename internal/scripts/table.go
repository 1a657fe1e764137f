// Package scripts produces the package.json "scripts" entries for a repository and
// merges them into an existing manifest without disturbing anything else in it.
package scripts

import "github.com/tiation/deploygen/internal/catalog"

// Entry is one named npm script.
type Entry struct {
	Name    string
	Command string
}

// Table is an ordered list of script entries.
type Table []Entry

// Get returns the command registered under name.
func (t Table) Get(name string) (string, bool) {
	for _, e := range t {
		if e.Name == name {
			return e.Command, true
		}
	}
	return "", false
}

// Names returns the script names in table order.
func (t Table) Names() []string {
	out := make([]string, len(t))
	for i, e := range t {
		out[i] = e.Name
	}
	return out
}

// Build returns the script table for repo. Commands are not checked for shell syntax.
func Build(repo catalog.RepositoryConfig) Table {
	d := repo.Domain
	return Table{
		{"dev", "vite"},
		{"build", "vite build"},
		{"build:dev", "vite build --mode development"},
		{"build:prod", "vite build --mode production"},
		{"build:analyze", "vite build --mode production --report"},
		{"lint", "eslint ."},
		{"lint:fix", "eslint . --fix"},
		{"test", "vitest"},
		{"test:coverage", "vitest --coverage"},
		{"preview", "vite preview"},
		{"deploy", "npm run build && gh-pages -d dist"},
		{"deploy:netlify", "npm run build && npx netlify-cli deploy --prod --dir dist"},
		{"deploy:surge", "npm run build:prod && npx surge dist --domain " + d},
		{"deploy:surge:custom", "npm run build:prod && npx surge dist"},
		{"deploy:all", "npm run deploy:surge && npm run deploy"},
		{"predeploy", "npm run lint && npm run test && npm run build:prod"},
		{"postdeploy", "npm run health-check"},
		{"surge:login", "npx surge login"},
		{"surge:whoami", "npx surge whoami"},
		{"surge:list", "npx surge list"},
		{"surge:teardown", "npx surge teardown " + d},
		{"health-check", "curl -f https://" + d + "/health || exit 1"},
		{"lighthouse", "npx lighthouse https://" + d + " --output html --output-path ./lighthouse-report.html"},
		{"security-scan", "npx audit-ci --config .audit-ci.json"},
		{"performance-test", "npx pagespeed-insights https://" + d},
	}
}
