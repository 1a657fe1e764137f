package catalog

import "sync"

var builtinRecords = []RepositoryConfig{
	{
		Key:           "tough-talk-podcast-chaos",
		Name:          "tiation-tough-talk-podcast",
		Domain:        "tiation-tough-talk.surge.sh",
		Description:   "Enterprise-grade podcast platform with advanced dark neon UI and comprehensive security",
		Type:          "podcast-platform",
		Features:      []string{"audio-streaming", "dark-theme", "responsive-design", "analytics"},
		APIEndpoints:  []string{"/api/episodes", "/api/rss", "/api/analytics"},
		CSPAdditional: "media-src https://cdn.tiation.com https://audio.tiation.com;",
	},
	{
		Key:           "DiceRollerSimulator",
		Name:          "tiation-dice-roller",
		Domain:        "tiation-dice-roller.surge.sh",
		Description:   "Advanced dice rolling simulator with 3D graphics and statistical analysis",
		Type:          "gaming-tool",
		Features:      []string{"3d-graphics", "statistics", "dark-theme", "real-time"},
		APIEndpoints:  []string{"/api/rolls", "/api/stats", "/api/history"},
		CSPAdditional: "worker-src blob: https://cdn.tiation.com;",
	},
	{
		Key:           "dice-roller-marketing-site",
		Name:          "tiation-dice-marketing",
		Domain:        "tiation-dice-marketing.surge.sh",
		Description:   "Marketing website for dice roller simulator with SaaS integration",
		Type:          "marketing-site",
		Features:      []string{"saas-integration", "payment-processing", "dark-theme", "conversion-tracking"},
		APIEndpoints:  []string{"/api/pricing", "/api/payments", "/api/leads"},
		CSPAdditional: "frame-src https://js.stripe.com https://checkout.stripe.com;",
	},
	{
		Key:           "tiation-ai-agents",
		Name:          "tiation-ai-agents",
		Domain:        "tiation-ai-agents.surge.sh",
		Description:   "AI-powered automation agents with enterprise-grade security and monitoring",
		Type:          "ai-platform",
		Features:      []string{"ai-integration", "automation", "monitoring", "enterprise-security"},
		APIEndpoints:  []string{"/api/agents", "/api/workflows", "/api/monitoring"},
		CSPAdditional: "connect-src https://api.openai.com https://api.anthropic.com;",
	},
	{
		Key:           "tiation-chase-white-rabbit-ngo",
		Name:          "tiation-white-rabbit-ngo",
		Domain:        "tiation-white-rabbit.surge.sh",
		Description:   "NGO platform for social impact with donation processing and campaign management",
		Type:          "ngo-platform",
		Features:      []string{"donation-processing", "campaign-management", "social-impact", "transparency"},
		APIEndpoints:  []string{"/api/donations", "/api/campaigns", "/api/impact"},
		CSPAdditional: "frame-src https://js.stripe.com https://www.paypal.com;",
	},
	{
		Key:           "tiation-cms",
		Name:          "tiation-cms",
		Domain:        "tiation-cms.surge.sh",
		Description:   "Enterprise content management system with advanced editing and workflow capabilities",
		Type:          "cms-platform",
		Features:      []string{"content-management", "workflow", "collaboration", "version-control"},
		APIEndpoints:  []string{"/api/content", "/api/workflow", "/api/users"},
		CSPAdditional: "img-src * data: blob:; media-src * blob:;",
	},
	{
		Key:           "tiation-docker-debian",
		Name:          "tiation-docker-debian",
		Domain:        "tiation-docker-debian.surge.sh",
		Description:   "Docker on Debian deployment guide with enterprise architecture and security",
		Type:          "documentation-site",
		Features:      []string{"documentation", "code-examples", "architecture-diagrams", "security-guides"},
		APIEndpoints:  []string{"/api/docs", "/api/examples", "/api/feedback"},
		CSPAdditional: "img-src * data:; frame-src https://github.com https://gist.github.com;",
	},
	{
		Key:           "tiation-economic-reform-proposal",
		Name:          "tiation-economic-reform",
		Domain:        "tiation-economic-reform.surge.sh",
		Description:   "Economic reform proposal platform with interactive data visualization and policy analysis",
		Type:          "policy-platform",
		Features:      []string{"data-visualization", "policy-analysis", "interactive-charts", "research-tools"},
		APIEndpoints:  []string{"/api/data", "/api/analysis", "/api/feedback"},
		CSPAdditional: "script-src 'self' https://d3js.org https://cdn.plot.ly;",
	},
	{
		Key:           "tiation-go-sdk",
		Name:          "tiation-go-sdk",
		Domain:        "tiation-go-sdk.surge.sh",
		Description:   "Go SDK documentation and examples with interactive code playground",
		Type:          "developer-tools",
		Features:      []string{"code-playground", "documentation", "examples", "api-reference"},
		APIEndpoints:  []string{"/api/docs", "/api/playground", "/api/examples"},
		CSPAdditional: "script-src 'self' 'unsafe-eval' https://cdn.jsdelivr.net;",
	},
	{
		Key:           "tiation-parrot-security-guide-au",
		Name:          "tiation-parrot-security",
		Domain:        "tiation-parrot-security.surge.sh",
		Description:   "Parrot Security OS guide for Australian cybersecurity professionals",
		Type:          "security-guide",
		Features:      []string{"security-tools", "documentation", "tutorials", "compliance-guides"},
		APIEndpoints:  []string{"/api/tools", "/api/tutorials", "/api/compliance"},
		CSPAdditional: "img-src * data:; frame-src https://www.youtube.com https://asciinema.org;",
	},
	{
		Key:           "tiation-terminal-workflows",
		Name:          "tiation-terminal-workflows",
		Domain:        "tiation-terminal-workflows.surge.sh",
		Description:   "Enterprise terminal workflows and automation scripts with interactive demonstrations",
		Type:          "developer-tools",
		Features:      []string{"workflow-automation", "interactive-demos", "code-examples", "productivity-tools"},
		APIEndpoints:  []string{"/api/workflows", "/api/scripts", "/api/demos"},
		CSPAdditional: "script-src 'self' 'unsafe-eval' https://cdn.jsdelivr.net https://unpkg.com;",
	},
	{
		Key:           "ubuntu-dev-setup",
		Name:          "tiation-ubuntu-dev",
		Domain:        "tiation-ubuntu-dev.surge.sh",
		Description:   "Ubuntu development environment setup guide with automated installation scripts",
		Type:          "setup-guide",
		Features:      []string{"setup-automation", "documentation", "script-generation", "environment-management"},
		APIEndpoints:  []string{"/api/setup", "/api/scripts", "/api/environments"},
		CSPAdditional: "img-src * data:; frame-src https://github.com https://gist.github.com;",
	},
}

var (
	builtinOnce sync.Once
	builtin     *Catalog
)

// Builtin returns the static catalog compiled into the binary.
func Builtin() *Catalog {
	builtinOnce.Do(func() {
		c, err := New(builtinRecords)
		if err != nil {
			panic("catalog: invalid builtin table: " + err.Error())
		}
		builtin = c
	})
	return builtin
}
