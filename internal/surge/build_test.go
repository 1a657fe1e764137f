package surge

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiation/deploygen/internal/catalog"
	"github.com/tiation/deploygen/internal/config"
	"github.com/tiation/deploygen/internal/csp"
)

func lookup(t *testing.T, key string) catalog.RepositoryConfig {
	t.Helper()
	r, err := catalog.Builtin().Lookup(key)
	require.NoError(t, err)
	return r
}

func objectKeys(t *testing.T, data []byte) []string {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	require.NoError(t, err)
	require.Equal(t, json.Delim('{'), tok)

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, tok.(string))
		var skip json.RawMessage
		require.NoError(t, dec.Decode(&skip))
	}
	return keys
}

func TestBuild_RewriteOrderForEveryKey(t *testing.T) {
	for _, repo := range catalog.Builtin().All() {
		t.Run(repo.Key, func(t *testing.T) {
			doc := Build(repo, config.Default())
			n := len(repo.APIEndpoints)
			require.Len(t, doc.Rewrites, n+2)
			for i, ep := range repo.APIEndpoints {
				assert.Equal(t, Rewrite{Source: ep + "/**", Destination: ep + "/index.html", Condition: "!file"}, doc.Rewrites[i])
			}
			assert.Equal(t, "/admin/**", doc.Rewrites[n].Source)
			assert.Equal(t, "/*", doc.Rewrites[n+1].Source)
			assert.Equal(t, "/index.html", doc.Rewrites[n+1].Destination)
		})
	}
}

func TestBuild_CSPEndsWithFragmentForEveryKey(t *testing.T) {
	for _, repo := range catalog.Builtin().All() {
		t.Run(repo.Key, func(t *testing.T) {
			value := Build(repo, config.Default()).CSP()
			assert.True(t, strings.HasSuffix(value, repo.CSPAdditional))
			assert.True(t, strings.HasPrefix(value, csp.Baseline))
			assert.Greater(t, len(value), len(csp.Baseline))
		})
	}
}

func TestBuild_DiceRollerSimulator(t *testing.T) {
	doc := Build(lookup(t, "DiceRollerSimulator"), config.Default())

	assert.Equal(t, "tiation-dice-roller.surge.sh", doc.Domain)
	assert.Equal(t, "https://github.com/tiation/DiceRollerSimulator", doc.Repository)
	var sources []string
	for _, r := range doc.Rewrites {
		sources = append(sources, r.Source)
	}
	assert.Equal(t, []string{"/api/rolls/**", "/api/stats/**", "/api/history/**", "/admin/**", "/*"}, sources)
	assert.True(t, strings.HasSuffix(doc.CSP(), "worker-src blob: https://cdn.tiation.com;"))
	assert.Equal(t, "3d-graphics,statistics,dark-theme,real-time", doc.Environment.Features)

	api, ok := doc.Headers.Get("/api/**")
	require.True(t, ok)
	origin, _ := api.Get("Access-Control-Allow-Origin")
	assert.Equal(t, "https://tiation-dice-roller.surge.sh", origin)
	assert.Equal(t, "https://tiation-dice-roller.surge.sh", doc.SEO.Canonical)
}

func TestBuild_SettingsFlowIntoDocument(t *testing.T) {
	s := config.Default()
	s.Organization = "acme"
	s.Version = "2.0.0"
	s.License = "Apache-2.0"

	doc := Build(lookup(t, "tiation-cms"), s)
	assert.Equal(t, "https://github.com/acme/tiation-cms", doc.Repository)
	assert.Equal(t, "2.0.0", doc.Version)
	assert.Equal(t, "Apache-2.0", doc.License)
	all, _ := doc.Headers.Get("/**")
	v, _ := all.Get("X-Deployment-Version")
	assert.Equal(t, "2.0.0", v)
}

func TestBuild_HeaderPathOrder(t *testing.T) {
	doc := Build(lookup(t, "tiation-go-sdk"), config.Default())
	assert.Equal(t, []string{
		"/**", "/api/**", "/static/**", "/assets/**",
		"/*.css", "/*.js", "/*.woff2", "/*.woff", "/*.webp", "/*.webm",
		"/sitemap.xml", "/robots.txt", "/manifest.json", "/sw.js",
	}, doc.Headers.Paths())
}

func TestRender_KeyOrderAndFormatting(t *testing.T) {
	out, err := Render(Build(lookup(t, "tiation-cms"), config.Default()))
	require.NoError(t, err)

	assert.True(t, bytes.HasSuffix(out, []byte("}\n")))
	assert.True(t, bytes.HasPrefix(out, []byte("{\n  \"$schema\": \"https://surge.sh/schema.json\",\n")))
	assert.Equal(t, []string{
		"$schema", "domain", "name", "version", "description", "repository", "author", "license",
		"cors", "https", "http2", "gzip", "brotli", "minify",
		"environment", "rewrites", "redirects", "headers",
		"cleanUrls", "trailing_slash", "custom_404", "custom_500",
		"performance", "seo", "analytics", "monitoring",
	}, objectKeys(t, out))

	var parsed struct {
		Headers json.RawMessage `json:"headers"`
	}
	require.NoError(t, json.Unmarshal(out, &parsed))
	assert.Equal(t, Build(lookup(t, "tiation-cms"), config.Default()).Headers.Paths(), objectKeys(t, parsed.Headers))

	// Single quotes in the CSP must survive unescaped.
	assert.Contains(t, string(out), "default-src 'self';")
	assert.NotContains(t, string(out), `\u00`)
}

func TestRender_Deterministic(t *testing.T) {
	for _, key := range catalog.Builtin().Keys() {
		a, err := Render(Build(lookup(t, key), config.Default()))
		require.NoError(t, err)
		b, err := Render(Build(lookup(t, key), config.Default()))
		require.NoError(t, err)
		assert.Equal(t, a, b, key)
	}
}
