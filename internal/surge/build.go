package surge

import (
	"strings"

	"github.com/tiation/deploygen/internal/catalog"
	"github.com/tiation/deploygen/internal/config"
	"github.com/tiation/deploygen/internal/csp"
)

const (
	cacheImmutable = "public, max-age=31536000, immutable"
	cacheDay       = "public, max-age=86400"
	cacheNone      = "no-cache, no-store, must-revalidate"
	ifNotFile      = "!file"
)

// Build assembles the hosting document for repo. It performs no I/O and depends only
// on its arguments.
func Build(repo catalog.RepositoryConfig, s config.Settings) *Document {
	features := strings.Join(repo.Features, ",")

	return &Document{
		Schema:      SchemaURL,
		Domain:      repo.Domain,
		Name:        repo.Name,
		Version:     s.Version,
		Description: repo.Description,
		Repository:  RepositoryURL(s.Organization, repo.Key),
		Author:      s.Author,
		License:     s.License,

		CORS:   true,
		HTTPS:  true,
		HTTP2:  true,
		Gzip:   true,
		Brotli: true,
		Minify: Minify{HTML: true, CSS: true, JS: true},

		Environment: Environment{
			NodeEnv:        "production",
			Platform:       "surge",
			DeploymentType: "enterprise",
			ProjectType:    repo.Type,
			Features:       features,
		},
		Rewrites:  Rewrites(repo.APIEndpoints),
		Redirects: []Redirect{
			{Source: "/old-site", Destination: "/", Type: 301},
			{Source: "/feed", Destination: "/api/rss.xml", Type: 302},
		},
		Headers: buildHeaders(repo, s.Version, features),

		CleanURLs:     true,
		TrailingSlash: false,
		Custom404:     "404.html",
		Custom500:     "500.html",
		Performance: Performance{
			Preload:  []string{"/assets/fonts/inter.woff2", "/assets/css/critical.css"},
			Prefetch: []string{"/assets/js/main.js", "/assets/css/main.css"},
		},
		SEO: SEO{
			Canonical: "https://" + repo.Domain,
			Robots:    "index,follow",
			Sitemap:   "/sitemap.xml",
		},
		Analytics:  Analytics{Provider: "custom", TrackingID: "TIATION_ANALYTICS"},
		Monitoring: Monitoring{Uptime: true, Performance: true, Security: true},
	}
}

// RepositoryURL is the GitHub URL for a catalog key under org.
func RepositoryURL(org, key string) string {
	return "https://github.com/" + org + "/" + key
}

// Rewrites returns one SPA rule per endpoint followed by the admin and catch-all rules.
func Rewrites(endpoints []string) []Rewrite {
	out := make([]Rewrite, 0, len(endpoints)+2)
	for _, ep := range endpoints {
		out = append(out, Rewrite{Source: ep + "/**", Destination: ep + "/index.html", Condition: ifNotFile})
	}
	return append(out,
		Rewrite{Source: "/admin/**", Destination: "/admin/index.html", Condition: ifNotFile},
		Rewrite{Source: "/*", Destination: "/index.html", Condition: ifNotFile},
	)
}

func buildHeaders(repo catalog.RepositoryConfig, version, features string) Headers {
	return Headers{
		{Path: "/**", Block: HeaderBlock{
			{"Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload"},
			{"X-Content-Type-Options", "nosniff"},
			{"X-Frame-Options", "SAMEORIGIN"},
			{"X-XSS-Protection", "1; mode=block"},
			{"X-DNS-Prefetch-Control", "on"},
			{"X-Robots-Tag", "index, follow"},
			{"Referrer-Policy", "strict-origin-when-cross-origin"},
			{"Feature-Policy", "geolocation 'none'; microphone 'none'; camera 'none'; payment 'none'; usb 'none'"},
			{"Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=(), usb=(), magnetometer=(), gyroscope=(), accelerometer=()"},
			{"Content-Security-Policy", csp.Join(repo.CSPAdditional)},
			{"Cache-Control", "public, max-age=1800, s-maxage=3600, stale-while-revalidate=86400"},
			{"Vary", "Accept-Encoding, Accept"},
			{"X-Powered-By", "Tiation Enterprise Platform"},
			{"X-Deployment-Version", version},
			{"X-Environment", "production"},
			{"X-Project-Type", repo.Type},
			{"X-Features", features},
		}},
		{Path: "/api/**", Block: HeaderBlock{
			{"Cache-Control", cacheNone},
			{"Content-Type", "application/json; charset=utf-8"},
			{"Access-Control-Allow-Origin", "https://" + repo.Domain},
			{"Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS"},
			{"Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With"},
			{"Access-Control-Max-Age", "86400"},
		}},
		{Path: "/static/**", Block: HeaderBlock{
			{"Cache-Control", cacheImmutable},
			{"Access-Control-Allow-Origin", "*"},
		}},
		{Path: "/assets/**", Block: HeaderBlock{
			{"Cache-Control", cacheImmutable},
			{"Access-Control-Allow-Origin", "*"},
			{"Cross-Origin-Resource-Policy", "cross-origin"},
		}},
		{Path: "/*.css", Block: HeaderBlock{
			{"Cache-Control", cacheImmutable},
			{"Content-Type", "text/css; charset=utf-8"},
		}},
		{Path: "/*.js", Block: HeaderBlock{
			{"Cache-Control", cacheImmutable},
			{"Content-Type", "application/javascript; charset=utf-8"},
		}},
		{Path: "/*.woff2", Block: HeaderBlock{
			{"Cache-Control", cacheImmutable},
			{"Content-Type", "font/woff2"},
			{"Access-Control-Allow-Origin", "*"},
		}},
		{Path: "/*.woff", Block: HeaderBlock{
			{"Cache-Control", cacheImmutable},
			{"Content-Type", "font/woff"},
			{"Access-Control-Allow-Origin", "*"},
		}},
		{Path: "/*.webp", Block: HeaderBlock{
			{"Cache-Control", cacheImmutable},
			{"Content-Type", "image/webp"},
		}},
		{Path: "/*.webm", Block: HeaderBlock{
			{"Cache-Control", cacheImmutable},
			{"Content-Type", "video/webm"},
		}},
		{Path: "/sitemap.xml", Block: HeaderBlock{
			{"Cache-Control", cacheDay},
			{"Content-Type", "application/xml; charset=utf-8"},
		}},
		{Path: "/robots.txt", Block: HeaderBlock{
			{"Cache-Control", cacheDay},
			{"Content-Type", "text/plain; charset=utf-8"},
		}},
		{Path: "/manifest.json", Block: HeaderBlock{
			{"Cache-Control", cacheDay},
			{"Content-Type", "application/manifest+json; charset=utf-8"},
		}},
		{Path: "/sw.js", Block: HeaderBlock{
			{"Cache-Control", cacheNone},
			{"Content-Type", "application/javascript; charset=utf-8"},
		}},
	}
}

// CSP returns the Content-Security-Policy value of the catch-all header block.
func (d *Document) CSP() string {
	if b, ok := d.Headers.Get("/**"); ok {
		v, _ := b.Get("Content-Security-Policy")
		return v
	}
	return ""
}
