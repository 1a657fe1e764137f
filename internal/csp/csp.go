// Package csp assembles the Content-Security-Policy header value served for every
// generated site and inspects policies for directives that browsers will ignore.
package csp

import "strings"

// Baseline is the policy every site starts from. Repository fragments are appended to it.
const Baseline = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline' 'unsafe-eval' https://cdn.jsdelivr.net https://unpkg.com; " +
	"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com https://cdn.jsdelivr.net; " +
	"font-src 'self' data: https://fonts.gstatic.com https://cdn.jsdelivr.net; " +
	"img-src 'self' data: https: blob:; " +
	"media-src 'self' https: blob:; " +
	"object-src 'none'; " +
	"frame-src 'self' https://www.youtube.com https://player.vimeo.com; " +
	"connect-src 'self' https: wss: ws:; " +
	"worker-src 'self' blob:; " +
	"manifest-src 'self'; " +
	"base-uri 'self'; " +
	"form-action 'self';"

// Join appends fragment to Baseline separated by a single space. The fragment is not
// parsed, merged or deduplicated.
func Join(fragment string) string {
	return Baseline + " " + fragment
}

// Directive is one parsed policy directive.
type Directive struct {
	Name    string
	Sources []string
}

// Parse splits a policy into directives. Names are lowercased; empty segments are skipped.
func Parse(policy string) []Directive {
	var out []Directive
	for _, seg := range strings.Split(policy, ";") {
		fields := strings.Fields(seg)
		if len(fields) == 0 {
			continue
		}
		out = append(out, Directive{
			Name:    strings.ToLower(fields[0]),
			Sources: fields[1:],
		})
	}
	return out
}

// Duplicates lists directive names that appear more than once, in the order their
// second occurrence is seen.
func Duplicates(policy string) []string {
	seen := make(map[string]int)
	var dups []string
	for _, d := range Parse(policy) {
		seen[d.Name]++
		if seen[d.Name] == 2 {
			dups = append(dups, d.Name)
		}
	}
	return dups
}

// Effective returns the directives a CSP Level 3 user agent enforces. The first
// occurrence of a name wins and later repeats are ignored.
func Effective(policy string) map[string][]string {
	out := make(map[string][]string)
	for _, d := range Parse(policy) {
		if _, ok := out[d.Name]; ok {
			continue
		}
		out[d.Name] = d.Sources
	}
	return out
}
