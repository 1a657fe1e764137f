package git

import (
	"net/url"
	"regexp"
	"strings"
)

// validNamePattern matches valid owner/repo names: [A-Za-z0-9_.-]+
var validNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

// ParseRemoteURL extracts owner and repository name from a remote URL.
// Supports:
//   - scp-like: git@github.com:owner/repo.git
//   - https/http: https://github.com/owner/repo.git
//   - ssh/git: ssh://git@github.com/owner/repo.git
//
// Any host is accepted; only the last two path segments are used.
func ParseRemoteURL(raw string) (owner, repo string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", false
	}

	if owner, repo, ok = parseScpLike(raw); ok {
		return owner, repo, true
	}
	if owner, repo, ok = parseURL(raw); ok {
		return owner, repo, true
	}
	return "", "", false
}

// parseScpLike parses user@host:owner/repo.git format.
func parseScpLike(raw string) (owner, repo string, ok bool) {
	if strings.Contains(raw, "://") {
		return "", "", false
	}
	atIdx := strings.Index(raw, "@")
	colonIdx := strings.Index(raw, ":")
	if atIdx < 0 || colonIdx <= atIdx+1 {
		return "", "", false
	}
	return parseOwnerRepo(raw[colonIdx+1:])
}

func parseURL(raw string) (owner, repo string, ok bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", "", false
	}
	switch u.Scheme {
	case "https", "http", "ssh", "git":
	default:
		return "", "", false
	}
	return parseOwnerRepo(strings.TrimPrefix(u.Path, "/"))
}

// parseOwnerRepo extracts owner/repo from a path like "owner/repo.git" or "group/sub/repo".
func parseOwnerRepo(path string) (owner, repo string, ok bool) {
	path = strings.TrimSuffix(strings.TrimSuffix(path, "/"), ".git")

	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return "", "", false
	}
	owner = parts[len(parts)-2]
	repo = parts[len(parts)-1]

	if owner == "" || repo == "" {
		return "", "", false
	}
	if !validNamePattern.MatchString(owner) || !validNamePattern.MatchString(repo) {
		return "", "", false
	}
	return owner, repo, true
}
