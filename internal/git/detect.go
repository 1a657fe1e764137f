package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/tiation/deploygen/internal/catalog"
	derrors "github.com/tiation/deploygen/internal/errors"
)

// RemoteName is the remote consulted for detection.
const RemoteName = "origin"

// Origin describes the remote a key was detected from.
type Origin struct {
	URL   string
	Owner string
	Repo  string
}

// ErrNoRemoteURL is returned when origin has no URL that names a repository.
var ErrNoRemoteURL = errors.New("origin remote has no parseable URL")

// ReadOrigin opens the repository containing dir (walking up to the .git directory)
// and parses its origin URL.
func ReadOrigin(dir string) (Origin, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Origin{}, derrors.GitDetectFailed(dir, fmt.Errorf("open repository: %w", err))
	}
	remote, err := repo.Remote(RemoteName)
	if err != nil {
		return Origin{}, derrors.GitDetectFailed(dir, fmt.Errorf("remote %s: %w", RemoteName, err))
	}
	for _, u := range remote.Config().URLs {
		if owner, name, ok := ParseRemoteURL(u); ok {
			return Origin{URL: u, Owner: owner, Repo: name}, nil
		}
	}
	return Origin{}, derrors.GitDetectFailed(dir, ErrNoRemoteURL)
}

// DetectKey returns the catalog key whose name matches the origin repository. An exact
// match wins; otherwise a single case-insensitive match is accepted, since hosts treat
// repository names case-insensitively.
func DetectKey(dir string, cat *catalog.Catalog) (string, Origin, error) {
	origin, err := ReadOrigin(dir)
	if err != nil {
		return "", Origin{}, err
	}
	if cat.Has(origin.Repo) {
		return origin.Repo, origin, nil
	}

	var matches []string
	for _, k := range cat.Keys() {
		if strings.EqualFold(k, origin.Repo) {
			matches = append(matches, k)
		}
	}
	if len(matches) == 1 {
		return matches[0], origin, nil
	}
	return "", origin, derrors.RepositoryNotFound(origin.Repo, catalog.ErrNotFound).
		WithContext("remote", origin.URL)
}
