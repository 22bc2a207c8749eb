// Package gitrepo provides the git access relbump needs: opening the
// repository, collecting history since the last release marker, resolving
// the web-facing remote URL, and creating the release commit. It uses the
// go-git library throughout, so no git CLI installation is required.
package gitrepo

import (
	"fmt"
	neturl "net/url"
	"os"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/raveheart1/relbump/internal/classify"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default it's a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Open opens the git repository at path, or the current working directory
// when path is empty. DetectDotGit traverses up to find the repo root.
func Open(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// Root returns the absolute path to the repository worktree root.
func Root(repo *git.Repository) (string, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}

// CommitsSince walks history from HEAD, newest first, and returns every
// commit up to (exclusive) the most recent one whose message contains
// marker. With no marker commit the entire history is returned. A
// repository without commits yields an empty slice, not an error.
func CommitsSince(repo *git.Repository, marker string) ([]classify.Commit, error) {
	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		logDebug("[git] no commit history: %v", err)
		return nil, nil
	}
	defer iter.Close()

	var commits []classify.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if marker != "" && strings.Contains(c.Message, marker) {
			return storer.ErrStop
		}
		subject, _, _ := strings.Cut(c.Message, "\n")
		commits = append(commits, classify.Commit{
			Subject: strings.TrimSpace(subject),
			Message: c.Message,
			Hash:    c.Hash.String(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}

	logDebug("[git] CommitsSince: %d commits since marker %q", len(commits), marker)
	return commits, nil
}

// RemoteURL returns the normalized web URL of the named remote.
func RemoteURL(repo *git.Repository, name string) (string, error) {
	remote, err := repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("remote %q: %w", name, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 || strings.TrimSpace(urls[0]) == "" {
		return "", fmt.Errorf("remote %q has no URL", name)
	}
	return NormalizeRemoteURL(urls[0]), nil
}

// NormalizeRemoteURL converts SSH-style and ".git"-suffixed remote URLs
// into the canonical "https://host/owner/repo" form. URLs that cannot be
// reduced to host/owner/repo are returned with only the suffix and scheme
// normalization applied.
func NormalizeRemoteURL(raw string) string {
	url := strings.TrimSuffix(strings.TrimSpace(raw), ".git")

	switch {
	case strings.HasPrefix(url, "git@"):
		// SCP-style: git@host:owner/repo
		url = "https://" + strings.Replace(strings.TrimPrefix(url, "git@"), ":", "/", 1)
	case strings.HasPrefix(url, "ssh://"):
		url = "https://" + strings.TrimPrefix(strings.TrimPrefix(url, "ssh://"), "git@")
	}
	url = strings.TrimRight(url, "/")

	parsed, err := neturl.Parse(url)
	if err != nil || parsed.Host == "" {
		return url
	}

	// Strip a port left over from ssh:// forms.
	host := parsed.Hostname()
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 {
		return url
	}
	owner := segments[len(segments)-2]
	repo := segments[len(segments)-1]
	return fmt.Sprintf("https://%s/%s/%s", host, owner, repo)
}

// SetIdentity writes the bot identity into the repository config. This is
// a fire-and-forget operation: failures are debug-logged and discarded so
// the release run never aborts here.
func SetIdentity(repo *git.Repository, name, email string) {
	cfg, err := repo.Config()
	if err != nil {
		logDebug("[git] reading config: %v", err)
		return
	}
	cfg.User.Name = name
	cfg.User.Email = email
	if err := repo.SetConfig(cfg); err != nil {
		logDebug("[git] setting identity: %v", err)
	}
}

// CommitRelease stages files (paths relative to the worktree root) and
// creates the release commit with the bot author identity. Like
// SetIdentity this is fire-and-forget; errors are debug-logged only.
func CommitRelease(repo *git.Repository, files []string, message, name, email string) {
	worktree, err := repo.Worktree()
	if err != nil {
		logDebug("[git] getting worktree: %v", err)
		return
	}

	for _, f := range files {
		if _, err := worktree.Add(f); err != nil {
			logDebug("[git] staging %s: %v", f, err)
		}
	}

	_, err = worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: name, Email: email, When: time.Now()},
	})
	if err != nil {
		logDebug("[git] creating release commit: %v", err)
		return
	}
	logDebug("[git] created release commit: %s", message)
}
