package release

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/relbump/internal/config"
	"github.com/raveheart1/relbump/internal/errors"
)

var testDate = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		MetadataPath:   "metadata.json",
		ChangelogPath:  "Versioning.md",
		Remote:         "origin",
		ReleaseMarker:  "chore(release):",
		BotName:        "github-actions",
		BotEmail:       "github-actions@github.com",
		PlaceholderURL: "https://github.com/owner/repo",
	}
}

// initRepo creates an on-disk repository with a metadata file and an
// initial non-conventional commit.
func initRepo(t *testing.T, version string) (string, *git.Repository) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	metadataPath := filepath.Join(dir, "metadata.json")
	content := fmt.Sprintf(`{"name": "widget", "version": "%s"}`, version)
	require.NoError(t, os.WriteFile(metadataPath, []byte(content), 0o644))
	addCommit(t, repo, dir, "metadata.json", "initial import")

	return dir, repo
}

// addCommit stages the named file (creating it if needed) and commits.
func addCommit(t *testing.T, repo *git.Repository, dir, name, message string) {
	t.Helper()

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		require.NoError(t, os.WriteFile(path, []byte(message), 0o644))
	}
	_, err = worktree.Add(name)
	require.NoError(t, err)

	_, err = worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "dev", Email: "dev@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}

// touch commits a throwaway file with the given message.
func touch(t *testing.T, repo *git.Repository, dir, message string) {
	t.Helper()
	name := fmt.Sprintf("work-%d.txt", time.Now().UnixNano())
	addCommit(t, repo, dir, name, message)
}

func newTestRunner(cfg *config.Config, out *bytes.Buffer) *Runner {
	runner := NewRunner(cfg, out)
	runner.SetClock(func() time.Time { return testDate })
	return runner
}

func TestRun_NoRelevantChanges(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t, "1.4.2")
	touch(t, repo, dir, "chore: update dependencies")

	var out bytes.Buffer
	err := newTestRunner(testConfig(), &out).Run(dir, false)
	require.NoError(t, err)

	assert.Contains(t, out.String(), NoChangesMessage)

	// Nothing mutated.
	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"1.4.2"`)
	assert.NoFileExists(t, filepath.Join(dir, "Versioning.md"))
}

func TestRun_PatchRelease(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t, "1.4.2")
	touch(t, repo, dir, "fix: null pointer on empty input")

	var out bytes.Buffer
	err := newTestRunner(testConfig(), &out).Run(dir, false)
	require.NoError(t, err)

	// Metadata bumped and round-trips.
	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "1.4.3"`)

	// Changelog section prepended with a patch-depth heading; the entry
	// links through the placeholder URL since no remote is configured.
	log, err := os.ReadFile(filepath.Join(dir, "Versioning.md"))
	require.NoError(t, err)
	assert.Contains(t, string(log), "## 1.4.3 (2026-08-25)")
	assert.Contains(t, string(log), "### Bug Fixes")
	assert.Contains(t, string(log), "* null pointer on empty input")
	assert.Contains(t, string(log), "https://github.com/owner/repo/commit/")

	// Release commit created with the bot identity and skip-ci marker.
	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "chore(release): 1.4.3 [skip ci]", commit.Message)
	assert.Equal(t, "github-actions", commit.Author.Name)
}

func TestRun_MinorRelease(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t, "1.4.2")
	touch(t, repo, dir, "feat: add pagination")
	touch(t, repo, dir, "fix: off by one")

	var out bytes.Buffer
	err := newTestRunner(testConfig(), &out).Run(dir, false)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "1.5.0"`)

	log, err := os.ReadFile(filepath.Join(dir, "Versioning.md"))
	require.NoError(t, err)
	assert.Contains(t, string(log), "# 1.5.0 (2026-08-25)")
	assert.Contains(t, string(log), "### Features")
	assert.Contains(t, string(log), "### Bug Fixes")
}

func TestRun_MajorRelease(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t, "1.4.2")
	touch(t, repo, dir, "feat(api)!: remove legacy endpoint")

	var out bytes.Buffer
	err := newTestRunner(testConfig(), &out).Run(dir, false)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "2.0.0"`)

	log, err := os.ReadFile(filepath.Join(dir, "Versioning.md"))
	require.NoError(t, err)
	assert.Contains(t, string(log), "# 2.0.0 (2026-08-25)")
	assert.Contains(t, string(log), "### Breaking Changes")
	assert.NotContains(t, string(log), "### Features")
}

func TestRun_MarkerBoundsHistoryWindow(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t, "1.4.2")
	touch(t, repo, dir, "feat: released already")
	touch(t, repo, dir, "chore(release): 1.4.2 [skip ci]")
	touch(t, repo, dir, "fix: fresh bug fix")

	var out bytes.Buffer
	err := newTestRunner(testConfig(), &out).Run(dir, false)
	require.NoError(t, err)

	// The pre-marker feat must not raise the bump to minor.
	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "1.4.3"`)

	log, err := os.ReadFile(filepath.Join(dir, "Versioning.md"))
	require.NoError(t, err)
	assert.NotContains(t, string(log), "released already")
}

func TestRun_MissingMetadataIsPrerequisiteError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	touch(t, repo, dir, "fix: something")

	var out bytes.Buffer
	err = newTestRunner(testConfig(), &out).Run(dir, false)
	require.Error(t, err)

	cliErr := errors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, errors.Prerequisite, cliErr.Category)
	assert.Contains(t, cliErr.Message, "metadata.json")
}

func TestRun_NotARepository(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := newTestRunner(testConfig(), &out).Run(t.TempDir(), false)
	assert.Error(t, err)
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t, "1.4.2")
	touch(t, repo, dir, "feat: add pagination")

	headBefore, err := repo.Head()
	require.NoError(t, err)

	var out bytes.Buffer
	err = newTestRunner(testConfig(), &out).Run(dir, true)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Bumping")
	assert.Contains(t, out.String(), "1.5.0")
	assert.Contains(t, out.String(), "Dry run: nothing written.")

	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"1.4.2"`)
	assert.NoFileExists(t, filepath.Join(dir, "Versioning.md"))

	headAfter, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, headBefore.Hash(), headAfter.Hash())
}

func TestRun_RemoteURLUsedInEntries(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t, "0.3.1")
	_, err := repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:acme/widget.git"},
	})
	require.NoError(t, err)
	touch(t, repo, dir, "fix: resolve links")

	var out bytes.Buffer
	err = newTestRunner(testConfig(), &out).Run(dir, false)
	require.NoError(t, err)

	log, err := os.ReadFile(filepath.Join(dir, "Versioning.md"))
	require.NoError(t, err)
	assert.Contains(t, string(log), "https://github.com/acme/widget/commit/")
}
