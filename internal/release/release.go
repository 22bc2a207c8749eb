// Package release orchestrates one release run: collect history since the
// last release marker, classify it, bump the version, persist metadata and
// changelog, and create the release commit. Data flows one way with no
// state kept between runs.
package release

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"

	"github.com/raveheart1/relbump/internal/changelog"
	"github.com/raveheart1/relbump/internal/classify"
	"github.com/raveheart1/relbump/internal/config"
	"github.com/raveheart1/relbump/internal/errors"
	"github.com/raveheart1/relbump/internal/gitrepo"
	"github.com/raveheart1/relbump/internal/metadata"
	"github.com/raveheart1/relbump/internal/output"
	"github.com/raveheart1/relbump/internal/semver"
)

// NoChangesMessage is printed on the deliberate no-op path.
const NoChangesMessage = "No relevant changes detected. Skipping release."

// Runner executes release runs against one repository.
type Runner struct {
	cfg *config.Config
	out io.Writer
	now func() time.Time
}

// NewRunner creates a Runner writing status output to out.
func NewRunner(cfg *config.Config, out io.Writer) *Runner {
	return &Runner{cfg: cfg, out: out, now: time.Now}
}

// SetClock overrides the date source for the changelog heading.
func (r *Runner) SetClock(now func() time.Time) {
	r.now = now
}

// Run performs a release for the repository at repoPath (or the current
// directory when empty). With dryRun the bump decision and rendered
// section are printed but nothing is written or committed.
//
// A zero overall level is not an error: the run reports the no-op and
// returns nil so the process exits 0. A missing metadata file returns a
// prerequisite error, which the CLI maps to exit status 1.
func (r *Runner) Run(repoPath string, dryRun bool) error {
	repo, err := gitrepo.Open(repoPath)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "opening repository",
			"Run relbump inside a git repository, or pass --repo")
	}
	root, err := gitrepo.Root(repo)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "resolving repository root")
	}

	store := metadata.Store{Path: resolvePath(root, r.cfg.MetadataPath)}
	doc, err := store.Load()
	if err != nil {
		return err
	}
	current, err := semver.Parse(doc.Version)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Configuration, "parsing metadata version")
	}

	// URL resolution failure degrades to the placeholder, never aborts.
	repoURL, err := gitrepo.RemoteURL(repo, r.cfg.Remote)
	if err != nil {
		output.PrintWarning(r.out, "could not resolve repository URL (%v), using placeholder", err)
		repoURL = r.cfg.PlaceholderURL
	}

	commits, err := gitrepo.CommitsSince(repo, r.cfg.ReleaseMarker)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "collecting history")
	}

	result := classify.Classify(commits, repoURL)
	if result.Level == classify.LevelNone {
		fmt.Fprintln(r.out, NoChangesMessage)
		return nil
	}

	next := nextVersion(current, result.Level)
	output.PrintBump(r.out, current.String(), next.String(), result.Level.String())

	var section string
	if result.HasEntries() {
		section = changelog.RenderSection(next.String(), r.now(), result.Level, result.Entries)
	}

	if dryRun {
		if section != "" {
			output.PrintSectionPreview(r.out, section)
		}
		fmt.Fprintln(r.out, "Dry run: nothing written.")
		return nil
	}

	if err := store.Write(doc, next.String()); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "persisting metadata")
	}

	changelogPath := resolvePath(root, r.cfg.ChangelogPath)
	if section != "" {
		if err := changelog.Prepend(changelogPath, section); err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "updating changelog")
		}
	}

	r.commitRelease(repo, root, next)
	output.PrintSuccess(r.out, fmt.Sprintf("Released %s", next))
	return nil
}

// commitRelease configures the bot identity, stages the two touched files,
// and creates the release commit. All three calls are fire-and-forget: a
// failure leaves the working tree dirty but the release itself done.
func (r *Runner) commitRelease(repo *git.Repository, root string, next semver.Version) {
	gitrepo.SetIdentity(repo, r.cfg.BotName, r.cfg.BotEmail)

	files := make([]string, 0, 2)
	for _, p := range []string{r.cfg.MetadataPath, r.cfg.ChangelogPath} {
		rel, err := filepath.Rel(root, resolvePath(root, p))
		if err != nil {
			continue
		}
		files = append(files, rel)
	}

	message := fmt.Sprintf("%s %s [skip ci]", r.cfg.ReleaseMarker, next)
	gitrepo.CommitRelease(repo, files, message, r.cfg.BotName, r.cfg.BotEmail)
}

// nextVersion applies the bump decision table.
func nextVersion(v semver.Version, level classify.Level) semver.Version {
	switch level {
	case classify.LevelMajor:
		return v.NextMajor()
	case classify.LevelMinor:
		return v.NextMinor()
	default:
		return v.NextPatch()
	}
}

// resolvePath anchors relative config paths at the repository root.
func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
