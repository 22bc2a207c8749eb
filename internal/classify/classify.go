// Package classify parses conventional-commit messages into changelog
// categories and version-bump levels. It implements the minimal grammar
// needed for classification (type, optional scope, optional bang) and the
// precedence rules between type-derived and breaking-change severity.
package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// Commit is a single commit as produced by history collection.
// Subject is the first line of the message; Message is the full body.
type Commit struct {
	Subject string
	Message string
	Hash    string
}

// Level is the version impact implied by one or more commits.
type Level int

const (
	// LevelNone means no version impact (docs, chore, and friends).
	LevelNone Level = iota
	// LevelPatch bumps the patch component (fix, perf).
	LevelPatch
	// LevelMinor bumps the minor component (feat).
	LevelMinor
	// LevelMajor bumps the major component (breaking changes).
	LevelMajor
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelPatch:
		return "patch"
	case LevelMinor:
		return "minor"
	case LevelMajor:
		return "major"
	default:
		return "none"
	}
}

// Category is a changelog section label. The set is fixed and ordered;
// Categories returns the rendering order.
type Category string

const (
	CategoryBreaking      Category = "Breaking Changes"
	CategoryFeatures      Category = "Features"
	CategoryBugFixes      Category = "Bug Fixes"
	CategoryPerformance   Category = "Performance Improvements"
	CategoryDocumentation Category = "Documentation"
	CategoryTests         Category = "Tests"
	CategoryBuild         Category = "Build System"
	CategoryCI            Category = "CI"
	CategoryRefactoring   Category = "Refactoring"
	CategoryStyle         Category = "Style"
	CategoryChore         Category = "Chore"

	// CategoryOther is a defensive slot: no classification rule currently
	// maps to it, but it stays in the enumeration so an unmapped type added
	// to typeMapping later has somewhere deterministic to land.
	CategoryOther Category = "Other"
)

// Categories returns all categories in rendering order.
func Categories() []Category {
	return []Category{
		CategoryBreaking,
		CategoryFeatures,
		CategoryBugFixes,
		CategoryPerformance,
		CategoryDocumentation,
		CategoryTests,
		CategoryBuild,
		CategoryCI,
		CategoryRefactoring,
		CategoryStyle,
		CategoryChore,
		CategoryOther,
	}
}

// breakingMarker is the literal body marker for a breaking change.
const breakingMarker = "BREAKING CHANGE"

var (
	// typePattern matches "type(scope)!:" prefixes, case-insensitive on the
	// type token. Scope and bang are optional.
	typePattern = regexp.MustCompile(`(?i)^([a-z]+)(\([^)]*\))?!?:`)

	// bangPattern matches the breaking-change subject form: a bang
	// immediately before the colon with the scope present.
	bangPattern = regexp.MustCompile(`^[a-z]+\([^)]*\)!:`)

	// prefixPattern strips the conventional-commit prefix from a subject,
	// leaving only the free-text description.
	prefixPattern = regexp.MustCompile(`(?i)^[a-z]+(\([^)]*\))?!?:\s*`)
)

// typeMapping maps recognized type tokens to their category and base level.
var typeMapping = map[string]struct {
	category Category
	level    Level
}{
	"feat":     {CategoryFeatures, LevelMinor},
	"fix":      {CategoryBugFixes, LevelPatch},
	"perf":     {CategoryPerformance, LevelPatch},
	"docs":     {CategoryDocumentation, LevelNone},
	"test":     {CategoryTests, LevelNone},
	"build":    {CategoryBuild, LevelNone},
	"ci":       {CategoryCI, LevelNone},
	"refactor": {CategoryRefactoring, LevelNone},
	"style":    {CategoryStyle, LevelNone},
	"chore":    {CategoryChore, LevelNone},
}

// Result is the aggregated classification of a commit range.
// Level is the maximum per-commit level; Entries holds the rendered
// changelog lines grouped by category, insertion order preserved.
type Result struct {
	Level   Level
	Entries map[Category][]string
}

// HasEntries reports whether any category received at least one entry.
func (r Result) HasEntries() bool {
	for _, items := range r.Entries {
		if len(items) > 0 {
			return true
		}
	}
	return false
}

// Classify processes commits (newest first) into an aggregated bump level
// and grouped changelog entries. Commits that match neither a recognized
// type nor a breaking signal are skipped entirely. repoURL is used for the
// commit links in rendered entries.
func Classify(commits []Commit, repoURL string) Result {
	result := Result{Entries: make(map[Category][]string)}

	for _, c := range commits {
		category, level, ok := classifyCommit(c)
		if !ok {
			continue
		}
		if level > result.Level {
			result.Level = level
		}
		result.Entries[category] = append(result.Entries[category], renderEntry(c, repoURL))
	}

	return result
}

// classifyCommit resolves a single commit to a category and level.
// A breaking signal overrides any type-derived classification; this is
// override-and-replace, so a breaking feat appears only under Breaking
// Changes. The boolean is false when the commit carries no classification.
func classifyCommit(c Commit) (Category, Level, bool) {
	breaking := strings.Contains(c.Message, breakingMarker) || bangPattern.MatchString(c.Subject)

	category, level, ok := CategoryOther, LevelNone, false
	if m := typePattern.FindStringSubmatch(c.Subject); m != nil {
		if mapped, known := typeMapping[strings.ToLower(m[1])]; known {
			category, level, ok = mapped.category, mapped.level, true
		}
	}

	if breaking {
		return CategoryBreaking, LevelMajor, true
	}
	return category, level, ok
}

// Description strips the "type(scope)!:" prefix from a subject line.
// Subjects without a prefix are returned unchanged.
func Description(subject string) string {
	return prefixPattern.ReplaceAllString(subject, "")
}

// renderEntry formats one changelog line with a short-hash commit link.
func renderEntry(c Commit, repoURL string) string {
	short := c.Hash
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("* %s ([%s](%s/commit/%s))", Description(c.Subject), short, repoURL, c.Hash)
}
