package config

// Defaults returns the built-in configuration values. The file names and
// bot identity match what CI pipelines conventionally expect.
func Defaults() map[string]any {
	return map[string]any{
		"metadata_path":   "metadata.json",
		"changelog_path":  "Versioning.md",
		"remote":          "origin",
		"release_marker":  "chore(release):",
		"bot_name":        "github-actions",
		"bot_email":       "github-actions@github.com",
		"placeholder_url": "https://github.com/owner/repo",
	}
}

// DefaultConfigTemplate returns a commented project config template for
// users bootstrapping a .relbump.yml.
func DefaultConfigTemplate() string {
	return `# relbump configuration
# All keys are optional; values below are the defaults.

metadata_path: metadata.json            # JSON file holding the "version" field
changelog_path: Versioning.md           # Changelog file (new sections prepended)
remote: origin                          # Remote used to derive commit link URLs
release_marker: "chore(release):"       # History window lower bound marker
bot_name: github-actions                # Release commit author name
bot_email: github-actions@github.com    # Release commit author email
placeholder_url: https://github.com/owner/repo  # Fallback when the remote is unavailable
`
}
