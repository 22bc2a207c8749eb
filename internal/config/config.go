// Package config provides configuration management for relbump using koanf.
// Values are loaded with priority: environment variables > project config
// (.relbump.yml at the repository root) > defaults. A legacy JSON project
// config (.relbump.json) is still read, with a deprecation warning.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// ProjectConfigName is the YAML project config file name.
	ProjectConfigName = ".relbump.yml"
	// LegacyConfigName is the deprecated JSON project config file name.
	LegacyConfigName = ".relbump.json"

	envPrefix = "RELBUMP_"
)

// Config holds the release run settings. Paths are relative to the
// repository root unless absolute.
type Config struct {
	// MetadataPath is the JSON metadata store holding the version field.
	MetadataPath string `koanf:"metadata_path"`
	// ChangelogPath is the markdown changelog that release sections are
	// prepended to.
	ChangelogPath string `koanf:"changelog_path"`
	// Remote is the git remote used to derive the repository web URL.
	Remote string `koanf:"remote"`
	// ReleaseMarker bounds the history window: commits after the most
	// recent commit containing this marker are considered.
	ReleaseMarker string `koanf:"release_marker"`
	// BotName and BotEmail form the author identity of release commits.
	BotName  string `koanf:"bot_name"`
	BotEmail string `koanf:"bot_email"`
	// PlaceholderURL substitutes for the repository URL when the remote
	// cannot be resolved.
	PlaceholderURL string `koanf:"placeholder_url"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// Dir is the directory searched for project config files,
	// typically the repository root.
	Dir string
	// Path overrides project config discovery with an explicit file.
	Path string
	// WarningWriter receives deprecation warnings (default: os.Stderr).
	WarningWriter io.Writer
}

// Load loads configuration for the given directory with default options.
func Load(dir string) (*Config, error) {
	return LoadWithOptions(LoadOptions{Dir: dir})
}

// LoadWithOptions loads configuration with custom options.
// Priority: environment variables > project config > defaults.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	if err := loadProjectConfig(k, opts, warningWriter); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadProjectConfig loads the project file: an explicit override when set,
// otherwise .relbump.yml, falling back to legacy .relbump.json.
func loadProjectConfig(k *koanf.Koanf, opts LoadOptions, warningWriter io.Writer) error {
	if opts.Path != "" {
		return loadConfigFile(k, opts.Path)
	}

	yamlPath := filepath.Join(opts.Dir, ProjectConfigName)
	legacyPath := filepath.Join(opts.Dir, LegacyConfigName)

	yamlExists := fileExists(yamlPath)
	legacyExists := fileExists(legacyPath)

	switch {
	case yamlExists:
		if err := loadConfigFile(k, yamlPath); err != nil {
			return err
		}
		if legacyExists {
			fmt.Fprintf(warningWriter, "Warning: legacy config %s ignored (using %s)\n", legacyPath, yamlPath)
		}
	case legacyExists:
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy config %s: %w", legacyPath, err)
		}
		fmt.Fprintf(warningWriter, "Warning: %s is deprecated, rename it to %s in YAML form\n", legacyPath, ProjectConfigName)
	}
	return nil
}

// loadConfigFile loads a single config file, choosing the parser by
// extension. YAML files are syntax-checked first for better error lines.
func loadConfigFile(k *koanf.Koanf, path string) error {
	if strings.HasSuffix(path, ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("loading config %s: %w", path, err)
		}
		return nil
	}

	if err := ValidateYAMLFile(path); err != nil {
		return err
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}
	return nil
}

// validate rejects configurations that would make a release run undefined.
func validate(cfg *Config) error {
	required := map[string]string{
		"metadata_path":  cfg.MetadataPath,
		"changelog_path": cfg.ChangelogPath,
		"remote":         cfg.Remote,
		"bot_name":       cfg.BotName,
		"bot_email":      cfg.BotEmail,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("config validation failed: %s must not be empty", key)
		}
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// Example: RELBUMP_METADATA_PATH -> metadata_path.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
