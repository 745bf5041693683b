// semrel - Conventional Commits release automation
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/semrel

// Package config provides hierarchical configuration management for semrel using koanf.
// Configuration is loaded with priority: environment variables > .env file > project config
// (.semrel/config.yml or .semrel/config.json) > user config (~/.config/semrel/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ariel-frischer/semrel/internal/commit"
)

// EnvPrefix is the prefix of environment variables read by Load.
// Nested keys use a double underscore: SEMREL_CHANGELOG__FILE -> changelog.file.
const EnvPrefix = "SEMREL_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceDotenv  ConfigSource = "dotenv"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the semrel CLI tool configuration
type Configuration struct {
	Changelog ChangelogConfig `koanf:"changelog" json:"changelog" yaml:"changelog"`
	Export    ExportConfig    `koanf:"export" json:"export" yaml:"export"`
	Parser    ParserConfig    `koanf:"parser" json:"parser" yaml:"parser"`
	Tag       TagConfig       `koanf:"tag" json:"tag" yaml:"tag"`

	// Debug enables [debug] output on stderr. Can be set via SEMREL_DEBUG.
	Debug bool `koanf:"debug" json:"debug" yaml:"debug"`
}

// ChangelogConfig configures the Markdown changelog.
type ChangelogConfig struct {
	File string `koanf:"file" json:"file" yaml:"file"`
	// ExcludeTypes lists commit type labels left out of the changelog
	// (e.g. "chore", "other"). They still count for the version bump.
	ExcludeTypes []string `koanf:"exclude_types" json:"exclude_types" yaml:"exclude_types"`
}

// ExportConfig configures the parsed commit export of `semrel commits`.
type ExportConfig struct {
	File string `koanf:"file" json:"file" yaml:"file"`
	// Format is json or yaml. Empty infers it from the file extension.
	Format string `koanf:"format" json:"format" yaml:"format"`
}

// ParserConfig configures commit message parsing.
type ParserConfig struct {
	// BreakingFooter promotes commits with a BREAKING CHANGE: footer.
	BreakingFooter bool `koanf:"breaking_footer" json:"breaking_footer" yaml:"breaking_footer"`
}

// TagConfig configures the release tag.
type TagConfig struct {
	Annotate    bool   `koanf:"annotate" json:"annotate" yaml:"annotate"`
	Message     string `koanf:"message" json:"message" yaml:"message"`
	TaggerName  string `koanf:"tagger_name" json:"tagger_name" yaml:"tagger_name"`
	TaggerEmail string `koanf:"tagger_email" json:"tagger_email" yaml:"tagger_email"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// Dir is the directory holding .semrel/ and .env (default: current directory).
	Dir string
	// ProjectConfigPath overrides the project config path (default: .semrel/config.yml)
	ProjectConfigPath string
	// SkipUserConfig ignores ~/.config/semrel/config.yml
	SkipUserConfig bool
	// SkipDotenv ignores the .env file
	SkipDotenv bool
}

// Load loads configuration from user, project, .env and environment sources.
// Priority: Environment variables > .env > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.Dir, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if !opts.SkipDotenv {
		if err := loadDotenvConfig(k, filepath.Join(opts.Dir, DotenvFile)); err != nil {
			return nil, err
		}
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads ~/.config/semrel/config.yml when present.
func loadUserConfig(k *koanf.Koanf) error {
	userPath, err := UserConfigPath()
	if err != nil || !fileExists(userPath) {
		return nil
	}
	if err := loadYAMLConfig(k, userPath, SourceUser); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project config. A custom path must exist;
// the default locations are optional, YAML preferred over JSON.
func loadProjectConfig(k *koanf.Koanf, dir, customPath string) error {
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("loading project config: %s: %w", customPath, os.ErrNotExist)
		}
		if err := loadConfigFile(k, customPath, SourceProject); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		return nil
	}

	for _, path := range []string{
		filepath.Join(dir, ProjectConfigPath()),
		filepath.Join(dir, ProjectJSONConfigPath()),
	} {
		if !fileExists(path) {
			continue
		}
		if err := loadConfigFile(k, path, SourceProject); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		return nil
	}
	return nil
}

// loadConfigFile picks the parser from the file extension.
func loadConfigFile(k *koanf.Koanf, path string, source ConfigSource) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", source, path, err)
		}
		return nil
	}
	return loadYAMLConfig(k, path, source)
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path string, source ConfigSource) error {
	if err := CheckSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", source, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", source, path, err)
	}
	return nil
}

// loadDotenvConfig reads SEMREL_* entries from a .env file without
// touching the process environment.
func loadDotenvConfig(k *koanf.Koanf, path string) error {
	if !fileExists(path) {
		return nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("failed to load %s file %s: %w", SourceDotenv, path, err)
	}

	for name, value := range values {
		if !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		k.Set(envTransform(name), value)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Changelog.File = expandHomePath(cfg.Changelog.File)
	cfg.Export.File = expandHomePath(cfg.Export.File)
	cfg.Export.Format = strings.ToLower(strings.TrimSpace(cfg.Export.Format))

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// ExcludedTypes converts Changelog.ExcludeTypes to commit types.
func (c *Configuration) ExcludedTypes() ([]commit.Type, error) {
	types := make([]commit.Type, 0, len(c.Changelog.ExcludeTypes))
	for _, label := range c.Changelog.ExcludeTypes {
		t, err := commit.ParseType(strings.TrimSpace(label))
		if err != nil {
			return nil, fmt.Errorf("changelog.exclude_types: %w", err)
		}
		types = append(types, t)
	}
	return types, nil
}

// ParserOptions returns the commit parser options.
func (c *Configuration) ParserOptions() commit.Options {
	return commit.Options{BreakingFooter: c.Parser.BreakingFooter}
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: SEMREL_CHANGELOG__EXCLUDE_TYPES -> changelog.exclude_types
func envTransform(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
