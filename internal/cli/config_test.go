// Package cli tests the config commands.
// Related: internal/cli/config.go
// Tags: cli, config, show, get, set, init

package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/semrel/internal/config"
)

func TestConfigCmd_Subcommands(t *testing.T) {
	cmd := findCommand(rootCmd, "config")
	require.NotNil(t, cmd)

	for _, use := range []string{"show", "keys", "get <key>", "set <key> <value>", "init"} {
		assert.NotNil(t, findCommand(cmd, use), "config %s should be registered", use)
	}
}

func TestConfigInitCmd(t *testing.T) {
	f := newFixture(t)

	stdout, _, err := f.run("config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Config created at")
	assert.Equal(t, config.GetDefaultConfigTemplate(), f.read(".semrel/config.yml"))

	stdout, _, err = f.run("config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "use --force to overwrite")

	require.NoError(t, os.WriteFile(f.path(".semrel/config.yml"), []byte("changelog: [broken"), 0o644))
	stdout, _, err = f.run("config", "init", "--force")
	require.NoError(t, err, "init runs without loading the broken config")
	assert.Contains(t, stdout, "Config overwritten at")
}

func TestConfigInitCmd_User(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.run("config", "init", "--user")
	require.NoError(t, err)

	userPath, err := config.UserConfigPath()
	require.NoError(t, err)
	assert.FileExists(t, userPath)
	assert.NoFileExists(t, f.path(".semrel/config.yml"))
}

func TestConfigSetAndGet(t *testing.T) {
	f := newFixture(t)

	tests := map[string]struct {
		key   string
		value string
		want  string
	}{
		"bool":   {key: "tag.annotate", value: "true", want: "true\n"},
		"string": {key: "changelog.file", value: "HISTORY.md", want: "HISTORY.md\n"},
		"enum":   {key: "export.format", value: "yaml", want: "yaml\n"},
		"list":   {key: "changelog.exclude_types", value: "chore,other", want: "- chore\n- other\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			stdout, _, err := f.run("config", "set", tt.key, tt.value)
			require.NoError(t, err)
			assert.Contains(t, stdout, "Set "+tt.key)

			stdout, _, err = f.run("config", "get", tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestConfigSetCmd_Invalid(t *testing.T) {
	f := newFixture(t)

	tests := map[string]struct {
		args       []string
		wantStderr string
	}{
		"unknown key": {
			args:       []string{"config", "set", "changelog.nope", "x"},
			wantStderr: "unknown configuration key: changelog.nope",
		},
		"bad bool": {
			args:       []string{"config", "set", "debug", "maybe"},
			wantStderr: "setting debug",
		},
		"bad enum": {
			args:       []string{"config", "set", "export.format", "xml"},
			wantStderr: "setting export.format",
		},
		"unknown get": {
			args:       []string{"config", "get", "nope"},
			wantStderr: "semrel config keys",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, stderr, err := f.run(tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitInvalidArguments, ExitCode(err))
			assert.Contains(t, stderr, tt.wantStderr)
		})
	}
	assert.NoFileExists(t, f.path(".semrel/config.yml"))
}

func TestConfigShowCmd(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.path(".env"), []byte("SEMREL_TAG__ANNOTATE=true\n"), 0o644))

	stdout, _, err := f.run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration Sources:")
	assert.Contains(t, stdout, filepath.Join(f.dir, ".env")+" (loaded)")
	assert.Contains(t, stdout, "annotate: true")

	stdout, _, err = f.run("config", "show", "--json")
	require.NoError(t, err)

	var shown config.Configuration
	require.NoError(t, json.Unmarshal([]byte(stdout), &shown))
	assert.Equal(t, "CHANGELOG.md", shown.Changelog.File)
	assert.True(t, shown.Tag.Annotate)
}

func TestConfigShowCmd_InvalidConfig(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.MkdirAll(f.path(".semrel"), 0o755))
	require.NoError(t, os.WriteFile(f.path(".semrel/config.yml"), []byte("export:\n  format: xml\n"), 0o644))

	_, stderr, err := f.run("config", "show")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, stderr, "failed to load configuration")
	assert.Contains(t, stderr, "semrel config init --force")
}

func TestConfigKeysCmd(t *testing.T) {
	f := newFixture(t)

	stdout, _, err := f.run("config", "keys")
	require.NoError(t, err)
	for _, key := range config.SortedKeys() {
		assert.Contains(t, stdout, key)
	}
	assert.Contains(t, stdout, "enum (json, yaml)")
}
