package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/semrel/internal/commit"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func loadDir(t *testing.T, dir string) (*Configuration, error) {
	t.Helper()
	return LoadWithOptions(LoadOptions{Dir: dir, SkipUserConfig: true})
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadDir(t, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "CHANGELOG.md", cfg.Changelog.File)
	assert.Empty(t, cfg.Changelog.ExcludeTypes)
	assert.Equal(t, "parsed_commits.json", cfg.Export.File)
	assert.Equal(t, "", cfg.Export.Format)
	assert.True(t, cfg.Parser.BreakingFooter)
	assert.False(t, cfg.Tag.Annotate)
	assert.Equal(t, DefaultTagMessage, cfg.Tag.Message)
	assert.False(t, cfg.Debug)
}

func TestLoad_TemplateMatchesDefaults(t *testing.T) {
	dir := t.TempDir()
	want, err := loadDir(t, dir)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, ProjectConfigPath()), GetDefaultConfigTemplate())
	got, err := loadDir(t, dir)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestLoad_ProjectConfig(t *testing.T) {
	tests := map[string]struct {
		files map[string]string
		check func(t *testing.T, cfg *Configuration)
	}{
		"yaml overrides defaults": {
			files: map[string]string{
				".semrel/config.yml": "changelog:\n  file: HISTORY.md\n  exclude_types: [chore, other]\ntag:\n  annotate: true\n",
			},
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, "HISTORY.md", cfg.Changelog.File)
				assert.Equal(t, []string{"chore", "other"}, cfg.Changelog.ExcludeTypes)
				assert.True(t, cfg.Tag.Annotate)
				assert.Equal(t, "parsed_commits.json", cfg.Export.File)
			},
		},
		"json config": {
			files: map[string]string{
				".semrel/config.json": `{"export": {"file": "out.yaml", "format": "YAML"}}`,
			},
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, "out.yaml", cfg.Export.File)
				assert.Equal(t, "yaml", cfg.Export.Format)
			},
		},
		"yaml preferred over json": {
			files: map[string]string{
				".semrel/config.yml":  "debug: true\n",
				".semrel/config.json": `{"debug": false, "changelog": {"file": "IGNORED.md"}}`,
			},
			check: func(t *testing.T, cfg *Configuration) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "CHANGELOG.md", cfg.Changelog.File)
			},
		},
		"empty yaml uses defaults": {
			files: map[string]string{
				".semrel/config.yml": "\n",
			},
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, "CHANGELOG.md", cfg.Changelog.File)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			for rel, content := range tt.files {
				writeFile(t, filepath.Join(dir, rel), content)
			}

			cfg, err := loadDir(t, dir)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_CustomProjectPath(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "release.yml")
	writeFile(t, custom, "export:\n  file: commits.yml\n")

	cfg, err := LoadWithOptions(LoadOptions{Dir: dir, ProjectConfigPath: custom, SkipUserConfig: true})
	require.NoError(t, err)
	assert.Equal(t, "commits.yml", cfg.Export.File)

	_, err = LoadWithOptions(LoadOptions{Dir: dir, ProjectConfigPath: filepath.Join(dir, "nope.yml"), SkipUserConfig: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_UserConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeFile(t, filepath.Join(xdg, "semrel", "config.yml"), "tag:\n  tagger_name: Usuario\n  tagger_email: user@example.com\ndebug: true\n")

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectConfigPath()), "debug: false\n")

	cfg, err := LoadWithOptions(LoadOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "Usuario", cfg.Tag.TaggerName)
	assert.Equal(t, "user@example.com", cfg.Tag.TaggerEmail)
	assert.False(t, cfg.Debug, "project config wins over user config")
}

func TestLoad_DotenvAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectConfigPath()), "changelog:\n  file: PROJECT.md\n")
	writeFile(t, filepath.Join(dir, DotenvFile), "SEMREL_CHANGELOG__FILE=DOTENV.md\nSEMREL_DEBUG=true\nUNRELATED=1\n")

	t.Setenv("SEMREL_DEBUG", "false")
	t.Setenv("SEMREL_CHANGELOG__EXCLUDE_TYPES", "chore,ci")

	cfg, err := loadDir(t, dir)
	require.NoError(t, err)

	assert.Equal(t, "DOTENV.md", cfg.Changelog.File, ".env wins over project config")
	assert.False(t, cfg.Debug, "environment wins over .env")
	assert.Equal(t, []string{"chore", "ci"}, cfg.Changelog.ExcludeTypes)

	_, present := os.LookupEnv("SEMREL_CHANGELOG__FILE")
	assert.False(t, present, ".env must not leak into the process environment")

	cfg, err = LoadWithOptions(LoadOptions{Dir: dir, SkipUserConfig: true, SkipDotenv: true})
	require.NoError(t, err)
	assert.Equal(t, "PROJECT.md", cfg.Changelog.File)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]struct {
		yaml       string
		errContain string
	}{
		"syntax error": {
			yaml:       "changelog:\n  file: [unclosed\n",
			errContain: "validating YAML syntax",
		},
		"unknown export format": {
			yaml:       "export:\n  format: toml\n",
			errContain: "export.format",
		},
		"unknown excluded type": {
			yaml:       "changelog:\n  exclude_types: [misc]\n",
			errContain: "changelog.exclude_types",
		},
		"empty changelog file": {
			yaml:       "changelog:\n  file: \"\"\n",
			errContain: "changelog.file",
		},
		"annotated tag without message": {
			yaml:       "tag:\n  annotate: true\n  message: \"\"\n",
			errContain: "tag.message",
		},
		"bad tagger email": {
			yaml:       "tag:\n  tagger_email: nadie\n",
			errContain: "tag.tagger_email",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, ProjectConfigPath()), tt.yaml)

			_, err := loadDir(t, dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContain)
		})
	}
}

func TestConfiguration_ExcludedTypes(t *testing.T) {
	cfg := &Configuration{Changelog: ChangelogConfig{ExcludeTypes: []string{"chore", " other ", "BREAKING CHANGE"}}}
	types, err := cfg.ExcludedTypes()
	require.NoError(t, err)
	assert.Equal(t, []commit.Type{commit.TypeChore, commit.TypeOther, commit.TypeBreaking}, types)

	cfg.Changelog.ExcludeTypes = []string{"misc"}
	_, err = cfg.ExcludedTypes()
	require.Error(t, err)
}

func TestConfiguration_ParserOptions(t *testing.T) {
	cfg := &Configuration{Parser: ParserConfig{BreakingFooter: true}}
	assert.Equal(t, commit.Options{BreakingFooter: true}, cfg.ParserOptions())
}

func TestLookup(t *testing.T) {
	cfg, err := loadDir(t, t.TempDir())
	require.NoError(t, err)

	node, err := Lookup(cfg, "changelog.file")
	require.NoError(t, err)
	assert.Equal(t, "CHANGELOG.md", node.Value)

	node, err = Lookup(cfg, "parser.breaking_footer")
	require.NoError(t, err)
	assert.Equal(t, "true", node.Value)

	_, err = Lookup(cfg, "changelog.nope")
	var unknown ErrUnknownKey
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "changelog.nope", unknown.Key)
}

func TestCheckSyntax(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]struct {
		content  *string
		wantLine int
		wantErr  bool
	}{
		"missing file": {content: nil},
		"blank file":   {content: ptr("  \n")},
		"valid yaml":   {content: ptr("tag:\n  annotate: true\n")},
		"valid json":   {content: ptr(`{"tag": {"annotate": true}}`)},
		"bad indent":   {content: ptr("a: b\n  c: d\n"), wantLine: 2, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(name, " ", "_")+".yml")
			if tt.content != nil {
				writeFile(t, path, *tt.content)
			}

			err := CheckSyntax(path)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, path, verr.FilePath)
			assert.Equal(t, tt.wantLine, verr.Line)
			assert.Contains(t, verr.Error(), fmt.Sprintf("%s:%d: ", path, tt.wantLine))
		})
	}
}

func ptr(s string) *string { return &s }

func TestSortedKeys(t *testing.T) {
	keys := SortedKeys()
	assert.Len(t, keys, len(KnownKeys))
	assert.IsIncreasing(t, keys)
	for key, schema := range KnownKeys {
		assert.Equal(t, key, schema.Path)
	}
}
