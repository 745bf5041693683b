// Package cli tests root command and global flags for semrel.
// Related: internal/cli/root.go, internal/cli/exit_codes.go
// Tags: cli, root, commands, global-flags, exit-codes

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clierrors "github.com/ariel-frischer/semrel/internal/errors"
	"github.com/ariel-frischer/semrel/internal/git"
	"github.com/ariel-frischer/semrel/internal/versioning"
)

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "semrel", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.Contains(t, rootCmd.Long, "SEMREL_")
	assert.Contains(t, rootCmd.Long, "github.com")
	assert.Contains(t, rootCmd.Example, "semrel release --dry-run")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	tests := map[string]struct {
		flagName  string
		shorthand string
		defValue  string
	}{
		"dir":    {flagName: "dir", shorthand: "d", defValue: "."},
		"config": {flagName: "config", shorthand: "c", defValue: ""},
		"debug":  {flagName: "debug", defValue: "false"},
		"plain":  {flagName: "plain", defValue: "false"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, flag, "Flag %s should exist", tt.flagName)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestRootCmd_SubcommandGroups(t *testing.T) {
	groupIDs := make(map[string]bool)
	for _, g := range rootCmd.Groups() {
		groupIDs[g.ID] = true
	}

	assert.True(t, groupIDs[GroupRelease], "Should have release group")
	assert.True(t, groupIDs[GroupInspection], "Should have inspection group")
	assert.True(t, groupIDs[GroupConfiguration], "Should have configuration group")

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			continue
		}
		assert.True(t, groupIDs[cmd.GroupID], "command %s should belong to a group", cmd.Name())
	}
}

func TestRootCmd_Commands(t *testing.T) {
	for _, use := range []string{"commits", "next", "changelog", "release", "tag <name>", "version", "config", "history"} {
		assert.NotNil(t, findCommand(rootCmd, use), "command %q should be registered", use)
	}
}

func TestExecute(t *testing.T) {
	// Cannot run in parallel due to global rootCmd state
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetArgs([]string{"--help"})
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	require.NotPanics(t, func() {
		assert.NoError(t, Execute())
	})
	assert.Contains(t, buf.String(), "Release Commands:")
	assert.Contains(t, buf.String(), "Configuration Commands:")
}

func TestExitCode(t *testing.T) {
	malformed := &versioning.MalformedTagError{Tag: "release-1"}

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil error":          {err: nil, want: ExitSuccess},
		"generic error":      {err: errors.New("generic error"), want: ExitFailure},
		"malformed tag":      {err: fmt.Errorf("x: %w", malformed), want: ExitMalformedTag},
		"no tags":            {err: fmt.Errorf("collecting history: %w", git.ErrNoTags), want: ExitMissingDependencies},
		"not a repository":   {err: git.ErrNotRepository, want: ExitMissingDependencies},
		"argument CLIError":  {err: clierrors.MissingTagName(), want: ExitInvalidArguments},
		"prerequisite error": {err: clierrors.DirectoryNotFound("/x"), want: ExitMissingDependencies},
		"runtime CLIError":   {err: clierrors.ChangelogNotWritable("CHANGELOG.md", errors.New("denied")), want: ExitFailure},
		"tag exists":         {err: clierrors.TagExists("v1.0.0", git.ErrTagExists), want: ExitFailure},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExitCode(tc.err))
		})
	}
}

func TestToCLIError(t *testing.T) {
	tests := map[string]struct {
		err         error
		tag         string
		wantMessage string
	}{
		"no tags": {
			err:         fmt.Errorf("collecting history: %w", git.ErrNoTags),
			wantMessage: "no tags found in repository",
		},
		"malformed tag takes the name from the error": {
			err:         &versioning.MalformedTagError{Tag: "release-1"},
			wantMessage: `latest tag "release-1" is not a version`,
		},
		"tag exists": {
			err:         fmt.Errorf("creating tag v1.1.0: %w", git.ErrTagExists),
			tag:         "v1.1.0",
			wantMessage: "tag already exists: v1.1.0",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cliErr := clierrors.As(toCLIError(tc.err, tc.tag))
			require.NotNil(t, cliErr)
			assert.Contains(t, cliErr.Message, tc.wantMessage)
			assert.True(t, errors.Is(cliErr, tc.err))
		})
	}

	plain := errors.New("disk full")
	assert.Same(t, plain, toCLIError(plain, ""))
}

func TestReportError_PrintsEveryError(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"plain error":    {err: errors.New("disk full"), want: "Error [Runtime Error]: disk full"},
		"wrapped domain": {err: toCLIError(git.ErrNoTags, ""), want: "no tags found in repository"},
		"argument error": {err: clierrors.MissingTagName(), want: "Error [Argument Error]: tag name is required"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			reportError(&buf, tc.err)
			assert.Contains(t, buf.String(), tc.want)
		})
	}
}
