package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// fixture is a throwaway repository driven through the real commands.
type fixture struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
	n    int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	isolateEnvironment(t)

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	return &fixture{t: t, dir: dir, repo: repo}
}

// isolateEnvironment keeps user config and git config of the machine out
// of the test.
func isolateEnvironment(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func (f *fixture) commit(message string) plumbing.Hash {
	f.t.Helper()
	f.n++

	wt, err := f.repo.Worktree()
	require.NoError(f.t, err)
	require.NoError(f.t, os.WriteFile(filepath.Join(f.dir, "file.txt"), []byte(message), 0o644))
	_, err = wt.Add("file.txt")
	require.NoError(f.t, err)

	sig := &object.Signature{
		Name:  "Test",
		Email: "test@test.com",
		When:  time.Date(2024, 6, 1, 10, f.n, 0, 0, time.UTC),
	}
	hash, err := wt.Commit(message, &gogit.CommitOptions{Author: sig, Committer: sig})
	require.NoError(f.t, err)
	return hash
}

func (f *fixture) tag(name string, hash plumbing.Hash) {
	f.t.Helper()
	_, err := f.repo.CreateTag(name, hash, nil)
	require.NoError(f.t, err)
}

func (f *fixture) path(name string) string {
	return filepath.Join(f.dir, name)
}

func (f *fixture) read(name string) string {
	f.t.Helper()
	data, err := os.ReadFile(f.path(name))
	require.NoError(f.t, err)
	return string(data)
}

// released creates v1.0.0 followed by a feature, a fix and a breaking change.
func (f *fixture) released() {
	f.t.Helper()
	f.tag("v1.0.0", f.commit("commit inicial"))
	f.commit("feat(core): añadir funcionalidad")
	f.commit("fix: arreglar error")
	f.commit("feat!(core): cambio importante")
}

// run executes rootCmd against the fixture with colors disabled and
// returns stdout and stderr.
func (f *fixture) run(args ...string) (string, string, error) {
	f.t.Helper()
	return executeCommand(f.t, append([]string{"--dir", f.dir, "--plain"}, args...)...)
}

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	if err != nil {
		reportError(&stderr, err)
	}
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag of cmd and its subcommands to its default,
// since the commands are package globals shared by all tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func findCommand(parent *cobra.Command, use string) *cobra.Command {
	for _, cmd := range parent.Commands() {
		if cmd.Use == use {
			return cmd
		}
	}
	return nil
}
