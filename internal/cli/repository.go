package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/semrel/internal/commit"
	clierrors "github.com/ariel-frischer/semrel/internal/errors"
	"github.com/ariel-frischer/semrel/internal/git"
	"github.com/ariel-frischer/semrel/internal/progress"
	"github.com/ariel-frischer/semrel/internal/release"
)

// openRepository opens the repository containing --dir.
func openRepository() (*git.Repository, error) {
	repo, err := git.Open(dirFlag)
	if err != nil {
		return nil, toCLIError(err, "")
	}
	return repo, nil
}

// resolvePath resolves a relative path against --dir.
func resolvePath(path string) string {
	if path == "" || path == "-" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dirFlag, path)
}

// terminalCaps detects the capabilities of w, honoring --plain.
func terminalCaps(w io.Writer) progress.TerminalCapabilities {
	caps := progress.DetectTerminalCapabilities(w)
	if plainFlag {
		caps.SupportsColor = false
	}
	return caps
}

// spinningHistory shows a spinner while the wrapped history is collected.
type spinningHistory struct {
	history release.History
	w       io.Writer
}

func newSpinningHistory(cmd *cobra.Command, history release.History) spinningHistory {
	return spinningHistory{history: history, w: cmd.ErrOrStderr()}
}

func (h spinningHistory) CommitsSinceLatestTag(ctx context.Context) (string, []commit.Raw, error) {
	sp := progress.StartSpinner(h.w, terminalCaps(h.w), "Collecting commits since the latest tag")

	tag, raws, err := h.history.CommitsSinceLatestTag(ctx)
	if !sp.Active() {
		sp.Stop(err == nil, "")
		return tag, raws, err
	}

	if err != nil {
		sp.Stop(false, "Collecting commits failed")
		return tag, raws, err
	}
	sp.Stop(true, fmt.Sprintf("%d commits since %s", len(raws), tag))
	return tag, raws, nil
}

// pipelineOptions builds release options from the loaded configuration.
func pipelineOptions() (release.Options, error) {
	exclude, err := cfg.ExcludedTypes()
	if err != nil {
		return release.Options{}, clierrors.ConfigParseError(err)
	}

	return release.Options{
		Parser:        cfg.ParserOptions(),
		Exclude:       exclude,
		ChangelogPath: resolvePath(cfg.Changelog.File),
		Annotate:      cfg.Tag.Annotate,
		TagMessage:    cfg.Tag.Message,
		TaggerName:    cfg.Tag.TaggerName,
		TaggerEmail:   cfg.Tag.TaggerEmail,
	}, nil
}

// planRelease collects the history of the repository at --dir and plans
// the next release without writing anything.
func planRelease(cmd *cobra.Command, opts release.Options) (*release.Plan, error) {
	repo, err := openRepository()
	if err != nil {
		return nil, err
	}

	plan, err := release.New(newSpinningHistory(cmd, repo), nil, opts).Plan(cmd.Context())
	if err != nil {
		return nil, toCLIError(err, "")
	}
	return plan, nil
}
