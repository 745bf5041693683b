package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/semrel/internal/config"
	clierrors "github.com/ariel-frischer/semrel/internal/errors"
	"github.com/ariel-frischer/semrel/internal/history"
	"github.com/ariel-frischer/semrel/internal/output"
	"github.com/ariel-frischer/semrel/internal/release"
)

var (
	releaseOutputFlag   string
	releaseDryRunFlag   bool
	releaseNoTagFlag    bool
	releaseMessageFlag  string
	releaseAnnotateFlag bool
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Write the changelog and tag the next version",
	Long: `Run the full release flow:

  1. Collect the commits since the latest tag
  2. Compute the next version from their types
  3. Write the changelog block for that version
  4. Tag HEAD with the version

Nothing is written when there are no commits since the latest tag, when
the latest tag is not a version, or with --dry-run. The changelog is
written before the tag is created; if tagging fails the changelog stays
written.

The tag is lightweight unless --annotate, -m or tag.annotate in the
configuration ask for an annotated one. {{version}} in the message is
replaced with the new version.`,
	Example: `  # Preview the release
  semrel release --dry-run

  # Release with an annotated tag
  semrel release -m "Release {{version}}"

  # Only update the changelog
  semrel release --no-tag`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelease(cmd)
	},
}

func init() {
	releaseCmd.GroupID = GroupRelease
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().StringVarP(&releaseOutputFlag, "output", "o", "", "Changelog file (default: changelog.file from config)")
	releaseCmd.Flags().BoolVar(&releaseDryRunFlag, "dry-run", false, "Show the release without writing anything")
	releaseCmd.Flags().BoolVar(&releaseNoTagFlag, "no-tag", false, "Write the changelog without creating the tag")
	releaseCmd.Flags().StringVarP(&releaseMessageFlag, "message", "m", "", "Annotated tag message")
	releaseCmd.Flags().BoolVar(&releaseAnnotateFlag, "annotate", false, "Create an annotated tag")
}

func runRelease(cmd *cobra.Command) error {
	if releaseNoTagFlag && (releaseMessageFlag != "" || releaseAnnotateFlag) {
		return clierrors.InvalidFlagCombination("--no-tag with --message/--annotate",
			"--no-tag skips the tag, so there is nothing to annotate")
	}

	opts, err := pipelineOptions()
	if err != nil {
		return err
	}
	if releaseOutputFlag != "" {
		opts.ChangelogPath = resolvePath(releaseOutputFlag)
	}

	// With -o - stdout carries only the Markdown block.
	out := cmd.OutOrStdout()
	if opts.ChangelogPath == "-" {
		opts.ChangelogPath = ""
		opts.ChangelogOut = out
		out = cmd.ErrOrStderr()
	}
	opts.DryRun = releaseDryRunFlag
	opts.NoTag = releaseNoTagFlag
	if releaseAnnotateFlag {
		opts.Annotate = true
	}
	if releaseMessageFlag != "" {
		opts.Annotate = true
		opts.TagMessage = releaseMessageFlag
	}

	repo, err := openRepository()
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := release.New(newSpinningHistory(cmd, repo), repo, opts).Run(cmd.Context())
	if result != nil && result.ChangelogWritten {
		recordRelease(cmd, repo.Root(), opts, result, time.Since(start))
	}
	if err != nil {
		return releaseError(result, opts, err)
	}

	if !result.HasChanges() {
		output.PrintWarning(out, fmt.Sprintf("No commits since %s, nothing to release", result.CurrentTag))
		return nil
	}

	output.PrintVersionBump(out, result.CurrentTag, result.Next, result.Bump.String())
	if opts.DryRun {
		return previewRelease(cmd, result.Release)
	}

	if result.ChangelogWritten {
		output.PrintSuccess(out, "Updated "+opts.ChangelogPath)
	}
	if result.Tagged {
		output.PrintSuccess(out, "Tagged "+result.Next)
	}
	return nil
}

// releaseError maps a failed run to a CLIError. A run that failed while
// tagging reports that the changelog file was already written.
func releaseError(result *release.Result, opts release.Options, err error) error {
	if result == nil {
		return toCLIError(err, "")
	}

	if result.ChangelogPrinted {
		return toCLIError(err, result.Next)
	}
	if !result.ChangelogWritten {
		if opts.ChangelogOut != nil {
			return clierrors.Wrap(err, clierrors.Runtime, "")
		}
		return clierrors.ChangelogNotWritable(opts.ChangelogPath, err)
	}

	written := fmt.Sprintf("%s was already written for %s", opts.ChangelogPath, result.Next)
	if cliErr := clierrors.As(toCLIError(err, result.Next)); cliErr != nil {
		return cliErr.WithHint(written)
	}
	return clierrors.Wrap(err, clierrors.Runtime, "creating tag "+result.Next+" failed").WithHint(written)
}

// recordRelease appends the run to the release journal in the state
// directory. Journal failures only produce a warning.
func recordRelease(cmd *cobra.Command, root string, opts release.Options, result *release.Result, elapsed time.Duration) {
	stateDir, err := config.StateDir()
	if err != nil {
		output.PrintWarning(cmd.ErrOrStderr(), "release not recorded: "+err.Error())
		return
	}

	writer := history.NewWriter(stateDir, history.DefaultMaxEntries)
	writer.Warnings = cmd.ErrOrStderr()
	writer.LogEntry(history.HistoryEntry{
		Timestamp:  time.Now().UTC(),
		Repository: root,
		Previous:   result.CurrentTag,
		Version:    result.Next,
		Bump:       result.Bump.String(),
		Commits:    len(result.Commits),
		Changelog:  opts.ChangelogPath,
		Tagged:     result.Tagged,
		Duration:   elapsed.Round(time.Millisecond).String(),
	})
}
