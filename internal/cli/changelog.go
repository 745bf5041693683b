package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/semrel/internal/changelog"
	clierrors "github.com/ariel-frischer/semrel/internal/errors"
	"github.com/ariel-frischer/semrel/internal/output"
)

var (
	changelogOutputFlag  string
	changelogVersionFlag string
	changelogDryRunFlag  bool
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Write the changelog for the next version",
	Long: `Render the commits since the latest tag as a Markdown changelog block
and write it to the changelog file.

The block is headed by the next version (or --version) and lists the
commit descriptions under one section per commit type. It is placed above
the previous releases; a block with the same version is replaced. The tag
is not created, see 'semrel release'.

Use the list and show subcommands to read an existing changelog.`,
	Example: `  # Write CHANGELOG.md
  semrel changelog

  # Preview the block without writing it
  semrel changelog --dry-run

  # Use another heading and file
  semrel changelog --version v2.0.0-rc -o docs/CHANGES.md

  # Print the block as Markdown on stdout
  semrel changelog -o -`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChangelog(cmd)
	},
}

func init() {
	changelogCmd.GroupID = GroupRelease
	rootCmd.AddCommand(changelogCmd)

	changelogCmd.Flags().StringVarP(&changelogOutputFlag, "output", "o", "", "Changelog file (default: changelog.file from config)")
	changelogCmd.Flags().StringVar(&changelogVersionFlag, "version", "", "Version heading to use instead of the computed one")
	changelogCmd.Flags().BoolVar(&changelogDryRunFlag, "dry-run", false, "Print the block instead of writing it")
}

func runChangelog(cmd *cobra.Command) error {
	opts, err := pipelineOptions()
	if err != nil {
		return err
	}
	opts.Version = changelogVersionFlag
	if changelogOutputFlag != "" {
		opts.ChangelogPath = resolvePath(changelogOutputFlag)
	}

	plan, err := planRelease(cmd, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !plan.HasChanges() {
		output.PrintWarning(out, fmt.Sprintf("No commits since %s, nothing to write", plan.CurrentTag))
		return nil
	}

	if changelogDryRunFlag {
		return previewRelease(cmd, plan.Release)
	}

	if opts.ChangelogPath == "-" {
		if err := changelog.Render(out, plan.Release); err != nil {
			return fmt.Errorf("rendering changelog: %w", err)
		}
		return nil
	}

	if err := changelog.WriteFile(opts.ChangelogPath, plan.Release); err != nil {
		return clierrors.ChangelogNotWritable(opts.ChangelogPath, err)
	}
	output.PrintSuccess(out, fmt.Sprintf("Wrote %s to %s", plan.Next, opts.ChangelogPath))
	return nil
}

// previewRelease prints a release block with terminal styling.
func previewRelease(cmd *cobra.Command, r *changelog.Release) error {
	out := cmd.OutOrStdout()
	caps := terminalCaps(out)

	opts := changelog.FormatOptions{
		Plain:    !caps.SupportsColor,
		MaxWidth: caps.Width,
	}
	if err := changelog.FormatTerminal(out, r, opts); err != nil {
		return fmt.Errorf("formatting changelog: %w", err)
	}
	return nil
}
