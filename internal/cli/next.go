package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/semrel/internal/commit"
	clierrors "github.com/ariel-frischer/semrel/internal/errors"
	"github.com/ariel-frischer/semrel/internal/versioning"
)

var (
	nextFromFlag string
	nextTagFlag  string
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print the next version",
	Long: `Print the version the next release would get.

The bump is the largest one the commits since the latest tag ask for:
breaking changes bump MAJOR, features MINOR and everything else PATCH.
Without commits the current version is printed unchanged.

With --from, the commits are read from an export written by 'semrel commits'
instead of the repository. --tag gives the version to bump from; it
defaults to the latest tag of the repository.`,
	Example: `  # Next version of the repository in the current directory
  semrel next

  # Next version from an export, without a repository
  semrel next --from parsed_commits.json --tag v1.4.2`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNext(cmd)
	},
}

func init() {
	nextCmd.GroupID = GroupInspection
	rootCmd.AddCommand(nextCmd)

	nextCmd.Flags().StringVar(&nextFromFlag, "from", "", "Read parsed commits from an export file")
	nextCmd.Flags().StringVar(&nextTagFlag, "tag", "", "Version to bump from (requires --from)")
}

func runNext(cmd *cobra.Command) error {
	if nextTagFlag != "" && nextFromFlag == "" {
		return clierrors.InvalidFlagCombination("--tag without --from",
			"--tag only applies to commits read with --from")
	}

	if nextFromFlag == "" {
		opts, err := pipelineOptions()
		if err != nil {
			return err
		}
		plan, err := planRelease(cmd, opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), plan.Next)
		return nil
	}

	path := resolvePath(nextFromFlag)
	commits, err := commit.ReadExportFile(path, "")
	if err != nil {
		return clierrors.ExportNotReadable(path, err)
	}

	current := nextTagFlag
	if current == "" {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		tag, err := repo.LatestTag(cmd.Context())
		if err != nil {
			return toCLIError(err, "")
		}
		current = tag.Name
	}

	next, err := versioning.Next(commits, current)
	if err != nil {
		return toCLIError(err, current)
	}
	fmt.Fprintln(cmd.OutOrStdout(), next)
	return nil
}
