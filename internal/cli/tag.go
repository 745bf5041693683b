package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	clierrors "github.com/ariel-frischer/semrel/internal/errors"
	"github.com/ariel-frischer/semrel/internal/git"
	"github.com/ariel-frischer/semrel/internal/output"
	"github.com/ariel-frischer/semrel/internal/release"
	"github.com/ariel-frischer/semrel/internal/versioning"
)

var tagMessageFlag string

var tagCmd = &cobra.Command{
	Use:   "tag <name>",
	Short: "Tag HEAD",
	Long: `Create a tag pointing at HEAD.

Without a message the tag is lightweight; with -m it is annotated, using
tag.tagger_name and tag.tagger_email from the configuration, then the git
user, as tagger. {{version}} in the message is replaced with the tag name.

Tags that are not MAJOR.MINOR.PATCH versions are created, but semrel stops
at them when they become the latest tag.`,
	Example: `  # First release tag
  semrel tag v0.1.0

  # Annotated tag
  semrel tag v1.0.0 -m "First stable release"`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return clierrors.MissingTagName()
		}
		return runTag(cmd, args[0])
	},
}

func init() {
	tagCmd.GroupID = GroupRelease
	rootCmd.AddCommand(tagCmd)

	tagCmd.Flags().StringVarP(&tagMessageFlag, "message", "m", "", "Annotated tag message")
}

func runTag(cmd *cobra.Command, name string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := versioning.Parse(name); err != nil {
		output.PrintWarning(out, fmt.Sprintf("%s is not a MAJOR.MINOR.PATCH version", name))
	}

	opts := git.TagOptions{
		Message:     release.ExpandMessage(tagMessageFlag, name),
		TaggerName:  cfg.Tag.TaggerName,
		TaggerEmail: cfg.Tag.TaggerEmail,
	}
	ref, err := repo.CreateTag(cmd.Context(), name, opts)
	if err != nil {
		return toCLIError(err, name)
	}

	output.PrintSuccess(out, "Created tag "+ref.Name().Short())
	return nil
}
