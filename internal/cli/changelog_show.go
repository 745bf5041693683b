package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/semrel/internal/changelog"
	clierrors "github.com/ariel-frischer/semrel/internal/errors"
)

var changelogFileFlag string

var changelogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the versions recorded in the changelog",
	Long: `List the versions recorded in the changelog file, newest first, with the
number of entries of each.`,
	Example: `  semrel changelog list
  semrel changelog list --file docs/CHANGES.md`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChangelogList(cmd)
	},
}

var changelogShowCmd = &cobra.Command{
	Use:   "show <version>",
	Short: "Print the changelog block of a version",
	Long: `Print the changelog block of a version in Markdown.

The output is suitable for release notes. The v prefix is optional.`,
	Example: `  semrel changelog show v1.2.0
  semrel changelog show 1.2.0 > notes.md`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChangelogShow(cmd, args[0])
	},
}

func init() {
	changelogCmd.AddCommand(changelogListCmd)
	changelogCmd.AddCommand(changelogShowCmd)

	for _, cmd := range []*cobra.Command{changelogListCmd, changelogShowCmd} {
		cmd.Flags().StringVar(&changelogFileFlag, "file", "", "Changelog file (default: changelog.file from config)")
	}
}

func loadChangelog() (*changelog.Document, string, error) {
	path := changelogFileFlag
	if path == "" {
		path = cfg.Changelog.File
	}
	path = resolvePath(path)

	doc, err := changelog.Load(path)
	if err != nil {
		return nil, path, clierrors.ChangelogNotReadable(path, err)
	}
	return doc, path, nil
}

func runChangelogList(cmd *cobra.Command) error {
	doc, path, err := loadChangelog()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(doc.Releases) == 0 {
		fmt.Fprintf(out, "No releases found in %s.\n", path)
		return nil
	}

	for _, r := range doc.Releases {
		fmt.Fprintf(out, "%s\t%d entries\n", r.Version, r.Count())
	}
	return nil
}

func runChangelogShow(cmd *cobra.Command, version string) error {
	doc, _, err := loadChangelog()
	if err != nil {
		return err
	}

	r, err := doc.Release(version)
	if err != nil {
		var notFound *changelog.VersionNotFoundError
		if errors.As(err, &notFound) {
			return clierrors.VersionNotInChangelog(version, notFound.AvailableVersions)
		}
		return fmt.Errorf("getting version: %w", err)
	}

	if err := changelog.Render(cmd.OutOrStdout(), r); err != nil {
		return fmt.Errorf("rendering %s: %w", r.Version, err)
	}
	return nil
}
