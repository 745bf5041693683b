package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/semrel/internal/commit"
	clierrors "github.com/ariel-frischer/semrel/internal/errors"
	"github.com/ariel-frischer/semrel/internal/output"
)

var (
	commitsOutputFlag string
	commitsFormatFlag string
)

var commitsCmd = &cobra.Command{
	Use:   "commits",
	Short: "Export the parsed commits since the latest tag",
	Long: `Export the commits made since the latest tag as parsed Conventional Commits.

Each record holds the commit id and the structured message:

  [{"commit": "<sha>", "mensaje": {"tipo": "feat", "escopo": "api",
    "descripcion": "add endpoint", "cuerpo": null}}]

The format is taken from --format, then from export.format in the
configuration, then from the output file extension (.yaml/.yml for YAML,
JSON otherwise). Relative paths are resolved against --dir.`,
	Example: `  # Write parsed_commits.json in the repository root
  semrel commits

  # Print YAML on stdout
  semrel commits -o - --format yaml`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommits(cmd)
	},
}

func init() {
	commitsCmd.GroupID = GroupInspection
	rootCmd.AddCommand(commitsCmd)

	commitsCmd.Flags().StringVarP(&commitsOutputFlag, "output", "o", "", "Output file, - for stdout (default: export.file from config)")
	commitsCmd.Flags().StringVar(&commitsFormatFlag, "format", "", "Export format: json or yaml")
}

func runCommits(cmd *cobra.Command) error {
	format, err := exportFormat(commitsFormatFlag)
	if err != nil {
		return err
	}

	path := commitsOutputFlag
	if path == "" {
		path = cfg.Export.File
	}
	path = resolvePath(path)

	repo, err := openRepository()
	if err != nil {
		return err
	}

	tag, raws, err := newSpinningHistory(cmd, repo).CommitsSinceLatestTag(cmd.Context())
	if err != nil {
		return toCLIError(err, tag)
	}
	parsed := commit.NewParser(cfg.ParserOptions()).ParseAll(raws)

	if path == "-" {
		if err := commit.WriteExport(cmd.OutOrStdout(), parsed, format); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		return nil
	}

	if err := commit.WriteExportFile(path, parsed, format); err != nil {
		return clierrors.ExportNotWritable(path, err)
	}
	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Exported %d commits since %s to %s", len(parsed), tag, path))
	return nil
}

// exportFormat resolves the export format from a flag value and the config.
func exportFormat(flagValue string) (commit.Format, error) {
	name := flagValue
	if name == "" {
		name = cfg.Export.Format
	}

	format, err := commit.ParseFormat(name)
	if err != nil {
		return "", clierrors.InvalidExportFormat(name)
	}
	return format, nil
}
