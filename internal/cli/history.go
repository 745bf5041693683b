package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/semrel/internal/config"
	clierrors "github.com/ariel-frischer/semrel/internal/errors"
	"github.com/ariel-frischer/semrel/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View the releases made with semrel",
	Long: `View the journal of releases made by 'semrel release' with timestamp,
repository, version change, commit count and duration.

The journal lives in the user state directory and keeps the most recent
releases across all repositories.`,
	Example: `  # Last five releases
  semrel history -n 5

  # Releases of one repository
  semrel history --repo myapp`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	Annotations:  map[string]string{skipConfigAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		stateDir, err := config.StateDir()
		if err != nil {
			return fmt.Errorf("locating state directory: %w", err)
		}
		return runHistoryWithStateDir(cmd, stateDir)
	},
}

func init() {
	historyCmd.GroupID = GroupInspection
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringP("repo", "r", "", "Filter by repository path (substring match)")
	historyCmd.Flags().IntP("limit", "n", 0, "Limit to last N entries (most recent)")
	historyCmd.Flags().BoolP("clear", "c", false, "Clear all history")
}

// runHistoryWithStateDir runs the history command against stateDir.
func runHistoryWithStateDir(cmd *cobra.Command, stateDir string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	repoFilter, _ := cmd.Flags().GetString("repo")
	limit, _ := cmd.Flags().GetInt("limit")

	if limit < 0 {
		return clierrors.New(clierrors.Argument, "limit must be positive, got %d", limit).
			WithHint("Use -n with a positive number, or omit it to show everything")
	}

	if clearFlag {
		if err := history.ClearHistory(stateDir); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	}

	histFile, err := history.LoadHistory(stateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	entries := filterEntries(histFile.Entries, repoFilter, limit)
	if len(entries) == 0 {
		if repoFilter != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No releases recorded for '%s'.\n", repoFilter)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No releases recorded.")
		}
		return nil
	}

	displayEntries(cmd, entries)
	return nil
}

// filterEntries keeps the entries whose repository contains repoFilter,
// then the last limit of them.
func filterEntries(entries []history.HistoryEntry, repoFilter string, limit int) []history.HistoryEntry {
	var result []history.HistoryEntry
	for _, entry := range entries {
		if repoFilter == "" || strings.Contains(entry.Repository, repoFilter) {
			result = append(result, entry)
		}
	}

	if limit > 0 && len(result) > limit {
		result = result[len(result)-limit:]
	}
	return result
}

func displayEntries(cmd *cobra.Command, entries []history.HistoryEntry) {
	out := cmd.OutOrStdout()

	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	for _, entry := range entries {
		timestamp := entry.Timestamp.Local().Format("2006-01-02 15:04:05")

		tagged := green("tagged")
		if !entry.Tagged {
			tagged = yellow("untagged")
		}

		fmt.Fprintf(out, "%s  %s -> %s  %-5s  %3d commits  %s  %s  %s\n",
			cyan(timestamp),
			entry.Previous,
			entry.Version,
			entry.Bump,
			entry.Commits,
			tagged,
			entry.Duration,
			entry.Repository,
		)
	}
}
