package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/semrel/internal/config"
	clierrors "github.com/ariel-frischer/semrel/internal/errors"
	"github.com/ariel-frischer/semrel/internal/git"
	"github.com/ariel-frischer/semrel/internal/release"
)

// Command group IDs for organizing help output
const (
	GroupRelease       = "release"
	GroupInspection    = "inspection"
	GroupConfiguration = "configuration"
)

// skipConfigAnnotation marks commands that run without loading configuration.
const skipConfigAnnotation = "semrel.skip-config"

var (
	dirFlag    string
	configFlag string
	debugFlag  bool
	plainFlag  bool

	// cfg is the configuration loaded before each command runs.
	cfg *config.Configuration
)

var rootCmd = &cobra.Command{
	Use:   "semrel",
	Short: "Conventional Commits release automation",
	Long: `semrel reads the commits made since the latest version tag, parses them
as Conventional Commits, computes the next semantic version, writes a
Markdown changelog and tags the release.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (SEMREL_*)
  2. .env file in the repository directory
  3. Project config (.semrel/config.yml or .semrel/config.json)
  4. User config (~/.config/semrel/config.yml)
  5. Built-in defaults

Source: https://github.com/ariel-frischer/semrel`,
	Example: `  # Preview the next release without writing anything
  semrel release --dry-run

  # Write CHANGELOG.md and tag the release
  semrel release

  # Print the next version
  semrel next

  # Export the parsed commits since the latest tag
  semrel commits -o parsed_commits.json`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfiguration,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupInspection, Title: "Inspection Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
	)

	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", ".", "Repository directory")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Project config file (default: .semrel/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug output on stderr")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Plain output without colors")
}

// Execute runs the root command. Errors are printed on stderr before
// they are returned; use ExitCode to turn them into a process exit code.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func loadConfiguration(cmd *cobra.Command, _ []string) error {
	if plainFlag {
		color.NoColor = true
	}

	installDebugLoggers(cmd, debugFlag)
	if _, ok := cmd.Annotations[skipConfigAnnotation]; ok {
		return nil
	}

	if info, err := os.Stat(dirFlag); err != nil || !info.IsDir() {
		return clierrors.DirectoryNotFound(dirFlag)
	}

	loaded, err := config.LoadWithOptions(config.LoadOptions{
		Dir:               dirFlag,
		ProjectConfigPath: configFlag,
	})
	if err != nil {
		return clierrors.ConfigParseError(err)
	}
	cfg = loaded

	installDebugLoggers(cmd, debugFlag || cfg.Debug)
	return nil
}

// installDebugLoggers routes [debug] lines of the git and release packages
// to the command's stderr.
func installDebugLoggers(cmd *cobra.Command, enabled bool) {
	if !enabled {
		git.SetDebugLogger(nil)
		release.SetDebugLogger(nil)
		return
	}

	w := cmd.ErrOrStderr()
	logger := func(format string, args ...any) {
		fmt.Fprintf(w, "[debug] "+format+"\n", args...)
	}
	git.SetDebugLogger(logger)
	release.SetDebugLogger(logger)
}
