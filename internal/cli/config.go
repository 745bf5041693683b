package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/semrel/internal/config"
	clierrors "github.com/ariel-frischer/semrel/internal/errors"
	"github.com/ariel-frischer/semrel/internal/output"
)

var (
	configShowJSON  bool
	configUserFlag  bool
	configForceFlag bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage semrel configuration",
	Long: `Manage semrel configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (SEMREL_*, nested keys joined with __)
  2. .env file in the repository directory
  3. Project config (.semrel/config.yml or .semrel/config.json)
  4. User config (~/.config/semrel/config.yml)
  5. Built-in defaults`,
	Example: `  # Show the effective configuration
  semrel config show

  # Leave chores out of the changelog
  semrel config set changelog.exclude_types chore,other

  # Create the project config
  semrel config init`,
}

var configShowCmd = &cobra.Command{
	Use:          "show",
	Short:        "Show the effective configuration and its sources",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd)
	},
}

var configKeysCmd = &cobra.Command{
	Use:         "keys",
	Short:       "List the known configuration keys",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: ""},
	Run: func(cmd *cobra.Command, args []string) {
		printConfigKeys(cmd.OutOrStdout())
	},
}

var configGetCmd = &cobra.Command{
	Use:          "get <key>",
	Short:        "Print the effective value of a key",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigGet(cmd, args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a key in the project (or user) config file",
	Long: `Set a key in the project config file, or in the user config file with
--user. The value is checked against the key type; comments and other
keys of the file are kept.`,
	Example: `  semrel config set tag.annotate true
  semrel config set export.format yaml --user`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	Annotations:  map[string]string{skipConfigAnnotation: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(cmd, args[0], args[1])
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config file with the defaults",
	Long: `Write a commented config file holding the built-in defaults.

By default the project config (.semrel/config.yml) is created; --user
creates ~/.config/semrel/config.yml instead. An existing file is left
unchanged unless --force is given.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	Annotations:  map[string]string{skipConfigAnnotation: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd)
	},
}

func init() {
	configCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configKeysCmd, configGetCmd, configSetCmd, configInitCmd)

	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "Output in JSON format")
	configSetCmd.Flags().BoolVar(&configUserFlag, "user", false, "Write the user config instead of the project config")
	configInitCmd.Flags().BoolVar(&configUserFlag, "user", false, "Create the user config instead of the project config")
	configInitCmd.Flags().BoolVarP(&configForceFlag, "force", "f", false, "Overwrite an existing config file")
}

func runConfigShow(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	if configShowJSON {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding configuration: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	printConfigSources(out)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, string(data))
	return nil
}

func printConfigSources(out io.Writer) {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintln(out, bold("Configuration Sources:"))

	type source struct {
		label config.ConfigSource
		path  string
	}
	var sources []source
	if userPath, err := config.UserConfigPath(); err == nil {
		sources = append(sources, source{label: config.SourceUser, path: userPath})
	}
	sources = append(sources,
		source{label: config.SourceProject, path: projectConfigFile()},
		source{label: config.SourceDotenv, path: filepath.Join(dirFlag, config.DotenvFile)},
	)

	for _, s := range sources {
		state := dim("(not found)")
		if fileExists(s.path) {
			state = "(loaded)"
		}
		fmt.Fprintf(out, "  %-8s %s %s\n", s.label, s.path, state)
	}
	fmt.Fprintf(out, "  %-8s %s*\n", config.SourceEnv, config.EnvPrefix)
}

func printConfigKeys(out io.Writer) {
	for _, key := range config.SortedKeys() {
		schema := config.KnownKeys[key]
		typ := schema.Type.String()
		if len(schema.AllowedValues) > 0 {
			typ += " (" + strings.Join(schema.AllowedValues, ", ") + ")"
		}
		fmt.Fprintf(out, "%s\t%s\n    %s\n", key, typ, schema.Description)
	}
}

func runConfigGet(cmd *cobra.Command, key string) error {
	node, err := config.Lookup(cfg, key)
	if err != nil {
		return unknownKeyError(err)
	}

	if node.Kind == yaml.ScalarNode {
		fmt.Fprintln(cmd.OutOrStdout(), node.Value)
		return nil
	}

	data, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	if _, err := config.GetKeySchema(key); err != nil {
		return unknownKeyError(err)
	}

	path, err := configTarget()
	if err != nil {
		return err
	}

	if err := config.SetConfigValue(path, key, value); err != nil {
		return clierrors.New(clierrors.Argument, "%v", err).
			WithHint("List the keys and their types with: semrel config keys")
	}
	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Set %s in %s", key, path))
	return nil
}

func runConfigInit(cmd *cobra.Command) error {
	path, err := configTarget()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	exists := fileExists(path)
	if exists && !configForceFlag {
		output.PrintWarning(out, fmt.Sprintf("Config exists at %s (use --force to overwrite)", path))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	if exists {
		output.PrintSuccess(out, "Config overwritten at "+path)
	} else {
		output.PrintSuccess(out, "Config created at "+path)
	}
	return nil
}

// configTarget returns the file written by config set and config init.
func configTarget() (string, error) {
	if !configUserFlag {
		return projectConfigFile(), nil
	}
	path, err := config.UserConfigPath()
	if err != nil {
		return "", fmt.Errorf("getting user config path: %w", err)
	}
	return path, nil
}

// projectConfigFile returns --config, or the default project config in --dir.
func projectConfigFile() string {
	if configFlag != "" {
		return configFlag
	}
	return filepath.Join(dirFlag, config.ProjectConfigPath())
}

func unknownKeyError(err error) error {
	return clierrors.New(clierrors.Argument, "%v", err).
		WithHint("List the known keys with: semrel config keys")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
