package errors

import (
	"strings"
)

// Messages shared by the commands, so the same failure reads the same way
// wherever it surfaces.

func GitNotRepository(dir string, err error) *CLIError {
	return New(Prerequisite, "not a git repository: %s", dir).
		WithCause(err).
		WithHint("Initialize with: git init",
			"Or point semrel at a repository with --dir <path>")
}

func NoTagsFound(err error) *CLIError {
	return New(Prerequisite, "no tags found in repository").
		WithCause(err).
		WithHint("Create the first release tag with: semrel tag v0.1.0",
			"Or with git: git tag v0.1.0")
}

// MalformedVersionTag reports a latest tag that is not MAJOR.MINOR.PATCH.
func MalformedVersionTag(tag string, err error) *CLIError {
	return New(Prerequisite, "latest tag %q is not a version (expected MAJOR.MINOR.PATCH with an optional v prefix)", tag).
		WithCause(err).
		WithHint("Tag the latest release with a version, e.g.: semrel tag v1.2.3",
			"Pre-release and build metadata suffixes are not supported")
}

func TagExists(name string, err error) *CLIError {
	return New(Runtime, "tag already exists: %s", name).
		WithCause(err).
		WithHint("Commit new changes before releasing again",
			"Or write only the changelog with: semrel release --no-tag")
}

func MissingTagName() *CLIError {
	return New(Argument, "tag name is required").
		WithUsage("semrel tag <name> [-m <message>]").
		WithHint("Example: semrel tag v1.0.0")
}

func ChangelogNotWritable(path string, err error) *CLIError {
	return Wrap(err, Runtime, "cannot write changelog: "+path).
		WithHint("Check file permissions: ls -la "+path,
			"Ensure parent directory exists and is writable")
}

func ChangelogNotReadable(path string, err error) *CLIError {
	return Wrap(err, Prerequisite, "cannot read changelog: "+path).
		WithHint("Generate it with: semrel changelog",
			"Or pass another file with --file <path>")
}

// VersionNotInChangelog lists the versions the changelog does have.
func VersionNotInChangelog(version string, available []string) *CLIError {
	cliErr := New(Argument, "version not found in changelog: %s", version).
		WithHint("List the recorded versions with: semrel changelog list")
	if len(available) > 0 {
		cliErr.WithHint("Available versions: " + strings.Join(available, ", "))
	}
	return cliErr
}

func ExportNotWritable(path string, err error) *CLIError {
	return Wrap(err, Runtime, "cannot write commit export: "+path).
		WithHint("Check file permissions: ls -la "+path,
			"Or choose another file with --output <path>")
}

func ExportNotReadable(path string, err error) *CLIError {
	return Wrap(err, Argument, "cannot read commit export: "+path).
		WithHint("Create one with: semrel commits -o "+path,
			"Exports must be JSON or YAML lists of {commit, mensaje} records")
}

func InvalidExportFormat(format string) *CLIError {
	return New(Argument, "invalid export format: %s", format).
		WithUsage("semrel commits --format json|yaml").
		WithHint("Valid formats: json, yaml")
}

func ConfigParseError(err error) *CLIError {
	return Wrap(err, Configuration, "failed to load configuration").
		WithHint("Check .semrel/config.yml for YAML syntax errors",
			"Inspect the effective values with: semrel config show",
			"Reset to defaults with: semrel config init --force")
}

func InvalidFlagCombination(flags string, reason string) *CLIError {
	return New(Argument, "invalid flag combination: %s", flags).
		WithHint(reason, "Use 'semrel <command> --help' to see valid options")
}

func DirectoryNotFound(path string) *CLIError {
	return New(Prerequisite, "directory not found: %s", path).
		WithHint("Check that the path passed to --dir is correct")
}
