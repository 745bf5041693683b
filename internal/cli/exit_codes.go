package cli

import (
	"errors"
	"io"

	clierrors "github.com/ariel-frischer/semrel/internal/errors"
	"github.com/ariel-frischer/semrel/internal/git"
	"github.com/ariel-frischer/semrel/internal/versioning"
)

// Exit codes for the semrel CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a generic failure (I/O, tag creation, ...)
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingDependencies indicates a missing prerequisite:
	// not a git repository, or no tag to release from
	ExitMissingDependencies = 4

	// ExitMalformedTag indicates the latest tag is not a semantic version
	ExitMalformedTag = 6
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, versioning.ErrMalformedTag):
		return ExitMalformedTag
	case errors.Is(err, git.ErrNoTags), errors.Is(err, git.ErrNotRepository):
		return ExitMissingDependencies
	}

	if cliErr := clierrors.As(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Prerequisite:
			return ExitMissingDependencies
		}
	}

	return ExitFailure
}

// toCLIError maps domain errors to their catalogue entry. Errors that
// already are CLIErrors, or that have no entry, are returned unchanged.
func toCLIError(err error, tag string) error {
	if clierrors.As(err) != nil {
		return err
	}

	switch {
	case errors.Is(err, git.ErrNotRepository):
		return clierrors.GitNotRepository(dirFlag, err)
	case errors.Is(err, git.ErrNoTags):
		return clierrors.NoTagsFound(err)
	case errors.Is(err, versioning.ErrMalformedTag):
		var malformed *versioning.MalformedTagError
		if errors.As(err, &malformed) {
			tag = malformed.Tag
		}
		return clierrors.MalformedVersionTag(tag, err)
	case errors.Is(err, git.ErrTagExists):
		return clierrors.TagExists(tag, err)
	}
	return err
}

// reportError prints err on w in the CLIError format.
func reportError(w io.Writer, err error) {
	clierrors.Fprint(w, err, plainFlag)
}
