// Package git provides the repository access semrel needs: reading tags,
// walking the history since the latest tag and creating release tags.
// Everything goes through the go-git library; the git CLI is never invoked.
//
// This package implements:
//   - Repository discovery from any directory inside a work tree
//   - Tag listing ordered by the committer time of the tagged commit
//   - Commit collection for the range latest-tag..HEAD, oldest first
//   - Lightweight and annotated tag creation on HEAD
package git

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
)

var (
	// ErrNoTags is returned when the repository has no tag pointing at a commit.
	ErrNoTags = errors.New("no tags found in repository")

	// ErrNotRepository is returned when no repository is found at or above the path.
	ErrNotRepository = git.ErrRepositoryNotExists

	// ErrTagExists is returned by CreateTag when the tag name is taken.
	ErrTagExists = git.ErrTagExists
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Repository wraps a go-git repository opened by Open.
type Repository struct {
	repo *git.Repository
	root string
}

// Open opens the repository containing path. An empty path means the
// current working directory. Parent directories are searched for .git.
func Open(path string) (*Repository, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	r := &Repository{repo: repo}
	if wt, err := repo.Worktree(); err == nil {
		r.root = wt.Filesystem.Root()
	}
	return r, nil
}

// Root returns the work tree root, or "" for bare repositories.
func (r *Repository) Root() string {
	return r.root
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// IsGitRepository reports whether path is inside a git repository.
func IsGitRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsGitRepository(%s): %v", path, result)
	return result
}
