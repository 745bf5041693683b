package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/ariel-frischer/semrel/internal/commit"
)

// CommitsSince returns the commits reachable from HEAD but not from tag,
// the equivalent of `git log tag..HEAD`, ordered oldest first by committer
// time. Merged side branches interleave with the mainline by date.
func (r *Repository) CommitsSince(ctx context.Context, tag Tag) ([]commit.Raw, error) {
	excluded, err := r.ancestors(ctx, tag.Commit)
	if err != nil {
		return nil, fmt.Errorf("walking history of %s: %w", tag.Name, err)
	}

	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}
	headCommit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("reading HEAD commit: %w", err)
	}

	var commits []commit.Raw
	iter := object.NewCommitIterCTime(headCommit, excluded, nil)
	defer iter.Close()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := iter.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("walking history from HEAD: %w", err)
		}
		commits = append(commits, commit.Raw{
			ID:      c.Hash.String(),
			Message: c.Message,
			When:    c.Committer.When,
		})
	}

	slices.Reverse(commits)
	logDebug("[git] %d commits since %s", len(commits), tag.Name)
	return commits, nil
}

// CommitsSinceLatestTag returns the latest tag name together with the
// commits made after it, oldest first. ErrNoTags is returned when the
// repository has no usable tag.
func (r *Repository) CommitsSinceLatestTag(ctx context.Context) (string, []commit.Raw, error) {
	tag, err := r.LatestTag(ctx)
	if err != nil {
		return "", nil, err
	}

	commits, err := r.CommitsSince(ctx, tag)
	if err != nil {
		return "", nil, err
	}
	return tag.Name, commits, nil
}

// ancestors returns from and every commit reachable from it.
func (r *Repository) ancestors(ctx context.Context, from plumbing.Hash) (map[plumbing.Hash]bool, error) {
	iter, err := r.repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	seen := make(map[plumbing.Hash]bool)
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seen, nil
}
