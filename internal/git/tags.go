package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/ariel-frischer/semrel/internal/versioning"
)

// Tag is a tag resolved to the commit it points at.
type Tag struct {
	Name      string
	Commit    plumbing.Hash
	When      time.Time // committer time of Commit
	Annotated bool
}

// Tags returns every tag that resolves to a commit, ordered from oldest
// to newest by the committer time of the tagged commit. Tags on the same
// commit time are ordered by semantic version when both names parse,
// then by name.
func (r *Repository) Tags(ctx context.Context) ([]Tag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	var tags []Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		tag, ok, err := r.resolveTag(ref)
		if err != nil {
			return err
		}
		if ok {
			tags = append(tags, tag)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading tags: %w", err)
	}

	sort.SliceStable(tags, func(i, j int) bool {
		return tagLess(tags[i], tags[j])
	})

	logDebug("[git] found %d tags", len(tags))
	return tags, nil
}

// LatestTag returns the most recent tag, or ErrNoTags.
func (r *Repository) LatestTag(ctx context.Context) (Tag, error) {
	tags, err := r.Tags(ctx)
	if err != nil {
		return Tag{}, err
	}
	if len(tags) == 0 {
		return Tag{}, ErrNoTags
	}

	latest := tags[len(tags)-1]
	logDebug("[git] latest tag: %s (%s)", latest.Name, latest.Commit)
	return latest, nil
}

// resolveTag peels ref to a commit. Tags pointing at trees or blobs
// are reported with ok=false.
func (r *Repository) resolveTag(ref *plumbing.Reference) (Tag, bool, error) {
	tag := Tag{Name: ref.Name().Short()}

	var c *object.Commit
	tagObj, err := r.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		tag.Annotated = true
		c, err = tagObj.Commit()
		if errors.Is(err, object.ErrUnsupportedObject) {
			logDebug("[git] skipping tag %s: does not point at a commit", tag.Name)
			return Tag{}, false, nil
		}
		if err != nil {
			return Tag{}, false, fmt.Errorf("peeling tag %s: %w", tag.Name, err)
		}
	case errors.Is(err, plumbing.ErrObjectNotFound):
		c, err = r.repo.CommitObject(ref.Hash())
		if err != nil {
			logDebug("[git] skipping tag %s: %v", tag.Name, err)
			return Tag{}, false, nil
		}
	default:
		return Tag{}, false, fmt.Errorf("reading tag %s: %w", tag.Name, err)
	}

	tag.Commit = c.Hash
	tag.When = c.Committer.When
	return tag, true, nil
}

func tagLess(a, b Tag) bool {
	if !a.When.Equal(b.When) {
		return a.When.Before(b.When)
	}

	va, errA := versioning.Parse(a.Name)
	vb, errB := versioning.Parse(b.Name)
	if errA == nil && errB == nil {
		if c := versioning.Compare(va, vb); c != 0 {
			return c < 0
		}
	}

	return a.Name < b.Name
}

// TagOptions controls CreateTag. A non-empty Message creates an
// annotated tag; otherwise the tag is lightweight.
type TagOptions struct {
	Message     string
	TaggerName  string
	TaggerEmail string
}

// CreateTag creates a tag named name on HEAD. Annotated tags take the
// tagger from opts, falling back to the user section of the git config.
func (r *Repository) CreateTag(ctx context.Context, name string, opts TagOptions) (*plumbing.Reference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	var createOpts *git.CreateTagOptions
	if opts.Message != "" {
		createOpts = &git.CreateTagOptions{
			Message: opts.Message,
			Tagger:  r.tagger(opts),
		}
	}

	logDebug("[git] creating tag %s at %s (annotated: %v)", name, head.Hash(), createOpts != nil)

	ref, err := r.repo.CreateTag(name, head.Hash(), createOpts)
	if err != nil {
		return nil, fmt.Errorf("creating tag %s: %w", name, err)
	}
	return ref, nil
}

// tagger builds the signature for annotated tags.
func (r *Repository) tagger(opts TagOptions) *object.Signature {
	sig := &object.Signature{
		Name:  opts.TaggerName,
		Email: opts.TaggerEmail,
		When:  time.Now(),
	}

	if sig.Name == "" || sig.Email == "" {
		if cfg, err := r.repo.ConfigScoped(config.GlobalScope); err == nil {
			if sig.Name == "" {
				sig.Name = cfg.User.Name
			}
			if sig.Email == "" {
				sig.Email = cfg.User.Email
			}
		}
	}

	if sig.Name == "" {
		sig.Name = "semrel"
	}
	if sig.Email == "" {
		sig.Email = "semrel@localhost"
	}
	return sig
}
