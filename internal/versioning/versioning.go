// Package versioning computes the next semantic version of a release from
// the parsed commits accumulated since the previous tag.
package versioning

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"

	"github.com/ariel-frischer/semrel/internal/commit"
)

// ErrMalformedTag matches every MalformedTagError via errors.Is.
var ErrMalformedTag = errors.New("malformed version tag")

// MalformedTagError is returned when a tag is not MAJOR.MINOR.PATCH with an
// optional single-letter prefix.
type MalformedTagError struct {
	Tag string
	Err error
}

func (e *MalformedTagError) Error() string {
	return fmt.Sprintf("malformed version tag %q (expected: MAJOR.MINOR.PATCH, optionally prefixed with v)", e.Tag)
}

func (e *MalformedTagError) Unwrap() error {
	return e.Err
}

// Is reports ErrMalformedTag as a match.
func (e *MalformedTagError) Is(target error) bool {
	return target == ErrMalformedTag
}

// tagPattern splits a tag into its prefix letter and the dotted triplet.
var tagPattern = regexp.MustCompile(`^([A-Za-z]?)(\d+\.\d+\.\d+)$`)

// Tag is a release tag: a semantic version plus the literal prefix it was
// written with (usually "v" or "").
type Tag struct {
	Prefix  string
	Version *semver.Version
}

// Parse parses a tag such as "v1.2.3" or "1.2.3". Pre-release and build
// metadata suffixes are rejected.
func Parse(tag string) (Tag, error) {
	m := tagPattern.FindStringSubmatch(tag)
	if m == nil {
		return Tag{}, &MalformedTagError{Tag: tag}
	}

	v, err := semver.StrictNewVersion(m[2])
	if err != nil {
		return Tag{}, &MalformedTagError{Tag: tag, Err: err}
	}

	return Tag{Prefix: m[1], Version: v}, nil
}

// String renders the tag with its original prefix.
func (t Tag) String() string {
	if t.Version == nil {
		return ""
	}
	return t.Prefix + t.Version.String()
}

// Bump returns a new tag with the given increment applied.
func (t Tag) Bump(b Bump) Tag {
	var next semver.Version
	switch b {
	case BumpMajor:
		next = t.Version.IncMajor()
	case BumpMinor:
		next = t.Version.IncMinor()
	case BumpPatch:
		next = t.Version.IncPatch()
	default:
		return t
	}
	return Tag{Prefix: t.Prefix, Version: &next}
}

// Compare orders tags by semantic version, ignoring prefixes.
func Compare(a, b Tag) int {
	return a.Version.Compare(b.Version)
}

// Next returns the version that follows current for the given batch.
// An empty batch returns current unchanged. Precedence is evaluated over
// the whole batch: one breaking commit bumps MAJOR once, whatever else the
// batch contains.
func Next(commits []commit.Parsed, current string) (string, error) {
	tag, err := Parse(current)
	if err != nil {
		return "", err
	}
	return tag.Bump(BumpFor(commits)).String(), nil
}
