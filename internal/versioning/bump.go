package versioning

import "github.com/ariel-frischer/semrel/internal/commit"

// Bump is the size of a version increment.
type Bump int

const (
	BumpNone Bump = iota
	BumpPatch
	BumpMinor
	BumpMajor
)

// String returns a human-readable name for the bump.
func (b Bump) String() string {
	switch b {
	case BumpPatch:
		return "patch"
	case BumpMinor:
		return "minor"
	case BumpMajor:
		return "major"
	default:
		return "none"
	}
}

// BumpFor returns the increment a batch of commits calls for.
func BumpFor(commits []commit.Parsed) Bump {
	if len(commits) == 0 {
		return BumpNone
	}

	bump := BumpPatch
	for _, c := range commits {
		switch c.Type {
		case commit.TypeBreaking:
			return BumpMajor
		case commit.TypeFeat:
			bump = BumpMinor
		}
	}
	return bump
}
