package commit

import (
	"fmt"
	"time"
)

// Type is the change type of a commit. The set is closed: headers outside
// the vocabulary map to TypeOther, and any breaking marker maps to
// TypeBreaking regardless of the keyword that preceded it.
type Type int

const (
	TypeOther Type = iota
	TypeFeat
	TypeFix
	TypeChore
	TypeDocs
	TypeRefactor
	TypeTest
	TypeStyle
	TypePerf
	TypeCI
	TypeBuild
	TypeRevert
	TypeBreaking
)

// typeLabels holds the wire label of each type. Keywords match the header
// vocabulary; TypeOther and TypeBreaking have no header keyword.
var typeLabels = map[Type]string{
	TypeOther:    "other",
	TypeFeat:     "feat",
	TypeFix:      "fix",
	TypeChore:    "chore",
	TypeDocs:     "docs",
	TypeRefactor: "refactor",
	TypeTest:     "test",
	TypeStyle:    "style",
	TypePerf:     "perf",
	TypeCI:       "ci",
	TypeBuild:    "build",
	TypeRevert:   "revert",
	TypeBreaking: "BREAKING CHANGE",
}

// labelAliases accepts labels written by older exports.
var labelAliases = map[string]Type{
	"otro":            TypeOther,
	"breaking-change": TypeBreaking,
	"breaking":        TypeBreaking,
}

// String returns the wire label of the type.
func (t Type) String() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Keyword reports whether the type can appear as a header keyword.
func (t Type) Keyword() bool {
	return t != TypeOther && t != TypeBreaking && t.Valid()
}

// Valid reports whether t is one of the declared types.
func (t Type) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// ParseType resolves a wire label (or a legacy alias) to a Type.
func ParseType(label string) (Type, error) {
	for t, l := range typeLabels {
		if l == label {
			return t, nil
		}
	}
	if t, ok := labelAliases[label]; ok {
		return t, nil
	}
	return TypeOther, fmt.Errorf("unknown commit type %q", label)
}

// AllTypes returns every declared type in declaration order.
func AllTypes() []Type {
	types := make([]Type, 0, len(typeLabels))
	for t := TypeOther; t <= TypeBreaking; t++ {
		types = append(types, t)
	}
	return types
}

// MarshalText encodes the type as its wire label.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid commit type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a wire label.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Raw is a commit as read from the repository.
type Raw struct {
	ID      string
	Message string
	When    time.Time
}

// Parsed is the structured form of one Raw commit.
// Scope and Body are nil when absent; Body is never an empty string.
type Parsed struct {
	ID          string
	Type        Type
	Scope       *string
	Description string
	Body        *string
}

// IsBreaking reports whether the commit forces a major version bump.
func (p Parsed) IsBreaking() bool {
	return p.Type == TypeBreaking
}

// ScopeString returns the scope or "" when absent.
func (p Parsed) ScopeString() string {
	if p.Scope == nil {
		return ""
	}
	return *p.Scope
}

// BodyString returns the body or "" when absent.
func (p Parsed) BodyString() string {
	if p.Body == nil {
		return ""
	}
	return *p.Body
}
