package changelog

import (
	"github.com/ariel-frischer/semrel/internal/commit"
)

// Section names in canonical render order.
const (
	SectionBreaking      = "Breaking Changes"
	SectionFeatures      = "Features"
	SectionFixes         = "Bug Fixes"
	SectionDocumentation = "Documentation"
	SectionPerformance   = "Performance Improvements"
	SectionRefactoring   = "Code Refactoring"
	SectionReverts       = "Reverts"
	SectionTests         = "Tests"
	SectionBuild         = "Build System"
	SectionCI            = "Continuous Integration"
	SectionStyles        = "Styles"
	SectionChores        = "Chores"
	SectionOther         = "Other Changes"
)

// sectionTable maps every commit type to its section, in render order.
var sectionTable = []struct {
	name string
	typ  commit.Type
}{
	{SectionBreaking, commit.TypeBreaking},
	{SectionFeatures, commit.TypeFeat},
	{SectionFixes, commit.TypeFix},
	{SectionDocumentation, commit.TypeDocs},
	{SectionPerformance, commit.TypePerf},
	{SectionRefactoring, commit.TypeRefactor},
	{SectionReverts, commit.TypeRevert},
	{SectionTests, commit.TypeTest},
	{SectionBuild, commit.TypeBuild},
	{SectionCI, commit.TypeCI},
	{SectionStyles, commit.TypeStyle},
	{SectionChores, commit.TypeChore},
	{SectionOther, commit.TypeOther},
}

// SectionNames returns all section names in render order.
func SectionNames() []string {
	names := make([]string, len(sectionTable))
	for i, s := range sectionTable {
		names[i] = s.name
	}
	return names
}

// SectionFor returns the section a commit type is filed under.
func SectionFor(t commit.Type) string {
	for _, s := range sectionTable {
		if s.typ == t {
			return s.name
		}
	}
	return SectionOther
}

// Section is one category of a release with its entries in commit order.
type Section struct {
	Name    string
	Entries []string
}

// Release is the changelog block of a single version. Sections holds only
// non-empty sections, in render order.
type Release struct {
	Version  string
	Sections []Section
}

// Group files commit descriptions into sections for version. Commits whose
// type appears in exclude are skipped.
func Group(version string, commits []commit.Parsed, exclude ...commit.Type) *Release {
	skip := make(map[commit.Type]bool, len(exclude))
	for _, t := range exclude {
		skip[t] = true
	}

	buckets := make(map[string][]string)
	for _, c := range commits {
		if skip[c.Type] {
			continue
		}
		name := SectionFor(c.Type)
		buckets[name] = append(buckets[name], c.Description)
	}

	release := &Release{Version: version}
	for _, s := range sectionTable {
		if entries := buckets[s.name]; len(entries) > 0 {
			release.Sections = append(release.Sections, Section{Name: s.name, Entries: entries})
		}
	}
	return release
}

// Section returns the entries filed under name, or nil.
func (r *Release) Section(name string) []string {
	for _, s := range r.Sections {
		if s.Name == name {
			return s.Entries
		}
	}
	return nil
}

// IsEmpty returns true if the release has no entries in any section.
func (r *Release) IsEmpty() bool {
	return r.Count() == 0
}

// Count returns the total number of entries across all sections.
func (r *Release) Count() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Entries)
	}
	return n
}

// Map returns the section to entries mapping of the release.
func (r *Release) Map() map[string][]string {
	m := make(map[string][]string, len(r.Sections))
	for _, s := range r.Sections {
		m[s.Name] = append([]string(nil), s.Entries...)
	}
	return m
}
