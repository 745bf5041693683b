package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/semrel/internal/commit"
)

// Render writes the Markdown block of a release: a `## version` heading
// followed by one `### section` list per non-empty section.
//
// The function is idempotent - given the same input, it produces identical output.
func Render(w io.Writer, r *Release) error {
	if _, err := io.WriteString(w, "## "+r.Version+"\n"); err != nil {
		return fmt.Errorf("rendering version heading: %w", err)
	}

	for _, s := range r.Sections {
		if len(s.Entries) == 0 {
			continue
		}
		if err := renderSection(w, s); err != nil {
			return fmt.Errorf("rendering section %s: %w", s.Name, err)
		}
	}

	return nil
}

// RenderString is a convenience function that renders to a string.
func RenderString(r *Release) (string, error) {
	var b strings.Builder
	if err := Render(&b, r); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderCommits groups commits and renders them as the block for version.
func RenderCommits(w io.Writer, commits []commit.Parsed, version string) error {
	return Render(w, Group(version, commits))
}

// renderSection writes a single section with its entries.
func renderSection(w io.Writer, s Section) error {
	if _, err := io.WriteString(w, "\n### "+s.Name+"\n"); err != nil {
		return err
	}

	for _, entry := range s.Entries {
		if _, err := io.WriteString(w, "- "+entry+"\n"); err != nil {
			return err
		}
	}

	return nil
}
