package changelog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Document is a parsed changelog file. Releases appear in file order,
// newest first for files written by WriteFile.
type Document struct {
	Releases []Release
}

// Load reads and parses a changelog file from the given path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a Markdown changelog. Only `## `, `### ` and `- ` lines carry
// structure; any other line (titles, prose, blank lines) is ignored, as are
// list items outside a section.
func Parse(r io.Reader) (*Document, error) {
	doc := &Document{}
	var release *Release
	var section *Section

	flushSection := func() {
		if release != nil && section != nil && len(section.Entries) > 0 {
			release.Sections = append(release.Sections, *section)
		}
		section = nil
	}
	flushRelease := func() {
		flushSection()
		if release != nil {
			doc.Releases = append(doc.Releases, *release)
		}
		release = nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		// Trailing blanks belong to the entry: "- " is an empty description.
		line := strings.TrimSuffix(scanner.Text(), "\r")

		switch {
		case isReleaseHeading(line):
			flushRelease()
			release = &Release{Version: strings.TrimSpace(line[len("## "):])}
		case strings.HasPrefix(line, "### ") && release != nil:
			flushSection()
			section = &Section{Name: strings.TrimSpace(line[len("### "):])}
		case strings.HasPrefix(line, "- ") && section != nil:
			section.Entries = append(section.Entries, line[len("- "):])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}
	flushRelease()

	return doc, nil
}

// isReleaseHeading reports whether line opens a release block.
func isReleaseHeading(line string) bool {
	return strings.HasPrefix(line, "## ")
}
