package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// WriteFile writes the release block to path. The block is placed above the
// first existing release; a block with the same version heading is replaced
// in place. Other release blocks are kept byte for byte. A missing file is
// created.
func WriteFile(path string, r *Release) error {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading changelog: %w", err)
	}

	block, err := RenderString(r)
	if err != nil {
		return err
	}

	content := Merge(string(existing), block, r.Version)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing changelog: %w", err)
	}
	return nil
}

// Merge inserts a rendered release block into an existing document.
// Version headings match as in Document.Release, so "1.2.0" replaces a
// "## v1.2.0" block.
func Merge(existing, block, version string) string {
	if strings.TrimSpace(existing) == "" {
		return block
	}

	lines := strings.SplitAfter(existing, "\n")
	want := NormalizeVersion(version)

	first, match := -1, -1
	for i, l := range lines {
		line := strings.TrimRight(l, " \t\r\n")
		if !isReleaseHeading(line) {
			continue
		}
		if first == -1 {
			first = i
		}
		if NormalizeVersion(strings.TrimPrefix(line, "## ")) == want {
			match = i
			break
		}
	}

	if match >= 0 {
		end := len(lines)
		for j := match + 1; j < len(lines); j++ {
			if isReleaseHeading(lines[j]) {
				end = j
				break
			}
		}
		return joinBlocks(strings.Join(lines[:match], ""), block, strings.Join(lines[end:], ""))
	}

	if first == -1 {
		return withBlankLine(existing) + block
	}

	return joinBlocks(withBlankLine(strings.Join(lines[:first], "")), block, strings.Join(lines[first:], ""))
}

// joinBlocks places block between before and after, separating it from the
// following release with a blank line.
func joinBlocks(before, block, after string) string {
	if after == "" {
		return before + block
	}
	return before + block + "\n" + after
}

// withBlankLine ensures non-empty text ends with exactly one blank line.
func withBlankLine(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return strings.TrimRight(s, "\n") + "\n\n"
}
