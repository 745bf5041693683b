package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// SectionStyle defines the color and icon for a changelog section.
type SectionStyle struct {
	Color *color.Color
	Icon  string
}

// sectionStyles maps section names to their terminal styling.
var sectionStyles = map[string]SectionStyle{
	SectionBreaking:      {Color: color.New(color.FgRed, color.Bold), Icon: "⚠"},
	SectionFeatures:      {Color: color.New(color.FgGreen), Icon: "✓"},
	SectionFixes:         {Color: color.New(color.FgYellow), Icon: "⚡"},
	SectionDocumentation: {Color: color.New(color.FgBlue), Icon: "≡"},
	SectionPerformance:   {Color: color.New(color.FgMagenta), Icon: "»"},
}

// defaultStyle is used for sections without a dedicated style.
var defaultStyle = SectionStyle{Color: color.New(color.Faint), Icon: "•"}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes a release preview to w with terminal styling.
// Plain output is identical to the Markdown rendering.
func FormatTerminal(w io.Writer, r *Release, opts FormatOptions) error {
	if opts.Plain {
		return Render(w, r)
	}

	width := resolveWidth(opts.MaxWidth)

	bold := color.New(color.Bold).SprintFunc()
	if _, err := fmt.Fprintf(w, "## %s\n", bold(r.Version)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if r.IsEmpty() {
		_, err := fmt.Fprintln(w, color.New(color.Faint).Sprint("\n  (no changes)"))
		return err
	}

	for _, s := range r.Sections {
		if err := writeSection(w, s, width); err != nil {
			return fmt.Errorf("formatting section %s: %w", s.Name, err)
		}
	}

	return nil
}

// styleFor returns the style of a section.
func styleFor(name string) SectionStyle {
	if style, ok := sectionStyles[name]; ok {
		return style
	}
	return defaultStyle
}

// writeSection writes a single section header and its entries.
func writeSection(w io.Writer, s Section, width int) error {
	style := styleFor(s.Name)
	colored := style.Color.SprintFunc()

	if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(s.Name)); err != nil {
		return err
	}

	prefix := "  - "
	for _, entry := range s.Entries {
		wrapped := wrapText(entry, width-len(prefix), "    ")
		if _, err := fmt.Fprintf(w, "%s%s\n", prefix, wrapped); err != nil {
			return err
		}
	}

	return nil
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth runes, using indent for
// continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	runes := []rune(text)
	if maxWidth <= 0 || len(runes) <= maxWidth {
		return text
	}

	var lines []string
	remaining := runes

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, string(remaining[:breakPoint]))
		remaining = []rune(strings.TrimLeft(string(remaining[breakPoint:]), " "))
	}

	if len(remaining) > 0 {
		lines = append(lines, string(remaining))
	}

	return strings.Join(lines, "\n"+indent)
}
