package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette holds the decorations of one rendering mode.
type palette struct {
	label    func(a ...any) string
	category func(a ...any) string
	message  func(a ...any) string
	heading  func(a ...any) string
	usage    func(a ...any) string
	bullet   string
}

func plainText(a ...any) string { return fmt.Sprint(a...) }

var (
	plainPalette = palette{
		label:    plainText,
		category: plainText,
		message:  plainText,
		heading:  plainText,
		usage:    plainText,
		bullet:   "•",
	}
	colorPalette = palette{
		label:    color.New(color.FgRed, color.Bold).SprintFunc(),
		category: color.New(color.FgYellow).SprintFunc(),
		message:  color.New(color.FgRed).SprintFunc(),
		heading:  color.New(color.FgGreen, color.Bold).SprintFunc(),
		usage:    color.New(color.FgCyan).SprintFunc(),
		bullet:   color.New(color.FgGreen).Sprint("•"),
	}
)

// Format renders err as
//
//	Error [Category]: message
//
//	Usage: syntax
//
//	To fix this:
//	  • step
//
// with colors unless plain is set. color.NoColor still disables colors
// when the output is not a terminal.
func Format(err *CLIError, plain bool) string {
	if err == nil {
		return ""
	}
	p := colorPalette
	if plain {
		p = plainPalette
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", p.heading("Usage:"), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.heading("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet, step)
		}
	}
	return sb.String()
}

// Fprint writes err to w. Errors without a CLIError in their chain are
// shown as Runtime errors.
func Fprint(w io.Writer, err error, plain bool) {
	if err == nil {
		return
	}
	cliErr := As(err)
	if cliErr == nil {
		cliErr = Wrap(err, Runtime, "")
	}
	fmt.Fprint(w, Format(cliErr, plain))
}
