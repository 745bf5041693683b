// Package progress provides terminal detection and a spinner shown while
// semrel walks the repository history.
package progress

import (
	"io"
	"os"

	"golang.org/x/term"
)

// DetectTerminalCapabilities inspects w, which is usually the command's
// stderr. Anything that is not an *os.File attached to a terminal is
// treated as a pipe: no spinner, ASCII symbols.
// NO_COLOR disables colors and SEMREL_ASCII=1 forces ASCII symbols.
func DetectTerminalCapabilities(w io.Writer) TerminalCapabilities {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return TerminalCapabilities{}
	}

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("SEMREL_ASCII") == "1"

	width := 0
	if w, _, err := term.GetSize(int(f.Fd())); err == nil {
		width = w
	}

	return TerminalCapabilities{
		IsTTY:           true,
		SupportsColor:   !noColor,
		SupportsUnicode: !forceASCII,
		Width:           width,
	}
}

// SelectSymbols returns the symbol set for the given capabilities.
// Unicode: ✓/✗ with braille spinner (set 14). ASCII: [OK]/[FAIL] with |/-\ spinner (set 9).
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✓",
			Failure:    "✗",
			SpinnerSet: 14,
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		SpinnerSet: 9,
	}
}
