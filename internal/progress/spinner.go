package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows an animated message on a terminal. On anything else it
// stays silent until Stop prints the final status line.
type Spinner struct {
	w       io.Writer
	symbols ProgressSymbols
	s       *spinner.Spinner
}

// StartSpinner starts a spinner on w with message as its suffix.
func StartSpinner(w io.Writer, caps TerminalCapabilities, message string) *Spinner {
	sp := &Spinner{w: w, symbols: SelectSymbols(caps)}
	if !caps.IsTTY {
		return sp
	}

	sp.s = spinner.New(spinner.CharSets[sp.symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(w))
	sp.s.Suffix = " " + message
	if caps.SupportsColor {
		_ = sp.s.Color("cyan")
	}
	sp.s.Start()
	return sp
}

// Stop stops the animation and prints message behind a success or
// failure symbol. An empty message prints nothing.
func (sp *Spinner) Stop(success bool, message string) {
	if sp.s != nil {
		sp.s.Stop()
	}
	if message == "" {
		return
	}

	symbol := sp.symbols.Checkmark
	if !success {
		symbol = sp.symbols.Failure
	}
	fmt.Fprintf(sp.w, "%s %s\n", symbol, message)
}

// Active reports whether the spinner animates.
func (sp *Spinner) Active() bool {
	return sp.s != nil
}
