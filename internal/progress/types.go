package progress

// TerminalCapabilities describes what the attached terminal supports.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int // 0 when unknown
}

// ProgressSymbols holds the status symbols and the briandowns/spinner
// character set index to use.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int
}
