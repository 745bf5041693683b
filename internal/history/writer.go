package history

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Writer appends releases to the journal in StateDir, keeping at most
// MaxEntries of them. Zero MaxEntries keeps every release.
type Writer struct {
	StateDir   string
	MaxEntries int
	// Warnings receives LogEntry failures. Defaults to os.Stderr.
	Warnings io.Writer

	mu sync.Mutex
}

func NewWriter(stateDir string, maxEntries int) *Writer {
	return &Writer{
		StateDir:   stateDir,
		MaxEntries: maxEntries,
		Warnings:   os.Stderr,
	}
}

// LogEntry records entry. Failures are reported on Warnings and never
// returned: a release that succeeded is not failed by its journal.
func (w *Writer) LogEntry(entry HistoryEntry) {
	if err := w.append(entry); err != nil && w.Warnings != nil {
		fmt.Fprintf(w.Warnings, "Warning: failed to log history: %v\n", err)
	}
}

func (w *Writer) append(entry HistoryEntry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	journal, err := LoadHistory(w.StateDir)
	if err != nil {
		return err
	}

	journal.Entries = append(journal.Entries, entry)
	if over := len(journal.Entries) - w.MaxEntries; w.MaxEntries > 0 && over > 0 {
		journal.Entries = journal.Entries[over:]
	}
	return SaveHistory(w.StateDir, journal)
}
