// Package history keeps a journal of the releases made by semrel.
package history

import "time"

// HistoryFileName is the journal file inside the state directory.
const HistoryFileName = "history.yaml"

// DefaultMaxEntries is the number of releases kept in the journal.
const DefaultMaxEntries = 500

// HistoryEntry records one release.
type HistoryEntry struct {
	Timestamp  time.Time `yaml:"timestamp"`
	Repository string    `yaml:"repository"`
	Previous   string    `yaml:"previous"`
	Version    string    `yaml:"version"`
	Bump       string    `yaml:"bump"`
	Commits    int       `yaml:"commits"`
	Changelog  string    `yaml:"changelog,omitempty"`
	Tagged     bool      `yaml:"tagged"`
	Duration   string    `yaml:"duration"`
}

// HistoryFile is the on-disk shape of the journal, oldest entry first.
type HistoryFile struct {
	Entries []HistoryEntry `yaml:"entries"`
}
