package commit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the serialization of an export file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Record is the export shape of one parsed commit. Field names follow the
// original export format consumed by downstream tooling.
type Record struct {
	Commit  string        `json:"commit" yaml:"commit"`
	Message RecordMessage `json:"mensaje" yaml:"mensaje"`
}

// RecordMessage holds the structured message of a Record.
// Absent scope and body serialize as null.
type RecordMessage struct {
	Type        Type    `json:"tipo" yaml:"tipo"`
	Scope       *string `json:"escopo" yaml:"escopo"`
	Description string  `json:"descripcion" yaml:"descripcion"`
	Body        *string `json:"cuerpo" yaml:"cuerpo"`
}

// ParseFormat validates a format name. An empty name yields "".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return "", nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (expected: json or yaml)", name)
	}
}

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ToRecords converts parsed commits to export records, preserving order.
func ToRecords(commits []Parsed) []Record {
	records := make([]Record, len(commits))
	for i, c := range commits {
		records[i] = Record{
			Commit: c.ID,
			Message: RecordMessage{
				Type:        c.Type,
				Scope:       c.Scope,
				Description: c.Description,
				Body:        c.Body,
			},
		}
	}
	return records
}

// FromRecords converts export records back to parsed commits.
// A blank body is normalized to nil.
func FromRecords(records []Record) []Parsed {
	commits := make([]Parsed, len(records))
	for i, r := range records {
		body := r.Message.Body
		if body != nil && strings.TrimSpace(*body) == "" {
			body = nil
		}
		commits[i] = Parsed{
			ID:          r.Commit,
			Type:        r.Message.Type,
			Scope:       r.Message.Scope,
			Description: r.Message.Description,
			Body:        body,
		}
	}
	return commits
}

// WriteExport serializes commits to w. Non-ASCII text is written as-is.
func WriteExport(w io.Writer, commits []Parsed, format Format) error {
	records := ToRecords(commits)

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encoding YAML export: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encoding JSON export: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteExportFile writes commits to path, replacing any existing file.
// An empty format is inferred from the path.
func WriteExportFile(path string, commits []Parsed, format Format) error {
	if format == "" {
		format = FormatFromPath(path)
	}

	var buf bytes.Buffer
	if err := WriteExport(&buf, commits, format); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}

// ReadExport decodes an export produced by WriteExport.
func ReadExport(r io.Reader, format Format) ([]Parsed, error) {
	var records []Record

	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&records); err != nil && err != io.EOF {
			return nil, fmt.Errorf("parsing YAML export: %w", err)
		}
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("parsing JSON export: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	return FromRecords(records), nil
}

// ReadExportFile reads an export file, inferring the format from its path
// when format is empty.
func ReadExportFile(path string, format Format) ([]Parsed, error) {
	if format == "" {
		format = FormatFromPath(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening export file: %w", err)
	}
	defer f.Close()

	return ReadExport(f, format)
}
