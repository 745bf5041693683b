package config

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/ariel-frischer/semrel/internal/commit"
)

// ValueType is the kind of value a configuration key holds.
type ValueType int

const (
	TypeBool ValueType = iota
	TypeString
	TypeEnum
	TypeList
)

var valueTypeNames = [...]string{"bool", "string", "enum", "list"}

func (t ValueType) String() string {
	if t >= 0 && int(t) < len(valueTypeNames) {
		return valueTypeNames[t]
	}
	return "unknown"
}

// KeySchema describes one settable key for `semrel config set`.
type KeySchema struct {
	Path string
	Type ValueType
	// AllowedValues restricts enum values and list items.
	AllowedValues []string
	// Optional enums also accept the empty string.
	Optional    bool
	Description string
	Default     any
}

// KnownKeys maps dotted paths to their schema.
var KnownKeys = indexKeys(
	KeySchema{
		Path:        "changelog.file",
		Type:        TypeString,
		Description: "Markdown changelog updated by changelog and release",
		Default:     "CHANGELOG.md",
	},
	KeySchema{
		Path:          "changelog.exclude_types",
		Type:          TypeList,
		AllowedValues: typeLabels(),
		Description:   "Commit types left out of the changelog (comma-separated)",
		Default:       []string{},
	},
	KeySchema{
		Path:        "export.file",
		Type:        TypeString,
		Description: "Output file of the commits command",
		Default:     "parsed_commits.json",
	},
	KeySchema{
		Path:          "export.format",
		Type:          TypeEnum,
		AllowedValues: []string{"json", "yaml"},
		Optional:      true,
		Description:   "Export format (empty = from file extension)",
		Default:       "",
	},
	KeySchema{
		Path:        "parser.breaking_footer",
		Type:        TypeBool,
		Description: "Treat a BREAKING CHANGE: footer as a breaking change",
		Default:     true,
	},
	KeySchema{
		Path:        "tag.annotate",
		Type:        TypeBool,
		Description: "Create annotated release tags",
		Default:     false,
	},
	KeySchema{
		Path:        "tag.message",
		Type:        TypeString,
		Description: "Annotated tag message, {{version}} is replaced",
		Default:     DefaultTagMessage,
	},
	KeySchema{
		Path:        "tag.tagger_name",
		Type:        TypeString,
		Description: "Tagger name for annotated tags (empty = git config)",
		Default:     "",
	},
	KeySchema{
		Path:        "tag.tagger_email",
		Type:        TypeString,
		Description: "Tagger email for annotated tags (empty = git config)",
		Default:     "",
	},
	KeySchema{
		Path:        "debug",
		Type:        TypeBool,
		Description: "Print [debug] lines on stderr",
		Default:     false,
	},
)

func indexKeys(schemas ...KeySchema) map[string]KeySchema {
	index := make(map[string]KeySchema, len(schemas))
	for _, s := range schemas {
		index[s.Path] = s
	}
	return index
}

// SortedKeys returns the KnownKeys paths in lexical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for key := range KnownKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func typeLabels() []string {
	var labels []string
	for _, t := range commit.AllTypes() {
		labels = append(labels, t.String())
	}
	return labels
}

// ErrUnknownKey is returned for a key missing from KnownKeys.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema of a known key.
func GetKeySchema(path string) (KeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return KeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ParseValue converts the command-line form of a value for key into the
// Go value written to the config file: bool, string or []string.
func ParseValue(key, value string) (any, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return nil, err
	}
	return schema.Parse(value)
}

// Parse converts value according to the schema type.
func (s KeySchema) Parse(value string) (any, error) {
	switch s.Type {
	case TypeBool:
		switch strings.ToLower(value) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	case TypeString:
		return value, nil
	case TypeEnum:
		if value == "" && s.Optional {
			return value, nil
		}
		return value, s.allow(value)
	case TypeList:
		items := []string{}
		for _, item := range strings.Split(value, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			if err := s.allow(item); err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unsupported type: %v", s.Type)
	}
}

func (s KeySchema) allow(value string) error {
	if slices.Contains(s.AllowedValues, value) {
		return nil
	}
	return fmt.Errorf("invalid value: %q (valid options: %s)", value, strings.Join(s.AllowedValues, ", "))
}
