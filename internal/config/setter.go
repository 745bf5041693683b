package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyKeyPath is returned for an empty dotted key.
var ErrEmptyKeyPath = errors.New("empty key path")

// ParseKeyPath splits a dotted key ("tag.annotate") into its segments.
func ParseKeyPath(path string) ([]string, error) {
	if path == "" {
		return nil, ErrEmptyKeyPath
	}
	parts := strings.Split(path, ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("invalid key path %q: empty segment", path)
		}
	}
	return parts, nil
}

// SetNestedValue sets keyPath to value inside a YAML document, creating
// intermediate mappings as needed. Existing keys keep their position and
// line comments.
func SetNestedValue(root *yaml.Node, keyPath []string, value interface{}) error {
	if len(keyPath) == 0 {
		return ErrEmptyKeyPath
	}

	if root.Kind == 0 {
		root.Kind = yaml.DocumentNode
	}
	if root.Kind != yaml.DocumentNode {
		return fmt.Errorf("expected a YAML document, got kind %d", root.Kind)
	}
	if len(root.Content) == 0 {
		root.Content = append(root.Content, newMapping())
	}

	current := root.Content[0]
	if current.Kind != yaml.MappingNode {
		return errors.New("config root is not a mapping")
	}

	for i, key := range keyPath {
		child := mappingValue(current, key)

		if i == len(keyPath)-1 {
			var valueNode yaml.Node
			if err := valueNode.Encode(value); err != nil {
				return fmt.Errorf("encoding value for %s: %w", strings.Join(keyPath, "."), err)
			}
			if child != nil {
				valueNode.LineComment = child.LineComment
				*child = valueNode
				return nil
			}
			current.Content = append(current.Content, newKey(key), &valueNode)
			return nil
		}

		if child == nil {
			child = newMapping()
			current.Content = append(current.Content, newKey(key), child)
		}
		if child.Kind != yaml.MappingNode {
			return fmt.Errorf("key %s is not a mapping", strings.Join(keyPath[:i+1], "."))
		}
		current = child
	}

	return nil
}

// GetNestedValue returns the node at keyPath, or nil when absent.
func GetNestedValue(root *yaml.Node, keyPath []string) *yaml.Node {
	if len(keyPath) == 0 {
		return nil
	}

	current := root
	if current.Kind == yaml.DocumentNode {
		if len(current.Content) == 0 {
			return nil
		}
		current = current.Content[0]
	}

	for _, key := range keyPath {
		if current.Kind != yaml.MappingNode {
			return nil
		}
		current = mappingValue(current, key)
		if current == nil {
			return nil
		}
	}
	return current
}

// SetConfigValue validates value against the key schema and writes it
// into the YAML config file at configPath, creating the file if needed.
func SetConfigValue(configPath, key, value string) error {
	keyPath, err := ParseKeyPath(key)
	if err != nil {
		return err
	}

	parsed, err := ParseValue(key, value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	var root yaml.Node
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if len(bytes.TrimSpace(data)) > 0 {
			if err := yaml.Unmarshal(data, &root); err != nil {
				return fmt.Errorf("parsing %s: %w", configPath, err)
			}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("reading %s: %w", configPath, err)
	}

	if err := SetNestedValue(&root, keyPath, parsed); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		return fmt.Errorf("encoding %s: %w", configPath, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding %s: %w", configPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}
	return nil
}

// Lookup returns the effective value of a known key in cfg.
func Lookup(cfg *Configuration, key string) (*yaml.Node, error) {
	if _, err := GetKeySchema(key); err != nil {
		return nil, err
	}
	keyPath, err := ParseKeyPath(key)
	if err != nil {
		return nil, err
	}

	var root yaml.Node
	if err := root.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding configuration: %w", err)
	}

	node := GetNestedValue(&root, keyPath)
	if node == nil {
		return nil, ErrUnknownKey{Key: key}
	}
	return node, nil
}

func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func newKey(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}
