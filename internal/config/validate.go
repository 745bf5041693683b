package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/semrel/internal/commit"
)

// ValidationError points at the offending place of a config file: a
// line for syntax errors, a dotted key for invalid values.
type ValidationError struct {
	FilePath string
	Line     int
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.FilePath, e.Line, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	}
}

// yamlErrorLine matches the "yaml: line N: " prefix of yaml.v3 errors.
var yamlErrorLine = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

// CheckSyntax parses a YAML config file.
// Missing and blank files are valid: the defaults apply.
func CheckSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var node yaml.Node
	err = yaml.Unmarshal(data, &node)
	if err == nil {
		return nil
	}

	verr := &ValidationError{FilePath: filePath, Message: err.Error()}
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		verr.Message = strings.Join(typeErr.Errors, "; ")
	} else if m := yamlErrorLine.FindStringSubmatch(err.Error()); m != nil {
		verr.Line, _ = strconv.Atoi(m[1])
		verr.Message = m[2]
	}
	return verr
}

// emailPattern is a loose check; the address is only written into tag objects.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// Validate implements validation.Validatable.
func (c ChangelogConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.File, validation.Required),
		validation.Field(&c.ExcludeTypes, validation.Each(validation.By(validTypeLabel))),
	)
}

// Validate implements validation.Validatable.
func (c ExportConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.File, validation.Required),
		validation.Field(&c.Format, validation.In("json", "yaml")),
	)
}

// Validate implements validation.Validatable.
func (c TagConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Message, validation.When(c.Annotate, validation.Required)),
		validation.Field(&c.TaggerEmail, validation.Match(emailPattern).Error("must be an email address")),
	)
}

// Validate implements validation.Validatable.
func (c Configuration) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Changelog),
		validation.Field(&c.Export),
		validation.Field(&c.Tag),
	)
}

func validTypeLabel(value interface{}) error {
	label, _ := value.(string)
	if _, err := commit.ParseType(strings.TrimSpace(label)); err != nil {
		return errors.New("unknown commit type " + strconv.Quote(label))
	}
	return nil
}

// ValidateConfigValues validates configuration values against expected types and constraints.
// Returns nil if valid, or a ValidationError naming the first offending key.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	err := cfg.Validate()
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	flattenErrors("", err, fields)
	if len(fields) == 0 {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return &ValidationError{
		FilePath: filePath,
		Field:    keys[0],
		Message:  fields[keys[0]],
	}
}

// flattenErrors turns nested validation.Errors into dotted keys.
func flattenErrors(prefix string, err error, out map[string]string) {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		if prefix != "" {
			out[prefix] = err.Error()
		}
		return
	}
	for key, fieldErr := range errs {
		if prefix != "" {
			key = prefix + "." + key
		}
		flattenErrors(key, fieldErr, out)
	}
}
