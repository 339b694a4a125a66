package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidateYAMLSyntax checks if the YAML file has valid syntax.
// A missing file is not an error. Invalid YAML yields a ValidationError with
// line/column information when yaml.v3 reports it.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	switch {
	case err == nil:
		return ValidateYAMLSyntaxFromBytes(data, filePath)
	case os.IsNotExist(err):
		return nil
	case os.IsPermission(err):
		return &ValidationError{FilePath: filePath, Message: "permission denied"}
	default:
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
}

// ValidateYAMLSyntaxFromBytes checks if YAML data has valid syntax.
func ValidateYAMLSyntaxFromBytes(data []byte, filePath string) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var node yaml.Node
	err := yaml.Unmarshal(data, &node)
	if err == nil {
		return nil
	}
	var typeError *yaml.TypeError
	if errors.As(err, &typeError) {
		return &ValidationError{
			FilePath: filePath,
			Message:  strings.Join(typeError.Errors, "; "),
		}
	}
	line, column := extractLineColumn(err.Error())
	return &ValidationError{
		FilePath: filePath,
		Line:     line,
		Column:   column,
		Message:  cleanYAMLError(err.Error()),
	}
}

// ValidateConfigValues validates configuration values against their constraints.
// Returns nil if valid, or a ValidationError naming the first offending key.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	err := newValidator().Struct(cfg)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldErr := validationErrors[0]
		return &ValidationError{
			FilePath: filePath,
			Field:    fieldErr.Field(),
			Message:  formatValidationError(fieldErr),
		}
	}
	return &ValidationError{
		FilePath: filePath,
		Message:  err.Error(),
	}
}

// newValidator reports fields by their config key rather than the Go field name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// extractLineColumn attempts to extract line and column numbers from a YAML error message.
// Returns 0, 0 if unable to extract.
func extractLineColumn(errMsg string) (line, column int) {
	// yaml.v3 errors look like: "yaml: line 5: could not find expected ':'"
	var l, c int
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d: column %d:", &l, &c); n == 2 {
		return l, c
	}
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d:", &l); n == 1 {
		return l, 1
	}
	return 0, 0
}

// cleanYAMLError removes the "yaml: line X:" prefix from error messages for cleaner output.
func cleanYAMLError(errMsg string) string {
	// Remove "yaml: line X:" prefix
	if idx := strings.LastIndex(errMsg, ": "); idx > 0 {
		// Check if this looks like a yaml error
		if strings.HasPrefix(errMsg, "yaml:") {
			return errMsg[idx+2:]
		}
	}
	return errMsg
}

// formatValidationError formats a validation error for a specific field.
func formatValidationError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	case "gte":
		return fmt.Sprintf("must not be below %s", fieldErr.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fieldErr.Tag())
	}
}
