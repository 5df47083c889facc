package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrResultNotFound is returned when a stored batch cannot be found.
var ErrResultNotFound = errors.New("result not found")

// ErrUnknownFamily is returned when a family identifier is absent from the catalog.
var ErrUnknownFamily = errors.New("unknown family")

// ValidationKind names the kind of object that failed validation.
type ValidationKind string

const (
	KindHit     ValidationKind = "hit"
	KindCatalog ValidationKind = "catalog"
	KindRule    ValidationKind = "rule"
	KindForest  ValidationKind = "forest"
)

// ValidationError reports malformed input: a hit record, a rule or a forest reference.
type ValidationError struct {
	Kind    ValidationKind
	Subject string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("invalid %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Subject, e.Reason)
}

// ConfigurationError reports a rule filter naming a family the catalog does not know.
type ConfigurationError struct {
	Rule   string
	Type   string
	Family string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("rule %q filters %s on family %q which is missing from the catalog", e.Rule, e.Type, e.Family)
}

// AggregateError collects every failure found during validation.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// Join returns nil for no errors, the error itself for one, and an AggregateError otherwise.
func Join(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	return &AggregateError{Errors: errs}
}
