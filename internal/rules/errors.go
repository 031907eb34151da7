package rules

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when no configuration has been
// persisted yet. Callers fall back to the default configuration.
var ErrNotFound = errors.New("rule configuration not found")

// InvalidRulePatternError reports a configured pattern that is not a valid
// regular expression. It is raised at compile (configuration-load) time, not
// per record, and identifies the offending category, field and pattern.
type InvalidRulePatternError struct {
	Category string
	Field    string
	Pattern  string
	Err      error
}

func (e *InvalidRulePatternError) Error() string {
	return fmt.Sprintf("invalid rule pattern %q for field %q in category %q: %v",
		e.Pattern, e.Field, e.Category, e.Err)
}

func (e *InvalidRulePatternError) Unwrap() error { return e.Err }

// MalformedConfigError reports raw configuration text that is not valid JSON
// of the expected shape. Collaborators reject the edit and keep the prior
// configuration.
type MalformedConfigError struct {
	Err error
}

func (e *MalformedConfigError) Error() string {
	return fmt.Sprintf("malformed rule configuration: %v", e.Err)
}

func (e *MalformedConfigError) Unwrap() error { return e.Err }
