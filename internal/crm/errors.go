package crm

import "fmt"

// ValidationError reports malformed or missing caller input. It is never
// retried; the offending operation and field are named so the caller can fix
// the call without reading server logs.
type ValidationError struct {
	Op     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %q: %s", e.Op, e.Field, e.Reason)
}

// ConfigurationError reports a missing or invalid store setting (sheet name,
// spreadsheet reference). Fatal to the operation, not retried.
type ConfigurationError struct {
	Op      string
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s is not configured", e.Op, e.Setting)
}

// StoreUnavailableError wraps a network, auth, or permission failure talking
// to the remote spreadsheet. This layer never retries; the cause is kept for
// the operator.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s: store unavailable: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// NeedsInputError signals that the operation cannot proceed without a value
// the caller must supply. It is a result variant, not a failure: the
// boundary layer turns it into a re-solicitation of the named field.
type NeedsInputError struct {
	Op     string
	Field  string
	Prompt string
}

func (e *NeedsInputError) Error() string {
	return fmt.Sprintf("%s: needs input for %q: %s", e.Op, e.Field, e.Prompt)
}
