// Package errors provides domain-specific error types for the SDK.
// All error types support unwrapping via errors.As() and errors.Is().
package errors

import (
	"fmt"
)

// SerializationError reports an invocation input that could not be encoded
// into the interpreter's wire format.
type SerializationError struct {
	Err  error
	What string // which input failed, e.g. "call results", "arguments array"
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to serialize %s: %v", e.What, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// CallBoundaryError reports a failure of the external call function itself:
// it returned an error or panicked.
type CallBoundaryError struct {
	Err error
}

func (e *CallBoundaryError) Error() string {
	return fmt.Sprintf("call function failed: %v", e.Err)
}

func (e *CallBoundaryError) Unwrap() error {
	return e.Err
}

// ResultParseError reports a raw interpreter response that is not valid
// JSON. Raw carries the offending text for diagnosis.
type ResultParseError struct {
	Err error
	Raw string
}

func (e *ResultParseError) Error() string {
	return fmt.Sprintf("result parsing error: %v, original text: %s", e.Err, e.Raw)
}

func (e *ResultParseError) Unwrap() error {
	return e.Err
}

// EngineError reports that the interpreter engine rejected the call: the
// response's top-level error field was non-empty. This is distinct from a
// script-level non-zero ret_code, which is a normal response shape.
type EngineError struct {
	Message string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("call_module returned error: %s", e.Message)
}

// CallRequestParseError reports an unparseable call-request payload. Field
// is empty when the request map itself failed to parse, otherwise it names
// the doubly-encoded field ("arguments" or "tetraplets") that failed for
// the call site identified by Key. Raw carries the offending text.
type CallRequestParseError struct {
	Err   error
	Field string
	Key   string
	Raw   string
}

func (e *CallRequestParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("failed to parse call requests: %v, original text: %s", e.Err, e.Raw)
	}
	return fmt.Sprintf("failed to parse %s of call request %s: %v, original text: %s",
		e.Field, e.Key, e.Err, e.Raw)
}

func (e *CallRequestParseError) Unwrap() error {
	return e.Err
}
