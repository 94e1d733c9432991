// Package validate implements the declarative field-validation engine:
// ordered chains of validator units applied per field, with
// short-circuit-per-field and aggregate-across-fields semantics
package validate

import "fmt"

// Code identifies a validation failure kind.
// Values are stable for wire compatibility; add sparingly
type Code uint16

const (
	// CodeFail is the unclassified failure
	CodeFail Code = 0

	// CodeRequired is a missing required value
	CodeRequired Code = 5

	// CodeInvalidValue is a value an injected coercion rejected
	CodeInvalidValue Code = 6

	// CodeExpectedList is a non-sequence where a list was expected
	CodeExpectedList Code = 7

	// String unit failures
	CodeStrNotString     Code = 10
	CodeStrTooShort      Code = 11
	CodeStrTooLong       Code = 12
	CodeStrNotEndsWith   Code = 13
	CodeStrNotStartsWith Code = 14

	// Email unit failures
	CodeEmailDomain   Code = 20
	CodeEmailNotValid Code = 21

	// CodePhoneFormat is a malformed phone number
	CodePhoneFormat Code = 30

	// Date unit failures; both bound violations share one code,
	// distinct from the parse failure
	CodeDateFormat Code = 40
	CodeDateBounds Code = 41

	// Number unit failures
	CodeNumberFormat   Code = 50
	CodeNumberTooSmall Code = 51
	CodeNumberTooBig   Code = 52

	// List unit failures
	CodeListTooShort   Code = 60
	CodeListTooLong    Code = 61
	CodeListValueError Code = 62

	// CodeValueIn is a value outside the allowed set
	CodeValueIn Code = 70

	// Address unit failures
	CodeAddrFormat          Code = 80
	CodeAddrMissingCity     Code = 81
	CodeAddrMissingCountry  Code = 82
	CodeAddrMissingStreet   Code = 83
	CodeAddrMissingDistrict Code = 84
	CodeAddrCountry         Code = 85

	// Image unit failures
	CodeImageJPEG            Code = 101
	CodeImageGIF             Code = 102
	CodeImagePNG             Code = 103
	CodeImageContentTooShort Code = 104
	CodeImageMissingHeader   Code = 105
	CodeImageContent         Code = 106
	CodeImageType            Code = 107
)

// Entry is the wire shape of a single field-level validation error
type Entry struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// FieldErrors aggregates sub-field errors for composite units (address)
type FieldErrors map[string]Entry

// Outcome is the result of one validator-unit invocation: success with a
// (possibly coerced) value, or failure with a structured error.
// Exactly one variant is populated; an Outcome is never mutated
type Outcome struct {
	ok    bool
	value any
	err   any // Entry or FieldErrors
}

// Pass returns a success Outcome carrying v (v may be nil)
func Pass(v any) Outcome { return Outcome{ok: true, value: v} }

// Fail returns a failure Outcome with a coded message
func Fail(code Code, msg string) Outcome {
	return Outcome{err: Entry{Code: code, Message: msg}}
}

// Failf is the formatted variant of Fail
func Failf(code Code, format string, a ...any) Outcome {
	return Fail(code, fmt.Sprintf(format, a...))
}

// failFields returns a failure carrying a sub-field error map
func failFields(errs FieldErrors) Outcome { return Outcome{err: errs} }

// OK reports whether the unit succeeded
func (o Outcome) OK() bool { return o.ok }

// Value returns the accepted (possibly coerced) value; nil on failure
func (o Outcome) Value() any { return o.value }

// Err returns the structured error (Entry or FieldErrors); nil on success
func (o Outcome) Err() any { return o.err }
