// Package fault defines the closed set of domain errors returned by the
// fairdice services. Boundary layers map a Kind to a transport status and
// report the Code to clients.
package fault

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind groups codes by how a caller is expected to react to them
type Kind string

const (
	// KindInvalidInput is a client-correctable problem with the request itself
	KindInvalidInput Kind = "invalid_input"

	// KindResourceState means the request is valid but the current state forbids it
	KindResourceState Kind = "resource_state"

	// KindNotFound means the referenced record does not exist
	KindNotFound Kind = "not_found"

	// KindIntegrityFault means persisted data failed verification. Never expected.
	KindIntegrityFault Kind = "integrity_fault"

	// KindInternal covers storage or infrastructure failures
	KindInternal Kind = "internal"
)

// Code is a machine-readable error code
type Code string

const (
	CodeInvalidWager                 Code = "INVALID_WAGER"
	CodeMissingClientEntropy         Code = "MISSING_CLIENT_ENTROPY"
	CodeMissingAccountID             Code = "MISSING_ACCOUNT_ID"
	CodeNoCommitmentAvailable        Code = "NO_COMMITMENT_AVAILABLE"
	CodeCommitmentAlreadyOutstanding Code = "COMMITMENT_ALREADY_OUTSTANDING"
	CodeInsufficientBalance          Code = "INSUFFICIENT_BALANCE"
	CodeAccountNotFound              Code = "ACCOUNT_NOT_FOUND"
	CodeRecordNotFound               Code = "RECORD_NOT_FOUND"
	CodeOutcomeMismatch              Code = "OUTCOME_MISMATCH"
	CodeCommitmentMismatch           Code = "COMMITMENT_MISMATCH"
	CodeLedgerContention             Code = "LEDGER_CONTENTION"
)

// Kind returns the category a code belongs to
func (c Code) Kind() Kind {
	switch c {
	case CodeInvalidWager, CodeMissingClientEntropy, CodeMissingAccountID:
		return KindInvalidInput
	case CodeNoCommitmentAvailable, CodeCommitmentAlreadyOutstanding,
		CodeInsufficientBalance, CodeAccountNotFound:
		return KindResourceState
	case CodeRecordNotFound:
		return KindNotFound
	case CodeOutcomeMismatch, CodeCommitmentMismatch:
		return KindIntegrityFault
	default:
		return KindInternal
	}
}

// Error is a domain error with structured context
type Error struct {
	Code    Code
	Message string
	Fields  map[string]any
	Cause   error
}

// New creates an error for the given code
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an error for the given code that keeps cause in the chain
func Wrap(cause error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// With returns a copy of e carrying an extra field
func (e *Error) With(key string, value any) *Error {
	fields := make(map[string]any, len(e.Fields)+1)
	for k, v := range e.Fields {
		fields[k] = v
	}
	fields[key] = value

	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Fields:  fields,
		Cause:   e.Cause,
	}
}

// Kind returns the category of the error
func (e *Error) Kind() Kind {
	return e.Code.Kind()
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}

	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.Fields[k])
		}
		b.WriteString(")")
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a fault error with the same code
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is comparisons
var (
	ErrInvalidWager                 = New(CodeInvalidWager, "wager must be a positive amount")
	ErrMissingClientEntropy         = New(CodeMissingClientEntropy, "client seed is required")
	ErrMissingAccountID             = New(CodeMissingAccountID, "account id is required")
	ErrNoCommitmentAvailable        = New(CodeNoCommitmentAvailable, "request a server seed hash first")
	ErrCommitmentAlreadyOutstanding = New(CodeCommitmentAlreadyOutstanding, "a server seed hash is already pending")
	ErrInsufficientBalance          = New(CodeInsufficientBalance, "insufficient balance")
	ErrAccountNotFound              = New(CodeAccountNotFound, "account not found")
	ErrRecordNotFound               = New(CodeRecordNotFound, "roll not found")
	ErrOutcomeMismatch              = New(CodeOutcomeMismatch, "recomputed roll does not match the stored roll")
	ErrCommitmentMismatch           = New(CodeCommitmentMismatch, "server seed does not match the committed hash")
	ErrLedgerContention             = New(CodeLedgerContention, "balance update kept conflicting with concurrent writes")
)

// CodeOf returns the code of the first fault error in err's chain, or ""
func CodeOf(err error) Code {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

// KindOf returns the kind of err. Errors outside the enumeration are internal.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind()
	}
	return KindInternal
}
