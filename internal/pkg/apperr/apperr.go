package apperr

import "errors"

// Kind classifies a failure so controllers can pick the right HTTP status
// and the caller can decide whether a retry makes sense.
type Kind int

const (
	// KindValidation covers local, deterministic input failures. Always
	// recoverable by user correction and never logged as a system fault.
	KindValidation Kind = iota
	// KindNotFound is the calm "resource absent" condition.
	KindNotFound
	// KindConflict means the requested transition is not legal given
	// current state (double-create, deleting an active record).
	KindConflict
	// KindInvalidState is a guarded lifecycle transition that is not
	// permitted from the record's current status.
	KindInvalidState
	// KindBusiness is a domain rejection whose message is authoritative
	// and must be shown to the user as-is.
	KindBusiness
	// KindInternal is everything else.
	KindInternal
)

// Error is a typed application error carrying a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error   { return New(KindValidation, message) }
func NotFound(message string) *Error     { return New(KindNotFound, message) }
func Conflict(message string) *Error     { return New(KindConflict, message) }
func InvalidState(message string) *Error { return New(KindInvalidState, message) }
func Business(message string) *Error     { return New(KindBusiness, message) }

// KindOf extracts the Kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
