// Package rental holds the typed failures of the rental domain. Handlers map
// these to HTTP statuses; services return them verbatim and never retry
// business failures.
package rental

import "errors"

type Code string

const (
	CodeUserNotFound        Code = "user_not_found"
	CodeBatteryNotFound     Code = "battery_not_found"
	CodeBatteryUnavailable  Code = "battery_unavailable"
	CodeRentalNotFound      Code = "rental_not_found"
	CodeRentalNotOngoing    Code = "rental_not_ongoing"
	CodeInsufficientBalance Code = "insufficient_balance"
	CodeInvalidAmount       Code = "invalid_amount"
	CodeConflict            Code = "transaction_conflict"
	CodeStorage             Code = "storage_failure"
)

type Error struct {
	code  Code
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Code() Code    { return e.code }
func (e *Error) Unwrap() error { return e.cause }

// Is matches by code so sentinel comparison works across wrapped instances.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.code == e.code
}

var (
	ErrUserNotFound        = &Error{code: CodeUserNotFound, msg: "user not found"}
	ErrBatteryNotFound     = &Error{code: CodeBatteryNotFound, msg: "battery not found"}
	ErrBatteryUnavailable  = &Error{code: CodeBatteryUnavailable, msg: "battery not available"}
	ErrRentalNotFound      = &Error{code: CodeRentalNotFound, msg: "rental not found"}
	ErrRentalNotOngoing    = &Error{code: CodeRentalNotOngoing, msg: "rental is not ongoing"}
	ErrInsufficientBalance = &Error{code: CodeInsufficientBalance, msg: "insufficient balance"}
	ErrInvalidAmount       = &Error{code: CodeInvalidAmount, msg: "amount must be a positive integer"}
	ErrConflict            = &Error{code: CodeConflict, msg: "transaction conflict, retries exhausted"}

	// ErrStorage is the sentinel for errors.Is checks; wrapped instances
	// carrying the cause come from StorageError.
	ErrStorage = &Error{code: CodeStorage, msg: "storage failure"}
)

// StorageError wraps an underlying persistence failure.
func StorageError(cause error) error {
	return &Error{code: CodeStorage, msg: "storage failure", cause: cause}
}

// CodeOf extracts the domain code, or "" for foreign errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ""
}
