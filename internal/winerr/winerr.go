// Package winerr carries Windows system error codes across the setup
// command boundary and maps them onto the small exit-code contract used
// by the installer and by automation.
package winerr

import (
	"errors"
	"fmt"
)

// Windows system error codes distinguished by the exit-code mapping.
// Values are from winerror.h / setupapi.h; they are declared here rather
// than taken from golang.org/x/sys/windows so the mapping (and its tests)
// compile on every platform.
const (
	ServiceAlreadyRunning  uint32 = 1056 // ERROR_SERVICE_ALREADY_RUNNING
	ServiceDoesNotExist    uint32 = 1060 // ERROR_SERVICE_DOES_NOT_EXIST
	ServiceNotActive       uint32 = 1062 // ERROR_SERVICE_NOT_ACTIVE
	ServiceMarkedForDelete uint32 = 1072 // ERROR_SERVICE_MARKED_FOR_DELETE
	ServiceExists          uint32 = 1073 // ERROR_SERVICE_EXISTS

	TrustNotEstablished uint32 = 0xE0000241 // ERROR_AUTHENTICODE_TRUST_NOT_ESTABLISHED
	PublisherNotTrusted uint32 = 0xE0000242 // ERROR_AUTHENTICODE_PUBLISHER_NOT_TRUSTED
)

// Process exit codes. These form the contract with the installer and
// with scripts driving setup commands:
//   - 0: success
//   - 1: generic failure
//   - 2: service state conflict (already installed, not installed,
//     already running, not running) - usually retryable after checking
//     the actual service state
//   - 3: driver trust failure or a delete pending a reboot - not
//     retryable in the same session
const (
	ExitSuccess            = 0
	ExitFailure            = 1
	ExitServiceState       = 2
	ExitTrustOrDeletePends = 3
)

// Error is a domain error carrying the Windows system error code that
// caused it. It is raised by the service-control and driver backends and
// converted to an exit code at exactly one place, the top of command
// dispatch.
type Error struct {
	Op   string // operation that failed, e.g. "install service"
	Code uint32 // Windows system error code, 0 if unknown
	Err  error  // underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v (system error %d)", e.Op, e.Err, e.Code)
	}
	return fmt.Sprintf("%s: system error %d", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err as an Error for op with the given system error code.
func New(op string, code uint32, err error) *Error {
	return &Error{Op: op, Code: code, Err: err}
}

// ExitCode converts an error from a setup command into a process exit
// code. A nil error is success. Errors that are not *Error, or whose
// code is not one of the distinguished values, are generic failures.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var werr *Error
	if !errors.As(err, &werr) {
		return ExitFailure
	}

	switch werr.Code {
	case ServiceExists, ServiceDoesNotExist, ServiceAlreadyRunning, ServiceNotActive:
		return ExitServiceState
	case ServiceMarkedForDelete, PublisherNotTrusted, TrustNotEstablished:
		return ExitTrustOrDeletePends
	default:
		return ExitFailure
	}
}
