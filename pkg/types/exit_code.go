// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

// Process exit codes. Each failure class maps to a distinct code so callers
// can distinguish "your skillset is wrong" from "the disk failed" in scripts.
const (
	// ExitOK means the compile succeeded.
	ExitOK ExitCode = 0
	// ExitFailure is the general catch-all failure code.
	ExitFailure ExitCode = 1
	// ExitValidation means the skillset document or catalog failed load-time
	// validation (dangling relations, unknown categories, schema violations).
	ExitValidation ExitCode = 2
	// ExitResolution means one or more agents failed constraint resolution
	// (conflicts, missing dependencies, exclusivity violations).
	ExitResolution ExitCode = 3
	// ExitIO means reading inputs or writing artifacts failed.
	ExitIO ExitCode = 4
)

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == ExitOK }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
