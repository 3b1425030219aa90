// Package apperror holds the error kinds surfaced by the note sync layer.
package apperror

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ResolutionError is returned when a section is not a known taxonomy leaf.
type ResolutionError struct {
	Section string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("unknown section %q", e.Section)
}

// ValidationError reports a missing or mistyped field, on input or on a stored document.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// TransientIOError wraps a network, timeout or remote-store failure.
// It is reported once to the caller and never retried.
type TransientIOError struct {
	Store string
	Op    string
	Err   error
}

func (e *TransientIOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Store, e.Op, e.Err)
}

func (e *TransientIOError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a deadline hit.
func (e *TransientIOError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// LegResult is the outcome of one store operation inside a cross-store call.
type LegResult struct {
	Store string
	Err   error
}

// Succeeded reports whether the leg completed.
func (l LegResult) Succeeded() bool {
	return l.Err == nil
}

// PartialFailure is returned by cross-store operations when at least one leg failed.
// Every attempted leg is listed, including the ones that succeeded.
type PartialFailure struct {
	Op   string
	Legs []LegResult
}

func (e *PartialFailure) Error() string {
	parts := make([]string, 0, len(e.Legs))
	for _, leg := range e.Legs {
		if leg.Err != nil {
			parts = append(parts, fmt.Sprintf("%s: %v", leg.Store, leg.Err))
		} else {
			parts = append(parts, leg.Store+": ok")
		}
	}
	return fmt.Sprintf("%s partially failed (%s)", e.Op, strings.Join(parts, "; "))
}

// Unwrap exposes the failed legs to errors.Is / errors.As.
func (e *PartialFailure) Unwrap() []error {
	var errs []error
	for _, leg := range e.Legs {
		if leg.Err != nil {
			errs = append(errs, leg.Err)
		}
	}
	return errs
}

// Failed returns the legs that did not complete.
func (e *PartialFailure) Failed() []LegResult {
	var out []LegResult
	for _, leg := range e.Legs {
		if leg.Err != nil {
			out = append(out, leg)
		}
	}
	return out
}

// Transient wraps err as a TransientIOError unless it already carries a kind.
func Transient(store, op string, err error) error {
	if err == nil {
		return nil
	}
	if IsResolution(err) || IsValidation(err) || IsTransient(err) {
		return err
	}
	return &TransientIOError{Store: store, Op: op, Err: err}
}

func IsResolution(err error) bool {
	var target *ResolutionError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsTransient(err error) bool {
	var target *TransientIOError
	return errors.As(err, &target)
}

func IsPartial(err error) bool {
	var target *PartialFailure
	return errors.As(err, &target)
}
