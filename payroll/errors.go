/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Outer layers (shifts, store, api) wrap these with %w and test them
  with errors.Is.

ERROR CATEGORIES:
  1. Calculation errors - the only hard failure is an empty/inverted interval
  2. Input errors - malformed clock strings, invalid policies
  3. Store errors - missing shifts or workplaces

NOT AN ERROR:
  An unknown workplace name resolves to the baseline policy (plain hourly
  pay at DefaultWage). Missing tiers, empty history and zero bonuses all
  resolve to neutral defaults.

SEE ALSO:
  - calculator.go: Returns IntervalError
  - api/handlers.go: Maps these errors to HTTP status codes
*/
package payroll

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInterval is returned when the padded end is not after the
	// padded start. No record is produced.
	ErrInvalidInterval = errors.New("invalid interval: end not after start")

	// ErrInvalidClock is returned for clock strings that are not "HH:MM".
	ErrInvalidClock = errors.New("invalid clock time")

	// ErrInvalidPolicy is returned when a workplace policy fails validation.
	ErrInvalidPolicy = errors.New("invalid workplace policy")

	// ErrShiftNotFound is returned when a referenced shift doesn't exist.
	ErrShiftNotFound = errors.New("shift not found")

	// ErrWorkplaceNotFound is returned by stores when a workplace name has
	// no stored policy. Calculations never see it; they use Baseline.
	ErrWorkplaceNotFound = errors.New("workplace not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// IntervalError carries the padded bounds that failed.
type IntervalError struct {
	Workplace string
	PayStart  time.Time
	PayEnd    time.Time
}

func (e *IntervalError) Error() string {
	return fmt.Sprintf("invalid interval for %q: paid end %s is not after paid start %s",
		e.Workplace, e.PayEnd.Format("2006-01-02 15:04"), e.PayStart.Format("2006-01-02 15:04"))
}

func (e *IntervalError) Unwrap() error { return ErrInvalidInterval }

// ClockError reports an unparseable clock string.
type ClockError struct {
	Value string
	Err   error
}

func (e *ClockError) Error() string {
	return fmt.Sprintf("invalid clock time %q (use HH:MM)", e.Value)
}

func (e *ClockError) Unwrap() []error { return []error{ErrInvalidClock, e.Err} }

// PolicyError lists every problem found in one policy.
type PolicyError struct {
	Workplace string
	Problems  []string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("invalid workplace policy %q: %v", e.Workplace, e.Problems)
}

func (e *PolicyError) Unwrap() error { return ErrInvalidPolicy }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrInvalidClock) ||
		errors.Is(err, ErrInvalidPolicy)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrShiftNotFound) ||
		errors.Is(err, ErrWorkplaceNotFound)
}
