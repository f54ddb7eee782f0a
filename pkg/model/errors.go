package model

import (
	"errors"
	"fmt"
	"strings"
)

// Returned (wrapped) whenever a weighted draw is attempted over a vector without positive weights
var ErrZeroWeights = errors.New("total of weights must be greater than zero")

// ConfigurationError reports malformed or contradictory settings. It is always raised before any allocation takes place.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (err *ConfigurationError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("configuration error: %v: %v", err.Reason, err.Err)
	}
	return "configuration error: " + err.Reason
}

func (err *ConfigurationError) Unwrap() error {
	return err.Err
}

func configurationErrorf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// IntegrityError reports an attempt to record a second assignment at an occupied course-time
type IntegrityError struct {
	Owner    string // "class 1" or "teacher T1"
	Time     CourseTime
	Existing string
	Incoming string
}

func (err *IntegrityError) Error() string {
	return fmt.Sprintf("integrity violation: %v already holds \"%v\" at %v, cannot record \"%v\"", err.Owner, err.Existing, err.Time, err.Incoming)
}

// Diagnostic captures the allocation state at the moment a run was aborted
type Diagnostic struct {
	Class    string
	Day      uint64
	Slot     uint64
	Pool     []string
	Weights  []float64
	Attempts int
}

func (diagnostic Diagnostic) String() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "class: %v, day: %v, slot: %v, attempts: %v, pool: { ", diagnostic.Class, diagnostic.Day, diagnostic.Slot, diagnostic.Attempts)
	for i, course := range diagnostic.Pool {
		if i < len(diagnostic.Weights) {
			fmt.Fprintf(&builder, "%v=%.4f, ", course, diagnostic.Weights[i])
		} else {
			fmt.Fprintf(&builder, "%v, ", course)
		}
	}
	builder.WriteString("}")
	return builder.String()
}

// ExhaustionError reports that no admissible outcome could be found for a slot or an elective placement
type ExhaustionError struct {
	Reason     string
	Diagnostic Diagnostic
	Err        error
}

func (err *ExhaustionError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("allocation exhausted: %v (%v): %v", err.Reason, err.Diagnostic, err.Err)
	}
	return fmt.Sprintf("allocation exhausted: %v (%v)", err.Reason, err.Diagnostic)
}

func (err *ExhaustionError) Unwrap() error {
	return err.Err
}
