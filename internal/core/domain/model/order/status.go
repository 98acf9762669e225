package order

import (
	"errors"
	"fmt"
)

// Status represents the lifecycle state of a marketplace order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Pending ────> Confirmed ────> Preparing ────> Delivering ────> Completed
//	   │              │
//	   └──────────────┴─────────> Cancelled
//
// Cancellation is only permitted before cooking starts (Pending or
// Confirmed). Completed and Cancelled are terminal: no further transition
// is ever allowed from them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned by the checkout flow.
	// The kitchen has not yet confirmed the order.
	Pending

	// Confirmed indicates the kitchen has accepted the order.
	Confirmed

	// Preparing indicates cooking has started. From this point on the
	// kitchen has committed ingredients and labor, so the order can no
	// longer be cancelled through the regular flow.
	Preparing

	// Delivering indicates the order has left the kitchen.
	Delivering

	// Completed indicates the order has been delivered. Terminal.
	Completed

	// Cancelled indicates the order was cancelled by the buyer while it
	// was still Pending or Confirmed. Terminal.
	Cancelled
)

var (
	// ErrInvalidTransition is returned when a requested status change is
	// not part of the order state machine, including same-state no-ops
	// and attempts to skip a state.
	ErrInvalidTransition = errors.New("order status transition is not allowed")

	// ErrNotCancellable is returned when cancellation is requested for an
	// order that is already being prepared, delivered, completed or
	// cancelled.
	ErrNotCancellable = errors.New("order can no longer be cancelled")
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Confirmed:  "Confirmed",
		Preparing:  "Preparing",
		Delivering: "Delivering",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Confirmed:  "Confirmed",
		Preparing:  "Preparing",
		Delivering: "Delivering",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// getAdvanceTransitions returns the forward edges of the state machine.
// Cancellation is modeled separately through Cancel, not as an advance
// target, so Cancelled never appears here.
func getAdvanceTransitions() map[Status]Status {
	return map[Status]Status{
		Pending:    Confirmed,
		Confirmed:  Preparing,
		Preparing:  Delivering,
		Delivering: Completed,
	}
}

// StatusFromString resolves a status name as it appears over the wire or
// in storage. Returns an error for unrecognized names and for "Unknown".
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, fmt.Errorf("%q is not a valid order status", s)
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Confirmed, Preparing, Delivering,
// Completed, Cancelled. Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return fmt.Errorf("%d is not a valid order status", s)
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values. Implements fmt.Stringer
// and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsCancellable reports whether an order in this status may still be
// cancelled by the buyer. Only Pending and Confirmed qualify; once
// cooking starts, cancellation must go through the out-of-band dispute
// process.
func (s Status) IsCancellable() bool {
	return s == Pending || s == Confirmed
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//   - Confirmed -> Cancelled
//
// Any other current status (including an already-Cancelled order) fails
// with ErrNotCancellable, so a blind retry of a cancellation surfaces an
// error instead of silently succeeding.
func (s Status) Cancel() (Status, error) {
	if !s.IsCancellable() {
		return Unknown, fmt.Errorf("%s is not a cancellable status: %w", s, ErrNotCancellable)
	}

	return Cancelled, nil
}

// AdvanceTo transitions the status forward to target.
//
// Only the explicit forward edges of the state machine are permitted:
// Pending->Confirmed, Confirmed->Preparing, Preparing->Delivering,
// Delivering->Completed. Same-state no-ops, skipped states, backward
// moves, and transitions out of a terminal status all fail with
// ErrInvalidTransition.
func (s Status) AdvanceTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, fmt.Errorf("%v: %w", err, ErrInvalidTransition)
	}

	next, ok := getAdvanceTransitions()[s]
	if !ok || next != target {
		return Unknown, fmt.Errorf("cannot advance from %s to %s: %w", s, target, ErrInvalidTransition)
	}

	return target, nil
}
