package subscription

import (
	"errors"
	"fmt"
)

// Status represents the lifecycle state of a subscription request.
//
// State transitions:
//
//	Pending ──approve──> Active
//	Pending ──reject───> Cancelled
//
// Active and Cancelled are terminal; a request is processed exactly once.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status assigned by the subscribe flow.
	Pending

	// Active indicates the kitchen approved the request. Terminal.
	Active

	// Cancelled indicates the request was rejected by the kitchen or
	// lapsed without a decision. Terminal.
	Cancelled
)

// ErrAlreadyProcessed is the unwrap target for AlreadyProcessedError.
var ErrAlreadyProcessed = errors.New("subscription request is already processed")

// AlreadyProcessedError reports an approve or reject attempt against a
// request that already reached a terminal status. It carries the current
// status so callers can tell the user what actually happened.
type AlreadyProcessedError struct {
	Status Status
}

// NewAlreadyProcessedError creates an AlreadyProcessedError for the given terminal status.
func NewAlreadyProcessedError(status Status) *AlreadyProcessedError {
	return &AlreadyProcessedError{Status: status}
}

func (e *AlreadyProcessedError) Error() string {
	return fmt.Sprintf("%s: current status is %s", ErrAlreadyProcessed, e.Status)
}

func (e *AlreadyProcessedError) Unwrap() error {
	return ErrAlreadyProcessed
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Active:    "Active",
		Cancelled: "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Active:    "Active",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Pending, Active, Cancelled.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return fmt.Errorf("%d is not a valid subscription request status", s)
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Active || s == Cancelled
}

// Approve transitions the status to Active.
// Only Pending requests may be approved; a terminal status fails with an
// AlreadyProcessedError reporting what the request already became.
func (s Status) Approve() (Status, error) {
	if s != Pending {
		return Unknown, NewAlreadyProcessedError(s)
	}

	return Active, nil
}

// Reject transitions the status to Cancelled.
// Only Pending requests may be rejected; a terminal status fails with an
// AlreadyProcessedError reporting what the request already became.
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return Unknown, NewAlreadyProcessedError(s)
	}

	return Cancelled, nil
}
