package subscription

import (
	"errors"
	"fmt"
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"
)

// DefaultRejectionReason is recorded when a kitchen rejects a request
// without supplying a reason of its own.
const DefaultRejectionReason = "Rejected by chef"

// ErrRequestIsNotConstructed is returned when a Request instance was not
// created through NewRequest or RestoreRequest.
var ErrRequestIsNotConstructed = errors.New(
	"Request must be created via NewRequest or RestoreRequest constructor")

// Request is a buyer's ask to join a kitchen's recurring meal plan.
// It is an aggregate root mutated exactly once: the owning kitchen either
// approves it (Pending -> Active) or rejects it (Pending -> Cancelled),
// or it lapses unanswered and is cancelled by the expiry job.
//
// The monthly price is locked in when the request is created; a later
// change to the plan's listed price never alters what an approved
// subscriber is billed.
type Request struct {
	id        kernel.UUID
	buyerID   kernel.UUID
	kitchenID kernel.UUID
	planID    kernel.UUID

	status         Status
	monthlyPrice   int64
	deliveryWindow string

	confirmedAt        *time.Time
	cancelledAt        *time.Time
	cancellationReason string

	createdAt time.Time

	// version supports the optimistic concurrency check in the
	// persistence layer.
	version int64

	isConstructed bool
}

// NewRequest creates a Pending subscription request with the plan's price
// locked in at request time. The delivery window is free-form text chosen
// by the buyer (e.g. "18:00-20:00").
func NewRequest(
	id kernel.UUID,
	buyerID kernel.UUID,
	kitchenID kernel.UUID,
	planID kernel.UUID,
	monthlyPrice int64,
	deliveryWindow string,
) (*Request, error) {
	r := &Request{
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setBuyerID(buyerID),
		r.setKitchenID(kitchenID),
		r.setPlanID(planID),
		r.setMonthlyPrice(monthlyPrice),
	); err != nil {
		return nil, err
	}

	r.deliveryWindow = deliveryWindow
	return r, nil
}

// RestoreRequest reconstructs a request from persistence.
// Intended for repository use only.
func RestoreRequest(
	id kernel.UUID,
	buyerID kernel.UUID,
	kitchenID kernel.UUID,
	planID kernel.UUID,
	status Status,
	monthlyPrice int64,
	deliveryWindow string,
	confirmedAt *time.Time,
	cancelledAt *time.Time,
	cancellationReason string,
	createdAt time.Time,
	version int64,
) (*Request, error) {
	if err := errors.Join(
		id.Validate(),
		buyerID.Validate(),
		kitchenID.Validate(),
		planID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Request{
		id:                 id,
		buyerID:            buyerID,
		kitchenID:          kitchenID,
		planID:             planID,
		status:             status,
		monthlyPrice:       monthlyPrice,
		deliveryWindow:     deliveryWindow,
		confirmedAt:        confirmedAt,
		cancelledAt:        cancelledAt,
		cancellationReason: cancellationReason,
		createdAt:          createdAt,
		version:            version,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Request instance was properly constructed.
func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}

	return nil
}

// ID returns the request's unique identifier.
func (r *Request) ID() kernel.UUID {
	return r.id
}

// BuyerID returns the identifier of the subscribing buyer.
func (r *Request) BuyerID() kernel.UUID {
	return r.buyerID
}

// KitchenID returns the identifier of the kitchen whose plan is requested.
func (r *Request) KitchenID() kernel.UUID {
	return r.kitchenID
}

// PlanID returns the identifier of the requested plan.
func (r *Request) PlanID() kernel.UUID {
	return r.planID
}

// Status returns the current request status.
func (r *Request) Status() Status {
	return r.status
}

// MonthlyPrice returns the monthly price locked in at request time.
func (r *Request) MonthlyPrice() int64 {
	return r.monthlyPrice
}

// DeliveryWindow returns the buyer's requested delivery window.
func (r *Request) DeliveryWindow() string {
	return r.deliveryWindow
}

// ConfirmedAt returns the approval timestamp, nil while not approved.
func (r *Request) ConfirmedAt() *time.Time {
	return r.confirmedAt
}

// CancelledAt returns the rejection timestamp, nil while not rejected.
func (r *Request) CancelledAt() *time.Time {
	return r.cancelledAt
}

// CancellationReason returns the recorded rejection reason, empty while
// the request is not Cancelled.
func (r *Request) CancellationReason() string {
	return r.cancellationReason
}

// CreatedAt returns the request creation timestamp.
func (r *Request) CreatedAt() time.Time {
	return r.createdAt
}

// Version returns the persistence version used for the optimistic write check.
func (r *Request) Version() int64 {
	return r.version
}

// IsOlderThan reports whether the request was created before the cutoff.
// Used by the expiry job to find lapsed Pending requests.
func (r *Request) IsOlderThan(cutoff time.Time) bool {
	return r.createdAt.Before(cutoff)
}

// Approve activates the request at the given time.
// Only a Pending request may be approved; a terminal status fails with an
// AlreadyProcessedError and the request is left untouched. The caller is
// responsible for registering the subscriber on the owning plan in the
// same transaction.
func (r *Request) Approve(now time.Time) error {
	newStatus, err := r.status.Approve()
	if err != nil {
		return err
	}

	confirmedAt := now.UTC()
	r.status = newStatus
	r.confirmedAt = &confirmedAt
	return nil
}

// Reject cancels the request at the given time, recording the reason.
// When reason is empty, DefaultRejectionReason is recorded instead.
// Only a Pending request may be rejected; a terminal status fails with an
// AlreadyProcessedError. Rejection never touches the owning plan's
// subscriber or revenue counters.
func (r *Request) Reject(reason string, now time.Time) error {
	newStatus, err := r.status.Reject()
	if err != nil {
		return err
	}

	if reason == "" {
		reason = DefaultRejectionReason
	}

	cancelledAt := now.UTC()
	r.status = newStatus
	r.cancelledAt = &cancelledAt
	r.cancellationReason = reason
	return nil
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	r.buyerID = buyerID
	return nil
}

func (r *Request) setKitchenID(kitchenID kernel.UUID) error {
	if err := kitchenID.Validate(); err != nil {
		return err
	}
	r.kitchenID = kitchenID
	return nil
}

func (r *Request) setPlanID(planID kernel.UUID) error {
	if err := planID.Validate(); err != nil {
		return err
	}
	r.planID = planID
	return nil
}

func (r *Request) setMonthlyPrice(monthlyPrice int64) error {
	if monthlyPrice <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("monthly price",
			fmt.Errorf("%d is not greater than 0", monthlyPrice))
	}

	r.monthlyPrice = monthlyPrice
	return nil
}
