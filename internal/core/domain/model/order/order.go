package order

import (
	"errors"
	"fmt"
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through NewOrder or RestoreOrder. This ensures all orders are
// properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order represents a buyer's order against a home kitchen. It is the
// aggregate root that manages the order lifecycle from placement through
// confirmation, preparation, and delivery, or cancellation.
//
// Order maintains these invariants:
//   - buyer, kitchen, and all line items are valid
//   - the total amount equals the sum of line-item subtotals at creation
//     and is immutable thereafter
//   - status mutations follow the state machine in Status
//   - once the status is terminal no further mutation is permitted
//
// Orders are never deleted: cancellation is a status change, and the
// record (including the cancellation note) stays behind for bookkeeping.
type Order struct {
	id        kernel.UUID
	buyerID   kernel.UUID
	kitchenID kernel.UUID

	items       []LineItem
	totalAmount int64

	status    Status
	notes     string
	createdAt time.Time

	// version supports the optimistic concurrency check in the
	// persistence layer; it never changes within a single transaction.
	version int64

	isConstructed bool
}

// NewOrder creates a Pending order for a buyer against a kitchen.
// The total amount is computed from the line items and locked in.
// At least one line item is required.
func NewOrder(id kernel.UUID, buyerID kernel.UUID, kitchenID kernel.UUID, items []LineItem, notes string) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyerID(buyerID),
		o.setKitchenID(kitchenID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.notes = notes
	return o, nil
}

// RestoreOrder reconstructs an order from persistence without rerunning
// the creation-time rules: the stored total and status are trusted as
// previously validated. Intended for repository use only.
func RestoreOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	kitchenID kernel.UUID,
	items []LineItem,
	totalAmount int64,
	status Status,
	notes string,
	createdAt time.Time,
	version int64,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		buyerID.Validate(),
		kitchenID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		buyerID:       buyerID,
		kitchenID:     kitchenID,
		items:         items,
		totalAmount:   totalAmount,
		status:        status,
		notes:         notes,
		createdAt:     createdAt,
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BuyerID returns the identifier of the buyer who placed the order.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// KitchenID returns the identifier of the kitchen fulfilling the order.
func (o *Order) KitchenID() kernel.UUID {
	return o.kitchenID
}

// Items returns a copy of the ordered line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the total locked in at order creation.
func (o *Order) TotalAmount() int64 {
	return o.totalAmount
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Notes returns the free-text notes, including any appended cancellation reason.
func (o *Order) Notes() string {
	return o.notes
}

// CreatedAt returns the order placement timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the persistence version used for the optimistic write check.
func (o *Order) Version() int64 {
	return o.version
}

// Cancel cancels the order on the buyer's behalf and appends the reason to
// the order's notes.
//
// Cancellation is only permitted while the order is Pending or Confirmed;
// any later status fails with ErrNotCancellable and leaves the order
// untouched. A second cancellation of an already-Cancelled order also
// fails with ErrNotCancellable. The reason is required.
func (o *Order) Cancel(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendNote(fmt.Sprintf("Cancelled by buyer: %s", reason))
	return nil
}

// Advance moves the order forward to target along the fulfillment path
// Pending -> Confirmed -> Preparing -> Delivering -> Completed.
// Any transition not in the state machine fails with ErrInvalidTransition.
func (o *Order) Advance(target Status) error {
	newStatus, err := o.status.AdvanceTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) appendNote(note string) {
	if o.notes == "" {
		o.notes = note
		return
	}

	o.notes = o.notes + "\n" + note
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	o.buyerID = buyerID
	return nil
}

func (o *Order) setKitchenID(kitchenID kernel.UUID) error {
	if err := kitchenID.Validate(); err != nil {
		return err
	}
	o.kitchenID = kitchenID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}

	var total int64
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		total += item.Subtotal()
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	o.totalAmount = total
	return nil
}
