package subscription

import (
	"errors"
	"fmt"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"
)

// ErrPlanIsNotConstructed is returned when a Plan instance was not created
// through NewPlan or RestorePlan.
var ErrPlanIsNotConstructed = errors.New("Plan must be created via NewPlan or RestorePlan constructor")

// Plan is a recurring meal subscription offering published by a kitchen.
// Alongside its listed monthly price it keeps two aggregate figures:
// the subscriber count and the accumulated monthly revenue.
//
// Invariant: both figures reflect exactly the set of requests currently
// Active for the plan. Only an approval mutates them, exactly once per
// request, by the price locked into that request. Rejection and lapse
// never touch them.
type Plan struct {
	id        kernel.UUID
	kitchenID kernel.UUID
	name      string

	monthlyPrice    int64
	subscriberCount int
	monthlyRevenue  int64

	// version supports the optimistic concurrency check in the
	// persistence layer.
	version int64

	isConstructed bool
}

// NewPlan creates a plan with no subscribers and zero accumulated revenue.
func NewPlan(id kernel.UUID, kitchenID kernel.UUID, name string, monthlyPrice int64) (*Plan, error) {
	p := &Plan{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setKitchenID(kitchenID),
		p.setName(name),
		p.setMonthlyPrice(monthlyPrice),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePlan reconstructs a plan from persistence.
// Intended for repository use only.
func RestorePlan(
	id kernel.UUID,
	kitchenID kernel.UUID,
	name string,
	monthlyPrice int64,
	subscriberCount int,
	monthlyRevenue int64,
	version int64,
) (*Plan, error) {
	if err := errors.Join(id.Validate(), kitchenID.Validate()); err != nil {
		return nil, err
	}

	return &Plan{
		id:              id,
		kitchenID:       kitchenID,
		name:            name,
		monthlyPrice:    monthlyPrice,
		subscriberCount: subscriberCount,
		monthlyRevenue:  monthlyRevenue,
		version:         version,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Plan instance was properly constructed.
func (p *Plan) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPlanIsNotConstructed
	}

	return nil
}

// ID returns the plan's unique identifier.
func (p *Plan) ID() kernel.UUID {
	return p.id
}

// KitchenID returns the identifier of the publishing kitchen.
func (p *Plan) KitchenID() kernel.UUID {
	return p.kitchenID
}

// Name returns the plan's display name.
func (p *Plan) Name() string {
	return p.name
}

// MonthlyPrice returns the currently listed monthly price.
func (p *Plan) MonthlyPrice() int64 {
	return p.monthlyPrice
}

// SubscriberCount returns the number of currently Active subscriptions.
func (p *Plan) SubscriberCount() int {
	return p.subscriberCount
}

// MonthlyRevenue returns the accumulated monthly revenue across Active
// subscriptions, each at the price locked into its request.
func (p *Plan) MonthlyRevenue() int64 {
	return p.monthlyRevenue
}

// Version returns the persistence version used for the optimistic write check.
func (p *Plan) Version() int64 {
	return p.version
}

// RegisterSubscriber records one newly approved subscription: the
// subscriber count grows by one and the monthly revenue by lockedPrice,
// the price captured on the request being approved, not the plan's
// current listed price.
func (p *Plan) RegisterSubscriber(lockedPrice int64) error {
	if lockedPrice <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("locked price",
			fmt.Errorf("%d is not greater than 0", lockedPrice))
	}

	p.subscriberCount++
	p.monthlyRevenue += lockedPrice
	return nil
}

func (p *Plan) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Plan) setKitchenID(kitchenID kernel.UUID) error {
	if err := kitchenID.Validate(); err != nil {
		return err
	}
	p.kitchenID = kitchenID
	return nil
}

func (p *Plan) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("plan name")
	}
	p.name = name
	return nil
}

func (p *Plan) setMonthlyPrice(monthlyPrice int64) error {
	if monthlyPrice <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("monthly price",
			fmt.Errorf("%d is not greater than 0", monthlyPrice))
	}
	p.monthlyPrice = monthlyPrice
	return nil
}
