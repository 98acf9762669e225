package commands

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand represents a kitchen moving an order forward along
// the fulfillment path (confirm, start cooking, hand to delivery,
// complete). The kitchen id comes from the authenticated caller context
// and scopes the order lookup.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	kitchenID    kernel.UUID
	targetStatus order.Status

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance an order to
// targetStatus. The target must be a valid status; whether the transition
// itself is legal is decided by the aggregate against its current status.
func NewAdvanceOrderCommand(
	orderID kernel.UUID,
	kitchenID kernel.UUID,
	targetStatus order.Status,
) (AdvanceOrderCommand, error) {
	command := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setKitchenID(kitchenID),
		command.setTargetStatus(targetStatus),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to advance.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// KitchenID returns the identifier of the acting kitchen.
func (c AdvanceOrderCommand) KitchenID() kernel.UUID {
	return c.kitchenID
}

// TargetStatus returns the requested target status.
func (c AdvanceOrderCommand) TargetStatus() order.Status {
	return c.targetStatus
}

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setKitchenID(kitchenID kernel.UUID) error {
	if err := kitchenID.Validate(); err != nil {
		return err
	}

	c.kitchenID = kitchenID
	return nil
}

func (c *AdvanceOrderCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}

	c.targetStatus = targetStatus
	return nil
}
