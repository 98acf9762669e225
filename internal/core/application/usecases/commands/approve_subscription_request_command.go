package commands

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/guard"
)

var ErrApproveSubscriptionRequestCommandIsNotConstructed = errors.New(
	"ApproveSubscriptionRequestCommand must be created via NewApproveSubscriptionRequestCommand constructor",
)

// ApproveSubscriptionRequestCommand represents a kitchen approving a
// buyer's pending subscription request. The kitchen id comes from the
// authenticated caller context and scopes the request lookup.
type ApproveSubscriptionRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	kitchenID kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveSubscriptionRequestCommand creates a command to approve a
// subscription request on behalf of a kitchen.
func NewApproveSubscriptionRequestCommand(
	requestID kernel.UUID,
	kitchenID kernel.UUID,
) (ApproveSubscriptionRequestCommand, error) {
	command := ApproveSubscriptionRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRequestID(requestID),
		command.setKitchenID(kitchenID),
	); err != nil {
		return ApproveSubscriptionRequestCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveSubscriptionRequestCommand) Validate() error {
	return c.guard.Validate(ErrApproveSubscriptionRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to approve.
func (c ApproveSubscriptionRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// KitchenID returns the identifier of the acting kitchen.
func (c ApproveSubscriptionRequestCommand) KitchenID() kernel.UUID {
	return c.kitchenID
}

func (c *ApproveSubscriptionRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *ApproveSubscriptionRequestCommand) setKitchenID(kitchenID kernel.UUID) error {
	if err := kitchenID.Validate(); err != nil {
		return err
	}

	c.kitchenID = kitchenID
	return nil
}
