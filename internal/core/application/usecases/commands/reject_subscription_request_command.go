package commands

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/guard"
)

var ErrRejectSubscriptionRequestCommandIsNotConstructed = errors.New(
	"RejectSubscriptionRequestCommand must be created via NewRejectSubscriptionRequestCommand constructor",
)

// RejectSubscriptionRequestCommand represents a kitchen rejecting a
// buyer's pending subscription request. The reason is optional; when the
// kitchen supplies none, a generic reason is recorded on the request.
type RejectSubscriptionRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	kitchenID kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

// NewRejectSubscriptionRequestCommand creates a command to reject a
// subscription request on behalf of a kitchen. An empty reason is
// permitted and falls back to subscription.DefaultRejectionReason.
func NewRejectSubscriptionRequestCommand(
	requestID kernel.UUID,
	kitchenID kernel.UUID,
	reason string,
) (RejectSubscriptionRequestCommand, error) {
	command := RejectSubscriptionRequestCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRequestID(requestID),
		command.setKitchenID(kitchenID),
	); err != nil {
		return RejectSubscriptionRequestCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectSubscriptionRequestCommand) Validate() error {
	return c.guard.Validate(ErrRejectSubscriptionRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to reject.
func (c RejectSubscriptionRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// KitchenID returns the identifier of the acting kitchen.
func (c RejectSubscriptionRequestCommand) KitchenID() kernel.UUID {
	return c.kitchenID
}

// Reason returns the kitchen's rejection reason, possibly empty.
func (c RejectSubscriptionRequestCommand) Reason() string {
	return c.reason
}

func (c *RejectSubscriptionRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *RejectSubscriptionRequestCommand) setKitchenID(kitchenID kernel.UUID) error {
	if err := kitchenID.Validate(); err != nil {
		return err
	}

	c.kitchenID = kitchenID
	return nil
}
