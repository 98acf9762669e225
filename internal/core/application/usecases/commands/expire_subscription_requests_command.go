package commands

import (
	"errors"
	"fmt"
	"time"

	"mealmarket/internal/pkg/guard"
)

var (
	ErrExpireSubscriptionRequestsCommandIsNotConstructed = errors.New(
		"ExpireSubscriptionRequestsCommand must be created via NewExpireSubscriptionRequestsCommand constructor",
	)
	ErrMaxAgeIsInvalid = errors.New("max age must be greater than 0")
)

// ExpiredRequestReason is recorded on requests that lapse without a
// decision from the kitchen.
const ExpiredRequestReason = "Request expired"

// ExpireSubscriptionRequestsCommand represents the scheduled lapse of
// subscription requests the kitchen never answered: every Pending request
// older than maxAge is cancelled with a generic expiry reason.
type ExpireSubscriptionRequestsCommand struct { //nolint:recvcheck //using for validation
	maxAge time.Duration

	guard guard.ConstructorGuard
}

// NewExpireSubscriptionRequestsCommand creates a command that lapses
// Pending requests older than maxAge, which must be positive.
func NewExpireSubscriptionRequestsCommand(maxAge time.Duration) (ExpireSubscriptionRequestsCommand, error) {
	command := ExpireSubscriptionRequestsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setMaxAge(maxAge); err != nil {
		return ExpireSubscriptionRequestsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireSubscriptionRequestsCommand) Validate() error {
	return c.guard.Validate(ErrExpireSubscriptionRequestsCommandIsNotConstructed)
}

// MaxAge returns the age beyond which a Pending request lapses.
func (c ExpireSubscriptionRequestsCommand) MaxAge() time.Duration {
	return c.maxAge
}

func (c *ExpireSubscriptionRequestsCommand) setMaxAge(maxAge time.Duration) error {
	if maxAge <= 0 {
		return fmt.Errorf("%v: %w", maxAge, ErrMaxAgeIsInvalid)
	}

	c.maxAge = maxAge
	return nil
}
