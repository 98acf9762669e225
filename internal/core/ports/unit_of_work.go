package ports

import (
	"context"
)

// UnitOfWorkFactory hands each command handler invocation its own
// UnitOfWork, keeping concurrent commands isolated from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and hands out repositories bound to the
// current transaction, so a status write and its bookkeeping (note
// append, plan counter increment) commit or roll back together.
type UnitOfWork interface {
	// Begin opens the transaction. Calling it again on an open
	// transaction is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the open transaction. It fails when no
	// transaction is open.
	Commit(ctx context.Context) error

	// Rollback discards the open transaction. It fails when no
	// transaction is open, which handlers ignore after a commit.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// SubscriptionRequestRepository returns a SubscriptionRequestRepository
	// bound to the current transaction.
	SubscriptionRequestRepository() SubscriptionRequestRepository

	// PlanRepository returns a PlanRepository bound to the current transaction.
	PlanRepository() PlanRepository
}
