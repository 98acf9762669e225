// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction
// management, persistence, and post-commit notification dispatch.
package commands

import (
	"context"

	"mealmarket/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SubscriptionRepoFactory provides access to the subscription request
	// repository within a transaction.
	SubscriptionRepoFactory interface {
		SubscriptionRequestRepository() ports.SubscriptionRequestRepository
	}

	// PlanRepoFactory provides access to the plan repository within a transaction.
	PlanRepoFactory interface {
		PlanRepository() ports.PlanRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SubscriptionUoW manages transactions spanning subscription requests
	// and plan aggregates. Approve needs both: the status write and the
	// plan counter increment must commit together.
	SubscriptionUoW interface {
		TxManager
		SubscriptionRepoFactory
		PlanRepoFactory
	}

	// SubscriptionUoWFactory creates new subscription unit of work instances.
	SubscriptionUoWFactory interface {
		Create() SubscriptionUoW
	}
)
