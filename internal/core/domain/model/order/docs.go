// Package order contains the Order aggregate and its lifecycle state
// machine for the marketplace domain.
//
// The aggregate enforces the fulfillment workflow (Pending -> Confirmed ->
// Preparing -> Delivering -> Completed, with cancellation only from the
// first two states), the immutability of the order total after creation,
// and the terminality of Completed and Cancelled.
package order
