// Package subscription contains the SubscriptionRequest and Plan
// aggregates for recurring meal-plan subscriptions.
//
// A request is processed exactly once by its owning kitchen, and the
// plan's subscriber count and revenue figures track only approvals: the
// asymmetry between approve (mutates the plan aggregates) and reject
// (does not) is the package's central invariant.
package subscription
