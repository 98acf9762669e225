// Package services contains stateless domain services that implement
// business logic spanning value objects without belonging to a single
// aggregate. Currently this is the delivery pricing engine, which maps
// kitchen-to-buyer distance onto the tiered fee schedule.
package services
