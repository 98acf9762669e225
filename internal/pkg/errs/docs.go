// Package errs defines the error vocabulary shared by the domain model,
// application handlers and adapters.
//
// Every error category follows the same shape: a sentinel (for example
// ErrValueIsRequired), a struct carrying the offending parameter name and an
// optional cause, constructors with and without a cause, and an Unwrap that
// returns the sentinel. Callers classify failures with errors.Is against the
// sentinels and never inspect message text.
//
// The HTTP adapter relies on this classification to choose response codes,
// and the expiry job relies on ErrVersionIsInvalid to tell a lost
// optimistic-lock race apart from a real failure.
package errs
