// Package helper provides testing utilities shared by the mediator, storage, and app test suites.
//
// It contains spies for the mediator observability interfaces (log handler, metrics collector,
// tracing collector) and fixture builders for authors and books.
package helper
