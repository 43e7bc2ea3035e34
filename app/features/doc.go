// Package features wires every command and query handler of the book catalog into a mediator.Registry.
//
// Each use case lives in its own package below command/ or query/, with a Command or Query type,
// a BuildCommand or BuildQuery constructor, and a handler that depends only on the
// service methods it needs.
package features
