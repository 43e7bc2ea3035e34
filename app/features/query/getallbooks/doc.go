// Package getallbooks implements the Get All Books query use case.
//
// The books are returned in insertion order.
package getallbooks
