// Package getbook implements the Get Book query use case.
package getbook
