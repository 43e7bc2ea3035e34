// Package deletebook implements the Delete Book use case.
package deletebook
