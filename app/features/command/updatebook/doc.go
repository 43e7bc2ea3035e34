// Package updatebook implements the Update Book use case.
//
// All mutable fields are overwritten, including the genre. An unknown book fails with "not found",
// an unknown author with "author not found". In both cases the stored book stays unchanged.
package updatebook
