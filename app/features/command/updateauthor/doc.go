// Package updateauthor implements the Update Author use case.
//
// Both names are overwritten. Updating an unknown author fails with "not found".
// Applying the same update twice yields the same stored state.
package updateauthor
