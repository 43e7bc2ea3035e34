// Package deleteauthor implements the Delete Author use case.
//
// An author that books still reference cannot be deleted, the handler then fails with "author has books".
package deleteauthor
