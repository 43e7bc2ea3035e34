// Package addauthor implements the Add Author use case.
//
// The handler stores a new author with a freshly assigned id and returns that id as the Result payload.
package addauthor
