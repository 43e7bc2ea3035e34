// Package addbook implements the Add Book use case.
//
// New books always get the genre "Fiction". The referenced author must exist,
// otherwise the handler fails with "author not found" and no book is stored.
package addbook
