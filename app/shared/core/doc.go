// Package core contains the domain types of the book catalog: Author and Book,
// the default genre, and the domain errors that handlers report as business failures.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
