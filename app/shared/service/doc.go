// Package service implements the entity services for authors and books on top of a storage engine.
//
// The services assign identifiers, apply the default genre, and translate storage errors into
// the domain errors of package core. Every other storage error is returned unchanged, so that
// the dispatcher propagates it as an unrecoverable fault.
package service
