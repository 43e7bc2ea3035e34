// Package memoryengine provides an in-process implementation of the author and book store.
//
// It mirrors the semantics of postgresengine: records are returned in insertion order,
// books must reference an existing author, and an author cannot be deleted while books
// reference it. All operations are serialized by a single RWMutex, so they are atomic
// with respect to each other. Records are copied in and out and never shared with callers.
package memoryengine
