// Package getallauthors implements the Get All Authors query use case.
//
// This is a read-only operation. The authors are returned in insertion order,
// an empty catalog yields an empty, non-nil list.
package getallauthors
