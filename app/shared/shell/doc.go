// Package shell contains process-level infrastructure shared by all features:
// logger construction with a CRITICAL level, and retry with exponential backoff for startup checks.
//
// This package is part of the shell (infrastructure) layer and does not contain business logic.
package shell
