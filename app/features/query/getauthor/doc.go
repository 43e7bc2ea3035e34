// Package getauthor implements the Get Author query use case.
package getauthor
