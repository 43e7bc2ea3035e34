// Package storetest provides a behavioral test suite that every storage engine must pass.
package storetest
