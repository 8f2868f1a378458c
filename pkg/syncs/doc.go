// Package syncs provides synchronization primitives and utilities.
//
// This package implements concurrency control mechanisms used to keep
// concurrent core library loads and artifact extractions safe.
package syncs
