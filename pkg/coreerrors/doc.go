// Package coreerrors provides error definitions and handling for core
// library operations.
//
// This package defines standardized error types and error handling utilities
// to ensure consistent error reporting and wrapping throughout the codebase.
package coreerrors
