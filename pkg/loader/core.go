package loader

import (
	"fmt"
	"log/slog"
)

// Core is a handle to a loaded core library.
type Core interface {
	// FullVersion returns the version string reported by the core library.
	FullVersion() (string, error)
}

// ErrorType categorizes core loading failures.
type ErrorType int

const (
	ErrorTypeLoad   ErrorType = iota // Library loading failed
	ErrorTypeSymbol                  // Symbol lookup failed
	ErrorTypeCall                    // Function call failed
	ErrorTypeInit                    // Initialization failed
	ErrorTypeWrite                   // File write failed
)

// String returns a human-readable representation of the error type.
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeLoad:
		return "load"
	case ErrorTypeSymbol:
		return "symbol"
	case ErrorTypeCall:
		return "call"
	case ErrorTypeInit:
		return "init"
	case ErrorTypeWrite:
		return "write"
	default:
		return "unknown"
	}
}

// CoreError is a structured error from core loading operations. It records
// what failed, on which platform, and for which library path.
type CoreError struct {
	Err      error
	Platform string
	Path     string
	Type     ErrorType
}

// NewCoreError creates a [CoreError] with full context.
func NewCoreError(et ErrorType, platform, path string, err error) *CoreError {
	return &CoreError{
		Type:     et,
		Platform: platform,
		Path:     path,
		Err:      err,
	}
}

// Error returns a formatted message with context about the failure.
func (e *CoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("core %s on %s (path: %s): %v", e.Type, e.Platform, e.Path, e.Err)
	}

	return fmt.Sprintf("core %s on %s: %v", e.Type, e.Platform, e.Err)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *CoreError) Unwrap() error {
	return e.Err
}

// erroredCore implements [Core] but always returns an error. It is used
// when loading or initialization fails, so callers always receive a non-nil
// Core.
type erroredCore struct {
	err error
}

// NewErroredCore creates a [Core] implementation that always returns the
// given error.
func NewErroredCore(err error) Core {
	slog.Debug("core load failed", "err", err)

	return &erroredCore{err: err}
}

// FullVersion always returns an empty string and the stored error.
func (ec *erroredCore) FullVersion() (string, error) {
	return "", ec.err
}

// loadedCore caches the version string returned by the native call, so the
// library does not need to stay resident.
type loadedCore struct {
	fullVersion string
}

func newLoadedCore(fullVersion string) *loadedCore {
	return &loadedCore{fullVersion: fullVersion}
}

// FullVersion returns the cached version string.
func (lc *loadedCore) FullVersion() (string, error) {
	return lc.fullVersion, nil
}
