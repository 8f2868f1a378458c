// Command libminicore is the core shared library entrypoint. Build it with:
//
//	go build -buildmode=c-shared -o libminicore.so ./cmd/libminicore
//
// The resulting library exports minicore_full_version, which returns a
// pointer to a static null-terminated version string. The pointer is never
// null, the string is never empty, and both remain valid for the lifetime
// of the process. Callers borrow the data and must never free or mutate it.
package main

import "C"

import (
	"github.com/minicore-io/minicore/pkg/version"
)

// cFullVersion is allocated exactly once at initialization and is
// intentionally never freed; the exported pointer must stay valid for the
// process lifetime.
var cFullVersion = C.CString(version.FullVersion())

// minicore_full_version returns the full version of the core as a static
// null-terminated C string.
//
// Thread-safe: the returned data is immutable process-wide state requiring
// no synchronization. This function never returns NULL and cannot fail.
//
//export minicore_full_version
func minicore_full_version() *C.char {
	return cFullVersion
}

// goFullVersion mirrors the exported function for in-process callers and
// tests, which cannot use cgo types from _test.go files.
func goFullVersion() string {
	return C.GoString(minicore_full_version())
}

// fullVersionPointerIsStable reports whether repeated calls return the same
// non-null pointer.
func fullVersionPointerIsStable() bool {
	first := minicore_full_version()
	second := minicore_full_version()

	return first != nil && first == second
}

func main() {}
