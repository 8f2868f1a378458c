// Package loader locates, extracts, and loads core shared libraries, and
// queries them for their full version across the C boundary.
//
// A core library exports a single symbol, minicore_full_version, returning
// a static null-terminated string owned by the library for the lifetime of
// the process. The loader resolves the platform artifact name (including
// the libc flavor on Linux), searches a set of candidate directories,
// decompresses release artifacts when needed, and performs the
// dlopen/dlsym/call sequence, caching the result so the native call happens
// at most once per load.
package loader
