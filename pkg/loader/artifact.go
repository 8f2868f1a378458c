package loader

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
)

// VersionSymbol is the symbol every core library exports.
const VersionSymbol = "minicore_full_version"

// libcType represents the C library flavor in use on Linux.
type libcType string

const (
	libcTypeGlibc   libcType = "glibc"
	libcTypeMusl    libcType = "musl"
	libcTypeIgnored libcType = ""
)

// CompressedExtensions lists the artifact compression suffixes the loader
// can transparently extract.
var CompressedExtensions = []string{".gz", ".zst"}

// LibraryNames returns the candidate file names for the core library on the
// current platform, most specific first. Compressed variants of each name
// are appended after the plain names.
func LibraryNames() []string {
	names := plainLibraryNames()

	for _, name := range plainLibraryNames() {
		for _, ext := range CompressedExtensions {
			names = append(names, name+ext)
		}
	}

	return names
}

func plainLibraryNames() []string {
	var prefix, ext string

	switch runtime.GOOS {
	case "windows":
		prefix, ext = "", ".dll"
	case "darwin":
		prefix, ext = "lib", ".dylib"
	default:
		prefix, ext = "lib", ".so"
	}

	platformName := fmt.Sprintf("%sminicore_%s_%s", prefix, runtime.GOOS, runtime.GOARCH)

	var names []string

	if libc := detectLibc(); libc != libcTypeIgnored {
		names = append(names, fmt.Sprintf("%s_%s%s", platformName, libc, ext))
	}

	names = append(names, platformName+ext, prefix+"minicore"+ext)

	return names
}

// IsCompressed reports whether path names a compressed core artifact.
func IsCompressed(path string) bool {
	for _, ext := range CompressedExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	return false
}

// detectLibc detects whether glibc or musl is in use by checking
// /proc/self/maps. Only meaningful on Linux.
func detectLibc() libcType {
	if runtime.GOOS != "linux" {
		return libcTypeIgnored
	}

	fd, err := os.Open("/proc/self/maps")
	if err != nil {
		slog.Debug("cannot read /proc/self/maps, assuming glibc", "err", err)

		return libcTypeGlibc
	}

	defer func() {
		if err := fd.Close(); err != nil {
			slog.Debug("cannot close /proc/self/maps", "err", err)
		}
	}()

	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.Contains(line, "musl") {
			return libcTypeMusl
		}

		if strings.Contains(line, "libc.so.6") {
			return libcTypeGlibc
		}
	}

	if err := scanner.Err(); err != nil {
		slog.Debug("error scanning /proc/self/maps, assuming glibc", "err", err)
	}

	return libcTypeGlibc
}
