//go:build !windows

package loader

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>

static void* libOpen(const char* path) {
	return dlopen(path, RTLD_LAZY);
}

static void* libSym(void* handle, const char* name) {
	return dlsym(handle, name);
}

static int libClose(void* handle) {
	return dlclose(handle);
}

static char* libError() {
	return dlerror();
}

typedef const char* (*fullVersionFunc)();

static const char* callFullVersion(fullVersionFunc f) {
	return f();
}
*/
import "C"

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/minicore-io/minicore/pkg/coreerrors"
)

func init() {
	osLoadFromPath = loadFromPath
}

// loadFromPath dlopens the library at libPath, resolves the version symbol,
// calls it once, and closes the library. The version string is cached in
// the returned [Core].
func loadFromPath(libPath string, logger *slog.Logger) Core {
	cLibPath := C.CString(libPath)
	defer C.free(unsafe.Pointer(cLibPath))

	handle := C.libOpen(cLibPath)
	if handle == nil {
		dlErr := C.GoString(C.libError())

		return NewErroredCore(NewCoreError(ErrorTypeLoad, "posix", libPath,
			fmt.Errorf("failed to load shared library: %v", dlErr)))
	}

	defer func() {
		if ret := C.libClose(handle); ret != 0 {
			logger.Debug("error closing dynamic library", "err", C.GoString(C.libError()))
		}
	}()

	cSymbol := C.CString(VersionSymbol)
	defer C.free(unsafe.Pointer(cSymbol))

	symbol := C.libSym(handle, cSymbol)
	if symbol == nil {
		dlErr := C.GoString(C.libError())

		return NewErroredCore(NewCoreError(ErrorTypeSymbol, "posix", libPath,
			fmt.Errorf("%w: %s: %v", coreerrors.ErrSymbolNotFound, VersionSymbol, dlErr)))
	}

	fullVersionFunc := (C.fullVersionFunc)(symbol)

	fullVersion := C.GoString(C.callFullVersion(fullVersionFunc))
	if fullVersion == "" {
		return NewErroredCore(NewCoreError(ErrorTypeCall, "posix", libPath, coreerrors.ErrEmptyVersion))
	}

	return newLoadedCore(fullVersion)
}
