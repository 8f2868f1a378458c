//go:build windows

package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/minicore-io/minicore/pkg/coreerrors"
)

func init() {
	osLoadFromPath = loadFromPath
}

// loadFromPath loads the DLL at libPath, resolves the version procedure,
// calls it once, and frees the DLL. The version string is cached in the
// returned [Core].
func loadFromPath(libPath string, logger *slog.Logger) Core {
	dllHandle, err := windows.LoadLibrary(libPath)
	if err != nil {
		return NewErroredCore(NewCoreError(ErrorTypeLoad, "windows", libPath,
			fmt.Errorf("failed to load shared library: %w", err)))
	}

	defer func() {
		if err := windows.FreeLibrary(dllHandle); err != nil {
			logger.Debug("error freeing library", "err", err)
		}
	}()

	procAddr, err := windows.GetProcAddress(dllHandle, VersionSymbol)
	if err != nil {
		return NewErroredCore(NewCoreError(ErrorTypeSymbol, "windows", libPath,
			fmt.Errorf("%w: %s: %w", coreerrors.ErrSymbolNotFound, VersionSymbol, err)))
	}

	ret, _, callErr := syscall.SyscallN(procAddr)
	if callErr != 0 {
		return NewErroredCore(NewCoreError(ErrorTypeCall, "windows", libPath,
			fmt.Errorf("system call failed with error code: %v", callErr)))
	}

	cStrPtr := (*byte)(unsafe.Pointer(ret))
	if cStrPtr == nil {
		return NewErroredCore(NewCoreError(ErrorTypeCall, "windows", libPath,
			errors.New("native function returned null pointer")))
	}

	fullVersion := windows.BytePtrToString(cStrPtr)
	if fullVersion == "" {
		return NewErroredCore(NewCoreError(ErrorTypeCall, "windows", libPath, coreerrors.ErrEmptyVersion))
	}

	return newLoadedCore(fullVersion)
}
