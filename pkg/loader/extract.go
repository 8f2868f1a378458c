package loader

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/minicore-io/minicore/pkg/coreerrors"
)

// maxArtifactSize bounds decompression output to guard against corrupt or
// hostile artifacts.
const maxArtifactSize = 256 << 20

// extractArtifact decompresses the core artifact at path into a private
// temporary directory and returns the extracted library path. Concurrent
// extraction of the same artifact is serialized; distinct artifacts proceed
// in parallel. The caller removes the returned file and its directory after
// loading.
func (l *Loader) extractArtifact(path string, logger *slog.Logger) (string, error) {
	l.keyLock.Lock(path)
	defer l.keyLock.Unlock(path)

	src, err := os.Open(path) //nolint:gosec // Path comes from the loader's own candidate resolution.
	if err != nil {
		return "", NewCoreError(ErrorTypeWrite, runtime.GOOS, path, fmt.Errorf("open artifact: %w", err))
	}

	defer func() {
		if err := src.Close(); err != nil {
			logger.Debug("cannot close artifact", "err", err)
		}
	}()

	reader, name, err := decompressReader(src, path)
	if err != nil {
		return "", NewCoreError(ErrorTypeWrite, runtime.GOOS, path, err)
	}

	defer closeQuietly(reader, logger)

	destDir, err := os.MkdirTemp("", "minicore-extract")
	if err != nil {
		return "", NewCoreError(ErrorTypeWrite, runtime.GOOS, path, fmt.Errorf("create extraction dir: %w", err))
	}

	// Failed extractions must not leave the temp dir (or a partial file)
	// behind.
	discardDestDir := func() {
		if err := os.RemoveAll(destDir); err != nil {
			logger.Debug("cannot remove extraction dir", "err", err)
		}
	}

	if runtime.GOOS == "linux" || runtime.GOOS == "darwin" {
		if err := os.Chmod(destDir, 0o700); err != nil {
			discardDestDir()

			return "", NewCoreError(ErrorTypeWrite, runtime.GOOS, destDir, fmt.Errorf("restrict extraction dir: %w", err))
		}
	}

	destPath := filepath.Join(destDir, name)

	dest, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) //nolint:gosec // destPath is inside our own temp dir.
	if err != nil {
		discardDestDir()

		return "", NewCoreError(ErrorTypeWrite, runtime.GOOS, destPath, fmt.Errorf("%w: %w", coreerrors.ErrWriteFile, err))
	}

	_, err = io.Copy(dest, io.LimitReader(reader, maxArtifactSize))
	if err != nil {
		closeQuietly(dest, logger)
		discardDestDir()

		return "", NewCoreError(ErrorTypeWrite, runtime.GOOS, destPath, fmt.Errorf("%w: %w", coreerrors.ErrWriteFile, err))
	}

	if err := dest.Close(); err != nil {
		discardDestDir()

		return "", NewCoreError(ErrorTypeWrite, runtime.GOOS, destPath, fmt.Errorf("%w: %w", coreerrors.ErrWriteFile, err))
	}

	logger.Debug("extracted core artifact", "dest", destPath)

	return destPath, nil
}

// decompressReader wraps src with the decompressor matching the path's
// suffix and returns the library file name without the compression suffix.
// The caller closes the returned reader.
func decompressReader(src io.Reader, path string) (io.ReadCloser, string, error) {
	base := filepath.Base(path)

	switch {
	case strings.HasSuffix(path, ".gz"):
		r, err := gzip.NewReader(src)
		if err != nil {
			return nil, "", fmt.Errorf("gzip artifact: %w", err)
		}

		return r, strings.TrimSuffix(base, ".gz"), nil

	case strings.HasSuffix(path, ".zst"):
		r, err := zstd.NewReader(src)
		if err != nil {
			return nil, "", fmt.Errorf("zstd artifact: %w", err)
		}

		return r.IOReadCloser(), strings.TrimSuffix(base, ".zst"), nil
	}

	return nil, "", fmt.Errorf("%w: %s is not a known compressed artifact", coreerrors.ErrInvalidFormat, base)
}

// removeExtracted deletes an extracted library and its temporary directory.
func removeExtracted(path string, logger *slog.Logger) {
	if err := os.Remove(path); err != nil {
		logger.Debug("cannot remove extracted library", "err", err)

		return
	}

	if err := os.Remove(filepath.Dir(path)); err != nil {
		logger.Debug("cannot remove extraction dir", "err", err)
	}
}

func closeQuietly(c io.Closer, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Debug("close failed", "err", err)
	}
}
