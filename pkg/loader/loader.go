package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/minicore-io/minicore/pkg/coreerrors"
	"github.com/minicore-io/minicore/pkg/syncs"
)

const (
	// EnvDisable disables core loading entirely when set to "true".
	EnvDisable = "MINICORE_DISABLE"

	// EnvLibPath points at a core library (or compressed artifact) to load,
	// bypassing directory search.
	EnvLibPath = "MINICORE_LIB_PATH"
)

// DirCandidate is a directory the loader searches for core libraries.
type DirCandidate struct {
	// Prepare runs before the directory is used. A non-nil error skips the
	// candidate.
	Prepare func() error

	// Kind labels the candidate in logs ("env", "cwd", "cache", "config").
	Kind string

	// Path is the directory to search.
	Path string
}

func (d DirCandidate) String() string {
	return fmt.Sprintf("%s:%s", d.Kind, d.Path)
}

// Loader locates and loads core libraries.
type Loader struct {
	logger     *slog.Logger
	keyLock    *syncs.KeyLock
	searchDirs []DirCandidate
	disabled   bool
}

// Option configures a [Loader].
type Option func(*Loader)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithSearchDirs replaces the default directory candidates.
func WithSearchDirs(dirs ...DirCandidate) Option {
	return func(l *Loader) {
		l.searchDirs = dirs
	}
}

// WithDisabled turns off core loading, e.g. when the client configuration
// sets disable_loader. A disabled Loader returns a Core reporting
// [coreerrors.ErrLoaderDisabled] without touching the filesystem.
func WithDisabled(disabled bool) Option {
	return func(l *Loader) {
		l.disabled = disabled
	}
}

// WithExtraDirs appends plain directories (e.g. from client configuration)
// to the search list.
func WithExtraDirs(dirs ...string) Option {
	return func(l *Loader) {
		for _, dir := range dirs {
			l.searchDirs = append(l.searchDirs, DirCandidate{Kind: "config", Path: dir})
		}
	}
}

// New creates a [Loader] with platform-appropriate search directories.
func New(opts ...Option) *Loader {
	l := &Loader{
		logger:     slog.Default(),
		keyLock:    syncs.NewKeyLock(),
		searchDirs: defaultSearchDirs(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// defaultSearchDirs returns the ordered directory candidates: the working
// directory, then the per-user cache directory.
func defaultSearchDirs() []DirCandidate {
	var dirs []DirCandidate

	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, DirCandidate{Kind: "cwd", Path: cwd})
	}

	if cacheDir := cacheDirInHome(); cacheDir != "" {
		dirs = append(dirs, DirCandidate{
			Kind: "cache",
			Path: cacheDir,
			Prepare: func() error {
				if err := os.MkdirAll(cacheDir, 0o700); err != nil {
					return fmt.Errorf("create cache dir: %w", err)
				}

				return nil
			},
		})
	}

	return dirs
}

// cacheDirInHome returns the platform-specific cache directory for core
// libraries.
func cacheDirInHome() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(homeDir, "AppData", "Local", "minicore", "lib")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Caches", "minicore", "lib")
	default:
		return filepath.Join(homeDir, ".cache", "minicore", "lib")
	}
}

// Load locates and loads a core library. It always returns a non-nil
// [Core]; failures yield a Core whose FullVersion reports the load error.
func (l *Loader) Load(ctx context.Context) Core {
	if l.disabled {
		return NewErroredCore(coreerrors.ErrLoaderDisabled)
	}

	if err := ctx.Err(); err != nil {
		return NewErroredCore(fmt.Errorf("core load canceled: %w", err))
	}

	if envPath := os.Getenv(EnvLibPath); envPath != "" {
		l.logger.Debug("loading core library from environment override", "path", envPath)

		return l.LoadPath(ctx, envPath)
	}

	libPath, err := l.findLibrary()
	if err != nil {
		return NewErroredCore(err)
	}

	return l.LoadPath(ctx, libPath)
}

// LoadPath loads the core library (or compressed artifact) at path.
func (l *Loader) LoadPath(ctx context.Context, path string) Core {
	if l.disabled {
		return NewErroredCore(coreerrors.ErrLoaderDisabled)
	}

	logger := l.logger.With("load_id", uuid.NewString(), "path", path)

	if err := ctx.Err(); err != nil {
		return NewErroredCore(fmt.Errorf("core load canceled: %w", err))
	}

	libPath := path

	if IsCompressed(path) {
		extracted, err := l.extractArtifact(path, logger)
		if err != nil {
			return NewErroredCore(err)
		}

		defer removeExtracted(extracted, logger)

		libPath = extracted
	}

	logger.Debug("loading core library")

	core := osLoadFromPath(libPath, logger)

	if v, err := core.FullVersion(); err == nil {
		logger.Debug("core library loaded", "full_version", v)
	}

	return core
}

// findLibrary searches the candidate directories for the first matching
// library name.
func (l *Loader) findLibrary() (string, error) {
	names := LibraryNames()

	var merr error

	for _, dir := range l.searchDirs {
		if dir.Prepare != nil {
			if err := dir.Prepare(); err != nil {
				l.logger.Debug("skipping search dir", "dir", dir.String(), "err", err)
				merr = multierror.Append(merr, fmt.Errorf("prepare %s: %w", dir, err))

				continue
			}
		}

		for _, name := range names {
			libPath := filepath.Join(dir.Path, name)

			fi, err := os.Stat(libPath)
			if err != nil || fi.IsDir() {
				continue
			}

			l.logger.Debug("found core library", "dir", dir.String(), "name", name)

			return libPath, nil
		}
	}

	merr = multierror.Append(merr, fmt.Errorf("%w: searched %d directories for %v",
		coreerrors.ErrLibraryNotFound, len(l.searchDirs), names))

	return "", NewCoreError(ErrorTypeInit, runtime.GOOS, "", merr)
}

// osLoadFromPath performs the platform-specific load. Platform files
// replace it at init; the default covers platforms with no implementation.
var osLoadFromPath = func(libPath string, _ *slog.Logger) Core {
	return NewErroredCore(NewCoreError(ErrorTypeInit, runtime.GOOS, libPath,
		fmt.Errorf("%w: no core loader for %v/%v", coreerrors.ErrUnsupportedPlatform, runtime.GOOS, runtime.GOARCH)))
}
