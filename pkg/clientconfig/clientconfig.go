package clientconfig

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/minicore-io/minicore/pkg/coreerrors"
)

const (
	// DefaultFileName is the configuration file name searched for in the
	// predefined directories.
	DefaultFileName = "minicore_config.yml"

	// EnvConfigFile overrides the configuration file location.
	EnvConfigFile = "MINICORE_CONFIG_FILE"
)

// Config is the client configuration root.
type Config struct {
	Common *CommonProps `yaml:"common"`
}

// CommonProps holds properties from the "common" section.
type CommonProps struct {
	LogLevel      string   `yaml:"log_level,omitempty"`
	LogFormat     string   `yaml:"log_format,omitempty"`
	DisableLoader bool     `yaml:"disable_loader,omitempty"`
	LibDirs       []string `yaml:"lib_dirs,omitempty"`
}

// Get resolves and parses the client configuration. explicitPath, when
// non-empty, takes precedence over the environment and the predefined
// directories. It returns the parsed configuration and the path it was read
// from. Both are zero when no configuration file exists.
func Get(explicitPath string) (*Config, string, error) {
	filePath := findFilePath(explicitPath, predefinedDirs())
	if filePath == "" {
		return nil, "", nil
	}

	cfg, err := Parse(filePath)
	if err != nil {
		return nil, filePath, err
	}

	return cfg, filePath, nil
}

// Parse reads and validates the configuration file at filePath.
func Parse(filePath string) (*Config, error) {
	exists, err := fileExists(filePath)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, fmt.Errorf("%w: %s", coreerrors.ErrFileNotFound, filePath)
	}

	if err := validatePermissions(filePath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath) //nolint:gosec // Path is resolved from trusted locations.
	if err != nil {
		return nil, fmt.Errorf("read client config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", coreerrors.ErrYAMLUnmarshal, err)
	}

	return cfg, nil
}

func findFilePath(explicitPath string, dirs []string) string {
	if explicitPath != "" {
		slog.Info("using client configuration path from arguments", "path", explicitPath)

		return explicitPath
	}

	if envPath := os.Getenv(EnvConfigFile); envPath != "" {
		slog.Info("using client configuration path from environment", "path", envPath)

		return envPath
	}

	for _, dir := range dirs {
		filePath := filepath.Join(dir, DefaultFileName)

		exists, err := fileExists(filePath)
		if err != nil {
			slog.Debug("cannot check for client config", "dir", dir, "err", err)

			continue
		}

		if exists {
			slog.Info("using client configuration from a default directory", "path", filePath)

			return filePath
		}
	}

	return ""
}

func fileExists(filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, fmt.Errorf("stat %s: %w", filePath, err)
}

func predefinedDirs() []string {
	dirs := []string{"."}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		slog.Warn("cannot access home directory for client config search", "err", err)

		return dirs
	}

	return append(dirs, homeDir)
}

// validatePermissions rejects configuration files writable by group or
// others. Windows has no comparable permission bits, so the check is
// skipped there.
func validatePermissions(filePath string) error {
	if runtime.GOOS == "windows" {
		return nil
	}

	fi, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", filePath, err)
	}

	if fi.Mode().Perm()&0o022 != 0 {
		return fmt.Errorf("%w: %s has mode %o", coreerrors.ErrFilePermissions, filePath, fi.Mode().Perm())
	}

	return nil
}
