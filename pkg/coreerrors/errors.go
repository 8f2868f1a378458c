package coreerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrWrite indicates an error occurred while writing.
	ErrWrite = errors.New("write")

	// ErrWriteFile indicates an error occurred while writing a file.
	ErrWriteFile = fmt.Errorf("file: %w", ErrWrite)

	// ErrLibraryNotFound indicates no core library could be located in any
	// of the candidate directories.
	ErrLibraryNotFound = errors.New("core library not found")

	// ErrSymbolNotFound indicates the expected symbol is missing from a
	// loaded core library.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrEmptyVersion indicates a core library returned an empty version
	// string, which violates the accessor contract.
	ErrEmptyVersion = errors.New("empty version")

	// ErrUnsupportedPlatform indicates the current OS or architecture has
	// no core loader implementation.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrLoaderDisabled indicates core loading was disabled by the
	// environment or client configuration.
	ErrLoaderDisabled = errors.New("loader disabled")

	// ErrInvalidFormat indicates an unexpected or invalid format was encountered.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrFileNotFound indicates a file wasn't found in the specified path.
	ErrFileNotFound = errors.New("file not found")

	// ErrFilePermissions indicates a file has permissions that are too
	// broad to be trusted.
	ErrFilePermissions = errors.New("file permissions too open")

	// ErrYAMLUnmarshal indicates an error occurred while unmarshaling YAML.
	ErrYAMLUnmarshal = errors.New("unmarshal YAML")

	// ErrYAMLMarshal indicates an error occurred while marshaling YAML.
	ErrYAMLMarshal = errors.New("marshal YAML")
)
