package wine

import "errors"

var (
	// ErrRuntimeNotInstalled indicates that the wine binary could not be resolved
	ErrRuntimeNotInstalled = errors.New("wine runtime is not installed")

	// ErrPrefixNotFound indicates that the target prefix directory does not exist
	ErrPrefixNotFound = errors.New("wine prefix does not exist")

	// ErrPrefixNotWritable indicates that the target prefix directory is not writable
	ErrPrefixNotWritable = errors.New("wine prefix is not writable")

	// ErrSpawnFailed indicates that the wine process could not be started.
	// Preconditions held but exec itself failed, e.g. the binary vanished
	// between the check and the spawn.
	ErrSpawnFailed = errors.New("failed to start wine process")

	// ErrProcessNotFound indicates that no in-flight process is registered
	// under the requested identifier
	ErrProcessNotFound = errors.New("process not found")
)
