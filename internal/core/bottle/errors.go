package bottle

import "errors"

var (
	// ErrBaseDirectoryMissing indicates that the bottle container directory
	// is unset or does not exist
	ErrBaseDirectoryMissing = errors.New("bottle base directory is missing")

	// ErrBootFailed indicates that prefix initialization did not produce a
	// usable bottle
	ErrBootFailed = errors.New("bottle boot failed")

	// ErrNotFound indicates that no bottle is recorded under the requested name
	ErrNotFound = errors.New("bottle not found")

	// ErrStoreCorrupt indicates that the store snapshot exists but cannot be
	// decoded. Reads degrade to an empty view with a logged warning; writes
	// refuse to clobber the snapshot and surface this error instead.
	ErrStoreCorrupt = errors.New("bottle store is corrupt")
)
