// Package filemanager provides process-safe snapshot files: a yaml document
// guarded by a file lock and replaced atomically on every write.
package filemanager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// ErrLockTimeout is returned when acquiring the file lock times out
var ErrLockTimeout = errors.New("timeout acquiring file lock")

// ErrCorrupt is returned when the snapshot exists but cannot be decoded.
// It is distinct from fs.ErrNotExist so callers can tell a corrupt snapshot
// from an absent one.
var ErrCorrupt = errors.New("snapshot is corrupt")

// UpdateFunc is a function that modifies the snapshot in-place
type UpdateFunc[T any] func(data *T) error

// Manager reads and writes one yaml snapshot file of type T.
// All operations serialize against other processes through a sibling
// ".lock" file, so the lock survives the atomic rename of the snapshot
// itself.
type Manager[T any] struct {
	lockTimeout time.Duration
}

// NewManager creates a snapshot manager with default settings
func NewManager[T any]() *Manager[T] {
	return &Manager[T]{
		lockTimeout: 5 * time.Second,
	}
}

// NewManagerWithTimeout creates a snapshot manager with a custom lock timeout
func NewManagerWithTimeout[T any](timeout time.Duration) *Manager[T] {
	return &Manager[T]{
		lockTimeout: timeout,
	}
}

// Read loads the snapshot under a shared lock.
// A missing file returns an error satisfying os.IsNotExist; an undecodable
// file returns an error wrapping ErrCorrupt.
func (m *Manager[T]) Read(ctx context.Context, path string) (*T, error) {
	lock, err := m.acquire(ctx, path, false)
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Unlock() }()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var result T
	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}

	return &result, nil
}

// Write replaces the snapshot under an exclusive lock.
// The document is written to a temp file, synced, and renamed over the
// target so readers never observe a partial snapshot.
func (m *Manager[T]) Write(ctx context.Context, path string, data *T) error {
	lock, err := m.acquire(ctx, path, true)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	return m.writeLocked(path, data)
}

// Update reads the snapshot, applies fn, and writes the result back, all
// under one exclusive lock. A missing file starts from the zero value of T,
// so the first update creates the snapshot.
func (m *Manager[T]) Update(ctx context.Context, path string, fn UpdateFunc[T]) error {
	lock, err := m.acquire(ctx, path, true)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	var current T
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &current); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
		}
	case os.IsNotExist(err):
		// First update creates the file.
	default:
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	if err := fn(&current); err != nil {
		return err
	}

	return m.writeLocked(path, &current)
}

// acquire takes the sibling lock file for path, shared or exclusive.
func (m *Manager[T]) acquire(ctx context.Context, path string, exclusive bool) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	lock := flock.New(path + ".lock")

	lockCtx, cancel := context.WithTimeout(ctx, m.lockTimeout)
	defer cancel()

	var locked bool
	var err error
	if exclusive {
		locked, err = lock.TryLockContext(lockCtx, 100*time.Millisecond)
	} else {
		locked, err = lock.TryRLockContext(lockCtx, 100*time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to acquire file lock: %w", err)
	}
	if !locked {
		return nil, ErrLockTimeout
	}

	return lock, nil
}

// writeLocked marshals data and atomically replaces path.
// The caller must hold the exclusive lock.
func (m *Manager[T]) writeLocked(path string, data *T) error {
	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}

	tempFile := fmt.Sprintf("%s.%d.tmp", path, os.Getpid())
	f, err := os.OpenFile(tempFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := f.Write(yamlData); err != nil {
		_ = f.Close()
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename snapshot: %w", err)
	}

	return nil
}
