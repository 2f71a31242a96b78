package bottle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/csabika98/Mythic/internal/core/logger"
	"github.com/csabika98/Mythic/internal/core/wine"
)

// markerDir is the subdirectory wine creates inside a prefix on first
// boot; its presence is what makes a directory a real bottle.
const markerDir = "drive_c"

// bootSuccessMarker appears on wineboot's stderr once the prefix
// configuration has been written, e.g.
// "wine: configuration in /tmp/x/Default has been updated."
const bootSuccessMarker = "has been updated"

// Exists reports whether path holds a booted bottle: its immediate
// children must include the wine marker directory. It never errors; a
// missing path, permission denial or any other enumeration failure
// degrades to false.
func Exists(path string) bool {
	info, err := os.Stat(filepath.Join(path, markerDir))
	return err == nil && info.IsDir()
}

// Manager implements the bottle lifecycle operations on top of the store
// and the wine supervisor.
type Manager struct {
	store   *Store
	runtime *wine.Runtime
	baseDir string
	log     logger.Logger

	// bootsInFlight counts boots currently running, making the transient
	// "booting" state observable to collaborators.
	bootsInFlight atomic.Int64
}

// NewManager creates a lifecycle manager. baseDir is the container
// directory holding one prefix per bottle.
func NewManager(store *Store, runtime *wine.Runtime, baseDir string, log logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		store:   store,
		runtime: runtime,
		baseDir: baseDir,
		log:     log,
	}
}

// Store returns the bottle store backing this manager
func (m *Manager) Store() *Store {
	return m.store
}

// Runtime returns the wine supervisor backing this manager
func (m *Manager) Runtime() *wine.Runtime {
	return m.runtime
}

// Booting reports whether any boot is currently in flight
func (m *Manager) Booting() bool {
	return m.bootsInFlight.Load() > 0
}

// Bottle returns the recorded bottle for name, or ErrNotFound
func (m *Manager) Bottle(ctx context.Context, name string) (Bottle, error) {
	b, ok, err := m.store.Get(ctx, name)
	if err != nil {
		return Bottle{}, err
	}
	if !ok {
		return Bottle{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return b, nil
}

// Boot initializes the bottle named name, creating it if absent, and
// returns a single-shot task resolving to the booted bottle. Boot itself
// never fails synchronously; every outcome, precondition failures
// included, surfaces through the task exactly once. Cancelling ctx kills
// the initialization process.
//
// A provisional Busy entry is recorded before initialization starts so
// concurrent readers see the bottle immediately. It is deliberately not
// rolled back on failure; callers must tolerate a lingering Busy entry
// after a failed boot.
func (m *Manager) Boot(ctx context.Context, name string, settings Settings) *BootTask {
	task := newBootTask()
	go func() {
		b, err := m.boot(ctx, name, settings)
		task.complete(BootResult{Bottle: b, Err: err})
	}()
	return task
}

func (m *Manager) boot(ctx context.Context, name string, settings Settings) (Bottle, error) {
	m.bootsInFlight.Add(1)
	defer m.bootsInFlight.Add(-1)

	if m.baseDir == "" {
		return Bottle{}, ErrBaseDirectoryMissing
	}
	if info, err := os.Stat(m.baseDir); err != nil || !info.IsDir() {
		return Bottle{}, fmt.Errorf("%w: %s", ErrBaseDirectoryMissing, m.baseDir)
	}
	if err := m.runtime.Validate(); err != nil {
		return Bottle{}, err
	}

	path := filepath.Join(m.baseDir, name)
	if err := checkWritable(path, m.baseDir); err != nil {
		return Bottle{}, err
	}

	provisional := Bottle{
		Name:     name,
		Path:     path,
		Settings: settings,
		Busy:     true,
	}
	if _, ok, err := m.store.Get(ctx, name); err != nil {
		return Bottle{}, err
	} else if !ok {
		if err := m.store.Put(ctx, provisional); err != nil {
			return Bottle{}, err
		}
	}

	// Tolerates an existing directory; a failure is logged but not fatal
	// since wineboot creates the prefix itself when it can.
	if err := os.MkdirAll(path, 0o755); err != nil {
		m.log.Warn("failed to create bottle directory", "path", path, "error", err)
	}

	m.log.Info("booting bottle", "name", name, "path", path)

	_, stderr, execErr := m.runtime.Execute(ctx, wine.Command{
		Args:       []string{"wineboot"},
		Identifier: "wineboot-" + name,
		Prefix:     path,
		Env:        settings.Environment(),
	})

	configured := strings.Contains(wine.DecodeOutput(stderr), bootSuccessMarker)
	if !configured && !Exists(path) {
		if execErr != nil {
			return Bottle{}, fmt.Errorf("%w: %s: %v", ErrBootFailed, name, execErr)
		}
		return Bottle{}, fmt.Errorf("%w: %s", ErrBootFailed, name)
	}

	booted := Bottle{
		Name:     name,
		Path:     path,
		Settings: settings,
		Busy:     false,
	}

	// The registry write happens before the final store update, so the
	// recorded settings never claim a retina state the prefix does not
	// have.
	if settings.Retina {
		if err := m.AddRegistryKey(ctx, booted, macDriverKey, "RetinaMode", "y", RegSz); err != nil {
			m.log.Warn("failed to enable retina mode", "name", name, "error", err)
			booted.Settings.Retina = false
		}
	}

	if err := m.store.Put(ctx, booted); err != nil {
		return Bottle{}, err
	}

	m.log.Info("bottle booted", "name", name, "path", path)
	return booted, nil
}

// checkWritable validates the prefix location before a boot. A prefix
// that does not exist yet is judged by its parent container instead.
func checkWritable(path, baseDir string) error {
	target := path
	if _, err := os.Stat(path); os.IsNotExist(err) {
		target = baseDir
	}
	if err := unix.Access(target, unix.W_OK); err != nil {
		return fmt.Errorf("%w: %s", wine.ErrPrefixNotWritable, target)
	}
	return nil
}
