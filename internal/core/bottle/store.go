package bottle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/csabika98/Mythic/internal/core/logger"
	"github.com/csabika98/Mythic/internal/filemanager"
)

// storeVersion is the snapshot schema version written by this build.
const storeVersion = 1

// snapshot is the persisted store document: the bottle map under one key
// and the default settings for new bottles under another.
type snapshot struct {
	Version  int               `yaml:"version"`
	Bottles  map[string]Bottle `yaml:"bottles"`
	Defaults Settings          `yaml:"defaults"`
}

// Store is the single source of truth for which bottles are recorded and
// their settings and busy state. It persists a versioned yaml snapshot
// through the filemanager, so concurrent processes serialize on a file
// lock while the in-process mutex keeps read-modify-write atomic per call.
//
// The existence probe, not the store, decides whether a prefix is a real
// environment; callers must tolerate entries without a directory and
// directories without an entry.
type Store struct {
	path string
	fm   *filemanager.Manager[snapshot]
	log  logger.Logger
	mu   sync.Mutex
}

// NewStore creates a store persisting to the snapshot file at path
func NewStore(path string, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		path: path,
		fm:   filemanager.NewManager[snapshot](),
		log:  log,
	}
}

// Get returns the bottle recorded under name
func (s *Store) Get(ctx context.Context, name string) (Bottle, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return Bottle{}, false, err
	}
	b, ok := snap.Bottles[name]
	return b, ok, nil
}

// List returns all recorded bottles sorted by name
func (s *Store) List(ctx context.Context) ([]Bottle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	bottles := make([]Bottle, 0, len(snap.Bottles))
	for _, b := range snap.Bottles {
		bottles = append(bottles, b)
	}
	sort.Slice(bottles, func(i, j int) bool {
		return bottles[i].Name < bottles[j].Name
	})
	return bottles, nil
}

// Put records a bottle, overwriting any previous entry for its name.
// It refuses to overwrite a corrupt snapshot.
func (s *Store) Put(ctx context.Context, b Bottle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.fm.Update(ctx, s.path, func(snap *snapshot) error {
		snap.Version = storeVersion
		if snap.Bottles == nil {
			snap.Bottles = make(map[string]Bottle)
		}
		snap.Bottles[b.Name] = b
		return nil
	})
	if errors.Is(err, filemanager.ErrCorrupt) {
		return fmt.Errorf("%w: refusing to overwrite %s", ErrStoreCorrupt, s.path)
	}
	return err
}

// Defaults returns the default settings applied to new bottles
func (s *Store) Defaults(ctx context.Context) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return Settings{}, err
	}
	return snap.Defaults, nil
}

// SetDefaults records the default settings for new bottles
func (s *Store) SetDefaults(ctx context.Context, defaults Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.fm.Update(ctx, s.path, func(snap *snapshot) error {
		snap.Version = storeVersion
		if snap.Bottles == nil {
			snap.Bottles = make(map[string]Bottle)
		}
		snap.Defaults = defaults
		return nil
	})
	if errors.Is(err, filemanager.ErrCorrupt) {
		return fmt.Errorf("%w: refusing to overwrite %s", ErrStoreCorrupt, s.path)
	}
	return err
}

// Check reports whether the snapshot on disk is readable. An absent file
// is fine; a corrupt one surfaces ErrStoreCorrupt so callers can tell the
// two apart instead of silently collapsing both to an empty store.
func (s *Store) Check(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.fm.Read(ctx, s.path)
	switch {
	case err == nil, os.IsNotExist(err):
		return nil
	case errors.Is(err, filemanager.ErrCorrupt):
		return fmt.Errorf("%w: %s", ErrStoreCorrupt, s.path)
	default:
		return err
	}
}

// load reads the snapshot for the read paths. An absent file is an empty
// store; a corrupt file is logged and degrades to an empty view so reads
// keep working while Check and the write paths surface the corruption.
func (s *Store) load(ctx context.Context) (*snapshot, error) {
	snap, err := s.fm.Read(ctx, s.path)
	switch {
	case err == nil:
		if snap.Bottles == nil {
			snap.Bottles = make(map[string]Bottle)
		}
		return snap, nil
	case os.IsNotExist(err):
		return &snapshot{Version: storeVersion, Bottles: make(map[string]Bottle)}, nil
	case errors.Is(err, filemanager.ErrCorrupt):
		s.log.Warn("bottle store snapshot is corrupt, treating as empty", "path", s.path, "error", err)
		return &snapshot{Version: storeVersion, Bottles: make(map[string]Bottle)}, nil
	default:
		return nil, err
	}
}
