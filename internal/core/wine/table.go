package wine

import (
	"os/exec"
	"sync"
)

// Entry describes one in-flight invocation for table listings.
type Entry struct {
	Identifier string `json:"identifier"`
	PID        int    `json:"pid"`
}

// ProcessTable tracks the live child processes of in-flight invocations,
// keyed by invocation identifier. It exists so external collaborators can
// enumerate or terminate running commands; the supervisor guarantees that
// an entry never outlives its invocation.
//
// The table is explicitly owned: construct one at startup and hand it to
// the Runtime. All access is guarded by a single mutex.
type ProcessTable struct {
	mu    sync.Mutex
	procs map[string]*exec.Cmd
}

// NewProcessTable creates an empty process table
func NewProcessTable() *ProcessTable {
	return &ProcessTable{
		procs: make(map[string]*exec.Cmd),
	}
}

// Register records the handle for an invocation. A duplicate identifier
// overwrites the previous entry; the supervisor makes no uniqueness
// guarantee across concurrent callers using the same tag.
func (t *ProcessTable) Register(identifier string, cmd *exec.Cmd) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.procs[identifier] = cmd
}

// Deregister removes the entry for an invocation. Removing an absent
// identifier is a no-op.
func (t *ProcessTable) Deregister(identifier string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.procs, identifier)
}

// Get returns the handle registered under identifier
func (t *ProcessTable) Get(identifier string) (*exec.Cmd, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cmd, ok := t.procs[identifier]
	return cmd, ok
}

// List returns a snapshot of the in-flight invocations. No ordering
// guarantee exists across entries.
func (t *ProcessTable) List() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := make([]Entry, 0, len(t.procs))
	for id, cmd := range t.procs {
		e := Entry{Identifier: id, PID: -1}
		if cmd.Process != nil {
			e.PID = cmd.Process.Pid
		}
		entries = append(entries, e)
	}
	return entries
}

// Kill forcefully terminates the invocation registered under identifier.
// Killing the child closes its pipes, which unblocks the drain loops of
// the owning invocation.
func (t *ProcessTable) Kill(identifier string) error {
	t.mu.Lock()
	cmd, ok := t.procs[identifier]
	t.mu.Unlock()

	if !ok || cmd.Process == nil {
		return ErrProcessNotFound
	}
	return cmd.Process.Kill()
}

// Len returns the number of in-flight invocations
func (t *ProcessTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.procs)
}
