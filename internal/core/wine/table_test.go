package wine

import (
	"fmt"
	"os/exec"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessTable_RegisterDeregister(t *testing.T) {
	table := NewProcessTable()

	cmd := exec.Command("/bin/sh", "-c", "true")
	table.Register("one", cmd)

	got, ok := table.Get("one")
	require.True(t, ok)
	assert.Same(t, cmd, got)
	assert.Equal(t, 1, table.Len())

	table.Deregister("one")
	_, ok = table.Get("one")
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())

	// Removing an absent identifier is a no-op.
	table.Deregister("one")
}

func TestProcessTable_DuplicateIdentifierOverwrites(t *testing.T) {
	table := NewProcessTable()

	first := exec.Command("/bin/sh", "-c", "true")
	second := exec.Command("/bin/sh", "-c", "false")

	table.Register("dup", first)
	table.Register("dup", second)

	got, ok := table.Get("dup")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, 1, table.Len())
}

func TestProcessTable_KillNotFound(t *testing.T) {
	table := NewProcessTable()
	assert.ErrorIs(t, table.Kill("ghost"), ErrProcessNotFound)
}

func TestProcessTable_List(t *testing.T) {
	table := NewProcessTable()

	cmd := exec.Command("/bin/sh", "-c", "sleep 5")
	require.NoError(t, cmd.Start())
	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	table.Register("running", cmd)
	table.Register("pending", exec.Command("/bin/sh", "-c", "true"))

	entries := table.List()
	require.Len(t, entries, 2)

	byID := map[string]Entry{}
	for _, e := range entries {
		byID[e.Identifier] = e
	}
	assert.Equal(t, cmd.Process.Pid, byID["running"].PID)
	assert.Equal(t, -1, byID["pending"].PID, "unstarted handle reports no pid")
}

func TestProcessTable_ConcurrentAccess(t *testing.T) {
	table := NewProcessTable()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("inv-%d", n)
			table.Register(id, exec.Command("/bin/sh", "-c", "true"))
			table.List()
			table.Deregister(id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, table.Len())
}
