// Package wine supervises invocations of the wine binary against bottle
// prefixes: it composes the child environment, drains stdout and stderr
// concurrently, optionally injects stdin on a trigger match, and tracks
// every in-flight child in a process table.
package wine

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"github.com/csabika98/Mythic/internal/core/logger"
)

// Runtime invokes the wine binary. Construct one at startup and share it;
// it owns the process table for all invocations it runs.
type Runtime struct {
	binary string
	table  *ProcessTable
	log    logger.Logger
}

// New creates a Runtime for the given wine binary path
func New(binary string, table *ProcessTable, log logger.Logger) *Runtime {
	if log == nil {
		log = logger.Nop()
	}
	return &Runtime{
		binary: binary,
		table:  table,
		log:    log,
	}
}

// Binary returns the configured wine binary path
func (r *Runtime) Binary() string {
	return r.binary
}

// Table returns the process table tracking in-flight invocations
func (r *Runtime) Table() *ProcessTable {
	return r.table
}

// Installed reports whether the wine binary resolves to an executable file
func (r *Runtime) Installed() bool {
	if r.binary == "" {
		return false
	}
	if !strings.ContainsRune(r.binary, os.PathSeparator) {
		_, err := exec.LookPath(r.binary)
		return err == nil
	}
	info, err := os.Stat(r.binary)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}

// Validate checks that the runtime is usable
func (r *Runtime) Validate() error {
	if !r.Installed() {
		return fmt.Errorf("%w: %s", ErrRuntimeNotInstalled, r.binary)
	}
	return nil
}

// Version reports the wine version string, e.g. "wine-9.0"
func (r *Runtime) Version(ctx context.Context) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	out, err := exec.CommandContext(ctx, r.binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to query wine version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Execute runs one wine invocation against a prefix and returns the
// accumulated stdout and stderr bytes once both streams reached
// end-of-stream and the child exited.
//
// Preconditions are checked before any child is spawned and fail fast
// with ErrRuntimeNotInstalled, ErrPrefixNotFound or ErrPrefixNotWritable.
// A spawn that fails after the checks surfaces ErrSpawnFailed. A child
// that exits nonzero returns the collected buffers together with the wait
// error. There is no implicit timeout: cancel ctx or kill the table entry
// to unblock a hung child.
func (r *Runtime) Execute(ctx context.Context, c Command) (stdoutBytes, stderrBytes []byte, err error) {
	if !r.Installed() {
		return nil, nil, fmt.Errorf("%w: %s", ErrRuntimeNotInstalled, r.binary)
	}
	info, statErr := os.Stat(c.Prefix)
	if statErr != nil || !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrPrefixNotFound, c.Prefix)
	}
	if accessErr := unix.Access(c.Prefix, unix.W_OK); accessErr != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrPrefixNotWritable, c.Prefix)
	}

	identifier := c.Identifier
	if identifier == "" {
		identifier = uuid.New().String()
	}

	cmd := exec.CommandContext(ctx, r.binary, c.Args...)
	cmd.Env = composeEnv(c.Prefix, c.Env)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create stdin pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}

	r.table.Register(identifier, cmd)
	// The entry must never outlive the invocation, whatever the exit path.
	defer r.table.Deregister(identifier)

	r.log.Debug("wine process started",
		"identifier", identifier,
		"pid", cmd.Process.Pid,
		"prefix", c.Prefix,
		"args", strings.Join(c.Args, " "),
	)

	inj := newInjector(stdin, c.Input, c.Trigger)
	inj.start()

	coll := newCollector(c.Live, inj)
	outBuf, errBuf, drainErr := coll.drain(stdout, stderr)

	// Both drains joined: close stdin if the trigger never fired.
	inj.finish()

	waitErr := cmd.Wait()

	// The delivery goroutine unblocks once the child is gone; join it so
	// no write outlives the invocation.
	inj.wait()

	if drainErr != nil {
		return outBuf, errBuf, fmt.Errorf("failed to drain output: %w", drainErr)
	}
	if waitErr != nil {
		return outBuf, errBuf, fmt.Errorf("wine process failed: %w", waitErr)
	}

	r.log.Debug("wine process finished",
		"identifier", identifier,
		"stdout_bytes", len(outBuf),
		"stderr_bytes", len(errBuf),
	)
	return outBuf, errBuf, nil
}
