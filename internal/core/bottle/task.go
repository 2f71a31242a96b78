package bottle

import (
	"context"
	"sync"
)

// BootResult is the discriminated outcome of a boot: the booted bottle on
// success, a typed error otherwise.
type BootResult struct {
	Bottle Bottle
	Err    error
}

// BootTask is a single-shot future for an in-flight boot. It completes
// exactly once, whatever the outcome; waiters observe the same result.
type BootTask struct {
	done   chan struct{}
	once   sync.Once
	result BootResult
}

func newBootTask() *BootTask {
	return &BootTask{
		done: make(chan struct{}),
	}
}

// complete resolves the task. Later calls are ignored.
func (t *BootTask) complete(result BootResult) {
	t.once.Do(func() {
		t.result = result
		close(t.done)
	})
}

// Done returns a channel closed when the boot has finished
func (t *BootTask) Done() <-chan struct{} {
	return t.done
}

// Result waits for the boot to finish and returns its outcome. A ctx
// cancellation abandons the wait, not the boot itself; cancel the context
// passed to Boot to stop the underlying process.
func (t *BootTask) Result(ctx context.Context) (Bottle, error) {
	select {
	case <-ctx.Done():
		return Bottle{}, ctx.Err()
	case <-t.done:
		return t.result.Bottle, t.result.Err
	}
}
