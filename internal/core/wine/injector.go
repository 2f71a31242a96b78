package wine

import (
	"bytes"
	"io"
	"sync"
)

// injector owns the child's stdin write side for one invocation. It either
// writes the prepared input immediately (no trigger), or watches one stream
// for a trigger substring and writes on first match. Whatever happens, the
// write side is closed exactly once and the input is written at most once.
//
// The write runs on a dedicated goroutine. An input larger than the pipe
// buffer would otherwise block whoever performs it (the Execute goroutine
// on the immediate path, the watched stream's drain goroutine on a trigger
// match) against a child that is itself blocked writing output, and the
// invocation would deadlock before the collector ever catches up.
type injector struct {
	stdin   io.WriteCloser
	input   string
	trigger *Trigger

	once sync.Once
	// done is closed once the write side has been handled: input written
	// (or skipped) and stdin closed.
	done chan struct{}
	// tail holds the last len(trigger.Substring)-1 bytes of the watched
	// stream so a match spanning two read chunks is still detected.
	tail []byte
}

func newInjector(stdin io.WriteCloser, input string, trigger *Trigger) *injector {
	return &injector{
		stdin:   stdin,
		input:   input,
		trigger: trigger,
		done:    make(chan struct{}),
	}
}

// fire hands the write side to the delivery goroutine, at most once.
// withInput distinguishes a real injection from a close-only handoff.
func (i *injector) fire(withInput bool) {
	i.once.Do(func() {
		go func() {
			defer close(i.done)
			if withInput && i.input != "" {
				// Best effort: a child that exited without reading
				// surfaces EPIPE here, which the wait error already
				// reports more usefully.
				_, _ = io.WriteString(i.stdin, i.input)
			}
			_ = i.stdin.Close()
		}()
	})
}

// start handles the unconditional case: input without a trigger begins
// delivery right away, and with nothing to write the child sees empty
// input.
func (i *injector) start() {
	if i.trigger == nil {
		i.fire(true)
	}
}

// observe inspects a chunk arriving on stream. Called only from the drain
// goroutine of the watched stream, so tail needs no locking.
func (i *injector) observe(stream Stream, chunk []byte) {
	if i.trigger == nil || stream != i.trigger.Stream || i.trigger.Substring == "" {
		return
	}

	window := make([]byte, 0, len(i.tail)+len(chunk))
	window = append(window, i.tail...)
	window = append(window, chunk...)

	if bytes.Contains(window, []byte(i.trigger.Substring)) {
		i.fire(true)
		return
	}

	keep := len(i.trigger.Substring) - 1
	if keep > len(window) {
		keep = len(window)
	}
	i.tail = append(i.tail[:0], window[len(window)-keep:]...)
}

// finish closes stdin if the trigger never fired, so a child still reading
// input observes end-of-stream. Called after both drains have joined.
func (i *injector) finish() {
	i.fire(false)
}

// wait blocks until the delivery goroutine is finished. Safe to call once
// the child exited: a blocked write breaks with EPIPE at that point.
func (i *injector) wait() {
	<-i.done
}
