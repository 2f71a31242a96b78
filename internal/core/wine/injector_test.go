package wine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recordingStdin captures writes and close calls for injector tests.
// Reads are only safe after injector.wait().
type recordingStdin struct {
	written []byte
	closed  int
}

func (r *recordingStdin) Write(p []byte) (int, error) {
	r.written = append(r.written, p...)
	return len(p), nil
}

func (r *recordingStdin) Close() error {
	r.closed++
	return nil
}

// gatedStdin blocks every write until the gate is opened, standing in for
// a full pipe.
type gatedStdin struct {
	gate   chan struct{}
	closed chan struct{}
}

func newGatedStdin() *gatedStdin {
	return &gatedStdin{
		gate:   make(chan struct{}),
		closed: make(chan struct{}),
	}
}

func (g *gatedStdin) Write(p []byte) (int, error) {
	<-g.gate
	return len(p), nil
}

func (g *gatedStdin) Close() error {
	close(g.closed)
	return nil
}

func TestInjector_FiresOnMatch(t *testing.T) {
	stdin := &recordingStdin{}
	inj := newInjector(stdin, "secret\n", &Trigger{Stream: StreamStdout, Substring: "login:"})

	inj.observe(StreamStdout, []byte("please login:\n"))
	inj.wait()

	assert.Equal(t, "secret\n", string(stdin.written))
	assert.Equal(t, 1, stdin.closed)
}

func TestInjector_FiresAtMostOnce(t *testing.T) {
	stdin := &recordingStdin{}
	inj := newInjector(stdin, "secret\n", &Trigger{Stream: StreamStdout, Substring: "login:"})

	inj.observe(StreamStdout, []byte("login: first\n"))
	inj.observe(StreamStdout, []byte("login: again\n"))
	inj.finish()
	inj.wait()

	assert.Equal(t, "secret\n", string(stdin.written))
	assert.Equal(t, 1, stdin.closed)
}

func TestInjector_MatchSpansChunks(t *testing.T) {
	stdin := &recordingStdin{}
	inj := newInjector(stdin, "secret\n", &Trigger{Stream: StreamStdout, Substring: "login:"})

	// The substring is split across three reads.
	inj.observe(StreamStdout, []byte("please lo"))
	assert.Empty(t, stdin.written)
	inj.observe(StreamStdout, []byte("gi"))
	assert.Empty(t, stdin.written)
	inj.observe(StreamStdout, []byte("n: now\n"))
	inj.wait()

	assert.Equal(t, "secret\n", string(stdin.written))
}

func TestInjector_IgnoresOtherStream(t *testing.T) {
	stdin := &recordingStdin{}
	inj := newInjector(stdin, "secret\n", &Trigger{Stream: StreamStderr, Substring: "login:"})

	inj.observe(StreamStdout, []byte("login:\n"))
	assert.Empty(t, stdin.written)

	inj.observe(StreamStderr, []byte("login:\n"))
	inj.wait()
	assert.Equal(t, "secret\n", string(stdin.written))
}

func TestInjector_NoMatchClosesWithoutWrite(t *testing.T) {
	stdin := &recordingStdin{}
	inj := newInjector(stdin, "secret\n", &Trigger{Stream: StreamStdout, Substring: "login:"})

	inj.observe(StreamStdout, []byte("nothing interesting\n"))
	inj.finish()
	inj.wait()

	assert.Empty(t, stdin.written)
	assert.Equal(t, 1, stdin.closed)
}

func TestInjector_ImmediateInput(t *testing.T) {
	stdin := &recordingStdin{}
	inj := newInjector(stdin, "upfront\n", nil)

	inj.start()
	inj.wait()

	assert.Equal(t, "upfront\n", string(stdin.written))
	assert.Equal(t, 1, stdin.closed)
}

func TestInjector_NoInputNoTrigger(t *testing.T) {
	stdin := &recordingStdin{}
	inj := newInjector(stdin, "", nil)

	inj.start()
	inj.wait()

	assert.Empty(t, stdin.written)
	assert.Equal(t, 1, stdin.closed, "child must see empty input immediately")
}

func TestInjector_DeliveryDoesNotBlockObserver(t *testing.T) {
	stdin := newGatedStdin()
	inj := newInjector(stdin, "big payload", &Trigger{Stream: StreamStdout, Substring: "go"})

	// The write blocks on the gate, but observe must return so the drain
	// loop keeps consuming output.
	returned := make(chan struct{})
	go func() {
		inj.observe(StreamStdout, []byte("go\n"))
		inj.observe(StreamStdout, []byte("more output while stdin is full\n"))
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(5 * time.Second):
		t.Fatal("observe blocked on a stalled stdin write")
	}

	close(stdin.gate)
	inj.wait()

	select {
	case <-stdin.closed:
	case <-time.After(5 * time.Second):
		t.Fatal("stdin never closed after delivery")
	}
}

func TestInjector_StartDoesNotBlockCaller(t *testing.T) {
	stdin := newGatedStdin()
	inj := newInjector(stdin, "big payload", nil)

	returned := make(chan struct{})
	go func() {
		inj.start()
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(5 * time.Second):
		t.Fatal("start blocked on a stalled stdin write")
	}

	close(stdin.gate)
	inj.wait()
}
