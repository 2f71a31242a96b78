package wine

import (
	"bytes"
	"errors"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

const readChunkSize = 4096

// collector drains the child's stdout and stderr on independent goroutines
// into per-stream buffers. Each buffer has a single owner goroutine, so
// appends never race; the buffers are only handed back after both drains
// observed end-of-stream.
type collector struct {
	live     *LiveSink
	injector *injector

	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newCollector(live *LiveSink, inj *injector) *collector {
	return &collector{
		live:     live,
		injector: inj,
	}
}

// drain reads both pipes to end-of-stream and returns the accumulated
// buffers. Chunk order within one stream is preserved; no ordering holds
// between the two streams.
func (c *collector) drain(stdout, stderr io.Reader) ([]byte, []byte, error) {
	var g errgroup.Group

	g.Go(func() error {
		return c.drainStream(stdout, StreamStdout, &c.stdout)
	})
	g.Go(func() error {
		return c.drainStream(stderr, StreamStderr, &c.stderr)
	})

	err := g.Wait()
	return c.stdout.Bytes(), c.stderr.Bytes(), err
}

func (c *collector) drainStream(r io.Reader, stream Stream, buf *bytes.Buffer) error {
	chunk := make([]byte, readChunkSize)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			data := chunk[:n]
			buf.Write(data)
			c.injector.observe(stream, data)
			c.forward(stream, data)
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return err
		}
	}
}

// forward hands a chunk to the live sink. Chunks that do not decode as
// valid text are dropped from the callback but stay in the raw buffer.
func (c *collector) forward(stream Stream, data []byte) {
	if c.live == nil || !utf8.Valid(data) {
		return
	}
	switch stream {
	case StreamStdout:
		if c.live.OnStdout != nil {
			c.live.OnStdout(string(data))
		}
	case StreamStderr:
		if c.live.OnStderr != nil {
			c.live.OnStderr(string(data))
		}
	}
}
