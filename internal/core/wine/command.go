package wine

// Stream selects one of the child's output streams.
type Stream string

// Output stream selectors
const (
	StreamStdout Stream = "stdout"
	StreamStderr Stream = "stderr"
)

// Trigger gates a single deferred stdin write: when Substring is observed
// in the selected stream's output, the command's Input is written to the
// child's stdin and the write side is closed. The match is performed on a
// rolling window over arriving chunks, so a substring split across two
// reads still fires.
type Trigger struct {
	Stream    Stream
	Substring string
}

// LiveSink receives output chunks as they arrive, decoded as text, in
// addition to the accumulated buffers returned by Execute. Callbacks are
// invoked synchronously from the drain goroutine of the corresponding
// stream; chunks that are not valid UTF-8 are skipped here but retained
// in the raw buffers.
type LiveSink struct {
	OnStdout func(string)
	OnStderr func(string)
}

// Command describes one invocation of the wine binary against a prefix.
// It is an ephemeral unit of work: constructed by the caller, executed
// once, discarded.
type Command struct {
	// Args is the argument vector passed verbatim to the wine binary.
	Args []string

	// Identifier tags the invocation in the process table. When empty a
	// random identifier is generated. Identifiers are not required to be
	// unique; a duplicate overwrites the previous table entry.
	Identifier string

	// Prefix is the bottle root directory. It is pinned into the child's
	// environment as WINEPREFIX and must exist as a writable directory.
	Prefix string

	// Env holds caller-supplied environment overrides. They are applied
	// after the base environment and the prefix pin, so an override wins
	// on key collision.
	Env map[string]string

	// Input is an optional string for the child's stdin. Without a
	// Trigger it is written immediately; with one, it is written on the
	// first trigger match. Stdin is closed after the write either way.
	Input string

	// Trigger optionally defers the Input write until a substring shows
	// up on the selected stream.
	Trigger *Trigger

	// Live optionally receives output chunks as they arrive.
	Live *LiveSink
}
