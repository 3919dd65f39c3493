// Package lineio provides the command loop's line source: a thin
// bufio.Scanner wrapper with a hook invoked immediately before every
// blocking read.
package lineio

import (
	"bufio"
	"io"
)

// Source reads one command line at a time from an underlying reader
// (stdin or a script file), invoking PreBlock immediately before each
// underlying Scan call — the supervisor's reap/retention/scan cycle
// hangs off this hook instead of a separate poller goroutine, the way
// processmgr.process drains its pipes inline rather than polling them.
type Source struct {
	sc       *bufio.Scanner
	PreBlock func()
}

// New wraps r. bufSize/maxSize mirror the teacher's scanner buffer
// sizing (processmgr.process.handleStdout); a command line is never
// remotely as large as a log line, but the same headroom costs
// nothing.
func New(r io.Reader) *Source {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 4096), 64*1024)
	return &Source{sc: sc}
}

// Next blocks for the next line, invoking PreBlock immediately before
// the underlying read. ok is false on EOF or scanner error, at which
// point the caller's loop exits cleanly.
func (s *Source) Next() (line string, ok bool) {
	if s.PreBlock != nil {
		s.PreBlock()
	}
	if !s.sc.Scan() {
		return "", false
	}
	return s.sc.Text(), true
}

// Err reports the underlying scanner's terminal error, if any (nil on
// plain EOF).
func (s *Source) Err() error {
	return s.sc.Err()
}
