// Package progress prints batch progress without clogging up logs with
// escape codes. On a plain pipe it prints a count every tenth item; on a
// terminal it rewrites one line in place.
package progress

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Interval is how many items pass between log-friendly status updates.
const Interval = 10

// Counter tracks items processed in one batch. Not safe for concurrent
// use; collectors tick it from a single goroutine.
type Counter struct {
	w      io.Writer
	inline bool
	n      int
}

// NewCounter creates a counter writing to stderr. Inline rewriting is used
// only when stderr is a terminal.
func NewCounter() *Counter {
	return &Counter{
		w:      os.Stderr,
		inline: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// NewCounterWriter creates a counter with an explicit writer and mode.
// Used in tests and when the caller already knows the output kind.
func NewCounterWriter(w io.Writer, inline bool) *Counter {
	return &Counter{w: w, inline: inline}
}

// Tick records one processed item and maybe prints a status update.
func (c *Counter) Tick() {
	c.n++
	if c.inline {
		fmt.Fprintf(c.w, "\r%d", c.n)
		return
	}
	if c.n%Interval == 0 {
		fmt.Fprintf(c.w, "%d....", c.n)
	}
}

// Count returns the number of items ticked so far.
func (c *Counter) Count() int {
	return c.n
}

// Done finishes the batch line.
func (c *Counter) Done() {
	if c.inline {
		fmt.Fprintf(c.w, "\r%d done.\n", c.n)
		return
	}
	fmt.Fprintln(c.w, "done.")
}
