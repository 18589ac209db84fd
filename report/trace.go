package report

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer writes the human-readable debug trace of a compilation: one line per
// event, tagged with the phase that produced it.  A nil Tracer discards
// everything, so stages can trace unconditionally.
type Tracer struct {
	out   io.Writer
	phase string

	// styled indicates whether phase tags are colored.
	styled bool
}

// NewTracer creates a tracer that writes plain lines to w.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{out: w}
}

// NewConsoleTracer creates a tracer writing colored lines to standard output.
func NewConsoleTracer() *Tracer {
	return &Tracer{out: os.Stdout, styled: true}
}

// Phase returns a tracer sharing this tracer's sink whose lines are tagged with
// the given phase name.
func (t *Tracer) Phase(phase string) *Tracer {
	if t == nil {
		return nil
	}

	return &Tracer{out: t.out, phase: phase, styled: t.styled}
}

// Enabled reports whether trace output is written anywhere.
func (t *Tracer) Enabled() bool {
	return t != nil && t.out != nil
}

// Tracef formats and writes a trace message.  Multi-line messages are written
// with each line tagged.
func (t *Tracer) Tracef(format string, args ...interface{}) {
	if !t.Enabled() {
		return
	}

	tag := "[" + t.phase + "] "
	if t.styled {
		tag = TraceColorFG.Sprint(tag)
	}

	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	for _, line := range strings.Split(msg, "\n") {
		fmt.Fprint(t.out, tag, line, "\n")
	}
}
