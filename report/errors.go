package report

import "fmt"

// TextSpan represents a range or "span" of source text.  Text spans are
// inclusive on both sides: the starting position is the position of the first
// character in the span and the ending position is the position of the last
// character in the span.  The line and column numbers are zero-indexed.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.  Either span may be nil, in which case the other is
// returned.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	if start == nil {
		return end
	} else if end == nil {
		return start
	}

	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

func (ts *TextSpan) String() string {
	return fmt.Sprintf("%d:%d", ts.StartLine+1, ts.StartCol+1)
}

// -----------------------------------------------------------------------------

// ErrorKind identifies the compilation stage that rejected the program.
type ErrorKind int

// Enumeration of compile error kinds.
const (
	KindLex      ErrorKind = iota // Unrecognized character, keyword or unterminated string.
	KindParse                     // Malformed grammar.
	KindLowering                  // Unresolved callable, pattern mismatch, bad inline asm.
)

func (k ErrorKind) String() string {
	switch k {
	case KindLex:
		return "lex"
	case KindParse:
		return "parse"
	default:
		return "lowering"
	}
}

// CompileError is an error in the user's program detected by one of the stages
// of the compiler.  All compile errors are fatal to the current compilation.
type CompileError struct {
	// The stage that produced the error.
	Kind ErrorKind

	// The error message.
	Message string

	// The span over which the error occurs.  This may be nil if the error has
	// no meaningful source position (eg. a synthesized token).
	Span *TextSpan
}

func (ce *CompileError) Error() string {
	if ce.Span == nil {
		return fmt.Sprintf("%s error: %s", ce.Kind, ce.Message)
	}

	return fmt.Sprintf("%s: %s error: %s", ce.Span, ce.Kind, ce.Message)
}

// Raise creates a new compile error of the given kind.
func Raise(kind ErrorKind, span *TextSpan, msg string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span}
}
