package report

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestNewSpanOver(t *testing.T) {
	start := &TextSpan{StartLine: 0, StartCol: 2, EndLine: 0, EndCol: 4}
	end := &TextSpan{StartLine: 3, StartCol: 0, EndLine: 3, EndCol: 7}

	span := NewSpanOver(start, end)
	want := TextSpan{StartLine: 0, StartCol: 2, EndLine: 3, EndCol: 7}
	if *span != want {
		t.Errorf("NewSpanOver() = %+v; want %+v", *span, want)
	}

	if NewSpanOver(nil, end) != end {
		t.Errorf("NewSpanOver(nil, end) should return end")
	}

	if NewSpanOver(start, nil) != start {
		t.Errorf("NewSpanOver(start, nil) should return start")
	}
}

func TestRaise(t *testing.T) {
	span := &TextSpan{StartLine: 1, StartCol: 4, EndLine: 1, EndCol: 8}
	err := Raise(KindLowering, span, "undefined callable `%s`", "print")

	if err.Kind != KindLowering {
		t.Errorf("Kind = %s; want lowering", err.Kind)
	}

	if want := "2:5: lowering error: undefined callable `print`"; err.Error() != want {
		t.Errorf("Error() = %q; want %q", err.Error(), want)
	}

	noSpan := Raise(KindParse, nil, "unexpected end of input")
	if want := "parse error: unexpected end of input"; noSpan.Error() != want {
		t.Errorf("Error() = %q; want %q", noSpan.Error(), want)
	}

	// compile errors survive wrapping
	var cerr *CompileError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &cerr) || cerr != err {
		t.Errorf("errors.As failed to recover the compile error")
	}
}

func TestTracer(t *testing.T) {
	var nilTracer *Tracer
	if nilTracer.Phase("parse").Enabled() {
		t.Errorf("nil tracer should be disabled")
	}

	// must not panic
	nilTracer.Phase("parse").Tracef("%d", 1)

	buff := &bytes.Buffer{}
	tr := NewTracer(buff)
	tr.Phase("tokenize").Tracef("a\nb\n")

	if want := "[tokenize] a\n[tokenize] b\n"; buff.String() != want {
		t.Errorf("trace = %q; want %q", buff.String(), want)
	}
}

func TestLogLevelFromName(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"silent", LogLevelSilent},
		{"error", LogLevelError},
		{"warn", LogLevelWarn},
		{"verbose", LogLevelVerbose},
		{"bogus", LogLevelVerbose},
	}

	for _, tc := range tests {
		if got := LogLevelFromName(tc.name); got != tc.want {
			t.Errorf("LogLevelFromName(%q) = %d; want %d", tc.name, got, tc.want)
		}
	}
}

func TestReporterCountsErrors(t *testing.T) {
	buff := &bytes.Buffer{}
	SetOutput(buff)
	InitReporter(LogLevelSilent)

	if AnyErrors() {
		t.Fatalf("fresh reporter should have no errors")
	}

	ReportStdError("build", errors.New("boom"))
	if !AnyErrors() {
		t.Errorf("reported error was not counted")
	}

	if buff.Len() != 0 {
		t.Errorf("silent reporter wrote output: %q", buff.String())
	}

	InitReporter(LogLevelVerbose)
	if AnyErrors() {
		t.Errorf("InitReporter should reset the error count")
	}
}
