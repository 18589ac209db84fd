package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightCyan
	InfoStyleBG    = pterm.NewStyle(pterm.BgLightCyan, pterm.FgBlack)
	TraceColorFG   = pterm.FgGray
)

// displayFatal displays a fatal error message.
func displayFatal(out io.Writer, message string) {
	fmt.Fprint(out, ErrorStyleBG.Sprint("fatal error"), " ", message, "\n\n")
}

// displayStdError displays a standard Go error.
func displayStdError(out io.Writer, reprPath string, err error) {
	fmt.Fprintf(out, "%s: %s %s\n\n", reprPath, ErrorColorFG.Sprint("error:"), err)
}

// displayInfo displays a tagged informational message.
func displayInfo(out io.Writer, tag, message string) {
	fmt.Fprint(out, InfoStyleBG.Sprint(tag), " ", InfoColorFG.Sprint(message), "\n")
}

// displayWarning displays a tagged warning message.
func displayWarning(out io.Writer, tag, message string) {
	fmt.Fprint(out, WarnStyleBG.Sprint(tag), " ", WarnColorFG.Sprint(message), "\n")
}

// displayCompileError displays a compilation error.  If the error has a span,
// the offending source text is displayed beneath the message.
func displayCompileError(out io.Writer, reprPath, source string, cerr *CompileError) {
	label := ErrorColorFG.Sprint(cerr.Kind.String() + " error:")

	if cerr.Span == nil {
		fmt.Fprintf(out, "%s: %s %s\n\n", reprPath, label, cerr.Message)
	} else {
		fmt.Fprintf(out, "%s:%s: %s %s\n\n", reprPath, cerr.Span, label, cerr.Message)
		displaySourceText(out, source, cerr.Span)
	}
}

// displaySourceText displays a segment of source text defined by a text span.
func displaySourceText(out io.Writer, source string, span *TextSpan) {
	// Collect all the source lines containing the given source text.
	var lines []string
	for ln, line := range strings.Split(source, "\n") {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(strings.TrimRight(line, "\r"), "\t", "    "))
		}
	}

	if len(lines) == 0 {
		return
	}

	// Calculate the minimum line indentation.
	minIndent := math.MaxInt32
	for _, line := range lines {
		lineIndent := len(line) - len(strings.TrimLeft(line, " "))
		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Fprint(out, InfoColorFG.Sprintf(lineNumFmtStr, i+span.StartLine+1))
		fmt.Fprintln(out, line[minIndent:])

		fmt.Fprint(out, strings.Repeat(" ", maxLineNumLen), " | ")

		// Underlining starts at the start column on the first line and
		// continues from the line start on every following line.
		carretPrefixCount := 0
		if i == 0 {
			carretPrefixCount = span.StartCol - minIndent
		}

		// The last line stops underlining after the end column.
		carretSuffixCount := 0
		if i == len(lines)-1 {
			carretSuffixCount = len(line) - span.EndCol - 1
		}

		carretCount := len(line) - carretSuffixCount - carretPrefixCount - minIndent
		if carretPrefixCount < 0 {
			carretPrefixCount = 0
		}
		if carretCount < 1 {
			carretCount = 1
		}

		fmt.Fprint(out, strings.Repeat(" ", carretPrefixCount))
		fmt.Fprintln(out, ErrorColorFG.Sprint(strings.Repeat("^", carretCount)))
	}

	fmt.Fprintln(out)
}

// -----------------------------------------------------------------------------

// displayCompileHeader displays the compiler information before compilation.
func displayCompileHeader(out io.Writer, version, target string) {
	fmt.Fprint(out, "brik ", InfoColorFG.Sprint("v"+version), " -- target: ", InfoColorFG.Sprint(target), "\n")
}

// maxPhaseLength is the length of the longest phase name.
const maxPhaseLength = len("Assembling")

// displayPhase displays the outcome of a build phase.
func displayPhase(out io.Writer, phase string, success bool) {
	padding := strings.Repeat(" ", maxPhaseLength-len(phase)+2)

	if success {
		fmt.Fprint(out, SuccessStyleBG.Sprint("Done"), " ", phase, padding, "\n")
	} else {
		fmt.Fprint(out, ErrorStyleBG.Sprint("Fail"), " ", phase, padding, "\n")
	}
}

// displayCompilationFinished displays a compilation finished message.
func displayCompilationFinished(out io.Writer, success bool, outputPath string) {
	fmt.Fprintln(out)

	if success {
		fmt.Fprint(out, SuccessColorFG.Sprint("All done! "))
		if outputPath != "" {
			fmt.Fprint(out, "output written to ", InfoColorFG.Sprint(outputPath))
		}
	} else {
		fmt.Fprint(out, ErrorColorFG.Sprint("Oh no! "), "compilation failed")
	}

	fmt.Fprintln(out)
}
