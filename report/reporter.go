package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during compilation.  The reporter respects the set log
// level and is synchronized: its methods can be safely called from multiple
// goroutines.
type Reporter struct {
	// The mutex used to synchonize different report calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// Where messages are written.
	out io.Writer

	// The number of errors reported so far.
	errorCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// logLevelNames maps command-line log level names to log levels.
var logLevelNames = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarn,
	"verbose": LogLevelVerbose,
}

// LogLevelFromName converts a log level name into a log level.  Unknown names
// default to verbose.
func LogLevelFromName(name string) int {
	if level, ok := logLevelNames[name]; ok {
		return level
	}

	return LogLevelVerbose
}

// rep is the global reporter instance.
var rep = &Reporter{m: &sync.Mutex{}, logLevel: LogLevelVerbose, out: os.Stdout}

// InitReporter initializes the global reporter to the given log level.
func InitReporter(logLevel int) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.logLevel = logLevel
	rep.errorCount = 0
}

// SetOutput redirects all reporter output to w.
func SetOutput(w io.Writer) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.out = w
}

// AnyErrors returns whether or not any errors were reported.
func AnyErrors() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount > 0
}

// -----------------------------------------------------------------------------

// ReportCompileError reports an error produced by compiling the source text
// at reprPath.  Compile errors are displayed with a source snippet; any other
// error is displayed as a standard error.
func ReportCompileError(reprPath, source string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++
	if rep.logLevel == LogLevelSilent {
		return
	}

	var cerr *CompileError
	if errors.As(err, &cerr) {
		displayCompileError(rep.out, reprPath, source, cerr)
	} else {
		displayStdError(rep.out, reprPath, err)
	}
}

// ReportStdError reports a non-compilation error (I/O, external tools).
func ReportStdError(tag string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++
	if rep.logLevel > LogLevelSilent {
		displayStdError(rep.out, tag, err)
	}
}

// ReportFatal reports a fatal error and exits the program.  These are expected
// errors that generally result from invalid configuration: bad arguments, a
// missing assembler, etc.
func ReportFatal(message string, args ...interface{}) {
	rep.m.Lock()
	if rep.logLevel > LogLevelSilent {
		displayFatal(rep.out, fmt.Sprintf(message, args...))
	}
	rep.m.Unlock()

	os.Exit(1)
}

// ReportInfo displays an informational message in verbose mode.
func ReportInfo(tag, message string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayInfo(rep.out, tag, message)
	}
}

// ReportWarning displays a warning if warnings are enabled.
func ReportWarning(tag, message string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel >= LogLevelWarn {
		displayWarning(rep.out, tag, message)
	}
}

// ReportCompileHeader reports the pre-compilation header: the compiler version
// and selected target.
func ReportCompileHeader(version, target string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayCompileHeader(rep.out, version, target)
	}
}

// ReportPhase reports the completion of a named build phase.
func ReportPhase(phase string, success bool) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayPhase(rep.out, phase, success)
	}
}

// ReportCompilationFinished reports the concluding message for compilation.
func ReportCompilationFinished(outputPath string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayCompilationFinished(rep.out, rep.errorCount == 0, outputPath)
	}
}
