package cmd

import (
	"brik/build"
	"brik/common"
	"brik/platform"
	"brik/report"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/ComedicChimera/olive"
)

// Execute is the main entry point for the `brik` CLI utility
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("brik", "brik is a compiler for the Brik language", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	// the compiling subcommands all take the same arguments
	for _, sub := range compileCommands {
		subCmd := cli.AddSubcommand(sub.name, sub.desc, true)
		subCmd.AddPrimaryArg("source", "the path to the source file to compile", true)
		subCmd.AddSelectorArg("target", "t", "the compilation target", false, platform.TargetNames())
		subCmd.AddStringArg("out", "o", "the output directory", false)
		subCmd.AddFlag("debug", "d", "print the compilation trace")
	}

	initCmd := cli.AddSubcommand("init", "create a project file in the current directory", true)
	initCmd.AddPrimaryArg("name", "the name of the project", true)

	cli.AddSubcommand("version", "print the Brik version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal(err.Error())
	}

	loglevel := result.Arguments["loglevel"].(string)

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build", "asm", "llvm":
		execCompileCommand(subcmdName, subResult, loglevel)
	case "init":
		execInitCommand(subResult, loglevel)
	case "version":
		report.ReportInfo("Brik Version", common.BrikVersion)
	}

	if report.AnyErrors() {
		os.Exit(1)
	}
}

// compileCommands lists the subcommands which compile a source file.
var compileCommands = []struct {
	name, desc string
}{
	{"build", "compile a source file into an executable"},
	{"asm", "compile a source file into assembly"},
	{"llvm", "compile a source file into LLVM IR (experimental)"},
}

// execCompileCommand executes a compiling subcommand and handles all errors.
func execCompileCommand(kind string, result *olive.ArgParseResult, loglevel string) {
	report.InitReporter(report.LogLevelFromName(loglevel))

	// get the primary argument: the source path
	srcPath, _ := result.PrimaryArg()

	opts, err := loadOptions(srcPath, result)
	if err != nil {
		report.ReportStdError(common.ConfigFileName, err)
		return
	}

	c, err := build.NewCompiler(opts, nil)
	if err != nil {
		report.ReportStdError("target", err)
		return
	}

	report.ReportCompileHeader(common.BrikVersion, opts.Target.String())

	var outputPath string
	switch kind {
	case "build":
		outputPath, err = c.Build(srcPath)
	case "asm":
		var paths build.OutputPaths
		paths, _, err = c.WriteAsm(srcPath)
		outputPath = paths.Asm
	case "llvm":
		outputPath, err = c.WriteLLVM(srcPath)
	}

	if err != nil {
		reportBuildError(srcPath, err)
	}

	report.ReportCompilationFinished(outputPath)
}

// execInitCommand executes the `init` subcommand.
func execInitCommand(result *olive.ArgParseResult, loglevel string) {
	report.InitReporter(report.LogLevelFromName(loglevel))

	name, _ := result.PrimaryArg()

	cwd, err := os.Getwd()
	if err != nil {
		report.ReportFatal("unable to get working directory: %s", err.Error())
	}

	if err := build.InitConfig(cwd, name); err != nil {
		report.ReportStdError("init", err)
		return
	}

	report.ReportInfo("Created", filepath.Join(cwd, common.ConfigFileName))
}

// -----------------------------------------------------------------------------

// loadOptions builds the options of a compilation: the defaults for the
// source file, then the project file beside it, then the command line.
func loadOptions(srcPath string, result *olive.ArgParseResult) (*build.Options, error) {
	name := strings.TrimSuffix(filepath.Base(srcPath), common.SrcFileExt)
	opts := build.DefaultOptions(name)

	if _, err := build.LoadConfig(filepath.Dir(srcPath), opts); err != nil {
		return nil, err
	}

	if targetArg, ok := result.Arguments["target"]; ok {
		target, err := platform.ParseTarget(targetArg.(string))
		if err != nil {
			return nil, err
		}

		opts.Target = target
	}

	if outArg, ok := result.Arguments["out"]; ok {
		opts.OutDir = outArg.(string)
	}

	if result.HasFlag("debug") {
		opts.Debug = true
	}

	return opts, nil
}

// reportBuildError reports an error produced while building the source file at
// srcPath.  Compile errors are shown against the source text.
func reportBuildError(srcPath string, err error) {
	var cerr *report.CompileError
	if !errors.As(err, &cerr) {
		report.ReportStdError("build", err)
		return
	}

	buff, rerr := ioutil.ReadFile(srcPath)
	if rerr != nil {
		report.ReportStdError("build", err)
		return
	}

	report.ReportCompileError(srcPath, string(buff), err)
}
