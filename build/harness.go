package build

import (
	"brik/ir"
	"brik/platform"
	"brik/report"
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// OutputPaths are the files a build produces for a project.
type OutputPaths struct {
	Asm, Obj, Exe string
}

// PathsFor returns the output paths of a project under the output directory.
func PathsFor(opts *Options, plat *platform.Platform) OutputPaths {
	return OutputPaths{
		Asm: filepath.Join(opts.OutDir, "asm", opts.Name+".asm"),
		Obj: filepath.Join(opts.OutDir, "obj", opts.Name+".o"),
		Exe: filepath.Join(opts.OutDir, "out", opts.Name+plat.ExecutableExt()),
	}
}

// createOutputTree creates the output directory and its subdirectories.
func createOutputTree(outDir string) error {
	for _, sub := range []string{"asm", "obj", "out"} {
		if err := os.MkdirAll(filepath.Join(outDir, sub), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	return nil
}

// WriteAsm compiles a source file and writes its assembly text into the output
// tree.  It returns the output paths and the compilation result.
func (c *Compiler) WriteAsm(srcPath string) (OutputPaths, *Result, error) {
	paths := PathsFor(c.opts, c.plat)

	buff, err := ioutil.ReadFile(srcPath)
	if err != nil {
		return paths, nil, fmt.Errorf("failed to read source file: %w", err)
	}

	res, err := c.Compile(string(buff))
	if err != nil {
		report.ReportPhase("Compiling", false)
		return paths, nil, err
	}
	report.ReportPhase("Compiling", true)

	if err := createOutputTree(c.opts.OutDir); err != nil {
		return paths, nil, err
	}

	if err := writeOutputFile(paths.Asm, res.Asm); err != nil {
		return paths, nil, err
	}

	return paths, res, nil
}

// WriteLLVM compiles a source file with the LLVM backend and writes the IR text
// next to the assembly output.  It returns the path of the written file.
func (c *Compiler) WriteLLVM(srcPath string) (string, error) {
	llPath := filepath.Join(c.opts.OutDir, "asm", c.opts.Name+".ll")

	buff, err := ioutil.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("failed to read source file: %w", err)
	}

	text, err := c.CompileLLVM(string(buff))
	if err != nil {
		report.ReportPhase("Compiling", false)
		return "", err
	}
	report.ReportPhase("Compiling", true)

	if err := createOutputTree(c.opts.OutDir); err != nil {
		return "", err
	}

	if err := writeOutputFile(llPath, text); err != nil {
		return "", err
	}

	return llPath, nil
}

// Build compiles a source file into an executable: the assembly text is
// written to the output tree, assembled into an object file and linked.  It
// returns the path of the executable.
func (c *Compiler) Build(srcPath string) (string, error) {
	paths, _, err := c.WriteAsm(srcPath)
	if err != nil {
		return "", err
	}

	if err := c.assemble(paths); err != nil {
		report.ReportPhase("Assembling", false)
		return "", err
	}
	report.ReportPhase("Assembling", true)

	if err := c.link(paths); err != nil {
		report.ReportPhase("Linking", false)
		return "", err
	}
	report.ReportPhase("Linking", true)

	return paths.Exe, nil
}

// -----------------------------------------------------------------------------

// AssembleCommand returns the assembler invocation for the output paths.
func (c *Compiler) AssembleCommand(paths OutputPaths) *exec.Cmd {
	return exec.Command(c.opts.Assembler, "-f", c.plat.AssemblerFormat(), "-o", paths.Obj, paths.Asm)
}

// LinkCommand returns the linker invocation for the output paths.
func (c *Compiler) LinkCommand(paths OutputPaths) *exec.Cmd {
	linker := c.opts.EffectiveLinker()
	if c.plat.OS() == platform.OSWindows {
		return exec.Command(
			linker,
			"/SUBSYSTEM:CONSOLE",    // Set the executable to be a console app.
			"/ENTRY:"+ir.StartLabel, // Set the entry point.
			"/OUT:"+paths.Exe,
			paths.Obj,
		)
	}

	return exec.Command(linker, "-e", ir.StartLabel, "-o", paths.Exe, paths.Obj)
}

func (c *Compiler) assemble(paths OutputPaths) error {
	return c.runTool("assembler", c.AssembleCommand(paths))
}

func (c *Compiler) link(paths OutputPaths) error {
	return c.runTool("linker", c.LinkCommand(paths))
}

// runTool runs an external tool and converts its failure into an error carrying
// the tool's output.
func (c *Compiler) runTool(kind string, cmd *exec.Cmd) error {
	c.tracer.Phase("build").Tracef("running %s", strings.Join(cmd.Args, " "))

	outBuff := bytes.Buffer{}
	cmd.Stdout = &outBuff
	cmd.Stderr = &outBuff

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			// the tool ran but rejected its input
			return fmt.Errorf("%s error:\n%s", kind, strings.TrimSpace(outBuff.String()))
		}

		return fmt.Errorf("failed to run %s `%s`: %w", kind, cmd.Path, err)
	}

	return nil
}

// writeOutputFile writes an output file of the compiler.
func writeOutputFile(fpath, content string) error {
	file, err := os.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file `%s`: %w", fpath, err)
	}
	defer file.Close()

	if _, err = file.WriteString(content); err != nil {
		return fmt.Errorf("failed to write output to file `%s`: %w", fpath, err)
	}

	return nil
}
