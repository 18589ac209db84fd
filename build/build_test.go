package build

import (
	"brik/common"
	"brik/platform"
	"brik/report"
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func newCompiler(t *testing.T, opts *Options, tracer *report.Tracer) *Compiler {
	t.Helper()

	c, err := NewCompiler(opts, tracer)
	if err != nil {
		t.Fatalf("NewCompiler() failed: %s", err)
	}

	return c
}

func TestCompile(t *testing.T) {
	c := newCompiler(t, DefaultOptions("test"), nil)

	res, err := c.Compile("[#def f <n:int> [( )]] [f 1]")
	if err != nil {
		t.Fatalf("Compile() failed: %s", err)
	}

	if len(res.Tokens) == 0 || res.Module == nil || res.IR == nil {
		t.Fatalf("Compile() returned an incomplete result: %# v", pretty.Formatter(res))
	}

	for _, want := range []string{"section .data\n", "\nf:\n", "  call f\n", "  push rax\n"} {
		if !strings.Contains(res.Asm, want) {
			t.Errorf("assembly is missing %q:\n%s", want, res.Asm)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	c := newCompiler(t, DefaultOptions("test"), nil)

	tests := []struct {
		source string
		kind   report.ErrorKind
	}{
		{"[f @]", report.KindLex},
		{"[f 1", report.KindParse},
		{"[f 1]", report.KindLowering},
	}

	for _, tc := range tests {
		_, err := c.Compile(tc.source)

		cerr, ok := err.(*report.CompileError)
		if !ok || cerr.Kind != tc.kind {
			t.Errorf("Compile(%q) = %v; want a %s error", tc.source, err, tc.kind)
		}
	}
}

func TestCompileTrace(t *testing.T) {
	buff := &bytes.Buffer{}

	opts := DefaultOptions("test")
	opts.Debug = true

	c := newCompiler(t, opts, report.NewTracer(buff))
	if _, err := c.Compile("[#def f [( 1 )]] [f]"); err != nil {
		t.Fatalf("Compile() failed: %s", err)
	}

	for _, phase := range []string{"[tokenize]", "[parse]", "[lower]", "[ir]", "[generate]"} {
		if !strings.Contains(buff.String(), phase) {
			t.Errorf("trace is missing phase %s:\n%s", phase, buff.String())
		}
	}

	// without debugging the tracer is ignored
	buff.Reset()
	c = newCompiler(t, DefaultOptions("test"), report.NewTracer(buff))
	c.Compile("1")
	if buff.Len() != 0 {
		t.Errorf("tracer written without debugging: %q", buff.String())
	}
}

func TestCompileLLVM(t *testing.T) {
	c := newCompiler(t, DefaultOptions("test"), nil)

	text, err := c.CompileLLVM("42")
	if err != nil {
		t.Fatalf("CompileLLVM() failed: %s", err)
	}

	if !strings.Contains(text, "define i64 @main()") || !strings.Contains(text, "ret i64 42") {
		t.Errorf("unexpected LLVM output:\n%s", text)
	}
}

func TestDecodeConfig(t *testing.T) {
	buff := []byte(`
[project]
name = "hello"
target = "w32"
out-dir = "build"
debug = true
linker = "lld-link"
`)

	opts := DefaultOptions("default")
	if err := DecodeConfig(buff, opts); err != nil {
		t.Fatalf("DecodeConfig() failed: %s", err)
	}

	want := &Options{
		Name:      "hello",
		Target:    platform.WindowsX86,
		OutDir:    "build",
		Debug:     true,
		Assembler: "nasm",
		Linker:    "lld-link",
	}

	if diff := pretty.Diff(want, opts); len(diff) > 0 {
		t.Errorf("decoded options mismatch:\n%s", strings.Join(diff, "\n"))
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		buff string
		msg  string
	}{
		{"missing project", "[other]\nx = 1\n", "missing a [project] table"},
		{"bad target", "[project]\ntarget = \"mips\"\n", "unknown target `mips`"},
		{"bad toml", "[project\n", "error decoding"},
	}

	for _, tc := range tests {
		err := DecodeConfig([]byte(tc.buff), DefaultOptions("x"))
		if err == nil || !strings.Contains(err.Error(), tc.msg) {
			t.Errorf("%s: DecodeConfig() = %v; want error containing %q", tc.name, err, tc.msg)
		}
	}
}

func TestInitAndLoadConfig(t *testing.T) {
	dir := t.TempDir()

	opts := DefaultOptions("scratch")
	if found, err := LoadConfig(dir, opts); found || err != nil {
		t.Fatalf("LoadConfig() on an empty directory = %v, %v", found, err)
	}

	if err := InitConfig(dir, "hello"); err != nil {
		t.Fatalf("InitConfig() failed: %s", err)
	}

	if err := InitConfig(dir, "hello"); err == nil {
		t.Errorf("InitConfig() overwrote an existing project file")
	}

	found, err := LoadConfig(dir, opts)
	if !found || err != nil {
		t.Fatalf("LoadConfig() = %v, %v", found, err)
	}

	if opts.Name != "hello" || opts.Target != platform.LinuxX86_64 || opts.OutDir != "bin" || opts.EffectiveLinker() != "ld" {
		t.Errorf("loaded options = %# v", pretty.Formatter(opts))
	}
}

func TestPathsFor(t *testing.T) {
	opts := DefaultOptions("hello")
	opts.Target = platform.WindowsX86_64

	c := newCompiler(t, opts, nil)
	paths := PathsFor(opts, c.Platform())

	want := OutputPaths{
		Asm: filepath.Join("bin", "asm", "hello.asm"),
		Obj: filepath.Join("bin", "obj", "hello.o"),
		Exe: filepath.Join("bin", "out", "hello.exe"),
	}

	if paths != want {
		t.Errorf("PathsFor() = %+v; want %+v", paths, want)
	}
}

func TestToolCommands(t *testing.T) {
	paths := OutputPaths{Asm: "p.asm", Obj: "p.o", Exe: "p"}

	linux := newCompiler(t, DefaultOptions("p"), nil)
	if got := linux.AssembleCommand(paths).Args; strings.Join(got, " ") != "nasm -f elf64 -o p.o p.asm" {
		t.Errorf("AssembleCommand() = %v", got)
	}

	if got := linux.LinkCommand(paths).Args; strings.Join(got, " ") != "ld -e _start -o p p.o" {
		t.Errorf("LinkCommand() = %v", got)
	}

	winOpts := DefaultOptions("p")
	winOpts.Target = platform.WindowsX86
	win := newCompiler(t, winOpts, nil)

	paths.Exe = "p.exe"
	want := "link /SUBSYSTEM:CONSOLE /ENTRY:_start /OUT:p.exe p.o"
	if got := win.LinkCommand(paths).Args; strings.Join(got, " ") != want {
		t.Errorf("LinkCommand() = %v; want %s", got, want)
	}

	if LinkerFor(platform.WindowsX86_64) != "link" || LinkerFor(platform.LinuxX86) != "ld" {
		t.Errorf("LinkerFor() chose the wrong default linker")
	}
}

func TestWriteAsm(t *testing.T) {
	report.SetOutput(ioutil.Discard)
	defer report.SetOutput(os.Stdout)

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "hello"+common.SrcFileExt)
	if err := ioutil.WriteFile(srcPath, []byte("[#asm \"nop\"]"), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %s", err)
	}

	opts := DefaultOptions("hello")
	opts.OutDir = filepath.Join(dir, "bin")

	c := newCompiler(t, opts, nil)
	paths, res, err := c.WriteAsm(srcPath)
	if err != nil {
		t.Fatalf("WriteAsm() failed: %s", err)
	}

	written, err := ioutil.ReadFile(paths.Asm)
	if err != nil {
		t.Fatalf("assembly file was not written: %s", err)
	}

	if string(written) != res.Asm {
		t.Errorf("written assembly differs from the compiled assembly")
	}

	llPath, err := c.WriteLLVM(srcPath)
	if err != nil {
		t.Fatalf("WriteLLVM() failed: %s", err)
	}

	if _, err := os.Stat(llPath); err != nil {
		t.Errorf("LLVM file was not written: %s", err)
	}

	if _, _, err := c.WriteAsm(filepath.Join(dir, "missing.brik")); err == nil {
		t.Errorf("WriteAsm() of a missing file succeeded")
	}
}
