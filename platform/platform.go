package platform

import (
	"brik/util"
	"fmt"
	"strings"
)

// Target is one of the fixed compilation targets: an OS family crossed with a
// word width.
type Target int

// Enumeration of targets.
const (
	LinuxX86 Target = iota
	LinuxX86_64
	WindowsX86
	WindowsX86_64
)

var targetNames = map[Target]string{
	LinuxX86:      "linux-x86",
	LinuxX86_64:   "linux-x86_64",
	WindowsX86:    "windows-x86",
	WindowsX86_64: "windows-x86_64",
}

// targetAliases maps the short target switches to their targets.
var targetAliases = map[string]Target{
	"l32": LinuxX86,
	"l64": LinuxX86_64,
	"w32": WindowsX86,
	"w64": WindowsX86_64,
}

func (t Target) String() string {
	if name, ok := targetNames[t]; ok {
		return name
	}

	return fmt.Sprintf("target(%d)", int(t))
}

// ParseTarget converts a target name or short alias into a target.
func ParseTarget(name string) (Target, error) {
	name = strings.ToLower(name)
	if t, ok := targetAliases[name]; ok {
		return t, nil
	}

	for t, tname := range targetNames {
		if tname == name {
			return t, nil
		}
	}

	return 0, fmt.Errorf("unknown target `%s`", name)
}

// TargetNames returns the names of all targets followed by their aliases.
func TargetNames() []string {
	return []string{
		"linux-x86", "linux-x86_64", "windows-x86", "windows-x86_64",
		"l32", "l64", "w32", "w64",
	}
}

// OSFamily is the operating system family of a target.
type OSFamily int

// Enumeration of OS families.
const (
	OSLinux OSFamily = iota
	OSWindows
)

func (os OSFamily) String() string {
	if os == OSWindows {
		return "windows"
	}

	return "linux"
}

// -----------------------------------------------------------------------------

// Platform is the immutable code generation policy for one target: word size,
// register naming, assembler format and syscall convention.
type Platform struct {
	target   Target
	os       OSFamily
	wordSize int

	// regPrefix is prepended to abstract register mnemonics.
	regPrefix string

	// format is the assembler output format identifier.
	format string

	conv *syscallConvention
}

// New returns the platform for the given target.
func New(target Target) (*Platform, error) {
	switch target {
	case LinuxX86:
		return &Platform{target: target, os: OSLinux, wordSize: 4, regPrefix: "e", format: "elf32", conv: interruptConvention}, nil
	case LinuxX86_64:
		return &Platform{target: target, os: OSLinux, wordSize: 8, regPrefix: "r", format: "elf64", conv: syscallInstrConvention}, nil
	case WindowsX86:
		return &Platform{target: target, os: OSWindows, wordSize: 4, regPrefix: "e", format: "win32", conv: interruptConvention}, nil
	case WindowsX86_64:
		return &Platform{target: target, os: OSWindows, wordSize: 8, regPrefix: "r", format: "win64", conv: syscallInstrConvention}, nil
	}

	return nil, fmt.Errorf("unknown target `%s`", target)
}

// Target returns the platform's target.
func (p *Platform) Target() Target {
	return p.target
}

// OS returns the platform's OS family.
func (p *Platform) OS() OSFamily {
	return p.os
}

// WordSize returns the size of a machine word in bytes.
func (p *Platform) WordSize() int {
	return p.wordSize
}

// AssemblerFormat returns the output format identifier passed to the
// assembler.
func (p *Platform) AssemblerFormat() string {
	return p.format
}

// ExecutableExt returns the file extension of linked executables.
func (p *Platform) ExecutableExt() string {
	if p.os == OSWindows {
		return ".exe"
	}

	return ""
}

// -----------------------------------------------------------------------------

// registers is the set of abstract two-letter register mnemonics.
var registers = map[string]struct{}{
	"ax": {}, "bx": {}, "cx": {}, "dx": {},
	"sp": {}, "bp": {}, "si": {}, "di": {},
}

// ResolveRegister translates an abstract register mnemonic such as `ax` into
// the concrete register name for this platform.  The mnemonic is matched
// case-insensitively.
func (p *Platform) ResolveRegister(mnemonic string) (string, bool) {
	mnemonic = strings.ToLower(mnemonic)
	if _, ok := registers[mnemonic]; !ok {
		return "", false
	}

	return p.regPrefix + mnemonic, true
}

// reg resolves a mnemonic known to be valid.
func (p *Platform) reg(mnemonic string) string {
	name, _ := p.ResolveRegister(mnemonic)
	return name
}

// Accumulator returns the accumulator register: it holds routine results and
// the process exit code.
func (p *Platform) Accumulator() string {
	return p.reg("ax")
}

// BasePointer returns the stack frame base pointer register.
func (p *Platform) BasePointer() string {
	return p.reg("bp")
}

// StackPointer returns the stack pointer register.
func (p *Platform) StackPointer() string {
	return p.reg("sp")
}

// EmitStackFrame emits the instructions opening a routine's stack frame.
func (p *Platform) EmitStackFrame(pr *util.Printer) {
	pr.AppendLn("push " + p.BasePointer())
	pr.AppendLn("mov " + p.BasePointer() + ", " + p.StackPointer())
}

// EmitEndStackFrame emits the instructions closing a routine's stack frame.
func (p *Platform) EmitEndStackFrame(pr *util.Printer) {
	pr.AppendLn("mov " + p.StackPointer() + ", " + p.BasePointer())
	pr.AppendLn("pop " + p.BasePointer())
}
