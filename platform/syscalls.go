package platform

import (
	"brik/util"
	"fmt"
	"strconv"
)

// Syscall is an abstract operating system call.
type Syscall int

// Enumeration of syscalls.
const (
	SysRead Syscall = iota
	SysWrite
	SysOpen
	SysClose
	SysStat
	SysFstat
	SysLstat
	SysPoll
	SysLseek
	SysMmap
	SysMprotect
	SysMunmap
	SysExit
)

var syscallNames = [...]string{
	SysRead:     "read",
	SysWrite:    "write",
	SysOpen:     "open",
	SysClose:    "close",
	SysStat:     "stat",
	SysFstat:    "fstat",
	SysLstat:    "lstat",
	SysPoll:     "poll",
	SysLseek:    "lseek",
	SysMmap:     "mmap",
	SysMprotect: "mprotect",
	SysMunmap:   "munmap",
	SysExit:     "exit",
}

func (sc Syscall) String() string {
	if 0 <= sc && int(sc) < len(syscallNames) {
		return syscallNames[sc]
	}

	return "syscall(" + strconv.Itoa(int(sc)) + ")"
}

// LookupSyscall converts a syscall name into a syscall.
func LookupSyscall(name string) (Syscall, bool) {
	for sc, sname := range syscallNames {
		if sname == name {
			return Syscall(sc), true
		}
	}

	return 0, false
}

// -----------------------------------------------------------------------------

// syscallConvention describes how a family of targets performs a syscall: the
// argument registers in order, the syscall numbers and the trap instruction.
type syscallConvention struct {
	argRegs []string
	numbers map[Syscall]int
	trap    string
}

// interruptConvention is the 32-bit convention: i386 numbering, arguments in
// `ebx ecx edx esi edi ebp` and the `int 0x80` gate.
var interruptConvention = &syscallConvention{
	argRegs: []string{"ebx", "ecx", "edx", "esi", "edi", "ebp"},
	numbers: map[Syscall]int{
		SysExit:     1,
		SysRead:     3,
		SysWrite:    4,
		SysOpen:     5,
		SysClose:    6,
		SysLseek:    19,
		SysMmap:     90,
		SysMunmap:   91,
		SysStat:     106,
		SysLstat:    107,
		SysFstat:    108,
		SysMprotect: 125,
		SysPoll:     168,
	},
	trap: "int 0x80",
}

// syscallInstrConvention is the 64-bit convention: x86-64 numbering, arguments
// in `rdi rsi rdx r10 r8 r9` and the `syscall` instruction.
var syscallInstrConvention = &syscallConvention{
	argRegs: []string{"rdi", "rsi", "rdx", "r10", "r8", "r9"},
	numbers: map[Syscall]int{
		SysRead:     0,
		SysWrite:    1,
		SysOpen:     2,
		SysClose:    3,
		SysStat:     4,
		SysFstat:    5,
		SysLstat:    6,
		SysPoll:     7,
		SysLseek:    8,
		SysMmap:     9,
		SysMprotect: 10,
		SysMunmap:   11,
		SysExit:     60,
	},
	trap: "syscall",
}

// SyscallNumber returns the number of a syscall on this platform.
func (p *Platform) SyscallNumber(sc Syscall) (int, bool) {
	n, ok := p.conv.numbers[sc]
	return n, ok
}

// EmitSyscall emits a syscall: each argument is moved into its argument
// register, the syscall number is moved into the accumulator and the trap is
// executed.  Arguments are operand text: registers, labels or immediates.
func (p *Platform) EmitSyscall(pr *util.Printer, sc Syscall, args ...string) error {
	n, ok := p.conv.numbers[sc]
	if !ok {
		return fmt.Errorf("syscall `%s` is not supported on %s", sc, p.target)
	}

	if len(args) > len(p.conv.argRegs) {
		return fmt.Errorf("syscall `%s` takes at most %d arguments", sc, len(p.conv.argRegs))
	}

	for i, arg := range args {
		pr.AppendLn("mov " + p.conv.argRegs[i] + ", " + arg)
	}

	pr.AppendLn(fmt.Sprintf("mov %s, %dd", p.Accumulator(), n))
	pr.AppendLn(p.conv.trap)
	return nil
}

// EmitExit emits the exit syscall with the given exit code operand.  It panics
// if the platform's convention cannot emit exit.
func (p *Platform) EmitExit(pr *util.Printer, code string) {
	// every convention table defines exit
	if err := p.EmitSyscall(pr, SysExit, code); err != nil {
		panic(fmt.Sprintf("failed to emit exit: %s", err))
	}
}
