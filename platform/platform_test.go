package platform

import (
	"brik/util"
	"testing"
)

func mustPlatform(t *testing.T, target Target) *Platform {
	t.Helper()

	plat, err := New(target)
	if err != nil {
		t.Fatalf("New(%s) failed: %s", target, err)
	}

	return plat
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name string
		want Target
	}{
		{"linux-x86", LinuxX86},
		{"linux-x86_64", LinuxX86_64},
		{"windows-x86", WindowsX86},
		{"Windows-X86_64", WindowsX86_64},
		{"l32", LinuxX86},
		{"l64", LinuxX86_64},
		{"w32", WindowsX86},
		{"w64", WindowsX86_64},
	}

	for _, tc := range tests {
		got, err := ParseTarget(tc.name)
		if err != nil || got != tc.want {
			t.Errorf("ParseTarget(%q) = %s, %v; want %s", tc.name, got, err, tc.want)
		}
	}

	if _, err := ParseTarget("arm64"); err == nil {
		t.Errorf("ParseTarget(\"arm64\") should fail")
	}

	for _, name := range TargetNames() {
		if _, err := ParseTarget(name); err != nil {
			t.Errorf("TargetNames() lists unparseable name %q", name)
		}
	}
}

func TestPlatformProperties(t *testing.T) {
	tests := []struct {
		target   Target
		word     int
		format   string
		ext      string
		os       OSFamily
		accum    string
		basePtr  string
		stackPtr string
	}{
		{LinuxX86, 4, "elf32", "", OSLinux, "eax", "ebp", "esp"},
		{LinuxX86_64, 8, "elf64", "", OSLinux, "rax", "rbp", "rsp"},
		{WindowsX86, 4, "win32", ".exe", OSWindows, "eax", "ebp", "esp"},
		{WindowsX86_64, 8, "win64", ".exe", OSWindows, "rax", "rbp", "rsp"},
	}

	for _, tc := range tests {
		plat := mustPlatform(t, tc.target)

		if plat.Target() != tc.target || plat.OS() != tc.os {
			t.Errorf("%s: target/os = %s/%s", tc.target, plat.Target(), plat.OS())
		}

		if plat.WordSize() != tc.word {
			t.Errorf("%s: WordSize() = %d; want %d", tc.target, plat.WordSize(), tc.word)
		}

		if plat.AssemblerFormat() != tc.format {
			t.Errorf("%s: AssemblerFormat() = %q; want %q", tc.target, plat.AssemblerFormat(), tc.format)
		}

		if plat.ExecutableExt() != tc.ext {
			t.Errorf("%s: ExecutableExt() = %q; want %q", tc.target, plat.ExecutableExt(), tc.ext)
		}

		if plat.Accumulator() != tc.accum || plat.BasePointer() != tc.basePtr || plat.StackPointer() != tc.stackPtr {
			t.Errorf("%s: registers = %s %s %s", tc.target, plat.Accumulator(), plat.BasePointer(), plat.StackPointer())
		}
	}

	if _, err := New(Target(42)); err == nil {
		t.Errorf("New() accepted an unknown target")
	}
}

func TestResolveRegister(t *testing.T) {
	plat64 := mustPlatform(t, LinuxX86_64)
	plat32 := mustPlatform(t, WindowsX86)

	for _, reg := range []string{"ax", "bx", "cx", "dx", "sp", "bp", "si", "di"} {
		if got, ok := plat64.ResolveRegister(reg); !ok || got != "r"+reg {
			t.Errorf("64-bit ResolveRegister(%q) = %q, %v", reg, got, ok)
		}

		if got, ok := plat32.ResolveRegister(reg); !ok || got != "e"+reg {
			t.Errorf("32-bit ResolveRegister(%q) = %q, %v", reg, got, ok)
		}
	}

	if got, ok := plat64.ResolveRegister("SI"); !ok || got != "rsi" {
		t.Errorf("ResolveRegister(\"SI\") = %q, %v; want rsi", got, ok)
	}

	if _, ok := plat64.ResolveRegister("zz"); ok {
		t.Errorf("ResolveRegister(\"zz\") should fail")
	}
}

func TestEmitExit(t *testing.T) {
	tests := []struct {
		target Target
		want   string
	}{
		{LinuxX86, "mov ebx, eax\nmov eax, 1d\nint 0x80\n"},
		{LinuxX86_64, "mov rdi, rax\nmov rax, 60d\nsyscall\n"},
		{WindowsX86, "mov ebx, eax\nmov eax, 1d\nint 0x80\n"},
		{WindowsX86_64, "mov rdi, rax\nmov rax, 60d\nsyscall\n"},
	}

	for _, tc := range tests {
		plat := mustPlatform(t, tc.target)

		pr := util.NewPrinter("  ")
		plat.EmitExit(pr, plat.Accumulator())

		if pr.String() != tc.want {
			t.Errorf("%s: EmitExit() = %q; want %q", tc.target, pr.String(), tc.want)
		}
	}
}

func TestEmitExitUnsupported(t *testing.T) {
	plat := &Platform{
		target:    LinuxX86_64,
		os:        OSLinux,
		wordSize:  8,
		regPrefix: "r",
		format:    "elf64",
		conv:      &syscallConvention{argRegs: []string{"rdi"}, numbers: map[Syscall]int{}, trap: "syscall"},
	}

	defer func() {
		if recover() == nil {
			t.Errorf("EmitExit() did not panic on a convention without exit")
		}
	}()

	plat.EmitExit(util.NewPrinter("  "), plat.Accumulator())
}

func TestEmitSyscall(t *testing.T) {
	plat := mustPlatform(t, LinuxX86_64)

	pr := util.NewPrinter("  ")
	if err := plat.EmitSyscall(pr, SysWrite, "1", "auto_str_1", "3"); err != nil {
		t.Fatalf("EmitSyscall() failed: %s", err)
	}

	want := "mov rdi, 1\nmov rsi, auto_str_1\nmov rdx, 3\nmov rax, 1d\nsyscall\n"
	if pr.String() != want {
		t.Errorf("EmitSyscall() = %q; want %q", pr.String(), want)
	}

	tooMany := []string{"1", "2", "3", "4", "5", "6", "7"}
	if err := plat.EmitSyscall(util.NewPrinter("  "), SysWrite, tooMany...); err == nil {
		t.Errorf("EmitSyscall() accepted 7 arguments")
	}

	if n, ok := mustPlatform(t, LinuxX86).SyscallNumber(SysWrite); !ok || n != 4 {
		t.Errorf("32-bit SyscallNumber(write) = %d, %v; want 4", n, ok)
	}

	if sc, ok := LookupSyscall("mmap"); !ok || sc != SysMmap || sc.String() != "mmap" {
		t.Errorf("LookupSyscall(\"mmap\") = %s, %v", sc, ok)
	}
}

func TestCdecl(t *testing.T) {
	conv := mustPlatform(t, LinuxX86_64).DefaultConvention()

	pr := util.NewPrinter("  ")
	conv.EmitPrologue(pr)
	conv.EmitArgument(pr)
	conv.EmitCall(pr, "print")
	conv.EmitEpilogue(pr)

	want := "push rbp\nmov rbp, rsp\npush rax\ncall print\nmov rsp, rbp\npop rbp\nret\n"
	if pr.String() != want {
		t.Errorf("calling convention output = %q; want %q", pr.String(), want)
	}
}
