package lower

import (
	"brik/ast"
	"brik/ir"
	"brik/report"
	"regexp"
	"strings"
)

var (
	// registerRef matches an abstract register mnemonic such as `%ax`.
	registerRef = regexp.MustCompile(`%([A-Za-z]{2})`)

	// stackRef matches a named stack reference such as `{c}`.
	stackRef = regexp.MustCompile(`\{([a-z_+\-*%^&|/][a-z0-9_+\-*%^&|/]*)\}`)
)

// lowerAsm expands an inline assembly macro.  Register mnemonics are resolved
// against the platform and stack references against the current stack frame.
func (l *Lowerer) lowerAsm(macro *ast.AsmMacro) (*ir.AsmLiteral, error) {
	var lines []string
	for _, line := range strings.Split(macro.Asm, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		line, err := l.expandRegisters(macro, line)
		if err != nil {
			return nil, err
		}

		line, err = l.expandStackRefs(macro, line)
		if err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	return &ir.AsmLiteral{Text: strings.Join(lines, "\n")}, nil
}

// expandRegisters replaces every `%xy` in a line with its concrete register.
func (l *Lowerer) expandRegisters(macro *ast.AsmMacro, line string) (string, error) {
	var err error
	expanded := registerRef.ReplaceAllStringFunc(line, func(match string) string {
		if err != nil {
			return match
		}

		reg, ok := l.plat.ResolveRegister(match[1:])
		if !ok {
			err = report.Raise(report.KindLowering, macro.Span(), "unknown register `%s` in inline assembly", match)
			return match
		}

		return reg
	})

	return expanded, err
}

// expandStackRefs replaces every `{name}` in a line with the memory operand of
// the name's stack slot.
func (l *Lowerer) expandStackRefs(macro *ast.AsmMacro, line string) (string, error) {
	var err error
	expanded := stackRef.ReplaceAllStringFunc(line, func(match string) string {
		if err != nil {
			return match
		}

		name := match[1 : len(match)-1]
		slot, ok := l.frame.lookup(name)
		if !ok {
			err = report.Raise(report.KindLowering, macro.Span(), "undefined stack reference `%s` in inline assembly", name)
			return match
		}

		return memOperand(l.plat.BasePointer(), slot, l.plat.WordSize())
	})

	return expanded, err
}
