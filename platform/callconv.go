package platform

import "brik/util"

// CallingConvention determines how routines are called, entered and left.
type CallingConvention interface {
	// EmitArgument passes the value in the accumulator as the next argument
	// of a call being prepared.
	EmitArgument(pr *util.Printer)

	// EmitCall emits a call to the routine with the given label.
	EmitCall(pr *util.Printer, label string)

	// EmitPrologue emits the entry sequence of a routine.
	EmitPrologue(pr *util.Printer)

	// EmitEpilogue emits the exit sequence of a routine including its return.
	EmitEpilogue(pr *util.Printer)
}

// Cdecl is the default calling convention: the caller pushes arguments left to
// right and the callee addresses them relative to its base pointer.  Results
// are returned in the accumulator.  The caller does not clean up the pushed
// arguments.
type Cdecl struct {
	plat *Platform
}

// NewCdecl creates the default calling convention for a platform.
func NewCdecl(plat *Platform) *Cdecl {
	return &Cdecl{plat: plat}
}

// DefaultConvention returns the default calling convention of the platform.
func (p *Platform) DefaultConvention() CallingConvention {
	return NewCdecl(p)
}

func (c *Cdecl) EmitArgument(pr *util.Printer) {
	pr.AppendLn("push " + c.plat.Accumulator())
}

func (c *Cdecl) EmitCall(pr *util.Printer, label string) {
	pr.AppendLn("call " + label)
}

func (c *Cdecl) EmitPrologue(pr *util.Printer) {
	c.plat.EmitStackFrame(pr)
}

func (c *Cdecl) EmitEpilogue(pr *util.Printer) {
	c.plat.EmitEndStackFrame(pr)
	pr.AppendLn("ret")
}
