package generate

import (
	"brik/ir"
	"brik/lower"

	llir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// LLVMGenerator converts an assembly IR module into an LLVM module.  Every
// routine becomes a function taking its parameters as `i64` and returning the
// value its last node leaves in the accumulator.  Inline assembly is kept as
// side-effecting inline asm calls.  This backend is experimental: it does not
// model the stack layout used by inline assembly.
type LLVMGenerator struct {
	mod *llir.Module

	// funcs maps routine labels to their LLVM functions.
	funcs map[string]*llir.Func

	// strings maps data labels to their LLVM globals.
	strings map[string]*llir.Global

	// block is the LLVM block being generated.
	block *llir.Block
}

// NewLLVMGenerator creates a new LLVM generator.
func NewLLVMGenerator() *LLVMGenerator {
	return &LLVMGenerator{
		mod:     llir.NewModule(),
		funcs:   make(map[string]*llir.Func),
		strings: make(map[string]*llir.Global),
	}
}

// GenerateLLVM converts a module into LLVM IR text.
func GenerateLLVM(m *ir.Module) string {
	return NewLLVMGenerator().Generate(m).String()
}

// Generate converts a module into an LLVM module.
func (g *LLVMGenerator) Generate(m *ir.Module) *llir.Module {
	for _, entry := range m.Data.Entries() {
		global := g.mod.NewGlobalDef(entry.Label, constant.NewCharArrayFromString(entry.Text+"\x00"))
		global.Linkage = enum.LinkagePrivate
		global.Immutable = true
		g.strings[entry.Label] = global
	}

	// declare all functions before generating any body so calls can refer
	// forward
	for _, entry := range m.Blocks {
		var params []*llir.Param
		for _, param := range entry.Def.Pattern.Params() {
			params = append(params, llir.NewParam(param.Name, lltypes.I64))
		}

		fn := g.mod.NewFunc(ir.SanitizeLabel(entry.Block.Label), lltypes.I64, params...)
		// only the entry point is visible outside the module
		if entry.Block.Label != lower.EntryLabel {
			fn.Linkage = enum.LinkageInternal
		}

		g.funcs[entry.Block.Label] = fn
	}

	for _, entry := range m.Blocks {
		g.genFunc(g.funcs[entry.Block.Label], entry.Block)
	}

	return g.mod
}

// genFunc generates the body of a function.
func (g *LLVMGenerator) genFunc(fn *llir.Func, block *ir.AsmBlock) {
	g.block = fn.NewBlock("entry")

	var result value.Value = constant.NewInt(lltypes.I64, 0)
	for _, node := range block.Contents {
		if val := g.genNode(node); val != nil {
			result = val
		}
	}

	g.block.NewRet(result)
}

// genNode generates a single node and returns the value it produces, if any.
func (g *LLVMGenerator) genNode(node ir.Node) value.Value {
	switch v := node.(type) {
	case *ir.AsmInt:
		return constant.NewInt(lltypes.I64, v.Value)
	case *ir.AsmString:
		return g.block.NewPtrToInt(g.strings[v.Label], lltypes.I64)
	case *ir.AsmCall:
		fn := g.funcs[v.Target]

		args := make([]value.Value, len(fn.Params))
		for i := range args {
			if i < len(v.Operands) {
				args[i] = g.genNode(v.Operands[i])
			}

			if args[i] == nil {
				args[i] = constant.NewInt(lltypes.I64, 0)
			}
		}

		return g.block.NewCall(fn, args...)
	case *ir.AsmLiteral:
		asm := llir.NewInlineAsm(lltypes.NewPointer(lltypes.NewFunc(lltypes.Void)), v.Text, "")
		asm.SideEffect = true
		g.block.NewCall(asm)
	case *ir.AsmBlock:
		var last value.Value
		for _, item := range v.Contents {
			if val := g.genNode(item); val != nil {
				last = val
			}
		}

		return last
	}

	return nil
}
