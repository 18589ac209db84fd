package generate

import (
	"brik/ir"
	"brik/lower"
	"brik/platform"
	"brik/util"
	"fmt"
	"strconv"
	"strings"
)

// Generator is responsible for converting an assembly IR module into NASM
// assembly text for a platform.
type Generator struct {
	plat *platform.Platform
	conv platform.CallingConvention

	// text is the printer for the instruction section.
	text *util.Printer
}

// NewGenerator creates a new generator for the given platform using the
// platform's default calling convention.
func NewGenerator(plat *platform.Platform) *Generator {
	return NewGeneratorWith(plat, plat.DefaultConvention())
}

// NewGeneratorWith creates a new generator using a custom calling convention.
func NewGeneratorWith(plat *platform.Platform, conv platform.CallingConvention) *Generator {
	return &Generator{plat: plat, conv: conv, text: util.NewPrinter("  ")}
}

// Generate produces the assembly text of a module: its data section followed
// by its instruction section.
func (g *Generator) Generate(m *ir.Module) string {
	g.text.Clear()

	g.genHeader()
	for _, entry := range m.Blocks {
		g.genRoutine(entry.Block)
	}

	return g.genData(m.Data) + "\n" + g.text.String()
}

// genData produces the data section text.
func (g *Generator) genData(data *ir.DataSection) string {
	p := util.NewPrinter("  ")
	p.AppendLn("section .data")
	for _, entry := range data.Entries() {
		p.AppendLn(entry.Label + ":\tdb " + dbOperands(entry.Text) + ",10")
	}

	return p.String()
}

// genHeader produces the `_start` routine which calls the entry point and
// exits with its result.
func (g *Generator) genHeader() {
	g.text.AppendLn("section .text")
	g.text.AppendLn("global " + ir.StartLabel)
	g.text.AppendLn("")
	g.text.AppendLn(ir.StartLabel + ":")
	g.text.Right()
	g.conv.EmitCall(g.text, lower.EntryLabel)
	g.plat.EmitExit(g.text, g.plat.Accumulator())
	g.text.Left()
}

// genRoutine produces a labeled routine wrapped in the calling convention's
// prologue and epilogue.
func (g *Generator) genRoutine(block *ir.AsmBlock) {
	g.text.AppendLn("")
	g.text.AppendLn(ir.SanitizeLabel(block.Label) + ":")
	g.text.Right()
	g.conv.EmitPrologue(g.text)

	for _, node := range block.Contents {
		g.genNode(node)
	}

	g.conv.EmitEpilogue(g.text)
	g.text.Left()
}

// genNode produces the instructions of a single IR node.
func (g *Generator) genNode(node ir.Node) {
	switch v := node.(type) {
	case *ir.AsmInt:
		g.text.AppendLn(fmt.Sprintf("mov %s, %dd", g.plat.Accumulator(), v.Value))
	case *ir.AsmString:
		g.text.AppendLn("mov " + g.plat.Accumulator() + ", " + v.Label)
	case *ir.AsmCall:
		for _, op := range v.Operands {
			g.genNode(op)
			g.conv.EmitArgument(g.text)
		}

		g.conv.EmitCall(g.text, ir.SanitizeLabel(v.Target))
	case *ir.AsmLiteral:
		g.text.AppendLn(v.Text)
	case *ir.AsmBlock:
		for _, item := range v.Contents {
			g.genNode(item)
		}
	}
}

// -----------------------------------------------------------------------------

// dbOperands formats a string as `db` operands.  Runs of printable characters
// are quoted; double quotes and control characters are emitted as bytes.
func dbOperands(text string) string {
	var ops []string
	var run strings.Builder

	flush := func() {
		if run.Len() > 0 {
			ops = append(ops, "\""+run.String()+"\"")
			run.Reset()
		}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '"' || c < 0x20 || c == 0x7f {
			flush()
			ops = append(ops, strconv.Itoa(int(c)))
		} else {
			run.WriteByte(c)
		}
	}
	flush()

	if len(ops) == 0 {
		return "\"\""
	}

	return strings.Join(ops, ",")
}
