package ir

import (
	"brik/types"
	"brik/util"
	"fmt"
	"strconv"
	"strings"
)

// Node is the interface for all assembly IR nodes.  Like AST nodes, the set of
// IR nodes is closed.
type Node interface {
	util.PrettyPrinter

	// Type is the type of the value the node leaves in the accumulator.
	Type() types.Type

	asmNode()
}

// AsmInt loads an integer constant into the accumulator.
type AsmInt struct {
	Value int64
}

func (*AsmInt) asmNode() {}

func (ai *AsmInt) Type() types.Type {
	return types.Int
}

func (ai *AsmInt) PrettyPrint(p *util.Printer) {
	p.AppendLn("AsmInt " + strconv.FormatInt(ai.Value, 10))
}

// AsmString loads the address of a string in the data section into the
// accumulator.
type AsmString struct {
	// The data label of the string.
	Label string
}

func (*AsmString) asmNode() {}

func (as *AsmString) Type() types.Type {
	return types.String
}

func (as *AsmString) PrettyPrint(p *util.Printer) {
	p.AppendLn("AsmString " + as.Label)
}

// AsmCall evaluates its operands left to right, passing each as an argument,
// and then calls the block with the target label.
type AsmCall struct {
	Target     string
	ResultType types.Type
	Operands   []Node
}

func (*AsmCall) asmNode() {}

func (ac *AsmCall) Type() types.Type {
	return ac.ResultType
}

func (ac *AsmCall) PrettyPrint(p *util.Printer) {
	p.Append(fmt.Sprintf("AsmCall %s -> %s [", ac.Target, ac.ResultType.Repr()))
	if len(ac.Operands) > 0 {
		p.AppendLn("")
		p.Right()
		for _, op := range ac.Operands {
			p.Print(op)
		}
		p.Left()
	}
	p.AppendLn("]")
}

// AsmBlock is a labeled routine.
type AsmBlock struct {
	Label    string
	Contents []Node
}

func (*AsmBlock) asmNode() {}

func (ab *AsmBlock) Type() types.Type {
	if len(ab.Contents) == 0 {
		return types.Unknown
	}

	return ab.Contents[len(ab.Contents)-1].Type()
}

func (ab *AsmBlock) PrettyPrint(p *util.Printer) {
	p.AppendLn("AsmBlock " + ab.Label + " [")
	p.Right()
	for _, node := range ab.Contents {
		p.Print(node)
	}
	p.Left()
	p.AppendLn("]")
}

// AsmLiteral is fully resolved assembly text emitted verbatim.
type AsmLiteral struct {
	Text string
}

func (*AsmLiteral) asmNode() {}

func (al *AsmLiteral) Type() types.Type {
	return types.Unknown
}

func (al *AsmLiteral) PrettyPrint(p *util.Printer) {
	if !strings.Contains(al.Text, "\n") {
		p.AppendLn("AsmLiteral `" + al.Text + "`")
		return
	}

	p.AppendLn("AsmLiteral `")
	p.Right()
	p.AppendLn(al.Text)
	p.Left()
	p.AppendLn("`")
}
