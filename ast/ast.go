package ast

import (
	"brik/report"
	"brik/types"
	"brik/util"
	"fmt"
	"strconv"
)

// Node is the interface for all AST nodes.  The set of nodes is closed: the
// unexported marker method restricts implementations to this package.
type Node interface {
	util.PrettyPrinter

	// Type is the yielded type of the node.
	Type() types.Type

	// Span returns the text span of the node.
	Span() *report.TextSpan

	node()
}

// ASTBase is a utility base struct for all AST nodes.
type ASTBase struct {
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

func (ASTBase) node() {}

// -----------------------------------------------------------------------------

// Number is an integer literal.
type Number struct {
	ASTBase

	Value int64
}

func (n *Number) Type() types.Type {
	return types.Int
}

func (n *Number) PrettyPrint(p *util.Printer) {
	p.AppendLn("Number (" + strconv.FormatInt(n.Value, 10) + ")")
}

// String is a string literal.
type String struct {
	ASTBase

	Value string
}

func (s *String) Type() types.Type {
	return types.String
}

func (s *String) PrettyPrint(p *util.Printer) {
	p.AppendLn(fmt.Sprintf("String %q", s.Value))
}

// Reference is a named lookup.  References carry no runtime value: they let a
// definition stand in expression position.  Def is the definition the
// reference was produced by, if any.
type Reference struct {
	ASTBase

	Name string
	Def  Definition
}

func (r *Reference) Type() types.Type {
	return types.NewRef(types.Unknown)
}

func (r *Reference) PrettyPrint(p *util.Printer) {
	p.AppendLn("Reference to $" + r.Name)
}

// Call is a call to a named callable.
type Call struct {
	ASTBase

	Name     string
	Operands []Node
}

func (c *Call) Type() types.Type {
	return types.Unknown
}

func (c *Call) PrettyPrint(p *util.Printer) {
	p.Append("Call " + c.Name + " [")
	if len(c.Operands) > 0 {
		p.AppendLn("")
		p.Right()
		for _, op := range c.Operands {
			p.Print(op)
		}
		p.Left()
	}
	p.AppendLn("]")
}

// AsmMacro is an inline-assembly escape.  The text is stored de-indented.
type AsmMacro struct {
	ASTBase

	Asm string
}

func (am *AsmMacro) Type() types.Type {
	return types.Void
}

func (am *AsmMacro) PrettyPrint(p *util.Printer) {
	p.AppendLn("#asm [")
	p.Right()
	p.AppendLn(am.Asm)
	p.Left()
	p.AppendLn("]")
}

// List is an ordered list of expressions.
type List struct {
	ASTBase

	Contents []Node
}

func (l *List) Type() types.Type {
	return types.NewList(lastType(l.Contents))
}

func (l *List) PrettyPrint(p *util.Printer) {
	p.AppendLn("List (")
	p.Right()
	for _, node := range l.Contents {
		p.Print(node)
	}
	p.Left()
	p.AppendLn(")")
}

// Struct is a reserved node: structured types are part of the vocabulary but
// have no fields or behavior.
type Struct struct {
	ASTBase
}

func (s *Struct) Type() types.Type {
	return types.Struct
}

func (s *Struct) PrettyPrint(p *util.Printer) {
	p.AppendLn("Struct {}")
}

// lastType returns the type of the last node or Void if there are none.
func lastType(nodes []Node) types.Type {
	if len(nodes) == 0 {
		return types.Void
	}

	return nodes[len(nodes)-1].Type()
}
