package ast

import (
	"brik/report"
	"brik/types"
	"brik/util"
)

// Block is a lexically scoped list of expressions with its own definition
// table.  The value of a block is the value of its last expression.
type Block struct {
	ASTBase

	Contents []Node

	// Defines is the list of definitions made directly inside this block in
	// the order they were declared.
	Defines []Definition

	// Parent is the lexically enclosing block.  This is nil for the entry
	// point of a module.
	Parent *Block
}

// NewBlock creates a new empty block nested inside parent.
func NewBlock(span *report.TextSpan, parent *Block) *Block {
	return &Block{
		ASTBase:  NewASTBaseOn(span),
		Contents: []Node{},
		Defines:  []Definition{},
		Parent:   parent,
	}
}

func (b *Block) Type() types.Type {
	return lastType(b.Contents)
}

// Define adds a definition to the block's definition table.
func (b *Block) Define(def Definition) {
	b.Defines = append(b.Defines, def)
}

// LookupLocal looks up a definition made directly in this block.  If a name is
// defined more than once, the latest definition wins.
func (b *Block) LookupLocal(name string) (Definition, bool) {
	for i := len(b.Defines) - 1; i >= 0; i-- {
		if b.Defines[i].Name() == name {
			return b.Defines[i], true
		}
	}

	return nil, false
}

// Lookup looks up a definition in this block and then in each enclosing
// block, innermost first.
func (b *Block) Lookup(name string) (Definition, bool) {
	for curr := b; curr != nil; curr = curr.Parent {
		if def, ok := curr.LookupLocal(name); ok {
			return def, true
		}
	}

	return nil, false
}

func (b *Block) PrettyPrint(p *util.Printer) {
	p.AppendLn("Block [(")
	p.Right()
	if len(b.Defines) > 0 {
		for _, def := range b.Defines {
			p.Print(def)
		}
		p.AppendLn("")
	}
	for _, node := range b.Contents {
		p.Print(node)
	}
	p.Left()
	p.AppendLn(")]")
}
