package ir

import (
	"brik/ast"
	"brik/util"
	"fmt"
)

// BlockEntry pairs a lowered routine with the definition it was lowered from.
type BlockEntry struct {
	Block *AsmBlock
	Def   *ast.CallDefinition
}

// Module is the lowered form of a program: its data section and its routines
// in emission order.
type Module struct {
	Data   *DataSection
	Blocks []BlockEntry
}

// NewModule creates a new empty module.
func NewModule() *Module {
	return &Module{Data: NewDataSection()}
}

// AddBlock appends a routine to the module.  Labels must be unique.
func (m *Module) AddBlock(block *AsmBlock, def *ast.CallDefinition) error {
	if _, ok := m.LookupBlock(block.Label); ok {
		return fmt.Errorf("multiple routines labeled `%s`", block.Label)
	}

	m.Blocks = append(m.Blocks, BlockEntry{Block: block, Def: def})
	return nil
}

// LookupBlock finds the routine with the given label.
func (m *Module) LookupBlock(label string) (BlockEntry, bool) {
	for _, entry := range m.Blocks {
		if entry.Block.Label == label {
			return entry, true
		}
	}

	return BlockEntry{}, false
}

func (m *Module) PrettyPrint(p *util.Printer) {
	p.Print(m.Data)
	for _, entry := range m.Blocks {
		p.Print(entry.Block)
	}
}
