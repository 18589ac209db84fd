package ast

import "brik/util"

// Module is the result of parsing one program: its entry point and every
// definition reachable from it.  A module is immutable once created.
type Module struct {
	EntryPoint *Block

	// Defines is the flattened list of all definitions reachable from the
	// entry point, in declaration order with nested definitions following
	// the definition or block that contains them.
	Defines []Definition
}

// NewModule creates a new module around an entry point block and collects its
// definitions.
func NewModule(entry *Block) *Module {
	defines := []Definition{}
	collectBlock(entry, &defines)

	return &Module{EntryPoint: entry, Defines: defines}
}

// CallDefinitions returns the callable definitions of the module in order.
func (m *Module) CallDefinitions() []*CallDefinition {
	var calls []*CallDefinition
	for _, def := range m.Defines {
		if cd, ok := def.(*CallDefinition); ok {
			calls = append(calls, cd)
		}
	}

	return calls
}

func (m *Module) PrettyPrint(p *util.Printer) {
	p.Print(m.EntryPoint)
}

// collectBlock appends the definitions of a block and everything nested inside
// it to defines.
func collectBlock(b *Block, defines *[]Definition) {
	for _, def := range b.Defines {
		*defines = append(*defines, def)

		switch v := def.(type) {
		case *CallDefinition:
			collectBlock(v.Body, defines)
		case *VarDefinition:
			if v.Value != nil {
				collectNode(v.Value, defines)
			}
		}
	}

	for _, node := range b.Contents {
		collectNode(node, defines)
	}
}

// collectNode collects the definitions of any blocks nested inside node.
func collectNode(node Node, defines *[]Definition) {
	switch v := node.(type) {
	case *Block:
		collectBlock(v, defines)
	case *List:
		for _, item := range v.Contents {
			collectNode(item, defines)
		}
	case *Call:
		for _, op := range v.Operands {
			collectNode(op, defines)
		}
	}
}
