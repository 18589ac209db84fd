package ast

import (
	"brik/report"
	"brik/types"
	"brik/util"
)

// Definition is the interface for all named definitions.  Like nodes, the set
// of definitions is closed.
type Definition interface {
	util.PrettyPrinter

	// Name returns the name being defined.
	Name() string

	// DefinitionType returns the type of the defined entity.
	DefinitionType() types.Type

	// Type returns the externally visible type of the definition: a reference
	// to the definition type.
	Type() types.Type

	// Span returns where the definition occurs.
	Span() *report.TextSpan

	def()
}

// DefBase is a utility base struct for all definitions.
type DefBase struct {
	name string
	span *report.TextSpan
}

func (db DefBase) Name() string {
	return db.name
}

func (db DefBase) Span() *report.TextSpan {
	return db.span
}

func (DefBase) def() {}

// -----------------------------------------------------------------------------

// VarDefinition defines a variable with an optional initializer.
type VarDefinition struct {
	DefBase

	// Value is the initializer.  This may be nil.
	Value Node
}

// NewVarDefinition creates a new variable definition.
func NewVarDefinition(name string, value Node, span *report.TextSpan) *VarDefinition {
	return &VarDefinition{DefBase: DefBase{name: name, span: span}, Value: value}
}

func (vd *VarDefinition) DefinitionType() types.Type {
	if vd.Value == nil {
		return types.Unknown
	}

	return vd.Value.Type()
}

func (vd *VarDefinition) Type() types.Type {
	return types.NewRef(vd.DefinitionType())
}

func (vd *VarDefinition) PrettyPrint(p *util.Printer) {
	p.Append("Define " + vd.name)
	if vd.Value != nil {
		p.Append(" as ")
		p.Right()
		p.Print(vd.Value)
		p.Left()
	} else {
		p.AppendLn("")
	}
}

// CallDefinition defines a named callable with a body and a pattern of
// parameters.
type CallDefinition struct {
	DefBase

	Body    *Block
	Pattern *types.Pattern
}

// NewCallDefinition creates a new callable definition.  A nil pattern is
// replaced by a fresh empty pattern.
func NewCallDefinition(name string, body *Block, pattern *types.Pattern, span *report.TextSpan) *CallDefinition {
	if pattern == nil {
		pattern = types.EmptyPattern()
	}

	return &CallDefinition{DefBase: DefBase{name: name, span: span}, Body: body, Pattern: pattern}
}

func (cd *CallDefinition) DefinitionType() types.Type {
	return types.Call
}

func (cd *CallDefinition) Type() types.Type {
	return types.NewRef(types.Call)
}

func (cd *CallDefinition) PrettyPrint(p *util.Printer) {
	p.Append("Define " + cd.name + " ")
	if cd.Pattern.Len() > 0 {
		p.Append(cd.Pattern.String() + " ")
	}
	p.Append("as ")
	p.Print(cd.Body)
}
