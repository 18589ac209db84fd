package lower

import (
	"brik/ast"
	"brik/ir"
	"brik/platform"
	"brik/report"
	"brik/types"
	"fmt"
	"strings"
)

// EntryLabel is the label of the routine wrapping a program's entry point.
const EntryLabel = "main"

// Lowerer is the construct responsible for converting a module into assembly
// IR for a platform.  Lowerers are created once per compilation.
type Lowerer struct {
	plat   *platform.Platform
	tracer *report.Tracer

	// mod is the module being built.
	mod *ir.Module

	// callables maps the names of all callables to their definitions.
	callables map[string]*ast.CallDefinition

	// frame is the stack frame of the routine being lowered.
	frame *StackFrame
}

// NewLowerer creates a new lowerer for the given platform.  The tracer may be
// nil.
func NewLowerer(plat *platform.Platform, tracer *report.Tracer) *Lowerer {
	return &Lowerer{plat: plat, tracer: tracer.Phase("lower")}
}

// Lower converts a module into assembly IR.  Every callable becomes one
// routine labeled with its name, followed by the `main` routine wrapping the
// entry point.
func (l *Lowerer) Lower(m *ast.Module) (*ir.Module, error) {
	l.mod = ir.NewModule()
	l.callables = make(map[string]*ast.CallDefinition)

	// declare every callable up front so calls may refer to callables defined
	// later in the program
	calls := m.CallDefinitions()
	labels := make(map[string]string)
	for _, def := range calls {
		if err := checkLabel(def, labels); err != nil {
			return nil, err
		}

		l.callables[def.Name()] = def
	}

	for _, def := range calls {
		if err := l.lowerRoutine(def); err != nil {
			return nil, err
		}
	}

	entry := ast.NewCallDefinition(EntryLabel, m.EntryPoint, nil, m.EntryPoint.Span())
	if err := l.lowerRoutine(entry); err != nil {
		return nil, err
	}

	return l.mod, nil
}

// checkLabel verifies that the label a callable is emitted under belongs to it
// alone.  labels maps the labels claimed so far to the names claiming them.
func checkLabel(def *ast.CallDefinition, labels map[string]string) error {
	name := def.Name()
	label := ir.SanitizeLabel(name)

	switch {
	case label == EntryLabel:
		return report.Raise(report.KindLowering, def.Span(), "`%s` is reserved for the program entry point", EntryLabel)
	case label == ir.StartLabel:
		return report.Raise(report.KindLowering, def.Span(), "`%s` is reserved for the program start routine", ir.StartLabel)
	case strings.HasPrefix(label, ir.AutoLabelPrefix):
		return report.Raise(
			report.KindLowering,
			def.Span(),
			"callable `%s` uses the label prefix `%s` reserved for string data",
			name, ir.AutoLabelPrefix,
		)
	}

	if other, ok := labels[label]; ok {
		if other == name {
			return report.Raise(report.KindLowering, def.Span(), "multiple callables named `%s`", name)
		}

		return report.Raise(report.KindLowering, def.Span(), "callables `%s` and `%s` share the label `%s`", other, name, label)
	}

	labels[label] = name
	return nil
}

// lowerRoutine lowers a callable into a labeled block.
func (l *Lowerer) lowerRoutine(def *ast.CallDefinition) error {
	params := def.Pattern.Params()
	paramNames := make([]string, len(params))
	for i, param := range params {
		paramNames[i] = param.Name
	}

	l.frame = newStackFrame(paramNames)
	defer func() {
		l.frame = nil
	}()

	contents, err := l.lowerBlockContents(def.Body)
	if err != nil {
		return err
	}

	if reserved := l.frame.reservedBytes(l.plat.WordSize()); reserved > 0 {
		reserve := &ir.AsmLiteral{Text: fmt.Sprintf("sub %s, %d", l.plat.StackPointer(), reserved)}
		contents = append([]ir.Node{reserve}, contents...)
	}

	block := &ir.AsmBlock{Label: def.Name(), Contents: contents}
	if err := l.mod.AddBlock(block, def); err != nil {
		return report.Raise(report.KindLowering, def.Span(), "%s", err.Error())
	}

	l.tracer.Tracef("lowered `%s` into %d nodes", def.Name(), len(contents))
	return nil
}

// lowerBlockContents allocates the slots of a block's variables and then
// lowers the block's statements in order.  Initializers are lowered where
// their definitions occur.
func (l *Lowerer) lowerBlockContents(block *ast.Block) ([]ir.Node, error) {
	contents := []ir.Node{}

	// slots exist for the whole block so inline assembly can refer to a
	// variable before its definition
	for _, def := range block.Defines {
		if vdef, ok := def.(*ast.VarDefinition); ok {
			l.frame.declare(vdef.Name())
		}
	}

	for _, node := range block.Contents {
		lowered, err := l.lowerStmt(node)
		if err != nil {
			return nil, err
		}

		contents = append(contents, lowered...)
	}

	return contents, nil
}

// lowerStmt lowers a statement of a block.  A reference left by a variable
// definition lowers the variable's initializer.  Other references produce no
// code.  Nested blocks are lowered inline in their own scope.
func (l *Lowerer) lowerStmt(node ast.Node) ([]ir.Node, error) {
	switch v := node.(type) {
	case *ast.Reference:
		if vdef, ok := v.Def.(*ast.VarDefinition); ok {
			return l.lowerVarInit(vdef)
		}

		return nil, nil
	case *ast.Number, *ast.String, *ast.Call:
		op, err := l.lowerOperand(v)
		if err != nil {
			return nil, err
		}

		return []ir.Node{op}, nil
	case *ast.AsmMacro:
		lit, err := l.lowerAsm(v)
		if err != nil {
			return nil, err
		}

		return []ir.Node{lit}, nil
	case *ast.Block:
		l.frame.pushScope()
		defer l.frame.popScope()

		return l.lowerBlockContents(v)
	case *ast.List:
		return nil, report.Raise(report.KindLowering, v.Span(), "lists cannot be lowered")
	case *ast.Struct:
		return nil, report.Raise(report.KindLowering, v.Span(), "structs cannot be lowered")
	}

	return nil, report.Raise(report.KindLowering, node.Span(), "unexpected node")
}

// lowerVarInit lowers the initializer of a variable and stores the result in
// the variable's slot.  Initializers without a runtime value only occupy the
// slot.
func (l *Lowerer) lowerVarInit(vdef *ast.VarDefinition) ([]ir.Node, error) {
	slot := l.frame.declare(vdef.Name())

	switch v := vdef.Value.(type) {
	case *ast.Number, *ast.String, *ast.Call:
		init, err := l.lowerOperand(v)
		if err != nil {
			return nil, err
		}

		store := fmt.Sprintf(
			"mov %s, %s",
			memOperand(l.plat.BasePointer(), slot, l.plat.WordSize()),
			l.plat.Accumulator(),
		)
		return []ir.Node{init, &ir.AsmLiteral{Text: store}}, nil
	case *ast.AsmMacro:
		lit, err := l.lowerAsm(v)
		if err != nil {
			return nil, err
		}

		return []ir.Node{lit}, nil
	}

	return nil, nil
}

// lowerOperand lowers an expression that leaves a value in the accumulator.
func (l *Lowerer) lowerOperand(node ast.Node) (ir.Node, error) {
	switch v := node.(type) {
	case *ast.Number:
		return &ir.AsmInt{Value: v.Value}, nil
	case *ast.String:
		return &ir.AsmString{Label: l.mod.Data.AddAuto(v.Value)}, nil
	case *ast.Call:
		call, err := l.lowerCall(v)
		if err != nil {
			return nil, err
		}

		return call, nil
	case *ast.Reference:
		return nil, report.Raise(report.KindLowering, v.Span(), "reference to `%s` cannot be used as a value", v.Name)
	}

	return nil, report.Raise(report.KindLowering, node.Span(), "expression of type `%s` cannot be used as a value", node.Type().Repr())
}

// lowerCall lowers a call.  The operands are checked against the callee's
// pattern unless the call has no operands.
func (l *Lowerer) lowerCall(call *ast.Call) (*ir.AsmCall, error) {
	target, ok := l.callables[call.Name]
	if !ok {
		return nil, report.Raise(report.KindLowering, call.Span(), "undefined callable `%s`", call.Name)
	}

	operands := make([]ir.Node, 0, len(call.Operands))
	for _, op := range call.Operands {
		lowered, err := l.lowerOperand(op)
		if err != nil {
			return nil, err
		}

		operands = append(operands, lowered)
	}

	if len(operands) > 0 {
		opTypes := make([]types.Type, len(operands))
		for i, op := range operands {
			opTypes[i] = op.Type()
		}

		if err := target.Pattern.Check(opTypes); err != nil {
			return nil, report.Raise(
				report.KindLowering,
				call.Span(),
				"operands of call to `%s` do not match pattern %s: %s",
				call.Name, target.Pattern, err,
			)
		}
	}

	return &ir.AsmCall{
		Target:     call.Name,
		ResultType: target.Body.Type(),
		Operands:   operands,
	}, nil
}
