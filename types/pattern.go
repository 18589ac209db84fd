package types

import (
	"fmt"
	"strings"
)

// Param is a single named, typed parameter of a pattern.
type Param struct {
	Name string
	Type Type
}

// Pattern is an ordered parameter list describing how a callable must be
// called.  Parameter order defines both the left-to-right calling order and the
// stack layout of the arguments.  An empty pattern takes no arguments.
type Pattern struct {
	params []Param
}

// NewPattern creates a new pattern from a list of parameters.  It returns an
// error if two parameters share a name.
func NewPattern(params ...Param) (*Pattern, error) {
	p := &Pattern{params: make([]Param, 0, len(params))}

	for _, param := range params {
		if _, ok := p.Lookup(param.Name); ok {
			return nil, fmt.Errorf("multiple parameters named `%s`", param.Name)
		}

		if param.Type == nil {
			param.Type = Unknown
		}

		p.params = append(p.params, param)
	}

	return p, nil
}

// EmptyPattern returns a new pattern that takes no arguments.
func EmptyPattern() *Pattern {
	return &Pattern{}
}

// Len returns the number of parameters.
func (p *Pattern) Len() int {
	return len(p.params)
}

// Params returns a copy of the pattern's parameters in order.
func (p *Pattern) Params() []Param {
	return append([]Param(nil), p.params...)
}

// At returns the parameter at position i.
func (p *Pattern) At(i int) Param {
	return p.params[i]
}

// Lookup returns the position of the parameter with the given name.
func (p *Pattern) Lookup(name string) (int, bool) {
	for i, param := range p.params {
		if param.Name == name {
			return i, true
		}
	}

	return -1, false
}

// Check validates the types of a call's operands against the pattern.  The
// operand count must match exactly and each operand must be structurally
// equal to the declared type of its position.
func (p *Pattern) Check(operands []Type) error {
	if len(operands) != len(p.params) {
		return fmt.Errorf("expected %d operands but got %d", len(p.params), len(operands))
	}

	for i, param := range p.params {
		if !Equals(param.Type, operands[i]) {
			return fmt.Errorf(
				"operand %d (`%s`) must be of type `%s` but is of type `%s`",
				i+1, param.Name, param.Type.Repr(), operands[i].Repr(),
			)
		}
	}

	return nil
}

func (p *Pattern) String() string {
	args := make([]string, len(p.params))
	for i, param := range p.params {
		args[i] = param.Name + ": " + param.Type.Repr()
	}

	return "<" + strings.Join(args, " ") + ">"
}
