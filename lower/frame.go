package lower

import "fmt"

// scope is one lexical scope of a stack frame: a mapping from local names to
// slot indices plus the next free slot.
type scope struct {
	slots  map[string]int
	next   int
	parent *scope
}

// StackFrame tracks the stack slots of a routine while it is being lowered.
// Slots are word-sized and indexed relative to the base pointer: slot `n` lives
// at byte offset `n * wordSize`.
type StackFrame struct {
	curr *scope

	// lowest is the lowest slot index allocated to a local variable.  It is
	// zero if the routine has no locals.
	lowest int
}

// newStackFrame creates a stack frame for a routine with the given parameter
// names.  Parameter `i` is placed in slot `-(i+2)` and locals continue the
// descending sequence below the parameters.
func newStackFrame(params []string) *StackFrame {
	f := &StackFrame{}
	f.pushScope()

	for i, name := range params {
		f.curr.slots[name] = -(i + 2)
	}
	f.curr.next = -(len(params) + 2)

	return f
}

// pushScope pushes a child scope.  The child allocates slots after those
// already allocated by its parent.
func (f *StackFrame) pushScope() {
	next := -2
	if f.curr != nil {
		next = f.curr.next
	}

	f.curr = &scope{slots: make(map[string]int), next: next, parent: f.curr}
}

// popScope pops the current scope.
func (f *StackFrame) popScope() {
	f.curr = f.curr.parent
}

// lookup finds the slot of a name, searching outward from the current scope.
func (f *StackFrame) lookup(name string) (int, bool) {
	for s := f.curr; s != nil; s = s.parent {
		if slot, ok := s.slots[name]; ok {
			return slot, true
		}
	}

	return 0, false
}

// declare allocates a slot for a local name in the current scope.  A name that
// already has a slot in this or an enclosing scope keeps that slot.
func (f *StackFrame) declare(name string) int {
	if slot, ok := f.lookup(name); ok {
		return slot
	}

	slot := f.curr.next
	f.curr.next--
	f.curr.slots[name] = slot

	if slot < f.lowest {
		f.lowest = slot
	}

	return slot
}

// reservedBytes returns the number of bytes to reserve below the base pointer
// so that every allocated local slot lies inside the frame.
func (f *StackFrame) reservedBytes(wordSize int) int {
	return -f.lowest * wordSize
}

// memOperand formats a slot as a base pointer relative memory operand.
func memOperand(bp string, slot, wordSize int) string {
	offset := slot * wordSize
	if offset < 0 {
		return fmt.Sprintf("[%s-%d]", bp, -offset)
	}

	return fmt.Sprintf("[%s+%d]", bp, offset)
}
