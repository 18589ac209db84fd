package util

import "testing"

type node struct {
	name     string
	children []*node
}

func (n *node) PrettyPrint(p *Printer) {
	p.AppendLn(n.name + " (")
	p.Right()
	for _, c := range n.children {
		p.Print(c)
	}
	p.Left()
	p.AppendLn(")")
}

func TestPrinterIndents(t *testing.T) {
	tree := &node{name: "a", children: []*node{{name: "b"}, {name: "c", children: []*node{{name: "d"}}}}}

	want := "a (\n  b (\n  )\n  c (\n    d (\n    )\n  )\n)\n"
	if got := Sprint("  ", tree); got != want {
		t.Errorf("Sprint() = %q; want %q", got, want)
	}
}

func TestPrinterAppend(t *testing.T) {
	p := NewPrinter("\t")
	p.Right()
	p.Append("mov ")
	p.Append("rax, 1")
	p.AppendLn("")
	p.AppendLn("")
	p.AppendLn("ret")

	if want := "\tmov rax, 1\n\n\tret\n"; p.String() != want {
		t.Errorf("String() = %q; want %q", p.String(), want)
	}

	p.Left()
	p.Left()
	if p.Depth() != 0 {
		t.Errorf("Depth() = %d; want 0", p.Depth())
	}

	p.Right()
	p.Clear()
	if p.String() != "" || p.Depth() != 0 {
		t.Errorf("Clear() left %q at depth %d", p.String(), p.Depth())
	}
}
