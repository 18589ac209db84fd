package ir

import (
	"brik/ast"
	"brik/types"
	"brik/util"
	"strings"
	"testing"
)

func TestDataSectionAutoLabels(t *testing.T) {
	ds := NewDataSection()

	first := ds.AddAuto("hi")
	second := ds.AddAuto("hi")
	if first != "auto_str_1" || second != "auto_str_2" {
		t.Errorf("AddAuto() labels = %s, %s; want auto_str_1, auto_str_2", first, second)
	}

	// an explicit label in the way of the counter is skipped
	if err := ds.Add("auto_str_3", "taken"); err != nil {
		t.Fatalf("Add() failed: %s", err)
	}

	if label := ds.AddAuto("next"); label != "auto_str_4" {
		t.Errorf("AddAuto() = %s; want auto_str_4", label)
	}

	if ds.Len() != 4 {
		t.Errorf("Len() = %d; want 4", ds.Len())
	}

	if text, ok := ds.Lookup("auto_str_2"); !ok || text != "hi" {
		t.Errorf("Lookup(\"auto_str_2\") = %q, %v", text, ok)
	}

	entries := ds.Entries()
	if entries[0].Label != "auto_str_1" || entries[3].Label != "auto_str_4" {
		t.Errorf("Entries() out of order: %v", entries)
	}
}

func TestDataSectionRejectsDuplicates(t *testing.T) {
	ds := NewDataSection()
	if err := ds.Add("msg", "a"); err != nil {
		t.Fatalf("Add() failed: %s", err)
	}

	if err := ds.Add("msg", "b"); err == nil {
		t.Errorf("Add() accepted a duplicate label")
	}

	if text, _ := ds.Lookup("msg"); text != "a" {
		t.Errorf("duplicate Add() replaced the entry text with %q", text)
	}
}

func TestModuleBlocks(t *testing.T) {
	m := NewModule()
	def := ast.NewCallDefinition("f", ast.NewBlock(nil, nil), nil, nil)

	if err := m.AddBlock(&AsmBlock{Label: "f"}, def); err != nil {
		t.Fatalf("AddBlock() failed: %s", err)
	}

	if err := m.AddBlock(&AsmBlock{Label: "f"}, def); err == nil {
		t.Errorf("AddBlock() accepted a duplicate label")
	}

	entry, ok := m.LookupBlock("f")
	if !ok || entry.Def != def {
		t.Errorf("LookupBlock(\"f\") = %v, %v", entry, ok)
	}

	if _, ok := m.LookupBlock("g"); ok {
		t.Errorf("LookupBlock(\"g\") should fail")
	}
}

func TestNodeTypes(t *testing.T) {
	call := &AsmCall{Target: "f", ResultType: types.String}
	block := &AsmBlock{Label: "main", Contents: []Node{&AsmInt{Value: 1}, call}}

	if !types.Equals(block.Type(), types.String) {
		t.Errorf("block type = %s; want string", block.Type().Repr())
	}

	if !types.Equals((&AsmBlock{}).Type(), types.Unknown) {
		t.Errorf("empty block should have unknown type")
	}

	text := util.Sprint("  ", block)
	for _, want := range []string{"AsmBlock main [", "  AsmInt 1", "  AsmCall f -> string []"} {
		if !strings.Contains(text, want) {
			t.Errorf("PrettyPrint() = %q; missing %q", text, want)
		}
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"print", "print"},
		{"+", "add"},
		{"my-func", "mysubfunc"},
		{"a*b/c", "amulbdivc"},
		{"%^&|", "centcaretamppipe"},
	}

	for _, tc := range tests {
		if got := SanitizeLabel(tc.name); got != tc.want {
			t.Errorf("SanitizeLabel(%q) = %q; want %q", tc.name, got, tc.want)
		}
	}
}
