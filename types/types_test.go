package types

import (
	"strings"
	"testing"
)

func TestEquals(t *testing.T) {
	tests := []struct {
		a, b Type
		want bool
	}{
		{Int, Int, true},
		{Int, String, false},
		{NewRef(Int), NewRef(Int), true},
		{NewRef(Int), NewList(Int), false},
		{NewList(NewRef(String)), NewList(NewRef(String)), true},
		{NewList(NewRef(String)), NewList(NewRef(Int)), false},
		{&UserDefinedType{Name: "point"}, &UserDefinedType{Name: "point"}, true},
		{&UserDefinedType{Name: "point"}, &UserDefinedType{Name: "line"}, false},
		{Unknown, Void, false},
		{nil, nil, true},
		{nil, Int, false},
	}

	for _, tc := range tests {
		if got := Equals(tc.a, tc.b); got != tc.want {
			t.Errorf("Equals(%v, %v) = %v; want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestLookupName(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"int", Int},
		{"INT", Int},
		{"String", String},
		{"unknown", Unknown},
		{"call", Call},
		{"void", Void},
		{"struct", Struct},
		{"ref", NewRef(Unknown)},
		{"list", NewList(Unknown)},
	}

	for _, tc := range tests {
		got, ok := LookupName(tc.name)
		if !ok || !Equals(got, tc.want) {
			t.Errorf("LookupName(%q) = %v, %v; want %v", tc.name, got, ok, tc.want)
		}
	}

	if _, ok := LookupName("float"); ok {
		t.Errorf("LookupName(\"float\") should fail")
	}
}

func TestRepr(t *testing.T) {
	if got := NewList(NewRef(Int)).Repr(); got != "list(ref(int))" {
		t.Errorf("Repr() = %q; want \"list(ref(int))\"", got)
	}

	if got := (&UserDefinedType{Name: "point"}).Repr(); got != "user(point)" {
		t.Errorf("Repr() = %q; want \"user(point)\"", got)
	}
}

func TestPatternCheck(t *testing.T) {
	pat, err := NewPattern(Param{Name: "n", Type: Int}, Param{Name: "s", Type: String})
	if err != nil {
		t.Fatalf("NewPattern() failed: %s", err)
	}

	tests := []struct {
		operands []Type
		wantErr  string
	}{
		{[]Type{Int, String}, ""},
		{[]Type{Int}, "expected 2 operands but got 1"},
		{[]Type{Int, String, Int}, "expected 2 operands but got 3"},
		{[]Type{String, String}, "operand 1 (`n`) must be of type `int`"},
		{[]Type{Int, Int}, "operand 2 (`s`) must be of type `string`"},
	}

	for _, tc := range tests {
		err := pat.Check(tc.operands)
		if tc.wantErr == "" {
			if err != nil {
				t.Errorf("Check(%v) failed: %s", tc.operands, err)
			}
		} else if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
			t.Errorf("Check(%v) = %v; want error containing %q", tc.operands, err, tc.wantErr)
		}
	}
}

func TestPatternUnknownIsExact(t *testing.T) {
	pat, err := NewPattern(Param{Name: "x", Type: Unknown}, Param{Name: "y"})
	if err != nil {
		t.Fatalf("NewPattern() failed: %s", err)
	}

	if got := pat.String(); got != "<x: unknown y: unknown>" {
		t.Errorf("String() = %q", got)
	}

	// an omitted type only matches operands of unknown type
	if err := pat.Check([]Type{Unknown, Unknown}); err != nil {
		t.Errorf("Check() failed: %s", err)
	}

	tests := [][]Type{
		{String, Unknown},
		{Unknown, Int},
		{NewRef(Unknown), Unknown},
	}

	for _, operands := range tests {
		if err := pat.Check(operands); err == nil {
			t.Errorf("Check(%v) accepted a non-unknown operand", operands)
		}
	}
}

func TestPatternCompoundTypes(t *testing.T) {
	pat, _ := NewPattern(Param{Name: "xs", Type: NewList(Int)})

	if err := pat.Check([]Type{NewList(Int)}); err != nil {
		t.Errorf("Check() failed: %s", err)
	}

	if err := pat.Check([]Type{NewList(String)}); err == nil {
		t.Errorf("Check() accepted list(string) for list(int)")
	}
}

func TestPatternDuplicateParams(t *testing.T) {
	if _, err := NewPattern(Param{Name: "a", Type: Int}, Param{Name: "a", Type: String}); err == nil {
		t.Errorf("NewPattern() accepted duplicate parameter names")
	}
}

func TestPatternParamsIsCopy(t *testing.T) {
	pat, _ := NewPattern(Param{Name: "a", Type: Int})
	params := pat.Params()
	params[0].Name = "b"

	if pat.At(0).Name != "a" {
		t.Errorf("mutating Params() changed the pattern")
	}

	if i, ok := pat.Lookup("a"); !ok || i != 0 {
		t.Errorf("Lookup(\"a\") = %d, %v", i, ok)
	}

	if EmptyPattern().Len() != 0 {
		t.Errorf("EmptyPattern() has parameters")
	}
}
