package types

import "strings"

// Type represents a brik data type.  The set of types is closed: every type is
// a PrimitiveType, a *CompoundType or a *UserDefinedType.
type Type interface {
	// Kind returns the tag of the type.
	Kind() Kind

	// Repr returns the representative string for this type.
	Repr() string

	// equals returns whether this type is structurally equal to other.
	equals(other Type) bool
}

// Kind is the tag of a type.
type Kind int

// Enumeration of type kinds.
const (
	KindUnknown Kind = iota
	KindVoid
	KindUserDefined
	KindRef
	KindList
	KindStruct
	KindCall
	KindInt
	KindString
)

var kindNames = map[Kind]string{
	KindUnknown:     "unknown",
	KindVoid:        "void",
	KindUserDefined: "user",
	KindRef:         "ref",
	KindList:        "list",
	KindStruct:      "struct",
	KindCall:        "call",
	KindInt:         "int",
	KindString:      "string",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Equals returns whether a and b are structurally equal types.
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.equals(b)
}

// -----------------------------------------------------------------------------

// PrimitiveType is a type that carries no data other than its kind.
type PrimitiveType Kind

// The primitive types.  Struct is reserved: it is part of the vocabulary but
// carries no fields or layout.
const (
	Unknown = PrimitiveType(KindUnknown)
	Void    = PrimitiveType(KindVoid)
	Struct  = PrimitiveType(KindStruct)
	Call    = PrimitiveType(KindCall)
	Int     = PrimitiveType(KindInt)
	String  = PrimitiveType(KindString)
)

func (pt PrimitiveType) Kind() Kind {
	return Kind(pt)
}

func (pt PrimitiveType) Repr() string {
	return Kind(pt).String()
}

func (pt PrimitiveType) equals(other Type) bool {
	if opt, ok := other.(PrimitiveType); ok {
		return pt == opt
	}

	return false
}

// -----------------------------------------------------------------------------

// CompoundType is a type that wraps exactly one inner type: a reference or a
// list.
type CompoundType struct {
	outer Kind

	// The wrapped type.
	Inner Type
}

// NewRef returns a reference to the inner type.
func NewRef(inner Type) *CompoundType {
	return &CompoundType{outer: KindRef, Inner: inner}
}

// NewList returns a list of the inner type.
func NewList(inner Type) *CompoundType {
	return &CompoundType{outer: KindList, Inner: inner}
}

func (ct *CompoundType) Kind() Kind {
	return ct.outer
}

func (ct *CompoundType) Repr() string {
	return ct.outer.String() + "(" + ct.Inner.Repr() + ")"
}

func (ct *CompoundType) equals(other Type) bool {
	if oct, ok := other.(*CompoundType); ok {
		return ct.outer == oct.outer && Equals(ct.Inner, oct.Inner)
	}

	return false
}

// -----------------------------------------------------------------------------

// UserDefinedType is a named type declared by the user.
type UserDefinedType struct {
	Name string
}

func (ut *UserDefinedType) Kind() Kind {
	return KindUserDefined
}

func (ut *UserDefinedType) Repr() string {
	return "user(" + ut.Name + ")"
}

func (ut *UserDefinedType) equals(other Type) bool {
	if out, ok := other.(*UserDefinedType); ok {
		return ut.Name == out.Name
	}

	return false
}

// -----------------------------------------------------------------------------

// LookupName resolves a type name from the fixed type vocabulary.  The lookup
// is case-insensitive.  `ref` and `list` name compound types over Unknown.
func LookupName(name string) (Type, bool) {
	switch strings.ToLower(name) {
	case "unknown":
		return Unknown, true
	case "void":
		return Void, true
	case "struct":
		return Struct, true
	case "call":
		return Call, true
	case "int":
		return Int, true
	case "string":
		return String, true
	case "ref":
		return NewRef(Unknown), true
	case "list":
		return NewList(Unknown), true
	}

	return nil, false
}
