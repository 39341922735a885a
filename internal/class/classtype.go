package class

import (
	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

// ClassType is the compiled form of a Class(arg types) TypeNode. Check
// accepts any Object/value whose runtime class isSubclassOf Class.
type ClassType struct {
	Class *Class
	Args  []RuntimeType
}

// ClassOf is implemented by object-graph values that know their own Class
// (Typed instances); primitive Values answer via classNameFor below.
type ClassOf interface {
	ValueClass() *Class
}

// numericAncestors lists, for each primitive numeric Kind's stdlib class,
// the bare-name ancestors a ClassType target may legally name without a
// full Class hierarchy walk (scalars don't carry a *Class pointer).
var numericAncestors = map[string][]string{
	"Int":   {"Int", "Number", "Any"},
	"Float": {"Float", "Number", "Any"},
}

func (t ClassType) Check(v pklvalue.Value) error {
	if co, ok := v.(ClassOf); ok {
		if co.ValueClass().IsSubclassOf(t.Class) {
			return nil
		}
		return reject(v, t.Class.QualifiedName())
	}
	name := classNameForKind(v.Kind())
	if t.Class.simpleName == "Any" || name == t.Class.simpleName {
		return nil
	}
	for _, ancestor := range numericAncestors[name] {
		if ancestor == t.Class.simpleName {
			return nil
		}
	}
	return reject(v, t.Class.QualifiedName())
}

func (t ClassType) IsSubtypeOf(other RuntimeType) bool {
	switch o := other.(type) {
	case ClassType:
		if !t.Class.IsSubclassOf(o.Class) {
			return false
		}
		if len(t.Args) != len(o.Args) {
			return len(o.Args) == 0
		}
		for i := range t.Args {
			variance := ast.Invariant
			if i < len(t.Class.typeParams) {
				variance = t.Class.typeParams[i].Variance
			}
			if !checkVariance(variance, t.Args[i], o.Args[i]) {
				return false
			}
		}
		return true
	case unknownType:
		return true
	default:
		return false
	}
}

func checkVariance(v ast.Variance, sub, super RuntimeType) bool {
	switch v {
	case ast.In: // contravariant
		return super.IsSubtypeOf(sub)
	case ast.Out: // covariant
		return sub.IsSubtypeOf(super)
	default: // invariant
		return sub.IsSubtypeOf(super) && super.IsSubtypeOf(sub)
	}
}

func (t ClassType) Mirror() pklvalue.Value { return pklvalue.String(t.Class.QualifiedName()) }
func (t ClassType) DeepCopy() RuntimeType {
	args := make([]RuntimeType, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.DeepCopy()
	}
	return ClassType{Class: t.Class, Args: args}
}

// classNameForKind maps a primitive/collection Kind to the stdlib class
// name that a bare ClassType (no ClassOf receiver) is checked against,
// letting e.g. `x: String` type-check a pklvalue.String without every
// scalar value needing to carry a *Class pointer.
func classNameForKind(k pklvalue.Kind) string {
	switch k {
	case pklvalue.KindNull:
		return "Null"
	case pklvalue.KindBool:
		return "Boolean"
	case pklvalue.KindInt:
		return "Int"
	case pklvalue.KindFloat:
		return "Float"
	case pklvalue.KindString:
		return "String"
	case pklvalue.KindBytes:
		return "Bytes"
	case pklvalue.KindDuration:
		return "Duration"
	case pklvalue.KindDataSize:
		return "DataSize"
	case pklvalue.KindIntSeq:
		return "IntSeq"
	case pklvalue.KindRegex:
		return "Regex"
	case pklvalue.KindPair:
		return "Pair"
	case pklvalue.KindList:
		return "List"
	case pklvalue.KindSet:
		return "Set"
	case pklvalue.KindMap:
		return "Map"
	default:
		return k.String()
	}
}

// intAliasLattice encodes the stdlib integer-alias subtype invariant:
// Int8 <: Int16 <: Int32; UInt8 <: {Int16, Int32, UInt16, UInt32, UInt};
// UInt16 <: {Int32, UInt32, UInt}; UInt32 <: UInt. Special-cased rather
// than modeled as ordinary single-superclass Class nodes because several
// of these aliases have more than one immediate supertype.
var intAliasLattice = map[string][]string{
	"Int8":   {"Int16"},
	"Int16":  {"Int32"},
	"Int32":  {},
	"UInt8":  {"Int16", "Int32", "UInt16", "UInt32", "UInt"},
	"UInt16": {"Int32", "UInt32", "UInt"},
	"UInt32": {"UInt"},
	"UInt":   {},
}

// IntAliasType is the compiled form of one of the stdlib bounded-integer
// aliases.
type IntAliasType struct{ Name string }

func (t IntAliasType) Check(v pklvalue.Value) error {
	if v.Kind() == pklvalue.KindInt {
		return nil
	}
	return reject(v, t.Name)
}

func (t IntAliasType) IsSubtypeOf(other RuntimeType) bool {
	switch o := other.(type) {
	case IntAliasType:
		if t.Name == o.Name {
			return true
		}
		return intAliasReaches(t.Name, o.Name)
	case ClassType:
		// Any int alias is assignable to any class <= Number.
		return o.Class.simpleName == "Number" || o.Class.simpleName == "Any" || o.Class.simpleName == "Int"
	case unknownType:
		return true
	default:
		return false
	}
}

func intAliasReaches(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range intAliasLattice[from] {
		if intAliasReaches(next, to) {
			return true
		}
	}
	return false
}

func (t IntAliasType) Mirror() pklvalue.Value { return pklvalue.String(t.Name) }
func (t IntAliasType) DeepCopy() RuntimeType   { return t }
