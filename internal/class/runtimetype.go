// Package class implements the Class/TypeAlias system and the runtime
// type-check protocol: the compiled counterpart of a pkg/ast.TypeNode,
// built once per owning class or method and reused on
// every read.
package class

import (
	"fmt"

	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

// RuntimeType is the compiled, checkable counterpart of a declared type
// (check/mirror/deep_copy).
type RuntimeType interface {
	// Check reports nil if value is accepted, else a CheckError describing
	// the rejection.
	Check(value pklvalue.Value) error
	// IsSubtypeOf reports whether every value accepted by this type is
	// also accepted by other.
	IsSubtypeOf(other RuntimeType) bool
	// Mirror returns a reflective description of the type, consumed by the
	// stdlib reflect module.
	Mirror() pklvalue.Value
	// DeepCopy clones the type node, used before typealias instantiation.
	DeepCopy() RuntimeType
}

// CheckError is returned by RuntimeType.Check when value is rejected.
type CheckError struct {
	Value pklvalue.Value
	Want  string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("expected value of type %s, got %s", e.Want, e.Value.Kind())
}

func reject(v pklvalue.Value, want string) error { return &CheckError{Value: v, Want: want} }

// --- Unknown / Nothing ---

type unknownType struct{}

func Unknown() RuntimeType { return unknownType{} }

func (unknownType) Check(pklvalue.Value) error             { return nil }
func (unknownType) IsSubtypeOf(RuntimeType) bool           { return true }
func (unknownType) Mirror() pklvalue.Value                 { return pklvalue.String("unknown") }
func (u unknownType) DeepCopy() RuntimeType                { return u }

type nothingType struct{}

func Nothing() RuntimeType { return nothingType{} }

func (nothingType) Check(v pklvalue.Value) error { return reject(v, "nothing") }
func (nothingType) IsSubtypeOf(other RuntimeType) bool {
	_, ok := other.(nothingType)
	return ok
}
func (nothingType) Mirror() pklvalue.Value { return pklvalue.String("nothing") }
func (n nothingType) DeepCopy() RuntimeType { return n }

// --- Nullable ---

type NullableType struct{ Inner RuntimeType }

func (t NullableType) Check(v pklvalue.Value) error {
	if v.Kind() == pklvalue.KindNull {
		return nil
	}
	return t.Inner.Check(v)
}

func (t NullableType) IsSubtypeOf(other RuntimeType) bool {
	if o, ok := other.(NullableType); ok {
		return t.Inner.IsSubtypeOf(o.Inner)
	}
	_, isUnknown := other.(unknownType)
	return isUnknown
}

func (t NullableType) Mirror() pklvalue.Value {
	return pklvalue.String(mirrorString(t.Inner) + "?")
}

func (t NullableType) DeepCopy() RuntimeType { return NullableType{Inner: t.Inner.DeepCopy()} }

// --- Constrained ---

// ConstraintFunc evaluates one constraint closure over `it` (the
// candidate value).
type ConstraintFunc func(it pklvalue.Value) (bool, error)

type ConstrainedType struct {
	Base        RuntimeType
	Constraints []ConstraintFunc
}

func (t ConstrainedType) Check(v pklvalue.Value) error {
	if err := t.Base.Check(v); err != nil {
		return err
	}
	for _, c := range t.Constraints {
		ok, err := c(v)
		if err != nil {
			return err
		}
		if !ok {
			return reject(v, "a value satisfying the declared constraint")
		}
	}
	return nil
}

func (t ConstrainedType) IsSubtypeOf(other RuntimeType) bool { return t.Base.IsSubtypeOf(other) }
func (t ConstrainedType) Mirror() pklvalue.Value             { return t.Base.Mirror() }
func (t ConstrainedType) DeepCopy() RuntimeType {
	return ConstrainedType{Base: t.Base.DeepCopy(), Constraints: append([]ConstraintFunc(nil), t.Constraints...)}
}

// --- Union ---

type UnionType struct{ Members []RuntimeType }

func (t UnionType) Check(v pklvalue.Value) error {
	var firstErr error
	for _, m := range t.Members {
		if err := m.Check(v); err == nil {
			return nil
		} else if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		return reject(v, "union")
	}
	return firstErr
}

func (t UnionType) IsSubtypeOf(other RuntimeType) bool {
	for _, m := range t.Members {
		if !m.IsSubtypeOf(other) {
			return false
		}
	}
	return true
}

func (t UnionType) Mirror() pklvalue.Value {
	s := ""
	for i, m := range t.Members {
		if i > 0 {
			s += "|"
		}
		s += mirrorString(m)
	}
	return pklvalue.String(s)
}

func (t UnionType) DeepCopy() RuntimeType {
	members := make([]RuntimeType, len(t.Members))
	for i, m := range t.Members {
		members[i] = m.DeepCopy()
	}
	return UnionType{Members: members}
}

// --- UnionOfStringLiterals / StringLiteral ---

type StringLiteralSetType struct{ Literals map[string]struct{} }

func NewStringLiteralSet(literals ...string) StringLiteralSetType {
	set := make(map[string]struct{}, len(literals))
	for _, l := range literals {
		set[l] = struct{}{}
	}
	return StringLiteralSetType{Literals: set}
}

func (t StringLiteralSetType) Check(v pklvalue.Value) error {
	s, ok := v.(pklvalue.String)
	if !ok {
		return reject(v, "string literal")
	}
	if _, ok := t.Literals[string(s)]; !ok {
		return reject(v, "one of a finite set of string literals")
	}
	return nil
}

func (t StringLiteralSetType) IsSubtypeOf(other RuntimeType) bool {
	o, ok := other.(StringLiteralSetType)
	if !ok {
		_, isUnknown := other.(unknownType)
		return isUnknown
	}
	for l := range t.Literals {
		if _, ok := o.Literals[l]; !ok {
			return false
		}
	}
	return true
}

func (t StringLiteralSetType) Mirror() pklvalue.Value { return pklvalue.String("string literal set") }
func (t StringLiteralSetType) DeepCopy() RuntimeType   { return t }

type StringLiteralType struct{ Value string }

func (t StringLiteralType) Check(v pklvalue.Value) error {
	s, ok := v.(pklvalue.String)
	if !ok || string(s) != t.Value {
		return reject(v, fmt.Sprintf("the string literal %q", t.Value))
	}
	return nil
}

func (t StringLiteralType) IsSubtypeOf(other RuntimeType) bool {
	if o, ok := other.(StringLiteralType); ok {
		return t.Value == o.Value
	}
	if o, ok := other.(StringLiteralSetType); ok {
		_, in := o.Literals[t.Value]
		return in
	}
	_, isUnknown := other.(unknownType)
	return isUnknown
}

func (t StringLiteralType) Mirror() pklvalue.Value { return pklvalue.String(fmt.Sprintf("%q", t.Value)) }
func (t StringLiteralType) DeepCopy() RuntimeType   { return t }

// --- Function ---

type FunctionRuntimeType struct {
	Params []RuntimeType
	Return RuntimeType
}

func (t FunctionRuntimeType) Check(v pklvalue.Value) error {
	fn, ok := v.(pklvalue.Callable)
	if !ok || fn.Arity() != len(t.Params) {
		return reject(v, "a function")
	}
	return nil
}

func (t FunctionRuntimeType) IsSubtypeOf(other RuntimeType) bool {
	o, ok := other.(FunctionRuntimeType)
	if !ok {
		_, isUnknown := other.(unknownType)
		return isUnknown
	}
	if len(t.Params) != len(o.Params) {
		return false
	}
	for i := range t.Params {
		if !o.Params[i].IsSubtypeOf(t.Params[i]) { // contravariant in parameters
			return false
		}
	}
	return t.Return.IsSubtypeOf(o.Return) // covariant in return
}

func (t FunctionRuntimeType) Mirror() pklvalue.Value { return pklvalue.String("function") }
func (t FunctionRuntimeType) DeepCopy() RuntimeType {
	params := make([]RuntimeType, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.DeepCopy()
	}
	return FunctionRuntimeType{Params: params, Return: t.Return.DeepCopy()}
}

// --- TypeVariable (unsubstituted; only reachable within a generic class
// body before an object is specialized — see DESIGN.md's class-generics
// simplification) ---

type TypeVariableType struct{ Index int }

func (TypeVariableType) Check(pklvalue.Value) error            { return nil }
func (t TypeVariableType) IsSubtypeOf(other RuntimeType) bool {
	o, ok := other.(TypeVariableType)
	return ok && o.Index == t.Index
}
func (t TypeVariableType) Mirror() pklvalue.Value { return pklvalue.String("type variable") }
func (t TypeVariableType) DeepCopy() RuntimeType   { return t }

func mirrorString(t RuntimeType) string {
	if s, ok := t.Mirror().(pklvalue.String); ok {
		return string(s)
	}
	return "?"
}
