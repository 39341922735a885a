package class

import (
	"fmt"

	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

// Resolver looks up a class or typealias by qualified name, supplied by
// internal/modcache (the module cache owns the namespace of realized
// classes/typealiases across a module and its imports).
type Resolver interface {
	ResolveClass(qualifiedName string) (*Class, bool)
	ResolveTypeAlias(qualifiedName string) (*TypeAlias, bool)
}

// ErrUnresolvedReference is returned by Compile when a ClassRef/TypeAliasRef
// names something the resolver doesn't know.
type ErrUnresolvedReference struct{ QualifiedName string }

func (e *ErrUnresolvedReference) Error() string {
	return fmt.Sprintf("cannot resolve type %q", e.QualifiedName)
}

var intAliasNames = map[string]bool{
	"Int8": true, "Int16": true, "Int32": true,
	"UInt8": true, "UInt16": true, "UInt32": true, "UInt": true,
}

// Compile turns a parsed declared-type syntax node into a checkable
// RuntimeType, resolving class/typealias references through resolver. It
// is called once per owning class/method during initialization;
// the result is cached on the PropertyDef/MethodDef, never recompiled.
func Compile(node *ast.TypeNode, resolver Resolver) (RuntimeType, error) {
	if node == nil {
		return Unknown(), nil
	}
	switch node.Kind {
	case ast.KindClassRef:
		if intAliasNames[node.QualifiedName] {
			return IntAliasType{Name: node.QualifiedName}, nil
		}
		c, ok := resolver.ResolveClass(node.QualifiedName)
		if !ok {
			return nil, &ErrUnresolvedReference{QualifiedName: node.QualifiedName}
		}
		args, err := compileAll(node.TypeArguments, resolver)
		if err != nil {
			return nil, err
		}
		return ClassType{Class: c, Args: args}, nil

	case ast.KindTypeAliasRef:
		a, ok := resolver.ResolveTypeAlias(node.QualifiedName)
		if !ok {
			return nil, &ErrUnresolvedReference{QualifiedName: node.QualifiedName}
		}
		args, err := compileAll(node.TypeArguments, resolver)
		if err != nil {
			return nil, err
		}
		return aliasType{alias: a, args: args}, nil

	case ast.KindNullable:
		inner, err := Compile(node.Inner, resolver)
		if err != nil {
			return nil, err
		}
		return NullableType{Inner: inner}, nil

	case ast.KindConstrained:
		inner, err := Compile(node.Inner, resolver)
		if err != nil {
			return nil, err
		}
		constraints := make([]ConstraintFunc, len(node.Constraints))
		for i, expr := range node.Constraints {
			expr := expr
			constraints[i] = func(it pklvalue.Value) (bool, error) {
				result, err := expr.ExecuteGeneric(&ast.Frame{ItValue: it})
				if err != nil {
					return false, err
				}
				b, ok := result.(pklvalue.Bool)
				if !ok {
					return false, fmt.Errorf("constraint expression must evaluate to a Boolean")
				}
				return bool(b), nil
			}
		}
		return ConstrainedType{Base: inner, Constraints: constraints}, nil

	case ast.KindUnion:
		members, err := compileAll(node.Members, resolver)
		if err != nil {
			return nil, err
		}
		return UnionType{Members: members}, nil

	case ast.KindUnionOfStringLiterals:
		return NewStringLiteralSet(node.StringLiterals...), nil

	case ast.KindStringLiteral:
		return StringLiteralType{Value: node.Literal}, nil

	case ast.KindUnknown:
		return Unknown(), nil

	case ast.KindNothing:
		return Nothing(), nil

	case ast.KindTypeVariable:
		return TypeVariableType{Index: node.VariableIndex}, nil

	case ast.KindFunction:
		params, err := compileAll(node.Params, resolver)
		if err != nil {
			return nil, err
		}
		ret, err := Compile(node.Return, resolver)
		if err != nil {
			return nil, err
		}
		return FunctionRuntimeType{Params: params, Return: ret}, nil

	default:
		return nil, fmt.Errorf("class: unknown type node kind %d", node.Kind)
	}
}

func compileAll(nodes []*ast.TypeNode, resolver Resolver) ([]RuntimeType, error) {
	out := make([]RuntimeType, len(nodes))
	for i, n := range nodes {
		t, err := Compile(n, resolver)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// runtimeTypeToSyntax renders a compiled RuntimeType back to syntax, used
// only to feed concrete type arguments into ast.Substitute when a
// typealias is instantiated with already-compiled arguments (the common
// case: arguments come from a declared type annotation already compiled
// by the caller). Variants with no direct syntax shape fall back to
// Unknown — acceptable because Substitute only needs a standalone
// replacement node, never a node used for further compilation.
func runtimeTypeToSyntax(t RuntimeType) *ast.TypeNode {
	switch v := t.(type) {
	case ClassType:
		return ast.ClassRef(v.Class.QualifiedName())
	case IntAliasType:
		return ast.ClassRef(v.Name)
	case aliasType:
		return ast.TypeAliasRef(v.alias.QualifiedName())
	case NullableType:
		return ast.Nullable(runtimeTypeToSyntax(v.Inner))
	case StringLiteralType:
		return ast.StringLiteralType(v.Value)
	case unknownType:
		return ast.Unknown()
	case nothingType:
		return ast.Nothing()
	default:
		return ast.Unknown()
	}
}
