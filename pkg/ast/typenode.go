package ast

// TypeKind tags the variant of a declared-type syntax node (a closed
// TypeNode sum, at the syntax level — internal/class compiles a TypeNode
// into a checkable runtime type once, when the owning class or method is
// initialized).
type TypeKind uint8

const (
	KindClassRef TypeKind = iota
	KindTypeAliasRef
	KindNullable
	KindConstrained
	KindUnion
	KindUnionOfStringLiterals
	KindStringLiteral
	KindUnknown
	KindNothing
	KindTypeVariable
	KindFunction
)

// TypeNode is the parser's syntax for a declared type. Only the fields
// relevant to Kind are set; internal/class.Compile reads them once per
// owning class/method and produces a checkable runtime type.
type TypeNode struct {
	Kind TypeKind

	// KindClassRef / KindTypeAliasRef
	QualifiedName string
	TypeArguments []*TypeNode

	// KindNullable / KindConstrained
	Inner *TypeNode

	// KindConstrained: boolean-returning closures over `it`
	Constraints []ExpressionNode

	// KindUnion
	Members []*TypeNode

	// KindUnionOfStringLiterals
	StringLiterals []string

	// KindStringLiteral
	Literal string

	// KindTypeVariable
	VariableIndex int

	// KindFunction
	Params []*TypeNode
	Return *TypeNode

	Section SourceSection
}

// ClassRef builds a TypeNode referencing a class (or a special-cased
// stdlib int alias, represented as an ordinary class reference) by
// qualified name, with optional type arguments for generic classes.
func ClassRef(qualifiedName string, args ...*TypeNode) *TypeNode {
	return &TypeNode{Kind: KindClassRef, QualifiedName: qualifiedName, TypeArguments: args}
}

// TypeAliasRef builds a TypeNode referencing a typealias by qualified name.
func TypeAliasRef(qualifiedName string, args ...*TypeNode) *TypeNode {
	return &TypeNode{Kind: KindTypeAliasRef, QualifiedName: qualifiedName, TypeArguments: args}
}

// Nullable builds `inner?`.
func Nullable(inner *TypeNode) *TypeNode { return &TypeNode{Kind: KindNullable, Inner: inner} }

// Constrained builds `inner(constraints...)`.
func Constrained(inner *TypeNode, constraints ...ExpressionNode) *TypeNode {
	return &TypeNode{Kind: KindConstrained, Inner: inner, Constraints: constraints}
}

// Union builds `members[0] | members[1] | ...`.
func Union(members ...*TypeNode) *TypeNode { return &TypeNode{Kind: KindUnion, Members: members} }

// UnionOfStringLiterals builds a finite string-literal union.
func UnionOfStringLiterals(literals ...string) *TypeNode {
	return &TypeNode{Kind: KindUnionOfStringLiterals, StringLiterals: literals}
}

// StringLiteralType builds a single string-literal type.
func StringLiteralType(value string) *TypeNode {
	return &TypeNode{Kind: KindStringLiteral, Literal: value}
}

// Unknown builds the `unknown` type, which accepts every value.
func Unknown() *TypeNode { return &TypeNode{Kind: KindUnknown} }

// Nothing builds the `nothing` type, which accepts no value.
func Nothing() *TypeNode { return &TypeNode{Kind: KindNothing} }

// TypeVariable builds a reference to the index-th type parameter of the
// enclosing class or typealias.
func TypeVariable(index int) *TypeNode { return &TypeNode{Kind: KindTypeVariable, VariableIndex: index} }

// FunctionType builds a function type `(params...) -> ret`.
func FunctionType(ret *TypeNode, params ...*TypeNode) *TypeNode {
	return &TypeNode{Kind: KindFunction, Params: params, Return: ret}
}

// DeepCopy clones n and its whole subtree, used for typealias
// instantiation before type-variable substitution.
func (n *TypeNode) DeepCopy() *TypeNode {
	if n == nil {
		return nil
	}
	cp := *n
	cp.TypeArguments = copyNodes(n.TypeArguments)
	cp.Inner = n.Inner.DeepCopy()
	cp.Members = copyNodes(n.Members)
	cp.Params = copyNodes(n.Params)
	cp.Return = n.Return.DeepCopy()
	cp.StringLiterals = append([]string(nil), n.StringLiterals...)
	cp.Constraints = append([]ExpressionNode(nil), n.Constraints...)
	return &cp
}

func copyNodes(ns []*TypeNode) []*TypeNode {
	if ns == nil {
		return nil
	}
	out := make([]*TypeNode, len(ns))
	for i, n := range ns {
		out[i] = n.DeepCopy()
	}
	return out
}

// Substitute walks a deep copy of n, replacing each TypeVariable(i) with
// args[i] (or Unknown() if i is out of range), per typealias
// instantiation.
func Substitute(n *TypeNode, args []*TypeNode) *TypeNode {
	cp := n.DeepCopy()
	substituteInPlace(cp, args)
	return cp
}

func substituteInPlace(n *TypeNode, args []*TypeNode) {
	if n == nil {
		return
	}
	if n.Kind == KindTypeVariable {
		var repl *TypeNode
		if n.VariableIndex >= 0 && n.VariableIndex < len(args) {
			repl = args[n.VariableIndex]
		} else {
			repl = Unknown()
		}
		*n = *repl
		return
	}
	substituteInPlace(n.Inner, args)
	substituteInPlace(n.Return, args)
	for _, a := range n.TypeArguments {
		substituteInPlace(a, args)
	}
	for _, m := range n.Members {
		substituteInPlace(m, args)
	}
	for _, p := range n.Params {
		substituteInPlace(p, args)
	}
}
