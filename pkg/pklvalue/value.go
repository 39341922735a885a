package pklvalue

// Kind tags every variant in the closed Value sum, including the
// object-graph and metaobject variants implemented outside this package.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindDuration
	KindDataSize
	KindIntSeq
	KindRegex
	KindPair
	KindList
	KindSet
	KindMap
	KindDynamic
	KindTyped
	KindListing
	KindMapping
	KindFunction
	KindClass
	KindTypeAlias
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindBytes:
		return "Bytes"
	case KindDuration:
		return "Duration"
	case KindDataSize:
		return "DataSize"
	case KindIntSeq:
		return "IntSeq"
	case KindRegex:
		return "Regex"
	case KindPair:
		return "Pair"
	case KindList:
		return "List"
	case KindSet:
		return "Set"
	case KindMap:
		return "Map"
	case KindDynamic:
		return "Dynamic"
	case KindTyped:
		return "Typed"
	case KindListing:
		return "Listing"
	case KindMapping:
		return "Mapping"
	case KindFunction:
		return "Function"
	case KindClass:
		return "Class"
	case KindTypeAlias:
		return "TypeAlias"
	case KindReference:
		return "Reference"
	default:
		return "Unknown"
	}
}

// Value is the closed sum every Pkl runtime value belongs to. Primitives
// and value-typed variants (everything defined in this package) compare by
// value; Dynamic/Typed/Listing/Mapping/Function/Class/TypeAlias — defined
// in internal/object, internal/eval and internal/class — compare by
// identity.
type Value interface {
	// Kind reports which sum variant this value is.
	Kind() Kind

	// Equal reports value-equality (primitives/collections) or identity
	// (objects/functions/classes/typealiases) with other, per Kind's rules.
	Equal(other Value) bool

	// HashCode must be consistent with Equal: a.Equal(b) implies
	// a.HashCode() == b.HashCode().
	HashCode() uint64

	// Accept dispatches to the matching Visitor method.
	Accept(v Visitor) error

	// Export converts the value to a language-neutral structure suitable
	// for a host renderer.
	Export() Exported
}

// Object is implemented by the object-graph variants (Dynamic, Typed,
// Listing, Mapping), defined in internal/object. It is declared here only
// so Visitor.VisitObject and Reference's root value can be typed without
// this package importing internal/object.
type Object interface {
	Value
	ObjectKind() Kind // one of KindDynamic/KindTyped/KindListing/KindMapping

	// ReadMember returns a cached value, or the evaluated and newly
	// cached result of the member's body. The error is
	// CannotFindMember-shaped (internal/perr) when key has no member.
	ReadMember(key string) (Value, error)

	// Force evaluates every non-local/non-hidden/non-external/non-abstract/
	// non-deleted member, recursing into nested objects when recursive is
	// true.
	Force(allowUndef, recursive bool) error
}

// Callable is implemented by Function, defined in internal/eval.
type Callable interface {
	Value
	Arity() int
}

// ClassInfo is implemented by Class, defined in internal/class.
type ClassInfo interface {
	Value
	QualifiedName() string
}

// TypeAliasInfo is implemented by TypeAlias, defined in internal/class.
type TypeAliasInfo interface {
	Value
	QualifiedName() string
}

// Visitor is the converter-dispatch interface: one method per sum
// variant. External renderers implement it instead of type-switching on
// Value.
type Visitor interface {
	VisitNull(Null) error
	VisitBool(Bool) error
	VisitInt(Int) error
	VisitFloat(Float) error
	VisitString(String) error
	VisitBytes(Bytes) error
	VisitDuration(Duration) error
	VisitDataSize(DataSize) error
	VisitIntSeq(IntSeq) error
	VisitRegex(Regex) error
	VisitPair(Pair) error
	VisitList(List) error
	VisitSet(Set) error
	VisitMap(Map) error
	VisitReference(Reference) error
	VisitObject(Object) error
	VisitFunction(Callable) error
	VisitClass(ClassInfo) error
	VisitTypeAlias(TypeAliasInfo) error
}
