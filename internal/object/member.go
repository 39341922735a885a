// Package object implements the object graph: Dynamic, Typed, Listing and
// Mapping values, their shared amend-chain/memoization core, and the
// definition-key/reference-key deletion bookkeeping.
package object

import (
	"github.com/pkl-community/pklcore/internal/class"
	"github.com/pkl-community/pklcore/internal/ident"
	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

// Kind tags what a Member binds: a named property, a keyed entry (Mapping),
// or a positional element (Listing).
type Kind uint8

const (
	PropertyMember Kind = iota
	EntryMember
	ElementMember
)

// Member is a single definition attached to an object at one amend-chain
// level.
type Member struct {
	Kind Kind

	Property *ident.Identifier // set when Kind == PropertyMember; flavor carries locality
	EntryKey pklvalue.Value    // set when Kind == EntryMember
	DefKey   int               // set when Kind == ElementMember: raw, chain-wide position

	Modifiers    ast.Modifiers
	DeclaredType class.RuntimeType // nil if undeclared
	Body         ast.ExpressionNode

	// ReceiverOverride, when set, is the Frame.Receiver a read of this
	// member uses instead of the owning object — how a converted object's
	// synthesized properties (class.TypedToDynamicMembers and friends)
	// delegate reads back to the object they were converted from.
	ReceiverOverride pklvalue.Object
}

// InternProperty resolves the pool identifier for a property named name,
// drawing from the local-property pool when modifiers marks it local. A
// local override and a same-named regular property at another amend level
// are then distinct identities even though both are keyed by "name" in
// ownProperties, matching internal/ident's pool-per-flavor design.
func InternProperty(modifiers ast.Modifiers, name string) *ident.Identifier {
	if modifiers.Has(ast.Local) {
		return ident.Global.LocalProperty(name)
	}
	return ident.Global.Get(name)
}

// PropertyName returns m's plain property name. Valid when Kind == PropertyMember.
func (m *Member) PropertyName() string { return m.Property.Name() }

func (m *Member) isLocal() bool {
	if m.Kind == PropertyMember {
		return m.Property.IsLocal()
	}
	return m.Modifiers.Has(ast.Local)
}

// displayName is the human-readable identifier used in diagnostics,
// distinct from cacheKey's collision-avoidance prefixing.
func (m *Member) displayName() string {
	switch m.Kind {
	case PropertyMember:
		return m.Property.Name()
	case EntryMember:
		return keyString(m.EntryKey)
	default:
		return "[" + itoa(m.DefKey) + "]"
	}
}

// cacheKey is the string memoization/lookup key for a Member, stable
// across amend levels so a child's read of an inherited member hits the
// same cache slot semantics as the level that defines it.
func (m *Member) cacheKey() string {
	switch m.Kind {
	case PropertyMember:
		return "p:" + m.Property.Name()
	case EntryMember:
		return "k:" + keyString(m.EntryKey)
	default:
		return "e:" + itoa(m.DefKey)
	}
}

// memberKey is the value threaded through ast.Frame.MemberKey for m: the
// interned identifier for a property (so a frame can tell a local override
// from a regular member of the same name), or the entry key/element
// definition index otherwise.
func (m *Member) memberKey() any {
	switch m.Kind {
	case PropertyMember:
		return m.Property
	case EntryMember:
		return m.EntryKey
	default:
		return m.DefKey
	}
}
