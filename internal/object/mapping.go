package object

import (
	"github.com/pkl-community/pklcore/internal/class"
	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

// Mapping is an amendable, lazily-evaluated key/value association, distinct
// from the immutable pklvalue.Map value type.
type Mapping struct{ c *core }

// NewMapping creates a root Mapping, or an amend of parent.
func NewMapping(parent *Mapping) *Mapping {
	var pc *core
	if parent != nil {
		pc = parent.c
	}
	m := &Mapping{c: newCore(pklvalue.KindMapping, nil, pc)}
	m.c.bindWrapper(m)
	return m
}

func (m *Mapping) SetModuleURI(uri string) { m.c.moduleURI = uri }

func (m *Mapping) Put(key pklvalue.Value, modifiers ast.Modifiers, body ast.ExpressionNode, declaredType class.RuntimeType) {
	m.c.AddEntry(&Member{Kind: EntryMember, EntryKey: key, Modifiers: modifiers, Body: body, DeclaredType: declaredType})
}
func (m *Mapping) Delete(key pklvalue.Value) { m.c.DeleteEntry(key) }
func (m *Mapping) Get(key pklvalue.Value) (pklvalue.Value, error) { return m.c.ReadEntry(key) }

// ReadEntry is Get under the name class.mapToTypedMembers' delegating
// bodies call through (internal/class's entryReader).
func (m *Mapping) ReadEntry(key pklvalue.Value) (pklvalue.Value, error) { return m.c.ReadEntry(key) }

// ForEach visits every non-deleted entry, most-derived definition per key.
func (m *Mapping) ForEach(visit func(key pklvalue.Value, v pklvalue.Value) bool) error {
	var outerErr error
	m.c.IterateEntries(func(key pklvalue.Value, _ *Member) bool {
		v, err := m.c.ReadEntry(key)
		if err != nil {
			outerErr = err
			return false
		}
		return visit(key, v)
	})
	return outerErr
}

func (m *Mapping) ReadMember(key string) (pklvalue.Value, error) {
	return nil, &ErrCannotFindMember{Key: key}
}
func (m *Mapping) Force(allowUndef, recursive bool) error { return m.c.Force(allowUndef, recursive) }

func (*Mapping) Kind() pklvalue.Kind       { return pklvalue.KindMapping }
func (*Mapping) ObjectKind() pklvalue.Kind { return pklvalue.KindMapping }
func (m *Mapping) Equal(other pklvalue.Value) bool {
	o, ok := other.(*Mapping)
	return ok && o == m
}
func (m *Mapping) HashCode() uint64          { return m.c.id }
func (m *Mapping) Accept(v pklvalue.Visitor) error { return v.VisitObject(m) }
func (m *Mapping) Export() pklvalue.Exported {
	out := pklvalue.Exported{Kind: pklvalue.ExportMap}
	_ = m.ForEach(func(key, v pklvalue.Value) bool {
		out.Entries = append(out.Entries, pklvalue.ExportedEntry{Key: key.Export(), Value: v.Export()})
		return true
	})
	return out
}
