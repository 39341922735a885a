package object

import (
	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

// Dynamic is an open object with no class constraints beyond being Dynamic.
type Dynamic struct{ c *core }

// NewDynamic creates a root Dynamic (parent nil) or an amend of parent.
func NewDynamic(parent *Dynamic) *Dynamic {
	var pc *core
	if parent != nil {
		pc = parent.c
	}
	d := &Dynamic{c: newCore(pklvalue.KindDynamic, nil, pc)}
	d.c.bindWrapper(d)
	return d
}

func (d *Dynamic) SetModuleURI(uri string) { d.c.moduleURI = uri }

func (d *Dynamic) AddProperty(name string, modifiers ast.Modifiers, body ast.ExpressionNode) {
	d.c.AddProperty(&Member{Kind: PropertyMember, Property: InternProperty(modifiers, name), Modifiers: modifiers, Body: body})
}
func (d *Dynamic) DeleteProperty(name string) { d.c.DeleteProperty(name) }

func (d *Dynamic) AddEntry(key pklvalue.Value, modifiers ast.Modifiers, body ast.ExpressionNode) {
	d.c.AddEntry(&Member{Kind: EntryMember, EntryKey: key, Modifiers: modifiers, Body: body})
}
func (d *Dynamic) DeleteEntry(key pklvalue.Value) { d.c.DeleteEntry(key) }

func (d *Dynamic) AddElement(body ast.ExpressionNode) int { return d.c.AddElement(body, nil) }
func (d *Dynamic) DeleteElementAt(refKey int) bool        { return d.c.DeleteElementAt(refKey) }

// GetMember looks up name at this level only, ignoring ancestors.
func (d *Dynamic) GetMember(name string) (*Member, bool) {
	m := d.c.getMemberProperty(name)
	return m, m != nil
}

// FindMember looks up name by walking the parent chain.
func (d *Dynamic) FindMember(name string) (*Member, bool) {
	m, _ := d.c.findMemberProperty(name)
	return m, m != nil
}

func (d *Dynamic) ReadMember(key string) (pklvalue.Value, error) { return d.c.ReadProperty(key) }
func (d *Dynamic) ReadEntry(key pklvalue.Value) (pklvalue.Value, error) { return d.c.ReadEntry(key) }
func (d *Dynamic) ReadElement(refKey int) (pklvalue.Value, error)      { return d.c.ReadElement(refKey) }

func (d *Dynamic) ToDefinitionKey(refKey int) (int, bool) { return d.c.toDefinitionKey(refKey) }
func (d *Dynamic) ToReferenceKey(defKey int) (int, bool)  { return d.c.toReferenceKey(defKey) }

func (d *Dynamic) ElementCount() int { return d.c.elementCount() }

// IterateMembers visits {ancestors ∪ self} root-first, applying deletion
// rules and skipping local members. Properties, entries and elements are
// visited in that order.
func (d *Dynamic) IterateMembers(visit func(key any, value pklvalue.Value) bool) error {
	var outerErr error
	keepGoing := true
	d.c.IterateProperties(func(name string, _ *Member) bool {
		v, err := d.c.ReadProperty(name)
		if err != nil {
			outerErr = err
			keepGoing = false
			return false
		}
		keepGoing = visit(name, v)
		return keepGoing
	})
	if outerErr != nil || !keepGoing {
		return outerErr
	}
	d.c.IterateEntries(func(key pklvalue.Value, _ *Member) bool {
		v, err := d.c.ReadEntry(key)
		if err != nil {
			outerErr = err
			keepGoing = false
			return false
		}
		keepGoing = visit(key, v)
		return keepGoing
	})
	if outerErr != nil || !keepGoing {
		return outerErr
	}
	d.c.IterateElements(func(refKey int, _ *Member) bool {
		v, err := d.c.ReadElement(refKey)
		if err != nil {
			outerErr = err
			keepGoing = false
			return false
		}
		keepGoing = visit(refKey, v)
		return keepGoing
	})
	return outerErr
}

func (d *Dynamic) Force(allowUndef, recursive bool) error { return d.c.Force(allowUndef, recursive) }

func (*Dynamic) Kind() pklvalue.Kind       { return pklvalue.KindDynamic }
func (*Dynamic) ObjectKind() pklvalue.Kind { return pklvalue.KindDynamic }
func (d *Dynamic) Equal(other pklvalue.Value) bool {
	o, ok := other.(*Dynamic)
	return ok && o == d
}
func (d *Dynamic) HashCode() uint64          { return d.c.id }
func (d *Dynamic) Accept(v pklvalue.Visitor) error { return v.VisitObject(d) }
func (d *Dynamic) Export() pklvalue.Exported {
	out := pklvalue.Exported{Kind: pklvalue.ExportObject, ModuleURI: d.c.moduleURI}
	_ = d.IterateMembers(func(key any, v pklvalue.Value) bool {
		name, ok := key.(string)
		if !ok {
			return true
		}
		out.Entries = append(out.Entries, pklvalue.ExportedEntry{
			Key:   pklvalue.String(name).Export(),
			Value: v.Export(),
		})
		return true
	})
	return out
}
