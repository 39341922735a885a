package object

import (
	"github.com/pkl-community/pklcore/internal/class"
	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

// Typed is an object bound to a declared class, satisfying internal/class's
// ClassOf for variance and subtype checks.
type Typed struct{ c *core }

// NewTyped creates a root Typed instance of cls, or an amend of parent.
func NewTyped(cls *class.Class, parent *Typed) *Typed {
	var pc *core
	if parent != nil {
		pc = parent.c
	}
	t := &Typed{c: newCore(pklvalue.KindTyped, cls, pc)}
	t.c.bindWrapper(t)
	return t
}

func (t *Typed) SetModuleURI(uri string) { t.c.moduleURI = uri }

// ValueClass implements internal/class.ClassOf.
func (t *Typed) ValueClass() *class.Class { return t.c.valueClass }

// AddProperty registers an object-literal property override, filling in
// DeclaredType from the class's declared property when not given explicitly:
// literal amendments inherit the declared type unless unconstrained.
func (t *Typed) AddProperty(name string, modifiers ast.Modifiers, body ast.ExpressionNode, declaredType class.RuntimeType) {
	if declaredType == nil && t.c.valueClass != nil {
		if def, ok := t.c.valueClass.GetProperty(name); ok {
			declaredType = def.Type
		}
	}
	t.c.AddProperty(&Member{Kind: PropertyMember, Property: InternProperty(modifiers, name), Modifiers: modifiers, Body: body, DeclaredType: declaredType})
}
func (t *Typed) DeleteProperty(name string) { t.c.DeleteProperty(name) }

func (t *Typed) ReadMember(key string) (pklvalue.Value, error) { return t.c.ReadProperty(key) }
func (t *Typed) Force(allowUndef, recursive bool) error        { return t.c.Force(allowUndef, recursive) }

func (*Typed) Kind() pklvalue.Kind       { return pklvalue.KindTyped }
func (*Typed) ObjectKind() pklvalue.Kind { return pklvalue.KindTyped }
func (t *Typed) Equal(other pklvalue.Value) bool {
	o, ok := other.(*Typed)
	return ok && o == t
}
func (t *Typed) HashCode() uint64          { return t.c.id }
func (t *Typed) Accept(v pklvalue.Visitor) error { return v.VisitObject(t) }
func (t *Typed) Export() pklvalue.Exported {
	out := pklvalue.Exported{Kind: pklvalue.ExportObject, ModuleURI: t.c.moduleURI}
	if t.c.valueClass != nil {
		out.Class = &pklvalue.ExportedClassInfo{
			ModuleURI:     t.c.valueClass.ModuleName(),
			QualifiedName: t.c.valueClass.QualifiedName(),
		}
	}
	var names []string
	if t.c.valueClass != nil {
		names = t.c.valueClass.AllRegularPropertyNames()
	} else {
		names = t.c.allPropertyNames()
	}
	for _, name := range names {
		v, err := t.c.ReadProperty(name)
		if err != nil {
			continue
		}
		out.Entries = append(out.Entries, pklvalue.ExportedEntry{
			Key:   pklvalue.String(name).Export(),
			Value: v.Export(),
		})
	}
	return out
}
