package object

import "github.com/pkl-community/pklcore/internal/class"

// ToDynamic converts t to a Dynamic with one property per property that
// t's class declares or inherits (hidden and local ones included), each
// delegating straight back to t. Reading the Dynamic view never re-runs Typed's own
// declared-type check: the delegated read already produced (and, if
// declared, already checked) the value on t.
func ToDynamic(t *Typed) *Dynamic {
	d := NewDynamic(nil)
	d.SetModuleURI(t.c.moduleURI)
	if t.c.valueClass == nil {
		return d
	}
	for name, body := range t.c.valueClass.TypedToDynamicMembers() {
		d.c.AddProperty(&Member{Kind: PropertyMember, Property: InternProperty(0, name), Body: body, ReceiverOverride: t})
	}
	return d
}

// ToTyped converts d to a Typed instance of cls, installing one delegating
// property per cls's declared properties. Each property's declared type
// is checked against the delegated value the
// first time it's read, so a source that doesn't match cls's shape fails
// exactly where a directly constructed Typed instance would.
func ToTyped(d *Dynamic, cls *class.Class) *Typed {
	t := NewTyped(cls, nil)
	t.SetModuleURI(d.c.moduleURI)
	for name, body := range cls.DynamicToTypedMembers() {
		t.c.AddProperty(&Member{
			Kind: PropertyMember, Property: InternProperty(0, name), Body: body,
			ReceiverOverride: d, DeclaredType: declaredTypeOf(cls, name),
		})
	}
	return t
}

// ToTypedFromMapping is ToTyped for a Mapping source, reading each declared
// property from the entry keyed by its name as a String.
func ToTypedFromMapping(m *Mapping, cls *class.Class) *Typed {
	t := NewTyped(cls, nil)
	t.SetModuleURI(m.c.moduleURI)
	for name, body := range cls.MapToTypedMembers() {
		t.c.AddProperty(&Member{
			Kind: PropertyMember, Property: InternProperty(0, name), Body: body,
			ReceiverOverride: m, DeclaredType: declaredTypeOf(cls, name),
		})
	}
	return t
}

func declaredTypeOf(cls *class.Class, name string) class.RuntimeType {
	if def, ok := cls.GetProperty(name); ok {
		return def.Type
	}
	return nil
}
