package ast

// ClassBuilder builds a *Class fluently, for tests and the stdlib
// bootstrap where no parser is available.
type ClassBuilder struct {
	c *Class
}

// NewClass starts building a class named name in module moduleName.
func NewClass(moduleName, name string) *ClassBuilder {
	return &ClassBuilder{c: &Class{Name: name, Module: moduleName}}
}

func (b *ClassBuilder) Modifiers(m Modifiers) *ClassBuilder {
	b.c.ModifiersValue = m
	return b
}

func (b *ClassBuilder) Extends(supertype *TypeNode) *ClassBuilder {
	b.c.SupertypeNode = supertype
	return b
}

func (b *ClassBuilder) TypeParameter(name string, variance Variance) *ClassBuilder {
	b.c.TypeParams = append(b.c.TypeParams, TypeParameter{Name: name, Variance: variance})
	return b
}

func (b *ClassBuilder) Property(p *Property) *ClassBuilder {
	b.c.PropertyList = append(b.c.PropertyList, p)
	return b
}

func (b *ClassBuilder) Method(m *Method) *ClassBuilder {
	b.c.MethodList = append(b.c.MethodList, m)
	return b
}

func (b *ClassBuilder) Build() *Class { return b.c }

// ModuleBuilder builds a *Module fluently.
type ModuleBuilder struct {
	m *Module
}

// NewModule starts building a module with the given name and URI.
func NewModule(name, uri string) *ModuleBuilder {
	return &ModuleBuilder{m: &Module{NameValue: name, URIValue: uri}}
}

func (b *ModuleBuilder) Amends(supertype *TypeNode) *ModuleBuilder {
	b.m.SupertypeNode = supertype
	return b
}

func (b *ModuleBuilder) Import(node ImportNode) *ModuleBuilder {
	b.m.ImportList = append(b.m.ImportList, node)
	return b
}

func (b *ModuleBuilder) Property(p *Property) *ModuleBuilder {
	b.m.PropertyList = append(b.m.PropertyList, p)
	return b
}

func (b *ModuleBuilder) Method(m *Method) *ModuleBuilder {
	b.m.MethodList = append(b.m.MethodList, m)
	return b
}

func (b *ModuleBuilder) Class(c ClassNode) *ModuleBuilder {
	b.m.ClassList = append(b.m.ClassList, c)
	return b
}

func (b *ModuleBuilder) TypeAlias(a TypeAliasNode) *ModuleBuilder {
	b.m.AliasList = append(b.m.AliasList, a)
	return b
}

func (b *ModuleBuilder) MinPklVersion(v string) *ModuleBuilder {
	b.m.MinVersion = v
	return b
}

func (b *ModuleBuilder) Build() *Module { return b.m }
