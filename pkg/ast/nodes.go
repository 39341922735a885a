package ast

// ClassPropertyNode is a class or module-level property definition.
type ClassPropertyNode interface {
	Name() string
	Modifiers() Modifiers
	DeclaredType() *TypeNode // nil if undeclared
	Body() ExpressionNode
	ConstantValue() (ExpressionNode, bool) // constant-folding fast path
	SourceSection() SourceSection
}

// ClassMethodNode is a class or module-level method definition.
type ClassMethodNode interface {
	Name() string
	Modifiers() Modifiers
	Parameters() []Parameter
	ReturnType() *TypeNode
	Body() ExpressionNode
	SourceSection() SourceSection
}

// ClassNode is a parsed class declaration.
type ClassNode interface {
	SimpleName() string
	ModuleName() string
	Modifiers() Modifiers
	TypeParameters() []TypeParameter
	Supertype() *TypeNode // nil for the root of the hierarchy
	Properties() []ClassPropertyNode
	Methods() []ClassMethodNode
	SourceSection() SourceSection
}

// TypeAliasNode is a parsed typealias declaration.
type TypeAliasNode interface {
	SimpleName() string
	ModuleName() string
	Modifiers() Modifiers
	TypeParameters() []TypeParameter
	Aliased() *TypeNode
	SourceSection() SourceSection
}

// ImportNode is a parsed import clause.
type ImportNode struct {
	URI      string
	Alias    string // "" if not aliased
	IsGlob   bool
	Section  SourceSection
}

// ModuleNode is the top of a parsed module: it behaves like a class body
// (properties, methods, nested classes/typealiases) plus imports and an
// optional amends/extends clause.
type ModuleNode interface {
	Name() string
	URI() string
	Supertype() *TypeNode // set when the module amends/extends another
	Imports() []ImportNode
	Properties() []ClassPropertyNode
	Methods() []ClassMethodNode
	Classes() []ClassNode
	TypeAliases() []TypeAliasNode
	MinPklVersion() string // "" if @ModuleInfo.minPklVersion is absent
}

// --- concrete implementations, used by tests and the stdlib bootstrap ---

type Property struct {
	NameValue      string
	ModifiersValue Modifiers
	Type           *TypeNode
	BodyNode       ExpressionNode
	Constant       ExpressionNode
	IsConstant     bool
	Section        SourceSection
}

func (p *Property) Name() string             { return p.NameValue }
func (p *Property) Modifiers() Modifiers     { return p.ModifiersValue }
func (p *Property) DeclaredType() *TypeNode  { return p.Type }
func (p *Property) Body() ExpressionNode     { return p.BodyNode }
func (p *Property) SourceSection() SourceSection { return p.Section }
func (p *Property) ConstantValue() (ExpressionNode, bool) {
	return p.Constant, p.IsConstant
}

type Method struct {
	NameValue      string
	ModifiersValue Modifiers
	Params         []Parameter
	Return         *TypeNode
	BodyNode       ExpressionNode
	Section        SourceSection
}

func (m *Method) Name() string                { return m.NameValue }
func (m *Method) Modifiers() Modifiers        { return m.ModifiersValue }
func (m *Method) Parameters() []Parameter     { return m.Params }
func (m *Method) ReturnType() *TypeNode       { return m.Return }
func (m *Method) Body() ExpressionNode        { return m.BodyNode }
func (m *Method) SourceSection() SourceSection { return m.Section }

type Class struct {
	Name             string
	Module           string
	ModifiersValue   Modifiers
	TypeParams       []TypeParameter
	SupertypeNode    *TypeNode
	PropertyList     []ClassPropertyNode
	MethodList       []ClassMethodNode
	Section          SourceSection
}

func (c *Class) SimpleName() string             { return c.Name }
func (c *Class) ModuleName() string             { return c.Module }
func (c *Class) Modifiers() Modifiers           { return c.ModifiersValue }
func (c *Class) TypeParameters() []TypeParameter { return c.TypeParams }
func (c *Class) Supertype() *TypeNode           { return c.SupertypeNode }
func (c *Class) Properties() []ClassPropertyNode { return c.PropertyList }
func (c *Class) Methods() []ClassMethodNode     { return c.MethodList }
func (c *Class) SourceSection() SourceSection   { return c.Section }

type TypeAlias struct {
	Name           string
	Module         string
	ModifiersValue Modifiers
	TypeParams     []TypeParameter
	AliasedNode    *TypeNode
	Section        SourceSection
}

func (a *TypeAlias) SimpleName() string              { return a.Name }
func (a *TypeAlias) ModuleName() string              { return a.Module }
func (a *TypeAlias) Modifiers() Modifiers            { return a.ModifiersValue }
func (a *TypeAlias) TypeParameters() []TypeParameter { return a.TypeParams }
func (a *TypeAlias) Aliased() *TypeNode              { return a.AliasedNode }
func (a *TypeAlias) SourceSection() SourceSection    { return a.Section }

type Module struct {
	NameValue     string
	URIValue      string
	SupertypeNode *TypeNode
	ImportList    []ImportNode
	PropertyList  []ClassPropertyNode
	MethodList    []ClassMethodNode
	ClassList     []ClassNode
	AliasList     []TypeAliasNode
	MinVersion    string
}

func (m *Module) Name() string                  { return m.NameValue }
func (m *Module) URI() string                   { return m.URIValue }
func (m *Module) Supertype() *TypeNode          { return m.SupertypeNode }
func (m *Module) Imports() []ImportNode         { return m.ImportList }
func (m *Module) Properties() []ClassPropertyNode { return m.PropertyList }
func (m *Module) Methods() []ClassMethodNode    { return m.MethodList }
func (m *Module) Classes() []ClassNode          { return m.ClassList }
func (m *Module) TypeAliases() []TypeAliasNode  { return m.AliasList }
func (m *Module) MinPklVersion() string         { return m.MinVersion }
