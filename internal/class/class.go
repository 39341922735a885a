package class

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

var nextClassID uint64

// PropertyDef is a class's compiled declared property.
type PropertyDef struct {
	Name         string
	Modifiers    ast.Modifiers
	Type         RuntimeType // nil if undeclared
	Body         ast.ExpressionNode
	IsDefinition bool // introduces a type annotation, or has no superclass counterpart
}

// MethodDef is a class's compiled declared method.
type MethodDef struct {
	Name      string
	Modifiers ast.Modifiers
	Params    []ast.Parameter
	Return    RuntimeType
	Body      ast.ExpressionNode
}

// Class holds simple/qualified/module names, modifiers, type parameters,
// declared tables, supertype, a single prototype, and lazily computed
// union tables over the superclass chain.
type Class struct {
	id uint64

	simpleName    string
	qualifiedName string
	moduleName    string
	modifiers     ast.Modifiers
	typeParams    []ast.TypeParameter

	mu         sync.RWMutex
	properties map[string]*PropertyDef
	methods    map[string]*MethodDef

	superclass    *Class
	supertypeNode RuntimeType
	prototype     pklvalue.Object

	annotations map[string]pklvalue.Value

	lazy lazyTables
}

type lazyTables struct {
	once                  sync.Once
	allProperties         map[string]*PropertyDef
	allMethods            map[string]*MethodDef
	allRegularNames       []string
	allHiddenNames        []string
	typedToDynamicOnce    sync.Once
	typedToDynamicMembers map[string]ast.ExpressionNode
	dynamicToTypedOnce    sync.Once
	dynamicToTypedMembers map[string]ast.ExpressionNode
	mapToTypedOnce        sync.Once
	mapToTypedMembers     map[string]ast.ExpressionNode
}

// New creates an uninitialized class; call AddProperty/AddMethod then
// InitSupertype before it is used for lookups.
func New(moduleName, simpleName string, modifiers ast.Modifiers) *Class {
	return &Class{
		id:            atomic.AddUint64(&nextClassID, 1),
		simpleName:    simpleName,
		qualifiedName: moduleName + "#" + simpleName,
		moduleName:    moduleName,
		modifiers:     modifiers,
		properties:    make(map[string]*PropertyDef),
		methods:       make(map[string]*MethodDef),
		annotations:   make(map[string]pklvalue.Value),
	}
}

func (c *Class) SimpleName() string        { return c.simpleName }
func (c *Class) QualifiedName() string     { return c.qualifiedName }
func (c *Class) ModuleName() string        { return c.moduleName }
func (c *Class) Modifiers() ast.Modifiers  { return c.modifiers }
func (c *Class) TypeParameters() []ast.TypeParameter { return c.typeParams }
func (c *Class) Superclass() *Class        { return c.superclass }
func (c *Class) Prototype() pklvalue.Object { return c.prototype }

func (c *Class) SetAnnotation(name string, v pklvalue.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.annotations[name] = v
}

func (c *Class) Annotation(name string) (pklvalue.Value, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.annotations[name]
	return v, ok
}

// AddProperty registers a declared property during initialization and
// invalidates the lazily computed union tables.
func (c *Class) AddProperty(p *PropertyDef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.properties[p.Name] = p
	c.lazy = lazyTables{}
}

// AddMethod registers a declared method during initialization and
// invalidates the lazily computed union tables.
func (c *Class) AddMethod(m *MethodDef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.methods[m.Name] = m
	c.lazy = lazyTables{}
}

// AddTypeParameter registers a generic type parameter.
func (c *Class) AddTypeParameter(p ast.TypeParameter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.typeParams = append(c.typeParams, p)
}

// SetPrototype installs the class's single prototype object. Called once
// by internal/object when the class is realized.
func (c *Class) SetPrototype(proto pklvalue.Object) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prototype = proto
}

// ErrSuperclassClosed is returned by InitSupertype when superclass is
// marked CLOSED and cannot be extended further.
type ErrSuperclassClosed struct{ Superclass string }

func (e *ErrSuperclassClosed) Error() string { return "class " + e.Superclass + " is closed to subclassing" }

// InitSupertype rejects a closed superclass with ErrSuperclassClosed and
// otherwise stores the supertype TypeNode and superclass pointer. It does
// not touch the prototype: the prototype's parent is left as it is.
// superclass may be nil for the root of the hierarchy (pkl.base#Any).
func (c *Class) InitSupertype(node RuntimeType, superclass *Class) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if superclass != nil && superclass.modifiers.Has(ast.Closed) {
		return &ErrSuperclassClosed{Superclass: superclass.qualifiedName}
	}
	c.supertypeNode = node
	c.superclass = superclass
	return nil
}

// IsSubclassOf reports whether c is other or descends from it by walking
// superclass pointers.
func (c *Class) IsSubclassOf(other *Class) bool {
	for cur := c; cur != nil; cur = cur.superclass {
		if cur == other {
			return true
		}
	}
	return false
}

// GetProperty looks up name as a lazy union over declared tables along the
// superclass chain, rightmost (most-derived) override winning.
func (c *Class) GetProperty(name string) (*PropertyDef, bool) {
	c.ensureAllTables()
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.lazy.allProperties[name]
	return p, ok
}

// GetMethod looks up name the same way as GetProperty.
func (c *Class) GetMethod(name string) (*MethodDef, bool) {
	c.ensureAllTables()
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.lazy.allMethods[name]
	return m, ok
}

// AllRegularPropertyNames returns the precomputed set of non-hidden,
// non-local declared property names over the whole superclass chain, used
// by iteration and equality.
func (c *Class) AllRegularPropertyNames() []string {
	c.ensureAllTables()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lazy.allRegularNames
}

// AllHiddenPropertyNames is AllRegularPropertyNames' complement.
func (c *Class) AllHiddenPropertyNames() []string {
	c.ensureAllTables()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lazy.allHiddenNames
}

func (c *Class) ensureAllTables() {
	c.lazy.once.Do(func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		chain := c.chainRootFirst()
		allProps := make(map[string]*PropertyDef)
		allMethods := make(map[string]*MethodDef)
		for _, cls := range chain {
			for name, p := range cls.properties {
				_, hadCounterpart := allProps[name]
				def := *p
				def.IsDefinition = def.Type != nil || !hadCounterpart
				allProps[name] = &def
			}
			for name, m := range cls.methods {
				allMethods[name] = m
			}
		}

		regular := make([]string, 0, len(allProps))
		hidden := make([]string, 0)
		for name, p := range allProps {
			if p.Modifiers.Has(ast.Hidden) || p.Modifiers.Has(ast.Local) {
				hidden = append(hidden, name)
			} else {
				regular = append(regular, name)
			}
		}
		sort.Strings(regular)
		sort.Strings(hidden)

		c.lazy.allProperties = allProps
		c.lazy.allMethods = allMethods
		c.lazy.allRegularNames = regular
		c.lazy.allHiddenNames = hidden
	})
}

// chainRootFirst returns [root, ..., c] — superclasses before c, the order
// amend-chain reduction and member lookup apply them in.
func (c *Class) chainRootFirst() []*Class {
	var chain []*Class
	for cur := c; cur != nil; cur = cur.superclass {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// typedToDynamicMembers lazily builds delegating member bodies that read
// through to a Typed object's declared properties, letting a Dynamic view
// of it skip per-property type checks.
func (c *Class) typedToDynamicMembers() map[string]ast.ExpressionNode {
	c.lazy.typedToDynamicOnce.Do(func() {
		c.ensureAllTables()
		out := make(map[string]ast.ExpressionNode, len(c.lazy.allProperties))
		for name := range c.lazy.allProperties {
			name := name
			out[name] = ast.Native(func(frame *ast.Frame) (pklvalue.Value, error) {
				return frame.Receiver.ReadMember(name)
			})
		}
		c.lazy.typedToDynamicMembers = out
	})
	return c.lazy.typedToDynamicMembers
}

// TypedToDynamicMembers exposes the lazily built delegating table.
func (c *Class) TypedToDynamicMembers() map[string]ast.ExpressionNode { return c.typedToDynamicMembers() }

// entryReader is satisfied by an object that supports key-addressed entry
// reads (internal/object's Mapping), enough for mapToTypedMembers to
// delegate through the generic pklvalue.Object a frame carries.
type entryReader interface {
	ReadEntry(key pklvalue.Value) (pklvalue.Value, error)
}

// dynamicToTypedMembers lazily builds delegating member bodies that read a
// Dynamic source's property by name, for converting a Dynamic into this
// class's Typed form. The declared type the caller attaches to each
// installed property — not this body — is what makes the conversion
// actually check the source's values against c's declared shape.
func (c *Class) dynamicToTypedMembers() map[string]ast.ExpressionNode {
	c.lazy.dynamicToTypedOnce.Do(func() {
		c.ensureAllTables()
		out := make(map[string]ast.ExpressionNode, len(c.lazy.allProperties))
		for name := range c.lazy.allProperties {
			name := name
			out[name] = ast.Native(func(frame *ast.Frame) (pklvalue.Value, error) {
				return frame.Receiver.ReadMember(name)
			})
		}
		c.lazy.dynamicToTypedMembers = out
	})
	return c.lazy.dynamicToTypedMembers
}

// DynamicToTypedMembers exposes the lazily built delegating table.
func (c *Class) DynamicToTypedMembers() map[string]ast.ExpressionNode { return c.dynamicToTypedMembers() }

// mapToTypedMembers is dynamicToTypedMembers' counterpart for a Mapping
// source, reading each declared property from the entry keyed by its name
// as a String.
func (c *Class) mapToTypedMembers() map[string]ast.ExpressionNode {
	c.lazy.mapToTypedOnce.Do(func() {
		c.ensureAllTables()
		out := make(map[string]ast.ExpressionNode, len(c.lazy.allProperties))
		for name := range c.lazy.allProperties {
			name := name
			out[name] = ast.Native(func(frame *ast.Frame) (pklvalue.Value, error) {
				er, ok := frame.Receiver.(entryReader)
				if !ok {
					return nil, fmt.Errorf("class: %T does not support entry reads, cannot convert property %q", frame.Receiver, name)
				}
				return er.ReadEntry(pklvalue.String(name))
			})
		}
		c.lazy.mapToTypedMembers = out
	})
	return c.lazy.mapToTypedMembers
}

// MapToTypedMembers exposes the lazily built delegating table.
func (c *Class) MapToTypedMembers() map[string]ast.ExpressionNode { return c.mapToTypedMembers() }

// --- pklvalue.Value / pklvalue.ClassInfo ---

func (*Class) Kind() pklvalue.Kind { return pklvalue.KindClass }
func (c *Class) Equal(other pklvalue.Value) bool {
	o, ok := other.(*Class)
	return ok && o == c
}
func (c *Class) HashCode() uint64          { return c.id }
func (c *Class) Accept(v pklvalue.Visitor) error { return v.VisitClass(c) }
func (c *Class) Export() pklvalue.Exported {
	return pklvalue.Exported{
		Kind:  pklvalue.ExportObject,
		Class: &pklvalue.ExportedClassInfo{ModuleURI: c.moduleName, QualifiedName: c.qualifiedName},
	}
}
