package class

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

var nextAliasID uint64

// TypeAlias holds a type node cloned and specialized at each
// instantiation: type-arguments substituted for type-variable slots,
// then compiled once per distinct argument list.
type TypeAlias struct {
	id            uint64
	simpleName    string
	qualifiedName string
	moduleName    string
	modifiers     ast.Modifiers
	typeParams    []ast.TypeParameter
	aliased       *ast.TypeNode
	resolver      Resolver

	mu           sync.Mutex
	instantiated map[string]RuntimeType
}

// NewTypeAlias creates a typealias over the uncompiled syntax node
// `aliased`; resolver is consulted when instantiations reference other
// classes/typealiases.
func NewTypeAlias(moduleName, simpleName string, modifiers ast.Modifiers, aliased *ast.TypeNode, resolver Resolver) *TypeAlias {
	return &TypeAlias{
		id:            atomic.AddUint64(&nextAliasID, 1),
		simpleName:    simpleName,
		qualifiedName: moduleName + "#" + simpleName,
		moduleName:    moduleName,
		modifiers:     modifiers,
		aliased:       aliased,
		resolver:      resolver,
		instantiated:  make(map[string]RuntimeType),
	}
}

func (a *TypeAlias) SimpleName() string    { return a.simpleName }
func (a *TypeAlias) QualifiedName() string { return a.qualifiedName }
func (a *TypeAlias) ModuleName() string    { return a.moduleName }
func (a *TypeAlias) AddTypeParameter(p ast.TypeParameter) {
	a.typeParams = append(a.typeParams, p)
}

// Instantiate performs the deep-copy-then-substitute-then-compile dance,
// caching the result per distinct argument list so repeated instantiation
// with the same arguments reuses one compiled unit (keeping the whole
// check inside a single compiled RuntimeType, per the union-short-circuit
// optimization).
func (a *TypeAlias) Instantiate(args []RuntimeType) (RuntimeType, error) {
	key := instantiationKey(args)

	a.mu.Lock()
	if cached, ok := a.instantiated[key]; ok {
		a.mu.Unlock()
		return cached, nil
	}
	a.mu.Unlock()

	argNodes := make([]*ast.TypeNode, len(args))
	for i, t := range args {
		argNodes[i] = runtimeTypeToSyntax(t)
	}
	substituted := ast.Substitute(a.aliased, argNodes)
	compiled, err := Compile(substituted, a.resolver)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.instantiated[key] = compiled
	a.mu.Unlock()
	return compiled, nil
}

func instantiationKey(args []RuntimeType) string {
	var b strings.Builder
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		if m, ok := a.Mirror().(pklvalue.String); ok {
			b.WriteString(string(m))
		}
	}
	return b.String()
}

// --- pklvalue.Value / pklvalue.TypeAliasInfo ---

func (*TypeAlias) Kind() pklvalue.Kind { return pklvalue.KindTypeAlias }
func (a *TypeAlias) Equal(other pklvalue.Value) bool {
	o, ok := other.(*TypeAlias)
	return ok && o == a
}
func (a *TypeAlias) HashCode() uint64              { return a.id }
func (a *TypeAlias) Accept(v pklvalue.Visitor) error { return v.VisitTypeAlias(a) }
func (a *TypeAlias) Export() pklvalue.Exported {
	return pklvalue.Exported{
		Kind:  pklvalue.ExportObject,
		Class: &pklvalue.ExportedClassInfo{ModuleURI: a.moduleName, QualifiedName: a.qualifiedName},
	}
}

// aliasType is the compiled, unresolved reference to a typealias with
// concrete type arguments (before Instantiate runs).
type aliasType struct {
	alias *TypeAlias
	args  []RuntimeType
}

func (t aliasType) resolved() RuntimeType {
	r, err := t.alias.Instantiate(t.args)
	if err != nil {
		return Nothing()
	}
	return r
}

func (t aliasType) Check(v pklvalue.Value) error       { return t.resolved().Check(v) }
func (t aliasType) IsSubtypeOf(other RuntimeType) bool { return t.resolved().IsSubtypeOf(other) }
func (t aliasType) Mirror() pklvalue.Value             { return pklvalue.String(t.alias.qualifiedName) }
func (t aliasType) DeepCopy() RuntimeType {
	args := make([]RuntimeType, len(t.args))
	for i, a := range t.args {
		args[i] = a.DeepCopy()
	}
	return aliasType{alias: t.alias, args: args}
}
