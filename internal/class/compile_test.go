package class_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkl-community/pklcore/internal/class"
	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

type stubResolver struct {
	classes map[string]*class.Class
	aliases map[string]*class.TypeAlias
}

func newStubResolver() *stubResolver {
	return &stubResolver{classes: map[string]*class.Class{}, aliases: map[string]*class.TypeAlias{}}
}

func (r *stubResolver) ResolveClass(qn string) (*class.Class, bool) {
	c, ok := r.classes[qn]
	return c, ok
}

func (r *stubResolver) ResolveTypeAlias(qn string) (*class.TypeAlias, bool) {
	a, ok := r.aliases[qn]
	return a, ok
}

func TestCompileClassRefResolvesThroughResolver(t *testing.T) {
	r := newStubResolver()
	stringClass := class.New("pkl.base", "String", 0)
	r.classes["pkl.base#String"] = stringClass

	compiled, err := class.Compile(ast.ClassRef("pkl.base#String"), r)
	require.NoError(t, err)
	assert.NoError(t, compiled.Check(pklvalue.String("hi")))
	assert.Error(t, compiled.Check(pklvalue.Int(1)))
}

func TestCompileUnresolvedClassRefErrors(t *testing.T) {
	_, err := class.Compile(ast.ClassRef("nope#Nope"), newStubResolver())
	assert.Error(t, err)
}

func TestCompileIntAliasBypassesResolver(t *testing.T) {
	compiled, err := class.Compile(ast.ClassRef("UInt8"), newStubResolver())
	require.NoError(t, err)
	assert.IsType(t, class.IntAliasType{}, compiled)
}

func TestCompileNullableAndUnion(t *testing.T) {
	r := newStubResolver()
	r.classes["pkl.base#String"] = class.New("pkl.base", "String", 0)

	node := ast.Nullable(ast.ClassRef("pkl.base#String"))
	compiled, err := class.Compile(node, r)
	require.NoError(t, err)
	assert.NoError(t, compiled.Check(pklvalue.Null{}))
	assert.NoError(t, compiled.Check(pklvalue.String("x")))
}

func TestCompileConstrainedEvaluatesClosureOverIt(t *testing.T) {
	r := newStubResolver()
	r.classes["pkl.base#Int"] = class.New("pkl.base", "Int", 0)

	isPositive := ast.Native(func(f *ast.Frame) (pklvalue.Value, error) {
		n := f.ItValue.(pklvalue.Int)
		return pklvalue.Bool(n > 0), nil
	})
	node := ast.Constrained(ast.ClassRef("pkl.base#Int"), isPositive)
	compiled, err := class.Compile(node, r)
	require.NoError(t, err)

	assert.NoError(t, compiled.Check(pklvalue.Int(5)))
	assert.Error(t, compiled.Check(pklvalue.Int(-5)))
}

func TestTypeAliasInstantiateSubstitutesTypeVariable(t *testing.T) {
	r := newStubResolver()
	r.classes["pkl.base#String"] = class.New("pkl.base", "String", 0)
	r.classes["pkl.base#Int"] = class.New("pkl.base", "Int", 0)

	aliased := ast.Nullable(ast.TypeVariable(0))
	alias := class.NewTypeAlias("example", "Maybe", 0, aliased, r)

	stringArg, err := class.Compile(ast.ClassRef("pkl.base#String"), r)
	require.NoError(t, err)

	instantiated, err := alias.Instantiate([]class.RuntimeType{stringArg})
	require.NoError(t, err)
	assert.NoError(t, instantiated.Check(pklvalue.Null{}))
	assert.NoError(t, instantiated.Check(pklvalue.String("x")))
	assert.Error(t, instantiated.Check(pklvalue.Int(1)))
}

func TestTypeAliasInstantiateCachesPerArgumentList(t *testing.T) {
	r := newStubResolver()
	r.classes["pkl.base#String"] = class.New("pkl.base", "String", 0)
	alias := class.NewTypeAlias("example", "Id", 0, ast.TypeVariable(0), r)
	stringArg, _ := class.Compile(ast.ClassRef("pkl.base#String"), r)

	first, err := alias.Instantiate([]class.RuntimeType{stringArg})
	require.NoError(t, err)
	second, err := alias.Instantiate([]class.RuntimeType{stringArg})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
