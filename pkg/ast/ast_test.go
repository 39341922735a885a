package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

func TestConstNodeExecutesToFixedValue(t *testing.T) {
	n := ast.Const(pklvalue.Int(42))
	v, err := n.ExecuteGeneric(nil)
	require.NoError(t, err)
	assert.True(t, v.Equal(pklvalue.Int(42)))
}

func TestNativeNodeInvokesClosure(t *testing.T) {
	calls := 0
	n := ast.Native(func(*ast.Frame) (pklvalue.Value, error) {
		calls++
		return pklvalue.String("hi"), nil
	})
	v, err := n.ExecuteGeneric(nil)
	require.NoError(t, err)
	assert.True(t, v.Equal(pklvalue.String("hi")))
	assert.Equal(t, 1, calls)
}

func TestFrameWithReceiverLinksParentAndPreservesTracker(t *testing.T) {
	root := &ast.Frame{Tracker: trackerStub{}}
	child := root.WithReceiver(nil, nil, "key")
	assert.Same(t, root, child.Parent)
	assert.Equal(t, root.Tracker, child.Tracker)
	assert.Equal(t, "key", child.MemberKey)
}

type trackerStub struct{}

func (trackerStub) Observe(ast.ExpressionNode, pklvalue.Value) {}

func TestSubstituteReplacesTypeVariablesWithoutMutatingOriginal(t *testing.T) {
	original := ast.Union(ast.TypeVariable(0), ast.ClassRef("String"))
	substituted := ast.Substitute(original, []*ast.TypeNode{ast.ClassRef("Int")})

	assert.Equal(t, ast.KindTypeVariable, original.Members[0].Kind, "original must be untouched")
	assert.Equal(t, ast.KindClassRef, substituted.Members[0].Kind)
	assert.Equal(t, "Int", substituted.Members[0].QualifiedName)
}

func TestSubstituteOutOfRangeVariableBecomesUnknown(t *testing.T) {
	original := ast.TypeVariable(3)
	substituted := ast.Substitute(original, nil)
	assert.Equal(t, ast.KindUnknown, substituted.Kind)
}

func TestClassBuilderAssemblesClass(t *testing.T) {
	c := ast.NewClass("pkl.base", "Person").
		Modifiers(ast.Open).
		Extends(ast.ClassRef("Any")).
		Property(&ast.Property{NameValue: "name", Type: ast.ClassRef("String")}).
		Build()

	assert.Equal(t, "Person", c.SimpleName())
	assert.Equal(t, "pkl.base", c.ModuleName())
	assert.Len(t, c.Properties(), 1)
	assert.Equal(t, "name", c.Properties()[0].Name())
}

func TestModuleBuilderAssemblesModule(t *testing.T) {
	m := ast.NewModule("example", "file:///example.pkl").
		MinPklVersion("0.25.0").
		Property(&ast.Property{NameValue: "x", Constant: ast.Const(pklvalue.Int(1)), IsConstant: true}).
		Build()

	assert.Equal(t, "example", m.Name())
	assert.Equal(t, "0.25.0", m.MinPklVersion())
	v, ok := m.Properties()[0].ConstantValue()
	require.True(t, ok)
	result, err := v.ExecuteGeneric(nil)
	require.NoError(t, err)
	assert.True(t, result.Equal(pklvalue.Int(1)))
}
