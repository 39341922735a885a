package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkl-community/pklcore/internal/class"
	"github.com/pkl-community/pklcore/internal/perr"
	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

func intProperty(name string) *class.PropertyDef {
	return &class.PropertyDef{Name: name, Type: class.ClassType{Class: class.New("pkl.base", "Int", 0)}}
}

func TestToDynamicDelegatesReadsToTypedSource(t *testing.T) {
	cls := class.New("example", "Point", 0)
	cls.AddProperty(intProperty("x"))

	typed := NewTyped(cls, nil)
	typed.AddProperty("x", 0, ast.Const(pklvalue.Int(5)), nil)

	dyn := ToDynamic(typed)
	v, err := dyn.ReadMember("x")
	require.NoError(t, err)
	assert.Equal(t, pklvalue.Int(5), v)
}

func TestToTypedChecksDeclaredTypeOfDelegatedValue(t *testing.T) {
	cls := class.New("example", "Point", 0)
	cls.AddProperty(intProperty("x"))

	dyn := NewDynamic(nil)
	dyn.AddProperty("x", 0, ast.Const(pklvalue.Bool(true)))

	typed := ToTyped(dyn, cls)
	_, err := typed.ReadMember("x")
	require.Error(t, err)
	var exc *perr.Exception
	require.ErrorAs(t, err, &exc)
	assert.Equal(t, perr.EvalError, exc.Kind)
}

func TestToTypedFromMappingReadsEntryKeyedByPropertyName(t *testing.T) {
	cls := class.New("example", "Point", 0)
	cls.AddProperty(intProperty("x"))

	m := NewMapping(nil)
	m.Put(pklvalue.String("x"), 0, ast.Const(pklvalue.Int(9)), nil)

	typed := ToTypedFromMapping(m, cls)
	v, err := typed.ReadMember("x")
	require.NoError(t, err)
	assert.Equal(t, pklvalue.Int(9), v)
}
