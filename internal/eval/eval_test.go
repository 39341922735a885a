package eval

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkl-community/pklcore/internal/class"
	"github.com/pkl-community/pklcore/internal/perr"
	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

type fakeIntType struct{}

func (fakeIntType) Check(v pklvalue.Value) error {
	if _, ok := v.(pklvalue.Int); !ok {
		return errors.New("not an int")
	}
	return nil
}
func (fakeIntType) IsSubtypeOf(class.RuntimeType) bool { return false }
func (fakeIntType) Mirror() pklvalue.Value             { return pklvalue.String("Int") }
func (fakeIntType) DeepCopy() class.RuntimeType        { return fakeIntType{} }

func TestFunctionCallChecksArityAndParamTypes(t *testing.T) {
	fn := NewFunction("add1", []string{"n"}, []class.RuntimeType{fakeIntType{}}, fakeIntType{},
		func(args []pklvalue.Value, _ *ast.Frame) (pklvalue.Value, error) {
			return pklvalue.Int(args[0].(pklvalue.Int) + 1), nil
		})
	assert.Equal(t, 1, fn.Arity())

	v, err := fn.Call([]pklvalue.Value{pklvalue.Int(4)}, nil)
	require.NoError(t, err)
	assert.Equal(t, pklvalue.Int(5), v)

	_, err = fn.Call([]pklvalue.Value{pklvalue.String("x")}, nil)
	require.Error(t, err)

	_, err = fn.Call(nil, nil)
	require.Error(t, err)
}

func TestFunctionCallChecksReturnType(t *testing.T) {
	fn := NewFunction("bad", nil, nil, fakeIntType{},
		func(args []pklvalue.Value, _ *ast.Frame) (pklvalue.Value, error) {
			return pklvalue.String("oops"), nil
		})
	_, err := fn.Call(nil, nil)
	require.Error(t, err)
}

func TestCheckMemberResultSkipsNilDeclaredType(t *testing.T) {
	err := CheckMemberResult(nil, ast.Const(pklvalue.Int(1)), "x", pklvalue.Int(1))
	assert.NoError(t, err)
}

func TestCheckMemberResultSkipsSkipTypeCheckSentinel(t *testing.T) {
	err := CheckMemberResult(fakeIntType{}, ast.Const(pklvalue.String("x")), "x", pklvalue.SkipTypeCheck)
	assert.NoError(t, err)
}

func TestCheckMemberResultInsertsFrameForConstantFoldedFailure(t *testing.T) {
	body := ast.Const(pklvalue.String("not an int"))
	err := CheckMemberResult(fakeIntType{}, body, "x", pklvalue.String("not an int"))
	require.Error(t, err)
	var exc *perr.Exception
	require.ErrorAs(t, err, &exc)
	require.Contains(t, exc.InsertedFrames, "x")
	require.Len(t, exc.ProgramValues, 1)
	assert.Equal(t, "Value", exc.ProgramValues[0].Name)
}

func TestCheckMemberResultNoInsertedFrameForDynamicBody(t *testing.T) {
	body := ast.Native(func(*ast.Frame) (pklvalue.Value, error) { return pklvalue.String("x"), nil })
	err := CheckMemberResult(fakeIntType{}, body, "x", pklvalue.String("x"))
	require.Error(t, err)
	var exc *perr.Exception
	require.ErrorAs(t, err, &exc)
	assert.Empty(t, exc.InsertedFrames)
}

func TestCheckMemberResultUnionRejectsBoolAssignedToStringOrInt(t *testing.T) {
	stringClass := class.New("pkl.base", "String", 0)
	intClass := class.New("pkl.base", "Int", 0)
	union := class.UnionType{Members: []class.RuntimeType{
		class.ClassType{Class: stringClass},
		class.ClassType{Class: intClass},
	}}

	body := ast.Const(pklvalue.Bool(true))
	err := CheckMemberResult(union, body, "x", pklvalue.Bool(true))
	require.Error(t, err)

	var exc *perr.Exception
	require.ErrorAs(t, err, &exc)
	assert.Equal(t, perr.EvalError, exc.Kind)
	require.Len(t, exc.ProgramValues, 1)
	assert.Equal(t, "Value", exc.ProgramValues[0].Name)
	assert.Equal(t, pklvalue.Bool(true), exc.ProgramValues[0].Value)
}

func TestRecordingTrackerCollectsObservationsPerNode(t *testing.T) {
	tracker := NewRecordingTracker()
	node := ast.Const(pklvalue.Int(1))
	tracker.Observe(node, pklvalue.Int(1))
	tracker.Observe(node, pklvalue.Int(2))
	assert.Equal(t, []pklvalue.Value{pklvalue.Int(1), pklvalue.Int(2)}, tracker.ValuesFor(node))
}
