package perr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

func TestExceptionErrorIncludesKindMemberAndSection(t *testing.T) {
	e := NewEvalError("boom", nil)
	e.Member = "x"
	assert.Contains(t, e.Error(), "EvalError")
	assert.Contains(t, e.Error(), "boom")
	assert.Contains(t, e.Error(), `"x"`)
}

func TestWrapPreservesCauseForUnwrap(t *testing.T) {
	inner := errors.New("disk full")
	e := Wrap(inner, "could not load module")
	assert.Equal(t, Wrapped, e.Kind)
	assert.Same(t, inner, errors.Unwrap(e))
}

func TestWithProgramValueAppends(t *testing.T) {
	e := NewEvalError("bad type", nil).WithProgramValue("Value", pklvalue.Bool(true))
	require.Len(t, e.ProgramValues, 1)
	assert.Equal(t, "Value", e.ProgramValues[0].Name)
	assert.Equal(t, pklvalue.Bool(true), e.ProgramValues[0].Value)
}

func TestInsertFrameRecordsByTarget(t *testing.T) {
	e := NewEvalError("bad type", nil)
	e.InsertFrame("Foo#bar", StackFrame{ModuleURI: "repl:text", MemberName: "bar"})
	require.Contains(t, e.InsertedFrames, "Foo#bar")
	assert.Equal(t, "bar", e.InsertedFrames["Foo#bar"].MemberName)
}

func TestSuggestFindsCloseMatchesAboveThreshold(t *testing.T) {
	got := Suggest("names", []string{"name", "description", "id"})
	assert.Equal(t, []string{"name"}, got)
}

func TestSuggestFallsBackToAllNamesWhenNothingIsClose(t *testing.T) {
	got := Suggest("zzz", []string{"name", "description"})
	assert.ElementsMatch(t, []string{"name", "description"}, got)
}

func TestSuggestReturnsNilForNoKnownNames(t *testing.T) {
	assert.Nil(t, Suggest("x", nil))
}

func TestNewCannotFindMemberHintsNoneWhenNoKnownNames(t *testing.T) {
	e := NewCannotFindMember("x", nil)
	assert.Equal(t, "(none)", e.Hint)
	assert.Equal(t, EvalError, e.Kind)
}

func TestNewCannotFindMemberListsDidYouMeanCandidates(t *testing.T) {
	e := NewCannotFindMember("nme", []string{"name", "description"})
	assert.Contains(t, e.Hint, "did you mean")
	assert.Contains(t, e.Hint, "name")
}

func TestNewTypeCheckFailureCarriesValueProgramValue(t *testing.T) {
	e := NewTypeCheckFailure("x", nil, pklvalue.Int(5), "String")
	require.Len(t, e.ProgramValues, 1)
	assert.Equal(t, "Value", e.ProgramValues[0].Name)
	assert.Equal(t, pklvalue.Int(5), e.ProgramValues[0].Value)
}
