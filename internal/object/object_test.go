package object

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkl-community/pklcore/internal/class"
	"github.com/pkl-community/pklcore/internal/perr"
	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

func constProp(name string, v pklvalue.Value) *Member {
	return &Member{Kind: PropertyMember, Property: InternProperty(0, name), Body: ast.Const(v)}
}

// Scenario S1: Amend: `A { x = 1; y = 2 }` then `A { y = 3 }` yields an
// object with x = 1, y = 3.
func TestAmendOverridesOnlyGivenProperties(t *testing.T) {
	a := NewDynamic(nil)
	a.c.AddProperty(constProp("x", pklvalue.Int(1)))
	a.c.AddProperty(constProp("y", pklvalue.Int(2)))

	b := AmendDynamic(a)
	b.c.AddProperty(constProp("y", pklvalue.Int(3)))

	x, err := b.ReadMember("x")
	require.NoError(t, err)
	assert.Equal(t, pklvalue.Int(1), x)

	y, err := b.ReadMember("y")
	require.NoError(t, err)
	assert.Equal(t, pklvalue.Int(3), y)

	// the base object is untouched by the amend
	by, err := a.ReadMember("y")
	require.NoError(t, err)
	assert.Equal(t, pklvalue.Int(2), by)
}

func letterElements(letters ...string) []ast.ExpressionNode {
	out := make([]ast.ExpressionNode, len(letters))
	for i, l := range letters {
		out[i] = ast.Const(pklvalue.String(l))
	}
	return out
}

func collectListing(t *testing.T, l *Listing) []string {
	t.Helper()
	var got []string
	err := l.ForEach(func(_ int, v pklvalue.Value) bool {
		got = append(got, string(v.(pklvalue.String)))
		return true
	})
	require.NoError(t, err)
	return got
}

// Scenario S5: Listing [A,B,C,D], `delete 1` yields iteration [A,C,D] at
// indices {0,1,2}; appending E yields [A,C,D,E] at {0,1,2,3}.
func TestListingDeleteRemapsReferenceIndices(t *testing.T) {
	l := NewListing(nil)
	for _, body := range letterElements("A", "B", "C", "D") {
		l.Append(body, nil)
	}
	require.Equal(t, []string{"A", "B", "C", "D"}, collectListing(t, l))

	ok := l.DeleteAt(1)
	require.True(t, ok)
	assert.Equal(t, []string{"A", "C", "D"}, collectListing(t, l))
	assert.Equal(t, 3, l.Length())

	l.Append(ast.Const(pklvalue.String("E")), nil)
	assert.Equal(t, []string{"A", "C", "D", "E"}, collectListing(t, l))
	assert.Equal(t, 4, l.Length())

	v, err := l.Get(1)
	require.NoError(t, err)
	assert.Equal(t, pklvalue.String("C"), v)
}

func TestListingDeleteAtInvalidIndexReturnsFalse(t *testing.T) {
	l := NewListing(nil)
	l.Append(ast.Const(pklvalue.String("A")), nil)
	assert.False(t, l.DeleteAt(5))
	assert.False(t, l.DeleteAt(-1))
}

// Testable property 3: concurrent reads of the same member must not
// execute its body more than once.
func TestReadMemberIsSingleFlightUnderConcurrency(t *testing.T) {
	var calls int64
	d := NewDynamic(nil)
	d.c.AddProperty(&Member{
		Kind:     PropertyMember,
		Property: InternProperty(0, "x"),
		Body: ast.Native(func(*ast.Frame) (pklvalue.Value, error) {
			atomic.AddInt64(&calls, 1)
			return pklvalue.Int(42), nil
		}),
	})

	const n = 64
	var wg sync.WaitGroup
	wg.Add(n)
	results := make([]pklvalue.Value, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = d.ReadMember("x")
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, pklvalue.Int(42), results[i])
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

// Testable property 4: force(allowUndef, recursive) is idempotent, and
// repeated iteration yields the same keys in the same order.
func TestForceIsIdempotentAndIterationIsStable(t *testing.T) {
	inner := NewDynamic(nil)
	inner.c.AddProperty(constProp("a", pklvalue.Int(1)))

	outer := NewDynamic(nil)
	outer.c.AddProperty(&Member{Kind: PropertyMember, Property: InternProperty(0, "nested"), Body: ast.Const(inner)})
	outer.c.AddProperty(constProp("b", pklvalue.Int(2)))

	require.NoError(t, outer.Force(false, true))
	require.NoError(t, outer.Force(false, true)) // idempotent: no re-execution, no error

	var first, second []any
	require.NoError(t, outer.IterateMembers(func(key any, _ pklvalue.Value) bool {
		first = append(first, key)
		return true
	}))
	require.NoError(t, outer.IterateMembers(func(key any, _ pklvalue.Value) bool {
		second = append(second, key)
		return true
	}))
	assert.Equal(t, first, second)
	assert.Equal(t, []any{"nested", "b"}, first)
}

func TestForceStopsAtFirstErrorWhenUndefNotAllowed(t *testing.T) {
	d := NewDynamic(nil)
	d.c.AddProperty(&Member{
		Kind:     PropertyMember,
		Property: InternProperty(0, "broken"),
		Body: ast.Native(func(*ast.Frame) (pklvalue.Value, error) {
			return nil, &ErrUndefinedValue{Key: "broken"}
		}),
	})
	err := d.Force(false, false)
	assert.Error(t, err)

	// a later force(allowUndef=true, ...) is unaffected by the prior failure
	err = d.Force(true, false)
	assert.NoError(t, err)
}

func TestDeletePropertyThenReadReportsCannotFindMember(t *testing.T) {
	a := NewDynamic(nil)
	a.c.AddProperty(constProp("x", pklvalue.Int(1)))

	b := AmendDynamic(a)
	b.DeleteProperty("x")

	_, err := b.ReadMember("x")
	require.Error(t, err)
	var cannotFind *ErrCannotFindMember
	require.ErrorAs(t, err, &cannotFind)
	assert.Equal(t, "x", cannotFind.Key)
}

func TestReAddingDeletedPropertyCancelsDeletion(t *testing.T) {
	a := NewDynamic(nil)
	a.c.AddProperty(constProp("x", pklvalue.Int(1)))
	a.c.DeleteProperty("x")
	a.c.AddProperty(constProp("x", pklvalue.Int(9)))

	v, err := a.ReadMember("x")
	require.NoError(t, err)
	assert.Equal(t, pklvalue.Int(9), v)
}

func TestMappingPutGetAndDelete(t *testing.T) {
	m := NewMapping(nil)
	m.Put(pklvalue.String("k1"), 0, ast.Const(pklvalue.Int(1)), nil)
	m.Put(pklvalue.String("k2"), 0, ast.Const(pklvalue.Int(2)), nil)

	v, err := m.Get(pklvalue.String("k1"))
	require.NoError(t, err)
	assert.Equal(t, pklvalue.Int(1), v)

	amended := AmendMapping(m)
	amended.Delete(pklvalue.String("k1"))
	_, err = amended.Get(pklvalue.String("k1"))
	assert.Error(t, err)

	v2, err := amended.Get(pklvalue.String("k2"))
	require.NoError(t, err)
	assert.Equal(t, pklvalue.Int(2), v2)
}

// A declared type an ancestor amend level attached to a property must
// still reject the final value even when the most-derived override for
// that property declared no type of its own: type checks accumulate
// along the whole amend chain, not just the winning definition.
func TestAncestorDeclaredTypeStillRejectsOverriddenProperty(t *testing.T) {
	intType := class.ClassType{Class: class.New("pkl.base", "Int", 0)}

	base := NewTyped(nil, nil)
	base.AddProperty("x", 0, ast.Const(pklvalue.Int(1)), intType)

	amended := AmendTyped(base)
	amended.AddProperty("x", 0, ast.Const(pklvalue.Bool(true)), nil)

	_, err := amended.ReadMember("x")
	require.Error(t, err)
	var exc *perr.Exception
	require.ErrorAs(t, err, &exc)
	assert.Equal(t, perr.EvalError, exc.Kind)
}

func TestDynamicExportProducesOrderedPropertyMap(t *testing.T) {
	d := NewDynamic(nil)
	d.SetModuleURI("repl:text")
	d.c.AddProperty(constProp("a", pklvalue.Int(1)))
	d.c.AddProperty(constProp("b", pklvalue.Int(2)))

	exported := d.Export()
	require.Equal(t, pklvalue.ExportObject, exported.Kind)
	require.Len(t, exported.Entries, 2)
	assert.Equal(t, "a", exported.Entries[0].Key.Scalar)
	assert.Equal(t, "b", exported.Entries[1].Key.Scalar)
	assert.Equal(t, "repl:text", exported.ModuleURI)
}
