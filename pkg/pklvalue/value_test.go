package pklvalue_test

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

func TestListEqualityAndIdentityOfEmptyCollections(t *testing.T) {
	a := pklvalue.NewList(pklvalue.Int(1), pklvalue.Int(2), pklvalue.Int(3))
	b := pklvalue.NewList(pklvalue.Int(1), pklvalue.Int(2), pklvalue.Int(3))
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.HashCode(), b.HashCode())
	if diff := deep.Equal(a.Slice(), b.Slice()); diff != nil {
		t.Errorf("unexpected diff: %v", diff)
	}
}

func TestSetAndMapEqualityIndependentOfOrder(t *testing.T) {
	s1 := pklvalue.NewSet(pklvalue.String("a"), pklvalue.String("b"))
	s2 := pklvalue.NewSet(pklvalue.String("b"), pklvalue.String("a"))
	assert.True(t, s1.Equal(s2))

	m1 := pklvalue.NewMap().Put(pklvalue.Int(1), pklvalue.String("x")).Put(pklvalue.Int(2), pklvalue.String("y"))
	m2 := pklvalue.NewMap().Put(pklvalue.Int(2), pklvalue.String("y")).Put(pklvalue.Int(1), pklvalue.String("x"))
	assert.True(t, m1.Equal(m2))

	var order []int64
	m1.ForEach(func(k, _ pklvalue.Value) bool {
		order = append(order, int64(k.(pklvalue.Int)))
		return true
	})
	assert.Equal(t, []int64{1, 2}, order)
}

func TestIntSeqAscendingDescendingEmpty(t *testing.T) {
	var ascending []int64
	pklvalue.IntSeq{Start: 1, End: 5, Step: 2}.ForEach(func(n int64) bool {
		ascending = append(ascending, n)
		return true
	})
	assert.Equal(t, []int64{1, 3, 5}, ascending)

	var descending []int64
	pklvalue.IntSeq{Start: 5, End: 1, Step: -2}.ForEach(func(n int64) bool {
		descending = append(descending, n)
		return true
	})
	assert.Equal(t, []int64{5, 3, 1}, descending)

	assert.True(t, pklvalue.IntSeq{Start: 1, End: 0, Step: 1}.IsEmpty())
}

func TestBytesSizeBucketing(t *testing.T) {
	b := make(pklvalue.Bytes, 2048)
	size := b.Size()
	require.Equal(t, "KB", size.Unit)
	assert.InDelta(t, 2.05, size.Value, 0.01)
}

func TestNullEqualityIgnoresDefault(t *testing.T) {
	a := pklvalue.Null{}
	b := pklvalue.Null{Default: pklvalue.Int(5)}
	assert.True(t, a.Equal(b))
}

func TestRegexEqualityBySourceOnly(t *testing.T) {
	a, err := pklvalue.NewRegex("a+")
	require.NoError(t, err)
	b, err := pklvalue.NewRegex("a+")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.NotSame(t, a.Compiled(), b.Compiled())
}

func TestSentinelsNeverCompareEqualToRealValues(t *testing.T) {
	assert.True(t, pklvalue.IsSentinel(pklvalue.SkipTypeCheck))
	assert.False(t, pklvalue.SkipTypeCheck.Equal(pklvalue.Null{}))
	assert.False(t, pklvalue.IsSentinel(pklvalue.Null{}))
}

func TestDurationUnitConversion(t *testing.T) {
	d := pklvalue.Duration{Value: 60, Unit: "s"}
	minutes, ok := d.ToUnit("min")
	require.True(t, ok)
	assert.InDelta(t, 1.0, minutes, 1e-9)
	assert.True(t, d.Equal(pklvalue.Duration{Value: 1, Unit: "min"}))
}
