package pklvalue

import (
	"math"
)

// Null is the optional-default sentinel: reading a "missing" property
// yields a Null whose Default, if non-nil, is the value
// a coercion should fall back to. Two Nulls are always equal to each other
// regardless of Default — Default is coercion metadata, not part of the
// value's identity.
type Null struct {
	Default Value // nil if there is no fallback
}

func (Null) Kind() Kind                { return KindNull }
func (Null) Equal(other Value) bool {
	_, ok := other.(Null)
	return ok
}
func (Null) HashCode() uint64          { return 0 }
func (n Null) Accept(v Visitor) error  { return v.VisitNull(n) }
func (n Null) Export() Exported        { return Exported{Kind: ExportNull} }

// Bool wraps a boolean.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (b Bool) Equal(other Value) bool {
	o, ok := other.(Bool)
	return ok && b == o
}
func (b Bool) HashCode() uint64 {
	if b {
		return 1231
	}
	return 1237
}
func (b Bool) Accept(v Visitor) error { return v.VisitBool(b) }
func (b Bool) Export() Exported       { return Exported{Kind: ExportScalar, Scalar: bool(b)} }

// Int wraps a 64-bit signed integer.
type Int int64

func (Int) Kind() Kind { return KindInt }
func (i Int) Equal(other Value) bool {
	switch o := other.(type) {
	case Int:
		return i == o
	case Float:
		return float64(i) == float64(o)
	default:
		return false
	}
}
func (i Int) HashCode() uint64        { return uint64(i) }
func (i Int) Accept(v Visitor) error  { return v.VisitInt(i) }
func (i Int) Export() Exported        { return Exported{Kind: ExportScalar, Scalar: int64(i)} }

// Float wraps a 64-bit floating-point number.
type Float float64

func (Float) Kind() Kind { return KindFloat }
func (f Float) Equal(other Value) bool {
	switch o := other.(type) {
	case Float:
		return f == o
	case Int:
		return float64(f) == float64(o)
	default:
		return false
	}
}
func (f Float) HashCode() uint64 {
	// An integral Float hashes like the Int it is Equal to.
	if t := float64(f); t == math.Trunc(t) && t >= -(1<<63) && t < 1<<63 {
		return uint64(int64(t))
	}
	return math.Float64bits(float64(f))
}
func (f Float) Accept(v Visitor) error { return v.VisitFloat(f) }
func (f Float) Export() Exported       { return Exported{Kind: ExportScalar, Scalar: float64(f)} }

// String wraps immutable text.
type String string

func (String) Kind() Kind { return KindString }
func (s String) Equal(other Value) bool {
	o, ok := other.(String)
	return ok && s == o
}
func (s String) HashCode() uint64       { return fnv1a(string(s)) }
func (s String) Accept(v Visitor) error { return v.VisitString(s) }
func (s String) Export() Exported       { return Exported{Kind: ExportScalar, Scalar: string(s)} }

// combine order-sensitively mixes two hashes, used by composite variants
// (IntSeq, Pair) whose fields are themselves hashed.
func combine(a, b uint64) uint64 {
	const prime = 1099511628211
	return (a*prime + b) * prime
}

func fnv1a(s string) uint64 {
	const offset = 14695981039346656037
	const prime = 1099511628211
	h := uint64(offset)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	return h
}

// byteSizeUnits are the buckets Bytes.Size() assigns to, indexed by
// floor(log10(len))/3 and clamped to the last bucket.
var byteSizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// Bytes wraps an immutable byte sequence.
type Bytes []byte

func (Bytes) Kind() Kind { return KindBytes }
func (b Bytes) Equal(other Value) bool {
	o, ok := other.(Bytes)
	if !ok || len(b) != len(o) {
		return false
	}
	for i := range b {
		if b[i] != o[i] {
			return false
		}
	}
	return true
}
func (b Bytes) HashCode() uint64 { return fnv1a(string(b)) }
func (b Bytes) Accept(v Visitor) error { return v.VisitBytes(b) }
func (b Bytes) Export() Exported       { return Exported{Kind: ExportScalar, Scalar: []byte(b)} }

// ByteSize is the bucketed, human-scaled size of a Bytes value.
type ByteSize struct {
	Value float64
	Unit  string
}

// Size buckets len(b) into {B,KB,MB,GB,TB,PB} by floor(log10(len))/3.
// len(b) == 0 is bucket 0 (B, value 0) since log10(0) is undefined.
func (b Bytes) Size() ByteSize {
	n := len(b)
	if n == 0 {
		return ByteSize{Value: 0, Unit: byteSizeUnits[0]}
	}
	bucket := int(math.Floor(math.Log10(float64(n)) / 3))
	if bucket < 0 {
		bucket = 0
	}
	if bucket >= len(byteSizeUnits) {
		bucket = len(byteSizeUnits) - 1
	}
	divisor := math.Pow(1000, float64(bucket))
	return ByteSize{Value: float64(n) / divisor, Unit: byteSizeUnits[bucket]}
}
