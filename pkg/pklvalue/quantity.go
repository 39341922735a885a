package pklvalue

import "math"

// durationFactors maps a duration unit to its length in nanoseconds.
var durationFactors = map[string]float64{
	"ns":  1,
	"us":  1e3,
	"ms":  1e6,
	"s":   1e9,
	"min": 6e10,
	"h":   3.6e12,
	"d":   8.64e13,
}

// dataSizeFactors maps a data-size unit to its length in bytes (decimal and
// binary prefixes both present, per the Pkl stdlib's own Duration/DataSize
// unit set).
var dataSizeFactors = map[string]float64{
	"b":   1,
	"kb":  1e3,
	"mb":  1e6,
	"gb":  1e9,
	"tb":  1e12,
	"pb":  1e15,
	"kib": 1024,
	"mib": 1024 * 1024,
	"gib": 1024 * 1024 * 1024,
	"tib": 1024 * 1024 * 1024 * 1024,
	"pib": 1024 * 1024 * 1024 * 1024 * 1024,
}

// Duration is a quantity with a unit.
type Duration struct {
	Value float64
	Unit  string
}

func (Duration) Kind() Kind { return KindDuration }
func (d Duration) Equal(other Value) bool {
	o, ok := other.(Duration)
	return ok && d.toNanos() == o.toNanos()
}
func (d Duration) HashCode() uint64 { return math.Float64bits(d.toNanos()) }
func (d Duration) Accept(v Visitor) error { return v.VisitDuration(d) }
func (d Duration) Export() Exported {
	return Exported{Kind: ExportQuantity, Scalar: d.Value, Unit: d.Unit}
}

func (d Duration) toNanos() float64 {
	f, ok := durationFactors[d.Unit]
	if !ok {
		return math.NaN()
	}
	return d.Value * f
}

// ToUnit converts d to the given unit, returning the converted magnitude.
func (d Duration) ToUnit(unit string) (float64, bool) {
	f, ok := durationFactors[unit]
	if !ok {
		return 0, false
	}
	return d.toNanos() / f, true
}

// DataSize is a quantity with a unit.
type DataSize struct {
	Value float64
	Unit  string
}

func (DataSize) Kind() Kind { return KindDataSize }
func (d DataSize) Equal(other Value) bool {
	o, ok := other.(DataSize)
	return ok && d.toBytes() == o.toBytes()
}
func (d DataSize) HashCode() uint64 { return math.Float64bits(d.toBytes()) }
func (d DataSize) Accept(v Visitor) error { return v.VisitDataSize(d) }
func (d DataSize) Export() Exported {
	return Exported{Kind: ExportQuantity, Scalar: d.Value, Unit: d.Unit}
}

func (d DataSize) toBytes() float64 {
	f, ok := dataSizeFactors[d.Unit]
	if !ok {
		return math.NaN()
	}
	return d.Value * f
}

// ToUnit converts d to the given unit, returning the converted magnitude.
func (d DataSize) ToUnit(unit string) (float64, bool) {
	f, ok := dataSizeFactors[unit]
	if !ok {
		return 0, false
	}
	return d.toBytes() / f, true
}
