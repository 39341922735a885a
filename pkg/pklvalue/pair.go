package pklvalue

// Pair is a structural tuple.
type Pair struct {
	First  Value
	Second Value
}

func (Pair) Kind() Kind { return KindPair }
func (p Pair) Equal(other Value) bool {
	o, ok := other.(Pair)
	return ok && p.First.Equal(o.First) && p.Second.Equal(o.Second)
}
func (p Pair) HashCode() uint64       { return combine(p.First.HashCode(), p.Second.HashCode()) }
func (p Pair) Accept(v Visitor) error { return v.VisitPair(p) }
func (p Pair) Export() Exported {
	return Exported{Kind: ExportList, Elements: []Exported{p.First.Export(), p.Second.Export()}}
}
