package pklvalue

// IntSeq is a half-closed arithmetic progression. Step must be
// non-zero; constructing one with Step == 0 is a caller bug, not a runtime
// error this type detects (the evaluation engine rejects it before an
// IntSeq value is ever built).
type IntSeq struct {
	Start int64
	End   int64
	Step  int64
}

func (IntSeq) Kind() Kind { return KindIntSeq }
func (s IntSeq) Equal(other Value) bool {
	o, ok := other.(IntSeq)
	return ok && s == o
}
func (s IntSeq) HashCode() uint64 {
	return combine(combine(uint64(s.Start), uint64(s.End)), uint64(s.Step))
}
func (s IntSeq) Accept(v Visitor) error { return v.VisitIntSeq(s) }
func (s IntSeq) Export() Exported {
	out := Exported{Kind: ExportList}
	s.ForEach(func(n int64) bool {
		out.Elements = append(out.Elements, Int(n).Export())
		return true
	})
	return out
}

// IsEmpty reports whether the sequence yields no elements: true iff Start
// would already pass End given Step's direction.
func (s IntSeq) IsEmpty() bool {
	if s.Step > 0 {
		return s.Start > s.End
	}
	return s.Start < s.End
}

// Last returns the greatest value <= End (Step > 0) or the least value >=
// End (Step < 0) reachable from Start, and whether the sequence is
// non-empty.
func (s IntSeq) Last() (int64, bool) {
	if s.IsEmpty() {
		return 0, false
	}
	span := s.End - s.Start
	steps := span / s.Step // integer division truncates toward zero
	return s.Start + steps*s.Step, true
}

// ForEach visits every element from Start toward Last in Step increments,
// stopping early if visit returns false.
func (s IntSeq) ForEach(visit func(n int64) bool) {
	if s.IsEmpty() {
		return
	}
	last, _ := s.Last()
	if s.Step > 0 {
		for n := s.Start; n <= last; n += s.Step {
			if !visit(n) {
				return
			}
		}
		return
	}
	for n := s.Start; n >= last; n += s.Step {
		if !visit(n) {
			return
		}
	}
}
