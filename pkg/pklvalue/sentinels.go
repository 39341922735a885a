package pklvalue

// sentinel implements Value just enough to flow through the same channels
// as a real value; Accept/Export panic because a sentinel must never reach
// a visitor or renderer — the evaluation engine strips it before user code
// or a host renderer observes it.
type sentinel struct{ name string }

func (sentinel) Kind() Kind             { return KindNull }
func (s sentinel) Equal(other Value) bool {
	o, ok := other.(sentinel)
	return ok && s.name == o.name
}
func (s sentinel) HashCode() uint64   { return fnv1a(s.name) }
func (s sentinel) Accept(Visitor) error { panic("pklvalue: sentinel " + s.name + " reached a visitor") }
func (s sentinel) Export() Exported     { panic("pklvalue: sentinel " + s.name + " reached export") }

// LengthLimitReached is the marker a renderer's internal cursor compares
// against to know it has produced as much output as its configured limit
// allows — one of two distinguished sentinels reserved for renderers.
var LengthLimitReached Value = sentinel{name: "length-limit-reached"}

// SkipTypeCheck is the marker the evaluation engine substitutes internally
// to bypass a member's declared-type check on a read.
var SkipTypeCheck Value = sentinel{name: "skip-typecheck"}

// IsSentinel reports whether v is one of the internal markers above, never
// a value user code or a host renderer should see.
func IsSentinel(v Value) bool {
	_, ok := v.(sentinel)
	return ok
}
