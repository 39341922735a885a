package pklvalue

import "github.com/pkl-community/pklcore/internal/collections"

func valueEq(a, b Value) bool    { return a.Equal(b) }
func valueHash(a Value) uint64   { return a.HashCode() }

// List is a persistent, insertion-ordered sequence of values.
type List struct {
	vec collections.Vector[Value]
}

// NewList builds a List containing a copy of elems, in order.
func NewList(elems ...Value) List {
	return List{vec: collections.FromSlice(elems)}
}

func (List) Kind() Kind          { return KindList }
func (l List) Len() int          { return l.vec.Len() }
func (l List) Get(i int) Value   { return l.vec.Get(i) }
func (l List) Append(v Value) List {
	return List{vec: l.vec.Append(v)}
}
func (l List) ForEach(visit func(i int, v Value) bool) { l.vec.ForEach(visit) }
func (l List) Slice() []Value                          { return l.vec.Slice() }

func (l List) Equal(other Value) bool {
	o, ok := other.(List)
	return ok && collections.VectorEqual(l.vec, o.vec, valueEq)
}
func (l List) HashCode() uint64       { return collections.VectorHash(l.vec, valueHash) }
func (l List) Accept(v Visitor) error { return v.VisitList(l) }
func (l List) Export() Exported {
	out := Exported{Kind: ExportList, Elements: make([]Exported, 0, l.Len())}
	l.ForEach(func(_ int, v Value) bool {
		out.Elements = append(out.Elements, v.Export())
		return true
	})
	return out
}

// Set is a persistent, insertion-ordered collection of distinct values.
// Equality is independent of insertion order; iteration is not.
type Set struct {
	set collections.Set[Value]
}

// NewSet builds a Set from elems, deduplicating by Value equality.
func NewSet(elems ...Value) Set {
	s := collections.NewSet[Value](valueEq, valueHash)
	for _, e := range elems {
		s = s.Add(e)
	}
	return Set{set: s}
}

func (Set) Kind() Kind        { return KindSet }
func (s Set) Len() int        { return s.set.Len() }
func (s Set) Has(v Value) bool { return s.set.Has(v) }
func (s Set) Add(v Value) Set  { return Set{set: s.set.Add(v)} }
func (s Set) ForEach(visit func(v Value) bool) { s.set.ForEach(visit) }
func (s Set) Slice() []Value                   { return s.set.Slice() }

func (s Set) Equal(other Value) bool {
	o, ok := other.(Set)
	return ok && collections.SetEqual(s.set, o.set)
}
func (s Set) HashCode() uint64       { return collections.SetHash(s.set, valueHash) }
func (s Set) Accept(v Visitor) error { return v.VisitSet(s) }
func (s Set) Export() Exported {
	out := Exported{Kind: ExportList, Elements: make([]Exported, 0, s.Len())}
	s.ForEach(func(v Value) bool {
		out.Elements = append(out.Elements, v.Export())
		return true
	})
	return out
}

// Map is a persistent, insertion-ordered key-value association. Equality
// is independent of insertion order; iteration is not.
type Map struct {
	m collections.Map[Value, Value]
}

// NewMap builds an empty Map.
func NewMap() Map {
	return Map{m: collections.NewMap[Value, Value](valueEq, valueHash)}
}

func (Map) Kind() Kind { return KindMap }
func (m Map) Len() int { return m.m.Len() }
func (m Map) Get(key Value) (Value, bool) { return m.m.Get(key) }
func (m Map) Has(key Value) bool          { return m.m.Has(key) }
func (m Map) Put(key, val Value) Map      { return Map{m: m.m.Put(key, val)} }
func (m Map) ForEach(visit func(k, v Value) bool) { m.m.ForEach(visit) }

func (m Map) Equal(other Value) bool {
	o, ok := other.(Map)
	return ok && collections.MapEqual(m.m, o.m, valueEq)
}
func (m Map) HashCode() uint64       { return collections.MapHash(m.m, valueHash) }
func (m Map) Accept(v Visitor) error { return v.VisitMap(m) }
func (m Map) Export() Exported {
	out := Exported{Kind: ExportMap, Entries: make([]ExportedEntry, 0, m.Len())}
	m.ForEach(func(k, v Value) bool {
		out.Entries = append(out.Entries, ExportedEntry{Key: k.Export(), Value: v.Export()})
		return true
	})
	return out
}
