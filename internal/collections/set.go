package collections

// unit is the value type backing Set, as in the common map[T]struct{}
// idiom.
type unit struct{}

// Set is a persistent, insertion-ordered collection of distinct elements,
// built directly on Map[T, unit].
type Set[T any] struct {
	m Map[T, unit]
}

// NewSet constructs an empty Set using the given element equality and hash
// functions.
func NewSet[T any](eq func(T, T) bool, hash func(T) uint64) Set[T] {
	return Set[T]{m: NewMap[T, unit](eq, hash)}
}

// Len returns the number of elements.
func (s Set[T]) Len() int { return s.m.Len() }

// Has reports whether val is a member.
func (s Set[T]) Has(val T) bool { return s.m.Has(val) }

// Add returns a new Set with val included.
func (s Set[T]) Add(val T) Set[T] { return Set[T]{m: s.m.Put(val, unit{})} }

// Remove returns a new Set without val.
func (s Set[T]) Remove(val T) Set[T] { return Set[T]{m: s.m.Delete(val)} }

// ForEach visits elements in insertion order, stopping early if visit
// returns false.
func (s Set[T]) ForEach(visit func(val T) bool) {
	s.m.ForEach(func(k T, _ unit) bool { return visit(k) })
}

// Slice materializes the Set's elements in insertion order.
func (s Set[T]) Slice() []T {
	out := make([]T, 0, s.Len())
	s.ForEach(func(v T) bool { out = append(out, v); return true })
	return out
}

// SetEqual reports whether a and b contain the same elements, independent
// of insertion order.
func SetEqual[T any](a, b Set[T]) bool {
	return MapEqual(a.m, b.m, func(unit, unit) bool { return true })
}

// SetHash combines per-element hashes order-independently and caches the
// result on s.
func SetHash[T any](s Set[T], hash func(T) uint64) uint64 {
	return MapHash(s.m, func(unit) uint64 { return 0 }) // value channel unused; fold element hash via key
}
