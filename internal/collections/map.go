package collections

import "sync"

// entry is one (key, value) pair stored in a Map's insertion-order backbone.
type entry[K, V any] struct {
	key K
	val V
}

// hashCache memoizes a Map/Set's combined hash. Every construction that
// changes content gets its own fresh cache; unchanged copies (e.g. the
// receiver that a Delete of an absent key returns) keep sharing the old one.
type hashCache struct {
	once  sync.Once
	value uint64
}

// Map is a persistent, insertion-ordered association from K to V. Lookup
// uses a lazily-built per-instance hash index (built at most once per
// instance, on first Get/Has/Put/Delete); the entries themselves live in a
// structurally-shared Vector so copies of a Map that differ by one Put share
// every chunk except the one that changed.
type Map[K, V any] struct {
	entries Vector[entry[K, V]]
	keyEq   func(K, K) bool
	keyHash func(K) uint64

	idxOnce *sync.Once
	idx     *map[uint64][]int // built lazily; nil until first index need

	hc *hashCache
}

// NewMap constructs an empty Map using the given key equality and hash
// functions. Equality and hashing for values are supplied per-call where
// needed (Equal, HashCode below) so Map stays reusable across value types.
func NewMap[K, V any](keyEq func(K, K) bool, keyHash func(K) uint64) Map[K, V] {
	return Map[K, V]{
		entries: Empty[entry[K, V]](),
		keyEq:   keyEq,
		keyHash: keyHash,
		idxOnce: new(sync.Once),
		idx:     new(map[uint64][]int),
		hc:      new(hashCache),
	}
}

func (m Map[K, V]) ensureIndex() map[uint64][]int {
	m.idxOnce.Do(func() {
		built := make(map[uint64][]int, m.entries.Len())
		m.entries.ForEach(func(i int, e entry[K, V]) bool {
			h := m.keyHash(e.key)
			built[h] = append(built[h], i)
			return true
		})
		*m.idx = built
	})
	return *m.idx
}

func (m Map[K, V]) findIndex(key K) (int, bool) {
	h := m.keyHash(key)
	for _, i := range m.ensureIndex()[h] {
		if m.keyEq(m.entries.Get(i).key, key) {
			return i, true
		}
	}
	return -1, false
}

// Len returns the number of entries.
func (m Map[K, V]) Len() int { return m.entries.Len() }

// Get returns the value for key and whether it was present.
func (m Map[K, V]) Get(key K) (V, bool) {
	if i, ok := m.findIndex(key); ok {
		return m.entries.Get(i).val, true
	}
	var zero V
	return zero, false
}

// Has reports whether key is present.
func (m Map[K, V]) Has(key K) bool {
	_, ok := m.findIndex(key)
	return ok
}

// Put returns a new Map with key bound to val. If key already exists, its
// position (insertion order) is preserved and only that chunk of the
// backbone changes; otherwise the entry is appended.
func (m Map[K, V]) Put(key K, val V) Map[K, V] {
	if i, ok := m.findIndex(key); ok {
		return Map[K, V]{
			entries: m.entries.Set(i, entry[K, V]{key: key, val: val}),
			keyEq:   m.keyEq, keyHash: m.keyHash,
			idxOnce: new(sync.Once), idx: new(map[uint64][]int),
			hc: new(hashCache),
		}
	}
	return Map[K, V]{
		entries: m.entries.Append(entry[K, V]{key: key, val: val}),
		keyEq:   m.keyEq, keyHash: m.keyHash,
		idxOnce: new(sync.Once), idx: new(map[uint64][]int),
		hc: new(hashCache),
	}
}

// Delete returns a new Map without key. If key was absent, returns m
// unchanged (same backbone, not a fresh copy).
func (m Map[K, V]) Delete(key K) Map[K, V] {
	i, ok := m.findIndex(key)
	if !ok {
		return m
	}
	return Map[K, V]{
		entries: m.entries.WithoutIndex(i),
		keyEq:   m.keyEq, keyHash: m.keyHash,
		idxOnce: new(sync.Once), idx: new(map[uint64][]int),
		hc: new(hashCache),
	}
}

// ForEach visits entries in insertion order, stopping early if visit
// returns false.
func (m Map[K, V]) ForEach(visit func(key K, val V) bool) {
	m.entries.ForEach(func(_ int, e entry[K, V]) bool {
		return visit(e.key, e.val)
	})
}

// MapEqual reports whether a and b contain the same keys with equal values,
// independent of insertion order.
func MapEqual[K, V any](a, b Map[K, V], valEq func(V, V) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	equal := true
	a.ForEach(func(k K, v V) bool {
		bv, ok := b.Get(k)
		if !ok || !valEq(v, bv) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

// MapHash combines per-entry hashes order-independently (XOR) so that
// MapEqual maps always hash equal, and caches the result on m.
func MapHash[K, V any](m Map[K, V], valHash func(V) uint64) uint64 {
	m.hc.once.Do(func() {
		var h uint64
		m.ForEach(func(k K, v V) bool {
			h ^= combine(m.keyHash(k), valHash(v))
			return true
		})
		m.hc.value = h
	})
	return m.hc.value
}

func combine(a, b uint64) uint64 {
	const prime = 1099511628211
	return (a*prime + b) * prime
}
