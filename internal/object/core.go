package object

import (
	"sync"
	"sync/atomic"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/btree"

	"github.com/pkl-community/pklcore/internal/class"
	"github.com/pkl-community/pklcore/internal/collections"
	"github.com/pkl-community/pklcore/internal/eval"
	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

var nextObjectID uint64

type slot struct {
	once  sync.Once
	value pklvalue.Value
	err   error
}

// core is the shared amend-chain/memoization engine embedded by Dynamic,
// Typed, Listing and Mapping — folding deep inheritance into a sum type
// plus shared-behavior objects.
type core struct {
	id         uint64
	wrapper    pklvalue.Object // the outward-facing value embedding this core
	valueKind  pklvalue.Kind
	valueClass *class.Class // nil for Dynamic
	moduleURI  string
	parent     *core

	ownProperties    map[string]*Member
	ownPropertyOrder []string
	ownEntries       []*Member
	ownElements      []*Member

	nextDefKey int // one past the highest element defKey ever assigned in the chain

	deletedElements   *btree.BTreeG[int]
	deletedProperties mapset.Set[string]
	deletedEntries    collections.Set[pklvalue.Value]

	cacheMu sync.Mutex
	cache   map[string]*slot

	forceMu sync.Mutex
	forced  bool
}

func newCore(kind pklvalue.Kind, valueClass *class.Class, parent *core) *core {
	c := &core{
		id:               atomic.AddUint64(&nextObjectID, 1),
		valueKind:        kind,
		valueClass:       valueClass,
		parent:           parent,
		ownProperties:    make(map[string]*Member),
		deletedProperties: mapset.NewThreadUnsafeSet[string](),
		deletedEntries:   collections.NewSet[pklvalue.Value](valueEqual, valueHash),
		deletedElements:  btree.NewG[int](8, func(a, b int) bool { return a < b }),
		cache:            make(map[string]*slot),
	}
	if parent != nil {
		c.moduleURI = parent.moduleURI
		c.deletedProperties = parent.deletedProperties.Clone()
		c.deletedEntries = parent.deletedEntries
		parent.deletedElements.Ascend(func(defKey int) bool {
			c.deletedElements.ReplaceOrInsert(defKey)
			return true
		})
		c.nextDefKey = parent.nextDefKey
	}
	return c
}

func valueEqual(a, b pklvalue.Value) bool { return a.Equal(b) }
func valueHash(a pklvalue.Value) uint64   { return a.HashCode() }

// bindWrapper finishes construction by recording the outward-facing value
// this core backs, needed so Frame.Receiver is the typed wrapper, not the
// unexported core.
func (c *core) bindWrapper(w pklvalue.Object) { c.wrapper = w }

// AddProperty registers a property defined at this amend-chain level,
// superseding any ancestor deletion of the same name (a redefinition
// cancels a prior delete).
func (c *core) AddProperty(m *Member) {
	name := m.PropertyName()
	if _, exists := c.ownProperties[name]; !exists {
		c.ownPropertyOrder = append(c.ownPropertyOrder, name)
	}
	c.ownProperties[name] = m
	c.deletedProperties.Remove(name)
}

// DeleteProperty marks name as deleted at this level and everywhere below it.
func (c *core) DeleteProperty(name string) {
	delete(c.ownProperties, name)
	c.deletedProperties.Add(name)
}

// AddEntry registers an entry defined at this level.
func (c *core) AddEntry(m *Member) {
	c.ownEntries = append(c.ownEntries, m)
	c.deletedEntries = c.deletedEntries.Remove(m.EntryKey)
}

// DeleteEntry marks key as deleted.
func (c *core) DeleteEntry(key pklvalue.Value) {
	c.deletedEntries = c.deletedEntries.Add(key)
}

// AddElement appends a new element at this level, assigning it the next
// chain-wide definition key.
func (c *core) AddElement(body ast.ExpressionNode, declaredType class.RuntimeType) int {
	defKey := c.nextDefKey
	c.nextDefKey++
	c.ownElements = append(c.ownElements, &Member{
		Kind: ElementMember, DefKey: defKey, Body: body, DeclaredType: declaredType,
	})
	return defKey
}

// DeleteElementAt marks the element currently at visible index refKey as
// deleted.
func (c *core) DeleteElementAt(refKey int) bool {
	defKey, ok := c.toDefinitionKey(refKey)
	if !ok {
		return false
	}
	c.deletedElements.ReplaceOrInsert(defKey)
	return true
}

func (c *core) isElementDeleted(defKey int) bool {
	_, found := c.deletedElements.Get(defKey)
	return found
}

// toDefinitionKey maps a consumer-visible (post-deletion) index to its
// chain-wide raw definition index.
func (c *core) toDefinitionKey(refKey int) (int, bool) {
	if refKey < 0 {
		return 0, false
	}
	seen := 0
	for defKey := 0; defKey < c.nextDefKey; defKey++ {
		if c.isElementDeleted(defKey) {
			continue
		}
		if seen == refKey {
			return defKey, true
		}
		seen++
	}
	return 0, false
}

// toReferenceKey is toDefinitionKey's inverse: the consumer-visible index
// for a raw definition key, or false if it was deleted.
func (c *core) toReferenceKey(defKey int) (int, bool) {
	if defKey < 0 || defKey >= c.nextDefKey || c.isElementDeleted(defKey) {
		return 0, false
	}
	refKey := 0
	for d := 0; d < defKey; d++ {
		if !c.isElementDeleted(d) {
			refKey++
		}
	}
	return refKey, true
}

// chainSelfFirst returns [this, parent, grandparent, ..., root].
func (c *core) chainSelfFirst() []*core {
	var chain []*core
	for cur := c; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	return chain
}

// getMemberProperty is getMember(key) restricted to this level only.
func (c *core) getMemberProperty(name string) *Member { return c.ownProperties[name] }

// findMemberProperty walks the parent chain, honoring this object's
// cumulative deletion set.
func (c *core) findMemberProperty(name string) (*Member, *core) {
	if c.deletedProperties.Contains(name) {
		return nil, nil
	}
	for _, lvl := range c.chainSelfFirst() {
		if m, ok := lvl.ownProperties[name]; ok {
			return m, lvl
		}
	}
	return nil, nil
}

// findMemberEntry locates the entry for key, most-derived definition wins.
func (c *core) findMemberEntry(key pklvalue.Value) (*Member, *core) {
	if c.deletedEntries.Has(key) {
		return nil, nil
	}
	for _, lvl := range c.chainSelfFirst() {
		for i := len(lvl.ownEntries) - 1; i >= 0; i-- {
			if lvl.ownEntries[i].EntryKey.Equal(key) {
				return lvl.ownEntries[i], lvl
			}
		}
	}
	return nil, nil
}

// findMemberElement locates the element with the given raw definition key.
func (c *core) findMemberElement(defKey int) (*Member, *core) {
	if c.isElementDeleted(defKey) {
		return nil, nil
	}
	for _, lvl := range c.chainSelfFirst() {
		for _, e := range lvl.ownElements {
			if e.DefKey == defKey {
				return e, lvl
			}
		}
	}
	return nil, nil
}

// chainMembersForProperty returns every level's own definition of name
// along the full amend chain (self through root), most-derived first. A
// redefinition only replaces the body a level contributes; its own
// DeclaredType still applies to the final value: declared type
// annotations accumulate along the chain, they don't just track the
// winning definition.
func (c *core) chainMembersForProperty(name string) []*Member {
	var out []*Member
	for _, lvl := range c.chainSelfFirst() {
		if m, ok := lvl.ownProperties[name]; ok {
			out = append(out, m)
		}
	}
	return out
}

// chainMembersForEntry is chainMembersForProperty for Mapping entries.
func (c *core) chainMembersForEntry(key pklvalue.Value) []*Member {
	var out []*Member
	for _, lvl := range c.chainSelfFirst() {
		for i := len(lvl.ownEntries) - 1; i >= 0; i-- {
			if lvl.ownEntries[i].EntryKey.Equal(key) {
				out = append(out, lvl.ownEntries[i])
				break
			}
		}
	}
	return out
}

// chainMembersForElement is chainMembersForProperty for Listing elements.
func (c *core) chainMembersForElement(defKey int) []*Member {
	var out []*Member
	for _, lvl := range c.chainSelfFirst() {
		for _, e := range lvl.ownElements {
			if e.DefKey == defKey {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

func (c *core) slotFor(key string) *slot {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	s, ok := c.cache[key]
	if !ok {
		s = &slot{}
		c.cache[key] = s
	}
	return s
}

// readCached is the per-value-read pipeline: consult the memo slot; on
// miss, evaluate the member's body exactly once (sync.Once gives the
// single-flight guarantee concurrent readers require), check the final
// value against every chain level's declared type for this key (type
// checks accumulate, they aren't limited to the winning definition), and
// cache the result.
func (c *core) readCached(m *Member, owner *core, key string, chain []*Member) (pklvalue.Value, error) {
	s := c.slotFor(key)
	s.once.Do(func() {
		receiver := c.wrapper
		if m.ReceiverOverride != nil {
			receiver = m.ReceiverOverride
		}
		frame := &ast.Frame{Receiver: receiver, Owner: owner.wrapper, MemberKey: m.memberKey()}
		v, err := m.Body.ExecuteGeneric(frame)
		if err == nil {
			for _, lvl := range chain {
				if checkErr := eval.CheckMemberResult(lvl.DeclaredType, lvl.Body, m.displayName(), v); checkErr != nil {
					err = checkErr
					break
				}
			}
		}
		s.value, s.err = v, err
	})
	return s.value, s.err
}

// ReadProperty is readMember for a named property.
func (c *core) ReadProperty(name string) (pklvalue.Value, error) {
	m, owner := c.findMemberProperty(name)
	if m == nil {
		return nil, &ErrCannotFindMember{Key: name, KnownNames: c.allPropertyNames()}
	}
	return c.readCached(m, owner, m.cacheKey(), c.chainMembersForProperty(name))
}

// ReadEntry is readMember for a Mapping entry.
func (c *core) ReadEntry(key pklvalue.Value) (pklvalue.Value, error) {
	m, owner := c.findMemberEntry(key)
	if m == nil {
		return nil, &ErrCannotFindMember{Key: keyString(key)}
	}
	return c.readCached(m, owner, m.cacheKey(), c.chainMembersForEntry(key))
}

// ReadElement is readMember for a Listing element, addressed by its
// consumer-visible (reference) index.
func (c *core) ReadElement(refKey int) (pklvalue.Value, error) {
	defKey, ok := c.toDefinitionKey(refKey)
	if !ok {
		return nil, &ErrCannotFindMember{Key: itoa(refKey)}
	}
	m, owner := c.findMemberElement(defKey)
	if m == nil {
		return nil, &ErrCannotFindMember{Key: itoa(refKey)}
	}
	return c.readCached(m, owner, m.cacheKey(), c.chainMembersForElement(defKey))
}

func (c *core) allPropertyNames() []string {
	names := make([]string, 0, len(c.ownPropertyOrder))
	seen := make(map[string]bool)
	for _, lvl := range reverseChain(c.chainSelfFirst()) {
		for _, name := range lvl.ownPropertyOrder {
			if seen[name] || c.deletedProperties.Contains(name) {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func reverseChain(chain []*core) []*core {
	out := make([]*core, len(chain))
	for i, c := range chain {
		out[len(chain)-1-i] = c
	}
	return out
}

// IterateProperties visits {ancestors ∪ self} in root-first insertion
// order, applying deletion rules and skipping local properties.
func (c *core) IterateProperties(visit func(name string, m *Member) bool) {
	for _, name := range c.allPropertyNames() {
		m, _ := c.findMemberProperty(name)
		if m == nil || m.isLocal() {
			continue
		}
		if !visit(name, m) {
			return
		}
	}
}

// IterateEntries visits every non-deleted entry in root-first insertion
// order, most-derived definition per key.
func (c *core) IterateEntries(visit func(key pklvalue.Value, m *Member) bool) {
	var order []pklvalue.Value
	seen := collections.NewSet[pklvalue.Value](valueEqual, valueHash)
	for _, lvl := range reverseChain(c.chainSelfFirst()) {
		for _, e := range lvl.ownEntries {
			if seen.Has(e.EntryKey) || c.deletedEntries.Has(e.EntryKey) {
				continue
			}
			seen = seen.Add(e.EntryKey)
			order = append(order, e.EntryKey)
		}
	}
	for _, key := range order {
		m, _ := c.findMemberEntry(key)
		if m == nil || m.isLocal() {
			continue
		}
		if !visit(key, m) {
			return
		}
	}
}

// IterateElements visits every non-deleted element by its consumer-visible
// reference index, root-first definition order.
func (c *core) IterateElements(visit func(refKey int, m *Member) bool) {
	refKey := 0
	for defKey := 0; defKey < c.nextDefKey; defKey++ {
		if c.isElementDeleted(defKey) {
			continue
		}
		m, _ := c.findMemberElement(defKey)
		if m == nil {
			continue
		}
		if !visit(refKey, m) {
			return
		}
		refKey++
	}
}

func (c *core) elementCount() int {
	n := 0
	for defKey := 0; defKey < c.nextDefKey; defKey++ {
		if !c.isElementDeleted(defKey) {
			n++
		}
	}
	return n
}

// Force evaluates every non-local/non-hidden/non-external/non-abstract
// member, recursing into nested objects when recursive is true.
// The forced bit is set before recursion (cycle guard) and cleared on a
// fatal error so a later call can retry.
func (c *core) Force(allowUndef, recursive bool) error {
	c.forceMu.Lock()
	if c.forced {
		c.forceMu.Unlock()
		return nil
	}
	c.forced = true
	c.forceMu.Unlock()

	err := c.forceMembers(allowUndef, recursive)
	if err != nil {
		c.forceMu.Lock()
		c.forced = false
		c.forceMu.Unlock()
	}
	return err
}

func (c *core) forceMembers(allowUndef, recursive bool) error {
	var ferr error
	forceable := func(m *Member) bool {
		return !m.Modifiers.Has(ast.Local | ast.Hidden | ast.External | ast.Abstract)
	}
	c.IterateProperties(func(name string, m *Member) bool {
		if !forceable(m) {
			return true
		}
		v, err := c.ReadProperty(name)
		if err != nil {
			if !allowUndef {
				ferr = err
				return false
			}
			return true
		}
		if recursive {
			if child, ok := v.(pklvalue.Object); ok {
				if err := child.Force(allowUndef, true); err != nil {
					ferr = err
					return false
				}
			}
		}
		return true
	})
	if ferr != nil {
		return ferr
	}
	c.IterateEntries(func(key pklvalue.Value, m *Member) bool {
		if !forceable(m) {
			return true
		}
		v, err := c.ReadEntry(key)
		if err != nil {
			if !allowUndef {
				ferr = err
				return false
			}
			return true
		}
		if recursive {
			if child, ok := v.(pklvalue.Object); ok {
				if err := child.Force(allowUndef, true); err != nil {
					ferr = err
					return false
				}
			}
		}
		return true
	})
	if ferr != nil {
		return ferr
	}
	c.IterateElements(func(refKey int, m *Member) bool {
		if !forceable(m) {
			return true
		}
		v, err := c.ReadElement(refKey)
		if err != nil {
			if !allowUndef {
				ferr = err
				return false
			}
			return true
		}
		if recursive {
			if child, ok := v.(pklvalue.Object); ok {
				if err := child.Force(allowUndef, true); err != nil {
					ferr = err
					return false
				}
			}
		}
		return true
	})
	return ferr
}
