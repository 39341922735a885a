package object

import (
	"github.com/pkl-community/pklcore/internal/class"
	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

// Listing is an amendable, lazily-evaluated ordered sequence, distinct from
// the immutable pklvalue.List value type.
type Listing struct{ c *core }

// NewListing creates a root Listing, or an amend of parent.
func NewListing(parent *Listing) *Listing {
	var pc *core
	if parent != nil {
		pc = parent.c
	}
	l := &Listing{c: newCore(pklvalue.KindListing, nil, pc)}
	l.c.bindWrapper(l)
	return l
}

func (l *Listing) SetModuleURI(uri string) { l.c.moduleURI = uri }

// Append adds a new element, returning its reference index at this level.
func (l *Listing) Append(body ast.ExpressionNode, declaredType class.RuntimeType) int {
	defKey := l.c.AddElement(body, declaredType)
	refKey, _ := l.c.toReferenceKey(defKey)
	return refKey
}

// DeleteAt removes the element currently visible at refKey (scenario S5).
func (l *Listing) DeleteAt(refKey int) bool { return l.c.DeleteElementAt(refKey) }

// Get is readMember for element refKey.
func (l *Listing) Get(refKey int) (pklvalue.Value, error) { return l.c.ReadElement(refKey) }

func (l *Listing) Length() int { return l.c.elementCount() }

// ForEach visits every non-deleted element in consumer-visible order.
func (l *Listing) ForEach(visit func(refKey int, v pklvalue.Value) bool) error {
	var outerErr error
	l.c.IterateElements(func(refKey int, _ *Member) bool {
		v, err := l.c.ReadElement(refKey)
		if err != nil {
			outerErr = err
			return false
		}
		return visit(refKey, v)
	})
	return outerErr
}

func (l *Listing) ReadMember(key string) (pklvalue.Value, error) {
	return nil, &ErrCannotFindMember{Key: key}
}
func (l *Listing) Force(allowUndef, recursive bool) error { return l.c.Force(allowUndef, recursive) }

func (*Listing) Kind() pklvalue.Kind       { return pklvalue.KindListing }
func (*Listing) ObjectKind() pklvalue.Kind { return pklvalue.KindListing }
func (l *Listing) Equal(other pklvalue.Value) bool {
	o, ok := other.(*Listing)
	return ok && o == l
}
func (l *Listing) HashCode() uint64          { return l.c.id }
func (l *Listing) Accept(v pklvalue.Visitor) error { return v.VisitObject(l) }
func (l *Listing) Export() pklvalue.Exported {
	out := pklvalue.Exported{Kind: pklvalue.ExportList}
	_ = l.ForEach(func(_ int, v pklvalue.Value) bool {
		out.Elements = append(out.Elements, v.Export())
		return true
	})
	return out
}
