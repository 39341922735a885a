package object

import "github.com/pkl-community/pklcore/internal/class"

// Amend constructs a new object whose amend-chain parent is base, one level
// per supported kind. The returned
// wrapper starts with no own members; callers add overrides via the
// wrapper's AddProperty/AddEntry/AddElement before reading from it.

func AmendDynamic(base *Dynamic) *Dynamic { return NewDynamic(base) }

func AmendTyped(base *Typed) *Typed {
	var cls *class.Class
	if base != nil {
		cls = base.ValueClass()
	}
	t := NewTyped(cls, base)
	return t
}

func AmendListing(base *Listing) *Listing { return NewListing(base) }

func AmendMapping(base *Mapping) *Mapping { return NewMapping(base) }
