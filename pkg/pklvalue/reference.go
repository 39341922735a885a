package pklvalue

// AccessKind tags one step of a Reference's path.
type AccessKind uint8

const (
	AccessProperty AccessKind = iota
	AccessElement
	AccessEntry
)

// Access is one step in a Reference's symbolic path: a property name, an
// element index, or an entry key.
type Access struct {
	Kind     AccessKind
	Property string // set when Kind == AccessProperty
	Index    int64  // set when Kind == AccessElement
	Key      Value  // set when Kind == AccessEntry
}

func (a Access) equal(o Access) bool {
	if a.Kind != o.Kind {
		return false
	}
	switch a.Kind {
	case AccessProperty:
		return a.Property == o.Property
	case AccessElement:
		return a.Index == o.Index
	case AccessEntry:
		return a.Key.Equal(o.Key)
	default:
		return false
	}
}

// Reference is a symbolic access path used by reflection and
// back-reference analysis. CandidateTypes narrows the set of simplified
// (subtype-checked) types the path's value could have; general
// constraint analysis is explicitly out of scope.
type Reference struct {
	CandidateTypes []string // simplified type descriptions, not full TypeNodes
	RootValue      Value
	Path           []Access
}

func (Reference) Kind() Kind { return KindReference }
func (r Reference) Equal(other Value) bool {
	o, ok := other.(Reference)
	if !ok || len(r.Path) != len(o.Path) || !r.RootValue.Equal(o.RootValue) {
		return false
	}
	for i := range r.Path {
		if !r.Path[i].equal(o.Path[i]) {
			return false
		}
	}
	return true
}
func (r Reference) HashCode() uint64 {
	h := r.RootValue.HashCode()
	for _, a := range r.Path {
		h = combine(h, uint64(a.Kind))
		switch a.Kind {
		case AccessProperty:
			h = combine(h, fnv1a(a.Property))
		case AccessElement:
			h = combine(h, uint64(a.Index))
		case AccessEntry:
			h = combine(h, a.Key.HashCode())
		}
	}
	return h
}
func (r Reference) Accept(v Visitor) error { return v.VisitReference(r) }
func (r Reference) Export() Exported {
	out := Exported{Kind: ExportList, Elements: make([]Exported, 0, len(r.Path)+1)}
	out.Elements = append(out.Elements, r.RootValue.Export())
	for _, a := range r.Path {
		switch a.Kind {
		case AccessProperty:
			out.Elements = append(out.Elements, Exported{Kind: ExportScalar, Scalar: a.Property})
		case AccessElement:
			out.Elements = append(out.Elements, Exported{Kind: ExportScalar, Scalar: a.Index})
		case AccessEntry:
			out.Elements = append(out.Elements, a.Key.Export())
		}
	}
	return out
}
