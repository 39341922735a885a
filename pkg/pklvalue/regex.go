package pklvalue

import "regexp"

// Regex wraps a compiled pattern. Equality is on the source pattern only
// — two Regex values with the same source are equal even though the
// underlying *regexp.Regexp instances differ.
type Regex struct {
	Pattern  string
	compiled *regexp.Regexp
}

// NewRegex compiles pattern, returning an error if it is not a valid
// (Go-flavored) regular expression.
func NewRegex(pattern string) (Regex, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Regex{}, err
	}
	return Regex{Pattern: pattern, compiled: re}, nil
}

func (Regex) Kind() Kind { return KindRegex }
func (r Regex) Equal(other Value) bool {
	o, ok := other.(Regex)
	return ok && r.Pattern == o.Pattern
}
func (r Regex) HashCode() uint64       { return fnv1a(r.Pattern) }
func (r Regex) Accept(v Visitor) error { return v.VisitRegex(r) }
func (r Regex) Export() Exported       { return Exported{Kind: ExportRegex, Scalar: r.Pattern} }

// Compiled returns the underlying *regexp.Regexp for matching operations.
func (r Regex) Compiled() *regexp.Regexp { return r.compiled }
