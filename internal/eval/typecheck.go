package eval

import (
	"github.com/pkl-community/pklcore/internal/class"
	"github.com/pkl-community/pklcore/internal/perr"
	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

// mirrorOf renders t's Mirror() value as a string for error messages,
// falling back to a generic description when Mirror doesn't yield a
// String (it always does today, but callers outside this package should
// not assume that).
func mirrorOf(t class.RuntimeType) string {
	if s, ok := t.Mirror().(pklvalue.String); ok {
		return string(s)
	}
	return "the declared type"
}

// CheckMemberResult applies a member read's declared-type check to its
// result. When the check fails and body is a constant-folded node, the
// returned error carries a synthesized stack frame at the member's body
// section (the inserted-frames side channel), so a constant-folded member
// presents the same trace as its dynamic counterpart. declaredType nil or
// v == pklvalue.SkipTypeCheck both skip the check entirely.
func CheckMemberResult(declaredType class.RuntimeType, body ast.ExpressionNode, member string, v pklvalue.Value) error {
	if declaredType == nil || v == pklvalue.SkipTypeCheck {
		return nil
	}
	if err := declaredType.Check(v); err == nil {
		return nil
	}
	section := body.SourceSection()
	if _, isConst := ast.ConstantValue(body); isConst {
		e := perr.NewTypeCheckFailure(member, &section, v, mirrorOf(declaredType))
		e.InsertFrame(member, perr.StackFrame{ModuleURI: section.ModuleURI, MemberName: member, Section: section})
		return e
	}
	return perr.NewTypeCheckFailure(member, &section, v, mirrorOf(declaredType))
}
