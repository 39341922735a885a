package ast

import "github.com/pkl-community/pklcore/pkg/pklvalue"

// ExpressionNode is the external contract a member body, type-check
// constraint, or method implementation satisfies: evaluate itself
// against a Frame, producing a Value or an error. The engine never
// inspects an ExpressionNode's internals; it only calls ExecuteGeneric.
type ExpressionNode interface {
	ExecuteGeneric(frame *Frame) (pklvalue.Value, error)
	SourceSection() SourceSection
}

// Frame carries the receiver/owner/memberKey triple the engine threads
// through every nested call, plus the call-stack parent used to render
// diagnostics and an optional value tracker.
type Frame struct {
	Receiver  pklvalue.Object
	Owner     pklvalue.Object
	MemberKey any // *ident.Identifier, or an entry/element key
	Parent    *Frame
	Tracker   Tracker

	// ItValue binds `it` for a constraint closure's evaluation; unset
	// outside constraint checking.
	ItValue pklvalue.Value
}

// Tracker subscribes to expression-node evaluations, used by assertion
// rendering. Scoped to a local context; must not affect memoization.
type Tracker interface {
	Observe(node ExpressionNode, value pklvalue.Value)
}

// WithReceiver returns a child frame for a nested call against a new
// receiver/owner/key, preserving the tracker and linking back for stack
// traces.
func (f *Frame) WithReceiver(receiver, owner pklvalue.Object, key any) *Frame {
	var tracker Tracker
	if f != nil {
		tracker = f.Tracker
	}
	return &Frame{Receiver: receiver, Owner: owner, MemberKey: key, Parent: f, Tracker: tracker}
}

// constNode is an ExpressionNode that always evaluates to a fixed value;
// used for literal nodes and wherever a body is known ahead of execution.
type constNode struct {
	value   pklvalue.Value
	section SourceSection
}

// Const builds an ExpressionNode that always yields value.
func Const(value pklvalue.Value) ExpressionNode { return constNode{value: value} }

// ConstAt builds a Const node carrying an explicit source section, for
// synthesized members whose diagnostics must point somewhere real.
func ConstAt(value pklvalue.Value, section SourceSection) ExpressionNode {
	return constNode{value: value, section: section}
}

func (c constNode) ExecuteGeneric(*Frame) (pklvalue.Value, error) { return c.value, nil }
func (c constNode) SourceSection() SourceSection                 { return c.section }

// ConstantValue reports whether node is a constant-folded body built via
// Const/ConstAt, and its fixed value if so — the fast path behind the
// constant-folded stack frame synthesis a type-check failure relies on.
func ConstantValue(node ExpressionNode) (pklvalue.Value, bool) {
	c, ok := node.(constNode)
	if !ok {
		return nil, false
	}
	return c.value, true
}

// nativeNode wraps a Go closure as an ExpressionNode, used by the stdlib
// bootstrap and synthesized delegating members (typedToDynamicMembers
// and friends) where no parsed body exists.
type nativeNode struct {
	fn      func(frame *Frame) (pklvalue.Value, error)
	section SourceSection
}

// Native builds an ExpressionNode whose body is the Go function fn.
func Native(fn func(frame *Frame) (pklvalue.Value, error)) ExpressionNode {
	return nativeNode{fn: fn}
}

// NativeAt is Native with an explicit source section.
func NativeAt(fn func(frame *Frame) (pklvalue.Value, error), section SourceSection) ExpressionNode {
	return nativeNode{fn: fn, section: section}
}

func (n nativeNode) ExecuteGeneric(frame *Frame) (pklvalue.Value, error) { return n.fn(frame) }
func (n nativeNode) SourceSection() SourceSection                       { return n.section }
