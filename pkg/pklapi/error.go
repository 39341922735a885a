package pklapi

import "github.com/pkl-community/pklcore/internal/perr"

// ErrKind mirrors internal/perr.Kind at the public boundary, so embedders
// never need to import an internal package to branch on error kind.
type ErrKind = perr.Kind

const (
	EvalError     = perr.EvalError
	UndefinedValue = perr.UndefinedValue
	Wrapped       = perr.Wrapped
	Bug           = perr.Bug
	StackOverflow = perr.StackOverflow
)

// Error is the public exception surface: every field internal/perr.Exception
// carries, re-exported so a host program's error handling never has to
// reach past pkg/pklapi.
type Error = perr.Exception

// StackFrame mirrors internal/perr.StackFrame at the public boundary.
type StackFrame = perr.StackFrame

// StackFrameTransformer is a pure function applied to each frame before a
// PklException reaches a renderer.
type StackFrameTransformer func(StackFrame) StackFrame
