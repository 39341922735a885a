package perr

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

// Kind is the closed exception taxonomy, tagging *why* an evaluation
// failed, independent of the host's own error types.
type Kind uint8

const (
	EvalError Kind = iota
	UndefinedValue
	Wrapped
	Bug
	StackOverflow
)

func (k Kind) String() string {
	switch k {
	case EvalError:
		return "EvalError"
	case UndefinedValue:
		return "UndefinedValue"
	case Wrapped:
		return "Wrapped"
	case Bug:
		return "Bug"
	case StackOverflow:
		return "StackOverflow"
	default:
		return "Unknown"
	}
}

// ProgramValue is one named value captured at the failure point, shown
// verbatim in a rendered trace.
type ProgramValue struct {
	Name  string
	Value pklvalue.Value
}

// StackFrame is one call-site entry in an Exception's trace.
type StackFrame struct {
	ModuleURI  string
	MemberName string
	Section    ast.SourceSection
}

// Exception is the structured error every evaluation failure produces.
// Message may be a literal or paired with a CatalogKey for localization;
// Cause chains an inner error (Wrapped kind); InsertedFrames is the side
// channel a constant-folded member's type-check failure uses to present
// the same stack trace as its dynamic counterpart.
type Exception struct {
	Kind Kind

	Message     string
	CatalogKey  string
	CatalogArgs []any

	Cause   error
	Section *ast.SourceSection
	Member  string
	Hint    string

	ProgramValues []ProgramValue

	// InsertedFrames is keyed by call target (e.g. a member's qualified
	// name) so a later renderer can splice a synthesized frame into the
	// trace at the right position without re-running the evaluation.
	InsertedFrames map[string]StackFrame

	Stack []StackFrame
}

func (e *Exception) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Member != "" {
		fmt.Fprintf(&b, " (member %q)", e.Member)
	}
	if e.Section != nil {
		fmt.Fprintf(&b, " at %s:%d:%d", e.Section.ModuleURI, e.Section.StartLine, e.Section.StartCol)
	}
	if e.Hint != "" {
		fmt.Fprintf(&b, "\nhint: %s", e.Hint)
	}
	return b.String()
}

func (e *Exception) Unwrap() error { return e.Cause }

// WithProgramValue returns e with (name, value) appended to ProgramValues,
// for call sites that want to chain construction.
func (e *Exception) WithProgramValue(name string, value pklvalue.Value) *Exception {
	e.ProgramValues = append(e.ProgramValues, ProgramValue{Name: name, Value: value})
	return e
}

// InsertFrame records a synthesized stack frame for target, so a renderer
// encountering a constant-folded failure can show the member's body frame
// exactly as if it had been evaluated dynamically.
func (e *Exception) InsertFrame(target string, frame StackFrame) *Exception {
	if e.InsertedFrames == nil {
		e.InsertedFrames = make(map[string]StackFrame)
	}
	e.InsertedFrames[target] = frame
	return e
}

// Dump renders e's captured program values for debug tooling, using
// go-spew so nested Value variants print their full structure rather than
// a Go-syntax %#v dump.
func (e *Exception) Dump() string {
	var b strings.Builder
	for _, pv := range e.ProgramValues {
		fmt.Fprintf(&b, "%s: %s\n", pv.Name, spew.Sdump(pv.Value))
	}
	return b.String()
}

// Wrap builds a Wrapped exception around cause, preserving it for
// debugger tooling: the inner error is preserved.
func Wrap(cause error, message string) *Exception {
	return &Exception{Kind: Wrapped, Message: message, Cause: cause}
}

// NewEvalError builds a plain EvalError at section.
func NewEvalError(message string, section *ast.SourceSection) *Exception {
	return &Exception{Kind: EvalError, Message: message, Section: section}
}

// NewUndefinedValue builds the error force(allowUndef=false) raises when a
// member has no usable value.
func NewUndefinedValue(member string) *Exception {
	return &Exception{Kind: UndefinedValue, Message: "member has no usable value", Member: member}
}

// NewBug builds an internal-invariant-violation error (e.g. unreachable
// branch), reported with kind Bug rather than surfaced as user error.
func NewBug(message string) *Exception {
	return &Exception{Kind: Bug, Message: message}
}

// NewStackOverflow builds the error raised when recursion depth is
// exceeded; rendering the compressed-loop strategy is the renderer's job,
// not this package's.
func NewStackOverflow(message string) *Exception {
	return &Exception{Kind: StackOverflow, Message: message}
}

// WrapSecurityManagerRejection builds an EvalError around a security
// manager's rejection: security-manager rejections propagate as
// EvalError with the SM exception as cause.
func WrapSecurityManagerRejection(cause error) *Exception {
	return &Exception{Kind: EvalError, Message: "operation rejected by security manager", Cause: cause}
}

// WrapResourceIOError builds an EvalError around a resource/module I/O
// failure.
func WrapResourceIOError(cause error, uri string) *Exception {
	return &Exception{Kind: EvalError, Message: fmt.Sprintf("I/O error reading %s", uri), Cause: cause}
}

// NewTypeCheckFailure builds the EvalError a failed type-check at a read
// site raises, carrying the offending value as the "Value" program
// value.
func NewTypeCheckFailure(member string, section *ast.SourceSection, got pklvalue.Value, wantDescription string) *Exception {
	e := &Exception{
		Kind:    EvalError,
		Message: fmt.Sprintf("expected a value of type %s", wantDescription),
		Member:  member,
		Section: section,
	}
	return e.WithProgramValue("Value", got)
}
