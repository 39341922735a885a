package eval

import (
	"sync/atomic"

	"github.com/pkl-community/pklcore/internal/class"
	"github.com/pkl-community/pklcore/internal/perr"
	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

var nextFunctionID uint64

// Body is a user-defined or native function implementation, invoked with
// already-evaluated arguments and the calling frame (the per-call
// receiver/owner/memberKey triple, extended with bound parameters).
type Body func(args []pklvalue.Value, frame *ast.Frame) (pklvalue.Value, error)

// Function is the Callable value bound to a method or lambda (a class's
// MethodDef), identity-compared like every other object-graph value.
type Function struct {
	id         uint64
	name       string
	paramNames []string
	paramTypes []class.RuntimeType // element is nil where a parameter is undeclared
	returnType class.RuntimeType
	body       Body
}

// NewFunction builds a Function. paramTypes may be nil or contain nil
// entries for undeclared parameters; returnType nil skips the return
// check.
func NewFunction(name string, paramNames []string, paramTypes []class.RuntimeType, returnType class.RuntimeType, body Body) *Function {
	return &Function{
		id:         atomic.AddUint64(&nextFunctionID, 1),
		name:       name,
		paramNames: paramNames,
		paramTypes: paramTypes,
		returnType: returnType,
		body:       body,
	}
}

func (f *Function) Name() string { return f.name }

// Arity implements pklvalue.Callable.
func (f *Function) Arity() int { return len(f.paramNames) }

// Call invokes the function body with args, type-checking each argument
// against its declared parameter type and the result against the declared
// return type (when present).
func (f *Function) Call(args []pklvalue.Value, frame *ast.Frame) (pklvalue.Value, error) {
	if len(args) != len(f.paramNames) {
		return nil, perr.NewBug("function called with the wrong number of arguments")
	}
	for i, arg := range args {
		if i >= len(f.paramTypes) || f.paramTypes[i] == nil {
			continue
		}
		if checkErr := f.paramTypes[i].Check(arg); checkErr != nil {
			return nil, perr.NewTypeCheckFailure(f.paramNames[i], nil, arg, mirrorOf(f.paramTypes[i]))
		}
	}
	v, err := f.body(args, frame)
	if err != nil {
		return nil, err
	}
	if f.returnType != nil {
		if checkErr := f.returnType.Check(v); checkErr != nil {
			return nil, perr.NewTypeCheckFailure(f.name, nil, v, mirrorOf(f.returnType))
		}
	}
	return v, nil
}

func (*Function) Kind() pklvalue.Kind { return pklvalue.KindFunction }
func (f *Function) Equal(other pklvalue.Value) bool {
	o, ok := other.(*Function)
	return ok && o == f
}
func (f *Function) HashCode() uint64          { return f.id }
func (f *Function) Accept(v pklvalue.Visitor) error { return v.VisitFunction(f) }
func (f *Function) Export() pklvalue.Exported {
	return pklvalue.Exported{Kind: pklvalue.ExportScalar, Scalar: "function " + f.name}
}
