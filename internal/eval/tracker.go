package eval

import (
	"sync"

	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

// RecordingTracker is a Tracker that collects every value produced for
// each observed expression node, used by assertion rendering. It is
// scoped to one local evaluation context; it never participates in
// memoization.
type RecordingTracker struct {
	mu       sync.Mutex
	observed map[ast.ExpressionNode][]pklvalue.Value
}

// NewRecordingTracker builds an empty tracker.
func NewRecordingTracker() *RecordingTracker {
	return &RecordingTracker{observed: make(map[ast.ExpressionNode][]pklvalue.Value)}
}

// Observe implements ast.Tracker.
func (t *RecordingTracker) Observe(node ast.ExpressionNode, value pklvalue.Value) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observed[node] = append(t.observed[node], value)
}

// ValuesFor returns every value recorded for node, in observation order.
func (t *RecordingTracker) ValuesFor(node ast.ExpressionNode) []pklvalue.Value {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]pklvalue.Value(nil), t.observed[node]...)
}

var _ ast.Tracker = (*RecordingTracker)(nil)
