package engine

// Observer receives lifecycle notifications from a run. WorkerFinished is
// called from the worker's goroutine once its loop is done; Aggregating is
// called from the caller's goroutine after every worker has been joined and
// before the states are folded. Neither is called for a rejected config.
//
// Implementations must be safe for concurrent WorkerFinished calls and must
// not modify states.
type Observer interface {
	WorkerFinished(index int, state uint64)
	Aggregating(states []uint64)
}

// NopObserver ignores every notification.
type NopObserver struct{}

// WorkerFinished does nothing.
func (NopObserver) WorkerFinished(int, uint64) {}

// Aggregating does nothing.
func (NopObserver) Aggregating([]uint64) {}
