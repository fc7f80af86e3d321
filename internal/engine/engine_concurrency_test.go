package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/agbru/mixrng/internal/errors"
	"github.com/agbru/mixrng/internal/mixer"
)

// barrierObserver fails the run's invariant if aggregation starts before
// every worker has reported completion.
type barrierObserver struct {
	threads  int
	finished atomic.Int32
	violated atomic.Bool
	folds    atomic.Int32
}

func (o *barrierObserver) WorkerFinished(int, uint64) {
	// Widen the window in which an early aggregation read would be visible.
	time.Sleep(time.Millisecond)
	o.finished.Add(1)
}

func (o *barrierObserver) Aggregating(states []uint64) {
	o.folds.Add(1)
	if int(o.finished.Load()) != o.threads || len(states) != o.threads {
		o.violated.Store(true)
	}
}

// TestRun_EightWorkersJoinBeforeAggregation verifies, over many rounds, that
// an 8-worker run always completes and never aggregates early.
func TestRun_EightWorkersJoinBeforeAggregation(t *testing.T) {
	for round := 0; round < 50; round++ {
		obs := &barrierObserver{threads: 8}
		e := New(WithObserver(obs))

		done := make(chan error, 1)
		go func() {
			_, err := e.Run(context.Background(), Config{Threads: 8, Loops: 500, Seed: uint64(round), Params: shiftTable})
			done <- err
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("round %d: Run: %v", round, err)
			}
		case <-time.After(10 * time.Second):
			t.Fatalf("DEADLOCK: round %d did not complete within timeout", round)
		}

		if obs.violated.Load() {
			t.Fatalf("round %d: aggregation read happened before every worker finished", round)
		}
		if obs.folds.Load() != 1 {
			t.Fatalf("round %d: expected one aggregation, got %d", round, obs.folds.Load())
		}
	}
}

// TestRun_ObserverSeesFinalStates verifies the states handed to Aggregating
// match the report and every worker notified exactly once.
func TestRun_ObserverSeesFinalStates(t *testing.T) {
	t.Parallel()
	obs := newRecordingObserver()
	rep, err := New(WithObserver(obs)).RunReport(context.Background(),
		Config{Threads: 8, Loops: 100, Seed: 3, Params: shiftTable})
	if err != nil {
		t.Fatalf("RunReport: %v", err)
	}

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if obs.finishedAtFold != 8 {
		t.Errorf("workers finished at aggregation = %d, want 8", obs.finishedAtFold)
	}
	for i, s := range rep.States {
		if obs.statesSeenAtAgg[i] != s {
			t.Errorf("worker %d: observer saw %d, report has %d", i, obs.statesSeenAtAgg[i], s)
		}
	}
}

// TestRun_ConcurrentRunsAreIndependent runs the same engine from many
// goroutines and checks every caller gets the single-run answer.
func TestRun_ConcurrentRunsAreIndependent(t *testing.T) {
	t.Parallel()
	e := New()
	cfg := Config{Threads: 8, Loops: 1000, Seed: 1, Params: shiftTable}

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := e.Run(context.Background(), cfg)
			if err != nil {
				errs <- err
				return
			}
			if v != 5878755964036805969 {
				errs <- errors.New("concurrent run produced a different value")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

// blockingMixer parks every Mix call until release is closed.
type blockingMixer struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (m *blockingMixer) Mix(state uint64, _ mixer.Params) uint64 {
	m.once.Do(func() { close(m.started) })
	<-m.release
	return state
}

// TestRun_SharedWorkerBudget verifies a run is rejected while another run
// holds the budget, and accepted again once it is released.
func TestRun_SharedWorkerBudget(t *testing.T) {
	t.Parallel()
	m := &blockingMixer{started: make(chan struct{}), release: make(chan struct{})}
	e := New(WithWorkerLimit(2), WithMixer(m))

	first := make(chan error, 1)
	go func() {
		_, err := e.Run(context.Background(), Config{Threads: 2, Loops: 1, Seed: 1, Params: shiftTable[:2]})
		first <- err
	}()
	<-m.started

	_, err := e.Run(context.Background(), Config{Threads: 1, Loops: 1, Seed: 1, Params: shiftTable[:1]})
	var resourceErr apperrors.ResourceError
	if !errors.As(err, &resourceErr) {
		t.Fatalf("expected ResourceError while the budget is held, got %v", err)
	}
	if resourceErr.Available != 0 {
		t.Errorf("Available = %d while the whole budget is held, want 0", resourceErr.Available)
	}

	close(m.release)
	if err := <-first; err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := e.Run(context.Background(), Config{Threads: 2, Loops: 1, Seed: 1, Params: shiftTable[:2]}); err != nil {
		t.Fatalf("run after release: %v", err)
	}
}

// TestRun_ResourceErrorReportsFreeBudget hammers a small budget from many
// goroutines. Every rejection must report a free budget that was really too
// small for the request.
func TestRun_ResourceErrorReportsFreeBudget(t *testing.T) {
	t.Parallel()
	const (
		limit   = 4
		threads = 3
		callers = 16
		rounds  = 50
	)
	e := New(WithWorkerLimit(limit))
	cfg := Config{Threads: threads, Loops: 100, Seed: 1, Params: shiftTable[:threads]}

	var wg sync.WaitGroup
	errs := make(chan error, callers*rounds)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range rounds {
				if _, err := e.Run(context.Background(), cfg); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		var resourceErr apperrors.ResourceError
		if !errors.As(err, &resourceErr) {
			t.Fatalf("unexpected error: %v", err)
		}
		if resourceErr.Available < 0 || resourceErr.Available >= threads {
			t.Fatalf("Available = %d, want within [0, %d)", resourceErr.Available, threads)
		}
	}
}
