package engine

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	apperrors "github.com/agbru/mixrng/internal/errors"
	"github.com/agbru/mixrng/internal/logging"
	"github.com/agbru/mixrng/internal/metrics"
	"github.com/agbru/mixrng/internal/mixer"
	"github.com/agbru/mixrng/internal/seed"
	"github.com/agbru/mixrng/internal/worker"
)

const instrumentationName = "github.com/agbru/mixrng/internal/engine"

// Report is the outcome of a successful run.
type Report struct {
	// Value is the aggregated result.
	Value uint64
	// States holds the final state of worker i at index i.
	States []uint64
	// Duration is the wall-clock time from dispatch to aggregation.
	Duration time.Duration
}

// Engine runs generation jobs. It is safe for concurrent use; concurrent runs
// share the worker budget.
type Engine struct {
	mixer      mixer.Mixer
	aggregator Aggregator
	observer   Observer
	logger     logging.Logger
	metrics    *metrics.Collector
	tracer     trace.Tracer

	limit  int
	budget *semaphore.Weighted
	// budgetMu makes a failed TryAcquire and the inUse read one snapshot.
	budgetMu sync.Mutex
	inUse    int
}

// Option configures an Engine during construction.
type Option func(*Engine)

// WithMixer sets the transform every worker applies.
func WithMixer(m mixer.Mixer) Option {
	return func(e *Engine) { e.mixer = m }
}

// WithAggregator sets the policy folding worker states into the result.
func WithAggregator(a Aggregator) Option {
	return func(e *Engine) { e.aggregator = a }
}

// WithObserver installs lifecycle hooks.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithMetrics records every validated run on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Engine) { e.metrics = c }
}

// WithTracerProvider sets the provider used for run spans. The default is the
// global otel provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Engine) { e.tracer = tp.Tracer(instrumentationName) }
}

// WithWorkerLimit caps the number of workers running at once across all
// runs of the engine. A run needing more than the free budget fails with a
// ResourceError before any worker starts. n <= 0 means unlimited.
func WithWorkerLimit(n int) Option {
	return func(e *Engine) {
		e.limit = n
		e.budget = nil
		if n > 0 {
			e.budget = semaphore.NewWeighted(int64(n))
		}
	}
}

// New returns an Engine using the xorshift mixer and XOR aggregation unless
// overridden by opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		mixer:      mixer.Xorshift{},
		aggregator: XORFold{},
		observer:   NopObserver{},
		logger:     logging.NewNopLogger(),
		tracer:     otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.observer == nil {
		e.observer = NopObserver{}
	}
	if e.logger == nil {
		e.logger = logging.NewNopLogger()
	}
	return e
}

// Run executes cfg and returns the aggregated value.
func (e *Engine) Run(ctx context.Context, cfg Config) (uint64, error) {
	rep, err := e.RunReport(ctx, cfg)
	if err != nil {
		return 0, err
	}
	return rep.Value, nil
}

// RunReport executes cfg and returns the aggregated value together with each
// worker's final state. It blocks until every worker has finished.
//
// Errors:
//   - ConfigError: cfg is invalid; nothing was started.
//   - ResourceError: the worker budget could not cover cfg.Threads; nothing was started.
//   - ContractError: the engine is misconfigured or a worker panicked.
func (e *Engine) RunReport(ctx context.Context, cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	if e.mixer == nil {
		return Report{}, apperrors.NewContractError("engine.Run", "nil mixer")
	}
	if e.aggregator == nil {
		return Report{}, apperrors.NewContractError("engine.Run", "nil aggregator")
	}

	_, span := e.tracer.Start(ctx, "engine.Run", trace.WithAttributes(
		attribute.Int("mixrng.threads", cfg.Threads),
		attribute.Int("mixrng.loops", cfg.Loops),
	))
	defer span.End()

	start := time.Now()
	rep, err := e.run(cfg)
	rep.Duration = time.Since(start)
	e.metrics.ObserveRun(outcome(err), cfg.Threads, cfg.Loops, rep.Duration)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Error("run failed", err,
			logging.String("outcome", outcome(err)),
			logging.Int("threads", cfg.Threads),
			logging.Int("loops", cfg.Loops))
		return Report{}, err
	}

	span.SetStatus(codes.Ok, "")
	e.logger.Info("run complete",
		logging.Int("threads", cfg.Threads),
		logging.Int("loops", cfg.Loops),
		logging.Uint64("result", rep.Value),
		logging.Float64("seconds", rep.Duration.Seconds()))
	return rep, nil
}

func (e *Engine) run(cfg Config) (Report, error) {
	if err := e.reserve(cfg.Threads); err != nil {
		return Report{}, err
	}
	defer e.release(cfg.Threads)

	params := slices.Clone(cfg.Params)
	states := make([]uint64, cfg.Threads)
	for i := range states {
		states[i] = cfg.Seed
	}

	e.logger.Debug("dispatching workers",
		logging.Int("threads", cfg.Threads),
		logging.Int("loops", cfg.Loops),
		logging.Uint64("seed", cfg.Seed))

	var g errgroup.Group
	for i := range cfg.Threads {
		task := worker.Task{State: &states[i], Params: &params[i], Loops: cfg.Loops, Mixer: e.mixer}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = apperrors.FromPanic(i, r)
				}
			}()
			worker.Run(task)
			e.observer.WorkerFinished(i, states[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	e.observer.Aggregating(states)
	return Report{Value: e.aggregator.Fold(states), States: states}, nil
}

func (e *Engine) reserve(n int) error {
	if e.budget == nil {
		return nil
	}
	e.budgetMu.Lock()
	defer e.budgetMu.Unlock()
	if !e.budget.TryAcquire(int64(n)) {
		return apperrors.ResourceError{Requested: n, Available: e.limit - e.inUse}
	}
	e.inUse += n
	return nil
}

func (e *Engine) release(n int) {
	if e.budget == nil {
		return
	}
	e.budgetMu.Lock()
	defer e.budgetMu.Unlock()
	e.inUse -= n
	e.budget.Release(int64(n))
}

func outcome(err error) string {
	switch apperrors.ExitCodeFor(err) {
	case apperrors.ExitSuccess:
		return metrics.OutcomeSuccess
	case apperrors.ExitErrorResource:
		return metrics.OutcomeResource
	default:
		return metrics.OutcomeContract
	}
}

// Generate runs DefaultConfig seeded from the process-wide seed source.
func Generate(ctx context.Context) (uint64, error) {
	return New().Run(ctx, DefaultConfig(seed.Global().Seed()))
}
