package sweep

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oklog/ulid/v2"

	"github.com/rshade/southpole/internal/emissions"
	"github.com/rshade/southpole/internal/logging"
	"github.com/rshade/southpole/internal/scenario"
)

// DefaultCacheSize bounds the memoisation cache.
const DefaultCacheSize = 1024

// Result is the outcome of one parameter set. Exactly one of Evaluation and Err
// is meaningful.
type Result struct {
	Index      int             `json:"index"`
	Input      scenario.Input  `json:"input"`
	Evaluation scenario.Result `json:"evaluation"`
	Err        error           `json:"-"`

	// Cached is true when the evaluation was served from the cache.
	Cached bool `json:"cached"`
}

// Failed reports whether the parameter set failed to evaluate.
func (r Result) Failed() bool { return r.Err != nil }

// Report is the outcome of a whole run, in input order.
type Report struct {
	RunID     string        `json:"run_id"`
	Results   []Result      `json:"results"`
	Failed    int           `json:"failed"`
	CacheHits int           `json:"cache_hits"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Options configure a Runner. Zero values select defaults.
type Options struct {
	Concurrency int
	BatchSize   int
	CacheSize   int
	Metrics     *Metrics
	OnProgress  ProgressCallback
}

type cacheKey struct {
	capacities emissions.ScenarioInput
	fuel       scenario.FuelMiles
	hasFuel    bool
}

// Runner evaluates parameter sets against one calculator.
type Runner struct {
	calc        *emissions.Calculator
	processor   *Processor[scenario.Input]
	concurrency int
	cache       *lru.Cache[cacheKey, scenario.Result]
	metrics     *Metrics
}

// NewRunner builds a Runner.
func NewRunner(calc *emissions.Calculator, opts Options) (*Runner, error) {
	if calc == nil {
		calc = emissions.Default()
	}

	batchSize := opts.BatchSize
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	processor, err := NewProcessor[scenario.Input](batchSize)
	if err != nil {
		return nil, err
	}
	processor.WithProgressCallback(opts.OnProgress)

	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, scenario.Result](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating sweep cache: %w", err)
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}

	return &Runner{
		calc:        calc,
		processor:   processor,
		concurrency: max(opts.Concurrency, 1),
		cache:       cache,
		metrics:     metrics,
	}, nil
}

// Metrics returns the runner's metrics.
func (r *Runner) Metrics() *Metrics { return r.metrics }

// Run evaluates every input. Individual failures are recorded in their
// Result; only cancellation of ctx aborts the run.
func (r *Runner) Run(ctx context.Context, inputs []scenario.Input) (Report, error) {
	runID := ulid.Make().String()
	log := logging.ComponentLogger(*logging.FromContext(ctx), "sweep").
		With().Str("run_id", runID).Logger()
	ctx = log.WithContext(ctx)
	start := time.Now()

	report := Report{RunID: runID, Results: make([]Result, len(inputs))}
	if len(inputs) == 0 {
		return report, nil
	}

	log.Info().
		Int("scenarios", len(inputs)).
		Int("concurrency", r.concurrency).
		Int("batch_size", r.processor.BatchSize()).
		Msg("sweep started")

	err := r.processor.Process(ctx, inputs, func(ctx context.Context, batch []scenario.Input, offset int) error {
		for i, in := range batch {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.Results[offset+i] = r.evaluate(ctx, offset+i, in)
		}
		return nil
	}, r.concurrency)
	if err != nil {
		return report, fmt.Errorf("sweep %s: %w", runID, err)
	}

	for _, res := range report.Results {
		if res.Failed() {
			report.Failed++
		}
		if res.Cached {
			report.CacheHits++
		}
	}
	report.Elapsed = time.Since(start)

	log.Info().
		Int("failed", report.Failed).
		Int("cache_hits", report.CacheHits).
		Dur("elapsed", report.Elapsed).
		Msg("sweep finished")

	return report, nil
}

func (r *Runner) evaluate(ctx context.Context, index int, in scenario.Input) Result {
	key := cacheKey{capacities: in.Capacities}
	if in.FuelProduction != nil {
		key.fuel = *in.FuelProduction
		key.hasFuel = true
	}

	if cached, ok := r.cache.Get(key); ok {
		r.metrics.CacheHits.Inc()
		r.metrics.Evaluations.WithLabelValues(StatusOK).Inc()
		ev := cached.Clone()
		ev.Name = in.Name
		return Result{Index: index, Input: in, Evaluation: ev, Cached: true}
	}

	start := time.Now()
	res, err := scenario.Evaluate(ctx, r.calc, in)
	r.metrics.EvaluationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		r.metrics.Evaluations.WithLabelValues(StatusError).Inc()
		logging.FromContext(ctx).Warn().Err(err).Int("index", index).Str("scenario", in.Name).Msg("scenario failed")
		return Result{Index: index, Input: in, Err: err}
	}

	r.metrics.Evaluations.WithLabelValues(StatusOK).Inc()
	r.cache.Add(key, res.Clone())
	return Result{Index: index, Input: in, Evaluation: res}
}
