package retrieval

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"faq-agent/internal/contextutil"
	"faq-agent/internal/metrics"
)

// CollectionRetriever searches a single vector collection.
type CollectionRetriever interface {
	Retrieve(ctx context.Context, query string, collection CollectionConfig) ([]EvidenceRecord, error)
}

// FactSearcher looks up keyword-matched facts.
type FactSearcher interface {
	Lookup(ctx context.Context, query string, limit int) ([]EvidenceRecord, error)
}

// OrchestratorOptions configures an Orchestrator.
type OrchestratorOptions struct {
	// FactLimit bounds the fact-graph records per fan-out.
	FactLimit int
	// TaskTimeout bounds every retrieval task. 0 disables the per-task timeout.
	TaskTimeout time.Duration
	// Metrics receives per-source observations. May be nil.
	Metrics *metrics.Metrics
}

// Orchestrator fans a query out to every configured collection and the fact
// graph concurrently and merges the results in launch order.
type Orchestrator struct {
	vectors CollectionRetriever
	facts   FactSearcher
	opts    OrchestratorOptions
}

// NewOrchestrator creates an Orchestrator. facts may be nil, in which case
// no fact-graph task is launched.
func NewOrchestrator(vectors CollectionRetriever, facts FactSearcher, opts OrchestratorOptions) *Orchestrator {
	return &Orchestrator{
		vectors: vectors,
		facts:   facts,
		opts:    opts,
	}
}

// Gather returns the concatenated evidence of every task that succeeded:
// collection 1..N, then the fact graph. Failed tasks contribute nothing.
func (o *Orchestrator) Gather(ctx context.Context, query string, collections []CollectionConfig) []EvidenceRecord {
	results := o.GatherDetailed(ctx, query, collections)

	merged := make([]EvidenceRecord, 0)
	for _, r := range results {
		merged = append(merged, r.Records...)
	}
	o.opts.Metrics.ObserveEvidence(len(merged))
	return merged
}

// GatherDetailed runs the fan-out and returns one SourceResult per task in launch order.
// It returns once every task has finished or timed out.
func (o *Orchestrator) GatherDetailed(ctx context.Context, query string, collections []CollectionConfig) []SourceResult {
	logger := contextutil.LoggerFromContext(ctx)

	tasks := len(collections)
	if o.facts != nil {
		tasks++
	}
	results := make([]SourceResult, tasks)

	// Tasks never return an error to the group: a failure must not cancel siblings.
	var g errgroup.Group
	for i, collection := range collections {
		g.Go(func() error {
			results[i] = o.run(ctx, collection.Name, func(taskCtx context.Context) ([]EvidenceRecord, error) {
				return o.vectors.Retrieve(taskCtx, query, collection)
			})
			return nil
		})
	}
	if o.facts != nil {
		g.Go(func() error {
			results[tasks-1] = o.run(ctx, FactSource, func(taskCtx context.Context) ([]EvidenceRecord, error) {
				return o.facts.Lookup(taskCtx, query, o.opts.FactLimit)
			})
			return nil
		})
	}
	_ = g.Wait()

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			logger.WarnContext(ctx, "retrieval source failed, continuing without it",
				"source", r.Source,
				"duration_ms", r.Duration.Milliseconds(),
				"error", r.Err,
			)
		}
	}
	logger.InfoContext(ctx, "retrieval fan-out completed", "sources", tasks, "failed", failed)

	return results
}

type taskFunc func(ctx context.Context) ([]EvidenceRecord, error)

// run executes fn under the per-task timeout and converts every failure,
// including a panic or a task that ignores cancellation, into an empty result.
func (o *Orchestrator) run(ctx context.Context, source string, fn taskFunc) SourceResult {
	taskCtx := ctx
	if o.opts.TaskTimeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(ctx, o.opts.TaskTimeout)
		defer cancel()
	}

	type outcome struct {
		records []EvidenceRecord
		err     error
	}
	done := make(chan outcome, 1)

	start := time.Now()
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- outcome{err: fmt.Errorf("retrieval task panicked: %v", p)}
			}
		}()
		records, err := fn(taskCtx)
		done <- outcome{records: records, err: err}
	}()

	var out outcome
	select {
	case out = <-done:
	case <-taskCtx.Done():
		select {
		case out = <-done:
		default:
			out = outcome{err: fmt.Errorf("retrieval task abandoned: %w", taskCtx.Err())}
		}
	}

	result := SourceResult{
		Source:   source,
		Records:  out.records,
		Err:      out.err,
		Duration: time.Since(start),
	}
	if result.Err != nil || result.Records == nil {
		result.Records = []EvidenceRecord{}
	}
	o.opts.Metrics.ObserveSource(source, result.Duration, result.Err)
	return result
}
