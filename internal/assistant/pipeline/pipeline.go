// internal/assistant/pipeline/pipeline.go

// Package pipeline composes the assistant stages: classify the query,
// retrieve a bounded context for the intent, then generate an answer.
package pipeline

import (
	"context"
	"time"

	"hr-assistant/internal/assistant/contexts"
	"hr-assistant/internal/assistant/generate"
	"hr-assistant/internal/assistant/intent"
	"hr-assistant/internal/assistant/retrieve"
	"hr-assistant/internal/common/logger"
	"hr-assistant/internal/common/metrics"
	"hr-assistant/internal/common/observability"
)

// Result is one processed query: the classified intent, the context snapshot
// that grounds the answer, and the echo of the original question.
type Result struct {
	Intent        intent.Intent    `json:"intent"`
	Context       contexts.Context `json:"context"`
	OriginalQuery string           `json:"original_query"`
	Timestamp     time.Time        `json:"timestamp"`
}

// Pipeline is safe for concurrent use. The retriever samples its clock once
// per call, so every stage of one query observes the same reference date.
type Pipeline struct {
	retriever *retrieve.Retriever
	generator *generate.Generator
	obs       *observability.Observability
	logger    logger.Logger
}

func New(retriever *retrieve.Retriever, generator *generate.Generator, log logger.Logger) *Pipeline {
	return &Pipeline{
		retriever: retriever,
		generator: generator,
		logger:    log.With(map[string]interface{}{"component": "pipeline"}),
	}
}

// WithObservability attaches the OTel recorder. Optional; the Prometheus
// counters are always active.
func (p *Pipeline) WithObservability(obs *observability.Observability) *Pipeline {
	p.obs = obs
	return p
}

// Process classifies the query and retrieves its context. An error always
// means the record store failed; classification itself is total.
func (p *Pipeline) Process(ctx context.Context, query string) (*Result, error) {
	start := time.Now()
	label := intent.Classify(query)
	metrics.AssistantQueries.WithLabelValues(string(label)).Inc()
	metrics.QueryDuration.WithLabelValues("classify").Observe(time.Since(start).Seconds())

	retrieveStart := time.Now()
	snapshot, err := p.retriever.Retrieve(ctx, label, query)
	metrics.QueryDuration.WithLabelValues("retrieve").Observe(time.Since(retrieveStart).Seconds())
	if p.obs != nil {
		p.obs.RecordQueryDuration(ctx, time.Since(start), string(label))
	}
	if err != nil {
		p.logger.WithError(err).Error("context retrieval failed", map[string]interface{}{
			"intent": string(label),
		})
		return nil, err
	}

	p.logger.Debug("query processed", map[string]interface{}{
		"intent":       string(label),
		"context_type": snapshot.ContextType(),
	})

	return &Result{
		Intent:        label,
		Context:       snapshot,
		OriginalQuery: query,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// Answer renders a natural language answer for a processed query. It never
// fails and never returns an empty string.
func (p *Pipeline) Answer(ctx context.Context, result *Result) string {
	start := time.Now()
	answer, strategy := p.generator.Generate(ctx, result.OriginalQuery, result.Context)
	metrics.QueryDuration.WithLabelValues("generate").Observe(time.Since(start).Seconds())
	if p.obs != nil {
		p.obs.RecordQueryProcessed(ctx, string(result.Intent), strategy)
	}
	return answer
}
