package agent

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_generator.go -package=mocks faq-agent/internal/agent Generator
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_gatherer.go -package=mocks faq-agent/internal/agent Gatherer

import (
	"context"
	"strings"
	"time"

	"faq-agent/internal/contextutil"
	"faq-agent/internal/llm"
	"faq-agent/internal/metrics"
	"faq-agent/internal/prompt"
	"faq-agent/internal/retrieval"
	"faq-agent/internal/service"
)

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, params llm.GenerateParams) (string, error)
}

// Gatherer fans a query out to every retrieval source.
type Gatherer interface {
	Gather(ctx context.Context, query string, collections []retrieval.CollectionConfig) []retrieval.EvidenceRecord
}

// Answer outcomes reported to metrics.
const (
	outcomeOK       = "ok"
	outcomeDegraded = "degraded"
	outcomeError    = "error"
)

// decisionError labels routing calls that produced no text to parse.
const decisionError = "ERROR"

// Options configures an Agent.
type Options struct {
	// Model overrides the generator's default model when non-empty.
	Model       string
	Temperature float32
	MaxTokens   int
	// LLMTimeout bounds each model call. 0 disables it.
	LLMTimeout time.Duration
	// FallbackAnswer, when non-empty, is returned with Degraded set if the answer call fails.
	FallbackAnswer string
	// Metrics may be nil.
	Metrics *metrics.Metrics
}

// Agent drives one question through routing and, when needed, retrieval.
// It issues at most two model calls and one fan-out per question.
type Agent struct {
	generator   Generator
	gatherer    Gatherer
	collections []retrieval.CollectionConfig
	opts        Options
}

// New creates an Agent searching the given collections in order.
func New(generator Generator, gatherer Gatherer, collections []retrieval.CollectionConfig, opts Options) *Agent {
	return &Agent{
		generator:   generator,
		gatherer:    gatherer,
		collections: collections,
		opts:        opts,
	}
}

// Answer routes question and returns either the router's direct answer or a
// grounded answer built from retrieved evidence. Unknown and unparseable
// decisions take the search path. It fails only when a model call fails
// without a fallback.
func (a *Agent) Answer(ctx context.Context, question string) (AnswerResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question, err := validateQuestion(question)
	if err != nil {
		return AnswerResult{}, err
	}

	decision, err := a.Decide(ctx, question, "")
	if err != nil {
		return AnswerResult{}, err
	}

	if decision.Action == ActionAnswer {
		logger.InfoContext(ctx, "answered directly", "source", decision.Source, "answer_length", len(decision.Answer))
		a.opts.Metrics.ObserveAnswer(string(ModeDirect), outcomeOK)
		return AnswerResult{
			Mode:     ModeDirect,
			Answer:   decision.Answer,
			Evidence: []retrieval.EvidenceRecord{},
			Decision: &decision,
		}, nil
	}

	if decision.Action == ActionUnknown {
		logger.WarnContext(ctx, "unrecognized routing action, searching instead", "action", decision.RawAction)
	}
	return a.search(ctx, question, &decision)
}

// RAGAnswer skips routing and always answers from retrieved evidence.
func (a *Agent) RAGAnswer(ctx context.Context, question string) (AnswerResult, error) {
	question, err := validateQuestion(question)
	if err != nil {
		return AnswerResult{}, err
	}
	return a.search(ctx, question, nil)
}

// Decide asks the router whether question needs a search. contextText is
// shown to the router as already-known context and is empty on a first pass.
func (a *Agent) Decide(ctx context.Context, question, contextText string) (RoutingDecision, error) {
	logger := contextutil.LoggerFromContext(ctx)

	raw, err := a.generate(ctx, prompt.BuildRouterPrompt(question, contextText))
	if err != nil {
		logger.ErrorContext(ctx, "routing call failed", "error", err)
		a.opts.Metrics.ObserveDecision(decisionError)
		return RoutingDecision{}, service.ExternalError(err, "routing call failed")
	}

	decision := ParseDecision(raw)
	if decision.Action == ActionSearch && decision.Reasoning == ParseFailureReasoning {
		logger.WarnContext(ctx, "router output was not a JSON object", "raw_length", len(raw))
	}
	logger.InfoContext(ctx, "routing decision", "action", decision.Action)
	a.opts.Metrics.ObserveDecision(string(decision.Action))
	return decision, nil
}

func (a *Agent) search(ctx context.Context, question string, decision *RoutingDecision) (AnswerResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	evidence := a.gatherer.Gather(ctx, question, a.collections)
	if evidence == nil {
		evidence = []retrieval.EvidenceRecord{}
	}
	answerPrompt := prompt.BuildAnswerPrompt(question, evidence)

	result := AnswerResult{
		Mode:     ModeRAGSearch,
		Evidence: evidence,
		Decision: decision,
		Prompt:   answerPrompt,
	}

	answer, err := a.generate(ctx, answerPrompt)
	if err != nil {
		if a.opts.FallbackAnswer == "" {
			logger.ErrorContext(ctx, "answer call failed", "evidence", len(evidence), "error", err)
			a.opts.Metrics.ObserveAnswer(string(ModeRAGSearch), outcomeError)
			return AnswerResult{}, service.ExternalError(err, "answer call failed")
		}
		logger.WarnContext(ctx, "answer call failed, using fallback answer", "evidence", len(evidence), "error", err)
		a.opts.Metrics.ObserveAnswer(string(ModeRAGSearch), outcomeDegraded)
		result.Answer = a.opts.FallbackAnswer
		result.Degraded = true
		return result, nil
	}

	logger.InfoContext(ctx, "answered from evidence", "evidence", len(evidence), "answer_length", len(answer))
	a.opts.Metrics.ObserveAnswer(string(ModeRAGSearch), outcomeOK)
	result.Answer = answer
	return result, nil
}

// generate runs one model call under the configured timeout.
func (a *Agent) generate(ctx context.Context, text string) (string, error) {
	if a.opts.LLMTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.LLMTimeout)
		defer cancel()
	}
	return a.generator.Generate(ctx, text, llm.GenerateParams{
		Model:       a.opts.Model,
		Temperature: a.opts.Temperature,
		MaxTokens:   a.opts.MaxTokens,
	})
}

func validateQuestion(question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", &service.ValidationError{Field: "question", Message: "cannot be empty"}
	}
	return question, nil
}
