// Package agent routes a customer question either to a direct model answer
// or to retrieval-augmented generation over the FAQ collections and the
// fact graph.
package agent

import "faq-agent/internal/retrieval"

// Action is the router's verdict.
type Action string

const (
	ActionSearch Action = "SEARCH"
	ActionAnswer Action = "ANSWER"
	// ActionUnknown marks a decoded decision whose action is neither SEARCH
	// nor ANSWER. The controller treats it like SEARCH.
	ActionUnknown Action = "UNKNOWN"
)

// Mode tells how an answer was produced.
type Mode string

const (
	ModeDirect    Mode = "DIRECT"
	ModeRAGSearch Mode = "RAG_SEARCH"
)

// RoutingDecision is the parsed router output. Reasoning is meaningful for
// SEARCH, Answer and Source for ANSWER.
type RoutingDecision struct {
	Action    Action `json:"action"`
	Reasoning string `json:"reasoning,omitempty"`
	Answer    string `json:"answer,omitempty"`
	Source    string `json:"source,omitempty"`
	// RawAction is the action string as the model wrote it, kept when Action is ActionUnknown.
	RawAction string `json:"raw_action,omitempty"`
}

// AnswerResult is what Answer and RAGAnswer return.
type AnswerResult struct {
	Mode     Mode
	Answer   string
	Evidence []retrieval.EvidenceRecord
	// Decision is nil for RAGAnswer, which skips routing.
	Decision *RoutingDecision
	// Prompt is the exact answer prompt sent to the model. Empty for DIRECT.
	Prompt string
	// Degraded is set when the answer call failed and the configured fallback answer was used.
	Degraded bool
}
