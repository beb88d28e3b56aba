package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"faq-agent/internal/agent"
	"faq-agent/internal/contextutil"
)

// Answerer answers customer questions.
type Answerer interface {
	Answer(ctx context.Context, question string) (agent.AnswerResult, error)
	RAGAnswer(ctx context.Context, question string) (agent.AnswerResult, error)
}

// AskHandler handles HTTP requests for routed and plain RAG answers.
type AskHandler struct {
	answer   func(ctx context.Context, question string) (agent.AnswerResult, error)
	markdown goldmark.Markdown
}

// NewAskHandler creates a handler that routes each question before answering.
func NewAskHandler(answerer Answerer) *AskHandler {
	return &AskHandler{answer: answerer.Answer, markdown: goldmark.New()}
}

// NewRAGHandler creates a handler that always answers from retrieved evidence.
func NewRAGHandler(answerer Answerer) *AskHandler {
	return &AskHandler{answer: answerer.RAGAnswer, markdown: goldmark.New()}
}

// AskRequest represents the HTTP request payload for a question.
//
// swagger:model AskRequest
type AskRequest struct {
	Question string `json:"question"`
	// Format "html" adds the answer rendered from markdown.
	Format string `json:"format,omitempty"`
}

// AskResponse represents the HTTP response payload for a question.
//
// swagger:model AskResponse
type AskResponse struct {
	// DIRECT or RAG_SEARCH
	Mode       string `json:"mode"`
	Answer     string `json:"answer"`
	AnswerHTML string `json:"answer_html,omitempty"`

	// Evidence in citation order; Index matches the [i] markers in the answer.
	Evidence []EvidenceResponse `json:"evidence"`

	// Decision is absent for /api/v1/rag.
	Decision *DecisionResponse `json:"decision,omitempty"`

	// Prompt is the final answer prompt, only with ?debug=true.
	Prompt string `json:"prompt,omitempty"`

	// Degraded is set when the fallback answer was returned.
	Degraded bool `json:"degraded,omitempty"`
}

// EvidenceResponse is one cited evidence record.
//
// swagger:model EvidenceResponse
type EvidenceResponse struct {
	Index  int     `json:"index"`
	Title  string  `json:"title,omitempty"`
	URL    string  `json:"url,omitempty"`
	Text   string  `json:"text"`
	Score  float64 `json:"score"`
	Source string  `json:"source"`
}

// DecisionResponse is the router's parsed decision.
//
// swagger:model DecisionResponse
type DecisionResponse struct {
	Action    string `json:"action"`
	Reasoning string `json:"reasoning,omitempty"`
	Source    string `json:"source,omitempty"`
}

// ServeHTTP handles HTTP requests for questions.
//
// swagger:route POST /api/v1/ask askQuestion
//
// # Ask a question
//
// Routes the question to a direct answer or to a search over the FAQ
// collections and the fact graph. Use `debug=true` to include the answer prompt.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Answer with cited evidence
//	  schema:
//	    "$ref": "#/definitions/AskResponse"
//	'400':
//	  description: Empty question or malformed body
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'502':
//	  description: Language model unavailable
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.answer(ctx, req.Question)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to answer question")
		return
	}

	resp := AskResponse{
		Mode:     string(result.Mode),
		Answer:   result.Answer,
		Evidence: make([]EvidenceResponse, len(result.Evidence)),
		Degraded: result.Degraded,
	}
	for i, e := range result.Evidence {
		resp.Evidence[i] = EvidenceResponse{
			Index:  i + 1,
			Title:  e.Title,
			URL:    e.URL,
			Text:   e.Text,
			Score:  e.Score,
			Source: e.Source,
		}
	}
	if result.Decision != nil {
		resp.Decision = &DecisionResponse{
			Action:    string(result.Decision.Action),
			Reasoning: result.Decision.Reasoning,
			Source:    result.Decision.Source,
		}
	}
	if debug := r.URL.Query().Get("debug"); debug == "1" || strings.EqualFold(debug, "true") {
		resp.Prompt = result.Prompt
	}
	if strings.EqualFold(strings.TrimSpace(req.Format), "html") {
		var buf bytes.Buffer
		if err := h.markdown.Convert([]byte(result.Answer), &buf); err != nil {
			logger.WarnContext(ctx, "failed to render answer markdown", "error", err)
		} else {
			resp.AnswerHTML = buf.String()
		}
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}
