// Package prompt renders the router and answer prompts. Rendering is pure:
// identical inputs always produce byte-identical text.
package prompt

import (
	"fmt"
	"strings"

	"faq-agent/internal/retrieval"
)

// DontKnow is the phrase the answer model must use when the context is insufficient.
const DontKnow = "I don't know"

// Router answer sources.
const (
	SourceContext      = "CONTEXT"
	SourceOwnKnowledge = "OWN_KNOWLEDGE"
)

const routerTemplate = `You're a customer support assistant for an online grocery store.

You're given a QUESTION from a customer that you need to answer with your own knowledge and the provided CONTEXT.
At the beginning the context is EMPTY.

<QUESTION>
%s
</QUESTION>

<CONTEXT>
%s
</CONTEXT>

If CONTEXT is EMPTY, you can use our FAQ database.
In this case, use the following output template:

{
"action": "SEARCH",
"reasoning": "<add your reasoning here>"
}

If you can answer the QUESTION using CONTEXT, use this template:
{
  "action": "ANSWER",
  "answer": "<your answer>",
  "source": "` + SourceContext + `"
}

If the context doesn't contain the answer, use your own knowledge to answer the question.
{
  "action": "ANSWER",
  "answer": "<your answer>",
  "source": "` + SourceOwnKnowledge + `"
}`

// BuildRouterPrompt renders the SEARCH-vs-ANSWER decision prompt.
// contextText is empty on the first decision.
func BuildRouterPrompt(question, contextText string) string {
	return fmt.Sprintf(routerTemplate, question, contextText)
}

// FormatContext renders evidence as one-indexed blocks separated by blank lines.
// The index of each block is the record's position in evidence, which is what
// the model cites.
func FormatContext(evidence []retrieval.EvidenceRecord) string {
	blocks := make([]string, 0, len(evidence))
	for i, e := range evidence {
		blocks = append(blocks, fmt.Sprintf("[%d] TITLE: %s\nTEXT: %s\n", i+1, e.Title, e.Text))
	}
	return strings.Join(blocks, "\n")
}

// BuildAnswerPrompt renders the grounded answer prompt. With no evidence the
// context block is empty and the model is expected to say DontKnow.
func BuildAnswerPrompt(question string, evidence []retrieval.EvidenceRecord) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant. Use ONLY the context below to answer.\n")
	b.WriteString("If the answer is not in the context, say: \"" + DontKnow + "\".\n")
	b.WriteString("Answer in one short sentence. Cite sources by their bracketed number from the context, like [n].\n\n")
	b.WriteString("<context>\n")
	b.WriteString(FormatContext(evidence))
	b.WriteString("\n</context>\n\n")
	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteString("\n\nAnswer:")
	return b.String()
}
