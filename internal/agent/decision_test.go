package agent

import (
	"testing"
)

func TestParseDecision(t *testing.T) {
	sentinel := RoutingDecision{Action: ActionSearch, Reasoning: ParseFailureReasoning}

	tests := []struct {
		name string
		raw  string
		want RoutingDecision
	}{
		{
			name: "bare answer object",
			raw:  `{"action":"ANSWER","answer":"Stores open 8am-4pm Sunday.","source":"OWN_KNOWLEDGE"}`,
			want: RoutingDecision{Action: ActionAnswer, Answer: "Stores open 8am-4pm Sunday.", Source: "OWN_KNOWLEDGE"},
		},
		{
			name: "answer surrounded by prose",
			raw:  "Sure! Here is my decision:\n{\n  \"action\": \"ANSWER\",\n  \"answer\": \"Yes, we deliver on Sundays.\",\n  \"source\": \"CONTEXT\"\n}\nLet me know if you need more.",
			want: RoutingDecision{Action: ActionAnswer, Answer: "Yes, we deliver on Sundays.", Source: "CONTEXT"},
		},
		{
			name: "search with reasoning",
			raw:  `{"action":"SEARCH","reasoning":"need policy lookup"}`,
			want: RoutingDecision{Action: ActionSearch, Reasoning: "need policy lookup"},
		},
		{
			name: "lowercase action with padding",
			raw:  `{"action":"  answer ","answer":"42"}`,
			want: RoutingDecision{Action: ActionAnswer, Answer: "42"},
		},
		{
			name: "answer without answer field",
			raw:  `{"action":"ANSWER"}`,
			want: RoutingDecision{Action: ActionAnswer},
		},
		{
			name: "unknown action keeps raw value",
			raw:  `{"action":"ESCALATE","reasoning":"angry customer"}`,
			want: RoutingDecision{Action: ActionUnknown, Reasoning: "angry customer", RawAction: "ESCALATE"},
		},
		{
			name: "missing action",
			raw:  `{"answer":"maybe"}`,
			want: RoutingDecision{Action: ActionUnknown, Answer: "maybe"},
		},
		{
			name: "non-string action",
			raw:  `{"action":1}`,
			want: RoutingDecision{Action: ActionUnknown},
		},
		{
			name: "plain prose",
			raw:  "I think you should search for this",
			want: sentinel,
		},
		{
			name: "empty output",
			raw:  "",
			want: sentinel,
		},
		{
			name: "truncated object",
			raw:  `{"action":"ANSWER","answer":"Stores open`,
			want: sentinel,
		},
		{
			name: "unbalanced closing brace only",
			raw:  `action: SEARCH }`,
			want: sentinel,
		},
		{
			name: "array",
			raw:  `[{"action":"ANSWER","answer":"no"}]`,
			want: sentinel,
		},
		{
			name: "bracketed prose before object",
			raw:  `[note] {"action":"ANSWER","answer":"x"}`,
			want: sentinel,
		},
		{
			name: "two objects",
			raw:  `{"action":"SEARCH"} or {"action":"ANSWER"}`,
			want: sentinel,
		},
		{
			name: "json null",
			raw:  "null",
			want: sentinel,
		},
		{
			name: "json string",
			raw:  `"ANSWER"`,
			want: sentinel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDecision(tt.raw); got != tt.want {
				t.Errorf("ParseDecision(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseDecision_AnswerSurvivesAnyProse(t *testing.T) {
	object := `{"action":"ANSWER","answer":"Pickup is free.","source":"CONTEXT"}`
	wrappers := [][2]string{
		{"", ""},
		{"Decision: ", ""},
		{"", " -- hope that helps"},
		{"```json\n", "\n```"},
		{"Thinking... done.\n\n", "\n\nEnd of output."},
	}

	for _, w := range wrappers {
		got := ParseDecision(w[0] + object + w[1])
		if got.Action != ActionAnswer || got.Answer != "Pickup is free." {
			t.Errorf("ParseDecision(%q) = %+v, want ANSWER with answer text", w[0]+object+w[1], got)
		}
	}
}

func TestParseDecision_NonJSONAlwaysSearches(t *testing.T) {
	inputs := []string{
		"SEARCH",
		"{",
		"}",
		"{{{",
		`{"action":`,
		`{"action":"ANSWER",}`,
		"[1, 2",
		"\x00\xff",
		"{'action': 'ANSWER'}",
	}

	for _, raw := range inputs {
		got := ParseDecision(raw)
		if got.Action != ActionSearch || got.Reasoning != ParseFailureReasoning {
			t.Errorf("ParseDecision(%q) = %+v, want parse-failure SEARCH", raw, got)
		}
	}
}

func TestExtractJSONCandidate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: `x {"a":1} y`, want: `{"a":1}`},
		{raw: `{"a":{"b":2}} tail }`, want: `{"a":{"b":2}} tail }`},
		{raw: `see [1,2] then`, want: `[1,2]`},
		{raw: `{ no closer [1]`, want: `[1]`},
		{raw: `no json here`, want: `no json here`},
		{raw: "{\n\"a\": 1\n}", want: "{\n\"a\": 1\n}"},
	}

	for _, tt := range tests {
		if got := extractJSONCandidate(tt.raw); got != tt.want {
			t.Errorf("extractJSONCandidate(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
