package extract

import (
	"encoding/json"
	"strings"
)

// Instructions is the fixed instruction contract sent to every provider,
// once per chunk. The response must be a JSON object with a "fields"
// array; confidence and relationships are deliberately absent since they
// are computed locally after the merge.
const Instructions = `You are a document analysis assistant. Analyze the document text and identify every field that requires user input: names, dates, contact information, addresses, amounts, checkboxes, signature lines and similar blanks.

Return a JSON object with a single key "fields" whose value is an array. Each element must have exactly these keys:
- "name": snake_case identifier for the field
- "type": one of "text", "number", "date", "email", "phone", "address", "checkbox"
- "description": short description of what the user should enter
- "placeholder": token in the form [[FIELD_NAME]]
- "required": true or false
- "replacement": the exact text snippet from the document that marks where the field belongs (copy it verbatim, including punctuation)

Do not include any other keys. Do not include fields that are already filled in. Respond with JSON only.`

// candidateEnvelope matches the response shape requested by Instructions.
type candidateEnvelope struct {
	Fields []FieldCandidate `json:"fields"`
}

// ParseCandidates decodes a provider completion into field candidates.
// Tolerates markdown code fences and a bare top-level array, since models
// produce both despite the contract.
func ParseCandidates(raw string) ([]FieldCandidate, error) {
	s := strings.TrimSpace(raw)
	s = stripCodeFence(s)

	if strings.HasPrefix(s, "[") {
		var candidates []FieldCandidate
		if err := json.Unmarshal([]byte(s), &candidates); err != nil {
			return nil, errorRegistry.NewWithCause(ErrMalformedResponse, err).
				WithDetail("response_prefix", prefix(s, 120))
		}
		return candidates, nil
	}

	var envelope candidateEnvelope
	if err := json.Unmarshal([]byte(s), &envelope); err != nil {
		return nil, errorRegistry.NewWithCause(ErrMalformedResponse, err).
			WithDetail("response_prefix", prefix(s, 120))
	}
	return envelope.Fields, nil
}

// stripCodeFence removes a surrounding ```json ... ``` fence if present.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
