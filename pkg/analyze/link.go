package analyze

import "strings"

// linkThreshold is the minimum number of shared anchor tokens for two
// fields to be considered related.
const linkThreshold = 2

// Link populates Relationships on every field by comparing anchor
// vocabularies pairwise. Two fields are related when the lowercase,
// whitespace-delimited token sets of their anchors share at least two
// tokens. The relation is symmetric; each side lists the other's name.
// Fields are modified in place and the same slice is returned.
func Link(fields []Field) []Field {
	if len(fields) < 2 {
		return fields
	}

	tokens := make([]map[string]bool, len(fields))
	for i := range fields {
		tokens[i] = anchorTokens(fields[i].Replacement)
	}

	for i := 0; i < len(fields); i++ {
		for j := i + 1; j < len(fields); j++ {
			if sharedTokens(tokens[i], tokens[j]) < linkThreshold {
				continue
			}
			fields[i].Relationships = append(fields[i].Relationships, fields[j].Name)
			fields[j].Relationships = append(fields[j].Relationships, fields[i].Name)
		}
	}
	return fields
}

func anchorTokens(anchor string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(anchor)) {
		set[tok] = true
	}
	return set
}

func sharedTokens(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for tok := range a {
		if b[tok] {
			n++
		}
	}
	return n
}
