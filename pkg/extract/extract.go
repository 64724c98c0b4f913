// Package extract defines the extraction capability port: an opaque
// service that proposes fillable-field candidates for a chunk of document
// text. Providers live under providers/ and adapt a concrete model API to
// the Extractor interface. Confidence and relationships are never part of
// a candidate; the analysis pipeline computes those locally.
package extract

import "context"

// FieldCandidate is one proposed fillable field, exactly as returned by
// the extraction capability.
type FieldCandidate struct {
	// Name is the candidate's identifier (snake_case)
	Name string `json:"name"`

	// Type is the declared field type: text, number, date, email,
	// phone, address or checkbox
	Type string `json:"type"`

	// Description is a short human-readable purpose
	Description string `json:"description"`

	// Placeholder is the token to inject, e.g. [[FULL_NAME]]
	Placeholder string `json:"placeholder"`

	// Required marks fields the user must fill
	Required bool `json:"required"`

	// Replacement is the literal anchor text that locates the field
	// in the source content
	Replacement string `json:"replacement"`
}

// Extractor proposes field candidates for one chunk of document text.
// Implementations may fail or return malformed data; callers treat any
// error as fatal for the whole analysis and never retry.
type Extractor interface {
	Extract(ctx context.Context, chunk string, opts ...Option) ([]FieldCandidate, error)
}
