// Package analyze implements the field-extraction pipeline: document
// normalization, sentence-aligned chunking, parallel extraction dispatch,
// anchor-based merge/deduplication, type validation and relationship
// inference. Fields are value objects produced fresh per analysis and
// never mutated afterwards.
package analyze

// FieldType classifies what kind of input a field expects
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeEmail    FieldType = "email"
	FieldTypePhone    FieldType = "phone"
	FieldTypeAddress  FieldType = "address"
	FieldTypeCheckbox FieldType = "checkbox"
)

// Confidence signals whether a field's anchor matched the shape expected
// for its declared type. It is a hint for the UI, never a rejection filter.
type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

// Field is one user-fillable location in a document, as returned to the
// caller after merge, validation and relationship linking.
type Field struct {
	// Name is a stable identifier, unique within a merged result set
	Name string `json:"name"`

	// Type is the field's (possibly reclassified) input type
	Type FieldType `json:"type"`

	// Description is a short human-readable purpose
	Description string `json:"description"`

	// Placeholder is the token injected next to the anchor, e.g. [[FULL_NAME]]
	Placeholder string `json:"placeholder"`

	// Required marks fields the user must fill
	Required bool `json:"required"`

	// Replacement is the literal anchor text locating the field in the
	// source content; unique within a merged result set
	Replacement string `json:"replacement"`

	// Confidence is assigned exactly once by the validator, after merge
	Confidence Confidence `json:"confidence"`

	// OriginalType records the declared type when a strict validator
	// reclassified the field to text
	OriginalType FieldType `json:"originalType,omitempty"`

	// Relationships lists names of fields whose anchors share enough
	// vocabulary to suggest the same logical group
	Relationships []string `json:"relationships,omitempty"`
}

// knownFieldTypes gates type strings coming back from the extraction
// capability; anything unrecognized is treated as plain text.
var knownFieldTypes = map[FieldType]bool{
	FieldTypeText:     true,
	FieldTypeNumber:   true,
	FieldTypeDate:     true,
	FieldTypeEmail:    true,
	FieldTypePhone:    true,
	FieldTypeAddress:  true,
	FieldTypeCheckbox: true,
}

// NormalizeFieldType maps a raw capability type string onto a known
// FieldType, defaulting to text.
func NormalizeFieldType(raw string) FieldType {
	t := FieldType(raw)
	if knownFieldTypes[t] {
		return t
	}
	return FieldTypeText
}
