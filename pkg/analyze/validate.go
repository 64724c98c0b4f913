package analyze

import "regexp"

// typePatterns holds the shape each typed anchor is expected to match.
// Types without an entry (text, checkbox) are accepted as-is.
var typePatterns = map[FieldType]*regexp.Regexp{
	FieldTypeDate:    regexp.MustCompile(`\d{2}-\d{2}-\d{4}`),
	FieldTypeEmail:   regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`),
	FieldTypePhone:   regexp.MustCompile(`\+?[\d\s().\-]{7,}`),
	FieldTypeNumber:  regexp.MustCompile(`\d`),
	FieldTypeAddress: regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9 ,.\-]{5,}`),
}

// Validator assigns confidence to merged fields by checking whether each
// field's anchor text contains the shape its declared type implies. It
// never drops a field; a mismatch only lowers confidence, or in strict
// mode reclassifies the field to text while recording the declared type.
type Validator struct {
	strict bool
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithStrictTypes reclassifies low-confidence typed fields to text,
// keeping the declared type in OriginalType.
func WithStrictTypes() ValidatorOption {
	return func(v *Validator) { v.strict = true }
}

func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate assigns confidence to every field in place and returns the
// same slice. It is the single point where confidence is set.
func (v *Validator) Validate(fields []Field) []Field {
	for i := range fields {
		f := &fields[i]
		pattern, typed := typePatterns[f.Type]
		if !typed || pattern.MatchString(f.Replacement) {
			f.Confidence = ConfidenceHigh
			continue
		}
		f.Confidence = ConfidenceLow
		if v.strict {
			f.OriginalType = f.Type
			f.Type = FieldTypeText
		}
	}
	return fields
}
