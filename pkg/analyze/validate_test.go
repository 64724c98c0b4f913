package analyze_test

import (
	"testing"

	"github.com/fieldlift/fieldlift/pkg/analyze"
)

func TestValidate_HighConfidenceOnMatch(t *testing.T) {
	fields := []analyze.Field{
		{Name: "email", Type: analyze.FieldTypeEmail, Replacement: "Contact: john@example.com"},
		{Name: "date", Type: analyze.FieldTypeDate, Replacement: "Signed on 01-02-2024"},
		{Name: "phone", Type: analyze.FieldTypePhone, Replacement: "Call +1 (555) 123-4567"},
		{Name: "amount", Type: analyze.FieldTypeNumber, Replacement: "Total: 42"},
	}

	analyze.NewValidator().Validate(fields)

	for _, f := range fields {
		if f.Confidence != analyze.ConfidenceHigh {
			t.Fatalf("field %q: expected high confidence, got %q", f.Name, f.Confidence)
		}
	}
}

func TestValidate_LowConfidenceOnMismatch(t *testing.T) {
	fields := []analyze.Field{
		{Name: "email", Type: analyze.FieldTypeEmail, Replacement: "Email: ____________"},
	}

	analyze.NewValidator().Validate(fields)

	if fields[0].Confidence != analyze.ConfidenceLow {
		t.Fatalf("expected low confidence, got %q", fields[0].Confidence)
	}
	if fields[0].Type != analyze.FieldTypeEmail {
		t.Fatalf("lenient validator must not change type, got %q", fields[0].Type)
	}
}

func TestValidate_UntypedFieldsAlwaysHigh(t *testing.T) {
	fields := []analyze.Field{
		{Name: "notes", Type: analyze.FieldTypeText, Replacement: "____"},
		{Name: "agree", Type: analyze.FieldTypeCheckbox, Replacement: "[ ] I agree"},
	}

	analyze.NewValidator().Validate(fields)

	for _, f := range fields {
		if f.Confidence != analyze.ConfidenceHigh {
			t.Fatalf("field %q: expected high confidence, got %q", f.Name, f.Confidence)
		}
	}
}

func TestValidate_StrictReclassifiesToText(t *testing.T) {
	fields := []analyze.Field{
		{Name: "email", Type: analyze.FieldTypeEmail, Replacement: "Email: ____________"},
	}

	analyze.NewValidator(analyze.WithStrictTypes()).Validate(fields)

	f := fields[0]
	if f.Confidence != analyze.ConfidenceLow {
		t.Fatalf("expected low confidence, got %q", f.Confidence)
	}
	if f.Type != analyze.FieldTypeText {
		t.Fatalf("expected reclassification to text, got %q", f.Type)
	}
	if f.OriginalType != analyze.FieldTypeEmail {
		t.Fatalf("expected original type recorded, got %q", f.OriginalType)
	}
}

func TestValidate_NeverDropsFields(t *testing.T) {
	fields := []analyze.Field{
		{Name: "a", Type: analyze.FieldTypeDate, Replacement: "no date here"},
		{Name: "b", Type: analyze.FieldTypeNumber, Replacement: "no digits"},
	}

	out := analyze.NewValidator(analyze.WithStrictTypes()).Validate(fields)
	if len(out) != 2 {
		t.Fatalf("validator dropped fields: %d remain", len(out))
	}
}
