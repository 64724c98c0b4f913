package analyze_test

import (
	"slices"
	"testing"

	"github.com/fieldlift/fieldlift/pkg/analyze"
)

func TestLink_SharedVocabulary(t *testing.T) {
	fields := []analyze.Field{
		{Name: "billing_street", Replacement: "Billing Address Street: ____"},
		{Name: "billing_city", Replacement: "Billing Address City: ____"},
		{Name: "email", Replacement: "Email: ____"},
	}

	analyze.Link(fields)

	if !slices.Contains(fields[0].Relationships, "billing_city") {
		t.Fatalf("expected billing_street related to billing_city, got %v", fields[0].Relationships)
	}
	if !slices.Contains(fields[1].Relationships, "billing_street") {
		t.Fatalf("relationship not symmetric: %v", fields[1].Relationships)
	}
	if len(fields[2].Relationships) != 0 {
		t.Fatalf("email should have no relationships, got %v", fields[2].Relationships)
	}
}

func TestLink_OneSharedTokenIsNotEnough(t *testing.T) {
	fields := []analyze.Field{
		{Name: "a", Replacement: "Name: ____"},
		{Name: "b", Replacement: "Name of witness here ____"},
	}

	analyze.Link(fields)

	if len(fields[0].Relationships) != 0 || len(fields[1].Relationships) != 0 {
		t.Fatalf("one shared token must not link: %v / %v",
			fields[0].Relationships, fields[1].Relationships)
	}
}

func TestLink_CaseInsensitive(t *testing.T) {
	fields := []analyze.Field{
		{Name: "a", Replacement: "EMPLOYEE SIGNATURE ____"},
		{Name: "b", Replacement: "employee signature date ____"},
	}

	analyze.Link(fields)

	if !slices.Contains(fields[0].Relationships, "b") {
		t.Fatalf("expected case-insensitive match, got %v", fields[0].Relationships)
	}
}

func TestLink_SingleField(t *testing.T) {
	fields := []analyze.Field{{Name: "only", Replacement: "Only field ____"}}
	analyze.Link(fields)
	if len(fields[0].Relationships) != 0 {
		t.Fatalf("single field cannot have relationships")
	}
}
