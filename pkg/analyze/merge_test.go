package analyze_test

import (
	"testing"

	"github.com/fieldlift/fieldlift/pkg/analyze"
	"github.com/fieldlift/fieldlift/pkg/extract"
)

func TestMerge_DeduplicatesByAnchor(t *testing.T) {
	perChunk := [][]extract.FieldCandidate{
		{
			{Name: "full_name", Type: "text", Replacement: "Name: ____"},
			{Name: "email", Type: "email", Replacement: "Email: ____"},
		},
		{
			{Name: "full_name", Type: "text", Replacement: "Name: ____"},
		},
	}

	fields := analyze.Merge(perChunk)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
}

func TestMerge_LastWriteWinsAtFirstPosition(t *testing.T) {
	perChunk := [][]extract.FieldCandidate{
		{
			{Name: "name_a", Type: "text", Description: "first", Replacement: "Name: ____"},
			{Name: "email", Type: "email", Replacement: "Email: ____"},
		},
		{
			{Name: "name_b", Type: "text", Description: "second", Replacement: "Name: ____"},
		},
	}

	fields := analyze.Merge(perChunk)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	// The colliding anchor keeps its first-seen position but carries the
	// later candidate's metadata.
	if fields[0].Replacement != "Name: ____" {
		t.Fatalf("expected colliding field to keep position 0, got %q", fields[0].Replacement)
	}
	if fields[0].Name != "name_b" || fields[0].Description != "second" {
		t.Fatalf("expected later metadata to win, got %+v", fields[0])
	}
}

func TestMerge_DropsAnchorlessCandidates(t *testing.T) {
	perChunk := [][]extract.FieldCandidate{
		{
			{Name: "ok", Type: "text", Replacement: "Name: ____"},
			{Name: "no_anchor", Type: "text"},
		},
	}

	fields := analyze.Merge(perChunk)
	if len(fields) != 1 || fields[0].Name != "ok" {
		t.Fatalf("expected anchorless candidate dropped, got %+v", fields)
	}
}

func TestMerge_UniquifiesNames(t *testing.T) {
	perChunk := [][]extract.FieldCandidate{
		{
			{Name: "date", Type: "date", Replacement: "Start date: ____"},
			{Name: "date", Type: "date", Replacement: "End date: ____"},
			{Name: "date", Type: "date", Replacement: "Signed date: ____"},
		},
	}

	fields := analyze.Merge(perChunk)
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	seen := map[string]bool{}
	for _, f := range fields {
		if seen[f.Name] {
			t.Fatalf("duplicate name %q after merge", f.Name)
		}
		seen[f.Name] = true
	}
	if !seen["date"] || !seen["date_2"] || !seen["date_3"] {
		t.Fatalf("unexpected names: %v", seen)
	}
}

func TestMerge_NormalizesUnknownTypes(t *testing.T) {
	perChunk := [][]extract.FieldCandidate{
		{{Name: "x", Type: "currency", Replacement: "Amount: ____"}},
	}
	fields := analyze.Merge(perChunk)
	if fields[0].Type != analyze.FieldTypeText {
		t.Fatalf("expected unknown type mapped to text, got %q", fields[0].Type)
	}
}

func TestMerge_LeavesConfidenceUnset(t *testing.T) {
	perChunk := [][]extract.FieldCandidate{
		{{Name: "x", Type: "text", Replacement: "X: ____"}},
	}
	fields := analyze.Merge(perChunk)
	if fields[0].Confidence != "" {
		t.Fatalf("merge must not assign confidence, got %q", fields[0].Confidence)
	}
}
