package inject_test

import (
	"errors"
	"testing"

	"github.com/fieldlift/fieldlift/pkg/analyze"
	"github.com/fieldlift/fieldlift/pkg/errx"
	"github.com/fieldlift/fieldlift/pkg/inject"
)

func TestInjector_AppendsPlaceholders(t *testing.T) {
	fields := []analyze.Field{
		{Name: "full_name", Placeholder: "[[FULL_NAME]]", Replacement: "Full Name: ____"},
		{Name: "email", Placeholder: "[[EMAIL]]", Replacement: "Email: ____"},
	}

	in, err := inject.New(fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := in.Apply("Full Name: ____ and Email: ____")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	want := "Full Name: ____ [[FULL_NAME]] and Email: ____ [[EMAIL]]"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestInjector_SecondApplyFails(t *testing.T) {
	fields := []analyze.Field{
		{Name: "x", Placeholder: "[[X]]", Replacement: "X: ____"},
	}
	in, err := inject.New(fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := in.Apply("X: ____"); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	_, err = in.Apply("X: ____")
	if err == nil {
		t.Fatal("expected second apply to fail")
	}
	var e *errx.Error
	if !errors.As(err, &e) || e.Code != "INJECT_ALREADY_APPLIED" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInjector_ResetRearms(t *testing.T) {
	fields := []analyze.Field{
		{Name: "x", Placeholder: "[[X]]", Replacement: "X: ____"},
	}
	in, _ := inject.New(fields)

	if _, err := in.Apply("X: ____"); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	in.Reset()
	if in.Applied() {
		t.Fatal("expected Applied false after reset")
	}
	if _, err := in.Apply("X: ____"); err != nil {
		t.Fatalf("apply after reset failed: %v", err)
	}
}

func TestInjector_LongerAnchorWins(t *testing.T) {
	fields := []analyze.Field{
		{Name: "name", Placeholder: "[[NAME]]", Replacement: "Name: ____"},
		{Name: "full_name", Placeholder: "[[FULL_NAME]]", Replacement: "Full Name: ____"},
	}
	in, err := inject.New(fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := in.Apply("Full Name: ____")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	want := "Full Name: ____ [[FULL_NAME]]"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestInjector_EscapesRegexMetacharacters(t *testing.T) {
	fields := []analyze.Field{
		{Name: "amount", Placeholder: "[[AMOUNT]]", Replacement: "Total ($): ____"},
	}
	in, err := inject.New(fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := in.Apply("Total ($): ____")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	want := "Total ($): ____ [[AMOUNT]]"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestInjector_NoFields(t *testing.T) {
	_, err := inject.New(nil)
	if err == nil {
		t.Fatal("expected error for empty field set")
	}
	var e *errx.Error
	if !errors.As(err, &e) || e.Code != "INJECT_NO_FIELDS" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInjector_MultipleOccurrences(t *testing.T) {
	fields := []analyze.Field{
		{Name: "initials", Placeholder: "[[INITIALS]]", Replacement: "Initials: __"},
	}
	in, _ := inject.New(fields)

	out, err := in.Apply("Initials: __ page one. Initials: __ page two.")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	want := "Initials: __ [[INITIALS]] page one. Initials: __ [[INITIALS]] page two."
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}
