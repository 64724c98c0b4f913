package analyze_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fieldlift/fieldlift/pkg/analyze"
	"github.com/fieldlift/fieldlift/pkg/errx"
	"github.com/fieldlift/fieldlift/pkg/extract"
)

// fakeExtractor returns canned candidates per chunk and records calls.
type fakeExtractor struct {
	mu     sync.Mutex
	chunks []string
	fn     func(chunk string) ([]extract.FieldCandidate, error)
}

func (f *fakeExtractor) Extract(_ context.Context, chunk string, _ ...extract.Option) ([]extract.FieldCandidate, error) {
	f.mu.Lock()
	f.chunks = append(f.chunks, chunk)
	f.mu.Unlock()
	if f.fn != nil {
		return f.fn(chunk)
	}
	return nil, nil
}

func TestService_AnalyzePipeline(t *testing.T) {
	ext := &fakeExtractor{
		fn: func(chunk string) ([]extract.FieldCandidate, error) {
			return []extract.FieldCandidate{
				{
					Name:        "full_name",
					Type:        "text",
					Placeholder: "[[FULL_NAME]]",
					Replacement: "Full Name: ____",
				},
			}, nil
		},
	}

	svc := analyze.NewService(ext)
	result, err := svc.Analyze(context.Background(), "Full Name: ____. Please sign below.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(result.Fields))
	}
	f := result.Fields[0]
	if f.Name != "full_name" || f.Placeholder != "[[FULL_NAME]]" {
		t.Fatalf("unexpected field: %+v", f)
	}
	if f.Confidence != analyze.ConfidenceHigh {
		t.Fatalf("expected confidence assigned, got %q", f.Confidence)
	}
	if result.Metadata.TotalFields != 1 || result.Metadata.ChunksProcessed != 1 {
		t.Fatalf("unexpected metadata: %+v", result.Metadata)
	}
}

func TestService_EmptyDocument(t *testing.T) {
	svc := analyze.NewService(&fakeExtractor{})

	_, err := svc.Analyze(context.Background(), "   \n\n  ")
	if err == nil {
		t.Fatal("expected error for empty document")
	}
	var e *errx.Error
	if !errors.As(err, &e) || e.Code != "ANALYZE_EMPTY_DOCUMENT" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_DispatchesEveryChunk(t *testing.T) {
	ext := &fakeExtractor{
		fn: func(chunk string) ([]extract.FieldCandidate, error) { return nil, nil },
	}
	svc := analyze.NewService(ext, analyze.WithChunkLimit(30))

	var sb strings.Builder
	for range 10 {
		sb.WriteString("A short sentence goes here. ")
	}
	result, err := svc.Analyze(context.Background(), sb.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ext.mu.Lock()
	calls := len(ext.chunks)
	ext.mu.Unlock()
	if calls != result.Metadata.ChunksProcessed {
		t.Fatalf("dispatched %d chunks, metadata says %d", calls, result.Metadata.ChunksProcessed)
	}
	if calls < 2 {
		t.Fatalf("expected multiple chunks, got %d", calls)
	}
}

func TestService_FailFastNoPartialResult(t *testing.T) {
	var calls atomic.Int32
	ext := &fakeExtractor{
		fn: func(chunk string) ([]extract.FieldCandidate, error) {
			if calls.Add(1) == 2 {
				return nil, errors.New("provider unavailable")
			}
			return []extract.FieldCandidate{
				{Name: "x", Type: "text", Replacement: chunk[:10]},
			}, nil
		},
	}
	svc := analyze.NewService(ext, analyze.WithChunkLimit(30))

	var sb strings.Builder
	for range 10 {
		sb.WriteString("A short sentence goes here. ")
	}
	result, err := svc.Analyze(context.Background(), sb.String())
	if err == nil {
		t.Fatal("expected error when a chunk fails")
	}
	if result != nil {
		t.Fatalf("expected no partial result, got %+v", result)
	}
	var e *errx.Error
	if !errors.As(err, &e) || e.Code != "ANALYZE_EXTRACTION_FAILED" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_BoundedConcurrency(t *testing.T) {
	var inflight, peak atomic.Int32
	ext := &fakeExtractor{
		fn: func(chunk string) ([]extract.FieldCandidate, error) {
			cur := inflight.Add(1)
			for {
				p := peak.Load()
				if cur <= p || peak.CompareAndSwap(p, cur) {
					break
				}
			}
			defer inflight.Add(-1)
			return nil, nil
		},
	}
	svc := analyze.NewService(ext,
		analyze.WithChunkLimit(30),
		analyze.WithMaxConcurrency(2),
	)

	var sb strings.Builder
	for range 20 {
		sb.WriteString("A short sentence goes here. ")
	}
	if _, err := svc.Analyze(context.Background(), sb.String()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if peak.Load() > 2 {
		t.Fatalf("concurrency exceeded bound: peak %d", peak.Load())
	}
}
