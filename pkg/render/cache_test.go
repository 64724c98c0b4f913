package render_test

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fieldlift/fieldlift/pkg/render"
)

// countingRenderer counts Render calls.
type countingRenderer struct {
	calls atomic.Int32
}

func (r *countingRenderer) Render(_ context.Context, data []byte) (string, error) {
	r.calls.Add(1)
	return string(data), nil
}

func TestDocumentCache_HitSkipsRender(t *testing.T) {
	renderer := &countingRenderer{}
	cache := render.NewDocumentCache(render.NewMemStore(), renderer)
	ctx := context.Background()

	doc := []byte("some document text")
	first, err := cache.Text(ctx, "doc.txt", doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cache.Text(ctx, "doc.txt", doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Fatalf("cache returned different text: %q vs %q", first, second)
	}
	if renderer.calls.Load() != 1 {
		t.Fatalf("expected 1 render, got %d", renderer.calls.Load())
	}
}

func TestDocumentCache_SizeChangeMisses(t *testing.T) {
	renderer := &countingRenderer{}
	cache := render.NewDocumentCache(render.NewMemStore(), renderer)
	ctx := context.Background()

	if _, err := cache.Text(ctx, "doc.txt", []byte("version one")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cache.Text(ctx, "doc.txt", []byte("version two, longer")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if renderer.calls.Load() != 2 {
		t.Fatalf("expected size change to re-render, got %d calls", renderer.calls.Load())
	}
}

func TestDocumentCache_ShedKeepsNewest(t *testing.T) {
	store := render.NewMemStore()
	cache := render.NewDocumentCache(store, render.NewPlainText(), render.WithCapacity(100))
	ctx := context.Background()

	for i := range 101 {
		name := fmt.Sprintf("doc-%03d.txt", i)
		if _, err := cache.Text(ctx, name, []byte(strings.Repeat("x", i+1))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := cache.Shed(ctx); err != nil {
		t.Fatalf("shed failed: %v", err)
	}

	n, _ := store.Len(ctx)
	if n > 51 {
		t.Fatalf("expected at most 51 entries after shed, got %d", n)
	}

	// The most recently inserted entry survives.
	key := render.Fingerprint("doc-100.txt", 101)
	if _, ok, _ := store.Get(ctx, key); !ok {
		t.Fatalf("newest entry was evicted")
	}

	// The oldest entry is gone.
	oldest := render.Fingerprint("doc-000.txt", 1)
	if _, ok, _ := store.Get(ctx, oldest); ok {
		t.Fatalf("oldest entry survived shed")
	}
}

func TestDocumentCache_ShedNoopUnderCapacity(t *testing.T) {
	store := render.NewMemStore()
	cache := render.NewDocumentCache(store, render.NewPlainText(), render.WithCapacity(100))
	ctx := context.Background()

	for i := range 10 {
		name := fmt.Sprintf("doc-%d.txt", i)
		if _, err := cache.Text(ctx, name, []byte("content")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := cache.Shed(ctx); err != nil {
		t.Fatalf("shed failed: %v", err)
	}
	if n, _ := store.Len(ctx); n != 10 {
		t.Fatalf("shed under capacity must be a no-op, got %d entries", n)
	}
}

func TestDocumentCache_WindowedRenderOrder(t *testing.T) {
	renderer := &countingRenderer{}
	cache := render.NewDocumentCache(render.NewMemStore(), renderer, render.WithWindow(4))
	ctx := context.Background()

	doc := []byte("abcdefghij")
	text, err := cache.Text(ctx, "doc.txt", doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "abcdefghij" {
		t.Fatalf("windowed render out of order: %q", text)
	}
	if renderer.calls.Load() != 3 {
		t.Fatalf("expected 3 window renders, got %d", renderer.calls.Load())
	}
}

func TestMemStore_ShedOrder(t *testing.T) {
	store := render.NewMemStore()
	ctx := context.Background()

	for i := range 5 {
		if err := store.Set(ctx, fmt.Sprintf("k%d", i), "v"); err != nil {
			t.Fatalf("set failed: %v", err)
		}
	}

	evicted, err := store.Shed(ctx, 2)
	if err != nil {
		t.Fatalf("shed failed: %v", err)
	}
	if evicted != 3 {
		t.Fatalf("expected 3 evicted, got %d", evicted)
	}
	for _, key := range []string{"k3", "k4"} {
		if _, ok, _ := store.Get(ctx, key); !ok {
			t.Fatalf("expected %s to survive", key)
		}
	}
	if _, ok, _ := store.Get(ctx, "k0"); ok {
		t.Fatalf("expected k0 evicted")
	}
}
