package render

import (
	"context"
	"fmt"
	"sync"

	"github.com/fieldlift/fieldlift/pkg/asyncx"
	"github.com/fieldlift/fieldlift/pkg/logx"
)

const (
	// DefaultCapacity is the soft limit on cached documents.
	DefaultCapacity = 100

	// DefaultWindow is the byte-range size for windowed rendering.
	DefaultWindow = 512 * 1024
)

// Fingerprint identifies a document version for cache lookups. Same name
// and same byte length reuse the cached render; either changing misses.
func Fingerprint(name string, size int) string {
	return fmt.Sprintf("%s:%d", name, size)
}

// Store persists rendered text keyed by fingerprint, preserving
// insertion order so the oldest entries can be shed first.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, text string) error
	Len(ctx context.Context) (int, error)
	// Shed evicts oldest-inserted entries until at most keep remain,
	// returning the number evicted.
	Shed(ctx context.Context, keep int) (int, error)
}

// DocumentCache renders documents to text at most once per fingerprint.
// The capacity is soft: inserts never block or evict, and Shed is called
// at session teardown to trim the store back to half capacity.
type DocumentCache struct {
	mu       sync.Mutex
	store    Store
	renderer Renderer
	capacity int
	window   int
}

// CacheOption configures a DocumentCache.
type CacheOption func(*DocumentCache)

// WithCapacity sets the soft entry limit.
func WithCapacity(n int) CacheOption {
	return func(c *DocumentCache) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithWindow sets the byte-range size for windowed rendering. Zero or
// negative disables windowing, which renderers that need the whole
// document at once (such as PDF) require.
func WithWindow(n int) CacheOption {
	return func(c *DocumentCache) { c.window = n }
}

func NewDocumentCache(store Store, renderer Renderer, opts ...CacheOption) *DocumentCache {
	c := &DocumentCache{
		store:    store,
		renderer: renderer,
		capacity: DefaultCapacity,
		window:   DefaultWindow,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Text returns the rendered text for a document, serving from the store
// when the fingerprint is already present. Documents larger than the
// window are rendered in byte ranges concurrently and concatenated in
// document order.
func (c *DocumentCache) Text(ctx context.Context, name string, data []byte) (string, error) {
	key := Fingerprint(name, len(data))

	c.mu.Lock()
	defer c.mu.Unlock()

	if text, ok, err := c.store.Get(ctx, key); err != nil {
		return "", err
	} else if ok {
		logx.WithField("fingerprint", key).Debug("render cache hit")
		return text, nil
	}

	text, err := c.render(ctx, data)
	if err != nil {
		return "", err
	}
	if err := c.store.Set(ctx, key, text); err != nil {
		return "", err
	}

	if n, err := c.store.Len(ctx); err == nil && n > c.capacity {
		logx.WithFields(logx.Fields{
			"entries":  n,
			"capacity": c.capacity,
		}).Warn("render cache over soft capacity")
	}
	return text, nil
}

// Shed trims the store back to half capacity when it has grown past the
// soft limit. Intended to run at session teardown, not on insert.
func (c *DocumentCache) Shed(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.store.Len(ctx)
	if err != nil {
		return err
	}
	if n <= c.capacity {
		return nil
	}
	evicted, err := c.store.Shed(ctx, c.capacity/2)
	if err != nil {
		return err
	}
	logx.WithFields(logx.Fields{
		"evicted": evicted,
		"kept":    c.capacity / 2,
	}).Info("render cache shed")
	return nil
}

func (c *DocumentCache) render(ctx context.Context, data []byte) (string, error) {
	if c.window <= 0 || len(data) <= c.window {
		return c.renderer.Render(ctx, data)
	}

	var ranges [][]byte
	for start := 0; start < len(data); start += c.window {
		end := min(start+c.window, len(data))
		ranges = append(ranges, data[start:end])
	}

	parts, err := asyncx.Map(ctx, ranges, func(ctx context.Context, r []byte) (string, error) {
		return c.renderer.Render(ctx, r)
	})
	if err != nil {
		return "", err
	}

	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return string(b), nil
}
