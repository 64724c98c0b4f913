package asyncx_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fieldlift/fieldlift/pkg/asyncx"
)

func TestMap_PreservesOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	results, err := asyncx.Map(context.Background(), items, func(_ context.Context, n int) (int, error) {
		return n * 10, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, r := range results {
		if r != items[i]*10 {
			t.Fatalf("result %d out of order: got %d", i, r)
		}
	}
}

func TestMap_FirstErrorWins(t *testing.T) {
	boom := errors.New("boom")
	items := []int{1, 2, 3}
	results, err := asyncx.Map(context.Background(), items, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if results != nil {
		t.Fatalf("expected nil results on error, got %v", results)
	}
}

func TestMap_AwaitsAllGoroutines(t *testing.T) {
	var finished atomic.Int32
	items := []int{1, 2, 3, 4}
	_, _ = asyncx.Map(context.Background(), items, func(_ context.Context, n int) (int, error) {
		defer finished.Add(1)
		if n == 1 {
			return 0, errors.New("early failure")
		}
		time.Sleep(20 * time.Millisecond)
		return n, nil
	})
	if finished.Load() != 4 {
		t.Fatalf("expected all goroutines awaited, got %d", finished.Load())
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	var inflight, peak atomic.Int32
	items := make([]int, 20)
	_, err := asyncx.Pool(context.Background(), 3, items, func(_ context.Context, n int) (int, error) {
		cur := inflight.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		inflight.Add(-1)
		return n, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if peak.Load() > 3 {
		t.Fatalf("pool exceeded worker bound: peak %d", peak.Load())
	}
}

func TestAllSettled_NeverShortCircuits(t *testing.T) {
	results := asyncx.AllSettled(context.Background(),
		func(_ context.Context) (int, error) { return 1, nil },
		func(_ context.Context) (int, error) { return 0, errors.New("fail") },
		func(_ context.Context) (int, error) { return 3, nil },
	)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].OK() || results[1].OK() || !results[2].OK() {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	var calls atomic.Int32
	v, err := asyncx.Retry(context.Background(), 3, func(_ context.Context) (string, error) {
		if calls.Add(1) < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	if err != nil || v != "ok" {
		t.Fatalf("expected success on third attempt, got %q, %v", v, err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 calls, got %d", calls.Load())
	}
}

func TestDebounced_Coalesces(t *testing.T) {
	var runs atomic.Int32
	fire := asyncx.Debounced(30*time.Millisecond, func() { runs.Add(1) })

	for range 5 {
		fire()
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	if runs.Load() != 1 {
		t.Fatalf("expected 1 run, got %d", runs.Load())
	}
}
