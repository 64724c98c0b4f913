package analyze_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/fieldlift/fieldlift/pkg/analyze"
)

func TestDebouncedTrigger_CoalescesBurst(t *testing.T) {
	var runs atomic.Int32
	trigger := analyze.NewDebouncedTrigger(30*time.Millisecond, func() {
		runs.Add(1)
	})

	for range 10 {
		trigger.Trigger()
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Fatalf("expected burst to coalesce into 1 run, got %d", got)
	}
}

func TestDebouncedTrigger_SeparateBurstsRunSeparately(t *testing.T) {
	var runs atomic.Int32
	trigger := analyze.NewDebouncedTrigger(20*time.Millisecond, func() {
		runs.Add(1)
	})

	trigger.Trigger()
	time.Sleep(60 * time.Millisecond)
	trigger.Trigger()
	time.Sleep(60 * time.Millisecond)

	if got := runs.Load(); got != 2 {
		t.Fatalf("expected 2 runs, got %d", got)
	}
}
