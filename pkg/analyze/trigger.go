package analyze

import (
	"time"

	"github.com/fieldlift/fieldlift/pkg/asyncx"
)

// DefaultDebounceWindow is the coalescing window used when none is
// configured. Bursts of triggers closer together than the window run
// the analysis once.
const DefaultDebounceWindow = 500 * time.Millisecond

// DebouncedTrigger coalesces rapid re-analysis requests for the same
// document, such as keystroke-driven triggers from an editor session.
// Only the trailing trigger of a burst fires.
type DebouncedTrigger struct {
	fire func()
}

// NewDebouncedTrigger wraps fn in a trailing-edge debounce. A window of
// zero or less falls back to DefaultDebounceWindow.
func NewDebouncedTrigger(window time.Duration, fn func()) *DebouncedTrigger {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &DebouncedTrigger{fire: asyncx.Debounced(window, fn)}
}

// Trigger requests a run. Calls within the window of each other collapse
// into a single execution after the window elapses.
func (t *DebouncedTrigger) Trigger() {
	t.fire()
}
