// Package inject rewrites document text by appending each field's
// placeholder token after its anchor text.
package inject

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/fieldlift/fieldlift/pkg/analyze"
)

// Injector appends placeholder tokens after field anchors in a document.
// One Injector corresponds to one editing session: Apply succeeds once,
// and repeated calls fail with ErrAlreadyApplied until Reset, so a
// double-click cannot produce doubled placeholders.
type Injector struct {
	mu       sync.Mutex
	pattern  *regexp.Regexp
	byAnchor map[string]string
	applied  bool
}

// New builds an Injector from the analyzed fields. Anchors are matched
// literally; longer anchors take precedence so that an anchor which is a
// substring of another never steals its match.
func New(fields []analyze.Field) (*Injector, error) {
	byAnchor := make(map[string]string, len(fields))
	var anchors []string
	for _, f := range fields {
		if f.Replacement == "" || f.Placeholder == "" {
			continue
		}
		if _, seen := byAnchor[f.Replacement]; seen {
			continue
		}
		byAnchor[f.Replacement] = f.Placeholder
		anchors = append(anchors, f.Replacement)
	}
	if len(anchors) == 0 {
		return nil, errorRegistry.New(ErrNoFields)
	}

	sort.Slice(anchors, func(i, j int) bool {
		if len(anchors[i]) != len(anchors[j]) {
			return len(anchors[i]) > len(anchors[j])
		}
		return anchors[i] < anchors[j]
	})

	quoted := make([]string, len(anchors))
	for i, a := range anchors {
		quoted[i] = regexp.QuoteMeta(a)
	}
	pattern, err := regexp.Compile(strings.Join(quoted, "|"))
	if err != nil {
		return nil, err
	}

	return &Injector{pattern: pattern, byAnchor: byAnchor}, nil
}

// Apply rewrites text so that every anchor occurrence is followed by a
// space and its placeholder. The anchor itself is preserved. A second
// Apply on the same Injector returns ErrAlreadyApplied.
func (in *Injector) Apply(text string) (string, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.applied {
		return "", errorRegistry.New(ErrAlreadyApplied)
	}

	out := in.pattern.ReplaceAllStringFunc(text, func(anchor string) string {
		return anchor + " " + in.byAnchor[anchor]
	})
	in.applied = true
	return out, nil
}

// Applied reports whether placeholders have been injected this session.
func (in *Injector) Applied() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.applied
}

// Reset arms the Injector for another Apply, for when the caller starts
// a fresh session over regenerated text.
func (in *Injector) Reset() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.applied = false
}
