package analyze

import (
	"fmt"

	"github.com/fieldlift/fieldlift/pkg/extract"
)

// Merge flattens per-chunk candidate lists in chunk order and deduplicates
// them by replacement anchor. On an anchor collision the later candidate's
// metadata wins while the field keeps its first-seen position, the same
// observable behavior as inserting into an ordered map keyed by anchor.
// Candidates without an anchor are dropped: they cannot be located in the
// document and would all collide on the empty key.
//
// After deduplication, colliding names are made unique with a numeric
// suffix so every field in the merged set can be addressed by name.
//
// Confidence is deliberately left unset here; the validator assigns it
// exactly once, after merge.
func Merge(perChunk [][]extract.FieldCandidate) []Field {
	var (
		fields   []Field
		byAnchor = make(map[string]int)
	)

	for _, candidates := range perChunk {
		for _, c := range candidates {
			if c.Replacement == "" {
				continue
			}
			f := Field{
				Name:        c.Name,
				Type:        NormalizeFieldType(c.Type),
				Description: c.Description,
				Placeholder: c.Placeholder,
				Required:    c.Required,
				Replacement: c.Replacement,
			}
			if i, seen := byAnchor[c.Replacement]; seen {
				fields[i] = f // last write wins, position stays
				continue
			}
			byAnchor[c.Replacement] = len(fields)
			fields = append(fields, f)
		}
	}

	uniquifyNames(fields)
	return fields
}

// uniquifyNames suffixes duplicate names with an increasing counter,
// probing until the suffixed name itself is free.
func uniquifyNames(fields []Field) {
	seen := make(map[string]bool, len(fields))
	for i := range fields {
		name := fields[i].Name
		if name == "" {
			name = "field"
		}
		if seen[name] {
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s_%d", name, n)
				if !seen[candidate] {
					name = candidate
					break
				}
			}
		}
		fields[i].Name = name
		seen[name] = true
	}
}
