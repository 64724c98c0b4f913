// Package asyncx provides the concurrency primitives the service layers
// lean on: ordered fan-out, bounded worker pools, retries, fire-and-forget
// goroutines, and call debouncing, all with first-class context support.
//
// # Fan-out
//
// [Map] applies a function to every element of a slice concurrently and
// returns the results in the original order. It returns on the first error
// but still waits for all goroutines to finish, preventing goroutine leaks:
//
//	results, err := asyncx.Map(ctx, chunks, func(ctx context.Context, c Chunk) ([]Candidate, error) {
//	    return extractor.Extract(ctx, c.Text)
//	})
//
// [All] is the fixed-arity variant. [AllSettled] never short-circuits;
// it always returns one [Result] per function.
//
// [Pool] is the bounded alternative to Map for workloads that must not
// overwhelm downstream resources such as rate-limited APIs.
//
// # Debounce
//
// [Debounced] wraps a function so it only fires after calls stop arriving
// for the given window. Every new call cancels the pending timer; work that
// has already fired is never cancelled:
//
//	trigger := asyncx.Debounced(500*time.Millisecond, runAnalysis)
//
// # Fire-and-forget
//
// [Do] launches a goroutine without tracking its result, for non-critical
// background work such as audit logging.
//
// The package has no external dependencies and relies solely on the Go
// standard library.
package asyncx
