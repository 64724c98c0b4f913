package extract

import (
	"net/http"

	"github.com/fieldlift/fieldlift/pkg/errx"
)

var (
	// Error registry shared by the extraction port and its providers
	errorRegistry = errx.NewRegistry("EXTRACT")

	// ErrEmptyChunk rejects extraction calls with no text
	ErrEmptyChunk = errorRegistry.Register(
		"EMPTY_CHUNK",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Chunk text is empty",
	)

	// ErrMalformedResponse marks a completion that could not be decoded
	// into field candidates
	ErrMalformedResponse = errorRegistry.Register(
		"MALFORMED_RESPONSE",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Extraction capability returned malformed field data",
	)
)

// NewEmptyChunkError returns the canonical empty-chunk error
func NewEmptyChunkError() *errx.Error {
	return errorRegistry.New(ErrEmptyChunk)
}
