package analyze

import (
	"net/http"

	"github.com/fieldlift/fieldlift/pkg/errx"
)

var (
	// Error registry for the analysis pipeline
	errorRegistry = errx.NewRegistry("ANALYZE")

	ErrEmptyDocument = errorRegistry.Register(
		"EMPTY_DOCUMENT",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Document text is empty after normalization",
	)

	ErrInvalidRequest = errorRegistry.Register(
		"INVALID_REQUEST",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Request body is malformed",
	)

	ErrExtractionFailed = errorRegistry.Register(
		"EXTRACTION_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Field extraction failed for at least one chunk",
	)
)
