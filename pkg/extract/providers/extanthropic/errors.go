package extanthropic

import (
	"net/http"

	"github.com/fieldlift/fieldlift/pkg/errx"
)

var (
	// Error registry for the Anthropic provider
	errorRegistry = errx.NewRegistry("ANTHROPIC")

	ErrMissingAPIKey = errorRegistry.Register(
		"MISSING_API_KEY",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Anthropic API key is not configured",
	)

	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Failed to make request to Anthropic API",
	)

	ErrEmptyCompletion = errorRegistry.Register(
		"EMPTY_COMPLETION",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Anthropic API returned no text content",
	)
)
