package extopenai

import (
	"net/http"

	"github.com/fieldlift/fieldlift/pkg/errx"
)

var (
	// Error registry for the OpenAI provider
	errorRegistry = errx.NewRegistry("OPENAI")

	ErrMissingAPIKey = errorRegistry.Register(
		"MISSING_API_KEY",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"OpenAI API key is not configured",
	)

	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Failed to make request to OpenAI API",
	)

	ErrNoChoicesInResponse = errorRegistry.Register(
		"NO_CHOICES",
		errx.TypeExternal,
		http.StatusBadGateway,
		"OpenAI API returned no completion choices",
	)
)
