package inject

import (
	"net/http"

	"github.com/fieldlift/fieldlift/pkg/errx"
)

var (
	// Error registry for placeholder injection
	errorRegistry = errx.NewRegistry("INJECT")

	ErrNoFields = errorRegistry.Register(
		"NO_FIELDS",
		errx.TypeValidation,
		http.StatusBadRequest,
		"No fields with anchors to inject",
	)

	ErrAlreadyApplied = errorRegistry.Register(
		"ALREADY_APPLIED",
		errx.TypeBusiness,
		http.StatusConflict,
		"Placeholders were already injected in this session",
	)
)
