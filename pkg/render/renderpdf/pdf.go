// Package renderpdf renders PDF documents to plain text.
package renderpdf

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/fieldlift/fieldlift/pkg/errx"
)

var (
	// Error registry for the PDF renderer
	errorRegistry = errx.NewRegistry("RENDER_PDF")

	ErrUnreadable = errorRegistry.Register(
		"UNREADABLE_DOCUMENT",
		errx.TypeValidation,
		http.StatusUnprocessableEntity,
		"Document is not a readable PDF",
	)

	ErrNoText = errorRegistry.Register(
		"NO_TEXT_CONTENT",
		errx.TypeValidation,
		http.StatusUnprocessableEntity,
		"PDF contains no extractable text",
	)
)

// Renderer extracts the plain-text layer of a PDF. Scanned PDFs without
// a text layer yield ErrNoText rather than an empty analysis.
type Renderer struct{}

func New() *Renderer { return &Renderer{} }

func (*Renderer) Render(_ context.Context, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errorRegistry.NewWithCause(ErrUnreadable, err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", errorRegistry.NewWithCause(ErrUnreadable, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", errorRegistry.NewWithCause(ErrUnreadable, err)
	}

	text := buf.String()
	if strings.TrimSpace(text) == "" {
		return "", errorRegistry.New(ErrNoText)
	}
	return text, nil
}
