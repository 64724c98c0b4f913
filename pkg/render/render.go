// Package render turns stored document bytes into analyzable text and
// caches the result per document so repeated analyses of an unchanged
// document do not pay the render cost again.
package render

import "context"

// Renderer extracts plain text from raw document bytes.
type Renderer interface {
	Render(ctx context.Context, data []byte) (string, error)
}

// PlainText treats the document bytes as UTF-8 text and returns them
// unchanged. It is the renderer for .txt and markdown-style uploads.
type PlainText struct{}

func NewPlainText() *PlainText { return &PlainText{} }

func (*PlainText) Render(_ context.Context, data []byte) (string, error) {
	return string(data), nil
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, data []byte) (string, error)

func (f RendererFunc) Render(ctx context.Context, data []byte) (string, error) {
	return f(ctx, data)
}
