// Package extanthropic implements the extraction capability on top of the
// Anthropic Messages API.
package extanthropic

import (
	"context"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fieldlift/fieldlift/pkg/extract"
)

const defaultModel = "claude-sonnet-4-20250514"

// Provider implements extract.Extractor for Anthropic Claude
type Provider struct {
	client anthropic.Client
	apiKey string
}

// New creates a new Anthropic extraction provider. Falls back to the
// ANTHROPIC_API_KEY environment variable when apiKey is empty.
func New(apiKey string, opts ...option.RequestOption) *Provider {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := anthropic.NewClient(options...)

	return &Provider{
		client: client,
		apiKey: apiKey,
	}
}

// Extract implements extract.Extractor
func (p *Provider) Extract(ctx context.Context, chunk string, opts ...extract.Option) ([]extract.FieldCandidate, error) {
	if p.apiKey == "" {
		return nil, errorRegistry.New(ErrMissingAPIKey)
	}
	if chunk == "" {
		return nil, extract.NewEmptyChunkError()
	}

	options := extract.ApplyOptions(opts...)
	if options.Model == "" {
		options.Model = defaultModel
	}

	maxTokens := int64(4096)
	if options.MaxTokens > 0 {
		maxTokens = int64(options.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(options.Model),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: extract.Instructions},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(chunk)),
		},
	}

	if options.Temperature != 0 {
		params.Temperature = anthropic.Float(float64(options.Temperature))
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, errorRegistry.NewWithCause(ErrAPIRequest, err).
			WithDetail("model", options.Model).
			WithDetail("chunk_length", len(chunk))
	}

	var content string
	for _, block := range message.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}
	if content == "" {
		return nil, errorRegistry.New(ErrEmptyCompletion).
			WithDetail("model", options.Model)
	}

	return extract.ParseCandidates(content)
}
