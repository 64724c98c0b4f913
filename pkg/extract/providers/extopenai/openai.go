// Package extopenai implements the extraction capability on top of the
// OpenAI chat completions API, using JSON-object response format.
package extopenai

import (
	"context"
	"os"

	"github.com/fieldlift/fieldlift/pkg/extract"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const defaultModel = "gpt-4o"

// Provider implements extract.Extractor for OpenAI
type Provider struct {
	client openai.Client
	apiKey string
}

// New creates a new OpenAI extraction provider. Falls back to the
// OPENAI_API_KEY environment variable when apiKey is empty.
func New(apiKey string, opts ...option.RequestOption) *Provider {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(options...)

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

	params := openai.ChatCompletionNewParams{
		Model: options.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(extract.Instructions),
			openai.UserMessage(chunk),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	if options.Temperature != 0 {
		params.Temperature = openai.Float(float64(options.Temperature))
	}
	if options.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(options.MaxTokens))
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, errorRegistry.NewWithCause(ErrAPIRequest, err).
			WithDetail("model", options.Model).
			WithDetail("chunk_length", len(chunk))
	}

	if len(completion.Choices) == 0 {
		return nil, errorRegistry.New(ErrNoChoicesInResponse).
			WithDetail("model", options.Model)
	}

	return extract.ParseCandidates(completion.Choices[0].Message.Content)
}
