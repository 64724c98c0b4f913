package analyze

import (
	"context"
	"time"

	"github.com/fieldlift/fieldlift/pkg/asyncx"
	"github.com/fieldlift/fieldlift/pkg/extract"
	"github.com/fieldlift/fieldlift/pkg/logx"
)

// Result is the outcome of one document analysis.
type Result struct {
	Fields   []Field  `json:"fields"`
	Metadata Metadata `json:"metadata"`
}

// Metadata carries timing and volume figures for one analysis run.
// Durations are reported in milliseconds.
type Metadata struct {
	TotalFields         int     `json:"totalFields"`
	ChunksProcessed     int     `json:"chunksProcessed"`
	ProcessingTime      int64   `json:"processingTime"`
	ChunkProcessingTime int64   `json:"chunkProcessingTime"`
	MergeTime           int64   `json:"mergeTime"`
	AverageChunkTime    float64 `json:"averageChunkTime"`
}

// Service runs the full analysis pipeline: normalize, chunk, dispatch
// extraction per chunk, merge, validate, link.
type Service struct {
	extractor  extract.Extractor
	validator  *Validator
	chunkLimit int
	workers    int
	extOpts    []extract.Option
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithChunkLimit sets the chunk character limit.
func WithChunkLimit(limit int) ServiceOption {
	return func(s *Service) {
		if limit > 0 {
			s.chunkLimit = limit
		}
	}
}

// WithMaxConcurrency bounds the number of chunks extracted in parallel.
// Zero or negative keeps the default of one goroutine per chunk.
func WithMaxConcurrency(workers int) ServiceOption {
	return func(s *Service) { s.workers = workers }
}

// WithValidator replaces the default (lenient) validator.
func WithValidator(v *Validator) ServiceOption {
	return func(s *Service) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithExtractOptions forwards options to every per-chunk extraction call.
func WithExtractOptions(opts ...extract.Option) ServiceOption {
	return func(s *Service) { s.extOpts = opts }
}

func NewService(extractor extract.Extractor, opts ...ServiceOption) *Service {
	s := &Service{
		extractor:  extractor,
		validator:  NewValidator(),
		chunkLimit: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs the pipeline on raw document text. Chunks are dispatched
// concurrently and fail fast: the first extraction error aborts the run
// after all in-flight chunks settle, and no partial result is returned.
func (s *Service) Analyze(ctx context.Context, text string) (*Result, error) {
	started := time.Now()

	normalized := Normalize(text)
	if normalized == "" {
		return nil, errorRegistry.New(ErrEmptyDocument)
	}

	chunks := SplitChunks(normalized, s.chunkLimit)

	logx.WithFields(logx.Fields{
		"chunks":      len(chunks),
		"chunk_limit": s.chunkLimit,
	}).Debug("dispatching extraction")

	dispatchStart := time.Now()
	perChunk, err := s.dispatch(ctx, chunks)
	if err != nil {
		return nil, errorRegistry.NewWithCause(ErrExtractionFailed, err)
	}
	dispatchTime := time.Since(dispatchStart)

	mergeStart := time.Now()
	fields := Merge(perChunk)
	fields = s.validator.Validate(fields)
	fields = Link(fields)
	mergeTime := time.Since(mergeStart)

	if fields == nil {
		fields = []Field{}
	}

	avg := 0.0
	if len(chunks) > 0 {
		avg = float64(dispatchTime.Milliseconds()) / float64(len(chunks))
	}

	result := &Result{
		Fields: fields,
		Metadata: Metadata{
			TotalFields:         len(fields),
			ChunksProcessed:     len(chunks),
			ProcessingTime:      time.Since(started).Milliseconds(),
			ChunkProcessingTime: dispatchTime.Milliseconds(),
			MergeTime:           mergeTime.Milliseconds(),
			AverageChunkTime:    avg,
		},
	}

	logx.WithFields(logx.Fields{
		"fields":        result.Metadata.TotalFields,
		"chunks":        result.Metadata.ChunksProcessed,
		"processing_ms": result.Metadata.ProcessingTime,
	}).Info("analysis complete")

	return result, nil
}

func (s *Service) dispatch(ctx context.Context, chunks []Chunk) ([][]extract.FieldCandidate, error) {
	fn := func(ctx context.Context, c Chunk) ([]extract.FieldCandidate, error) {
		return s.extractor.Extract(ctx, c.Text, s.extOpts...)
	}
	if s.workers > 0 {
		return asyncx.Pool(ctx, s.workers, chunks, fn)
	}
	return asyncx.Map(ctx, chunks, fn)
}
