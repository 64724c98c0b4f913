package extract

// Options holds per-call extraction settings
type Options struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// Option configures an extraction call
type Option func(*Options)

// DefaultOptions returns the baseline extraction options. The provider
// fills in its own default model when Model is empty.
func DefaultOptions() *Options {
	return &Options{
		Temperature: 0.1,
		MaxTokens:   4096,
	}
}

// ApplyOptions folds opts over the defaults
func ApplyOptions(opts ...Option) *Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithModel selects the model used for extraction
func WithModel(model string) Option {
	return func(o *Options) { o.Model = model }
}

// WithTemperature sets the sampling temperature
func WithTemperature(t float32) Option {
	return func(o *Options) { o.Temperature = t }
}

// WithMaxTokens caps the completion length
func WithMaxTokens(n int) Option {
	return func(o *Options) { o.MaxTokens = n }
}
