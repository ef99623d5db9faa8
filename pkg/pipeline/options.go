package pipeline

import (
	"io"
	"log/slog"

	"github.com/askiada/go-linkstack/pkg/pipeline/model"
)

type settings struct {
	logger *slog.Logger
	strict bool
	opts   []model.PipelineOption
}

func newSettings(opts ...Option) *settings {
	s := &settings{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Option configures how a stack is resolved and built.
type Option func(s *settings)

// WithLogger sets the logger used while building and running the stack.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStrictBounds rejects relative indices past the end of their category
// range instead of clamping them.
func WithStrictBounds() Option {
	return func(s *settings) {
		s.strict = true
	}
}

// WithPipelineOptions attaches hooks such as measures and drawers.
func WithPipelineOptions(opts ...model.PipelineOption) Option {
	return func(s *settings) {
		s.opts = append(s.opts, opts...)
	}
}
