package stages

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/askiada/go-linkstack/internal/ctxlog"
	"github.com/askiada/go-linkstack/pkg/pipeline"
	"github.com/askiada/go-linkstack/pkg/pipeline/pool"
)

const ExcludeResourcesName = "exclude-resources"

var ErrPatternRequired = errors.New("at least one pattern is required")

type excludeResources struct {
	matcher *matcher
}

func newExcludeResources(arguments []string, _ map[string]string) (pipeline.Stage, error) {
	m, err := newMatcher(arguments)
	if err != nil {
		return nil, err
	}
	if m.all() {
		return nil, ErrPatternRequired
	}

	return &excludeResources{matcher: m}, nil
}

func (er *excludeResources) Name() string {
	return ExcludeResourcesName
}

func (er *excludeResources) Apply(ctx context.Context, in *pool.Pool) (*pool.Pool, error) {
	logger := ctxlog.FromContext(ctx)

	return in.Visit(func(res pool.Resource) (*pool.Resource, error) {
		if er.matcher.match(res.Path) {
			logger.Debug("resource excluded", slog.String("path", res.Path))

			return nil, nil
		}

		return &res, nil
	})
}
