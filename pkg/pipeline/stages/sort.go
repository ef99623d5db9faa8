package stages

import (
	"context"
	"slices"

	"github.com/pkg/errors"

	"github.com/askiada/go-linkstack/pkg/pipeline"
	"github.com/askiada/go-linkstack/pkg/pipeline/pool"
)

const SortResourcesName = "sort-resources"

// sortResources moves resources matching its patterns to the front of the pool,
// grouped by pattern in argument order. Everything else keeps its relative order.
type sortResources struct {
	matcher *matcher
}

func newSortResources(arguments []string, _ map[string]string) (pipeline.Stage, error) {
	m, err := newMatcher(arguments)
	if err != nil {
		return nil, err
	}
	if m.all() {
		return nil, ErrPatternRequired
	}

	return &sortResources{matcher: m}, nil
}

func (sr *sortResources) Name() string {
	return SortResourcesName
}

func (sr *sortResources) Apply(_ context.Context, in *pool.Pool) (*pool.Pool, error) {
	resources := in.Resources()
	rank := func(res pool.Resource) int {
		idx := sr.matcher.index(res.Path)
		if idx < 0 {
			return len(sr.matcher.patterns)
		}

		return idx
	}
	slices.SortStableFunc(resources, func(a, b pool.Resource) int {
		return rank(a) - rank(b)
	})

	out, err := pool.New(resources...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to build sorted pool")
	}

	return out, nil
}
