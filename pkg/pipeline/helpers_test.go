package pipeline_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-linkstack/pkg/pipeline"
	"github.com/askiada/go-linkstack/pkg/pipeline/model"
	"github.com/askiada/go-linkstack/pkg/pipeline/pool"
)

// trapStage records its name when applied and passes every resource through.
type trapStage struct {
	name  string
	order *[]string
}

func (ts *trapStage) Name() string {
	return ts.name
}

func (ts *trapStage) Apply(_ context.Context, in *pool.Pool) (*pool.Pool, error) {
	*ts.order = append(*ts.order, ts.name)

	return in.Visit(func(res pool.Resource) (*pool.Resource, error) {
		return &res, nil
	})
}

func trapProvider(name string, category model.Category, order *[]string) pipeline.Provider {
	return pipeline.NewProvider(category, func([]string, map[string]string) (pipeline.Stage, error) {
		return &trapStage{name: name, order: order}, nil
	})
}

var trapCategories = map[string]model.Category{
	"F": model.CategoryFilter,
	"T": model.CategoryTransformer,
	"S": model.CategorySorter,
	"C": model.CategoryCompressor,
	"A": model.CategoryNone,
}

// newTrapRegistry registers plugin1_X..plugin4_X for every category suffix X.
func newTrapRegistry(t *testing.T, order *[]string) *pipeline.Registry {
	t.Helper()

	reg := pipeline.NewRegistry()
	for _, suffix := range []string{"F", "T", "S", "C", "A"} {
		for i := 1; i <= 4; i++ {
			name := fmt.Sprintf("plugin%d_%s", i, suffix)
			require.NoError(t, reg.Register(name, trapProvider(name, trapCategories[suffix], order)))
		}
	}

	return reg
}

func relative(name string, index int) model.StageConfig {
	return model.StageConfig{Name: name, Position: model.AtIndex(index)}
}

func absolute(name string, index int) model.StageConfig {
	return model.StageConfig{Name: name, Position: model.AtIndex(index), Absolute: true}
}

func anchored(name string, position model.Position) model.StageConfig {
	return model.StageConfig{Name: name, Position: position}
}

func rangeOf(t *testing.T, category model.Category) pipeline.Range {
	t.Helper()

	rng, err := pipeline.DefaultCategories().RangeOf(category)
	require.NoError(t, err)

	return rng
}

func seedPool(t *testing.T) *pool.Pool {
	t.Helper()

	p, err := pool.New(pool.Resource{Path: "/mod/com/foo/bar/A.something", Content: []byte{}})
	require.NoError(t, err)

	return p
}
