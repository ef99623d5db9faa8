package stages

import (
	"bytes"
	"context"

	"github.com/askiada/go-linkstack/pkg/pipeline"
	"github.com/askiada/go-linkstack/pkg/pipeline/pool"
)

const NormalizeLineEndingsName = "normalize-line-endings"

type normalizeLineEndings struct {
	matcher *matcher
}

func newNormalizeLineEndings(arguments []string, _ map[string]string) (pipeline.Stage, error) {
	m, err := newMatcher(arguments)
	if err != nil {
		return nil, err
	}

	return &normalizeLineEndings{matcher: m}, nil
}

func (nl *normalizeLineEndings) Name() string {
	return NormalizeLineEndingsName
}

func (nl *normalizeLineEndings) Apply(_ context.Context, in *pool.Pool) (*pool.Pool, error) {
	return in.Visit(func(res pool.Resource) (*pool.Resource, error) {
		if nl.matcher.match(res.Path) {
			res.Content = bytes.ReplaceAll(res.Content, []byte("\r\n"), []byte("\n"))
		}

		return &res, nil
	})
}
