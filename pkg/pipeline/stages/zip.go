package stages

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"

	"github.com/klauspost/compress/flate"
	"github.com/pkg/errors"

	"github.com/askiada/go-linkstack/internal/ctxlog"
	"github.com/askiada/go-linkstack/pkg/pipeline"
	"github.com/askiada/go-linkstack/pkg/pipeline/pool"
)

const (
	ZipName     = "zip"
	LevelOption = "level"
)

var ErrInvalidLevel = errors.New("compression level must be between 1 and 9")

type zip struct {
	matcher *matcher
	level   int
}

func newZip(arguments []string, options map[string]string) (pipeline.Stage, error) {
	m, err := newMatcher(arguments)
	if err != nil {
		return nil, err
	}

	level := flate.DefaultCompression
	if raw, ok := options[LevelOption]; ok {
		level, err = strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidLevel, "level %q", raw)
		}
		if level < flate.BestSpeed || level > flate.BestCompression {
			return nil, errors.Wrapf(ErrInvalidLevel, "level %d", level)
		}
	}

	return &zip{matcher: m, level: level}, nil
}

func (z *zip) Name() string {
	return ZipName
}

func (z *zip) Apply(ctx context.Context, in *pool.Pool) (*pool.Pool, error) {
	logger := ctxlog.FromContext(ctx)
	buf := &bytes.Buffer{}

	return in.Visit(func(res pool.Resource) (*pool.Resource, error) {
		if !z.matcher.match(res.Path) {
			return &res, nil
		}

		buf.Reset()
		wrt, err := flate.NewWriter(buf, z.level)
		if err != nil {
			return nil, errors.Wrap(err, "unable to create compressor")
		}
		_, err = wrt.Write(res.Content)
		if err != nil {
			return nil, errors.Wrap(err, "unable to compress")
		}
		err = wrt.Close()
		if err != nil {
			return nil, errors.Wrap(err, "unable to flush compressor")
		}

		logger.Debug("resource compressed",
			slog.String("path", res.Path),
			slog.Int("size", len(res.Content)),
			slog.Int("compressed", buf.Len()),
		)
		res.Content = bytes.Clone(buf.Bytes())

		return &res, nil
	})
}
