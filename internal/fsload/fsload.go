// Package fsload moves resource pools between the file system and memory.
package fsload

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-linkstack/pkg/pipeline/pool"
)

// DefaultConcurrency bounds the number of files read or written at once.
const DefaultConcurrency = 8

var ErrDirMustBeSet = errors.New("directory must be set")

// Load reads every regular file under dir into a pool. Resource paths are slash
// separated, rooted at "/" and listed in lexical order.
func Load(ctx context.Context, dir string, concurrent int) (*pool.Pool, error) {
	if dir == "" {
		return nil, ErrDirMustBeSet
	}
	if concurrent < 1 {
		concurrent = DefaultConcurrency
	}

	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, p)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to walk %s", dir)
	}

	resources := make([]pool.Resource, len(files))
	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(concurrent)
	for idx, file := range files {
		errGrp.Go(func() error {
			if dCtx.Err() != nil {
				return dCtx.Err()
			}
			rel, err := filepath.Rel(dir, file)
			if err != nil {
				return errors.Wrapf(err, "unable to relativize %s", file)
			}
			content, err := os.ReadFile(file)
			if err != nil {
				return errors.Wrapf(err, "unable to read %s", file)
			}
			resources[idx] = pool.Resource{Path: "/" + filepath.ToSlash(rel), Content: content}

			return nil
		})
	}
	err = errGrp.Wait()
	if err != nil {
		return nil, err
	}

	out, err := pool.New(resources...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to build pool")
	}

	return out, nil
}

// Write stores every resource of p under dir, creating directories as needed.
func Write(ctx context.Context, dir string, p *pool.Pool, concurrent int) error {
	if dir == "" {
		return ErrDirMustBeSet
	}
	if p == nil {
		return errors.New("pool must be set")
	}
	if concurrent < 1 {
		concurrent = DefaultConcurrency
	}

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(concurrent)
	for _, res := range p.Resources() {
		errGrp.Go(func() error {
			if dCtx.Err() != nil {
				return dCtx.Err()
			}
			target, err := targetPath(dir, res.Path)
			if err != nil {
				return err
			}
			err = os.MkdirAll(filepath.Dir(target), 0o755)
			if err != nil {
				return errors.Wrapf(err, "unable to create directory for %s", res.Path)
			}
			err = os.WriteFile(target, res.Content, 0o644)
			if err != nil {
				return errors.Wrapf(err, "unable to write %s", res.Path)
			}

			return nil
		})
	}

	return errGrp.Wait()
}

// targetPath maps a resource path below dir, refusing paths escaping it.
func targetPath(dir, resPath string) (string, error) {
	clean := path.Clean("/" + resPath)
	rel := strings.TrimPrefix(clean, "/")
	if rel == "" {
		return "", errors.Errorf("resource path %q has no file name", resPath)
	}

	return filepath.Join(dir, filepath.FromSlash(rel)), nil
}
