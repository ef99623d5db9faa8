// Package pool provides the immutable resource pool threaded through a stage pipeline.
//
// A Pool maps resource paths to their content and keeps the order in which the
// paths were first declared. Every operation that changes the content returns a
// new Pool: the receiver is never modified, so a stage always keeps a clean view
// of its input while it builds its output.
package pool

import (
	"bytes"

	"github.com/pkg/errors"
)

// ErrEmptyPath is returned when a resource has no path.
var ErrEmptyPath = errors.New("resource path must be set")

// Resource is a named piece of content.
type Resource struct {
	Path    string
	Content []byte
}

// Visitor is applied to every resource of a pool by Visit. Returning nil drops
// the resource, returning a resource records it under its own path.
type Visitor func(res Resource) (*Resource, error)

// Pool is an ordered, immutable set of resources.
type Pool struct {
	paths   []string
	content map[string][]byte
}

// Empty returns a pool without resources.
func Empty() *Pool {
	return &Pool{content: make(map[string][]byte)}
}

// New creates a pool seeded with resources. A later resource with the same path
// replaces an earlier one and keeps its slot.
func New(resources ...Resource) (*Pool, error) {
	p := Empty()
	for _, res := range resources {
		err := p.put(res.Path, res.Content)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Pool) put(path string, content []byte) error {
	if path == "" {
		return ErrEmptyPath
	}
	if _, ok := p.content[path]; !ok {
		p.paths = append(p.paths, path)
	}
	p.content[path] = bytes.Clone(content)
	if p.content[path] == nil {
		p.content[path] = []byte{}
	}

	return nil
}

func (p *Pool) clone() *Pool {
	out := &Pool{
		paths:   make([]string, len(p.paths)),
		content: make(map[string][]byte, len(p.content)),
	}
	copy(out.paths, p.paths)
	for path, content := range p.content {
		out.content[path] = content
	}

	return out
}

// WithResource returns a new pool holding the resource, added at the end or
// replacing the resource with the same path in place.
func (p *Pool) WithResource(path string, content []byte) (*Pool, error) {
	out := p.clone()
	err := out.put(path, content)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Visit builds a new pool by applying fn to every resource in declaration order.
func (p *Pool) Visit(fn Visitor) (*Pool, error) {
	out := Empty()
	for _, path := range p.paths {
		res, err := fn(Resource{Path: path, Content: bytes.Clone(p.content[path])})
		if err != nil {
			return nil, errors.Wrapf(err, "unable to visit resource %s", path)
		}
		if res == nil {
			continue
		}
		err = out.put(res.Path, res.Content)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to record resource visited from %s", path)
		}
	}

	return out, nil
}

// Len returns the number of resources.
func (p *Pool) Len() int {
	return len(p.paths)
}

// Size returns the total content size in bytes.
func (p *Pool) Size() int {
	total := 0
	for _, content := range p.content {
		total += len(content)
	}

	return total
}

// Contains reports whether a resource exists at path.
func (p *Pool) Contains(path string) bool {
	_, ok := p.content[path]

	return ok
}

// Get returns a copy of the resource stored at path.
func (p *Pool) Get(path string) (Resource, bool) {
	content, ok := p.content[path]
	if !ok {
		return Resource{}, false
	}

	return Resource{Path: path, Content: bytes.Clone(content)}, true
}

// Paths returns the resource paths in declaration order.
func (p *Pool) Paths() []string {
	out := make([]string, len(p.paths))
	copy(out, p.paths)

	return out
}

// Resources returns copies of the resources in declaration order.
func (p *Pool) Resources() []Resource {
	out := make([]Resource, 0, len(p.paths))
	for _, path := range p.paths {
		out = append(out, Resource{Path: path, Content: bytes.Clone(p.content[path])})
	}

	return out
}
