package pipeline

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/askiada/go-linkstack/pkg/pipeline/model"
	"github.com/askiada/go-linkstack/pkg/pipeline/pool"
)

// Stage is a unit of work turning a resource pool into a new one.
type Stage interface {
	Name() string
	// Apply must not modify in.
	Apply(ctx context.Context, in *pool.Pool) (*pool.Pool, error)
}

// Provider builds stage instances.
type Provider interface {
	// Category returns the category the stage belongs to, model.CategoryNone
	// when it has none.
	Category() model.Category
	// Construct creates a stage from the configured arguments and options.
	Construct(arguments []string, options map[string]string) (Stage, error)
}

// ConstructFunc builds a stage.
type ConstructFunc func(arguments []string, options map[string]string) (Stage, error)

type funcProvider struct {
	category model.Category
	fn       ConstructFunc
}

func (fp *funcProvider) Category() model.Category {
	return fp.category
}

func (fp *funcProvider) Construct(arguments []string, options map[string]string) (Stage, error) {
	return fp.fn(arguments, options)
}

// NewProvider adapts a function to the Provider interface.
func NewProvider(category model.Category, fn ConstructFunc) Provider {
	return &funcProvider{category: category, fn: fn}
}

// Registry maps stage names to their providers. Providers are registered before
// resolution starts and the registry is read-only afterwards.
type Registry struct {
	mu         sync.RWMutex
	categories *CategoryRegistry
	providers  map[string]Provider
}

// NewRegistry returns an empty registry using the default categories.
func NewRegistry() *Registry {
	return &Registry{
		categories: DefaultCategories(),
		providers:  make(map[string]Provider),
	}
}

// Categories returns the categories the registry validates providers against.
func (r *Registry) Categories() *CategoryRegistry {
	return r.categories
}

// Register installs a provider under name.
func (r *Registry) Register(name string, provider Provider) error {
	if name == "" {
		return ErrEmptyName
	}
	if provider == nil {
		return errors.Wrapf(ErrProviderMustBeSet, "stage %s", name)
	}
	_, err := r.categories.RangeOf(provider.Category())
	if err != nil {
		return newStageError(name, ErrUnknownCategory, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; ok {
		return newStageError(name, ErrDuplicateName, nil)
	}
	r.providers[name] = provider

	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(name string, provider Provider) {
	err := r.Register(name, provider)
	if err != nil {
		panic(err)
	}
}

// Provider returns the provider registered under name.
func (r *Registry) Provider(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.providers[name]
	if !ok {
		return nil, newStageError(name, ErrUnknownStage, nil)
	}

	return provider, nil
}

// Names returns the registered stage names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
