package stages

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-linkstack/pkg/pipeline"
	"github.com/askiada/go-linkstack/pkg/pipeline/model"
)

// Register installs the built-in stage providers into reg.
func Register(reg *pipeline.Registry) error {
	if reg == nil {
		return pipeline.ErrRegistryMustBeSet
	}

	providers := []struct {
		name     string
		category model.Category
		fn       pipeline.ConstructFunc
	}{
		{ExcludeResourcesName, model.CategoryFilter, newExcludeResources},
		{NormalizeLineEndingsName, model.CategoryTransformer, newNormalizeLineEndings},
		{SortResourcesName, model.CategorySorter, newSortResources},
		{ZipName, model.CategoryCompressor, newZip},
	}
	for _, p := range providers {
		err := reg.Register(p.name, pipeline.NewProvider(p.category, p.fn))
		if err != nil {
			return errors.Wrapf(err, "unable to register %s", p.name)
		}
	}

	return nil
}
