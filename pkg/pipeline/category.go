package pipeline

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-linkstack/pkg/pipeline/model"
)

const (
	categoryRangeStart  = 10000
	categoryRangeLength = 10000
)

// Range is an inclusive interval of positions.
type Range struct {
	Start int
	End   int
}

// Contains reports whether position lies in the range.
func (r Range) Contains(position int) bool {
	return position >= r.Start && position <= r.End
}

// CategoryRegistry is the ordered, read-only list of categories and the
// position range each of them owns.
type CategoryRegistry struct {
	ordered []model.Category
	ranges  map[model.Category]Range
}

var defaultCategories = mustCategoryRegistry(categoryRangeStart, categoryRangeLength,
	model.CategoryFilter,
	model.CategoryTransformer,
	model.CategorySorter,
	model.CategoryCompressor,
	model.CategoryNone,
)

// DefaultCategories returns the engine categories: FILTER, TRANSFORMER, SORTER,
// COMPRESSOR and the uncategorized bucket, in that order.
func DefaultCategories() *CategoryRegistry {
	return defaultCategories
}

func newCategoryRegistry(start, length int, categories ...model.Category) (*CategoryRegistry, error) {
	if length <= 0 {
		return nil, errors.Errorf("category range length must be greater than 0, got %d", length)
	}
	if len(categories) == 0 || categories[len(categories)-1] != model.CategoryNone {
		return nil, errors.New("uncategorized bucket must come last")
	}
	reg := &CategoryRegistry{
		ordered: make([]model.Category, 0, len(categories)),
		ranges:  make(map[model.Category]Range, len(categories)),
	}
	for i, category := range categories {
		if _, ok := reg.ranges[category]; ok {
			return nil, errors.Errorf("category %s declared twice", category)
		}
		rangeStart := start + i*length
		reg.ordered = append(reg.ordered, category)
		reg.ranges[category] = Range{Start: rangeStart, End: rangeStart + length - 1}
	}

	return reg, nil
}

func mustCategoryRegistry(start, length int, categories ...model.Category) *CategoryRegistry {
	reg, err := newCategoryRegistry(start, length, categories...)
	if err != nil {
		panic(err)
	}

	return reg
}

// RangeOf returns the positions owned by category.
func (cr *CategoryRegistry) RangeOf(category model.Category) (Range, error) {
	rng, ok := cr.ranges[category]
	if !ok {
		return Range{}, errors.Wrapf(ErrUnknownCategory, "category %q", string(category))
	}

	return rng, nil
}

// Ordinal returns the priority of category, 0 being the first to run.
func (cr *CategoryRegistry) Ordinal(category model.Category) (int, error) {
	for i, c := range cr.ordered {
		if c == category {
			return i, nil
		}
	}

	return 0, errors.Wrapf(ErrUnknownCategory, "category %q", string(category))
}

// Categories returns the categories in ordinal order.
func (cr *CategoryRegistry) Categories() []model.Category {
	out := make([]model.Category, len(cr.ordered))
	copy(out, cr.ordered)

	return out
}

// CategoryAt returns the category whose range holds position.
func (cr *CategoryRegistry) CategoryAt(position int) (model.Category, bool) {
	for _, c := range cr.ordered {
		if cr.ranges[c].Contains(position) {
			return c, true
		}
	}

	return model.CategoryNone, false
}
