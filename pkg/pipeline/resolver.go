package pipeline

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-linkstack/pkg/pipeline/model"
)

// ResolvePosition computes the global position of a configuration entry.
//
// An absolute entry keeps its literal index whatever its category. A relative
// entry is placed inside the range of category: unspecified and FIRST map to the
// range start, LAST to the range end and an index i to start+i. An index past the
// range end is clamped to it, or rejected when strict is set.
func ResolvePosition(entry model.StageConfig, category model.Category, cats *CategoryRegistry, strict bool) (int, error) {
	if entry.Absolute {
		switch entry.Position.Kind {
		case model.PositionUnspecified:
			return 0, nil
		case model.PositionIndex:
			return entry.Position.Index, nil
		default:
			return 0, newStageError(entry.Name, ErrInvalidPosition,
				errors.Errorf("%s cannot be absolute", entry.Position))
		}
	}

	rng, err := cats.RangeOf(category)
	if err != nil {
		return 0, newStageError(entry.Name, ErrUnknownCategory, err)
	}

	switch entry.Position.Kind {
	case model.PositionUnspecified, model.PositionFirst:
		return rng.Start, nil
	case model.PositionLast:
		return rng.End, nil
	case model.PositionIndex:
		index := entry.Position.Index
		if index < 0 {
			return 0, newStageError(entry.Name, ErrInvalidPosition,
				errors.Errorf("relative index %d is negative", index))
		}
		if index > rng.End-rng.Start {
			if strict {
				return 0, newStageError(entry.Name, ErrInvalidPosition,
					errors.Errorf("relative index %d exceeds %s range [%d, %d]", index, category, rng.Start, rng.End))
			}

			return rng.End, nil
		}

		return rng.Start + index, nil
	}

	return 0, newStageError(entry.Name, ErrInvalidPosition,
		errors.Errorf("unknown position kind %d", entry.Position.Kind))
}
