package pipeline

import (
	"cmp"
	"slices"

	"github.com/askiada/go-linkstack/pkg/pipeline/model"
)

// Resolve validates the configuration entries against the registry, resolves
// their positions and returns them in execution order.
func Resolve(reg *Registry, entries []model.StageConfig, strict bool) ([]model.ResolvedStage, error) {
	if reg == nil {
		return nil, ErrRegistryMustBeSet
	}

	seen := make(map[string]struct{}, len(entries))
	resolved := make([]model.ResolvedStage, 0, len(entries))
	for seq, entry := range entries {
		if entry.Name == "" {
			return nil, ErrEmptyName
		}
		if _, ok := seen[entry.Name]; ok {
			return nil, newStageError(entry.Name, ErrDuplicateName, nil)
		}
		seen[entry.Name] = struct{}{}

		provider, err := reg.Provider(entry.Name)
		if err != nil {
			return nil, err
		}
		position, err := ResolvePosition(entry, provider.Category(), reg.Categories(), strict)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, model.ResolvedStage{
			Name:     entry.Name,
			Category: provider.Category(),
			Position: position,
			Sequence: seq,
		})
	}

	return Sort(resolved), nil
}

// Sort returns the stages ordered by ascending position. Stages sharing a
// position keep their configuration order.
func Sort(resolved []model.ResolvedStage) []model.ResolvedStage {
	out := slices.Clone(resolved)
	slices.SortStableFunc(out, func(a, b model.ResolvedStage) int {
		return cmp.Or(cmp.Compare(a.Position, b.Position), cmp.Compare(a.Sequence, b.Sequence))
	})

	return out
}

// OrderedNames returns the stage names of resolved, in order.
func OrderedNames(resolved []model.ResolvedStage) []string {
	names := make([]string, len(resolved))
	for i, stage := range resolved {
		names[i] = stage.Name
	}

	return names
}
