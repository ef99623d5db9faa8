package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/askiada/go-linkstack/internal/ctxlog"
	"github.com/askiada/go-linkstack/pkg/pipeline/model"
	"github.com/askiada/go-linkstack/pkg/pipeline/pool"
)

// Stack is an ordered list of constructed stages.
type Stack struct {
	stages []Stage
	infos  []*model.StageInfo
	opts   []model.PipelineOption
	logger *slog.Logger
}

// New resolves the configuration entries against the registry and builds the
// resulting stack.
func New(reg *Registry, entries []model.StageConfig, opts ...Option) (*Stack, error) {
	s := newSettings(opts...)

	ordered, err := Resolve(reg, entries, s.strict)
	if err != nil {
		return nil, errors.Wrap(err, "unable to resolve stage order")
	}
	s.logger.Debug("stage order resolved", slog.Any("stages", OrderedNames(ordered)))

	return build(reg, ordered, entries, s)
}

// Build constructs the stages of ordered, in that order, using the arguments and
// options of the matching configuration entries. Nothing is built if any
// provider fails.
func Build(reg *Registry, ordered []model.ResolvedStage, entries []model.StageConfig, opts ...Option) (*Stack, error) {
	return build(reg, ordered, entries, newSettings(opts...))
}

func build(reg *Registry, ordered []model.ResolvedStage, entries []model.StageConfig, s *settings) (*Stack, error) {
	if reg == nil {
		return nil, ErrRegistryMustBeSet
	}

	byName := make(map[string]model.StageConfig, len(entries))
	for _, entry := range entries {
		byName[entry.Name] = entry
	}

	stack := &Stack{
		stages: make([]Stage, 0, len(ordered)),
		infos:  make([]*model.StageInfo, 0, len(ordered)),
		opts:   s.opts,
		logger: s.logger,
	}
	for i, resolved := range ordered {
		entry, ok := byName[resolved.Name]
		if !ok {
			return nil, newStageError(resolved.Name, ErrUnknownStage, errors.New("no configuration entry"))
		}
		provider, err := reg.Provider(resolved.Name)
		if err != nil {
			return nil, err
		}
		stage, err := provider.Construct(entry.Arguments, entry.Options)
		if err != nil {
			return nil, newStageError(resolved.Name, ErrConstruction, err)
		}
		if stage == nil {
			return nil, newStageError(resolved.Name, ErrConstruction, errors.New("provider returned no stage"))
		}
		stack.stages = append(stack.stages, stage)
		stack.infos = append(stack.infos, &model.StageInfo{
			Name:     resolved.Name,
			Category: resolved.Category,
			Position: resolved.Position,
			Order:    i,
		})
	}

	err := stack.prepare()
	if err != nil {
		return nil, err
	}

	return stack, nil
}

func (s *Stack) prepare() error {
	for _, opt := range s.opts {
		err := opt.New()
		if err != nil {
			return errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	parent := model.StartStage
	for _, info := range s.infos {
		for _, opt := range s.opts {
			err := opt.PrepareStage(parent, info)
			if err != nil {
				return errors.Wrapf(err, "unable to prepare stage %s", info.Name)
			}
		}
		parent = info
	}

	return nil
}

// Stages describes the stages in execution order.
func (s *Stack) Stages() []model.StageInfo {
	out := make([]model.StageInfo, len(s.infos))
	for i, info := range s.infos {
		out[i] = *info
	}

	return out
}

// Names returns the stage names in execution order.
func (s *Stack) Names() []string {
	out := make([]string, len(s.infos))
	for i, info := range s.infos {
		out[i] = info.Name
	}

	return out
}

// Run applies every stage in order, each one consuming the pool produced by the
// previous one, and returns the last pool. The first failing stage aborts the run.
func (s *Stack) Run(ctx context.Context, input *pool.Pool) (*pool.Pool, error) {
	if input == nil {
		return nil, ErrInputMustBeSet
	}

	logger := s.logger.With(slog.String("run_id", uuid.NewString()))
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Info("pipeline started", slog.Int("stages", len(s.stages)), slog.Int("resources", input.Len()))

	startRun := time.Now()
	current := input
	for i, stage := range s.stages {
		info := s.infos[i]
		if ctx.Err() != nil {
			return nil, errors.Wrapf(ctx.Err(), "stopped before stage %s", info.Name)
		}

		startFn := time.Now()
		output, err := stage.Apply(ctx, current)
		endFn := time.Since(startFn)
		if err != nil {
			logger.Error("stage failed", slog.String("stage", info.Name), slog.Any("error", err))

			return nil, newStageError(info.Name, ErrExecution, err)
		}
		if output == nil {
			return nil, newStageError(info.Name, ErrExecution, ErrNilPool)
		}

		for _, opt := range s.opts {
			err := opt.OnStageOutput(info, current.Len(), output.Len(), endFn)
			if err != nil {
				return nil, errors.Wrap(err, "unable to run stage output option")
			}
		}
		logger.Debug("stage applied",
			slog.String("stage", info.Name),
			slog.String("category", info.Category.String()),
			slog.Int("position", info.Position),
			slog.Int("resources_in", current.Len()),
			slog.Int("resources_out", output.Len()),
			slog.Duration("elapsed", endFn),
		)

		current = output
	}

	for _, opt := range s.opts {
		err := opt.Finish()
		if err != nil {
			return nil, errors.Wrap(err, "unable to finish pipeline option")
		}
	}
	logger.Info("pipeline finished", slog.Int("resources", current.Len()), slog.Duration("elapsed", time.Since(startRun)))

	return current, nil
}
