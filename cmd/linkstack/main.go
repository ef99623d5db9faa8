package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-linkstack/internal/fsload"
	"github.com/askiada/go-linkstack/pkg/pipeline"
	"github.com/askiada/go-linkstack/pkg/pipeline/config"
	"github.com/askiada/go-linkstack/pkg/pipeline/drawer"
	"github.com/askiada/go-linkstack/pkg/pipeline/measure"
	"github.com/askiada/go-linkstack/pkg/pipeline/model"
	"github.com/askiada/go-linkstack/pkg/pipeline/stages"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// planEntry is one line of the -print-plan output.
type planEntry struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Position int    `yaml:"position"`
}

// run writes results to outW and logs to logW.
func run(ctx context.Context, outW, logW io.Writer, args []string) error {
	opts, shouldExit, err := parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return usageError("%v", err)
	}
	entries, err := opts.merge(cfg)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log.Level, cfg.Log.Format, logW)

	reg := pipeline.NewRegistry()
	err = stages.Register(reg)
	if err != nil {
		return errors.Wrap(err, "unable to register built-in stages")
	}

	if opts.printPlan {
		ordered, err := pipeline.Resolve(reg, entries, cfg.Strict)
		if err != nil {
			return errors.Wrap(err, "unable to resolve stage order")
		}

		return printPlan(outW, ordered)
	}

	if cfg.Input == "" {
		return usageError("an input directory is required")
	}

	stackOpts := []pipeline.Option{pipeline.WithLogger(logger)}
	if cfg.Strict {
		stackOpts = append(stackOpts, pipeline.WithStrictBounds())
	}
	if cfg.Graph != "" {
		graphFile, err := os.Create(cfg.Graph)
		if err != nil {
			return errors.Wrap(err, "unable to create graph file")
		}
		defer graphFile.Close()

		msr := measure.NewDefaultMeasure()
		stackOpts = append(stackOpts, pipeline.WithPipelineOptions(
			measure.PipelineMeasure(msr),
			drawer.PipelineDrawer(drawer.NewDOTDrawer(graphFile), msr),
		))
	}

	stack, err := pipeline.New(reg, entries, stackOpts...)
	if err != nil {
		return errors.Wrap(err, "unable to build stack")
	}

	input, err := fsload.Load(ctx, cfg.Input, fsload.DefaultConcurrency)
	if err != nil {
		return errors.Wrap(err, "unable to load input")
	}
	output, err := stack.Run(ctx, input)
	if err != nil {
		return errors.Wrap(err, "unable to run stack")
	}

	if cfg.Output == "" {
		logger.Info("no output directory, resources discarded", slog.Int("resources", output.Len()))

		return nil
	}
	err = fsload.Write(ctx, cfg.Output, output, fsload.DefaultConcurrency)
	if err != nil {
		return errors.Wrap(err, "unable to write output")
	}
	logger.Info("resources written",
		slog.String("output", cfg.Output),
		slog.Int("resources", output.Len()),
		slog.Int("bytes", output.Size()),
	)

	return nil
}

func printPlan(outW io.Writer, ordered []model.ResolvedStage) error {
	plan := make([]planEntry, 0, len(ordered))
	for _, stage := range ordered {
		plan = append(plan, planEntry{
			Name:     stage.Name,
			Category: stage.Category.String(),
			Position: stage.Position,
		})
	}

	enc := yaml.NewEncoder(outW)
	enc.SetIndent(2)
	err := enc.Encode(plan)
	if err != nil {
		return errors.Wrap(err, "unable to encode plan")
	}

	return enc.Close()
}
