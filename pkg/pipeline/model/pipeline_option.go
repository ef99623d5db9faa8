package model

import "time"

// PipelineOption defines the interface for pipeline options.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error
	// PrepareStage runs once per stage, in execution order, while the stack is built.
	PrepareStage(parentStage, stage *StageInfo) error
	// OnStageOutput runs every time a stage has produced its output pool.
	OnStageOutput(stage *StageInfo, inputResources, outputResources int, elapsed time.Duration) error
	// Finish runs after the last stage.
	Finish() error
}
