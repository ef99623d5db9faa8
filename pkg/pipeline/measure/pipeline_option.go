package measure

import (
	"time"

	"github.com/askiada/go-linkstack/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
	start time.Time
}

func (pm *pipelineMeasure) New() error {
	pm.AddMetric(model.EndStage.Name)
	pm.start = time.Now()

	return nil
}

func (pm *pipelineMeasure) PrepareStage(_, stage *model.StageInfo) error {
	pm.AddMetric(stage.Name)

	return nil
}

func (pm *pipelineMeasure) OnStageOutput(stage *model.StageInfo, inputResources, outputResources int, elapsed time.Duration) error {
	mt := pm.GetMetric(stage.Name)
	if mt == nil {
		mt = pm.AddMetric(stage.Name)
	}
	mt.AddDuration(elapsed)
	mt.AddResources(inputResources, outputResources)

	return nil
}

func (pm *pipelineMeasure) Finish() error {
	pm.GetMetric(model.EndStage.Name).AddDuration(time.Since(pm.start))

	return nil
}

// PipelineMeasure records every stage execution into measure.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{Measure: measure}
}
