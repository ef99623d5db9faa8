package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-linkstack/pkg/pipeline/measure"
	"github.com/askiada/go-linkstack/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m         measure.Measure
	startTime time.Time
	last      *model.StageInfo
	linked    bool
}

func (pd *pipelineDrawer) New() error {
	err := pd.AddStage(model.StartStage)
	if err != nil {
		return errors.Wrap(err, "unable to add start stage to drawer")
	}
	err = pd.AddStage(model.EndStage)
	if err != nil {
		return errors.Wrap(err, "unable to add end stage to drawer")
	}
	pd.last = model.StartStage
	pd.startTime = time.Now()

	return nil
}

func (pd *pipelineDrawer) PrepareStage(parentStage, stage *model.StageInfo) error {
	err := pd.AddStage(stage)
	if err != nil {
		return err
	}
	err = pd.AddLink(parentStage.Name, stage.Name)
	if err != nil {
		return err
	}
	pd.last = stage

	return nil
}

func (pd *pipelineDrawer) OnStageOutput(*model.StageInfo, int, int, time.Duration) error {
	return nil
}

func (pd *pipelineDrawer) Finish() error {
	if !pd.linked {
		err := pd.AddLink(pd.last.Name, model.EndStage.Name)
		if err != nil {
			return errors.Wrap(err, "unable to link end stage")
		}
		pd.linked = true
	}

	err := pd.SetTotalTime(model.EndStage.Name, pd.startTime)
	if err != nil {
		return errors.Wrap(err, "unable to set total time")
	}

	if pd.m != nil {
		err = pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err = pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// PipelineDrawer draws the stack once it has run. measure may be nil.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{Drawer: drawer, m: measure}
}
