package drawer

import (
	"time"

	"github.com/askiada/go-linkstack/pkg/pipeline/measure"
	"github.com/askiada/go-linkstack/pkg/pipeline/model"
)

// Drawer is an interface that defines the methods for drawing a pipeline.
type Drawer interface {
	// AddStage adds a stage to the pipeline drawer.
	AddStage(stage *model.StageInfo) error
	// AddLink adds a link between two consecutive stages.
	AddLink(parentStageName, childStageName string) error
	// Draw renders the pipeline graph.
	Draw() error
	// SetTotalTime sets the total time for the stage.
	SetTotalTime(stageName string, startTime time.Time) error
	// AddMeasure adds a measure to the pipeline drawer.
	AddMeasure(measure measure.Measure) error
}
