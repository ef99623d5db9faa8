package drawer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-linkstack/pkg/pipeline/drawer"
	"github.com/askiada/go-linkstack/pkg/pipeline/measure"
	"github.com/askiada/go-linkstack/pkg/pipeline/model"
)

func TestPipelineDrawer(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	msr := measure.NewDefaultMeasure()
	opts := []model.PipelineOption{measure.PipelineMeasure(msr), drawer.PipelineDrawer(drawer.NewDOTDrawer(buf), msr)}

	filter := &model.StageInfo{Name: "exclude-resources", Category: model.CategoryFilter, Position: 10000, Order: 0}
	zip := &model.StageInfo{Name: "zip", Category: model.CategoryCompressor, Position: 40001, Order: 1}

	for _, opt := range opts {
		require.NoError(t, opt.New())
		require.NoError(t, opt.PrepareStage(model.StartStage, filter))
		require.NoError(t, opt.PrepareStage(filter, zip))
	}
	for _, opt := range opts {
		require.NoError(t, opt.OnStageOutput(filter, 3, 2, time.Millisecond))
		require.NoError(t, opt.OnStageOutput(zip, 2, 2, 3*time.Millisecond))
	}
	for _, opt := range opts {
		require.NoError(t, opt.Finish())
	}

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "strict digraph {"))
	assert.Contains(t, out, `"start" -> "exclude-resources"`)
	assert.Contains(t, out, `"exclude-resources" -> "zip"`)
	assert.Contains(t, out, `"zip" -> "end"`)
	assert.Contains(t, out, "FILTER @ 10000, 1ms, 3 in, 2 out")
	assert.Contains(t, out, "COMPRESSOR @ 40001, 3ms, 2 in, 2 out")
	assert.Contains(t, out, `fillcolor="#cce5ff"`)
	// slowest stage is red, fastest is blue
	assert.Contains(t, out, `color="#f00000"`)
	assert.Contains(t, out, `color="#0000f0"`)

	assert.Less(t, strings.Index(out, `"start" [`), strings.Index(out, `"exclude-resources" [`))
	assert.Less(t, strings.Index(out, `"exclude-resources" [`), strings.Index(out, `"zip" [`))
}

func TestPipelineDrawerWithoutStages(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	opt := drawer.PipelineDrawer(drawer.NewDOTDrawer(buf), nil)

	require.NoError(t, opt.New())
	require.NoError(t, opt.Finish())
	require.NoError(t, opt.Finish())

	assert.Contains(t, buf.String(), `"start" -> "end"`)
}

func TestDOTDrawerErrors(t *testing.T) {
	t.Parallel()

	d := drawer.NewDOTDrawer(&bytes.Buffer{})
	stage := &model.StageInfo{Name: "s", Category: model.CategorySorter}

	require.NoError(t, d.AddStage(stage))
	require.Error(t, d.AddStage(stage))
	require.Error(t, d.AddLink("s", "missing"))
	require.Error(t, d.SetTotalTime("missing", time.Now()))
}
