package drawer_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/drawer"
	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/measure"
	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/model"
)

func TestDOTDrawer(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pipeline.dot")
	d := drawer.NewDOTDrawer(path)

	require.NoError(t, d.AddStage("start"))
	require.NoError(t, d.AddStage("spades"))
	require.NoError(t, d.AddLink("start", "spades"))
	assert.Error(t, d.AddStage("spades"), "vertices are unique")
	assert.Error(t, d.AddLink("spades", "unknown"))
	require.NoError(t, d.SetStatus("spades", model.StageSkipped))
	assert.Error(t, d.SetStatus("unknown", model.StageDone))
	require.NoError(t, d.Draw())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	dot := string(content)

	assert.True(t, strings.HasPrefix(dot, "strict digraph {"))
	assert.Contains(t, dot, `"start" -> "spades"`)
	assert.Contains(t, strings.ToLower(dot), `fillcolor="#a0a0a0"`)
	assert.Contains(t, dot, `<spades <BR /> <FONT POINT-SIZE="10">skipped</FONT>>`)
	assert.Less(t, strings.Index(dot, `"start" [`), strings.Index(dot, `"spades" [`))
}

func TestDOTDrawerMeasure(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pipeline.dot")
	d := drawer.NewDOTDrawer(path)
	for _, name := range []string{"fast", "slow", "skipped"} {
		require.NoError(t, d.AddStage(name))
	}

	m := measure.NewDefaultMeasure()
	m.AddMetric("fast").SetDuration(time.Second)
	m.AddMetric("slow").SetDuration(3 * time.Second)
	m.AddMetric("skipped").MarkSkipped()

	require.NoError(t, d.AddMeasure(m))
	require.NoError(t, d.Draw())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	dot := string(content)

	assert.Contains(t, strings.ToLower(dot), `color="#0000f0"`, "fastest stage is blue")
	assert.Contains(t, strings.ToLower(dot), `color="#f00000"`, "slowest stage is red")
	assert.Contains(t, dot, `<slow <BR /> <FONT POINT-SIZE="10">3s</FONT>>`)
	assert.NotContains(t, dot, `<skipped <BR />`)
}

func TestDOTDrawerInvalidPath(t *testing.T) {
	t.Parallel()

	d := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "missing", "pipeline.dot"))
	require.NoError(t, d.AddStage("start"))
	assert.Error(t, d.Draw())
}

func TestPipelineDrawer(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pipeline.dot")
	m := measure.NewDefaultMeasure()
	measureOpt := measure.PipelineMeasure(m)
	drawerOpt := drawer.PipelineDrawer(drawer.NewDOTDrawer(path), m)

	spades := &model.StageInfo{Name: "spades", Type: model.AssemblerStageType}
	quast := &model.StageInfo{Name: "quast", Type: model.QualityStageType}

	for _, opt := range []model.PipelineOption{measureOpt, drawerOpt} {
		require.NoError(t, opt.New())
		require.NoError(t, opt.PrepareStage(model.StartStage, spades))
		require.NoError(t, opt.PrepareStage(spades, quast))
		require.NoError(t, opt.OnStageSkipped(spades))
		require.NoError(t, opt.OnStageDone(quast, 2*time.Second))
		require.NoError(t, opt.Finish())
	}

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	dot := string(content)

	assert.Contains(t, dot, `"start" -> "spades"`)
	assert.Contains(t, dot, `"spades" -> "quast"`)
	assert.Contains(t, dot, `"quast" -> "end"`)
	assert.Contains(t, dot, `<quast <BR /> <FONT POINT-SIZE="10">2s</FONT>>`)
	assert.Contains(t, dot, `<spades <BR /> <FONT POINT-SIZE="10">skipped</FONT>>`)
	assert.Contains(t, dot, `<end <BR /> <FONT POINT-SIZE="10">total: `)
}

func TestPipelineDrawerWithoutMeasure(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pipeline.dot")
	opt := drawer.PipelineDrawer(drawer.NewDOTDrawer(path), nil)

	stage := &model.StageInfo{Name: "improve_assembly"}
	require.NoError(t, opt.New())
	require.NoError(t, opt.PrepareStage(model.StartStage, stage))
	require.NoError(t, opt.OnStageDone(stage, time.Second))
	require.NoError(t, opt.Finish())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `<improve_assembly <BR /> <FONT POINT-SIZE="10">done</FONT>>`)
}

func TestPipelineDrawerFailedStage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pipeline.dot")
	m := measure.NewDefaultMeasure()
	measureOpt := measure.PipelineMeasure(m)
	drawerOpt := drawer.PipelineDrawer(drawer.NewDOTDrawer(path), m)

	spades := &model.StageInfo{Name: "spades", Type: model.AssemblerStageType}
	quast := &model.StageInfo{Name: "quast", Type: model.QualityStageType}
	improve := &model.StageInfo{Name: "improve", Type: model.ImproverStageType}

	for _, opt := range []model.PipelineOption{measureOpt, drawerOpt} {
		require.NoError(t, opt.New())
		require.NoError(t, opt.PrepareStage(model.StartStage, spades))
		require.NoError(t, opt.PrepareStage(spades, quast))
		require.NoError(t, opt.PrepareStage(quast, improve))
		require.NoError(t, opt.OnStageDone(spades, 2*time.Second))
		require.NoError(t, opt.OnStageFailed(quast, assert.AnError))
		require.NoError(t, opt.Finish())
	}

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	dot := string(content)

	assert.Contains(t, dot, `<spades <BR /> <FONT POINT-SIZE="10">2s</FONT>>`)
	assert.Contains(t, dot, `<quast <BR /> <FONT POINT-SIZE="10">failed</FONT>>`)
	assert.Contains(t, strings.ToLower(dot), `fillcolor="#f00000"`)
	assert.Contains(t, dot, `<improve <BR /> <FONT POINT-SIZE="10">pending</FONT>>`)
	assert.Contains(t, dot, `"improve" -> "end"`)
}
