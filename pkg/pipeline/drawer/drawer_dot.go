package drawer

import (
	"fmt"
	"io"
	"os"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/measure"
	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/model"
)

const (
	maxRGB  = 240
	greyRGB = 160
)

// DOTDrawer is a drawer that writes the stage chain as a Graphviz DOT file.
// Executed stages are coloured from blue (fastest) to red (slowest), skipped stages are grey and failed stages
// are filled in red.
type DOTDrawer struct {
	graph       graph.Graph[string, string]
	stages      []string
	statuses    map[string]model.StageStatus
	dotFileName string
}

// NewDOTDrawer creates a new DOT drawer.
func NewDOTDrawer(dotFileName string) *DOTDrawer {
	return &DOTDrawer{
		dotFileName: dotFileName,
		graph:       graph.New(graph.StringHash, graph.Directed()),
		statuses:    make(map[string]model.StageStatus),
	}
}

// AddStage adds a stage to the pipeline graph.
func (d *DOTDrawer) AddStage(name string) error {
	err := d.graph.AddVertex(name, graph.VertexAttribute("shape", "box"))
	if err != nil {
		return errors.Wrap(err, "unable to add vertex")
	}

	d.stages = append(d.stages, name)

	return nil
}

// AddLink adds a link between parent and child stages.
func (d *DOTDrawer) AddLink(parentName, childName string) error {
	err := d.graph.AddEdge(parentName, childName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childName)
	}

	return nil
}

func (d *DOTDrawer) attributes(stageName string) (map[string]string, error) {
	_, properties, err := d.graph.VertexWithProperties(stageName)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to get %s vertex properties", stageName)
	}

	return properties.Attributes, nil
}

// SetStatus records how a stage ended. Skipped stages are filled in grey, failed stages in red.
// Stages with a status other than done are left out of AddMeasure.
func (d *DOTDrawer) SetStatus(stageName string, status model.StageStatus) error {
	attributes, err := d.attributes(stageName)
	if err != nil {
		return err
	}

	d.statuses[stageName] = status
	attributes["xlabel"] = string(status)

	var fill *colors.RGBColor
	switch status {
	case model.StageSkipped:
		fill, err = colors.RGB(greyRGB, greyRGB, greyRGB)
	case model.StageFailed:
		fill, err = colors.RGB(maxRGB, 0, 0)
	default:
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "unable to get colour")
	}
	attributes["style"] = "filled"
	attributes["fillcolor"] = fill.ToHEX().String()

	return nil
}

// SetTotalTime sets the total time for the stage.
func (d *DOTDrawer) SetTotalTime(stageName string, totalTime time.Duration) error {
	attributes, err := d.attributes(stageName)
	if err != nil {
		return err
	}

	attributes["xlabel"] = "total: " + totalTime.String()

	return nil
}

func (d *DOTDrawer) measured(name string, mt measure.Metric) bool {
	if mt.Skipped() {
		return false
	}
	status, ok := d.statuses[name]

	return !ok || status == model.StageDone
}

// AddMeasure labels every executed stage with its duration and colours it relative to the slowest stage.
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	var minValue, maxValue time.Duration

	first := true
	for name, mt := range msr.AllMetrics() {
		if !d.measured(name, mt) {
			continue
		}

		elapsed := mt.GetDuration()
		if first || elapsed < minValue {
			minValue = elapsed
		}
		if first || elapsed > maxValue {
			maxValue = elapsed
		}
		first = false
	}

	for name, mt := range msr.AllMetrics() {
		if !d.measured(name, mt) {
			continue
		}

		attributes, err := d.attributes(name)
		if err != nil {
			return err
		}

		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(mt.GetDuration()-minValue) / float64(maxValue-minValue)
		}

		red := maxRGB * fraction
		blue := maxRGB - red

		colour, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		attributes["xlabel"] = mt.GetDuration().String()
		attributes["color"] = colour.ToHEX().String()
	}

	return nil
}

// Draw creates a DOT file with the pipeline graph.
func (d *DOTDrawer) Draw() error {
	file, err := os.Create(d.dotFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.dotFileName)
	}
	defer file.Close()

	err = d.write(file)
	if err != nil {
		return errors.Wrapf(err, "unable to create dot file %s", d.dotFileName)
	}

	return file.Close()
}

func (d *DOTDrawer) write(wrt io.Writer) error {
	desc, err := d.describe()
	if err != nil {
		return errors.Wrap(err, "failed to generate DOT description")
	}

	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "failed to parse template")
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

const dotTemplate = `strict digraph {
	rankdir="LR";
{{- range .Vertices}}
	"{{.Name}}" [ {{with .Label}}label={{.}}, {{end}}{{range $k, $v := .Attributes}}{{$k}}="{{$v}}", {{end}}weight={{.Weight}} ];
{{- end}}
{{- range .Edges}}
	"{{.Source}}" -> "{{.Target}}" [ {{range $k, $v := .Attributes}}{{$k}}="{{$v}}", {{end}}weight={{.Weight}} ];
{{- end}}
}
`

type vertexStatement struct {
	Name       string
	Label      string
	Attributes map[string]string
	Weight     int
}

type edgeStatement struct {
	Source     string
	Target     string
	Attributes map[string]string
	Weight     int
}

type description struct {
	Vertices []vertexStatement
	Edges    []edgeStatement
}

// describe walks the stages in insertion order so the output is stable between runs.
func (d *DOTDrawer) describe() (description, error) {
	desc := description{}

	adjacencyMap, err := d.graph.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	for _, name := range d.stages {
		_, properties, err := d.graph.VertexWithProperties(name)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		attributes := make(map[string]string, len(properties.Attributes))
		label := ""
		for k, v := range properties.Attributes {
			if k == "xlabel" {
				label = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="10">%s</FONT>>`, name, v)
				continue
			}
			attributes[k] = v
		}

		desc.Vertices = append(desc.Vertices, vertexStatement{
			Name:       name,
			Label:      label,
			Attributes: attributes,
			Weight:     properties.Weight,
		})

		for _, target := range d.stages {
			edge, ok := adjacencyMap[name][target]
			if !ok {
				continue
			}
			desc.Edges = append(desc.Edges, edgeStatement{
				Source:     name,
				Target:     target,
				Attributes: edge.Properties.Attributes,
				Weight:     edge.Properties.Weight,
			})
		}
	}

	return desc, nil
}

var _ Drawer = (*DOTDrawer)(nil)
