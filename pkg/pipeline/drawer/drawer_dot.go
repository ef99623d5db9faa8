package drawer

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-linkstack/pkg/pipeline/measure"
	"github.com/askiada/go-linkstack/pkg/pipeline/model"
)

// categoryColors gives each category its own fill colour.
var categoryColors = map[model.Category][3]uint8{
	model.CategoryFilter:      {204, 229, 255},
	model.CategoryTransformer: {204, 255, 204},
	model.CategorySorter:      {255, 242, 204},
	model.CategoryCompressor:  {255, 214, 204},
	model.CategoryNone:        {230, 230, 230},
}

// DOTDrawer renders the stage chain of a pipeline in the DOT language.
type DOTDrawer struct {
	graph  graph.Graph[string, string]
	stages map[string]*model.StageInfo
	wrt    io.Writer
}

// NewDOTDrawer creates a drawer writing to wrt.
func NewDOTDrawer(wrt io.Writer) *DOTDrawer {
	return &DOTDrawer{
		wrt:    wrt,
		graph:  graph.New(graph.StringHash, graph.Directed()),
		stages: make(map[string]*model.StageInfo),
	}
}

// AddStage adds a stage vertex, filled with the colour of its category.
func (d *DOTDrawer) AddStage(stage *model.StageInfo) error {
	attributes := map[string]string{"shape": "box"}
	if stage.Order >= 0 {
		rgb, ok := categoryColors[stage.Category]
		if !ok {
			rgb = categoryColors[model.CategoryNone]
		}
		fill, err := colors.RGB(rgb[0], rgb[1], rgb[2])
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}
		attributes["style"] = "filled"
		attributes["fillcolor"] = fill.ToHEX().String()
		attributes["xlabel"] = stage.Category.String() + " @ " + strconv.Itoa(stage.Position)
	} else {
		attributes["shape"] = "ellipse"
	}

	err := d.graph.AddVertex(stage.Name, graph.VertexAttributes(attributes))
	if err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", stage.Name)
	}

	d.stages[stage.Name] = stage

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

// Draw writes the pipeline graph.
func (d *DOTDrawer) Draw() error {
	err := dot(d.graph, d.wrt)
	if err != nil {
		return errors.Wrap(err, "unable to draw dot graph")
	}

	return nil
}

// SetTotalTime sets the total time for the stage.
func (d *DOTDrawer) SetTotalTime(stageName string, startTime time.Time) error {
	_, properties, err := d.graph.VertexWithProperties(stageName)
	if err != nil {
		return errors.Wrapf(err, "unable to get %s vertex properties", stageName)
	}

	properties.Attributes["xlabel"] = round(time.Since(startTime)).String()

	return nil
}

const maxRGB = 240

// AddMeasure labels every stage with its average duration and colours its border
// from blue (fastest) to red (slowest).
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	metrics := msr.AllMetrics()

	var minValue, maxValue time.Duration
	first := true
	for name, mt := range metrics {
		stage, ok := d.stages[name]
		if !ok || stage.Order < 0 || mt.Runs() == 0 {
			continue
		}
		avg := mt.AVGDuration()
		if first || avg < minValue {
			minValue = avg
		}
		if first || avg > maxValue {
			maxValue = avg
		}
		first = false
	}

	for name, mt := range metrics {
		stage, ok := d.stages[name]
		if !ok || stage.Order < 0 || mt.Runs() == 0 {
			continue
		}

		_, properties, err := d.graph.VertexWithProperties(name)
		if err != nil {
			return errors.Wrap(err, "unable to get vertex properties")
		}

		avg := mt.AVGDuration()
		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(avg-minValue) / float64(maxValue-minValue)
		}
		border, err := colors.RGB(uint8(maxRGB*fraction), 0, uint8(maxRGB-maxRGB*fraction)) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		in, out := mt.Resources()
		properties.Attributes["color"] = border.ToHEX().String()
		properties.Attributes["xlabel"] += fmt.Sprintf(", %s, %d in, %d out", avg, in, out)
	}

	return nil
}

func round(d time.Duration) time.Duration {
	if d > time.Millisecond {
		return d.Round(time.Millisecond)
	}

	return d.Round(time.Microsecond)
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           interface{}
	Target           interface{}
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func dot(g graph.Graph[string, string], wrt io.Writer, options ...func(*description)) error {
	desc, err := generateDOT(g, options...)
	if err != nil {
		return fmt.Errorf("failed to generate DOT description: %w", err)
	}

	return renderDOT(wrt, desc)
}

// GraphAttribute is a functional option for the [dot] function.
func GraphAttribute(key, value string) func(*description) {
	return func(d *description) {
		d.Attributes[key] = value
	}
}

// generateDOT walks the vertices in topological order so the output is stable.
func generateDOT(gra graph.Graph[string, string], options ...func(*description)) (description, error) {
	desc := description{
		GraphType:    "graph",
		Attributes:   make(map[string]string),
		EdgeOperator: "--",
		Statements:   make([]statement, 0),
	}

	for _, option := range options {
		option(&desc)
	}

	if gra.Traits().IsDirected {
		desc.GraphType = "digraph"
		desc.EdgeOperator = "->"
	}

	adjacencyMap, err := gra.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	vertices, err := graph.StableTopologicalSort(gra, func(a, b string) bool { return a < b })
	if err != nil {
		return desc, errors.Wrap(err, "unable to sort vertices")
	}

	for _, vertex := range vertices {
		_, sourceProperties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		htmlAttributes := make(map[string]string)
		sourceAttributes := make(map[string]string, len(sourceProperties.Attributes))
		for k, v := range sourceProperties.Attributes {
			sourceAttributes[k] = v
		}

		if xlabel, ok := sourceAttributes["xlabel"]; ok {
			htmlAttributes["label"] = fmt.Sprintf(`<%+v <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, vertex, xlabel)

			delete(sourceAttributes, "xlabel")
		}

		stmt := statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceAttributes,
			HTMLAttributes:   htmlAttributes,
		}
		desc.Statements = append(desc.Statements, stmt)

		targets := make([]string, 0, len(adjacencyMap[vertex]))
		for target := range adjacencyMap[vertex] {
			targets = append(targets, target)
		}
		slices.Sort(targets)

		for _, target := range targets {
			edge := adjacencyMap[vertex][target]
			stmt := statement{
				Source:         vertex,
				Target:         target,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			}
			desc.Statements = append(desc.Statements, stmt)
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
