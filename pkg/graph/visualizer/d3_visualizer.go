// Package visualizer renders graph projections as self-contained D3
// HTML pages, including side-by-side before/after comparisons of two
// snapshots.
package visualizer

import (
	"bytes"
	"encoding/json"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"

	"github.com/kartikay23230/pubtator-kg/pkg/graph"
)

const d3Template = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <script src="https://d3js.org/d3.v7.min.js"></script>
    <style>
        body {
            margin: 0;
            font-family: Arial, sans-serif;
        }
        .panel {
            float: left;
            height: 100vh;
        }
        .node {
            stroke: #fff;
            stroke-width: 1.5px;
        }
        .link {
            stroke: #999;
            stroke-opacity: 0.6;
        }
        .node-label {
            font-size: 10px;
            pointer-events: none;
        }
        .controls {
            position: absolute;
            top: 10px;
            left: 10px;
            background-color: rgba(255,255,255,0.8);
            padding: 10px;
            border-radius: 5px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
    </style>
</head>
<body>
    {{range .Panels}}<div id="{{.ID}}" class="panel" style="width: {{$.PanelWidth}}%"></div>
    {{end}}
    <div class="controls">
        <h3>{{.Title}}</h3>
        {{range .Panels}}<p>{{.Caption}}: {{.NodeCount}} nodes, {{.EdgeCount}} edges</p>
        {{end}}
        <p>Node labels: {{.LabelList}}</p>
    </div>

    <script>
        function drawGraph(containerId, data) {
            const container = document.getElementById(containerId);
            const width = container.clientWidth;
            const height = container.clientHeight;

            const simulation = d3.forceSimulation(data.nodes)
                .force("link", d3.forceLink(data.edges).id(d => d.id).distance(100))
                .force("charge", d3.forceManyBody().strength(-300))
                .force("center", d3.forceCenter(width / 2, height / 2));

            const svg = d3.select("#" + containerId)
                .append("svg")
                .attr("width", "100%")
                .attr("height", "100%")
                .call(d3.zoom().on("zoom", (event) => {
                    g.attr("transform", event.transform);
                }));

            const g = svg.append("g");

            const labels = [...new Set(data.nodes.map(node => node.group))];
            const colorScale = d3.scaleOrdinal(d3.schemeCategory10).domain(labels);

            const link = g.append("g")
                .selectAll("line")
                .data(data.edges)
                .enter()
                .append("line")
                .attr("class", "link");

            const node = g.append("g")
                .selectAll("circle")
                .data(data.nodes)
                .enter()
                .append("circle")
                .attr("class", "node")
                .attr("r", 8)
                .attr("fill", d => colorScale(d.group))
                .call(d3.drag()
                    .on("start", (event, d) => {
                        if (!event.active) simulation.alphaTarget(0.3).restart();
                        d.fx = d.x;
                        d.fy = d.y;
                    })
                    .on("drag", (event, d) => {
                        d.fx = event.x;
                        d.fy = event.y;
                    })
                    .on("end", (event, d) => {
                        if (!event.active) simulation.alphaTarget(0);
                        d.fx = null;
                        d.fy = null;
                    }));

            const label = g.append("g")
                .selectAll("text")
                .data(data.nodes)
                .enter()
                .append("text")
                .attr("class", "node-label")
                .attr("dx", 12)
                .attr("dy", ".35em")
                .text(d => d.name);

            node.append("title")
                .text(d => d.name + " (" + d.group + ")");

            link.append("title")
                .text(d => d.type);

            simulation.on("tick", () => {
                link
                    .attr("x1", d => d.source.x)
                    .attr("y1", d => d.source.y)
                    .attr("x2", d => d.target.x)
                    .attr("y2", d => d.target.y);

                node
                    .attr("cx", d => d.x)
                    .attr("cy", d => d.y);

                label
                    .attr("x", d => d.x)
                    .attr("y", d => d.y);
            });
        }

        {{range .Panels}}drawGraph("{{.ID}}", {{.GraphData}});
        {{end}}
    </script>
</body>
</html>
`

// d3Node and d3Edge are the shapes the template's JS expects.
type d3Node struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

type d3Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

type d3Graph struct {
	Nodes []d3Node `json:"nodes"`
	Edges []d3Edge `json:"edges"`
}

type panel struct {
	ID        string
	Caption   string
	GraphData template.JS
	NodeCount int
	EdgeCount int
}

type page struct {
	Title      string
	Panels     []panel
	PanelWidth int
	LabelList  string
}

// D3Visualizer writes D3.js HTML renderings of graph projections.
type D3Visualizer struct {
	outputPath string
}

// NewD3Visualizer creates a visualizer writing to outputPath.
func NewD3Visualizer(outputPath string) *D3Visualizer {
	return &D3Visualizer{outputPath: outputPath}
}

// Visualize renders a single projection.
func (v *D3Visualizer) Visualize(title string, projection *graph.Projection) error {
	return v.render(title, []namedProjection{{caption: "Graph", projection: projection}})
}

// VisualizeComparison renders two projections side by side, typically a
// before/after snapshot pair around an ingestion run.
func (v *D3Visualizer) VisualizeComparison(title string, before, after *graph.Projection) error {
	return v.render(title, []namedProjection{
		{caption: "Before", projection: before},
		{caption: "After", projection: after},
	})
}

type namedProjection struct {
	caption    string
	projection *graph.Projection
}

func (v *D3Visualizer) render(title string, projections []namedProjection) error {
	if err := os.MkdirAll(filepath.Dir(v.outputPath), 0755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	labelSet := mapset.NewSet[string]()
	panels := make([]panel, 0, len(projections))
	for i, np := range projections {
		data := d3Graph{}
		for _, node := range np.projection.Nodes {
			labelSet.Add(node.Label())
			data.Nodes = append(data.Nodes, d3Node{
				ID:    node.ID,
				Name:  node.Name(),
				Group: node.Label(),
			})
		}
		for _, rel := range np.projection.Relationships {
			data.Edges = append(data.Edges, d3Edge{
				Source: rel.SourceID,
				Target: rel.TargetID,
				Type:   rel.Type,
			})
		}
		encoded, err := json.Marshal(data)
		if err != nil {
			return errors.Wrap(err, "encode graph data")
		}
		panels = append(panels, panel{
			ID:        "graph" + strconv.Itoa(i),
			Caption:   np.caption,
			GraphData: template.JS(encoded),
			NodeCount: len(data.Nodes),
			EdgeCount: len(data.Edges),
		})
	}

	labels := labelSet.ToSlice()
	sort.Strings(labels)

	tmpl, err := template.New("d3").Parse(d3Template)
	if err != nil {
		return errors.Wrap(err, "parse template")
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, page{
		Title:      title,
		Panels:     panels,
		PanelWidth: 100 / len(panels),
		LabelList:  strings.Join(labels, ", "),
	})
	if err != nil {
		return errors.Wrap(err, "render template")
	}

	return os.WriteFile(v.outputPath, buf.Bytes(), 0644)
}
