package visualizer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartikay23230/pubtator-kg/pkg/graph"
)

func testProjection() *graph.Projection {
	return &graph.Projection{
		GeneratedAt: time.Now(),
		Nodes: []graph.Node{
			{ID: "1", Labels: []string{"DRUG"}, Names: []string{"Metformin"}},
			{ID: "2", Labels: []string{"DISEASE"}, Names: []string{"Type 2 Diabetes"}},
		},
		Relationships: []graph.Relationship{
			{SourceID: "1", TargetID: "2", Type: "DRUG_DISEASE_ASSOCIATION"},
		},
	}
}

func TestVisualize(t *testing.T) {
	out := filepath.Join(t.TempDir(), "graph.html")
	v := NewD3Visualizer(out)
	require.NoError(t, v.Visualize("Knowledge Graph", testProjection()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "<title>Knowledge Graph</title>")
	assert.Contains(t, html, "Metformin")
	assert.Contains(t, html, "DRUG_DISEASE_ASSOCIATION")
	assert.Contains(t, html, `drawGraph("graph0"`)
}

func TestVisualizeComparison(t *testing.T) {
	out := filepath.Join(t.TempDir(), "compare.html")
	v := NewD3Visualizer(out)
	require.NoError(t, v.VisualizeComparison("Before vs After", testProjection(), testProjection()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, `drawGraph("graph0"`)
	assert.Contains(t, html, `drawGraph("graph1"`)
	assert.Contains(t, html, "Before")
	assert.Contains(t, html, "After")
}
