package storage

import (
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

func TestSnapshotSaveAndLoad(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	require.NoError(t, err)

	saved, err := store.Save("before_update", testProjection())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, 2, saved.NodeCount)
	assert.Equal(t, 1, saved.RelCount)

	loaded, err := store.Load("before_update")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)
	require.Len(t, loaded.Projection.Nodes, 2)
	assert.Equal(t, []string{"Metformin"}, loaded.Projection.Nodes[0].Names)
}

func TestSnapshotLoadMissing(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("nope")
	assert.Error(t, err)
}

func TestSnapshotOverwrite(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save("run", testProjection())
	require.NoError(t, err)
	second, err := store.Save("run", testProjection())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	loaded, err := store.Load("run")
	require.NoError(t, err)
	assert.Equal(t, second.ID, loaded.ID)
}

func TestSnapshotList(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("first", testProjection())
	require.NoError(t, err)
	_, err = store.Save("second", testProjection())
	require.NoError(t, err)

	infos, err := store.List()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	names := []string{infos[0].Name, infos[1].Name}
	assert.ElementsMatch(t, []string{"first", "second"}, names)
}
