package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreFindEntity(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.CreateEntity(ctx, "DRUG", "Metformin", "MESH:D008687", "test"))

	id, found, err := store.FindEntity(ctx, "DRUG", "METFORMIN")
	require.NoError(t, err)
	assert.True(t, found)
	assert.NotEmpty(t, id)

	// Lookup is scoped to the label.
	_, found, err = store.FindEntity(ctx, "DISEASE", "Metformin")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreFirstMatchWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.CreateEntity(ctx, "DRUG", "ACE", "", "test"))
	require.NoError(t, store.CreateEntity(ctx, "Gene", "ACE", "", "test"))

	// Label-agnostic endpoint resolution picks the earliest node.
	created, err := store.CreateRelationship(ctx, "ACE", "ACE", "SELF", "test")
	require.NoError(t, err)
	assert.True(t, created)

	projection, err := store.Project(ctx, 0)
	require.NoError(t, err)
	require.Len(t, projection.Relationships, 1)
	first := projection.Nodes[0].ID
	assert.Equal(t, first, projection.Relationships[0].SourceID)
	assert.Equal(t, first, projection.Relationships[0].TargetID)
}

func TestMemoryStoreRelationshipExistsUndirected(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.CreateEntity(ctx, "DRUG", "Warfarin", "", "test"))
	require.NoError(t, store.CreateEntity(ctx, "DRUG", "Aspirin", "", "test"))

	created, err := store.CreateRelationship(ctx, "Warfarin", "Aspirin", "DDI", "test")
	require.NoError(t, err)
	assert.True(t, created)

	exists, err := store.RelationshipExists(ctx, "aspirin", "warfarin", "DDI")
	require.NoError(t, err)
	assert.True(t, exists)

	// A different type between the same endpoints does not exist yet.
	exists, err = store.RelationshipExists(ctx, "Warfarin", "Aspirin", "DRUG_TARGET")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryStoreCreateRelationshipUnresolvedEndpoint(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.CreateEntity(ctx, "DRUG", "Metformin", "", "test"))

	created, err := store.CreateRelationship(ctx, "Metformin", "Nowhere", "DDI", "test")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 0, store.EdgeCount())
}

func TestMemoryStoreUpdateEntityAppendsArrays(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.CreateEntity(ctx, "DRUG", "Metformin", "MESH:D008687", "run1"))

	id, _, err := store.FindEntity(ctx, "DRUG", "Metformin")
	require.NoError(t, err)
	require.NoError(t, store.UpdateEntity(ctx, id, "Glucophage", "CHEBI:6801", "run2"))
	require.NoError(t, store.UpdateEntity(ctx, id, "GLUCOPHAGE", "CHEBI:6801", "run2"))

	projection, err := store.Project(ctx, 0)
	require.NoError(t, err)
	node := projection.Nodes[0]
	assert.Equal(t, []string{"Metformin", "Glucophage"}, node.Names)
	assert.Equal(t, []string{"MESH:D008687", "CHEBI:6801"}, node.ExternalIDs)
	assert.Equal(t, []string{"run1", "run2"}, node.Sources)

	// The alias now resolves to the same node.
	aliasID, found, err := store.FindEntity(ctx, "DRUG", "glucophage")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, id, aliasID)
}

func TestMemoryStoreProjectLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.CreateEntity(ctx, "DRUG", "A", "", "test"))
	require.NoError(t, store.CreateEntity(ctx, "DRUG", "B", "", "test"))
	require.NoError(t, store.CreateEntity(ctx, "DRUG", "C", "", "test"))
	_, err := store.CreateRelationship(ctx, "A", "C", "DDI", "test")
	require.NoError(t, err)

	projection, err := store.Project(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, projection.Nodes, 2)
	// Relationships to truncated nodes are dropped with them.
	assert.Empty(t, projection.Relationships)
}
