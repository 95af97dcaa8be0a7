// Package reconcile decides, for every extracted entity and
// relationship, whether it already exists in the graph and merges new
// evidence into existing nodes and edges instead of duplicating them.
package reconcile

import "context"

// GraphStore is the minimal store contract the engine needs. Entity
// identity is case-insensitive membership of a name in a node's NAME
// array; relationship existence ignores edge direction.
type GraphStore interface {
	// FindEntity returns the id of a node with the given label whose
	// NAME array contains name case-insensitively, or found=false.
	FindEntity(ctx context.Context, label, name string) (nodeID string, found bool, err error)

	// CreateEntity creates a node with NAME=[name], id=[externalID]
	// (omitted when externalID is empty) and source=[source].
	CreateEntity(ctx context.Context, label, name, externalID, source string) error

	// UpdateEntity appends name (case-insensitive dedup), externalID
	// (exact dedup, skipped when empty) and source (exact dedup) to the
	// node's array properties.
	UpdateEntity(ctx context.Context, nodeID, name, externalID, source string) error

	// RelationshipExists reports whether an edge of relType connects
	// nodes matching the two names, in either direction.
	RelationshipExists(ctx context.Context, name1, name2, relType string) (bool, error)

	// CreateRelationship creates a directed relType edge from a node
	// matching name1 to a node matching name2, label-agnostic, first
	// match wins. Returns false without error when either endpoint
	// cannot be resolved.
	CreateRelationship(ctx context.Context, name1, name2, relType, source string) (bool, error)
}
