package graph

import (
	"time"
)

// ExtractionResult is one document's worth of LLM output: the raw
// analysis text as returned by the model, keyed by the source document.
type ExtractionResult struct {
	DocumentID string `json:"document_id"`
	Analysis   string `json:"analysis"`
}

// Node is a lightweight projection of a graph node, sufficient for
// snapshots and visualization without re-querying the store.
type Node struct {
	ID          string   `json:"id"`
	Labels      []string `json:"labels"`
	Names       []string `json:"names"`
	ExternalIDs []string `json:"external_ids,omitempty"`
	Sources     []string `json:"sources,omitempty"`
}

// Relationship is a lightweight projection of a directed, typed edge.
type Relationship struct {
	SourceID string   `json:"source_id"`
	TargetID string   `json:"target_id"`
	Type     string   `json:"type"`
	Sources  []string `json:"sources,omitempty"`
}

// Projection is a point-in-time node/relationship view of the graph,
// consumed by the snapshot store and the visualizer.
type Projection struct {
	GeneratedAt   time.Time      `json:"generated_at"`
	Nodes         []Node         `json:"nodes"`
	Relationships []Relationship `json:"relationships"`
}

// Name returns a display name for the node: the first known surface
// string, falling back to the node id.
func (n Node) Name() string {
	if len(n.Names) > 0 {
		return n.Names[0]
	}
	return "Node_" + n.ID
}

// Label returns the node's primary label, if any.
func (n Node) Label() string {
	if len(n.Labels) > 0 {
		return n.Labels[0]
	}
	return ""
}
