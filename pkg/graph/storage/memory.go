package storage

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/kartikay23230/pubtator-kg/pkg/graph"
)

type memoryNode struct {
	id    string
	label string
	// values preserve first-seen casing and order; nameKeys hold the
	// folded forms for O(1) identity checks.
	names    *graph.OrderedSet
	nameKeys mapset.Set[string]
	ids      *graph.OrderedSet
	sources  *graph.OrderedSet
}

func (n *memoryNode) hasName(name string) bool {
	return n.nameKeys.Contains(strings.ToLower(strings.TrimSpace(name)))
}

type memoryEdge struct {
	fromID  string
	toID    string
	relType string
	sources *graph.OrderedSet
}

// MemoryStore is an in-memory graph store with the same identity and
// append-only semantics as the Neo4j store. It backs engine tests and
// dry runs. Nodes are kept in insertion order so the "first match"
// tie-break is the first-created node.
type MemoryStore struct {
	mu     sync.RWMutex
	nodes  []*memoryNode
	edges  []*memoryEdge
	nextID int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) findByName(label, name string) *memoryNode {
	for _, node := range s.nodes {
		if label != "" && node.label != label {
			continue
		}
		if node.hasName(name) {
			return node
		}
	}
	return nil
}

// FindEntity implements reconcile.GraphStore.
func (s *MemoryStore) FindEntity(ctx context.Context, label, name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if node := s.findByName(label, name); node != nil {
		return node.id, true, nil
	}
	return "", false, nil
}

// CreateEntity implements reconcile.GraphStore.
func (s *MemoryStore) CreateEntity(ctx context.Context, label, name, externalID, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	node := &memoryNode{
		id:       strconv.Itoa(s.nextID),
		label:    label,
		names:    graph.NewOrderedSet(strings.TrimSpace(name)),
		nameKeys: mapset.NewSet(strings.ToLower(strings.TrimSpace(name))),
		ids:      graph.NewOrderedSet(),
		sources:  graph.NewOrderedSet(source),
	}
	if externalID != "" {
		node.ids.Add(externalID)
	}
	s.nodes = append(s.nodes, node)
	return nil
}

// UpdateEntity implements reconcile.GraphStore.
func (s *MemoryStore) UpdateEntity(ctx context.Context, nodeID, name, externalID, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, node := range s.nodes {
		if node.id != nodeID {
			continue
		}
		name = strings.TrimSpace(name)
		if node.names.AddFold(name) {
			node.nameKeys.Add(strings.ToLower(name))
		}
		if externalID != "" {
			node.ids.Add(externalID)
		}
		node.sources.Add(source)
		return nil
	}
	return nil
}

// RelationshipExists implements reconcile.GraphStore: undirected check.
func (s *MemoryStore) RelationshipExists(ctx context.Context, name1, name2, relType string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := s.nodesByID()
	for _, edge := range s.edges {
		if edge.relType != relType {
			continue
		}
		from, to := byID[edge.fromID], byID[edge.toID]
		if from == nil || to == nil {
			continue
		}
		if (from.hasName(name1) && to.hasName(name2)) ||
			(from.hasName(name2) && to.hasName(name1)) {
			return true, nil
		}
	}
	return false, nil
}

// CreateRelationship implements reconcile.GraphStore: endpoints resolve
// by name across all labels, first match wins.
func (s *MemoryStore) CreateRelationship(ctx context.Context, name1, name2, relType, source string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.findByName("", name1)
	to := s.findByName("", name2)
	if from == nil || to == nil {
		return false, nil
	}
	s.edges = append(s.edges, &memoryEdge{
		fromID:  from.id,
		toID:    to.id,
		relType: relType,
		sources: graph.NewOrderedSet(source),
	})
	return true, nil
}

func (s *MemoryStore) nodesByID() map[string]*memoryNode {
	byID := make(map[string]*memoryNode, len(s.nodes))
	for _, node := range s.nodes {
		byID[node.id] = node
	}
	return byID
}

// Project returns the full graph as a lightweight projection.
func (s *MemoryStore) Project(ctx context.Context, limit int) (*graph.Projection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projection := &graph.Projection{GeneratedAt: time.Now()}
	for _, node := range s.nodes {
		if limit > 0 && len(projection.Nodes) >= limit {
			break
		}
		projection.Nodes = append(projection.Nodes, graph.Node{
			ID:          node.id,
			Labels:      []string{node.label},
			Names:       node.names.Values(),
			ExternalIDs: node.ids.Values(),
			Sources:     node.sources.Values(),
		})
	}
	included := mapset.NewSet[string]()
	for _, node := range projection.Nodes {
		included.Add(node.ID)
	}
	for _, edge := range s.edges {
		if !included.Contains(edge.fromID) || !included.Contains(edge.toID) {
			continue
		}
		projection.Relationships = append(projection.Relationships, graph.Relationship{
			SourceID: edge.fromID,
			TargetID: edge.toID,
			Type:     edge.relType,
			Sources:  edge.sources.Values(),
		})
	}
	return projection, nil
}

// NodeCount returns the number of nodes.
func (s *MemoryStore) NodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// EdgeCount returns the number of edges.
func (s *MemoryStore) EdgeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges)
}
