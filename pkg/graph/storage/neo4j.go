// Package storage provides the graph store implementations: Neo4j for
// real runs, an in-memory store for tests and dry runs, and a JSON
// snapshot store for the visualization layer.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v4/neo4j"
	"github.com/pkg/errors"

	"github.com/kartikay23230/pubtator-kg/pkg/graph"
)

// Neo4jStore implements the reconciliation store contract against a
// Neo4j database. Node identity lives in the NAME array property;
// external ids in id; provenance in source.
type Neo4jStore struct {
	driver   neo4j.Driver
	database string
}

// NewNeo4jStore connects to Neo4j and verifies connectivity. A
// connectivity failure here is the one error that aborts a run.
func NewNeo4jStore(uri, username, password, database string) (*Neo4jStore, error) {
	driver, err := neo4j.NewDriver(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Neo4j driver")
	}
	if err := driver.VerifyConnectivity(); err != nil {
		driver.Close()
		return nil, errors.Wrap(err, "failed to connect to Neo4j")
	}
	return &Neo4jStore{driver: driver, database: database}, nil
}

// Close releases the underlying driver.
func (s *Neo4jStore) Close() error {
	return s.driver.Close()
}

func (s *Neo4jStore) session() neo4j.Session {
	return s.driver.NewSession(neo4j.SessionConfig{DatabaseName: s.database})
}

// sanitizeIdentifier strips backticks so dynamic labels and relation
// types can be safely interpolated into Cypher.
func sanitizeIdentifier(identifier string) string {
	return strings.ReplaceAll(identifier, "`", "")
}

// FindEntity implements reconcile.GraphStore: label-scoped lookup by
// case-insensitive membership in the NAME array.
func (s *Neo4jStore) FindEntity(ctx context.Context, label, name string) (string, bool, error) {
	query := fmt.Sprintf(`
		MATCH (n:`+"`%s`"+`)
		WHERE n.NAME IS NOT NULL AND
		      any(item IN n.NAME WHERE toLower(toString(item)) = toLower($name))
		RETURN elementId(n) AS node_id
		LIMIT 1
	`, sanitizeIdentifier(label))

	session := s.session()
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		res, err := tx.Run(query, map[string]interface{}{"name": strings.TrimSpace(name)})
		if err != nil {
			return nil, err
		}
		if res.Next() {
			nodeID, _ := res.Record().Get("node_id")
			return nodeID, nil
		}
		return nil, res.Err()
	})
	if err != nil {
		return "", false, errors.Wrapf(err, "entity lookup for %s", name)
	}
	if result == nil {
		return "", false, nil
	}
	return result.(string), true, nil
}

// CreateEntity implements reconcile.GraphStore.
func (s *Neo4jStore) CreateEntity(ctx context.Context, label, name, externalID, source string) error {
	sanitized := sanitizeIdentifier(label)
	params := map[string]interface{}{
		"name":   strings.TrimSpace(name),
		"source": source,
	}

	var query string
	if externalID != "" {
		query = fmt.Sprintf(`
			CREATE (n:`+"`%s`"+`)
			SET n.NAME = [$name],
			    n.id = [$id],
			    n.source = [$source]
		`, sanitized)
		params["id"] = externalID
	} else {
		query = fmt.Sprintf(`
			CREATE (n:`+"`%s`"+`)
			SET n.NAME = [$name],
			    n.source = [$source]
		`, sanitized)
	}

	session := s.session()
	defer session.Close()

	_, err := session.WriteTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		return tx.Run(query, params)
	})
	return errors.Wrapf(err, "create entity %s", name)
}

// UpdateEntity implements reconcile.GraphStore: append-only array
// updates with duplicate suppression, done server-side so two runs with
// identical input leave the node unchanged.
func (s *Neo4jStore) UpdateEntity(ctx context.Context, nodeID, name, externalID, source string) error {
	params := map[string]interface{}{
		"node_id":  nodeID,
		"new_name": strings.TrimSpace(name),
		"source":   source,
	}

	var query string
	if externalID != "" {
		query = `
			MATCH (n)
			WHERE elementId(n) = $node_id
			SET
			    n.source = CASE
			        WHEN n.source IS NULL THEN [$source]
			        WHEN $source IN n.source THEN n.source
			        ELSE n.source + [$source] END,
			    n.NAME = CASE
			        WHEN n.NAME IS NULL THEN [$new_name]
			        WHEN any(item IN n.NAME WHERE toLower(toString(item)) = toLower($new_name)) THEN n.NAME
			        ELSE n.NAME + [$new_name] END,
			    n.id = CASE
			        WHEN n.id IS NULL THEN [$new_id]
			        WHEN $new_id IN n.id THEN n.id
			        ELSE n.id + [$new_id] END
		`
		params["new_id"] = externalID
	} else {
		query = `
			MATCH (n)
			WHERE elementId(n) = $node_id
			SET
			    n.source = CASE
			        WHEN n.source IS NULL THEN [$source]
			        WHEN $source IN n.source THEN n.source
			        ELSE n.source + [$source] END,
			    n.NAME = CASE
			        WHEN n.NAME IS NULL THEN [$new_name]
			        WHEN any(item IN n.NAME WHERE toLower(toString(item)) = toLower($new_name)) THEN n.NAME
			        ELSE n.NAME + [$new_name] END
		`
	}

	session := s.session()
	defer session.Close()

	_, err := session.WriteTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		return tx.Run(query, params)
	})
	return errors.Wrapf(err, "update entity %s", name)
}

// RelationshipExists implements reconcile.GraphStore: same-typed edge
// between the two names, either direction.
func (s *Neo4jStore) RelationshipExists(ctx context.Context, name1, name2, relType string) (bool, error) {
	query := fmt.Sprintf(`
		MATCH (a)-[r:`+"`%s`"+`]-(b)
		WHERE (
		    (a.NAME IS NOT NULL AND
		     any(item IN a.NAME WHERE toLower(toString(item)) = toLower($name1)))
		    AND
		    (b.NAME IS NOT NULL AND
		     any(item IN b.NAME WHERE toLower(toString(item)) = toLower($name2)))
		)
		RETURN count(r) > 0 AS exists
	`, sanitizeIdentifier(relType))

	session := s.session()
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		res, err := tx.Run(query, map[string]interface{}{
			"name1": strings.TrimSpace(name1),
			"name2": strings.TrimSpace(name2),
		})
		if err != nil {
			return nil, err
		}
		record, err := res.Single()
		if err != nil {
			return nil, err
		}
		exists, _ := record.Get("exists")
		return exists, nil
	})
	if err != nil {
		return false, errors.Wrap(err, "relationship existence check")
	}
	return result.(bool), nil
}

// CreateRelationship implements reconcile.GraphStore: endpoints are
// resolved by name only (no label restriction), first match wins, and
// an unresolved endpoint yields created=false without error.
func (s *Neo4jStore) CreateRelationship(ctx context.Context, name1, name2, relType, source string) (bool, error) {
	query := fmt.Sprintf(`
		MATCH (a), (b)
		WHERE (
		    a.NAME IS NOT NULL AND
		    any(item IN a.NAME WHERE toLower(toString(item)) = toLower($name1))
		)
		AND (
		    b.NAME IS NOT NULL AND
		    any(item IN b.NAME WHERE toLower(toString(item)) = toLower($name2))
		)
		WITH a, b LIMIT 1
		CREATE (a)-[r:`+"`%s`"+`]->(b)
		SET r.source = [$source]
		RETURN elementId(r) AS rel_id
	`, sanitizeIdentifier(relType))

	session := s.session()
	defer session.Close()

	result, err := session.WriteTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		res, err := tx.Run(query, map[string]interface{}{
			"name1":  strings.TrimSpace(name1),
			"name2":  strings.TrimSpace(name2),
			"source": source,
		})
		if err != nil {
			return nil, err
		}
		return res.Next(), res.Err()
	})
	if err != nil {
		return false, errors.Wrapf(err, "create relationship %s -> %s", name1, name2)
	}
	return result.(bool), nil
}

// Project returns a capped lightweight projection of the whole graph
// for snapshots and visualization.
func (s *Neo4jStore) Project(ctx context.Context, limit int) (*graph.Projection, error) {
	session := s.session()
	defer session.Close()

	projection := &graph.Projection{GeneratedAt: time.Now()}
	if limit <= 0 {
		limit = 10000
	}

	_, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		nodeRes, err := tx.Run(`
			MATCH (n)
			RETURN elementId(n) AS node_id,
			       labels(n) AS labels,
			       n.NAME AS names,
			       n.id AS external_ids,
			       n.source AS sources
			LIMIT $limit
		`, map[string]interface{}{"limit": limit})
		if err != nil {
			return nil, err
		}

		nodeIDs := make([]interface{}, 0, limit)
		for nodeRes.Next() {
			record := nodeRes.Record()
			node := graph.Node{
				ID:          stringValue(record, "node_id"),
				Labels:      stringSliceValue(record, "labels"),
				Names:       stringSliceValue(record, "names"),
				ExternalIDs: stringSliceValue(record, "external_ids"),
				Sources:     stringSliceValue(record, "sources"),
			}
			projection.Nodes = append(projection.Nodes, node)
			nodeIDs = append(nodeIDs, node.ID)
		}
		if err := nodeRes.Err(); err != nil {
			return nil, err
		}
		if len(nodeIDs) == 0 {
			return nil, nil
		}

		relRes, err := tx.Run(`
			MATCH (a)-[r]->(b)
			WHERE elementId(a) IN $node_ids AND elementId(b) IN $node_ids
			RETURN elementId(a) AS source_id, elementId(b) AS target_id,
			       type(r) AS rel_type,
			       r.source AS sources
		`, map[string]interface{}{"node_ids": nodeIDs})
		if err != nil {
			return nil, err
		}
		for relRes.Next() {
			record := relRes.Record()
			projection.Relationships = append(projection.Relationships, graph.Relationship{
				SourceID: stringValue(record, "source_id"),
				TargetID: stringValue(record, "target_id"),
				Type:     stringValue(record, "rel_type"),
				Sources:  stringSliceValue(record, "sources"),
			})
		}
		return nil, relRes.Err()
	})
	if err != nil {
		return nil, errors.Wrap(err, "graph projection")
	}
	return projection, nil
}

// ProjectNeighborhood returns the node matching name plus its
// neighborhood up to the given hop count, capped at maxNeighbors.
func (s *Neo4jStore) ProjectNeighborhood(ctx context.Context, name string, hops, maxNeighbors int) (*graph.Projection, error) {
	session := s.session()
	defer session.Close()

	projection := &graph.Projection{GeneratedAt: time.Now()}

	_, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		targetRes, err := tx.Run(`
			MATCH (target)
			WHERE target.NAME IS NOT NULL AND
			      any(item IN target.NAME WHERE toLower(toString(item)) = toLower($name))
			RETURN elementId(target) AS node_id
			LIMIT 1
		`, map[string]interface{}{"name": name})
		if err != nil {
			return nil, err
		}
		if !targetRes.Next() {
			return nil, targetRes.Err()
		}
		targetID, _ := targetRes.Record().Get("node_id")

		// Variable-length patterns cannot take the hop count as a
		// parameter, so it is interpolated after bounds clamping.
		if hops < 1 {
			hops = 1
		}
		if hops > 3 {
			hops = 3
		}
		neighborhoodQuery := fmt.Sprintf(`
			MATCH (center)-[r*1..%d]-(neighbor)
			WHERE elementId(center) = $target_id
			WITH center, neighbor
			LIMIT $max_neighbors
			WITH collect(DISTINCT center) + collect(DISTINCT neighbor) AS all_nodes
			UNWIND all_nodes AS n
			WITH DISTINCT n
			RETURN elementId(n) AS node_id,
			       labels(n) AS labels,
			       n.NAME AS names,
			       n.id AS external_ids,
			       n.source AS sources
		`, hops)

		nodeRes, err := tx.Run(neighborhoodQuery, map[string]interface{}{
			"target_id":     targetID,
			"max_neighbors": maxNeighbors,
		})
		if err != nil {
			return nil, err
		}

		nodeIDs := make([]interface{}, 0, maxNeighbors)
		for nodeRes.Next() {
			record := nodeRes.Record()
			node := graph.Node{
				ID:          stringValue(record, "node_id"),
				Labels:      stringSliceValue(record, "labels"),
				Names:       stringSliceValue(record, "names"),
				ExternalIDs: stringSliceValue(record, "external_ids"),
				Sources:     stringSliceValue(record, "sources"),
			}
			projection.Nodes = append(projection.Nodes, node)
			nodeIDs = append(nodeIDs, node.ID)
		}
		if err := nodeRes.Err(); err != nil {
			return nil, err
		}
		if len(nodeIDs) == 0 {
			return nil, nil
		}

		relRes, err := tx.Run(`
			MATCH (a)-[r]->(b)
			WHERE elementId(a) IN $node_ids AND elementId(b) IN $node_ids
			RETURN elementId(a) AS source_id, elementId(b) AS target_id,
			       type(r) AS rel_type,
			       r.source AS sources
		`, map[string]interface{}{"node_ids": nodeIDs})
		if err != nil {
			return nil, err
		}
		for relRes.Next() {
			record := relRes.Record()
			projection.Relationships = append(projection.Relationships, graph.Relationship{
				SourceID: stringValue(record, "source_id"),
				TargetID: stringValue(record, "target_id"),
				Type:     stringValue(record, "rel_type"),
				Sources:  stringSliceValue(record, "sources"),
			})
		}
		return nil, relRes.Err()
	})
	if err != nil {
		return nil, errors.Wrapf(err, "neighborhood projection for %s", name)
	}
	return projection, nil
}

// DistinctRelationTypes lists every relation type present in the graph,
// for regenerating the relation types catalog file.
func (s *Neo4jStore) DistinctRelationTypes(ctx context.Context) ([]string, error) {
	session := s.session()
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		res, err := tx.Run(`MATCH ()-[r]->() RETURN DISTINCT type(r) AS relation_type`, nil)
		if err != nil {
			return nil, err
		}
		var types []string
		for res.Next() {
			types = append(types, stringValue(res.Record(), "relation_type"))
		}
		return types, res.Err()
	})
	if err != nil {
		return nil, errors.Wrap(err, "relation type extraction")
	}
	return result.([]string), nil
}

func stringValue(record *neo4j.Record, key string) string {
	value, ok := record.Get(key)
	if !ok || value == nil {
		return ""
	}
	s, _ := value.(string)
	return s
}

func stringSliceValue(record *neo4j.Record, key string) []string {
	value, ok := record.Get(key)
	if !ok || value == nil {
		return nil
	}
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
