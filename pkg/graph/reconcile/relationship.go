package reconcile

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kartikay23230/pubtator-kg/pkg/graph/relation"
)

// RelationshipResolver performs exists-or-create resolution for
// candidate relationships. Existence is checked ignoring direction;
// creation is directed entity1 -> entity2. Endpoint lookup is by name
// only, not restricted to a label.
type RelationshipResolver struct {
	store   GraphStore
	catalog *relation.Catalog
	logger  *logrus.Logger
	source  string
}

// NewRelationshipResolver builds a resolver validating labels against
// the given catalog and writing the given provenance tag.
func NewRelationshipResolver(store GraphStore, catalog *relation.Catalog, source string, logger *logrus.Logger) *RelationshipResolver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RelationshipResolver{store: store, catalog: catalog, logger: logger, source: source}
}

// ResolveOrCreate validates the candidate type and creates the edge
// unless a same-typed edge already connects the two entities in either
// direction. An unresolvable endpoint is a normal no-op, not an error.
// Returns the validated type and whether a new edge was created.
func (r *RelationshipResolver) ResolveOrCreate(ctx context.Context, entity1, entity2, relType string) (string, bool) {
	entity1 = strings.TrimSpace(entity1)
	entity2 = strings.TrimSpace(entity2)
	validated := r.catalog.Validate(relType)
	if entity1 == "" || entity2 == "" {
		return validated, false
	}

	exists, err := r.store.RelationshipExists(ctx, entity1, entity2, validated)
	if err != nil {
		r.logger.WithError(err).Error("Error checking relationship existence")
		return validated, false
	}
	if exists {
		r.logger.Infof("  Relationship already exists: %s --%s--> %s", entity1, validated, entity2)
		return validated, false
	}

	created, err := r.store.CreateRelationship(ctx, entity1, entity2, validated, r.source)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to create relationship %s -> %s", entity1, entity2)
		return validated, false
	}
	if created {
		r.logger.Infof("  Added new relationship: %s --%s--> %s", entity1, validated, entity2)
	}
	return validated, created
}
