package reconcile

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kartikay23230/pubtator-kg/pkg/graph"
)

// EntityOutcome is the result of resolving one candidate entity.
type EntityOutcome int

const (
	// EntitySkipped means no mutation was performed: the name was
	// invalid or a store operation failed.
	EntitySkipped EntityOutcome = iota
	// EntityCreated means a new node was created.
	EntityCreated
	// EntityUpdated means an existing node was enriched.
	EntityUpdated
)

// unknownName is the sentinel the extraction model uses for entities it
// could not name.
const unknownName = "Unknown"

// EntityResolver performs exists-or-create resolution for candidate
// entities, scoped to the node label implied by the coarse entity type.
type EntityResolver struct {
	store  GraphStore
	logger *logrus.Logger
	source string
}

// NewEntityResolver builds a resolver writing the given provenance tag.
func NewEntityResolver(store GraphStore, source string, logger *logrus.Logger) *EntityResolver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &EntityResolver{store: store, logger: logger, source: source}
}

// ResolveOrCreate looks the entity up by case-insensitive name within
// its label and either enriches the existing node or creates a new one.
// Store errors are logged and reported as EntitySkipped; the caller
// keeps going.
func (r *EntityResolver) ResolveOrCreate(ctx context.Context, name, entityType, externalID string) EntityOutcome {
	name = strings.TrimSpace(name)
	if name == "" || name == unknownName {
		return EntitySkipped
	}

	externalID = strings.TrimSpace(externalID)
	if externalID == graph.NotSpecified {
		externalID = ""
	}

	label, mapped := graph.LabelFor(entityType)
	if !mapped {
		r.logger.Warnf("Unmapped entity_type %q. Defaulting label to its uppercase form: %s", entityType, label)
	}

	nodeID, found, err := r.store.FindEntity(ctx, label, name)
	if err != nil {
		r.logger.WithError(err).Errorf("Error checking entity existence for %s", name)
		return EntitySkipped
	}

	if found {
		if err := r.store.UpdateEntity(ctx, nodeID, name, externalID, r.source); err != nil {
			r.logger.WithError(err).Errorf("Error updating entity %s", name)
			return EntitySkipped
		}
		r.logger.Infof("  %s already exists: %s", capitalize(entityType), name)
		return EntityUpdated
	}

	if err := r.store.CreateEntity(ctx, label, name, externalID, r.source); err != nil {
		r.logger.WithError(err).Errorf("Error creating entity %s", name)
		return EntitySkipped
	}
	r.logger.Infof("  Added new %s: %s", entityType, name)
	return EntityCreated
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
