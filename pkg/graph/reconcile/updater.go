package reconcile

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/kartikay23230/pubtator-kg/pkg/graph"
	"github.com/kartikay23230/pubtator-kg/pkg/graph/metrics"
	"github.com/kartikay23230/pubtator-kg/pkg/graph/relation"
)

// DefaultSourceTag is the provenance tag recorded for data written by
// this pipeline.
const DefaultSourceTag = "pubtator_extraction"

// Updater reconciles extracted documents into the graph one at a time,
// in input order. Per-record and per-document failures are contained;
// only the final summary reports them.
type Updater struct {
	store         GraphStore
	catalog       *relation.Catalog
	entities      *EntityResolver
	relationships *RelationshipResolver
	logger        *logrus.Logger
	summary       *Summary
}

// NewUpdater builds an updater writing the default provenance tag.
func NewUpdater(store GraphStore, catalog *relation.Catalog, logger *logrus.Logger) *Updater {
	return NewUpdaterWithSource(store, catalog, DefaultSourceTag, logger)
}

// NewUpdaterWithSource builds an updater writing a custom provenance
// tag, for ingestion passes other than the PubTator one.
func NewUpdaterWithSource(store GraphStore, catalog *relation.Catalog, source string, logger *logrus.Logger) *Updater {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Updater{
		store:         store,
		catalog:       catalog,
		entities:      NewEntityResolver(store, source, logger),
		relationships: NewRelationshipResolver(store, catalog, source, logger),
		logger:        logger,
		summary:       NewSummary(),
	}
}

// Summary returns the running batch summary.
func (u *Updater) Summary() *Summary {
	return u.summary
}

// ProcessBatch reconciles the results sequentially. Failed documents
// are counted and skipped; the batch always runs to the end and the
// returned summary covers whatever fraction completed.
func (u *Updater) ProcessBatch(ctx context.Context, results []graph.ExtractionResult) *Summary {
	u.logger.Infof("Found %d documents to process", len(results))
	for i, result := range results {
		u.logger.Infof("=== Processing document %d/%d ===", i+1, len(results))
		timer := prometheus.NewTimer(metrics.DocumentProcessingDuration)
		err := u.ProcessDocument(ctx, result)
		timer.ObserveDuration()
		if err != nil {
			u.logger.WithError(err).Errorf("Failed to process document %s", result.DocumentID)
			u.summary.FailedDocuments++
			metrics.DocumentsFailed.Inc()
			continue
		}
		u.summary.ProcessedDocuments++
		metrics.DocumentsProcessed.Inc()
	}
	return u.summary
}

// ProcessDocument parses one document's extraction payload and applies
// its entities and relationships to the graph. The returned error only
// covers payload parsing; individual entity and relationship failures
// are logged and absorbed.
func (u *Updater) ProcessDocument(ctx context.Context, result graph.ExtractionResult) error {
	docID := result.DocumentID
	if docID == "" {
		docID = "Unknown"
	}

	if strings.TrimSpace(result.Analysis) == "" {
		u.logger.Warnf("No analysis data found for document %s", docID)
		return nil
	}

	cleaned := graph.CleanAnalysis(result.Analysis)
	if !gjson.Valid(cleaned) {
		return errors.Errorf("error parsing JSON for document %s", docID)
	}
	payload := gjson.Parse(cleaned)
	if !payload.IsObject() {
		return errors.Errorf("analysis for document %s is not a JSON object", docID)
	}

	u.logger.Infof("Processing document: %s", docID)

	u.processEntities(ctx, docID, payload)
	u.processRelationships(ctx, docID, payload)
	return nil
}

func (u *Updater) processEntities(ctx context.Context, docID string, payload gjson.Result) {
	for _, listKey := range graph.EntityListKeys {
		entities := payload.Get(listKey.Key)
		if !entities.IsArray() {
			continue
		}
		entities.ForEach(func(_, entity gjson.Result) bool {
			if !entity.IsObject() {
				return true
			}
			name := strings.TrimSpace(entity.Get("name").String())
			externalID := entity.Get("id").String()

			switch u.entities.ResolveOrCreate(ctx, name, listKey.EntityType, externalID) {
			case EntityCreated:
				u.summary.recordNewEntity(name, listKey.EntityType, externalID, docID)
				metrics.EntitiesCreated.WithLabelValues(listKey.EntityType).Inc()
			case EntityUpdated:
				u.summary.UpdatedEntities++
				metrics.EntitiesUpdated.Inc()
			}
			return true
		})
	}
}

func (u *Updater) processRelationships(ctx context.Context, docID string, payload gjson.Result) {
	payload.ForEach(func(key, relationships gjson.Result) bool {
		if !graph.IsRelationshipKey(key.String()) || !relationships.IsArray() {
			return true
		}

		defaultType, ok := graph.RelationshipKeyDefaults[key.String()]
		if !ok {
			defaultType = relation.FallbackType
		}
		u.logger.Infof("Processing %d relationships from key: %s",
			len(relationships.Array()), key.String())

		relationships.ForEach(func(_, rel gjson.Result) bool {
			if !rel.IsObject() {
				return true
			}

			relType := rel.Get("kg_relation_type").String()
			if relType == "" || relType == graph.NotSpecified {
				relType = defaultType
			}

			entity1, entity2 := graph.ExtractPair(rel)
			if entity1 == "" || entity2 == "" {
				u.logger.Warnf("  Could not extract entity names from relationship in %s: %s",
					key.String(), rel.Raw)
				return true
			}

			validated, created := u.relationships.ResolveOrCreate(ctx, entity1, entity2, relType)
			if created {
				u.summary.recordNewRelationship(entity1, entity2, validated, docID)
				metrics.RelationshipsCreated.WithLabelValues(validated).Inc()
			}
			return true
		})
		return true
	})
}
