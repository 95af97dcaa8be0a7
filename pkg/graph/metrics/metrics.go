package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Batch metrics
	DocumentsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kg_documents_processed_total",
		Help: "Documents reconciled into the knowledge graph",
	})

	DocumentsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kg_documents_failed_total",
		Help: "Documents whose extraction payload could not be processed",
	})

	DocumentProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "kg_document_processing_duration_seconds",
		Help: "Time spent reconciling a single document",
	})

	// Graph mutation metrics
	EntitiesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kg_entities_created_total",
			Help: "New entity nodes created",
		},
		[]string{"entity_type"},
	)

	EntitiesUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kg_entities_updated_total",
		Help: "Existing entity nodes enriched with new data",
	})

	RelationshipsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kg_relationships_created_total",
			Help: "New relationships created",
		},
		[]string{"relation_type"},
	)
)
