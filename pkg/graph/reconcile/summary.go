package reconcile

import (
	"fmt"
	"sort"
	"strings"
)

// maxDetailRecords caps the per-kind detail lists; the counts keep
// growing past the cap.
const maxDetailRecords = 100

// detailDisplayLimit is how many detail records the rendered report
// shows per kind.
const detailDisplayLimit = 20

// EntityDetail records one newly created entity for reporting.
type EntityDetail struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	ExternalID string `json:"id,omitempty"`
	Document   string `json:"document"`
}

// RelationshipDetail records one newly created relationship for
// reporting.
type RelationshipDetail struct {
	Entity1  string `json:"entity1"`
	Entity2  string `json:"entity2"`
	Type     string `json:"type"`
	Document string `json:"document"`
}

// Summary accumulates counts across one batch run. It is reporting
// state only; no reconciliation decision reads it.
type Summary struct {
	NewEntities        int `json:"new_entities"`
	UpdatedEntities    int `json:"updated_entities"`
	NewRelationships   int `json:"new_relationships"`
	ProcessedDocuments int `json:"processed_documents"`
	FailedDocuments    int `json:"failed_documents"`

	EntityBreakdown       map[string]int `json:"entity_breakdown"`
	RelationshipBreakdown map[string]int `json:"relationship_breakdown"`

	NewEntityDetails       []EntityDetail       `json:"new_entity_details"`
	NewRelationshipDetails []RelationshipDetail `json:"new_relationship_details"`
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return &Summary{
		EntityBreakdown:       make(map[string]int),
		RelationshipBreakdown: make(map[string]int),
	}
}

func (s *Summary) recordNewEntity(name, entityType, externalID, docID string) {
	s.NewEntities++
	s.EntityBreakdown[entityType]++
	if len(s.NewEntityDetails) < maxDetailRecords {
		s.NewEntityDetails = append(s.NewEntityDetails, EntityDetail{
			Name:       name,
			Type:       entityType,
			ExternalID: externalID,
			Document:   docID,
		})
	}
}

func (s *Summary) recordNewRelationship(entity1, entity2, relType, docID string) {
	s.NewRelationships++
	s.RelationshipBreakdown[relType]++
	if len(s.NewRelationshipDetails) < maxDetailRecords {
		s.NewRelationshipDetails = append(s.NewRelationshipDetails, RelationshipDetail{
			Entity1:  entity1,
			Entity2:  entity2,
			Type:     relType,
			Document: docID,
		})
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Render produces the human-readable end-of-batch report.
func (s *Summary) Render() string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)

	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "%sKNOWLEDGE GRAPH UPDATE SUMMARY\n", strings.Repeat(" ", 20))
	fmt.Fprintf(&b, "%s\n", rule)

	fmt.Fprintf(&b, "\nOVERALL STATISTICS:\n")
	fmt.Fprintf(&b, "   - Documents processed successfully: %d\n", s.ProcessedDocuments)
	if s.FailedDocuments > 0 {
		fmt.Fprintf(&b, "   - Documents failed: %d\n", s.FailedDocuments)
	}
	fmt.Fprintf(&b, "   - Total new entities added: %d\n", s.NewEntities)
	fmt.Fprintf(&b, "   - Total existing entities updated: %d\n", s.UpdatedEntities)
	fmt.Fprintf(&b, "   - Total new relationships added: %d\n", s.NewRelationships)

	if len(s.EntityBreakdown) > 0 {
		fmt.Fprintf(&b, "\nNEW ENTITIES BY TYPE:\n")
		for _, entityType := range sortedKeys(s.EntityBreakdown) {
			fmt.Fprintf(&b, "   - %s: %d\n", strings.ToUpper(entityType), s.EntityBreakdown[entityType])
		}
	}

	if len(s.RelationshipBreakdown) > 0 {
		fmt.Fprintf(&b, "\nNEW RELATIONSHIPS BY TYPE:\n")
		for _, relType := range sortedKeys(s.RelationshipBreakdown) {
			fmt.Fprintf(&b, "   - %s: %d\n", relType, s.RelationshipBreakdown[relType])
		}
	}

	if len(s.NewEntityDetails) > 0 {
		fmt.Fprintf(&b, "\nNEW ENTITIES ADDED (showing first %d):\n", detailDisplayLimit)
		for i, entity := range s.NewEntityDetails {
			if i >= detailDisplayLimit {
				fmt.Fprintf(&b, "       ... and %d more entities\n", s.NewEntities-detailDisplayLimit)
				break
			}
			idStr := ""
			if entity.ExternalID != "" {
				idStr = fmt.Sprintf(" (ID: %s)", entity.ExternalID)
			}
			fmt.Fprintf(&b, "   %2d. %s [%s]%s\n", i+1, entity.Name, strings.ToUpper(entity.Type), idStr)
			fmt.Fprintf(&b, "       from document: %s\n", entity.Document)
		}
	}

	if len(s.NewRelationshipDetails) > 0 {
		fmt.Fprintf(&b, "\nNEW RELATIONSHIPS ADDED (showing first %d):\n", detailDisplayLimit)
		for i, rel := range s.NewRelationshipDetails {
			if i >= detailDisplayLimit {
				fmt.Fprintf(&b, "       ... and %d more relationships\n", s.NewRelationships-detailDisplayLimit)
				break
			}
			fmt.Fprintf(&b, "   %2d. %s --[%s]--> %s\n", i+1, rel.Entity1, rel.Type, rel.Entity2)
			fmt.Fprintf(&b, "       from document: %s\n", rel.Document)
		}
	}

	totalNew := s.NewEntities + s.NewRelationships
	fmt.Fprintf(&b, "\nKNOWLEDGE GRAPH IMPACT:\n")
	if totalNew > 0 {
		fmt.Fprintf(&b, "   - Total new items added to knowledge graph: %d\n", totalNew)
		fmt.Fprintf(&b, "   - Entities vs Relationships ratio: %.1f%% / %.1f%%\n",
			float64(s.NewEntities)/float64(totalNew)*100,
			float64(s.NewRelationships)/float64(totalNew)*100)
	}
	if s.UpdatedEntities > 0 {
		fmt.Fprintf(&b, "   - Entities enriched with additional data: %d\n", s.UpdatedEntities)
	}

	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "%sUPDATE COMPLETED\n", strings.Repeat(" ", 25))
	fmt.Fprintf(&b, "%s\n", rule)

	return b.String()
}
